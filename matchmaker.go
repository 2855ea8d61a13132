// Package matchmaker provides a batch profile-verification pipeline.
//
// Basic usage:
//
//	requests := []matchmaker.VerificationRequest{{
//	    ProfileIdentifier: "someathlete",
//	    Platform:          matchmaker.Instagram,
//	    Criteria:          matchmaker.Criteria{Niches: []string{"fitness"}, MinFollowers: 10000},
//	}}
//	results, err := matchmaker.Verify(ctx, requests)
//
// For platforms requiring authentication (Instagram, TikTok, Twitter):
//
//	results, err := matchmaker.Verify(ctx, requests,
//	    matchmaker.WithCookies(map[string]string{"sessionid": "..."}))
//
// Scrapers can be replaced wholesale for testing or custom transports:
//
//	results, err := matchmaker.Verify(ctx, requests,
//	    matchmaker.WithScraper(matchmaker.Instagram, fakeScraper))
package matchmaker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/matchmaker/batch"
	"github.com/codeGROOVE-dev/matchmaker/httpcache"
	"github.com/codeGROOVE-dev/matchmaker/instagram"
	"github.com/codeGROOVE-dev/matchmaker/profile"
	"github.com/codeGROOVE-dev/matchmaker/ratelimit"
	"github.com/codeGROOVE-dev/matchmaker/tiktok"
	"github.com/codeGROOVE-dev/matchmaker/twitter"
	"github.com/codeGROOVE-dev/matchmaker/youtube"
)

type (
	// VerificationRequest re-exports profile.VerificationRequest for convenience.
	VerificationRequest = profile.VerificationRequest
	// VerificationResult re-exports profile.VerificationResult for convenience.
	VerificationResult = profile.VerificationResult
	// Criteria re-exports profile.Criteria for convenience.
	Criteria = profile.Criteria
	// ProfileData re-exports profile.ProfileData for convenience.
	ProfileData = profile.ProfileData
	// Platform re-exports profile.Platform for convenience.
	Platform = profile.Platform
	// Scraper re-exports profile.Scraper for convenience.
	Scraper = profile.Scraper
)

// Re-export supported platforms.
const (
	Instagram = profile.Instagram
	TikTok    = profile.TikTok
	YouTube   = profile.YouTube
	Twitter   = profile.Twitter
)

// Re-export common errors.
var (
	ErrAuthRequired    = profile.ErrAuthRequired
	ErrNoCookies       = profile.ErrNoCookies
	ErrProfileNotFound = profile.ErrProfileNotFound
	ErrInvalidUsername = profile.ErrInvalidUsername
	ErrNeedsResolution = profile.ErrNeedsResolution
)

// Option configures a Verify call.
type Option func(*config)

type config struct {
	cookies        map[string]string
	cache          httpcache.Cacher
	logger         *slog.Logger
	scrapers       map[profile.Platform]profile.Scraper
	scrapeTimeout  time.Duration
	rateLimit      time.Duration
	browserCookies bool
}

// WithCookies sets explicit cookie values for authenticated platforms.
func WithCookies(cookies map[string]string) Option {
	return func(c *config) { c.cookies = cookies }
}

// WithBrowserCookies enables reading cookies from browser stores.
func WithBrowserCookies() Option {
	return func(c *config) { c.browserCookies = true }
}

// WithHTTPCache sets the HTTP cache for scrape responses.
func WithHTTPCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithScraper replaces the scraper for one platform. Useful for tests
// and for callers with their own fetch infrastructure.
func WithScraper(platform Platform, scraper Scraper) Option {
	return func(c *config) {
		if c.scrapers == nil {
			c.scrapers = make(map[profile.Platform]profile.Scraper)
		}
		c.scrapers[platform] = scraper
	}
}

// WithScrapeTimeout bounds each scrape call.
func WithScrapeTimeout(d time.Duration) Option {
	return func(c *config) { c.scrapeTimeout = d }
}

// WithRateLimit overrides the minimum spacing between scrapes per platform.
func WithRateLimit(d time.Duration) Option {
	return func(c *config) { c.rateLimit = d }
}

// DetectPlatform returns the platform for a profile URL, or "" if no
// platform matches.
func DetectPlatform(url string) Platform {
	switch {
	case instagram.Match(url):
		return Instagram
	case tiktok.Match(url):
		return TikTok
	case youtube.Match(url):
		return YouTube
	case twitter.Match(url):
		return Twitter
	default:
		return ""
	}
}

// Verify runs the full verification pipeline over the requests and
// returns exactly one result per request, in request order. Scrapers
// are built lazily for the platforms present in the request list; a
// platform whose client cannot be constructed (e.g. missing cookies)
// yields degraded results for its requests rather than failing the run.
func Verify(ctx context.Context, requests []VerificationRequest, opts ...Option) ([]VerificationResult, error) {
	cfg := &config{
		logger:        slog.Default(),
		scrapeTimeout: batch.DefaultScrapeTimeout,
		rateLimit:     ratelimit.DefaultDelay,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	scrapers := make(map[profile.Platform]profile.Scraper)
	for _, req := range requests {
		if _, done := scrapers[req.Platform]; done {
			continue
		}
		if injected, ok := cfg.scrapers[req.Platform]; ok {
			scrapers[req.Platform] = injected
			continue
		}
		scraper, err := newScraper(ctx, req.Platform, cfg)
		if err != nil {
			// Leave the platform unwired; the orchestrator degrades its
			// requests with the reason.
			cfg.logger.WarnContext(ctx, "scraper unavailable",
				"platform", req.Platform, "error", err)
			continue
		}
		scrapers[req.Platform] = scraper
	}

	orchestrator := batch.New(scrapers,
		batch.WithLogger(cfg.logger),
		batch.WithRateLimiter(ratelimit.New(cfg.rateLimit, cfg.logger)),
		batch.WithScrapeTimeout(cfg.scrapeTimeout),
	)

	return orchestrator.Run(ctx, requests), nil
}

func newScraper(ctx context.Context, platform Platform, cfg *config) (Scraper, error) {
	switch platform {
	case Instagram:
		var opts []instagram.Option
		if len(cfg.cookies) > 0 {
			opts = append(opts, instagram.WithCookies(cfg.cookies))
		}
		if cfg.browserCookies {
			opts = append(opts, instagram.WithBrowserCookies())
		}
		if cfg.cache != nil {
			opts = append(opts, instagram.WithHTTPCache(cfg.cache))
		}
		opts = append(opts, instagram.WithLogger(cfg.logger))
		return instagram.New(ctx, opts...)
	case TikTok:
		var opts []tiktok.Option
		if len(cfg.cookies) > 0 {
			opts = append(opts, tiktok.WithCookies(cfg.cookies))
		}
		if cfg.browserCookies {
			opts = append(opts, tiktok.WithBrowserCookies())
		}
		if cfg.cache != nil {
			opts = append(opts, tiktok.WithHTTPCache(cfg.cache))
		}
		opts = append(opts, tiktok.WithLogger(cfg.logger))
		return tiktok.New(ctx, opts...)
	case YouTube:
		var opts []youtube.Option
		if cfg.cache != nil {
			opts = append(opts, youtube.WithHTTPCache(cfg.cache))
		}
		opts = append(opts, youtube.WithLogger(cfg.logger))
		return youtube.New(ctx, opts...)
	case Twitter:
		var opts []twitter.Option
		if len(cfg.cookies) > 0 {
			opts = append(opts, twitter.WithCookies(cfg.cookies))
		}
		if cfg.browserCookies {
			opts = append(opts, twitter.WithBrowserCookies())
		}
		if cfg.cache != nil {
			opts = append(opts, twitter.WithHTTPCache(cfg.cache))
		}
		opts = append(opts, twitter.WithLogger(cfg.logger))
		return twitter.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported platform %q", platform)
	}
}
