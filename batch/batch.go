// Package batch orchestrates concurrent profile verification runs.
//
// Requests are split into dynamically-sized batches that run with
// concurrent fan-out; each request writes into its own result slot, so
// output order always mirrors input order regardless of completion
// order. A failure in one request never aborts its siblings: every
// failure mode collapses into a degraded zero-score result carrying a
// human-readable cause.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/matchmaker/analyze"
	"github.com/codeGROOVE-dev/matchmaker/profile"
	"github.com/codeGROOVE-dev/matchmaker/ratelimit"
)

// Batch sizing tiers.
const (
	smallRunLimit  = 10
	mediumRunLimit = 50
	smallBatchCap  = 8
	mediumBatch    = 15
	largeBatch     = 25
)

// Inter-batch pacing.
const (
	pauseThreshold = 15
	pausePerItem   = 50 * time.Millisecond
	maxPause       = 1500 * time.Millisecond
)

// DefaultScrapeTimeout bounds a single scrape call so one hung external
// dependency cannot stall an entire batch.
const DefaultScrapeTimeout = 15 * time.Second

// Size returns the batch size for a run of total requests: small runs
// use up to 8, medium runs 15, large runs 25.
func Size(total int) int {
	switch {
	case total <= smallRunLimit:
		return min(total, smallBatchCap)
	case total <= mediumRunLimit:
		return mediumBatch
	default:
		return largeBatch
	}
}

// Orchestrator fans verification requests out to per-platform scrapers
// under rate limits and joins the analyzed results in request order.
type Orchestrator struct {
	scrapers      map[profile.Platform]profile.Scraper
	limiter       *ratelimit.Limiter
	logger        *slog.Logger
	scrapeTimeout time.Duration
	now           func() time.Time
	currentYear   int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithRateLimiter sets the per-platform rate limiter.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(o *Orchestrator) { o.limiter = limiter }
}

// WithScrapeTimeout bounds each scrape call.
func WithScrapeTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.scrapeTimeout = d }
}

// WithClock sets the time source used for result timestamps and age
// estimation, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
		o.currentYear = now().Year()
	}
}

// New creates an Orchestrator over the given per-platform scrapers.
func New(scrapers map[profile.Platform]profile.Scraper, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		scrapers:      scrapers,
		logger:        slog.Default(),
		scrapeTimeout: DefaultScrapeTimeout,
		now:           time.Now,
		currentYear:   time.Now().Year(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.limiter == nil {
		o.limiter = ratelimit.New(ratelimit.DefaultDelay, o.logger)
	}
	return o
}

// Run verifies all requests and returns exactly one result per request,
// in request order. It never returns an error: every per-request failure
// is folded into a degraded result.
func (o *Orchestrator) Run(ctx context.Context, requests []profile.VerificationRequest) []profile.VerificationResult {
	results := make([]profile.VerificationResult, len(requests))
	if len(requests) == 0 {
		return results
	}

	size := Size(len(requests))
	o.logger.InfoContext(ctx, "starting verification run",
		"requests", len(requests), "batch_size", size)

	for start := 0; start < len(requests); start += size {
		end := min(start+size, len(requests))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = o.verifyOne(ctx, requests[idx])
			}(i)
		}
		wg.Wait()

		o.logger.Debug("batch complete", "from", start, "to", end)

		// Pace larger runs so bursts of batches don't overwhelm the
		// external platforms. No pause after the final batch.
		if size >= pauseThreshold && end < len(requests) {
			pause := min(time.Duration(size)*pausePerItem, maxPause)
			select {
			case <-time.After(pause):
			case <-ctx.Done():
			}
		}
	}

	return results
}

// verifyOne runs the full pipeline for a single request. All failure
// paths return a degraded result; a panic in scraping or analysis is
// contained here so sibling requests are unaffected.
func (o *Orchestrator) verifyOne(ctx context.Context, req profile.VerificationRequest) (result profile.VerificationResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.ErrorContext(ctx, "panic during verification",
				"identifier", req.ProfileIdentifier, "panic", r)
			result = o.degraded(req, fmt.Sprintf("internal error: %v", r))
		}
	}()

	scraper, ok := o.scrapers[req.Platform]
	if !ok {
		return o.degraded(req, fmt.Sprintf("no scraper configured for platform %q", req.Platform))
	}

	if err := o.limiter.Wait(ctx, string(req.Platform)); err != nil {
		return o.degraded(req, "canceled while waiting for rate limit: "+err.Error())
	}

	scrapeCtx, cancel := context.WithTimeout(ctx, o.scrapeTimeout)
	defer cancel()

	data, err := scraper.Scrape(scrapeCtx, req.ProfileIdentifier)
	if err != nil {
		return o.degraded(req, scrapeFailureReason(req, err))
	}
	if data == nil {
		return o.degraded(req, "scraper returned no profile data")
	}

	a := analyze.AnalyzeAt(data, req.Criteria, o.currentYear)
	score, verified, confidence := analyze.Aggregate(a)

	return profile.VerificationResult{
		ProfileIdentifier: req.ProfileIdentifier,
		Platform:          req.Platform,
		Verified:          verified,
		Confidence:        confidence,
		ExtractedData:     data,
		MatchAnalysis:     a,
		OverallScore:      score,
		ScrapedAt:         o.now(),
	}
}

// degraded builds the zero-score terminal failure result. The pipeline
// never retries; retrying is a caller concern.
func (o *Orchestrator) degraded(req profile.VerificationRequest, reason string) profile.VerificationResult {
	o.logger.Debug("degraded result", "identifier", req.ProfileIdentifier, "reason", reason)
	return profile.VerificationResult{
		ProfileIdentifier: req.ProfileIdentifier,
		Platform:          req.Platform,
		Verified:          false,
		Confidence:        0,
		OverallScore:      0,
		Errors:            []string{reason},
		ScrapedAt:         o.now(),
	}
}

// scrapeFailureReason maps scrape errors to human-readable causes.
func scrapeFailureReason(req profile.VerificationRequest, err error) string {
	switch {
	case errors.Is(err, profile.ErrInvalidUsername):
		return "invalid identifier: " + err.Error()
	case errors.Is(err, profile.ErrNeedsResolution):
		return "share link requires resolution before verification: " + err.Error()
	case errors.Is(err, profile.ErrProfileNotFound):
		return fmt.Sprintf("profile %q not found on %s", req.ProfileIdentifier, req.Platform)
	case errors.Is(err, context.DeadlineExceeded):
		return "scrape timed out"
	default:
		return "failed to fetch profile data: " + err.Error()
	}
}
