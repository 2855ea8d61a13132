// Package tiktok fetches TikTok profile data using authenticated session cookies.
package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/matchmaker/auth"
	"github.com/codeGROOVE-dev/matchmaker/httpcache"
	"github.com/codeGROOVE-dev/matchmaker/profile"
)

const platform = "tiktok"

// Match returns true if the URL is a TikTok URL.
func Match(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	return strings.Contains(lower, "tiktok.com/")
}

// AuthRequired returns true because TikTok requires authentication.
func AuthRequired() bool { return true }

// Ordered URL shapes. Short share links (vm.tiktok.com, vt.tiktok.com)
// carry an opaque code, not a username, so they are flagged for
// resolution instead of being parsed.
var (
	sharePattern   = regexp.MustCompile(`(?i)(?:vm|vt)\.tiktok\.com/`)
	videoPattern   = regexp.MustCompile(`(?i)tiktok\.com/@([^/?#]+)/video/`)
	livePattern    = regexp.MustCompile(`(?i)tiktok\.com/@([^/?#]+)/live`)
	profilePattern = regexp.MustCompile(`(?i)tiktok\.com/@([^/?#]+)`)
)

// System paths that must not be mistaken for handles.
var reservedNames = map[string]bool{
	"discover": true, "foryou": true, "following": true, "live": true,
	"search": true, "tag": true, "tiktok": true, "trending": true,
	"upload": true,
}

// ExtractUsername parses a profile identifier into a validated username.
// Accepts bare usernames, @usernames, and profile/video/live URLs.
// Share links return profile.ErrNeedsResolution.
func ExtractUsername(identifier string) (string, error) {
	s := strings.TrimSpace(identifier)
	if s == "" {
		return "", fmt.Errorf("%w: empty identifier", profile.ErrInvalidUsername)
	}

	if sharePattern.MatchString(s) {
		return "", fmt.Errorf("%w: %s", profile.ErrNeedsResolution, s)
	}

	if strings.Contains(strings.ToLower(s), "tiktok.com/") {
		var username string
		for _, p := range []*regexp.Regexp{videoPattern, livePattern, profilePattern} {
			if m := p.FindStringSubmatch(s); len(m) > 1 {
				username = m[1]
				break
			}
		}
		if username == "" {
			return "", fmt.Errorf("%w: malformed URL %s", profile.ErrInvalidUsername, s)
		}
		return validate(username)
	}

	return validate(strings.TrimPrefix(s, "@"))
}

func validate(username string) (string, error) {
	username = strings.ToLower(username)
	if reservedNames[username] {
		return "", fmt.Errorf("%w: reserved name %q", profile.ErrInvalidUsername, username)
	}
	if !IsValidUsername(username) {
		return "", fmt.Errorf("%w: %q", profile.ErrInvalidUsername, username)
	}
	return username, nil
}

// IsValidUsername validates a TikTok username: 1-24 characters,
// letters/digits/period/underscore only, no leading/trailing or doubled
// special characters.
func IsValidUsername(username string) bool {
	if len(username) < 1 || len(username) > 24 {
		return false
	}
	prevSpecial := false
	for i, r := range username {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		isSpecial := r == '.' || r == '_'
		if !isAlnum && !isSpecial {
			return false
		}
		if isSpecial && (i == 0 || i == len(username)-1 || prevSpecial) {
			return false
		}
		prevSpecial = isSpecial
	}
	return true
}

// Client handles TikTok requests with authenticated cookies.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cookies        map[string]string
	cache          httpcache.Cacher
	logger         *slog.Logger
	browserCookies bool
}

// WithCookies sets explicit cookie values.
func WithCookies(cookies map[string]string) Option {
	return func(c *config) { c.cookies = cookies }
}

// WithBrowserCookies enables reading cookies from browser stores.
func WithBrowserCookies() Option {
	return func(c *config) { c.browserCookies = true }
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New creates a TikTok client.
// Cookie sources: WithCookies > environment variables > browser.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	cookies, err := auth.Resolve(ctx, platform, cfg.cookies, cfg.browserCookies, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("cookie retrieval failed: %w", err)
	}
	if len(cookies) == 0 {
		envVars := auth.EnvVarsForPlatform(platform)
		return nil, fmt.Errorf("%w: set %v or use WithCookies/WithBrowserCookies",
			profile.ErrNoCookies, envVars)
	}

	jar, err := auth.Jar(platform, cookies)
	if err != nil {
		return nil, fmt.Errorf("cookie jar creation failed: %w", err)
	}

	cfg.logger.InfoContext(ctx, "tiktok client created", "cookie_count", len(cookies))

	return &Client{
		httpClient: &http.Client{Jar: jar, Timeout: 10 * time.Second},
		cache:      cfg.cache,
		logger:     cfg.logger,
	}, nil
}

// Scrape retrieves a TikTok profile by parsing the embedded hydration JSON
// from the profile page.
func (c *Client) Scrape(ctx context.Context, identifier string) (*profile.ProfileData, error) {
	username, err := ExtractUsername(identifier)
	if err != nil {
		return nil, err
	}

	profileURL := "https://www.tiktok.com/@" + username
	c.logger.InfoContext(ctx, "fetching tiktok profile", "url", profileURL, "username", username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	return parseProfile(string(body), username)
}

var hydrationPattern = regexp.MustCompile(
	`(?s)<script id="__UNIVERSAL_DATA_FOR_REHYDRATION__"[^>]*>(.*?)</script>`)

// hydrationData mirrors the parts of the rehydration payload we use.
type hydrationData struct {
	DefaultScope struct {
		UserDetail struct {
			UserInfo struct {
				User struct {
					UniqueID  string `json:"uniqueId"`
					Nickname  string `json:"nickname"`
					Signature string `json:"signature"`
					Verified  bool   `json:"verified"`
					Region    string `json:"region"`
				} `json:"user"`
				Stats struct {
					FollowerCount  int `json:"followerCount"`
					FollowingCount int `json:"followingCount"`
					VideoCount     int `json:"videoCount"`
				} `json:"stats"`
			} `json:"userInfo"`
		} `json:"webapp.user-detail"`
	} `json:"__DEFAULT_SCOPE__"`
}

func parseProfile(html, username string) (*profile.ProfileData, error) {
	m := hydrationPattern.FindStringSubmatch(html)
	if len(m) < 2 {
		return nil, fmt.Errorf("%w: no hydration data for %s", profile.ErrProfileNotFound, username)
	}

	var hd hydrationData
	if err := json.Unmarshal([]byte(m[1]), &hd); err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	info := hd.DefaultScope.UserDetail.UserInfo
	if info.User.UniqueID == "" {
		return nil, fmt.Errorf("%w: %s", profile.ErrProfileNotFound, username)
	}

	return &profile.ProfileData{
		Username:       info.User.UniqueID,
		DisplayName:    info.User.Nickname,
		Bio:            info.User.Signature,
		Location:       info.User.Region,
		IsVerified:     info.User.Verified,
		FollowerCount:  info.Stats.FollowerCount,
		FollowingCount: info.Stats.FollowingCount,
		PostCount:      info.Stats.VideoCount,
	}, nil
}
