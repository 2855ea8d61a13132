// Package twitter fetches Twitter/X profile data using authenticated session cookies.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/matchmaker/auth"
	"github.com/codeGROOVE-dev/matchmaker/httpcache"
	"github.com/codeGROOVE-dev/matchmaker/profile"
)

const platform = "twitter"

// Match returns true if the URL is a Twitter/X URL.
func Match(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	return strings.Contains(lower, "twitter.com/") ||
		strings.Contains(lower, "x.com/") ||
		strings.Contains(lower, "t.co/")
}

// AuthRequired returns true because Twitter requires authentication.
func AuthRequired() bool { return true }

// Ordered URL shapes. t.co links are opaque shorteners and are flagged
// for resolution.
var (
	sharePattern   = regexp.MustCompile(`(?i)(?:^|//)t\.co/`)
	statusPattern  = regexp.MustCompile(`(?i)(?:twitter|x)\.com/([^/?#]+)/status/`)
	livePattern    = regexp.MustCompile(`(?i)(?:twitter|x)\.com/i/broadcasts/`)
	profilePattern = regexp.MustCompile(`(?i)(?:twitter|x)\.com/([^/?#]+)`)
)

// System pages that must not be mistaken for usernames.
var reservedNames = map[string]bool{
	"about": true, "ads": true, "compose": true, "explore": true,
	"hashtag": true, "help": true, "home": true, "i": true,
	"intent": true, "login": true, "logout": true, "messages": true,
	"notifications": true, "privacy": true, "search": true,
	"settings": true, "share": true, "signup": true, "tos": true,
	"twitter": true, "x": true,
}

// ExtractUsername parses a profile identifier into a validated username.
// Accepts bare usernames, @usernames, and profile/status URLs.
// t.co share links return profile.ErrNeedsResolution.
func ExtractUsername(identifier string) (string, error) {
	s := strings.TrimSpace(identifier)
	if s == "" {
		return "", fmt.Errorf("%w: empty identifier", profile.ErrInvalidUsername)
	}

	if sharePattern.MatchString(s) {
		return "", fmt.Errorf("%w: %s", profile.ErrNeedsResolution, s)
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "twitter.com/") || strings.Contains(lower, "x.com/") {
		if livePattern.MatchString(s) {
			return "", fmt.Errorf("%w: broadcast URL has no username: %s", profile.ErrInvalidUsername, s)
		}
		var username string
		for _, p := range []*regexp.Regexp{statusPattern, profilePattern} {
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
	if reservedNames[strings.ToLower(username)] {
		return "", fmt.Errorf("%w: reserved name %q", profile.ErrInvalidUsername, username)
	}
	if !IsValidUsername(username) {
		return "", fmt.Errorf("%w: %q", profile.ErrInvalidUsername, username)
	}
	return username, nil
}

// IsValidUsername validates a Twitter username: 1-15 characters,
// alphanumeric or underscore, no leading/trailing or doubled underscores.
func IsValidUsername(username string) bool {
	if len(username) < 1 || len(username) > 15 {
		return false
	}
	prevSpecial := false
	for i, r := range username {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		isSpecial := r == '_'
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

// Client handles Twitter/X requests with authenticated cookies.
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

// New creates a Twitter client.
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

	cfg.logger.InfoContext(ctx, "twitter client created", "cookie_count", len(cookies))

	return &Client{
		httpClient: &http.Client{Jar: jar, Timeout: 10 * time.Second},
		cache:      cfg.cache,
		logger:     cfg.logger,
	}, nil
}

// userResponse mirrors the parts of the UserByScreenName GraphQL result we use.
type userResponse struct {
	Data struct {
		User struct {
			Result struct {
				Legacy struct {
					ScreenName     string `json:"screen_name"`
					Name           string `json:"name"`
					Description    string `json:"description"`
					Location       string `json:"location"`
					FollowersCount int    `json:"followers_count"`
					FriendsCount   int    `json:"friends_count"`
					StatusesCount  int    `json:"statuses_count"`
					Verified       bool   `json:"verified"`
					URL            string `json:"url"`
				} `json:"legacy"`
				IsBlueVerified bool `json:"is_blue_verified"`
			} `json:"result"`
		} `json:"user"`
	} `json:"data"`
}

// Scrape retrieves a Twitter profile using the GraphQL API.
func (c *Client) Scrape(ctx context.Context, identifier string) (*profile.ProfileData, error) {
	username, err := ExtractUsername(identifier)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "fetching twitter profile", "username", username)

	variables, err := json.Marshal(map[string]any{
		"screen_name":              username,
		"withSafetyModeUserFields": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal variables: %w", err)
	}

	queryID := "-oaLodhGbbnzJBACb1kk2Q" // UserByScreenName operation ID
	apiURL := fmt.Sprintf("https://x.com/i/api/graphql/%s/UserByScreenName?variables=%s",
		queryID, url.QueryEscape(string(variables)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://x.com/"+username)
	for _, cookie := range c.httpClient.Jar.Cookies(req.URL) {
		if cookie.Name == "ct0" {
			req.Header.Set("X-Csrf-Token", cookie.Value)
		}
	}

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	return parseUserResponse(body, username)
}

func parseUserResponse(body []byte, username string) (*profile.ProfileData, error) {
	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	legacy := resp.Data.User.Result.Legacy
	if legacy.ScreenName == "" {
		return nil, fmt.Errorf("%w: %s", profile.ErrProfileNotFound, username)
	}

	return &profile.ProfileData{
		Username:       legacy.ScreenName,
		DisplayName:    legacy.Name,
		Bio:            legacy.Description,
		Location:       legacy.Location,
		Website:        legacy.URL,
		IsVerified:     legacy.Verified || resp.Data.User.Result.IsBlueVerified,
		FollowerCount:  legacy.FollowersCount,
		FollowingCount: legacy.FriendsCount,
		PostCount:      legacy.StatusesCount,
	}, nil
}
