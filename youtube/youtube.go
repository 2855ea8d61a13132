// Package youtube fetches YouTube channel profile data.
package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/matchmaker/htmlutil"
	"github.com/codeGROOVE-dev/matchmaker/httpcache"
	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// Match returns true if the URL is a YouTube channel/user URL.
func Match(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	if strings.Contains(lower, "youtu.be/") {
		return true
	}
	return strings.Contains(lower, "youtube.com/") &&
		(strings.Contains(lower, "/@") ||
			strings.Contains(lower, "/channel/") ||
			strings.Contains(lower, "/c/") ||
			strings.Contains(lower, "/user/"))
}

// AuthRequired returns false because YouTube channels are public.
func AuthRequired() bool { return false }

// Ordered URL shapes. youtu.be short links point at videos, not channels,
// so they are flagged for resolution.
var (
	sharePattern   = regexp.MustCompile(`(?i)youtu\.be/`)
	handlePattern  = regexp.MustCompile(`(?i)youtube\.com/@([^/?#]+)`)
	channelPattern = regexp.MustCompile(`(?i)youtube\.com/channel/([^/?#]+)`)
	customPattern  = regexp.MustCompile(`(?i)youtube\.com/c/([^/?#]+)`)
	userPattern    = regexp.MustCompile(`(?i)youtube\.com/user/([^/?#]+)`)
)

// System paths that must not be mistaken for handles.
var reservedNames = map[string]bool{
	"feed": true, "gaming": true, "music": true, "playlist": true,
	"results": true, "shorts": true, "watch": true, "youtube": true,
}

// ExtractUsername parses a channel identifier into a validated handle.
// Accepts bare handles, @handles, and @handle/channel/c/user URLs.
// youtu.be share links return profile.ErrNeedsResolution.
func ExtractUsername(identifier string) (string, error) {
	s := strings.TrimSpace(identifier)
	if s == "" {
		return "", fmt.Errorf("%w: empty identifier", profile.ErrInvalidUsername)
	}

	if sharePattern.MatchString(s) {
		return "", fmt.Errorf("%w: %s", profile.ErrNeedsResolution, s)
	}

	if strings.Contains(strings.ToLower(s), "youtube.com/") {
		for _, p := range []*regexp.Regexp{handlePattern, channelPattern, customPattern, userPattern} {
			if m := p.FindStringSubmatch(s); len(m) > 1 {
				return validate(m[1])
			}
		}
		return "", fmt.Errorf("%w: malformed URL %s", profile.ErrInvalidUsername, s)
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

// IsValidUsername validates a YouTube handle or channel ID: 1-24
// characters, letters/digits/period/underscore/hyphen, no leading/trailing
// or doubled special characters. Channel IDs (UC...) are longer and are
// accepted as-is.
func IsValidUsername(username string) bool {
	// Channel IDs are 24-char base64-ish strings starting with UC.
	if strings.HasPrefix(username, "UC") && len(username) == 24 {
		return true
	}
	if len(username) < 1 || len(username) > 24 {
		return false
	}
	prevSpecial := false
	for i, r := range username {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		isSpecial := r == '.' || r == '_' || r == '-'
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

// Client handles YouTube requests.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache  httpcache.Cacher
	logger *slog.Logger
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New creates a YouTube client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cfg.cache,
		logger:     cfg.logger,
	}, nil
}

// Scrape retrieves a YouTube channel profile.
func (c *Client) Scrape(ctx context.Context, identifier string) (*profile.ProfileData, error) {
	username, err := ExtractUsername(identifier)
	if err != nil {
		return nil, err
	}

	channelURL := "https://www.youtube.com/@" + username
	if strings.HasPrefix(username, "UC") && len(username) == 24 {
		channelURL = "https://www.youtube.com/channel/" + username
	}

	c.logger.InfoContext(ctx, "fetching youtube profile", "url", channelURL, "username", username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, channelURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	return parseChannel(string(body), username)
}

var (
	subPattern   = regexp.MustCompile(`([\d.]+[KMB]?)\s*subscribers`)
	videoPattern = regexp.MustCompile(`([\d,]+)\s*videos`)
)

func parseChannel(html, username string) (*profile.ProfileData, error) {
	data := &profile.ProfileData{Username: username}

	data.DisplayName = htmlutil.Title(html)
	if idx := strings.Index(data.DisplayName, " - YouTube"); idx != -1 {
		data.DisplayName = strings.TrimSpace(data.DisplayName[:idx])
	}
	data.Bio = htmlutil.Description(html)

	if m := subPattern.FindStringSubmatch(html); len(m) > 1 {
		data.FollowerCount = parseCompactCount(m[1])
	}
	if m := videoPattern.FindStringSubmatch(html); len(m) > 1 {
		count, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil {
			data.PostCount = count
		}
	}

	if data.DisplayName == "" && data.Bio == "" {
		return nil, fmt.Errorf("%w: %s", profile.ErrProfileNotFound, username)
	}
	return data, nil
}

// parseCompactCount converts strings like "1.2M" or "850K" to an integer.
func parseCompactCount(s string) int {
	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1e3
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		multiplier = 1e6
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "B"):
		multiplier = 1e9
		s = strings.TrimSuffix(s, "B")
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(n * multiplier)
}
