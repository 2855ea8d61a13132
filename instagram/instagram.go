// Package instagram fetches Instagram profile data using authenticated session cookies.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
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

const platform = "instagram"

// Match returns true if the URL is an Instagram URL.
func Match(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	return strings.Contains(lower, "instagram.com/")
}

// AuthRequired returns true because Instagram requires authentication.
func AuthRequired() bool { return true }

// Ordered URL shapes. Share links are matched first so they are flagged
// for resolution instead of yielding a bogus username.
var (
	sharePattern   = regexp.MustCompile(`(?i)instagram\.com/(?:share|s)/`)
	storiesPattern = regexp.MustCompile(`(?i)instagram\.com/stories/([^/?#]+)`)
	livePattern    = regexp.MustCompile(`(?i)instagram\.com/([^/?#]+)/live`)
	postPattern    = regexp.MustCompile(`(?i)instagram\.com/([^/?#]+)/(?:p|reel|tv)/`)
	profilePattern = regexp.MustCompile(`(?i)instagram\.com/([^/?#]+)`)
)

// Pages that look like usernames in profile URLs but aren't.
var reservedNames = map[string]bool{
	"about": true, "accounts": true, "developer": true, "directory": true,
	"explore": true, "instagram": true, "legal": true, "p": true,
	"press": true, "reel": true, "reels": true, "stories": true,
	"tv": true, "web": true,
}

// ExtractUsername parses a profile identifier into a validated username.
// Accepts bare usernames, @usernames, and profile/post/stories/live URLs.
// Share links return profile.ErrNeedsResolution.
func ExtractUsername(identifier string) (string, error) {
	s := strings.TrimSpace(identifier)
	if s == "" {
		return "", fmt.Errorf("%w: empty identifier", profile.ErrInvalidUsername)
	}

	if strings.Contains(strings.ToLower(s), "instagram.com/") {
		if sharePattern.MatchString(s) {
			return "", fmt.Errorf("%w: %s", profile.ErrNeedsResolution, s)
		}
		var username string
		for _, p := range []*regexp.Regexp{storiesPattern, livePattern, postPattern, profilePattern} {
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

// IsValidUsername validates an Instagram username: 1-24 characters,
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

// Client handles Instagram requests with authenticated cookies.
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

// New creates an Instagram client.
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

	cfg.logger.InfoContext(ctx, "instagram client created", "cookie_count", len(cookies))

	return &Client{
		httpClient: &http.Client{Jar: jar, Timeout: 10 * time.Second},
		cache:      cfg.cache,
		logger:     cfg.logger,
	}, nil
}

// webProfileResponse mirrors the parts of the web_profile_info API we use.
type webProfileResponse struct {
	Data struct {
		User struct {
			Username       string `json:"username"`
			FullName       string `json:"full_name"`
			Biography      string `json:"biography"`
			IsVerified     bool   `json:"is_verified"`
			ExternalURL    string `json:"external_url"`
			EdgeFollowedBy struct {
				Count int `json:"count"`
			} `json:"edge_followed_by"`
			EdgeFollow struct {
				Count int `json:"count"`
			} `json:"edge_follow"`
			EdgeOwnerToTimelineMedia struct {
				Count int `json:"count"`
				Edges []struct {
					Node struct {
						EdgeMediaToCaption struct {
							Edges []struct {
								Node struct {
									Text string `json:"text"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"edge_media_to_caption"`
						EdgeLikedBy struct {
							Count int `json:"count"`
						} `json:"edge_liked_by"`
						EdgeMediaToComment struct {
							Count int `json:"count"`
						} `json:"edge_media_to_comment"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
}

// Scrape retrieves an Instagram profile via the web profile API.
func (c *Client) Scrape(ctx context.Context, identifier string) (*profile.ProfileData, error) {
	username, err := ExtractUsername(identifier)
	if err != nil {
		return nil, err
	}

	apiURL := "https://i.instagram.com/api/v1/users/web_profile_info/?username=" + username
	c.logger.InfoContext(ctx, "fetching instagram profile", "username", username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("X-IG-App-ID", "936619743392459")
	req.Header.Set("Accept", "application/json")

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		var httpErr *httpcache.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", profile.ErrProfileNotFound, username)
		}
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	return parseWebProfile(body, username)
}

func parseWebProfile(body []byte, username string) (*profile.ProfileData, error) {
	var resp webProfileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	u := resp.Data.User
	if u.Username == "" {
		return nil, fmt.Errorf("%w: %s", profile.ErrProfileNotFound, username)
	}

	data := &profile.ProfileData{
		Username:       u.Username,
		DisplayName:    u.FullName,
		Bio:            u.Biography,
		Website:        u.ExternalURL,
		IsVerified:     u.IsVerified,
		FollowerCount:  u.EdgeFollowedBy.Count,
		FollowingCount: u.EdgeFollow.Count,
		PostCount:      u.EdgeOwnerToTimelineMedia.Count,
	}

	for _, edge := range u.EdgeOwnerToTimelineMedia.Edges {
		var caption string
		if captions := edge.Node.EdgeMediaToCaption.Edges; len(captions) > 0 {
			caption = captions[0].Node.Text
		}
		data.RecentPosts = append(data.RecentPosts, profile.Post{
			Content:  caption,
			Likes:    edge.Node.EdgeLikedBy.Count,
			Comments: edge.Node.EdgeMediaToComment.Count,
			Hashtags: extractHashtags(caption),
		})
	}

	return data, nil
}

var hashtagPattern = regexp.MustCompile(`#[\p{L}\d_]+`)

func extractHashtags(text string) []string {
	return hashtagPattern.FindAllString(text, -1)
}
