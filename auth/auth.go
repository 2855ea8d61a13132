// Package auth resolves session cookies for the platforms that refuse
// anonymous profile reads: Instagram, TikTok, and Twitter. Cookies are
// tried from explicit options first, then environment variables, then
// local browser stores.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// Source yields cookies for one platform, or nil when it has none.
type Source interface {
	Cookies(ctx context.Context, platform string) (map[string]string, error)
}

// StaticSource serves a fixed cookie map, as provided via client
// options, regardless of platform.
type StaticSource map[string]string

// Cookies returns a copy of the static cookies.
func (s StaticSource) Cookies(_ context.Context, _ string) (map[string]string, error) {
	if len(s) == 0 {
		return nil, nil //nolint:nilnil // empty static source is not an error
	}
	return maps.Clone(s), nil
}

// Resolve walks the standard source chain for a platform: static
// cookies when provided, then environment variables, then browser
// stores when enabled. The first source with cookies wins.
func Resolve(ctx context.Context, platform string, static map[string]string, browser bool, logger *slog.Logger) (map[string]string, error) {
	sources := make([]Source, 0, 3)
	if len(static) > 0 {
		sources = append(sources, StaticSource(static))
	}
	sources = append(sources, EnvSource{})
	if browser {
		sources = append(sources, NewBrowserSource(logger))
	}
	return FirstOf(ctx, platform, sources...)
}

// FirstOf returns cookies from the first source that has any.
func FirstOf(ctx context.Context, platform string, sources ...Source) (map[string]string, error) {
	for _, src := range sources {
		cookies, err := src.Cookies(ctx, platform)
		if err != nil {
			return nil, err
		}
		if len(cookies) > 0 {
			return cookies, nil
		}
	}
	return nil, nil //nolint:nilnil // no source had cookies, but this is not an error
}

// Jar builds an http.CookieJar holding the cookies for the platform's
// domain, ready to hand to that platform's HTTP client.
func Jar(platform string, cookies map[string]string) (*cookiejar.Jar, error) {
	domain, ok := platformDomains[platform]
	if !ok {
		return nil, fmt.Errorf("no cookie domain known for platform %q", platform)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse("https://" + domain)
	if err != nil {
		return nil, err
	}

	var httpCookies []*http.Cookie
	for name, value := range cookies {
		if value == "" {
			continue
		}
		httpCookies = append(httpCookies, &http.Cookie{
			Name:   name,
			Value:  value,
			Domain: "." + domain,
			Path:   "/",
		})
	}

	jar.SetCookies(u, httpCookies)
	return jar, nil
}
