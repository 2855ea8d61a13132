// Package htmlutil pulls display fields out of raw profile pages, for
// platforms scraped from HTML rather than a JSON API.
package htmlutil

import (
	"html"
	"regexp"
	"strings"
)

// Candidate patterns are tried in order; the first capture wins.
var (
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`),
		regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`),
	}
	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`),
	}
)

// Title returns the page title: the <title> tag, then og:title, then
// the first <h1>.
func Title(page string) string {
	return firstCapture(page, titlePatterns)
}

// Description returns the meta description, falling back to
// og:description.
func Description(page string) string {
	return firstCapture(page, descriptionPatterns)
}

func firstCapture(page string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(page); len(m) > 1 {
			return strings.TrimSpace(html.UnescapeString(m[1]))
		}
	}
	return ""
}
