// Package locale provides pluggable heuristics for detecting whether a
// profile belongs to a target locale. Providers accumulate weighted
// signals into a 0-100 confidence score, the same shape of multi-signal
// scoring used elsewhere in the pipeline.
package locale

import (
	"strings"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// Detection is the outcome of running a provider against a profile.
type Detection struct {
	Confidence int      // 0-100
	Match      bool     // true when confidence clears the provider's threshold
	Signals    []string // human-readable evidence, in detection order
}

// Provider detects whether a profile belongs to one locale.
type Provider interface {
	// Name identifies the locale, e.g. "es".
	Name() string
	// Handles reports whether this provider covers the given target
	// location criterion (country name, city, locale code).
	Handles(target string) bool
	// Detect scores the profile against the locale.
	Detect(data *profile.ProfileData) Detection
}

// providers is the registry of shipped locale providers.
var providers = []Provider{NewSpanish()}

// Register adds a provider to the registry. Not safe to call concurrently
// with ForTarget; register during initialization.
func Register(p Provider) {
	providers = append(providers, p)
}

// ForTarget returns the provider covering the given target location, if any.
func ForTarget(target string) (Provider, bool) {
	for _, p := range providers {
		if p.Handles(target) {
			return p, true
		}
	}
	return nil, false
}

// ContainsFold reports case-insensitive substring containment, the
// fallback location check for locales without a dedicated provider.
func ContainsFold(haystack, needle string) bool {
	if haystack == "" || needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
