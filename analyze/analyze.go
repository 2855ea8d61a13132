// Package analyze scores profile data against brand search criteria.
//
// The four sub-analyzers are pure functions of (ProfileData, Criteria):
// given identical inputs they produce identical output, with no hidden
// randomness, so verification runs are reproducible. The only external
// input, the current year for birth-year age conversion, is passed
// explicitly.
package analyze

import (
	"math"
	"time"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// Aggregation weights over the four sub-scores.
const (
	nicheShare       = 0.30
	brandShare       = 0.25
	followerShare    = 0.25
	demographicShare = 0.20

	// VerifiedThreshold is the overall score at which a profile counts
	// as verified.
	VerifiedThreshold = 70
)

// Analyze runs all four sub-analyzers against the profile.
func Analyze(data *profile.ProfileData, criteria profile.Criteria) profile.MatchAnalysis {
	return AnalyzeAt(data, criteria, time.Now().Year())
}

// AnalyzeAt is Analyze with an explicit current year, for deterministic
// birth-year age estimation in tests.
func AnalyzeAt(data *profile.ProfileData, criteria profile.Criteria, currentYear int) profile.MatchAnalysis {
	return profile.MatchAnalysis{
		NicheAlignment:     analyzeNiche(data, criteria),
		DemographicMatch:   analyzeDemographics(data, criteria, currentYear),
		BrandCompatibility: analyzeBrand(data, criteria),
		FollowerValidation: analyzeFollowers(data, criteria),
	}
}

// Aggregate combines the four sub-scores into the overall weighted score,
// the verified decision, and the derived confidence.
func Aggregate(analysis profile.MatchAnalysis) (score int, verified bool, confidence float64) {
	weighted := nicheShare*float64(analysis.NicheAlignment.Score) +
		brandShare*float64(analysis.BrandCompatibility.Score) +
		followerShare*float64(analysis.FollowerValidation.Score) +
		demographicShare*float64(analysis.DemographicMatch.Score)

	score = clamp(int(math.Round(weighted)))
	verified = score >= VerifiedThreshold
	confidence = float64(score) / 100
	return score, verified, confidence
}
