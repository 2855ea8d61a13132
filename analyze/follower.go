package analyze

import (
	"fmt"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// Engagement rate thresholds and adjustments.
const (
	highEngagementRate = 0.05
	lowEngagementRate  = 0.01
	highQualityBonus   = 10
	lowQualityPenalty  = 20
	boundViolation     = 50
)

// analyzeFollowers validates the follower count against the requested
// bounds and grades engagement quality from mean likes per post. Both
// bound checks are independent; violating each costs 50 points.
func analyzeFollowers(data *profile.ProfileData, criteria profile.Criteria) profile.FollowerValidation {
	followers := 0
	if data != nil {
		followers = data.FollowerCount
	}

	score := 100
	inRange := true

	if criteria.MinFollowers > 0 && followers < criteria.MinFollowers {
		score -= boundViolation
		inRange = false
	}
	if criteria.MaxFollowers > 0 && followers > criteria.MaxFollowers {
		score -= boundViolation
		inRange = false
	}

	// Engagement only grades profiles with observable posts and followers;
	// missing data stays neutral.
	quality := profile.QualityMedium
	rate := 0.0
	if followers > 0 && data != nil && len(data.RecentPosts) > 0 {
		rate = meanLikes(data.RecentPosts) / float64(followers)
		switch {
		case rate > highEngagementRate:
			quality = profile.QualityHigh
			score += highQualityBonus
		case rate < lowEngagementRate:
			quality = profile.QualityLow
			score -= lowQualityPenalty
		}
	}

	score = clamp(score)

	explanation := fmt.Sprintf("%d followers, %s engagement", followers, quality)
	if !inRange {
		explanation = fmt.Sprintf("%d followers outside requested range, %s engagement", followers, quality)
	}

	return profile.FollowerValidation{
		Score:       score,
		InRange:     inRange,
		Quality:     quality,
		Explanation: explanation,
	}
}

func meanLikes(posts []profile.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	total := 0
	for _, p := range posts {
		total += p.Likes
	}
	return float64(total) / float64(len(posts))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
