package analyze

import (
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// brandProfile holds the positive/negative matching rules for one brand.
type brandProfile struct {
	contentKeywords []string // content that suggests affinity
	competitors     []string // rival brands whose mention is a red flag
}

// brandProfiles is the curated set of known brands. Lookup is by
// lower-cased brand name.
var brandProfiles = map[string]brandProfile{
	"nike": {
		contentKeywords: []string{"running", "sport", "athlete", "training", "sneakers", "just do it"},
		competitors:     []string{"adidas", "puma", "reebok", "under armour", "new balance"},
	},
	"adidas": {
		contentKeywords: []string{"football", "sport", "training", "sneakers", "three stripes", "originals"},
		competitors:     []string{"nike", "puma", "reebok", "under armour", "new balance"},
	},
	"gymshark": {
		contentKeywords: []string{"gym", "lifting", "bodybuilding", "fitness", "athleisure"},
		competitors:     []string{"nike", "adidas", "alphalete", "myprotein"},
	},
	"zara": {
		contentKeywords: []string{"fashion", "outfit", "style", "haul", "moda", "look"},
		competitors:     []string{"h&m", "mango", "shein", "primark", "uniqlo"},
	},
	"sephora": {
		contentKeywords: []string{"makeup", "beauty", "skincare", "tutorial", "haul"},
		competitors:     []string{"ulta", "douglas", "primor"},
	},
	"red bull": {
		contentKeywords: []string{"extreme", "adrenaline", "racing", "energy", "adventure"},
		competitors:     []string{"monster", "prime", "celsius"},
	},
}

// Brand score adjustments around the neutral baseline of 50.
const (
	brandBaseline        = 50
	brandKeywordBonus    = 5
	competitorPenalty    = 15
	genericContentBonus  = 5
	verifiedAccountBonus = 10
	engagementBonus      = 10
	engagementPenalty    = 10
	strongEngagement     = 1000.0
	weakEngagement       = 100.0
)

// analyzeBrand scores brand compatibility from a neutral baseline.
// Positive signals land in Reasons and negative signals in RedFlags;
// the two lists are never merged.
func analyzeBrand(data *profile.ProfileData, criteria profile.Criteria) profile.BrandCompatibility {
	text := profileText(data)
	score := brandBaseline

	var reasons, redFlags []string

	if brand, ok := brandProfiles[strings.ToLower(criteria.BrandName)]; ok {
		for _, kw := range brand.contentKeywords {
			if strings.Contains(text, kw) {
				score += brandKeywordBonus
				reasons = append(reasons, "content mentions "+kw)
			}
		}
		for _, rival := range brand.competitors {
			if strings.Contains(text, rival) {
				score -= competitorPenalty
				redFlags = append(redFlags, "mentions competitor "+rival)
			}
		}
	} else {
		score += genericContentBonus
		reasons = append(reasons, "no known conflicts with brand")
	}

	if data != nil && data.IsVerified {
		score += verifiedAccountBonus
		reasons = append(reasons, "verified account")
	}

	if data != nil && len(data.RecentPosts) > 0 {
		avg := meanLikes(data.RecentPosts)
		switch {
		case avg >= strongEngagement:
			score += engagementBonus
			reasons = append(reasons, fmt.Sprintf("strong engagement (%.0f avg likes)", avg))
		case avg < weakEngagement:
			score -= engagementPenalty
			redFlags = append(redFlags, fmt.Sprintf("weak engagement (%.0f avg likes)", avg))
		}
	}

	score = clamp(score)

	return profile.BrandCompatibility{
		Score:       score,
		Reasons:     reasons,
		RedFlags:    redFlags,
		Explanation: brandExplanation(score, len(redFlags)),
	}
}

func brandExplanation(score, flags int) string {
	switch {
	case flags > 0 && score < brandBaseline:
		return fmt.Sprintf("brand risk detected (%d red flags)", flags)
	case score >= 70:
		return "strong brand fit"
	case score >= brandBaseline:
		return "acceptable brand fit"
	default:
		return "weak brand fit"
	}
}
