package analyze

import (
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// nicheKeywords maps each supported niche to the terms that signal it.
// Bilingual where it matters: most Spanish-market profiles mix languages.
var nicheKeywords = map[string][]string{
	"fitness": {
		"fitness", "workout", "gym", "training", "entrenamiento", "atleta",
		"athlete", "muscle", "cardio", "crossfit", "yoga", "running",
		"ejercicio", "fit",
	},
	"beauty": {
		"beauty", "makeup", "skincare", "cosmetics", "maquillaje", "belleza",
		"tutorial", "glam", "lashes",
	},
	"fashion": {
		"fashion", "style", "outfit", "ootd", "moda", "estilo", "look",
		"streetwear", "designer",
	},
	"food": {
		"food", "foodie", "recipe", "cooking", "receta", "cocina", "chef",
		"restaurant", "gastronomía", "gastronomia", "delicious",
	},
	"travel": {
		"travel", "wanderlust", "adventure", "viaje", "viajar", "explore",
		"destination", "backpacking", "turismo",
	},
	"gaming": {
		"gaming", "gamer", "esports", "twitch", "stream", "streamer",
		"videojuegos", "playstation", "xbox", "nintendo",
	},
	"tech": {
		"tech", "technology", "coding", "software", "developer", "gadget",
		"tecnología", "tecnologia", "programming", "ai",
	},
	"music": {
		"music", "musician", "dj", "concert", "producer", "música", "musica",
		"cantante", "singer", "band",
	},
	"lifestyle": {
		"lifestyle", "daily", "vlog", "inspiration", "wellness", "mindfulness",
		"vida", "motivación", "motivacion",
	},
}

// Per-hit weights for the niche score.
const (
	generalHitWeight = 10
	brandHitWeight   = 15
)

// analyzeNiche counts keyword overlap between the profile's text content
// and the requested niches, plus a brand-specific keyword set when the
// brand is known. Each keyword counts once regardless of repetition.
func analyzeNiche(data *profile.ProfileData, criteria profile.Criteria) profile.NicheAlignment {
	text := profileText(data)

	var matched []string
	seen := make(map[string]bool)

	generalHits := 0
	for _, niche := range criteria.Niches {
		keywords, ok := nicheKeywords[strings.ToLower(niche)]
		if !ok {
			// Unknown niche: the niche name itself is the only keyword.
			keywords = []string{strings.ToLower(niche)}
		}
		for _, kw := range keywords {
			if !seen[kw] && strings.Contains(text, kw) {
				seen[kw] = true
				matched = append(matched, kw)
				generalHits++
			}
		}
	}

	brandHits := 0
	if brand, ok := brandProfiles[strings.ToLower(criteria.BrandName)]; ok {
		for _, kw := range brand.contentKeywords {
			if !seen[kw] && strings.Contains(text, kw) {
				seen[kw] = true
				matched = append(matched, kw)
				brandHits++
			}
		}
	}

	score := min(100, generalHits*generalHitWeight+brandHits*brandHitWeight)

	return profile.NicheAlignment{
		Score:           score,
		MatchedKeywords: matched,
		Explanation:     nicheExplanation(score, len(matched)),
	}
}

func nicheExplanation(score, hits int) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("excellent niche alignment (%d keyword matches)", hits)
	case score >= 60:
		return fmt.Sprintf("good niche alignment (%d keyword matches)", hits)
	case score >= 40:
		return fmt.Sprintf("moderate niche alignment (%d keyword matches)", hits)
	default:
		return fmt.Sprintf("poor niche alignment (%d keyword matches)", hits)
	}
}

// profileText concatenates bio, post content, and hashtags, lower-cased,
// for keyword matching.
func profileText(data *profile.ProfileData) string {
	if data == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(data.Bio)
	for _, post := range data.RecentPosts {
		b.WriteString(" ")
		b.WriteString(post.Content)
		for _, tag := range post.Hashtags {
			b.WriteString(" ")
			b.WriteString(tag)
		}
	}
	return strings.ToLower(b.String())
}
