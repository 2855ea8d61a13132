package analyze

import (
	"strings"
	"unicode"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// Pronoun and role-noun vocabularies in English and Spanish. Matching is
// a bag-of-words majority vote; ties and zero hits are indeterminate.
// Single-word markers match whole words only, so "moment" never counts
// as a "mom" hit; markers with punctuation ("she/her") match as
// substrings.
var (
	maleMarkers = []string{
		"he/him", "él", "father", "dad", "papá", "padre", "hombre",
		"husband", "marido", "mr", "king", "guy", "boy", "chico",
	}
	femaleMarkers = []string{
		"she/her", "ella", "mother", "mom", "mamá", "madre", "mujer",
		"wife", "esposa", "mrs", "queen", "girl", "chica",
	}
)

// estimateGender votes over gendered vocabulary in the profile text.
// Returns profile.Any when the vote is tied or no markers are found.
func estimateGender(data *profile.ProfileData) profile.Gender {
	text := profileText(data)

	words := make(map[string]int)
	for _, w := range strings.FieldsFunc(text, isNotLetter) {
		words[w]++
	}

	maleHits := markerHits(text, words, maleMarkers)
	femaleHits := markerHits(text, words, femaleMarkers)

	switch {
	case maleHits > femaleHits:
		return profile.Male
	case femaleHits > maleHits:
		return profile.Female
	default:
		return profile.Any
	}
}

func markerHits(text string, words map[string]int, markers []string) int {
	hits := 0
	for _, marker := range markers {
		if strings.ContainsFunc(marker, isNotLetter) {
			hits += strings.Count(text, marker)
			continue
		}
		hits += words[marker]
	}
	return hits
}

func isNotLetter(r rune) bool { return !unicode.IsLetter(r) }
