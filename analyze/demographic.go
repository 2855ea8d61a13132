package analyze

import (
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/matchmaker/locale"
	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// Demographic sub-weights. An absent criterion is credited in full.
const (
	locationWeight = 40
	ageWeight      = 30
	genderWeight   = 30

	// Indeterminate gender gets partial credit rather than a penalty.
	genderPartialCredit = genderWeight / 2
)

// analyzeDemographics combines location, age, and gender estimates into a
// single 0-100 score. currentYear feeds the birth-year age estimator.
func analyzeDemographics(data *profile.ProfileData, criteria profile.Criteria, currentYear int) profile.DemographicMatch {
	result := profile.DemographicMatch{}
	score := 0
	var notes []string

	// Location: a dedicated locale provider when one covers the target,
	// substring containment otherwise.
	switch {
	case criteria.Location == "":
		score += locationWeight
		result.LocationMatch = true
		notes = append(notes, "no location requested")
	default:
		if provider, ok := locale.ForTarget(criteria.Location); ok {
			det := provider.Detect(data)
			result.LocationMatch = det.Match
			if det.Match {
				score += locationWeight
				notes = append(notes, fmt.Sprintf("locale %s detected (confidence %d)", provider.Name(), det.Confidence))
			} else {
				notes = append(notes, fmt.Sprintf("locale %s not detected (confidence %d)", provider.Name(), det.Confidence))
			}
		} else if data != nil && locale.ContainsFold(data.Location, criteria.Location) {
			score += locationWeight
			result.LocationMatch = true
			notes = append(notes, "location matches "+criteria.Location)
		} else {
			notes = append(notes, "location does not match "+criteria.Location)
		}
	}

	// Age: estimate only when an age bound was requested; an
	// unestimatable age is treated as satisfied, not penalized.
	if criteria.MinAge == 0 && criteria.MaxAge == 0 {
		score += ageWeight
		notes = append(notes, "no age range requested")
	} else if est, ok := estimateAge(data, currentYear); ok {
		result.EstimatedAge = est.age
		inRange := (criteria.MinAge == 0 || est.age >= criteria.MinAge) &&
			(criteria.MaxAge == 0 || est.age <= criteria.MaxAge)
		if inRange {
			score += ageWeight
			notes = append(notes, fmt.Sprintf("estimated age %d via %s (confidence %d)", est.age, est.method, est.confidence))
		} else {
			notes = append(notes, fmt.Sprintf("estimated age %d outside requested range", est.age))
		}
	} else {
		score += ageWeight
		notes = append(notes, "could not determine age")
	}

	// Gender: indeterminate is partial credit, never a penalty.
	if criteria.Gender == "" || criteria.Gender == profile.Any {
		score += genderWeight
		notes = append(notes, "any gender accepted")
	} else {
		estimated := estimateGender(data)
		result.EstimatedGender = estimated
		switch estimated {
		case criteria.Gender:
			score += genderWeight
			notes = append(notes, "estimated gender matches")
		case profile.Any:
			score += genderPartialCredit
			notes = append(notes, "gender indeterminate")
		default:
			notes = append(notes, "estimated gender does not match")
		}
	}

	result.Score = clamp(score)
	result.Explanation = strings.Join(notes, "; ")
	return result
}
