package analyze

import (
	"strings"
	"testing"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

func TestAnalyzeDemographicsNoCriteria(t *testing.T) {
	got := analyzeDemographics(&profile.ProfileData{Bio: "hello"}, profile.Criteria{}, testYear)

	if got.Score != 100 {
		t.Errorf("Score = %d, want 100 when nothing is requested", got.Score)
	}
	if !got.LocationMatch {
		t.Error("LocationMatch should be true when no location is requested")
	}
}

func TestAnalyzeDemographicsLocationViaProvider(t *testing.T) {
	data := &profile.ProfileData{
		Location: "Madrid",
		Bio:      "Vivo en Madrid, aficionado al deporte",
	}
	got := analyzeDemographics(data, profile.Criteria{Location: "Spain"}, testYear)

	if !got.LocationMatch {
		t.Errorf("LocationMatch should be true, explanation: %s", got.Explanation)
	}
	if got.Score != 100 {
		t.Errorf("Score = %d, want 100", got.Score)
	}
	if !strings.Contains(got.Explanation, "locale es detected") {
		t.Errorf("Explanation = %q, should mention the locale provider", got.Explanation)
	}
}

func TestAnalyzeDemographicsLocationMismatch(t *testing.T) {
	data := &profile.ProfileData{Location: "Berlin, Germany", Bio: "Hallo"}
	got := analyzeDemographics(data, profile.Criteria{Location: "Spain"}, testYear)

	if got.LocationMatch {
		t.Error("LocationMatch should be false")
	}
	if got.Score != 60 { // age + gender full credit only
		t.Errorf("Score = %d, want 60", got.Score)
	}
}

func TestAnalyzeDemographicsLocationFallbackContains(t *testing.T) {
	data := &profile.ProfileData{Location: "Lisbon, Portugal"}
	got := analyzeDemographics(data, profile.Criteria{Location: "Portugal"}, testYear)

	if !got.LocationMatch {
		t.Errorf("LocationMatch should be true via substring fallback, explanation: %s", got.Explanation)
	}
}

func TestAnalyzeDemographicsAgeInRange(t *testing.T) {
	data := &profile.ProfileData{Bio: "25 years old, travel lover"}
	got := analyzeDemographics(data, profile.Criteria{MinAge: 18, MaxAge: 30}, testYear)

	if got.EstimatedAge != 25 {
		t.Errorf("EstimatedAge = %d, want 25", got.EstimatedAge)
	}
	if got.Score != 100 {
		t.Errorf("Score = %d, want 100", got.Score)
	}
}

func TestAnalyzeDemographicsAgeOutOfRange(t *testing.T) {
	data := &profile.ProfileData{Bio: "45 years old"}
	got := analyzeDemographics(data, profile.Criteria{MinAge: 18, MaxAge: 30}, testYear)

	if got.EstimatedAge != 45 {
		t.Errorf("EstimatedAge = %d, want 45", got.EstimatedAge)
	}
	if got.Score != 70 { // location + gender full credit, age missed
		t.Errorf("Score = %d, want 70", got.Score)
	}
	if !strings.Contains(got.Explanation, "outside requested range") {
		t.Errorf("Explanation = %q, should note the range miss", got.Explanation)
	}
}

func TestAnalyzeDemographicsAgeUndeterminable(t *testing.T) {
	data := &profile.ProfileData{Bio: "just vibes"}
	got := analyzeDemographics(data, profile.Criteria{MinAge: 18, MaxAge: 30}, testYear)

	if got.EstimatedAge != 0 {
		t.Errorf("EstimatedAge = %d, want 0", got.EstimatedAge)
	}
	if got.Score != 100 { // unestimatable age is not penalized
		t.Errorf("Score = %d, want 100", got.Score)
	}
	if !strings.Contains(got.Explanation, "could not determine age") {
		t.Errorf("Explanation = %q, should note the undetermined age", got.Explanation)
	}
}

func TestAnalyzeDemographicsGender(t *testing.T) {
	tests := []struct {
		name      string
		bio       string
		criterion profile.Gender
		wantScore int
	}{
		{"match", "she/her, foodie", profile.Female, 100},
		{"mismatch", "he/him, foodie", profile.Female, 70},
		{"indeterminate partial credit", "foodie", profile.Female, 85},
		{"any accepted", "foodie", profile.Any, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &profile.ProfileData{Bio: tt.bio}
			got := analyzeDemographics(data, profile.Criteria{Gender: tt.criterion}, testYear)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d (%s)", got.Score, tt.wantScore, got.Explanation)
			}
		})
	}
}
