package analyze

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// ageEstimate is the result of one branch of the estimation cascade.
type ageEstimate struct {
	age        int
	method     string
	confidence int
}

// Plausible influencer age bounds; estimates outside are discarded.
const (
	minPlausibleAge = 13
	maxPlausibleAge = 90
)

var (
	// "25 years old", "25 años", "age: 25", "25yo"
	directAgePattern = regexp.MustCompile(`\b(\d{2})\s*(?:years?\s*old|años|yo\b)|\bage[:\s]+(\d{2})\b`)
	// "born in 1999", "nacida en 1999", "*1999"
	birthYearPattern = regexp.MustCompile(`(?:born\s+in|nacid[oa]\s+en|\*)\s*((?:19[3-9]|20[01])\d)\b`)
)

// generationRanges maps cohort labels to fixed age ranges.
var generationRanges = []struct {
	label  string
	lo, hi int
}{
	{"gen z", 18, 27},
	{"gen-z", 18, 27},
	{"generation z", 18, 27},
	{"millennial", 28, 43},
	{"gen x", 44, 59},
	{"boomer", 60, 78},
}

// lifeStageRanges maps life-stage vocabulary to age ranges; the cascade
// intersects all matched ranges.
var lifeStageRanges = []struct {
	marker string
	lo, hi int
}{
	{"high school", 14, 18},
	{"instituto", 14, 18},
	{"university student", 18, 25},
	{"universitario", 18, 25},
	{"universitaria", 18, 25},
	{"college", 18, 24},
	{"estudiante", 16, 26},
	{"graduate", 21, 30},
	{"newlywed", 24, 38},
	{"recién casado", 24, 38},
	{"mortgage", 28, 65},
	{"hipoteca", 28, 65},
	{"my kids", 26, 55},
	{"mis hijos", 26, 55},
	{"grandkids", 55, 90},
	{"retired", 60, 90},
	{"jubilado", 60, 90},
	{"jubilada", 60, 90},
}

// contextualClues are weak signals scanned only in recent posts, each
// with its own coarse range and low confidence.
var contextualClues = []struct {
	marker     string
	lo, hi     int
	confidence int
}{
	{"exam", 18, 24, 35},
	{"homework", 14, 22, 30},
	{"lecture", 18, 24, 35},
	{"internship", 20, 26, 35},
	{"office", 25, 45, 40},
	{"meeting", 25, 45, 35},
	{"salary", 25, 50, 35},
	{"client", 25, 50, 35},
	{"daycare", 26, 45, 40},
	{"toddler", 26, 45, 40},
	{"school run", 28, 48, 40},
}

// estimateAge runs an ordered cascade of estimators over the profile
// text; the first branch that produces an estimate wins. currentYear is
// injected so birth-year conversion stays deterministic in tests.
func estimateAge(data *profile.ProfileData, currentYear int) (ageEstimate, bool) {
	if data == nil {
		return ageEstimate{}, false
	}
	bioAndPosts := profileText(data)

	// 1. Direct numeric age mention.
	if m := directAgePattern.FindStringSubmatch(bioAndPosts); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if age, err := strconv.Atoi(raw); err == nil && plausible(age) {
			return ageEstimate{age: age, method: "direct age mention", confidence: 90}, true
		}
	}

	// 2. Birth year converted via the current year.
	if m := birthYearPattern.FindStringSubmatch(bioAndPosts); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			if age := currentYear - year; plausible(age) {
				return ageEstimate{age: age, method: "birth year", confidence: 85}, true
			}
		}
	}

	// 3. Generational cohort label.
	for _, gen := range generationRanges {
		if strings.Contains(bioAndPosts, gen.label) {
			return ageEstimate{age: (gen.lo + gen.hi) / 2, method: "generation label", confidence: 60}, true
		}
	}

	// 4. Intersection of life-stage keyword ranges.
	lo, hi := minPlausibleAge, maxPlausibleAge
	markers := 0
	for _, stage := range lifeStageRanges {
		if strings.Contains(bioAndPosts, stage.marker) {
			markers++
			lo = max(lo, stage.lo)
			hi = min(hi, stage.hi)
		}
	}
	if markers > 0 && lo <= hi {
		confidence := min(50+10*markers, 80)
		return ageEstimate{age: (lo + hi) / 2, method: "life stage markers", confidence: confidence}, true
	}

	// 5. Weak contextual clues, posts only.
	var posts strings.Builder
	for _, post := range data.RecentPosts {
		posts.WriteString(strings.ToLower(post.Content))
		posts.WriteString(" ")
	}
	postText := posts.String()
	for _, clue := range contextualClues {
		if strings.Contains(postText, clue.marker) {
			return ageEstimate{age: (clue.lo + clue.hi) / 2, method: "contextual clue", confidence: clue.confidence}, true
		}
	}

	return ageEstimate{}, false
}

func plausible(age int) bool {
	return age >= minPlausibleAge && age <= maxPlausibleAge
}
