package locale

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

// matchThreshold is the confidence at which a profile counts as Spanish.
const matchThreshold = 30

// Signal weights.
const (
	cityWeight        = 50
	regionWeight      = 35
	bioMentionWeight  = 25
	languageWeight    = 10
	culturalWeight    = 5
	phoneWeight       = 20
	postalWeight      = 15
	postMentionWeight = 3
	postMentionCap    = 15
	usernameWeight    = 15
	maxConfidence     = 100
)

// Curated Spanish city list. Checked against the location field, the
// bio, and post content.
var spanishCities = []string{
	"madrid", "barcelona", "valencia", "sevilla", "seville", "zaragoza",
	"málaga", "malaga", "murcia", "palma", "bilbao", "alicante",
	"córdoba", "cordoba", "valladolid", "vigo", "gijón", "gijon",
	"granada", "oviedo", "santander", "pamplona", "donostia",
	"san sebastián", "san sebastian", "toledo", "salamanca", "cádiz",
	"cadiz", "marbella", "ibiza", "tenerife", "las palmas",
}

// Regions and country-level names.
var spanishRegions = []string{
	"españa", "spain", "andalucía", "andalucia", "cataluña", "catalunya",
	"catalonia", "galicia", "asturias", "cantabria", "euskadi",
	"país vasco", "pais vasco", "basque country", "navarra", "aragón",
	"aragon", "castilla", "extremadura", "canarias", "baleares",
	"la rioja", "comunidad valenciana",
}

// Language markers: common Spanish words and phrases unlikely to appear
// in other languages' bios.
var languageMarkers = []string{
	"vivo en", "soy de", "aficionado", "aficionada", "española", "español",
	"entrenamiento", "bienvenidos", "sígueme", "sigueme", "contacto",
	"colaboraciones", "desde", "hola", "gracias", "nacida en", "nacido en",
}

// Cultural markers: weaker signals tied to Spanish culture.
var culturalMarkers = []string{
	"real madrid", "atlético", "atletico", "barça", "fc barcelona",
	"la liga", "paella", "flamenco", "feria", "semana santa", "tapas",
	"siesta", "el clásico", "el clasico", "churros", "san fermín",
	"san fermin",
}

// Username markers: the city list with spaces stripped to match handle
// syntax, plus country shorthands.
var usernameMarkers = buildUsernameMarkers()

func buildUsernameMarkers() []string {
	markers := make([]string, 0, len(spanishCities)+3)
	for _, city := range spanishCities {
		markers = append(markers, strings.ReplaceAll(city, " ", ""))
	}
	return append(markers, "españa", "spain", "esp")
}

var (
	// +34 country code, with optional separators.
	spanishPhonePattern = regexp.MustCompile(`(?:\+34|0034)[\s.-]?\d{3}[\s.-]?\d{2,3}[\s.-]?\d{2,3}`)
	// Five-digit postal codes in the 01000-52999 range.
	spanishPostalPattern = regexp.MustCompile(`\b(?:0[1-9]|[1-4]\d|5[0-2])\d{3}\b`)
)

// Spanish detects Spanish profiles from location and bio fields, language and
// cultural markers, phone and postal patterns, post content, and usernames.
type Spanish struct{}

// NewSpanish creates the Spanish locale provider.
func NewSpanish() *Spanish { return &Spanish{} }

// Name returns the locale code.
func (*Spanish) Name() string { return "es" }

// Handles reports whether the target location criterion names Spain or a
// Spanish city/region.
func (*Spanish) Handles(target string) bool {
	t := strings.ToLower(strings.TrimSpace(target))
	if t == "" {
		return false
	}
	if t == "es" || t == "es-es" {
		return true
	}
	for _, name := range spanishRegions {
		if strings.Contains(t, name) {
			return true
		}
	}
	for _, city := range spanishCities {
		if strings.Contains(t, city) {
			return true
		}
	}
	return false
}

// Detect scores the profile against Spanish locale signals.
func (*Spanish) Detect(data *profile.ProfileData) Detection {
	var det Detection
	if data == nil {
		return det
	}

	location := strings.ToLower(data.Location)
	bio := strings.ToLower(data.Bio)
	username := strings.ToLower(data.Username)

	var postText strings.Builder
	for _, post := range data.RecentPosts {
		postText.WriteString(strings.ToLower(post.Content))
		postText.WriteString(" ")
	}
	posts := postText.String()
	fullText := bio + " " + posts

	// Explicit location-field matches are the strongest signal.
	cityHit := false
	for _, city := range spanishCities {
		if strings.Contains(location, city) {
			det.Confidence += cityWeight
			det.Signals = append(det.Signals, "location names Spanish city: "+city)
			cityHit = true
			break
		}
	}
	if !cityHit {
		for _, region := range spanishRegions {
			if strings.Contains(location, region) {
				det.Confidence += regionWeight
				det.Signals = append(det.Signals, "location names Spanish region: "+region)
				break
			}
		}
	}

	// Profiles often name their city in the bio instead of filling in
	// the location field; credit the first hit nearly as much.
	bioHit := false
	for _, city := range spanishCities {
		if strings.Contains(bio, city) {
			det.Confidence += bioMentionWeight
			det.Signals = append(det.Signals, "bio mentions Spanish city: "+city)
			bioHit = true
			break
		}
	}
	if !bioHit {
		for _, region := range spanishRegions {
			if strings.Contains(bio, region) {
				det.Confidence += bioMentionWeight
				det.Signals = append(det.Signals, "bio mentions Spanish region: "+region)
				break
			}
		}
	}

	for _, marker := range languageMarkers {
		if strings.Contains(fullText, marker) {
			det.Confidence += languageWeight
			det.Signals = append(det.Signals, "language marker: "+marker)
		}
	}

	for _, marker := range culturalMarkers {
		if strings.Contains(fullText, marker) {
			det.Confidence += culturalWeight
			det.Signals = append(det.Signals, "cultural marker: "+marker)
		}
	}

	if spanishPhonePattern.MatchString(fullText) {
		det.Confidence += phoneWeight
		det.Signals = append(det.Signals, "Spanish phone number pattern")
	}

	if spanishPostalPattern.MatchString(location) {
		det.Confidence += postalWeight
		det.Signals = append(det.Signals, "Spanish postal code in location")
	}

	// Location mentions inside post content, capped so chatter about one
	// city doesn't dominate.
	postMentions := 0
	for _, city := range spanishCities {
		postMentions += strings.Count(posts, city)
	}
	if postMentions > 0 {
		bonus := min(postMentions*postMentionWeight, postMentionCap)
		det.Confidence += bonus
		det.Signals = append(det.Signals, fmt.Sprintf("%d Spanish location mentions in posts", postMentions))
	}

	for _, name := range usernameMarkers {
		if strings.Contains(username, name) {
			det.Confidence += usernameWeight
			det.Signals = append(det.Signals, "username references Spain: "+name)
			break
		}
	}

	det.Confidence = min(det.Confidence, maxConfidence)
	det.Match = det.Confidence >= matchThreshold
	return det
}
