// Package profile defines the common types for profile verification.
package profile

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by platform packages.
var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrNoCookies       = errors.New("no cookies available")
	ErrProfileNotFound = errors.New("profile not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrInvalidUsername = errors.New("invalid username")
	ErrNeedsResolution = errors.New("share link requires resolution")
)

// Platform identifies a supported social media platform.
type Platform string

// Supported platforms.
const (
	Instagram Platform = "instagram"
	TikTok    Platform = "tiktok"
	YouTube   Platform = "youtube"
	Twitter   Platform = "twitter"
)

// Gender is a gender criterion or estimate.
type Gender string

// Gender values.
const (
	Male   Gender = "male"
	Female Gender = "female"
	Any    Gender = "any"
)

// Post is a single piece of recent content from a profile.
type Post struct {
	Content  string   `json:"content"`
	Likes    int      `json:"likes"`
	Comments int      `json:"comments"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// ProfileData represents extracted data from a social media profile.
//
//nolint:govet // fieldalignment: intentional layout for readability
type ProfileData struct {
	Username       string `json:"username"`
	DisplayName    string `json:"displayName,omitempty"`
	FollowerCount  int    `json:"followerCount,omitempty"`
	FollowingCount int    `json:"followingCount,omitempty"`
	PostCount      int    `json:"postCount,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Location       string `json:"location,omitempty"`
	Website        string `json:"website,omitempty"`
	IsVerified     bool   `json:"isVerified,omitempty"`
	RecentPosts    []Post `json:"recentPosts,omitempty"`
}

// Criteria describes what a brand is looking for in a profile.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Criteria struct {
	MinAge       int      `json:"minAge,omitempty"`
	MaxAge       int      `json:"maxAge,omitempty"`
	Location     string   `json:"location,omitempty"`
	Gender       Gender   `json:"gender,omitempty"`
	Niches       []string `json:"niches,omitempty"`
	BrandName    string   `json:"brandName,omitempty"`
	MinFollowers int      `json:"minFollowers,omitempty"`
	MaxFollowers int      `json:"maxFollowers,omitempty"`
}

// VerificationRequest is a profile identifier plus the criteria to score
// it against. Requests are owned by the caller and never mutated.
type VerificationRequest struct {
	ProfileIdentifier string   `json:"profileIdentifier"`
	Platform          Platform `json:"platform"`
	Criteria          Criteria `json:"criteria"`
}

// NicheAlignment scores keyword overlap between profile text and the
// requested content niches.
type NicheAlignment struct {
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
	Explanation     string   `json:"explanation"`
}

// DemographicMatch scores location, age, and gender fit.
//
//nolint:govet // fieldalignment: intentional layout for readability
type DemographicMatch struct {
	Score           int    `json:"score"`
	EstimatedAge    int    `json:"estimatedAge,omitempty"`
	EstimatedGender Gender `json:"estimatedGender,omitempty"`
	LocationMatch   bool   `json:"locationMatch"`
	Explanation     string `json:"explanation"`
}

// Quality is an engagement quality tier.
type Quality string

// Engagement quality tiers.
const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// BrandCompatibility scores how safe and suitable a profile is for a brand.
// Reasons and RedFlags are kept separate so callers can distinguish
// "why good" from "why risky".
type BrandCompatibility struct {
	Score       int      `json:"score"`
	Reasons     []string `json:"reasons,omitempty"`
	RedFlags    []string `json:"redFlags,omitempty"`
	Explanation string   `json:"explanation"`
}

// FollowerValidation scores follower count bounds and engagement quality.
//
//nolint:govet // fieldalignment: intentional layout for readability
type FollowerValidation struct {
	Score       int     `json:"score"`
	InRange     bool    `json:"inRange"`
	Quality     Quality `json:"quality"`
	Explanation string  `json:"explanation"`
}

// MatchAnalysis holds the four independent sub-analyses for a profile.
type MatchAnalysis struct {
	NicheAlignment     NicheAlignment     `json:"nicheAlignment"`
	DemographicMatch   DemographicMatch   `json:"demographicMatch"`
	BrandCompatibility BrandCompatibility `json:"brandCompatibility"`
	FollowerValidation FollowerValidation `json:"followerValidation"`
}

// VerificationResult is the single output produced for every request,
// successful or degraded. Results are constructed once and never mutated.
//
//nolint:govet // fieldalignment: intentional layout for readability
type VerificationResult struct {
	ProfileIdentifier string        `json:"profileIdentifier"`
	Platform          Platform      `json:"platform"`
	Verified          bool          `json:"verified"`
	Confidence        float64       `json:"confidence"`
	ExtractedData     *ProfileData  `json:"extractedData,omitempty"`
	MatchAnalysis     MatchAnalysis `json:"matchAnalysis"`
	OverallScore      int           `json:"overallScore"`
	Errors            []string      `json:"errors,omitempty"`
	ScrapedAt         time.Time     `json:"scrapedAt"`
}

// Scraper fetches profile data for a platform identifier. Implementations
// return an error for anything that prevents producing data; the pipeline
// maps every error to a degraded result, so implementations never need to
// recover internally.
type Scraper interface {
	Scrape(ctx context.Context, identifier string) (*ProfileData, error)
}

// ScraperFunc adapts a function to the Scraper interface.
type ScraperFunc func(ctx context.Context, identifier string) (*ProfileData, error)

// Scrape calls f.
func (f ScraperFunc) Scrape(ctx context.Context, identifier string) (*ProfileData, error) {
	return f(ctx, identifier)
}
