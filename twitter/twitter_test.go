package twitter

import (
	"errors"
	"testing"

	"github.com/codeGROOVE-dev/matchmaker/profile"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://twitter.com/johndoe", true},
		{"https://x.com/johndoe", true},
		{"https://www.twitter.com/johndoe", true},
		{"https://www.x.com/johndoe", true},
		{"https://t.co/AbCd123", true},
		{"https://TWITTER.COM/johndoe", true},
		{"https://instagram.com/johndoe", false},
		{"https://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := Match(tt.url)
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	if !AuthRequired() {
		t.Error("Twitter should require auth")
	}
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare_username", "johndoe", "johndoe"},
		{"at_prefix", "@johndoe", "johndoe"},
		{"twitter_url", "https://twitter.com/johndoe", "johndoe"},
		{"x_url", "https://x.com/johndoe", "johndoe"},
		{"status_url", "https://twitter.com/johndoe/status/1234567890", "johndoe"},
		{"x_status_url", "https://x.com/johndoe/status/1234567890", "johndoe"},
		{"url_with_query", "https://x.com/johndoe?lang=en", "johndoe"},
		{"mixed_case_preserved", "JohnDoe", "JohnDoe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractUsername(tt.input)
			if err != nil {
				t.Fatalf("ExtractUsername(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExtractUsername(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractUsernameErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", profile.ErrInvalidUsername},
		{"tco_share_link", "https://t.co/AbCd123", profile.ErrNeedsResolution},
		{"broadcast_url", "https://x.com/i/broadcasts/1yNGaLVjWAbKj", profile.ErrInvalidUsername},
		{"reserved_settings", "https://twitter.com/settings", profile.ErrInvalidUsername},
		{"reserved_bare", "home", profile.ErrInvalidUsername},
		{"too_long", "thisusernameistoolong", profile.ErrInvalidUsername},
		{"bad_chars", "john.doe", profile.ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractUsername(tt.input)
			if err == nil {
				t.Fatalf("ExtractUsername(%q) expected error", tt.input)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ExtractUsername(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"simple", "jack", true},
		{"with_underscore", "user_name", true},
		{"with_numbers", "user123", true},
		{"single_char", "x", true},
		{"max_length", "fifteenchars123", true},

		{"too_short", "", false},
		{"too_long", "thisusernameistoolong", false},
		{"with_dot", "user.name", false},
		{"with_hyphen", "user-name", false},
		{"leading_underscore", "_user", false},
		{"trailing_underscore", "user_", false},
		{"doubled_underscore", "user__name", false},
		{"with_space", "user name", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidUsername(tt.username); got != tt.want {
				t.Errorf("IsValidUsername(%q) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestParseUserResponse(t *testing.T) {
	body := []byte(`{
		"data": {
			"user": {
				"result": {
					"legacy": {
						"screen_name": "fitjohn",
						"name": "John Doe",
						"description": "Atleta y entrenador. Madrid, España.",
						"location": "Madrid, Spain",
						"followers_count": 25000,
						"friends_count": 420,
						"statuses_count": 8300,
						"verified": false,
						"url": "https://example.com"
					},
					"is_blue_verified": true
				}
			}
		}
	}`)

	data, err := parseUserResponse(body, "fitjohn")
	if err != nil {
		t.Fatalf("parseUserResponse failed: %v", err)
	}

	if data.Username != "fitjohn" {
		t.Errorf("Username = %q, want %q", data.Username, "fitjohn")
	}
	if data.DisplayName != "John Doe" {
		t.Errorf("DisplayName = %q, want %q", data.DisplayName, "John Doe")
	}
	if data.Location != "Madrid, Spain" {
		t.Errorf("Location = %q, want %q", data.Location, "Madrid, Spain")
	}
	if data.FollowerCount != 25000 {
		t.Errorf("FollowerCount = %d, want 25000", data.FollowerCount)
	}
	if data.FollowingCount != 420 {
		t.Errorf("FollowingCount = %d, want 420", data.FollowingCount)
	}
	if data.PostCount != 8300 {
		t.Errorf("PostCount = %d, want 8300", data.PostCount)
	}
	if !data.IsVerified {
		t.Error("IsVerified should be true via blue verification")
	}
}

func TestParseUserResponseNotFound(t *testing.T) {
	body := []byte(`{"data": {"user": {}}}`)

	_, err := parseUserResponse(body, "ghost")
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("error = %v, want ErrProfileNotFound", err)
	}
}
