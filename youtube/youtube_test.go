package youtube

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
		{"https://youtube.com/@johndoe", true},
		{"https://www.youtube.com/@johndoe", true},
		{"https://www.youtube.com/channel/UCabcdefghijklmnopqrstuv", true},
		{"https://www.youtube.com/c/JohnDoe", true},
		{"https://www.youtube.com/user/johndoe", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
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
	if AuthRequired() {
		t.Error("YouTube should not require auth")
	}
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare_handle", "johndoe", "johndoe"},
		{"at_prefix", "@johndoe", "johndoe"},
		{"handle_url", "https://www.youtube.com/@johndoe", "johndoe"},
		{"handle_url_videos_tab", "https://www.youtube.com/@johndoe/videos", "johndoe"},
		{"channel_url", "https://www.youtube.com/channel/UCabcdefghijklmnopqrstuv", "UCabcdefghijklmnopqrstuv"},
		{"custom_url", "https://www.youtube.com/c/JohnDoe", "JohnDoe"},
		{"user_url", "https://www.youtube.com/user/johndoe", "johndoe"},
		{"with_hyphen", "john-doe", "john-doe"},
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
		{"short_link", "https://youtu.be/dQw4w9WgXcQ", profile.ErrNeedsResolution},
		{"watch_url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", profile.ErrInvalidUsername},
		{"reserved_bare", "shorts", profile.ErrInvalidUsername},
		{"too_long_handle", "thisusernameisdefinitelytoolong", profile.ErrInvalidUsername},
		{"bad_chars", "john doe", profile.ErrInvalidUsername},
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
		{"simple", "johndoe", true},
		{"with_hyphen", "john-doe", true},
		{"with_period", "john.doe", true},
		{"channel_id", "UCabcdefghijklmnopqrstuv", true},

		{"empty", "", false},
		{"too_long", "abcdefghijklmnopqrstuvwxy", false},
		{"leading_hyphen", "-johndoe", false},
		{"doubled_special", "john--doe", false},
		{"with_space", "john doe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidUsername(tt.username); got != tt.want {
				t.Errorf("IsValidUsername(%q) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestParseChannel(t *testing.T) {
	html := `<html><head>
<title>Fit John - YouTube</title>
<meta name="description" content="Fitness tutorials and training vlogs from Madrid.">
</head><body>
<span>1.2M subscribers</span><span>843 videos</span>
</body></html>`

	data, err := parseChannel(html, "fitjohn")
	if err != nil {
		t.Fatalf("parseChannel failed: %v", err)
	}

	if data.DisplayName != "Fit John" {
		t.Errorf("DisplayName = %q, want %q", data.DisplayName, "Fit John")
	}
	if data.Bio != "Fitness tutorials and training vlogs from Madrid." {
		t.Errorf("Bio = %q", data.Bio)
	}
	if data.FollowerCount != 1200000 {
		t.Errorf("FollowerCount = %d, want 1200000", data.FollowerCount)
	}
	if data.PostCount != 843 {
		t.Errorf("PostCount = %d, want 843", data.PostCount)
	}
}

func TestParseChannelNotFound(t *testing.T) {
	_, err := parseChannel("<html><body></body></html>", "ghost")
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("error = %v, want ErrProfileNotFound", err)
	}
}

func TestParseCompactCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1.2M", 1200000},
		{"850K", 850000},
		{"1B", 1000000000},
		{"42", 42},
		{"junk", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseCompactCount(tt.input); got != tt.want {
				t.Errorf("parseCompactCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
