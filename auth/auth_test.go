package auth

import (
	"context"
	"testing"
)

func TestJar(t *testing.T) {
	cookies := map[string]string{
		"sessionid": "abc123",
		"csrftoken": "xyz789",
	}

	for _, platform := range []string{"instagram", "tiktok", "twitter"} {
		t.Run(platform, func(t *testing.T) {
			jar, err := Jar(platform, cookies)
			if err != nil {
				t.Fatalf("Jar failed: %v", err)
			}
			if jar == nil {
				t.Fatal("jar should not be nil")
			}
		})
	}
}

func TestJarUnknownPlatform(t *testing.T) {
	if _, err := Jar("youtube", map[string]string{"a": "b"}); err == nil {
		t.Error("Jar should fail for a platform without a cookie domain")
	}
}

func TestJarEmptyCookies(t *testing.T) {
	jar, err := Jar("instagram", map[string]string{})
	if err != nil {
		t.Fatalf("Jar failed: %v", err)
	}
	if jar == nil {
		t.Fatal("jar should not be nil even with empty cookies")
	}
}

func TestEnvSource(t *testing.T) {
	t.Setenv("INSTAGRAM_SESSIONID", "test-sessionid")
	t.Setenv("INSTAGRAM_CSRFTOKEN", "test-csrftoken")

	src := EnvSource{}
	cookies, err := src.Cookies(context.Background(), "instagram")
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}

	if cookies["sessionid"] != "test-sessionid" {
		t.Errorf("sessionid = %q, want %q", cookies["sessionid"], "test-sessionid")
	}
	if cookies["csrftoken"] != "test-csrftoken" {
		t.Errorf("csrftoken = %q, want %q", cookies["csrftoken"], "test-csrftoken")
	}
}

func TestEnvSourceUnknownPlatform(t *testing.T) {
	src := EnvSource{}
	cookies, err := src.Cookies(context.Background(), "unknown-platform")
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}

	if cookies != nil {
		t.Error("cookies should be nil for unknown platform")
	}
}

func TestEnvSourceNoCookies(t *testing.T) {
	src := EnvSource{}
	cookies, err := src.Cookies(context.Background(), "tiktok")
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}

	if cookies != nil {
		t.Error("cookies should be nil when env vars not set")
	}
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{"sessionid": "abc123", "csrftoken": "xyz789"}

	cookies, err := src.Cookies(context.Background(), "instagram")
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}
	if len(cookies) != 2 {
		t.Errorf("got %d cookies, want 2", len(cookies))
	}

	// Mutating the returned map must not touch the source.
	cookies["sessionid"] = "modified"
	again, err := src.Cookies(context.Background(), "instagram")
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}
	if again["sessionid"] != "abc123" {
		t.Error("StaticSource should return copies")
	}
}

func TestStaticSourceEmpty(t *testing.T) {
	cookies, err := StaticSource(nil).Cookies(context.Background(), "instagram")
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}

	if cookies != nil {
		t.Error("cookies should be nil for empty source")
	}
}

func TestFirstOf(t *testing.T) {
	empty := StaticSource(nil)
	second := StaticSource{"token": "from-second"}
	third := StaticSource{"token": "from-third"}

	cookies, err := FirstOf(context.Background(), "instagram", empty, second, third)
	if err != nil {
		t.Fatalf("FirstOf failed: %v", err)
	}

	if cookies["token"] != "from-second" {
		t.Errorf("token = %q, want %q", cookies["token"], "from-second")
	}
}

func TestFirstOfAllEmpty(t *testing.T) {
	cookies, err := FirstOf(context.Background(), "instagram", StaticSource(nil), StaticSource(nil))
	if err != nil {
		t.Fatalf("FirstOf failed: %v", err)
	}

	if cookies != nil {
		t.Error("cookies should be nil when all sources are empty")
	}
}

func TestResolveStaticWinsOverEnv(t *testing.T) {
	t.Setenv("TIKTOK_SESSIONID", "from-env")

	cookies, err := Resolve(context.Background(), "tiktok",
		map[string]string{"sessionid": "from-options"}, false, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cookies["sessionid"] != "from-options" {
		t.Errorf("sessionid = %q, want %q", cookies["sessionid"], "from-options")
	}
}

func TestResolveFallsBackToEnv(t *testing.T) {
	t.Setenv("TIKTOK_SESSIONID", "from-env")

	cookies, err := Resolve(context.Background(), "tiktok", nil, false, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cookies["sessionid"] != "from-env" {
		t.Errorf("sessionid = %q, want %q", cookies["sessionid"], "from-env")
	}
}

func TestEnvVarsForPlatform(t *testing.T) {
	vars := EnvVarsForPlatform("twitter")
	if len(vars) == 0 {
		t.Error("should return env vars for twitter")
	}

	varSet := make(map[string]bool)
	for _, v := range vars {
		varSet[v] = true
	}

	if !varSet["TWITTER_AUTH_TOKEN"] {
		t.Error("should include TWITTER_AUTH_TOKEN")
	}
}

func TestEnvVarsForUnknownPlatform(t *testing.T) {
	if vars := EnvVarsForPlatform("unknown"); vars != nil {
		t.Error("should return nil for unknown platform")
	}
}
