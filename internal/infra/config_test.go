package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("VIDEO_POLL_INTERVAL_SECONDS", "")
	t.Setenv("VIDEO_POLL_DEADLINE_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.VideoPollInterval != 10*time.Second {
		t.Fatalf("poll interval = %v, want 10s", cfg.VideoPollInterval)
	}
	if cfg.VideoPollDeadline != 0 {
		t.Fatalf("poll deadline = %v, want unbounded", cfg.VideoPollDeadline)
	}
	if cfg.ImageModel != "imagen-4.0-generate-001" {
		t.Fatalf("image model = %q", cfg.ImageModel)
	}
	if cfg.VideoModel != "veo-3.1-fast-generate-preview" {
		t.Fatalf("video model = %q", cfg.VideoModel)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("VIDEO_POLL_INTERVAL_SECONDS", "2")
	t.Setenv("VIDEO_POLL_DEADLINE_SECONDS", "600")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.VideoPollInterval != 2*time.Second {
		t.Fatalf("poll interval = %v", cfg.VideoPollInterval)
	}
	if cfg.VideoPollDeadline != 10*time.Minute {
		t.Fatalf("poll deadline = %v", cfg.VideoPollDeadline)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
}
