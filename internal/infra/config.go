package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv  string
	Port    string
	APIKey  string
	BaseURL string

	ImageModel  string
	EditModel   string
	VideoModel  string
	PromptModel string

	VideoPollInterval time.Duration
	// VideoPollDeadline caps a single video poll loop. Zero means the loop has
	// no deadline and only context cancellation can stop it.
	VideoPollDeadline time.Duration

	ExportPath string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	CORSOrigins      []string
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The Gemini API key is deliberately optional: the
// credential gate reports it as unselected until one is provided.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		APIKey:            os.Getenv("GEMINI_API_KEY"),
		BaseURL:           getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		ImageModel:        getEnv("IMAGE_MODEL", "imagen-4.0-generate-001"),
		EditModel:         getEnv("EDIT_MODEL", "gemini-2.5-flash-image"),
		VideoModel:        getEnv("VIDEO_MODEL", "veo-3.1-fast-generate-preview"),
		PromptModel:       getEnv("PROMPT_MODEL", "gemini-2.5-flash"),
		VideoPollInterval: time.Second * time.Duration(getEnvInt("VIDEO_POLL_INTERVAL_SECONDS", 10)),
		VideoPollDeadline: time.Second * time.Duration(getEnvInt("VIDEO_POLL_DEADLINE_SECONDS", 0)),
		ExportPath:        getEnv("EXPORT_PATH", "./exports"),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		CORSOrigins:       splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
