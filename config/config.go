package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Audit     AuditConfig
	Inspect   InspectConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Width and Height set the default viewport.
	Width  int // default: 1280
	Height int // default: 720

	// Stealth injects anti-detection JS before every navigation.
	Stealth bool // default: false

	// ExtraHeaders are sent with every request the page makes.
	// Format: "Name: value" entries, comma separated.
	ExtraHeaders []string
}

// AuditConfig controls live audit behavior.
type AuditConfig struct {
	// NavTimeout bounds navigation plus network-idle settling.
	// Reaching it fails the run; partial metrics are never sampled.
	NavTimeout time.Duration // default: 30s

	// IdleWindow is the network quiescence window for the idle wait.
	IdleWindow time.Duration // default: 2s

	// ClickSettle is the pause after each button click.
	ClickSettle time.Duration // default: 750ms

	// FillSettle is the pause after filling an input.
	FillSettle time.Duration // default: 300ms

	// MaxButtons and MaxInputs cap how many elements the probe exercises.
	MaxButtons int // default: 4
	MaxInputs  int // default: 3

	// MaxNavLinks caps the user-journey probe.
	MaxNavLinks int // default: 3

	// ProbeValue is the fixed text written into probed inputs.
	ProbeValue string // default: "test value"

	// ScreenshotDir is where numbered screenshots are written.
	ScreenshotDir string // default: "."
}

// InspectConfig controls static snapshot analysis.
type InspectConfig struct {
	// ComponentPrefix is the UI-toolkit class prefix to classify by.
	ComponentPrefix string // default: "Mui"

	// BaseURL is the audited application's root.
	BaseURL string // default: "http://localhost:3000"

	// CacheEntries bounds the map-response cache; 0 disables it.
	CacheEntries int // default: 128

	// CacheTTL is how long cached map responses stay valid.
	CacheTTL time.Duration // default: 5m
}

// WebhookConfig controls audit completion notifications.
type WebhookConfig struct {
	// URL receives a POST when an audit finishes; empty disables webhooks.
	URL string

	// Secret signs the payload with HMAC-SHA256 when non-empty.
	Secret string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per API key.
	Burst int // default: 4
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("MALIBU_HOST", "0.0.0.0"),
			Port: envIntOr("MALIBU_PORT", 8080),
			Mode: envOr("MALIBU_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("MALIBU_HEADLESS", true),
			NoSandbox:    envBoolOr("MALIBU_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("MALIBU_BROWSER_BIN"),
			Width:        envIntOr("MALIBU_VIEWPORT_WIDTH", 1280),
			Height:       envIntOr("MALIBU_VIEWPORT_HEIGHT", 720),
			Stealth:      envBoolOr("MALIBU_STEALTH", false),
			ExtraHeaders: envSliceOr("MALIBU_EXTRA_HEADERS", nil),
		},
		Audit: AuditConfig{
			NavTimeout:    envDurationOr("MALIBU_NAV_TIMEOUT", 30*time.Second),
			IdleWindow:    envDurationOr("MALIBU_IDLE_WINDOW", 2*time.Second),
			ClickSettle:   envDurationOr("MALIBU_CLICK_SETTLE", 750*time.Millisecond),
			FillSettle:    envDurationOr("MALIBU_FILL_SETTLE", 300*time.Millisecond),
			MaxButtons:    envIntOr("MALIBU_MAX_BUTTONS", 4),
			MaxInputs:     envIntOr("MALIBU_MAX_INPUTS", 3),
			MaxNavLinks:   envIntOr("MALIBU_MAX_NAV_LINKS", 3),
			ProbeValue:    envOr("MALIBU_PROBE_VALUE", "test value"),
			ScreenshotDir: envOr("MALIBU_SCREENSHOT_DIR", "."),
		},
		Inspect: InspectConfig{
			ComponentPrefix: envOr("MALIBU_COMPONENT_PREFIX", "Mui"),
			BaseURL:         envOr("MALIBU_BASE_URL", "http://localhost:3000"),
			CacheEntries:    envIntOr("MALIBU_MAP_CACHE_ENTRIES", 128),
			CacheTTL:        envDurationOr("MALIBU_MAP_CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("MALIBU_AUTH_ENABLED", false),
			APIKeys: envSliceOr("MALIBU_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("MALIBU_RATE_RPS", 2.0),
			Burst:             envIntOr("MALIBU_RATE_BURST", 4),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("MALIBU_WEBHOOK_URL"),
			Secret: os.Getenv("MALIBU_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("MALIBU_LOG_LEVEL", "info"),
			Format: envOr("MALIBU_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
