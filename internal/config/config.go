package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains configurable parameters for the generator client.
// Use DefaultConfig() to get sensible defaults, then override as needed.
type Config struct {
	Env string // "development" enables console-formatted debug logs

	// Endpoint settings
	BaseURL        string        // Origin of the generation service (default: "http://localhost:8000")
	GeneratePath   string        // Fixed path of the generation endpoint (default: "/api/generate")
	RequestTimeout time.Duration // Upper bound for one generation request (default: 60s)

	// Display
	PlaceholderImage string // Shown before any result and on every failure

	// Element ids the trigger resolves at startup
	ControlID   string
	SurfaceID   string
	IndicatorID string

	// Behaviour
	SingleFlight    bool // Ignore activations while a request is in flight (default: false)
	HistoryCapacity int  // Number of outcomes retained for the activity log (default: 100)
	LogLines        int  // Diagnostic lines kept by the TUI console (default: 500)

	// MCP
	ServerName    string
	ServerVersion string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Env: "development",

		BaseURL:        "http://localhost:8000",
		GeneratePath:   "/api/generate",
		RequestTimeout: 60 * time.Second,

		PlaceholderImage: "/assets/placeholder.png",

		ControlID:   "generate-btn",
		SurfaceID:   "output-image",
		IndicatorID: "loading-overlay",

		SingleFlight:    false,
		HistoryCapacity: 100,
		LogLines:        500,

		ServerName:    "sketchgen",
		ServerVersion: "1.0.0",
	}
}

// Load reads .env files (if present) and environment variables on top of DefaultConfig.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env", ".env.local"}
	}
	// Missing env files are fine.
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	c := DefaultConfig()
	c.Env = getEnv("APP_ENV", c.Env)
	c.BaseURL = strings.TrimRight(getEnv("GENERATE_BASE_URL", c.BaseURL), "/")
	c.GeneratePath = getEnv("GENERATE_PATH", c.GeneratePath)
	c.PlaceholderImage = getEnv("PLACEHOLDER_IMAGE", c.PlaceholderImage)
	c.ServerName = getEnv("MCP_SERVER_NAME", c.ServerName)

	timeoutSecs, err := getEnvInt("GENERATE_TIMEOUT_SECONDS", int(c.RequestTimeout/time.Second))
	if err != nil {
		return Config{}, err
	}
	c.RequestTimeout = time.Second * time.Duration(timeoutSecs)

	if c.SingleFlight, err = getEnvBool("GENERATE_SINGLE_FLIGHT", c.SingleFlight); err != nil {
		return Config{}, err
	}
	if c.HistoryCapacity, err = getEnvInt("HISTORY_CAPACITY", c.HistoryCapacity); err != nil {
		return Config{}, err
	}
	if c.LogLines, err = getEnvInt("LOG_BUFFER_LINES", c.LogLines); err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WithBaseURL returns a copy of the config pointing at a different generation service.
func (c Config) WithBaseURL(url string) Config {
	c.BaseURL = strings.TrimRight(url, "/")
	return c
}

// WithRequestTimeout returns a copy of the config with a modified request timeout.
func (c Config) WithRequestTimeout(d time.Duration) Config {
	c.RequestTimeout = d
	return c
}

// WithPlaceholder returns a copy of the config with a different placeholder image.
func (c Config) WithPlaceholder(ref string) Config {
	c.PlaceholderImage = ref
	return c
}

// WithSingleFlight returns a copy of the config with the in-flight guard enabled/disabled.
func (c Config) WithSingleFlight(enabled bool) Config {
	c.SingleFlight = enabled
	return c
}

// WithHistoryCapacity returns a copy of the config with a modified history capacity.
func (c Config) WithHistoryCapacity(n int) Config {
	c.HistoryCapacity = n
	return c
}

// EndpointURL is the full URL of the generation endpoint.
func (c Config) EndpointURL() string {
	return c.BaseURL + c.GeneratePath
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return &ConfigError{Field: "BaseURL", Message: "must not be empty"}
	}
	if !strings.HasPrefix(c.GeneratePath, "/") {
		return &ConfigError{Field: "GeneratePath", Message: "must start with /"}
	}
	if c.RequestTimeout <= 0 {
		return &ConfigError{Field: "RequestTimeout", Message: "must be positive"}
	}
	if c.PlaceholderImage == "" {
		return &ConfigError{Field: "PlaceholderImage", Message: "must not be empty"}
	}
	if c.ControlID == "" || c.SurfaceID == "" || c.IndicatorID == "" {
		return &ConfigError{Field: "ElementIDs", Message: "must not be empty"}
	}
	if c.HistoryCapacity <= 0 {
		return &ConfigError{Field: "HistoryCapacity", Message: "must be positive"}
	}
	if c.LogLines <= 0 {
		return &ConfigError{Field: "LogLines", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback, &ConfigError{Field: key, Message: "must be an integer, got " + strconv.Quote(v)}
	}
	return i, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, &ConfigError{Field: key, Message: "must be a boolean, got " + strconv.Quote(v)}
	}
	return b, nil
}
