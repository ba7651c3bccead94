// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// APIKeyEnv names the variable holding the Gemini API key
const APIKeyEnv = "GEMINI_API_KEY"

// Config holds all server configuration
type Config struct {
	Port             string
	Env              string
	GeminiAPIBaseURL string
	ChatModel        string
	TTSModel         string
	TTSVoice         string
	AllowedOrigins   []string
	ShutdownTimeout  time.Duration
	UpstreamTimeout  time.Duration // speech calls only, zero means none
	UseMockUpstream  bool

	v *viper.Viper
}

// Load reads configuration from environment variables with defaults
func Load() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("app_env", "production")
	v.SetDefault("gemini_api_base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini_chat_model", "gemini-2.5-flash")
	v.SetDefault("gemini_tts_model", "gemini-2.5-flash-preview-tts")
	v.SetDefault("gemini_tts_voice", "Kore")
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("upstream_timeout", time.Duration(0))
	v.SetDefault("use_mock_upstream", false)
	v.AutomaticEnv()

	cfg := &Config{
		Port:             v.GetString("port"),
		Env:              v.GetString("app_env"),
		GeminiAPIBaseURL: strings.TrimRight(v.GetString("gemini_api_base_url"), "/"),
		ChatModel:        v.GetString("gemini_chat_model"),
		TTSModel:         v.GetString("gemini_tts_model"),
		TTSVoice:         v.GetString("gemini_tts_voice"),
		AllowedOrigins:   splitList(v.GetString("allowed_origins")),
		ShutdownTimeout:  v.GetDuration("shutdown_timeout"),
		UpstreamTimeout:  v.GetDuration("upstream_timeout"),
		UseMockUpstream:  v.GetBool("use_mock_upstream"),
		v:                v,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	p, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if p <= 0 || p > 65535 {
		return fmt.Errorf("invalid PORT: %d out of range", p)
	}
	if c.GeminiAPIBaseURL == "" {
		return fmt.Errorf("GEMINI_API_BASE_URL must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %s", c.ShutdownTimeout)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("invalid UPSTREAM_TIMEOUT: %s", c.UpstreamTimeout)
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS must list at least one origin")
	}
	return nil
}

// APIKey returns the Gemini API key. It is looked up on every call so a
// missing key fails the request instead of the process.
func (c *Config) APIKey() string {
	return strings.TrimSpace(c.v.GetString(strings.ToLower(APIKeyEnv)))
}

// IsDevelopment reports whether APP_ENV is "development"
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ChatBaseURL is the host root handed to the genai SDK
func (c *Config) ChatBaseURL() string {
	return c.GeminiAPIBaseURL + "/"
}

// SpeechBaseURL is the versioned REST root used by the speech client
func (c *Config) SpeechBaseURL() string {
	return c.GeminiAPIBaseURL + "/v1beta"
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
