package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Environment variable names for deploy-time overrides.
const (
	envLLMEndpoint = "HERALD_LLM_ENDPOINT"
	envLLMModel    = "HERALD_LLM_MODEL"
	envLLMAPIKey   = "HERALD_LLM_API_KEY"
)

// LLMConfig describes the text-generation endpoint used for edition intros.
// An empty Endpoint or APIKey is a valid configuration (demo/offline mode):
// the intro generator falls back to static copy instead of erroring.
type LLMConfig struct {
	Endpoint       string `json:"endpoint,omitempty"`
	Model          string `json:"model,omitempty"`
	APIKey         string `json:"api_key,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// ScheduleConfig holds the cron specs driving automatic edition generation.
type ScheduleConfig struct {
	Timezone string `json:"timezone,omitempty"`
	Weekly   string `json:"weekly,omitempty"`
	Monthly  string `json:"monthly,omitempty"`
}

// Config holds application configuration.
type Config struct {
	// Newsletter display name used in edition titles and the rendered header.
	NewsletterName string `json:"newsletter_name,omitempty"`

	LLM      LLMConfig      `json:"llm,omitempty"`
	Schedule ScheduleConfig `json:"schedule,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized.
	// 0 means use sql.DB default. Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NewsletterName: "Community Herald",
		LLM: LLMConfig{
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 15,
		},
		Schedule: ScheduleConfig{
			Timezone: "UTC",
			Weekly:   "0 9 * * 1",
			Monthly:  "0 9 1 * *",
		},
	}
}

// Load loads configuration from baseDir/config.json, applies defaults for
// missing values, then environment overrides. Returns defaults if the file
// doesn't exist. The baseDir parameter allows tests to use t.TempDir().
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	merged.applyEnvOverrides()
	return merged, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(envLLMEndpoint); v != "" {
		c.LLM.Endpoint = v
	}
	if v := os.Getenv(envLLMModel); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(envLLMAPIKey); v != "" {
		c.LLM.APIKey = v
	}
}

// Merge combines base and overlay configs. Overlay values take precedence
// for non-zero scalars; the disabled-tools list is merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.NewsletterName = overlayString(base.NewsletterName, overlay.NewsletterName)

	result.LLM.Endpoint = overlayString(base.LLM.Endpoint, overlay.LLM.Endpoint)
	result.LLM.Model = overlayString(base.LLM.Model, overlay.LLM.Model)
	result.LLM.APIKey = overlayString(base.LLM.APIKey, overlay.LLM.APIKey)
	result.LLM.TimeoutSeconds = overlay.LLM.TimeoutSeconds
	if result.LLM.TimeoutSeconds == 0 {
		result.LLM.TimeoutSeconds = base.LLM.TimeoutSeconds
	}

	result.Schedule.Timezone = overlayString(base.Schedule.Timezone, overlay.Schedule.Timezone)
	result.Schedule.Weekly = overlayString(base.Schedule.Weekly, overlay.Schedule.Weekly)
	result.Schedule.Monthly = overlayString(base.Schedule.Monthly, overlay.Schedule.Monthly)

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}
	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func overlayString(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
