package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.NewsletterName != "Community Herald" {
		t.Errorf("NewsletterName = %q", cfg.NewsletterName)
	}
	if cfg.LLM.TimeoutSeconds != 15 {
		t.Errorf("LLM.TimeoutSeconds = %d, want 15", cfg.LLM.TimeoutSeconds)
	}
	if cfg.Schedule.Weekly != "0 9 * * 1" {
		t.Errorf("Schedule.Weekly = %q", cfg.Schedule.Weekly)
	}
	if cfg.LLM.Endpoint != "" {
		t.Errorf("LLM.Endpoint should default empty (demo mode), got %q", cfg.LLM.Endpoint)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"newsletter_name": "Solidarity Weekly",
		"llm": {"endpoint": "https://router.example.com/v1/chat/completions", "timeout_seconds": 5},
		"db_max_open_conns": 1
	}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.NewsletterName != "Solidarity Weekly" {
		t.Errorf("NewsletterName = %q", cfg.NewsletterName)
	}
	if cfg.LLM.Endpoint != "https://router.example.com/v1/chat/completions" {
		t.Errorf("LLM.Endpoint = %q", cfg.LLM.Endpoint)
	}
	if cfg.LLM.TimeoutSeconds != 5 {
		t.Errorf("LLM.TimeoutSeconds = %d, want 5", cfg.LLM.TimeoutSeconds)
	}
	// Unset file values keep defaults.
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", cfg.DBMaxOpenConns)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HERALD_LLM_ENDPOINT", "https://env.example.com/v1/chat/completions")
	t.Setenv("HERALD_LLM_API_KEY", "sk-test")
	t.Setenv("HERALD_LLM_MODEL", "llama-3.1-70b")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLM.Endpoint != "https://env.example.com/v1/chat/completions" {
		t.Errorf("LLM.Endpoint = %q", cfg.LLM.Endpoint)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("LLM.APIKey = %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "llama-3.1-70b" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
}

func TestMergeDisabledTools(t *testing.T) {
	base := &Config{DisabledTools: []string{"content_import"}}
	overlay := &Config{DisabledTools: []string{"content_import", "edition_approve"}}
	merged := Merge(base, overlay)
	if len(merged.DisabledTools) != 2 {
		t.Errorf("DisabledTools = %v, want 2 deduplicated entries", merged.DisabledTools)
	}
}
