// ABOUTME: Tests for configuration loading
// ABOUTME: Verifies defaults and environment overrides

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	// t.Setenv registers restoration; unset so envconfig defaults apply
	for _, key := range []string{"HELPDESK_API_URL", "HELPDESK_LOG_LEVEL", "HELPDESK_CONFIG_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080/api" {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.ConfigDir != filepath.Join("/tmp/xdg", "helpdesk") {
		t.Errorf("expected XDG config dir, got %s", cfg.ConfigDir)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HELPDESK_API_URL", "https://support.example.com/api")
	t.Setenv("HELPDESK_LOG_LEVEL", "debug")
	t.Setenv("HELPDESK_CONFIG_DIR", "/var/lib/helpdesk")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://support.example.com/api" {
		t.Errorf("expected overridden API URL, got %s", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug level, got %s", cfg.LogLevel)
	}
	if cfg.ConfigDir != "/var/lib/helpdesk" {
		t.Errorf("expected explicit config dir, got %s", cfg.ConfigDir)
	}
}
