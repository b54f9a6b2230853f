package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8732 {
		t.Errorf("Port = %d, want 8732", cfg.Server.Port)
	}
	if cfg.Store.Path != "/data/videokoleks.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Resolver.Timeout != 10*time.Second {
		t.Errorf("Resolver.Timeout = %v, want 10s", cfg.Resolver.Timeout)
	}
	if !strings.Contains(cfg.Resolver.UserAgent, "Mozilla/5.0") {
		t.Errorf("expected a browser user agent default, got %q", cfg.Resolver.UserAgent)
	}
	if cfg.Unfurl.BaseURL != "" {
		t.Errorf("expected unfurl disabled by default, got %q", cfg.Unfurl.BaseURL)
	}
}

func TestLoad_FromFile(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 9000
store:
  path: /tmp/test.db
resolver:
  timeout: 5s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Store.Path != "/tmp/test.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Resolver.Timeout != 5*time.Second {
		t.Errorf("Resolver.Timeout = %v, want 5s", cfg.Resolver.Timeout)
	}
	if cfg.Server.Address() != "127.0.0.1:9000" {
		t.Errorf("Address() = %q", cfg.Server.Address())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "9999")

	path := writeConfigFile(t, `
server:
  port: 9000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want env override 9999", cfg.Server.Port)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	if _, err := Load(""); err == nil {
		t.Error("expected error when API_KEY is unset")
	}
}

func TestLoad_UnfurlRequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("UNFURL_BASE_URL", "https://unfurl.example.com")
	t.Setenv("UNFURL_API_KEY", "")

	if _, err := Load(""); err == nil {
		t.Error("expected error when unfurl is enabled without an API key")
	}

	t.Setenv("UNFURL_API_KEY", "unfurl-key")
	if _, err := Load(""); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing config file")
	}
}
