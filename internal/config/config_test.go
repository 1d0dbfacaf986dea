package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "careerconnect" {
		t.Fatalf("expected default app name, got %s", cfg.AppName)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Fatalf("expected default base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 10*time.Second {
		t.Fatalf("expected default request timeout, got %s", cfg.API.RequestTimeout)
	}
	if !cfg.Session.RefreshEnabled {
		t.Fatal("expected session refresh enabled by default")
	}
	if cfg.Keystore.Path == "" {
		t.Fatal("expected a default keystore path")
	}
	if cfg.Logger.Encoding != "console" {
		t.Fatalf("expected console encoding, got %s", cfg.Logger.Encoding)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "careerconnect-test")
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "https://api.example.com/api")
	t.Setenv("API_REQUEST_TIMEOUT", "3s")
	t.Setenv("API_MAX_CONNS", "32")
	t.Setenv("KEYSTORE_PATH", "/tmp/test-keystore.db")
	t.Setenv("SESSION_REFRESH_ENABLED", "false")
	t.Setenv("SESSION_REFRESH_INTERVAL", "90s")
	t.Setenv("MONITOR_INTERVAL_SECONDS", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "careerconnect-test" {
		t.Fatalf("expected APP_NAME override, got %s", cfg.AppName)
	}
	if cfg.Environment != "production" {
		t.Fatalf("expected APP_ENV override, got %s", cfg.Environment)
	}
	if cfg.API.BaseURL != "https://api.example.com/api" {
		t.Fatalf("expected API_BASE_URL override, got %s", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 3*time.Second {
		t.Fatalf("expected API_REQUEST_TIMEOUT 3s, got %s", cfg.API.RequestTimeout)
	}
	if cfg.API.MaxConns != 32 {
		t.Fatalf("expected API_MAX_CONNS 32, got %d", cfg.API.MaxConns)
	}
	if cfg.Keystore.Path != "/tmp/test-keystore.db" {
		t.Fatalf("expected KEYSTORE_PATH override, got %s", cfg.Keystore.Path)
	}
	if cfg.Session.RefreshEnabled {
		t.Fatal("expected SESSION_REFRESH_ENABLED false")
	}
	if cfg.Session.RefreshInterval != 90*time.Second {
		t.Fatalf("expected SESSION_REFRESH_INTERVAL 90s, got %s", cfg.Session.RefreshInterval)
	}
	if cfg.Context.MonitorInterval != 5*time.Second {
		t.Fatalf("expected bare-seconds MONITOR_INTERVAL parsed, got %s", cfg.Context.MonitorInterval)
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("expected LOG_LEVEL override, got %s", cfg.Logger.Level)
	}
}

func TestGetDurationFallsBackOnGarbage(t *testing.T) {
	t.Setenv("API_REQUEST_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.RequestTimeout != 10*time.Second {
		t.Fatalf("expected fallback timeout, got %s", cfg.API.RequestTimeout)
	}
}
