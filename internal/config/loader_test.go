package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func unsetRoombookEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ROOMBOOK_HTTP_PORT",
		"ROOMBOOK_DB_PATH",
		"ROOMBOOK_SESSION_TTL",
		"ROOMBOOK_REDIS_ADDR",
		"ROOMBOOK_REDIS_PASSWORD",
		"ROOMBOOK_STATUS_CACHE_TTL",
		"ROOMBOOK_ADMIN_EMAIL",
		"ROOMBOOK_ADMIN_PASSWORD",
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	unsetRoombookEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Path != "data/roombook.db" {
		t.Errorf("unexpected default database path: %q", cfg.Database.Path)
	}
	if cfg.Session.TTL.Std() != 24*time.Hour {
		t.Errorf("unexpected default session TTL: %s", cfg.Session.TTL)
	}
	if cfg.StatusCache.TTL.Std() != 30*time.Second {
		t.Errorf("unexpected default cache TTL: %s", cfg.StatusCache.TTL)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	unsetRoombookEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
}

func TestLoad_ReadsYAMLWithPlaceholders(t *testing.T) {
	unsetRoombookEnv(t)
	t.Setenv("TEST_REDIS_PASSWORD", "hunter2")

	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := `
http:
  port: 9090
database:
  path: /tmp/roombook.db
session:
  ttl: 1h
redis:
  address: localhost:6379
  password: ${TEST_REDIS_PASSWORD}
`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Session.TTL.Std() != time.Hour {
		t.Errorf("expected session TTL 1h, got %s", cfg.Session.TTL)
	}
	if cfg.Redis.Password != "hunter2" {
		t.Errorf("placeholder not expanded: %q", cfg.Redis.Password)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	unsetRoombookEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("ROOMBOOK_HTTP_PORT", "7070")
	t.Setenv("ROOMBOOK_SESSION_TTL", "90m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Errorf("expected env override 7070, got %d", cfg.HTTP.Port)
	}
	if cfg.Session.TTL.Std() != 90*time.Minute {
		t.Errorf("expected session TTL 90m, got %s", cfg.Session.TTL)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	unsetRoombookEnv(t)

	t.Run("bad environment value", func(t *testing.T) {
		t.Setenv("ROOMBOOK_HTTP_PORT", "not-a-port")
		if _, err := Load(""); err == nil {
			t.Fatal("expected error for invalid port")
		}
	})

	t.Run("admin email without password", func(t *testing.T) {
		unsetRoombookEnv(t)
		t.Setenv("ROOMBOOK_ADMIN_EMAIL", "admin@example.com")
		if _, err := Load(""); err == nil {
			t.Fatal("expected error for admin email without password")
		}
	})
}
