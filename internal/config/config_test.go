package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	for _, key := range []string{"THISLIFE_ACCESS_CODE", "THISLIFE_DB_DRIVER", "THISLIFE_POSTGRES_DSN", "THISLIFE_SQLITE_PATH"} {
		_ = os.Unsetenv(key)
	}

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.AccessCode != DefaultAccessCode {
		t.Fatalf("expected default access code, got %q", cfg.AccessCode)
	}
	if cfg.DBDriver != "local" || cfg.RicherBackend() {
		t.Fatalf("expected local-only mode, got %+v", cfg)
	}
	if cfg.HTTPPort != 8080 || cfg.PushDebounceMs != 700 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigLoad_AccessCodeTrimmed(t *testing.T) {
	_ = os.Setenv("THISLIFE_ACCESS_CODE", "  secret-123  ")
	defer func() { _ = os.Unsetenv("THISLIFE_ACCESS_CODE") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.AccessCode != "secret-123" {
		t.Fatalf("access code not trimmed: %q", cfg.AccessCode)
	}
}

func TestResolveDefaults_AutoDriver(t *testing.T) {
	cfg := &Config{DBDriver: "auto", PostgresDSN: "postgres://localhost/planner"}
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("expected postgres, got %s", cfg.DBDriver)
	}

	cfg = &Config{DBDriver: "auto", SQLitePath: "/tmp/planner.db"}
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("expected sqlite, got %s", cfg.DBDriver)
	}
}

func TestResolveDefaults_MissingCredentials(t *testing.T) {
	cfg := &Config{DBDriver: "postgres"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for postgres without DSN")
	}
	cfg = &Config{DBDriver: "sqlite"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for sqlite without path")
	}
	cfg = &Config{DBDriver: "bogus"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
