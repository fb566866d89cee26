package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dstanziola/copypoint/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_NAME", "APP_ENV", "APP_PORT", "DB_PATH", "SESSION_TTL"} {
		os.Unsetenv(key)
	}

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.App.Name != "Copypoint" {
		t.Errorf("App.Name = %q, want Copypoint", cfg.App.Name)
	}
	if cfg.App.Port != "8077" {
		t.Errorf("App.Port = %q, want 8077", cfg.App.Port)
	}
	if cfg.DB.Path != "inventario.db" {
		t.Errorf("DB.Path = %q, want inventario.db", cfg.DB.Path)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want 30m", cfg.Session.TTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL", "1h")

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.App.Env != "production" {
		t.Errorf("App.Env = %q, want production", cfg.App.Env)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("Session.TTL = %v, want 1h", cfg.Session.TTL)
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	os.Unsetenv("APP_NAME")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("APP_NAME=Sucursal\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("APP_NAME") })

	cfg := config.Load(path)
	if cfg.App.Name != "Sucursal" {
		t.Errorf("App.Name = %q, want Sucursal", cfg.App.Name)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := config.GetInt("TEST_INT", 7); got != 42 {
		t.Errorf("GetInt = %d, want 42", got)
	}
	if got := config.GetInt("TEST_INT_MISSING", 7); got != 7 {
		t.Errorf("GetInt fallback = %d, want 7", got)
	}
	t.Setenv("TEST_INT", "nope")
	if got := config.GetInt("TEST_INT", 7); got != 7 {
		t.Errorf("GetInt invalid = %d, want 7", got)
	}
}
