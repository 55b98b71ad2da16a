package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("Expected memory backend default, got %s", cfg.Store.Backend)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Expected default listen addr, got %s", cfg.Server.ListenAddr)
	}
	if cfg.Trending.Limit != 8 {
		t.Errorf("Expected trending limit 8, got %d", cfg.Trending.Limit)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: supabase
  supabaseUrl: https://file.supabase.co
  supabaseKey: file-key
server:
  listenAddr: ":9090"
`)
	t.Setenv("SUPABASE_URL", "https://env.supabase.co")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.SupabaseURL != "https://env.supabase.co" {
		t.Errorf("Expected env to override file, got %s", cfg.Store.SupabaseURL)
	}
	if cfg.Store.SupabaseKey != "file-key" {
		t.Errorf("Expected file value kept, got %s", cfg.Store.SupabaseKey)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("Expected file listen addr, got %s", cfg.Server.ListenAddr)
	}
}

func TestLoad_ValidatesBackendRequirements(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: postgres
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for postgres backend without DSN")
	}

	path = writeConfig(t, `
store:
  backend: carrier-pigeon
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for unknown backend")
	}
}
