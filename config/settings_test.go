package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Server.Port != 1337 {
		t.Fatalf("default port: %d", s.Server.Port)
	}
	if s.Cache.MetaTTLHours != 168 || s.Cache.CatalogTTLHours != 24 {
		t.Fatalf("default TTLs: %+v", s.Cache)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("settings file not written: %v", err)
	}
}

func TestLoadPreservesSavedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s := DefaultSettings()
	s.Addon.TMDBAPIKey = "key1"
	s.Server.Port = 9000
	if err := m.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Addon.TMDBAPIKey != "key1" || loaded.Server.Port != 9000 {
		t.Fatalf("round trip lost values: %+v", loaded)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TMDB_API", "env-key")
	t.Setenv("HOST_NAME", "https://addon.example.com/")
	t.Setenv("PORT", "8080")
	t.Setenv("META_TTL_HOURS", "48")
	t.Setenv("NO_CACHE", "true")

	m := NewManager(filepath.Join(t.TempDir(), "settings.json"))
	s, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Addon.TMDBAPIKey != "env-key" {
		t.Fatalf("TMDB_API override: %q", s.Addon.TMDBAPIKey)
	}
	if s.Addon.HostName != "https://addon.example.com" {
		t.Fatalf("HOST_NAME must drop the trailing slash: %q", s.Addon.HostName)
	}
	if s.Server.Port != 8080 {
		t.Fatalf("PORT override: %d", s.Server.Port)
	}
	if s.Cache.MetaTTLHours != 48 {
		t.Fatalf("META_TTL_HOURS override: %d", s.Cache.MetaTTLHours)
	}
	if !s.Cache.Disabled {
		t.Fatal("NO_CACHE override not applied")
	}
}

func TestLoadWithoutPathFails(t *testing.T) {
	if _, err := NewManager("").Load(); err == nil {
		t.Fatal("expected error for empty config path")
	}
}
