package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Settings represents the application configuration persisted to disk.
// Environment variables override individual fields at load time so the
// addon can run fully env-configured in containers.
type Settings struct {
	Server ServerSettings `json:"server"`
	Addon  AddonSettings  `json:"addon"`
	Cache  CacheSettings  `json:"cache"`
	Log    LogConfig      `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// AddonSettings holds provider credentials and the public host name used to
// build absolute asset URLs in the manifest.
type AddonSettings struct {
	TMDBAPIKey   string `json:"tmdbApiKey"`
	FanartAPIKey string `json:"fanartApiKey"`
	HostName     string `json:"hostName"`
	StaticDir    string `json:"staticDir"`
}

type CacheSettings struct {
	MetaTTLHours    int  `json:"metaTtlHours"`
	CatalogTTLHours int  `json:"catalogTtlHours"`
	Disabled        bool `json:"disabled"`
}

type LogConfig struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns sane defaults for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Host: "0.0.0.0", Port: 1337},
		Addon: AddonSettings{
			HostName:  "http://localhost:1337",
			StaticDir: "public",
		},
		Cache: CacheSettings{
			MetaTTLHours:    7 * 24,
			CatalogTTLHours: 24,
		},
		Log: LogConfig{
			File:       "cache/logs/addon.log",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures the parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings.json from disk (creating defaults if missing) and
// applies environment overrides on top.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	var s Settings
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		s = DefaultSettings()
		if err := m.Save(s); err != nil {
			return Settings{}, err
		}
	} else {
		f, err := os.Open(m.path)
		if err != nil {
			return Settings{}, err
		}
		defer f.Close()
		s = DefaultSettings()
		if err := json.NewDecoder(f).Decode(&s); err != nil {
			return Settings{}, err
		}
	}
	applyEnv(&s)
	return s, nil
}

// Save writes settings atomically.
func (m *Manager) Save(s Settings) error {
	if err := m.EnsureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}

// applyEnv overlays recognized environment variables onto loaded settings.
func applyEnv(s *Settings) {
	if v := strings.TrimSpace(os.Getenv("TMDB_API")); v != "" {
		s.Addon.TMDBAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("FANART_API")); v != "" {
		s.Addon.FanartAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("HOST_NAME")); v != "" {
		s.Addon.HostName = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			s.Server.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("META_TTL_HOURS")); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl > 0 {
			s.Cache.MetaTTLHours = ttl
		}
	}
	if v := strings.TrimSpace(os.Getenv("CATALOG_TTL_HOURS")); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl > 0 {
			s.Cache.CatalogTTLHours = ttl
		}
	}
	if v := strings.TrimSpace(os.Getenv("NO_CACHE")); v != "" {
		s.Cache.Disabled = v == "true" || v == "1"
	}
}
