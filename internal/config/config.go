// ABOUTME: Journey configuration management with backend selection.
// ABOUTME: Holds the journey start date, chart band, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/charm"
	"github.com/harperreed/journey/internal/scoring"
	"github.com/harperreed/journey/internal/storage"
)

// BackendEnv overrides the configured backend for a single invocation.
const BackendEnv = "JOURNEY_BACKEND"

// Backends lists the supported storage backends.
var Backends = []string{"sqlite", "markdown", "charm"}

// Config stores journey tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "markdown", or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts journey.db here. Markdown puts checkins/ and survey.yaml here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/journey.
	DataDir string `json:"data_dir,omitempty"`

	// JourneyStart is day 1 of the year-long series, as YYYY-MM-DD.
	JourneyStart string `json:"journey_start,omitempty"`

	// DisplayBand clamps the cumulative line when charting.
	DisplayBand float64 `json:"display_band,omitempty"`
}

// GetBackend returns the backend, honouring JOURNEY_BACKEND and defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if env := strings.TrimSpace(os.Getenv(BackendEnv)); env != "" {
		return env
	}
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDisplayBand returns the chart clamp band.
func (c *Config) GetDisplayBand() float64 {
	if c.DisplayBand <= 0 {
		return scoring.DefaultDisplayBand
	}
	return c.DisplayBand
}

// GetJourneyStart parses the configured start date. ok is false when none is set.
func (c *Config) GetJourneyStart() (civil.Date, bool, error) {
	if c.JourneyStart == "" {
		return civil.Date{}, false, nil
	}
	d, err := civil.ParseDate(c.JourneyStart)
	if err != nil {
		return civil.Date{}, false, fmt.Errorf("invalid journey_start %q: %w", c.JourneyStart, err)
	}
	return d, true, nil
}

// EnsureJourneyStart returns the start date, setting it to today when unset.
// changed reports whether the caller should Save.
func (c *Config) EnsureJourneyStart(today civil.Date) (start civil.Date, changed bool, err error) {
	start, ok, err := c.GetJourneyStart()
	if err != nil {
		return civil.Date{}, false, err
	}
	if ok {
		return start, false, nil
	}
	c.JourneyStart = today.String()
	return today, true, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend rooted at the configured data directory.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		return storage.Open(filepath.Join(dataDir, "journey.db"))
	case "markdown":
		return storage.NewMarkdownStore(dataDir)
	case "charm":
		client, err := charm.InitClient()
		if err != nil {
			return nil, fmt.Errorf("open charm kv: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q (want one of %s)", backend, strings.Join(Backends, ", "))
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "journey", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, _, err := cfg.GetJourneyStart(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
