package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bonntanname/figure-checker/internal/model"
)

const configFileName = "config.json"

// Store is the per-user state directory (~/.figcheck by default). It holds
// the persisted label schema, per-directory session state, and the choice
// journal. Results CSVs never live here; they belong to the image directory.
type Store struct {
	Dir string
}

// Config is the persisted user configuration.
type Config struct {
	Version int `json:"version"`

	// Schema is the label schema restored on startup. Empty means built-in
	// defaults.
	Schema []model.LabelDef `json:"schema,omitempty"`

	// TUI holds optional appearance preferences.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme forces the palette: "light", "dark", or "" (auto).
	Theme string `json:"theme,omitempty"`
}

// ConfigDir resolves the state directory.
// FIGCHECK_CONFIG_DIR overrides it (keeps unit tests from touching ~/.figcheck).
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("FIGCHECK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".figcheck"), nil
}

// Default returns a Store rooted at the resolved config dir.
func Default() (Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: dir}, nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) configPath() string {
	return filepath.Join(s.Dir, configFileName)
}

// LoadConfig reads the config file; missing or corrupted files yield an
// empty config rather than an error, so startup never fails on state.
func (s Store) LoadConfig() (*Config, error) {
	b, err := os.ReadFile(s.configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{Version: 1}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return &Config{Version: 1}, nil
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	return &cfg, nil
}

func (s Store) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.configPath(), b)
}

func writeFileAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
