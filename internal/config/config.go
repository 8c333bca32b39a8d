package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Defaults applied when the config file or a key is absent.
const (
	DefaultServerAddress  = ":8080"
	DefaultDatabasePath   = "./data/pokebot.db"
	DefaultIdleTimeoutMin = 30
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	// ContentDir points at a directory of YAML dataset files layered over
	// the embedded defaults. Empty keeps only the embedded data.
	ContentDir string `json:"content_dir"`
	// BattleIdleTimeoutMinutes controls when untouched battles are swept
	// and recorded as draws.
	BattleIdleTimeoutMinutes int   `json:"battle_idle_timeout_minutes"`
	RankedByDefault          *bool `json:"ranked_by_default"`
}

// LoadedConfig is the runtime configuration of the battle server.
type LoadedConfig struct {
	ServerAddress     string
	DatabasePath      string
	ContentDir        string
	BattleIdleTimeout time.Duration
	RankedByDefault   bool
}

// LoadConfig reads the JSON configuration at path. A missing file yields the
// defaults, so a bare checkout runs without any setup; a present but invalid
// file is an error.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := &LoadedConfig{
		ServerAddress:     DefaultServerAddress,
		DatabasePath:      DefaultDatabasePath,
		BattleIdleTimeout: DefaultIdleTimeoutMin * time.Minute,
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if rc.ContentDir != "" {
		st, err := os.Stat(rc.ContentDir)
		if err != nil || !st.IsDir() {
			return nil, fmt.Errorf("config file %s: content_dir %q is not a readable directory", path, rc.ContentDir)
		}
		cfg.ContentDir = rc.ContentDir
	}
	if rc.BattleIdleTimeoutMinutes < 0 {
		return nil, fmt.Errorf("config file %s: battle_idle_timeout_minutes must not be negative", path)
	}
	if rc.BattleIdleTimeoutMinutes > 0 {
		cfg.BattleIdleTimeout = time.Duration(rc.BattleIdleTimeoutMinutes) * time.Minute
	}
	if rc.RankedByDefault != nil {
		cfg.RankedByDefault = *rc.RankedByDefault
	}
	return cfg, nil
}
