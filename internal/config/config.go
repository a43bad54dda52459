package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds the settings taskfold reads at startup
type Config struct {
	// ListenAddr is where `taskfold serve` binds, e.g. ":8787"
	ListenAddr string `json:"listen_addr"`
	// SchedulerSecret is the bearer credential the scheduled sync
	// endpoint requires
	SchedulerSecret string `json:"scheduler_secret"`
	// CredentialsFile points at the Google API credentials.json
	CredentialsFile string `json:"credentials_file"`
	// SyncIntervalMinutes is a hint for the external scheduler; the
	// engine itself runs once per invocation
	SyncIntervalMinutes int `json:"sync_interval_minutes"`
}

// Dir returns the taskfold config directory
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskfold"), nil
}

func path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, returning defaults if it does not exist
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:          ":8787",
		SyncIntervalMinutes: 15,
	}

	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config file
func Save(cfg *Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0600)
}
