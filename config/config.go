// Package config loads and saves the on-disk configuration under
// ~/.config/loom.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// OutputConfig names the preferred MIDI output.
type OutputConfig struct {
	// DeviceID is the composite "<port index>:<port name>" string, empty
	// when no default output is configured.
	DeviceID string `json:"deviceId,omitempty"`
	Name     string `json:"name,omitempty"`
	Channel  *uint8 `json:"channel,omitempty"` // nil = all channels
}

// EngineConfig holds timing settings.
type EngineConfig struct {
	ReferenceSampleRate uint32 `json:"referenceSampleRate,omitempty"`
	PlaybackSampleRate  uint32 `json:"playbackSampleRate,omitempty"`
	BeatPulse           *bool  `json:"beatPulse,omitempty"` // nil = on
}

// UIConfig stores UI preferences.
type UIConfig struct {
	LastTempo float64 `json:"lastTempo,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Output OutputConfig `json:"output,omitempty"`
	Engine EngineConfig `json:"engine,omitempty"`
	UI     UIConfig     `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			ReferenceSampleRate: 44100,
			PlaybackSampleRate:  44100,
		},
		UI: UIConfig{LastTempo: 120},
	}
}

// BeatPulseEnabled resolves the beat pulse toggle, on when unset.
func (c *Config) BeatPulseEnabled() bool {
	return c.Engine.BeatPulse == nil || *c.Engine.BeatPulse
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "loom"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
