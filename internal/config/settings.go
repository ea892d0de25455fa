// Package config provides settings management
package config

import (
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings holds all renderer settings
type Settings struct {
	// Window
	Width  int
	Height int
	VSync  bool

	// Renderer
	Workers       int // 0 means one worker per logical CPU
	FOV           float32
	MaxPrimitives int
	SahBins       int

	// Scene
	Scene string

	// Snapshots
	SnapshotDir string
}

// DefaultSettings returns default settings
func DefaultSettings() *Settings {
	return &Settings{
		// Window
		Width:  1280,
		Height: 720,
		VSync:  true,

		// Renderer
		Workers:       0,
		FOV:           60.0,
		MaxPrimitives: 1 << 22,
		SahBins:       8,

		// Scene
		Scene: "terrain",

		// Snapshots
		SnapshotDir: "snapshots",
	}
}

// Load reads settings from a TOML file, falling back to defaults when
// the file does not exist. Unknown keys are logged as a warning so
// typos do not pass silently; they do not fail the load.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("No config at %s, using defaults", path)
		return settings, nil
	}

	meta, err := toml.DecodeFile(path, settings)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Printf("Warning: unknown config keys: %v", undecoded)
	}
	return settings, nil
}

// Save writes settings to a TOML file.
func Save(path string, settings *Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(settings)
}
