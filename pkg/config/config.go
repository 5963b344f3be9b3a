// Package config loads and validates the fakehist JSON configuration.
//
// One file, loaded once into an immutable value that callers pass
// explicitly into the scheduler — no component reads ambient state.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/will-white/fake-history/pkg/model"
)

// DefaultFile is the config filename looked up in the working directory
// when FAKEHIST_CONFIG is unset.
const DefaultFile = "config.json"

// Config mirrors the JSON configuration file.
type Config struct {
	Persona    model.Persona        `json:"commit_persona"`
	Backfill   model.BackfillWindow `json:"backfill_settings"`
	Clustering model.ClusterConfig  `json:"commit_clustering"`
	Run        model.RunSettings    `json:"run_settings"`
	Content    model.ContentConfig  `json:"commit_content"`
}

// Default returns the configuration written by `fakehist init`, matching
// the documented defaults. Author identity is left for the caller.
func Default() *Config {
	return &Config{
		Persona: model.Persona{
			Messages: []string{
				"feat: Initial implementation",
				"fix: Correct bug",
				"refactor: Improve code",
			},
		},
		Backfill: model.BackfillWindow{
			StartDate: "2025-01-01",
			EndDate:   "2025-01-31",
			Frequency: 0.7,
		},
		Clustering: model.ClusterConfig{
			Enabled: true,
			Min:     2,
			Max:     5,
		},
		Run: model.RunSettings{
			MinCommits: 1,
			MaxCommits: 3,
			WorkingHours: model.WorkingHoursConfig{
				Enabled:        true,
				StartHour:      9,
				EndHour:        17,
				WorkOnSaturday: false,
				WorkOnSunday:   false,
			},
			SkipRunChance: 0.2,
		},
		Content: model.ContentConfig{
			TargetFile: "activity.log",
			LinePrefix: "- Log:",
		},
	}
}

// Load reads and validates the config file at path. A missing, empty, or
// invalid file is an error — the caller must be able to refuse to
// schedule anything without a usable config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %q not found (run 'fakehist init' to create one)", path)
		}
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("config file %q is empty", path)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	c.Run = c.Run.Normalize()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return &c, nil
}

// Validate checks every section. Clustering bounds are only enforced when
// clustering is enabled; a zero-valued disabled block is fine.
func (c *Config) Validate() error {
	if err := c.Persona.Validate(); err != nil {
		return err
	}
	if err := c.Backfill.Validate(); err != nil {
		return err
	}
	if c.Clustering.Enabled {
		if err := c.Clustering.Validate(); err != nil {
			return err
		}
	}
	return c.Run.Validate()
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}
