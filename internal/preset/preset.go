// Package preset loads named sort configurations from YAML files, so a
// favorite combination of heuristic and range flags can be reused across
// runs. Command-line flags set explicitly always win over preset values.
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/g-s-k/psort/internal/heuristic"
)

// Preset mirrors the sort flags of the CLI.
type Preset struct {
	// Heuristic is the heuristic name (case-insensitive).
	Heuristic string `yaml:"heuristic"`
	Minimum   uint8  `yaml:"minimum"`
	Maximum   uint8  `yaml:"maximum"`
	Invert    bool   `yaml:"invert"`
	Reverse   bool   `yaml:"reverse"`
	Vertical  bool   `yaml:"vertical"`
	// MaskAlpha excludes fully transparent pixels from sorting.
	MaskAlpha bool `yaml:"mask_alpha"`
}

// Default returns the preset matching the CLI flag defaults.
func Default() Preset {
	return Preset{
		Heuristic: heuristic.Luma.String(),
		Minimum:   0,
		Maximum:   255,
	}
}

// Load reads a preset file and validates it. Fields absent from the file
// keep their defaults.
func Load(path string) (Preset, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read preset: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse preset %s: %w", path, err)
	}
	if _, err := heuristic.Parse(p.Heuristic); err != nil {
		return p, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// Save writes the preset as YAML, for bootstrapping a config to edit.
func Save(p Preset, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return nil
}
