package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"gopkg.in/yaml.v3"

	"github.com/kshitij-v-mehta/gray-scott-campaign/pkg/types"
)

// ErrConfigValidation covers every startup-settings violation: a missing
// required key or a referenced path that does not exist. It is fatal before
// any worker starts.
var ErrConfigValidation = errors.New("invalid campaign settings")

// ------------------------------ settings schema ------------------------------

// Axis defines one sweep dimension: Count grid values starting at Base,
// spaced Step apart.
type Axis struct {
	Base  float64 `yaml:"base"`
	Step  float64 `yaml:"step"`
	Count int     `yaml:"count"`
}

// Sweep is the two-dimensional (F, k) grid definition.
type Sweep struct {
	F Axis `yaml:"f"`
	K Axis `yaml:"k"`
}

// JobSettings is the orchestrator's bootstrap configuration, loaded once at
// startup and read-only afterwards. The sweep section is optional and
// defaults to the canonical 10x10 Gray-Scott grid.
type JobSettings struct {
	GSExe        string `yaml:"gs_exe"`
	GSJSON       string `yaml:"gs_json"`
	Adios2XML    string `yaml:"adios2_xml"`
	EnsembleRoot string `yaml:"ensemble_root"`
	Sweep        Sweep  `yaml:"sweep"`
}

// DefaultSweep returns the grid the campaign was designed around:
// F from 0.01 in steps of 0.01, k from 0.05 in steps of 0.05, 10 values each.
func DefaultSweep() Sweep {
	return Sweep{
		F: Axis{Base: 0.01, Step: 0.01, Count: 10},
		K: Axis{Base: 0.05, Step: 0.05, Count: 10},
	}
}

// ------------------------------ loader ------------------------------

// Load reads and validates the settings artifact. The file is parsed as
// YAML, which also accepts the JSON form the original campaign files used.
func Load(path string) (*JobSettings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}
	var s JobSettings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}
	if s.Sweep.F.Count == 0 && s.Sweep.K.Count == 0 {
		s.Sweep = DefaultSweep()
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *JobSettings) validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"gs_exe", s.GSExe},
		{"gs_json", s.GSJSON},
		{"adios2_xml", s.Adios2XML},
		{"ensemble_root", s.EnsembleRoot},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: missing required key %q", ErrConfigValidation, r.key)
		}
	}
	if err := checkExecutable(s.GSExe); err != nil {
		return fmt.Errorf("%w: gs_exe: %v", ErrConfigValidation, err)
	}
	for _, p := range []string{s.GSJSON, s.Adios2XML, s.EnsembleRoot} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %v", ErrConfigValidation, err)
		}
	}
	if s.Sweep.F.Count <= 0 || s.Sweep.K.Count <= 0 {
		return fmt.Errorf("%w: sweep axis counts must be positive", ErrConfigValidation)
	}
	return nil
}

// checkExecutable accepts either a path on disk or a bare command name
// resolvable through PATH.
func checkExecutable(exe string) error {
	if _, err := os.Stat(exe); err == nil {
		return nil
	}
	_, err := exec.LookPath(exe)
	return err
}

// LoadTemplate reads the simulation's parameter template. The file is the
// simulation's own JSON settings format, so it is decoded with encoding/json.
func LoadTemplate(path string) (types.RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.RunConfig{}, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}
	var tpl types.RunConfig
	if err := json.Unmarshal(raw, &tpl); err != nil {
		return types.RunConfig{}, fmt.Errorf("%w: template %s: %v", ErrConfigValidation, path, err)
	}
	return tpl, nil
}
