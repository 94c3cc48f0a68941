// Package config loads the settings of the nabla command from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sw965/nabla/functions"
	"github.com/sw965/nabla/mathx"
	"github.com/sw965/nabla/partial"
	"github.com/sw965/nabla/pointio"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Function  string  `yaml:"function"`
	Step      float64 `yaml:"step"`
	Format    string  `yaml:"format,omitempty"`
	Verify    bool    `yaml:"verify"`
	Tolerance float64 `yaml:"tolerance"`
}

func Default() Config {
	return Config{
		Function:  "user",
		Step:      partial.Step,
		Tolerance: 1e-3,
	}
}

// Load reads path on top of Default. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes data on top of Default. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := functions.Lookup(c.Function); err != nil {
		return err
	}

	// 0 は既定のステップ (nabla.Calculator と同じ扱い)
	if c.Step != 0 {
		if err := partial.ValidateStep(c.Step); err != nil {
			return err
		}
	}

	if c.Tolerance <= 0 || !mathx.IsFinite(c.Tolerance) {
		return fmt.Errorf("%w: tolerance=%.6g", ErrInvalid, c.Tolerance)
	}

	if err := pointio.ValidateFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// EffectiveStep is Step, or partial.Step when Step is 0.
func (c Config) EffectiveStep() float64 {
	if c.Step == 0 {
		return partial.Step
	}
	return c.Step
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
