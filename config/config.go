// Package config holds the settings of the rebank command line tool
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cottand/rebank/internal/log"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

type Config struct {
	// Lexicon is the markedup file to load. Empty uses the embedded one.
	Lexicon string `yaml:"lexicon"`
	// Grammar is the default production list for the check command
	Grammar     string        `yaml:"grammar"`
	LogLevel    string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogSections []string      `yaml:"log_sections" validate:"dive,oneof=rules replace lexicon grammar"`
	Check       CheckConfig   `yaml:"check"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

type CheckConfig struct {
	Workers int    `yaml:"workers" validate:"min=1,max=64"`
	Seed    uint64 `yaml:"seed"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

func Default() Config {
	return Config{
		LogLevel:    "warn",
		LogSections: []string{log.SectionRules, log.SectionReplace},
		Check: CheckConfig{
			Workers: 4,
			Seed:    1,
		},
	}
}

// Load reads the YAML file at path over Default. A missing or empty file is
// not an error and gives Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("could not read config %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// an empty document leaves every field at its default
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

// Level is LogLevel as a slog.Level
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}
