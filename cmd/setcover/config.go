package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of a run. Values come from the defaults, then
// the YAML file given by --config, then flags set on the command line.
type Config struct {
	Input       string        `yaml:"input" validate:"required"`
	Output      string        `yaml:"output"`
	Solver      string        `yaml:"solver" validate:"required_if=Backend exec"`
	Verbosity   int           `yaml:"verbosity" validate:"min=0,max=1"`
	Backend     string        `yaml:"backend" validate:"oneof=exec gophersat gini dpll"`
	Timeout     time.Duration `yaml:"timeout"`
	MetricsFile string        `yaml:"metrics_file"`
	LogLevel    string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	Strict      bool          `yaml:"strict"`
}

func defaultConfig() Config {
	return Config{
		Input:     "input.in",
		Output:    "formula.cnf",
		Solver:    "glucose-syrup",
		Verbosity: 1,
		Backend:   "exec",
		LogLevel:  "warn",
	}
}

var validate = validator.New()

// loadConfigFile overlays the settings in filename on cfg.
func loadConfigFile(cfg *Config, filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %s", filename, err)
	}
	return nil
}

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %s", err)
	}
	return nil
}

func (c *Config) level() slog.Level {
	var l slog.Level
	// Already validated.
	l.UnmarshalText([]byte(c.LogLevel))
	return l
}
