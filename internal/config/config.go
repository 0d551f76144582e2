// Package config provides Viper-based configuration loading for the
// simulation server.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ContentConfig holds the location of the YAML content catalog.
type ContentConfig struct {
	// Dir is the directory holding the catalog files (activities.yaml,
	// characters.yaml, skills.yaml, quests.yaml, crisis.yaml).
	Dir string `mapstructure:"dir"`
}

// LoopConfig holds the fixed-timestep loop settings.
type LoopConfig struct {
	// TargetFPS is the simulation tick rate; the step size is 1000/TargetFPS ms.
	TargetFPS int `mapstructure:"target_fps"`
	// MaxFrameMs bounds the real time a single frame may inject after a stall.
	MaxFrameMs float64 `mapstructure:"max_frame_ms"`
}

// SimConfig holds world-level simulation settings.
type SimConfig struct {
	// Speed is the game-minutes-per-real-second rate of the game clock.
	Speed float64 `mapstructure:"speed"`
	// Seed fixes the random source for reproducible runs; 0 uses a
	// cryptographic source.
	Seed int64 `mapstructure:"seed"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Content ContentConfig `mapstructure:"content"`
	Loop    LoopConfig    `mapstructure:"loop"`
	Sim     SimConfig     `mapstructure:"sim"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLoop(c.Loop); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSim(c.Sim); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.Dir == "" {
		return fmt.Errorf("content.dir must not be empty")
	}
	return nil
}

func validateLoop(l LoopConfig) error {
	var errs []string
	if l.TargetFPS < 1 || l.TargetFPS > 240 {
		errs = append(errs, fmt.Sprintf("loop.target_fps must be 1-240, got %d", l.TargetFPS))
	}
	if l.MaxFrameMs <= 0 {
		errs = append(errs, fmt.Sprintf("loop.max_frame_ms must be positive, got %g", l.MaxFrameMs))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSim(s SimConfig) error {
	if s.Speed <= 0 {
		return fmt.Errorf("sim.speed must be positive, got %g", s.Speed)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with BEFOREFALL_ prefix
	v.SetEnvPrefix("BEFOREFALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content.dir", "content")

	v.SetDefault("loop.target_fps", 30)
	v.SetDefault("loop.max_frame_ms", 250.0)

	v.SetDefault("sim.speed", 10.0)
	v.SetDefault("sim.seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
