// Package config manages application configuration from files and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/klytics/abukit/internal/abundance"
	"github.com/klytics/abukit/internal/survey"
)

// Config holds the application configuration.
type Config struct {
	Occupancy struct {
		Keyword string `mapstructure:"keyword" yaml:"keyword"`
	} `mapstructure:"occupancy" yaml:"occupancy"`
	Abundance struct {
		Keyword string `mapstructure:"keyword" yaml:"keyword"`
	} `mapstructure:"abundance" yaml:"abundance"`
	Species []string `mapstructure:"species" yaml:"species"`
	Format  struct {
		HighlightColor string `mapstructure:"highlight_color" yaml:"highlight_color"`
	} `mapstructure:"format" yaml:"format"`
	Output struct {
		Color bool `mapstructure:"color" yaml:"color"`
	} `mapstructure:"output" yaml:"output"`
}

// Load reads the configuration from ~/.abukit/config.yaml and ABUKIT_* environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	setDefaults()

	// Environment variable overrides, e.g. ABUKIT_OCCUPANCY_KEYWORD
	viper.SetEnvPrefix("ABUKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read %s: %w", ConfigPath(), err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	var cfg Config
	cfg.Occupancy.Keyword = "occupanc"
	cfg.Abundance.Keyword = "abundanc"
	cfg.Species = append([]string(nil), survey.DefaultSpecies...)
	cfg.Format.HighlightColor = abundance.DefaultHighlight
	cfg.Output.Color = true
	return &cfg
}

func setDefaults() {
	d := Defaults()
	viper.SetDefault("occupancy.keyword", d.Occupancy.Keyword)
	viper.SetDefault("abundance.keyword", d.Abundance.Keyword)
	viper.SetDefault("species", d.Species)
	viper.SetDefault("format.highlight_color", d.Format.HighlightColor)
	viper.SetDefault("output.color", d.Output.Color)
}

// ConfigPath returns the path of the configuration file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".abukit"
	}
	return filepath.Join(home, ".abukit")
}
