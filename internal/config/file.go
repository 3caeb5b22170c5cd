package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// YAML renders cfg in config-file form.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("could not encode config: %w", err)
	}
	return string(out), nil
}

// WriteDefault writes the built-in configuration to path. An existing file is kept unless
// force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists — use --force to overwrite it", path)
	}

	text, err := Defaults().YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}
