package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".iweb-comments"

//go:embed config/settings.yaml
var defaultSettingsYAML string

// ConfigOverrides holds command line overrides for settings
type ConfigOverrides struct {
	SettingsPath    *string
	SourceDirectory *string
	OutputDirectory *string
	FailFast        *bool
	SanitizeBodies  *bool
	NormalizeText   *bool
}

// Settings represents the YAML configuration structure
type Settings struct {
	SourceDirectory string `yaml:"source_directory"`
	OutputDirectory string `yaml:"output_directory"`
	FailFast        bool   `yaml:"fail_fast"`
	SanitizeBodies  bool   `yaml:"sanitize_bodies"`
	NormalizeText   bool   `yaml:"normalize_text"`
}

// GetConfigPath returns the full path to a config file
func GetConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// defaultSettings returns the settings used when no settings file exists
func defaultSettings() *Settings {
	return &Settings{
		SourceDirectory: "~/Library/Application Support/iWeb/Domain.sites2",
		OutputDirectory: "~/Desktop",
	}
}

// LoadSettings loads settings and applies overrides. An explicit settings
// path must exist; the default one falls back to built-in defaults.
func LoadSettings(overrides *ConfigOverrides) (*Settings, error) {
	var settings *Settings
	var err error
	if overrides != nil && overrides.SettingsPath != nil {
		settings, err = loadSettingsRequired(*overrides.SettingsPath)
	} else {
		settings, err = loadSettings(GetConfigPath("settings.yaml"))
	}
	if err != nil {
		return nil, err
	}

	settings.applyOverrides(overrides)

	if settings.SourceDirectory, err = expandHome(settings.SourceDirectory); err != nil {
		return nil, err
	}
	if settings.OutputDirectory, err = expandHome(settings.OutputDirectory); err != nil {
		return nil, err
	}
	if settings.SourceDirectory == "" {
		return nil, fmt.Errorf("source directory is not set")
	}
	if settings.OutputDirectory == "" {
		return nil, fmt.Errorf("output directory is not set")
	}

	return settings, nil
}

func (s *Settings) applyOverrides(o *ConfigOverrides) {
	if o == nil {
		return
	}
	if o.SourceDirectory != nil {
		s.SourceDirectory = *o.SourceDirectory
	}
	if o.OutputDirectory != nil {
		s.OutputDirectory = *o.OutputDirectory
	}
	if o.FailFast != nil {
		s.FailFast = *o.FailFast
	}
	if o.SanitizeBodies != nil {
		s.SanitizeBodies = *o.SanitizeBodies
	}
	if o.NormalizeText != nil {
		s.NormalizeText = *o.NormalizeText
	}
}

// loadSettings loads settings from YAML file with fallback to defaults
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultSettings(), nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}
	return parseSettings(data)
}

// loadSettingsRequired loads settings from YAML file, failing if file doesn't exist
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}
	return parseSettings(data)
}

func parseSettings(data []byte) (*Settings, error) {
	settings := defaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}
	return settings, nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ensureConfigExists creates the config directory and writes settings.yaml if needed
func ensureConfigExists() (string, error) {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	settingsFile := GetConfigPath("settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(settingsFile, []byte(defaultSettingsYAML), 0644); err != nil {
			return "", fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return settingsFile, nil
}
