package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RepositoryConfig struct {
	Name          string `yaml:"name"`
	DefaultBranch string `yaml:"default_branch"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

type OutputConfig struct {
	Color  string `yaml:"color"`  // auto, always or never
	Format string `yaml:"format"` // full, oneline or json
}

type ExportConfig struct {
	Author string `yaml:"author"`
	Email  string `yaml:"email"`
}

type Config struct {
	Repository RepositoryConfig `yaml:"repository"`
	Log        LogConfig        `yaml:"log"`
	Output     OutputConfig     `yaml:"output"`
	Export     ExportConfig     `yaml:"export"`
}

func DefaultConfig() *Config {
	return &Config{
		Repository: RepositoryConfig{
			Name:          "test",
			DefaultBranch: DefaultBranch,
		},
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Output: OutputConfig{
			Color:  "auto",
			Format: FormatFull,
		},
		Export: ExportConfig{
			Author: "twig",
			Email:  "twig@local",
		},
	}
}

// LoadConfig reads the file at path. A missing file yields DefaultConfig, and
// fields absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func (c *Config) Validate() error {
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid output.color %q: want auto, always or never", c.Output.Color)
	}
	if _, err := ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output.format: %w", err)
	}
	return nil
}
