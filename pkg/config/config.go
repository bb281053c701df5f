package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application-level configuration loaded from a YAML file.
// Values not present in the file keep their defaults; secrets may also come
// from environment variables.
type Config struct {
	Listen    ListenConfig    `yaml:"listen"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
}

type ListenConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SchedulerConfig struct {
	Enabled bool `yaml:"enabled"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Listen:    ListenConfig{Port: 8100},
		Database:  DatabaseConfig{Path: filepath.Join("data", "monitora.db")},
		Log:       LogConfig{Level: "info", Format: "console"},
		Scheduler: SchedulerConfig{Enabled: true},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
	}
}

// Load reads the YAML config file at path and merges it over the defaults.
// An empty path returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Secrets from the environment win over the file so that config files
	// can be committed without credentials.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}

	return cfg, nil
}
