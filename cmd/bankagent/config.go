package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration for the demo agent. Every
// field has a working default; environment variables override the file.
type fileConfig struct {
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	Temperature     float64 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
	TopP            float64 `yaml:"top_p"`
	PresencePenalty float64 `yaml:"presence_penalty"`

	SerperAPIKey   string `yaml:"serper_api_key"`
	GeoapifyAPIKey string `yaml:"geoapify_api_key"`

	LogLevel string `yaml:"log_level"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fileConfig{}, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return fileConfig{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if key := strings.TrimSpace(os.Getenv("SERPER_API_KEY")); key != "" {
		cfg.SerperAPIKey = key
	}
	if key := strings.TrimSpace(os.Getenv("GEOAPIFY_API_KEY")); key != "" {
		cfg.GeoapifyAPIKey = key
	}

	return cfg, nil
}

func parseLogLevel(input string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("parse log level: unsupported value %q", input)
	}
}
