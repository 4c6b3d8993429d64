package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type YouTubeConfig struct {
	APIKey string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
}

// DefaultsConfig holds the process-wide locale defaults applied when a
// request leaves region/lang empty. Read-only after Load.
type DefaultsConfig struct {
	Region string `yaml:"region" env:"DEFAULT_REGION"`
	Lang   string `yaml:"lang" env:"DEFAULT_LANG"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	// The config file is optional; every field has an env or hardcoded
	// fallback.
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = os.Getenv("PORT")
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.Defaults.Region == "" {
		cfg.Defaults.Region = os.Getenv("DEFAULT_REGION")
	}
	if cfg.Defaults.Region == "" {
		cfg.Defaults.Region = "KR"
	}
	if cfg.Defaults.Lang == "" {
		cfg.Defaults.Lang = os.Getenv("DEFAULT_LANG")
	}
	if cfg.Defaults.Lang == "" {
		cfg.Defaults.Lang = "ko"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YouTube API key is required (set YOUTUBE_API_KEY or youtube.api_key)")
	}
	return nil
}
