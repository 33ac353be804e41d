// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ScraperConfig tunes the rendering session
type ScraperConfig struct {
	Headless   bool `yaml:"headless"`
	TimeoutSec int  `yaml:"timeout_sec"`
}

// Config holds all service settings
type Config struct {
	Port         string        `yaml:"port"`
	DatabasePath string        `yaml:"database_path"`
	RedisAddr    string        `yaml:"redis_addr"`
	GroqAPIKey   string        `yaml:"groq_api_key"`
	Scraper      ScraperConfig `yaml:"scraper"`
}

// Default returns the development configuration
func Default() Config {
	return Config{
		Port:         "8000",
		DatabasePath: "linkedin_insights.db",
		Scraper: ScraperConfig{
			Headless:   true,
			TimeoutSec: 45,
		},
	}
}

// Load reads configuration from path (skipped when empty or missing) and
// then applies environment overrides: PORT, DATABASE_PATH, REDIS_ADDR,
// GROQ_API_KEY, SCRAPER_HEADLESS, SCRAPER_TIMEOUT_SEC.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.GroqAPIKey = v
	}
	if v := os.Getenv("SCRAPER_HEADLESS"); v != "" {
		if headless, err := strconv.ParseBool(v); err == nil {
			cfg.Scraper.Headless = headless
		}
	}
	if v := os.Getenv("SCRAPER_TIMEOUT_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.Scraper.TimeoutSec = sec
		}
	}

	return cfg, nil
}
