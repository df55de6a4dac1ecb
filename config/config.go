package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret        string `yaml:"secret"`
		ExpiryMinutes int    `yaml:"expiryMinutes"`
	} `yaml:"jwt"`

	App struct {
		BaseURL string `yaml:"baseUrl"`
	} `yaml:"app"`

	Invites struct {
		TTLHours     int `yaml:"ttlHours"`
		SweepMinutes int `yaml:"sweepMinutes"`
	} `yaml:"invites"`
}

// LoadConfig reads the YAML configuration file, then applies environment
// overrides (a .env file is honored when present) for values that should not
// live in the config file.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.Database.URI = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.ExpiryMinutes == 0 {
		cfg.JWT.ExpiryMinutes = 60 * 24
	}
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = "https://skatehubba.com"
	}
	if cfg.Invites.TTLHours == 0 {
		cfg.Invites.TTLHours = 72
	}
	if cfg.Invites.SweepMinutes == 0 {
		cfg.Invites.SweepMinutes = 30
	}

	return &cfg, nil
}
