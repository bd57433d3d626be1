package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	LLM      LLMConfig      `yaml:"llm"`
	Sessions SessionsConfig `yaml:"sessions"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Mode selects the serving surface: "http" or "stdio" (MCP).
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// LLMConfig configures the model backend. The API key is read only from
// OPENAI_API_KEY so it never lands in a config file.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	APIKey      string  `yaml:"-"`
}

// SessionsConfig controls transcript retention. TTLText holds the yaml/env
// value ("24h", "90m"); TTL is the parsed form.
type SessionsConfig struct {
	TTLText string        `yaml:"ttl"`
	TTL     time.Duration `yaml:"-"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "http",
		},
		DB: DBConfig{
			Path: "gearbot.db",
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
		},
		Sessions: SessionsConfig{
			TTLText: "24h",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("GEARBOT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("GEARBOT_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("GEARBOT_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GEARBOT_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("GEARBOT_SERVER_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if dbPath := os.Getenv("GEARBOT_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if baseURL := os.Getenv("GEARBOT_LLM_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if model := os.Getenv("GEARBOT_LLM_MODEL"); model != "" {
		cfg.LLM.Model = model
	}
	if ttlStr := os.Getenv("GEARBOT_SESSION_TTL"); ttlStr != "" {
		cfg.Sessions.TTLText = ttlStr
	}
	if level := os.Getenv("GEARBOT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	ttl, err := time.ParseDuration(cfg.Sessions.TTLText)
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl %q: %w", cfg.Sessions.TTLText, err)
	}
	cfg.Sessions.TTL = ttl

	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")

	if cfg.Server.Mode != "http" && cfg.Server.Mode != "stdio" {
		return Config{}, fmt.Errorf("invalid server mode %q (want http or stdio)", cfg.Server.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
