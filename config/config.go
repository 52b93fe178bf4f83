/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/datakit/filesystem"
)

// FileSystemConfig selects and configures the storage backend. Credentials
// are never read from the file; they come from the environment (optionally
// seeded from a .env file).
type FileSystemConfig struct {
	Name         string   `yaml:"name"`
	Region       string   `yaml:"region"`
	EndpointURL  string   `yaml:"endpoint_url"`
	AssumedRoles []string `yaml:"assumed_roles"`

	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// LoggingConfig configures the JSON logger.
type LoggingConfig struct {
	Application string `yaml:"application"`
	Environment string `yaml:"environment"`
	Level       string `yaml:"level"`
}

// Config is the top-level DataKit configuration.
type Config struct {
	FileSystem FileSystemConfig `yaml:"filesystem"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Default returns a configuration for local-disk operation.
func Default() *Config {
	return &Config{
		FileSystem: FileSystemConfig{Name: "local"},
		Logging:    LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file and applies environment overrides.
// A .env file in the working directory is honored when present, the way the
// integration tests expect.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("AWS_ACCESS_KEY"); v != "" {
		c.FileSystem.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_KEY"); v != "" {
		c.FileSystem.SecretKey = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" && c.FileSystem.Region == "" {
		c.FileSystem.Region = v
	}
}

// FileSystemOptions maps the configuration onto backend options.
func (c *Config) FileSystemOptions() filesystem.Options {
	return filesystem.Options{
		Name:         c.FileSystem.Name,
		Region:       c.FileSystem.Region,
		AccessKey:    c.FileSystem.AccessKey,
		SecretKey:    c.FileSystem.SecretKey,
		EndpointURL:  c.FileSystem.EndpointURL,
		AssumedRoles: c.FileSystem.AssumedRoles,
	}
}
