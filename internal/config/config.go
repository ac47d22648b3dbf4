package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from a YAML file with
// environment variable overrides for secrets.
type Config struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"`
	Database       Database `yaml:"database"`
	RedisURL       string   `yaml:"redis_url"`
	JWTSecret      string   `yaml:"jwt_secret"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	PublicURL      string   `yaml:"public_url"`
	Paths          Paths    `yaml:"paths"`
	ResultChecker  Upstream `yaml:"result_checker"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type Paths struct {
	Logs    string `yaml:"logs"`
	Uploads string `yaml:"uploads"`
}

// Upstream configures the external exam results provider.
type Upstream struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Load reads configuration from path, applies defaults and env overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port: 8080,
		Env:  "development",
		Database: Database{
			Host: "127.0.0.1",
			Port: 3306,
			User: "root",
			Name: "school_site",
		},
		RedisURL:  "redis://127.0.0.1:6379/0",
		PublicURL: "http://localhost:8080",
		Paths: Paths{
			Logs:    "logs",
			Uploads: "uploads",
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("RESULT_CHECKER_API_KEY"); v != "" {
		c.ResultChecker.APIKey = v
	}
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = "development"
	}
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
	c.ResultChecker.BaseURL = strings.TrimRight(c.ResultChecker.BaseURL, "/")
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = 8080
	}
}

// IsDev reports whether the app runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env != "production"
}

// DSNValue builds the MySQL DSN from the database section.
func (c *Config) DSNValue() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

// UploadsDir returns the absolute uploads directory, creating it if needed.
func (c *Config) UploadsDir() (string, error) {
	dir := c.Paths.Uploads
	if dir == "" {
		dir = "uploads"
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", err
	}
	return abs, nil
}
