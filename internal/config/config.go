package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Resolver ResolverConfig `yaml:"resolver"`
	Unfurl   UnfurlConfig   `yaml:"unfurl"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `yaml:"port" envconfig:"SERVER_PORT" default:"8732"`
	APIKey       string        `yaml:"api_key" envconfig:"API_KEY"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"2m"`
}

// StoreConfig holds document store configuration.
type StoreConfig struct {
	Path string `yaml:"path" envconfig:"STORE_PATH" default:"/data/videokoleks.db"`
}

// ResolverConfig holds scraping metadata resolver configuration.
type ResolverConfig struct {
	// UserAgent is sent on scraping requests. A browser masquerade reduces
	// bot-blocking by the video platforms.
	UserAgent    string        `yaml:"user_agent" envconfig:"RESOLVER_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"RESOLVER_TIMEOUT" default:"10s"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" envconfig:"RESOLVER_MAX_BODY_BYTES" default:"2097152"` // 2MB of HTML is plenty for meta tags
}

// UnfurlConfig holds the oEmbed/unfurl aggregator configuration. The unfurl
// path is disabled when BaseURL is empty; resolution then falls back to raw
// scraping only.
type UnfurlConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"UNFURL_BASE_URL"`
	APIKey  string        `yaml:"api_key" envconfig:"UNFURL_API_KEY"`
	Timeout time.Duration `yaml:"timeout" envconfig:"UNFURL_TIMEOUT" default:"10s"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Server.APIKey == "" {
		return fmt.Errorf("API_KEY is required")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required")
	}
	if c.Unfurl.BaseURL != "" && c.Unfurl.APIKey == "" {
		return fmt.Errorf("UNFURL_API_KEY is required when UNFURL_BASE_URL is set")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
