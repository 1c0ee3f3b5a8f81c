package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines the configuration for the Helios API server
type Config struct {
	// HTTP server configuration
	Server ServerConfig `yaml:"server"`

	// Slack notification configuration
	Slack SlackConfig `yaml:"slack"`

	// Headless CMS connection
	CMS CMSConfig `yaml:"cms"`

	// NATS event stream configuration
	NATS NATSConfig `yaml:"nats"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig defines the HTTP listener
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// SlackConfig defines the Slack incoming webhook integration
type SlackConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhookURL"`
}

// CMSConfig defines the Sanity content API connection
type CMSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ProjectID  string `yaml:"projectID"`
	Dataset    string `yaml:"dataset"`
	APIVersion string `yaml:"apiVersion"`
	// BaseURL overrides the derived api.sanity.io endpoint, mainly for tests
	BaseURL string `yaml:"baseURL"`
}

// NATSConfig defines the event stream connection
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Set defaults
	cfg := &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		CMS: CMSConfig{
			Dataset:    "production",
			APIVersion: "2024-01-01",
		},
		NATS: NATSConfig{
			URL:     "nats://localhost:4222",
			Subject: "helios.inquiries.events",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	// Load from file if it exists
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() error {
	if host := os.Getenv("HELIOSD_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("HELIOSD_PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err != nil {
			return fmt.Errorf("invalid HELIOSD_PORT: %w", err)
		}
		c.Server.Port = p
	}
	if webhookURL := os.Getenv("SLACK_WEBHOOK_URL"); webhookURL != "" {
		c.Slack.Enabled = true
		c.Slack.WebhookURL = webhookURL
	}
	if projectID := os.Getenv("SANITY_PROJECT_ID"); projectID != "" {
		c.CMS.Enabled = true
		c.CMS.ProjectID = projectID
	}
	if dataset := os.Getenv("SANITY_DATASET"); dataset != "" {
		c.CMS.Dataset = dataset
	}
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		c.NATS.Enabled = true
		c.NATS.URL = natsURL
	}
	if level := os.Getenv("HELIOSD_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	return nil
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if c.Slack.Enabled && c.Slack.WebhookURL == "" {
		return fmt.Errorf("slack webhook URL is required when slack is enabled")
	}
	if c.CMS.Enabled && c.CMS.ProjectID == "" && c.CMS.BaseURL == "" {
		return fmt.Errorf("CMS project ID is required when CMS is enabled")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("NATS URL is required when NATS is enabled")
	}

	return nil
}

// CMSBaseURL returns the content API endpoint for the configured project.
func (c *Config) CMSBaseURL() string {
	if c.CMS.BaseURL != "" {
		return c.CMS.BaseURL
	}
	return fmt.Sprintf("https://%s.api.sanity.io", c.CMS.ProjectID)
}
