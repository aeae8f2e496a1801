package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for sqlbridge.
// Configuration can come from YAML file (config.yaml) or environment
// variables; environment variables override YAML values. Secrets (database
// password, model API key) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL catalog source)
	Database DatabaseConfig `yaml:"database"`

	// Model completion endpoint configuration
	Model ModelConfig `yaml:"model"`

	// Schema introspection configuration
	Schema SchemaConfig `yaml:"schema"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"5"`
}

// ModelConfig holds completion-endpoint configuration.
// Provider selects the backend: "yandex" (default), "openai" for any
// OpenAI-compatible endpoint, or "debug" for the offline fixture backend.
type ModelConfig struct {
	Provider string `yaml:"provider" env:"MODEL_PROVIDER" env-default:"yandex"`

	// Yandex foundation-models settings
	APIKey   string `yaml:"-" env:"YANDEX_API_KEY"` // Secret - not in YAML
	FolderID string `yaml:"folder_id" env:"YANDEX_FOLDER_ID"`
	Endpoint string `yaml:"endpoint" env:"MODEL_ENDPOINT" env-default:"https://llm.api.cloud.yandex.net/foundationModels/v1/completion"`

	// OpenAI-compatible endpoint settings (used when provider is "openai")
	BaseURL   string `yaml:"base_url" env:"MODEL_BASE_URL" env-default:""`
	ModelName string `yaml:"model_name" env:"MODEL_NAME" env-default:""`

	// MaxRetries bounds retries of transient completion failures (429, 5xx,
	// transport timeouts). 0 disables retrying.
	MaxRetries int `yaml:"max_retries" env:"MODEL_MAX_RETRIES" env-default:"2"`
}

// SchemaConfig holds the table allow-list and prompt rule-pack location.
type SchemaConfig struct {
	// TablesJSON is a JSON-encoded list of allow-listed table names.
	TablesJSON string `yaml:"tables" env:"TABLES" env-default:"[]"`

	// Tables is parsed from TablesJSON (not set directly).
	Tables []string `yaml:"-"`

	// RulesPath optionally points at a YAML rule pack that overrides the
	// compiled-in prompt business rules and few-shot examples.
	RulesPath string `yaml:"rules_path" env:"PROMPT_RULES_PATH" env-default:""`
}

// Load reads configuration from config.yaml with environment variable
// overrides, falling back to environment-only when no config file exists.
// The version parameter is injected at build time and set on the returned
// Config. Completeness of the database and model sections is validated at
// call sites that need them, so a partially configured process can still
// run in debug mode.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.parseComplexFields(); err != nil {
		return nil, fmt.Errorf("failed to parse config fields: %w", err)
	}

	return cfg, nil
}

// parseComplexFields handles fields that need post-processing after loading.
func (c *Config) parseComplexFields() error {
	if err := json.Unmarshal([]byte(c.Schema.TablesJSON), &c.Schema.Tables); err != nil {
		return fmt.Errorf("TABLES must be a JSON list of table names: %w", err)
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Missing returns the environment variable names of required database
// settings that are absent.
func (c *DatabaseConfig) Missing() []string {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "PGHOST")
	}
	if c.Port == 0 {
		missing = append(missing, "PGPORT")
	}
	if c.User == "" {
		missing = append(missing, "PGUSER")
	}
	if c.Password == "" {
		missing = append(missing, "PGPASSWORD")
	}
	if c.Database == "" {
		missing = append(missing, "PGDATABASE")
	}
	return missing
}

// Validate returns an error enumerating any missing required database
// settings.
func (c *DatabaseConfig) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
