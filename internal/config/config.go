package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. It is built once in main
// and passed into components explicitly; nothing reads it from a global.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Storage StorageConfig `yaml:"storage" envconfig:"STORAGE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	JWT     JWTConfig     `yaml:"jwt" envconfig:"JWT"`
	CORS    CORSConfig    `yaml:"cors" envconfig:"CORS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `yaml:"host" envconfig:"HOST"`
	Port int    `yaml:"port" envconfig:"PORT"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type  string      `yaml:"type" envconfig:"TYPE"` // memory, mysql
	MySQL MySQLConfig `yaml:"mysql" envconfig:"MYSQL"`
}

// MySQLConfig contains MySQL-specific configuration
type MySQLConfig struct {
	DSN string `yaml:"dsn" envconfig:"DSN"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" envconfig:"FORMAT"` // json, text
}

// JWTConfig contains token signing configuration
type JWTConfig struct {
	Secret            string `yaml:"secret" envconfig:"SECRET"`
	AccessExpiryHours int    `yaml:"access_expiry_hours" envconfig:"ACCESS_EXPIRY_HOURS"`
	RefreshExpiryDays int    `yaml:"refresh_expiry_days" envconfig:"REFRESH_EXPIRY_DAYS"`
	Issuer            string `yaml:"issuer" envconfig:"ISSUER"`
}

// CORSConfig lists the allowed browser origins
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins" envconfig:"ALLOW_ORIGINS"`
}

// Load loads configuration from an optional YAML file and AUCTION_* env vars
func Load(configFile string) (*Config, error) {
	cfg := defaultConfig()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// Missing file is fine, defaults and env vars apply
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Environment variables take priority over the file
	if err := envconfig.Process("AUCTION", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible default values
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Type: "memory",
			MySQL: MySQLConfig{
				DSN: "root:root@tcp(localhost:3306)/auctions?charset=utf8mb4&parseTime=True&loc=UTC",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		JWT: JWTConfig{
			AccessExpiryHours: 24,
			RefreshExpiryDays: 7,
			Issuer:            "auction-backend",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Storage.Type != "memory" && c.Storage.Type != "mysql" {
		return fmt.Errorf("invalid storage type: %s (must be memory or mysql)", c.Storage.Type)
	}

	if c.Storage.Type == "mysql" && c.Storage.MySQL.DSN == "" {
		return fmt.Errorf("mysql dsn is required when using mysql storage")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	if c.JWT.AccessExpiryHours < 1 || c.JWT.RefreshExpiryDays < 1 {
		return fmt.Errorf("jwt expiry settings must be positive")
	}

	return nil
}

// Address returns the server listen address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
