package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API       APIConfig       `toml:"api"`
	Database  DatabaseConfig  `toml:"database"`
	Downloads DownloadsConfig `toml:"downloads"`
	Previews  PreviewsConfig  `toml:"previews"`
	Server    ServerConfig    `toml:"server"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	BaseURL                string `toml:"base_url"`
	RequestTimeoutMinutes  int    `toml:"request_timeout_minutes"`
	TransferTimeoutMinutes int    `toml:"transfer_timeout_minutes"`
}

// DatabaseConfig contains cache database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// DownloadsConfig contains local download settings.
type DownloadsConfig struct {
	Dir string `toml:"dir"`
}

// PreviewsConfig contains local preview storage settings.
type PreviewsConfig struct {
	Dir string `toml:"dir"`
}

// ServerConfig contains settings for the local gallery viewer.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RequestTimeout converts the configured request timeout to a duration.
// Zero or negative values mean "use the gateway default".
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.RequestTimeoutMinutes) * time.Minute
}

// TransferTimeout converts the configured transfer timeout to a duration.
func (c *Config) TransferTimeout() time.Duration {
	return time.Duration(c.API.TransferTimeoutMinutes) * time.Minute
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
