package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration, loaded from environment
// variables (prefix RETAILPULSE) over an optional YAML file.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Forecast ForecastConfig `yaml:"forecast" envconfig:"FORECAST"`
}

// ServerConfig contains HTTP server configuration for the report API.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"` // console, file or both
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/retailpulse.log"`
}

// DataConfig locates the transaction workbook and output directory.
type DataConfig struct {
	WorkbookPath string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH" default:"data/online_retail.xlsx"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/reports"`
}

// ForecastConfig carries forecasting defaults.
type ForecastConfig struct {
	DefaultPeriods int `yaml:"default_periods" envconfig:"DEFAULT_PERIODS" default:"6"`
	MaxPeriods     int `yaml:"max_periods" envconfig:"MAX_PERIODS" default:"24"`
}

// Load reads configuration from the environment, merged over an optional
// config file named by RETAILPULSE_CONFIG_FILE (default retailpulse.yml when
// present).
func Load() (*Config, error) {
	var cfg Config

	configFile := os.Getenv("RETAILPULSE_CONFIG_FILE")
	if configFile == "" {
		configFile = "retailpulse.yml"
	}
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	}

	// Environment variables win over the file.
	if err := envconfig.Process("RETAILPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Forecast.DefaultPeriods < 1 {
		return fmt.Errorf("default forecast periods must be positive: %d", c.Forecast.DefaultPeriods)
	}
	if c.Forecast.MaxPeriods < c.Forecast.DefaultPeriods {
		return fmt.Errorf("max forecast periods (%d) below default (%d)",
			c.Forecast.MaxPeriods, c.Forecast.DefaultPeriods)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
