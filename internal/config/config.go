package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Chart   ChartConfig   `yaml:"chart" envconfig:"CHART"`
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
}

// DataConfig points the web server at the enrolment history export it
// serves series from.
type DataConfig struct {
	InputPath string `yaml:"input_path" envconfig:"INPUT_PATH"`
}

// ServerConfig contains HTTP server configuration for the dashboard
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ChartConfig carries the chart defaults shared by the CLI and the web
// dashboard. Low and High are the default day window magnitudes around
// the epoch (days before and days after, both non-negative).
type ChartConfig struct {
	Title  string `yaml:"title" envconfig:"TITLE"`
	Output string `yaml:"output" envconfig:"OUTPUT_FILE"`
	Low    *int   `yaml:"low" envconfig:"LOW"`
	High   *int   `yaml:"high" envconfig:"HIGH"`
}

// LowBound returns the configured lower window magnitude.
func (c ChartConfig) LowBound() int { return *c.Low }

// HighBound returns the configured upper window magnitude.
func (c ChartConfig) HighBound() int { return *c.High }

// Load loads configuration from an optional config.yaml file and the
// environment. Environment variables win over the file; defaults fill
// whatever neither sets.
func Load() (*Config, error) {
	var cfg Config
	if data, err := os.ReadFile(configFilePath()); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Process overwrites only fields that have an ENROL_* variable set,
	// so the file values survive unless explicitly overridden.
	if err := envconfig.Process("ENROL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default values for optional configuration fields.
const (
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRateLimitRPS    = 100
	DefaultRateLimitBurst  = 50
	DefaultChartTitle      = "Student enrolments over time"
	DefaultChartOutput     = "enrolments.svg"
	DefaultLowBound        = 50
	DefaultHighBound       = 100
	DefaultInputPath       = "enrolments.csv"
)

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = DefaultIdleTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Server.RateLimitRPS == 0 {
		c.Server.RateLimitRPS = DefaultRateLimitRPS
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = DefaultRateLimitBurst
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	if c.Chart.Title == "" {
		c.Chart.Title = DefaultChartTitle
	}
	if c.Chart.Output == "" {
		c.Chart.Output = DefaultChartOutput
	}
	if c.Chart.Low == nil {
		low := DefaultLowBound
		c.Chart.Low = &low
	}
	if c.Chart.High == nil {
		high := DefaultHighBound
		c.Chart.High = &high
	}

	if c.Data.InputPath == "" {
		c.Data.InputPath = DefaultInputPath
	}
}

func configFilePath() string {
	if path := os.Getenv("ENROL_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if *c.Chart.Low < 0 {
		return fmt.Errorf("chart.low must be non-negative, got %d", *c.Chart.Low)
	}
	if *c.Chart.High < 0 {
		return fmt.Errorf("chart.high must be non-negative, got %d", *c.Chart.High)
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("logging.output must be console, file or both, got %q", c.Logging.Output)
	}
	return nil
}
