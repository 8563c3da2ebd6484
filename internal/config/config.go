package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Client   ClientConfig   `yaml:"client" envconfig:"CLIENT"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Cache    CacheConfig    `yaml:"cache" envconfig:"CACHE"`
	Store    StoreConfig    `yaml:"store" envconfig:"STORE"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// ClientConfig contains transparency-platform client configuration
type ClientConfig struct {
	BaseURL        string        `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	RatePerSecond  float64       `yaml:"rate_per_second" envconfig:"RATE_PER_SECOND"`
	RateBurst      int           `yaml:"rate_burst" envconfig:"RATE_BURST"`
	MaxRetries     int           `yaml:"max_retries" envconfig:"MAX_RETRIES" validate:"min=0,max=10"`
	RetryBackoff   time.Duration `yaml:"retry_backoff" envconfig:"RETRY_BACKOFF"`
}

// PipelineConfig contains normalization pipeline configuration
type PipelineConfig struct {
	// Timezone is the fixed display zone for date/time columns. It is
	// loaded once at startup and never changes afterwards.
	Timezone string `yaml:"timezone" envconfig:"TIMEZONE" validate:"required"`
	// DefaultResolutionMinutes is used when a period carries a
	// resolution code outside the known 15/30/60 table. Every use of
	// the fallback is logged as a warning.
	DefaultResolutionMinutes int `yaml:"default_resolution_minutes" envconfig:"DEFAULT_RESOLUTION_MINUTES" validate:"min=1"`
}

// CacheConfig contains raw-document cache configuration
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" envconfig:"ENABLED"`
	Dir     string        `yaml:"dir" envconfig:"DIR"`
	TTL     time.Duration `yaml:"ttl" envconfig:"TTL"`
}

// StoreConfig contains the optional DynamoDB price-row sink configuration
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" envconfig:"ENABLED"`
	Region  string `yaml:"region" envconfig:"REGION"`
	Table   string `yaml:"table" envconfig:"TABLE"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR"`
	DownloadsDir string `yaml:"downloads_dir" envconfig:"DOWNLOADS_DIR"`
	ReportsDir   string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Client: ClientConfig{
			BaseURL:        "https://web-api.tp.entsoe.eu/api",
			RequestTimeout: 30 * time.Second,
			RatePerSecond:  2,
			RateBurst:      1,
			MaxRetries:     3,
			RetryBackoff:   2 * time.Second,
		},
		Pipeline: PipelineConfig{
			Timezone:                 "Europe/Berlin",
			DefaultResolutionMinutes: 60,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "data/cache",
			TTL:     24 * time.Hour,
		},
		Store: StoreConfig{
			Region: "eu-central-1",
			Table:  "market-price-rows",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:      "data",
			DownloadsDir: "data/downloads",
			ReportsDir:   "data/reports",
			LogsDir:      "logs",
		},
	}
}

// Load layers configuration: built-in defaults, then the config file,
// then ENTSO_-prefixed environment variables.
func Load() (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("ENTSO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags and verifies
// the display timezone resolves to a real location.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Pipeline.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Pipeline.Timezone, err)
	}
	return nil
}

// Location resolves the configured display timezone. Validate must have
// succeeded first; resolution errors here indicate a programming error.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Pipeline.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getConfigFilePath() string {
	if path := os.Getenv("ENTSO_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// loadFromFile unmarshals the yaml file over cfg; keys absent from the
// file keep their current values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}
