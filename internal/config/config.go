// Package config loads iplstats configuration from defaults, an optional
// YAML file, IPLSTATS_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidSource  = errors.New("invalid data source")
	ErrMissingPath    = errors.New("missing data path")
	ErrInvalidAddr    = errors.New("invalid server address")
	ErrInvalidTimeout = errors.New("invalid server timeout")
)

// Data sources.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// EnvPrefix is the prefix of environment overrides, e.g. IPLSTATS_DATA_SOURCE.
const EnvPrefix = "IPLSTATS"

// Config holds all configuration for iplstats.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig selects where the matches and deliveries tables come from.
type DataConfig struct {
	Source     string `mapstructure:"source"`
	Matches    string `mapstructure:"matches"`
	Deliveries string `mapstructure:"deliveries"`
	DB         string `mapstructure:"db"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance carrying the defaults and env bindings.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into v and returns the validated Config.
// With an empty configPath, ./iplstats.yaml is used if present.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("iplstats")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// DefaultDBPath is the SQLite file used when data.db is not set.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".iplstats", "ipl.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.source", SourceCSV)
	v.SetDefault("data.matches", "IPL_Matches_2008_2022.csv")
	v.SetDefault("data.deliveries", "IPL_Ball_by_Ball_2008_2022.csv")
	v.SetDefault("data.db", DefaultDBPath())

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.request_timeout", "25s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func validate(cfg *Config) error {
	cfg.Data.Source = strings.ToLower(strings.TrimSpace(cfg.Data.Source))
	switch cfg.Data.Source {
	case SourceCSV:
		if cfg.Data.Matches == "" || cfg.Data.Deliveries == "" {
			return fmt.Errorf("%w: csv source needs data.matches and data.deliveries", ErrMissingPath)
		}
	case SourceSQLite:
		if cfg.Data.DB == "" {
			return fmt.Errorf("%w: sqlite source needs data.db", ErrMissingPath)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSource, cfg.Data.Source)
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAddr)
	}
	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: server.request_timeout must be positive, got %s", ErrInvalidTimeout, cfg.Server.RequestTimeout)
	}
	return nil
}
