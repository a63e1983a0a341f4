package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Insight    InsightConfig    `mapstructure:"insight"`
	Worker     WorkerConfig     `mapstructure:"worker"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	MinConnections int           `mapstructure:"min_connections"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// RepositoryConfig selects the storage backend: "inmemory", "sqlite"
// or "postgres".
type RepositoryConfig struct {
	Type       string `mapstructure:"type"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type InsightConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type WorkerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// Load reads config.yaml from the working directory, then lets
// REPORTTRACKER_* environment variables override any key
// (REPORTTRACKER_INSIGHT_API_KEY, REPORTTRACKER_SERVER_PORT, ...).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("REPORTTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("repository.type", "sqlite")
	v.SetDefault("repository.sqlite_path", "reporttracker.db")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)
	v.SetDefault("database.url", "")
	v.SetDefault("logging.development", false)
	// Every key needs a default so AutomaticEnv can surface it during
	// Unmarshal.
	v.SetDefault("insight.endpoint", "")
	v.SetDefault("insight.model", "")
	v.SetDefault("insight.api_key", "")
	v.SetDefault("insight.timeout", 30*time.Second)
	v.SetDefault("worker.enabled", true)
	v.SetDefault("worker.interval", 5*time.Minute)

	if err := v.ReadInConfig(); err != nil {
		// The file is optional; defaults plus env cover a bare start.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.Repository.Type {
	case "inmemory", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unknown repository type %q", cfg.Repository.Type)
	}

	return &cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
