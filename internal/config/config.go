package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/2beens/repvision/internal/exercise"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsHost string `toml:"metrics_host"`
	MetricsPort int    `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// jobs
	QueueName          string `toml:"queue_name"`
	Workers            int    `toml:"workers"`
	PopTimeoutSeconds  int    `toml:"pop_timeout_seconds"`
	BackendHost        string `toml:"backend_host"`
	BackendPort        int    `toml:"backend_port"`
	BackendResultsPath string `toml:"backend_results_path"`
	// api
	AnalyzeRateLimitPerMinute int      `toml:"analyze_rate_limit_per_minute"`
	CacheSizeMB               int      `toml:"cache_size_mb"`
	CorsAllowedOrigins        []string `toml:"cors_allowed_origins"`
	// per exercise threshold tuning, keyed by exercise name
	Exercises map[string]exercise.Override `toml:"exercises"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var cfgToml Toml
	if _, err := toml.DecodeFile(path, &cfgToml); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&cfgToml, env)
}

// Parse is Load for a config held in memory.
func Parse(env, content string) (*Config, error) {
	var cfgToml Toml
	if _, err := toml.Decode(content, &cfgToml); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&cfgToml, env)
}

func fromToml(cfgToml *Toml, env string) (*Config, error) {
	cfg, err := cfgToml.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.MetricsHost == "" {
		c.MetricsHost = c.Host
	}
	if c.QueueName == "" {
		c.QueueName = "analysis-jobs"
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.PopTimeoutSeconds == 0 {
		c.PopTimeoutSeconds = 5
	}
	if c.CacheSizeMB == 0 {
		c.CacheSizeMB = 16
	}
}

func (c *Config) Validate() error {
	var err error
	if c.Port <= 0 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.MetricsPort <= 0 || c.MetricsPort > 65535 {
		err = multierr.Append(err, fmt.Errorf("metrics port out of range: %d", c.MetricsPort))
	}
	if c.Port == c.MetricsPort && c.Host == c.MetricsHost {
		err = multierr.Append(err, errors.New("api and metrics servers share an address"))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("negative workers count: %d", c.Workers))
	}
	if c.AnalyzeRateLimitPerMinute < 0 {
		err = multierr.Append(err, fmt.Errorf("negative rate limit: %d", c.AnalyzeRateLimitPerMinute))
	}
	if c.BackendHost != "" && !strings.HasPrefix(c.BackendResultsPath, "/") {
		err = multierr.Append(err, fmt.Errorf("backend results path must start with '/': %q", c.BackendResultsPath))
	}
	return err
}

// JobsEnabled tells if the queue consumer has somewhere to deliver results.
func (c *Config) JobsEnabled() bool {
	return c.BackendHost != ""
}
