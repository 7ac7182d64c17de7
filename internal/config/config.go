// Package config provides centralized configuration management for the
// packing-list service. Settings come from an optional YAML file and from
// environment variables (environment wins), with defaults for everything
// except what a deployment must decide itself. Validate runs on load so
// misconfiguration fails at startup.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Database DatabaseConfig  `yaml:"database"`
	Upload   UploadConfig    `yaml:"upload"`
	Rate     RateLimitConfig `yaml:"rate"`
	Security SecurityConfig  `yaml:"security"`
	Logging  LoggingConfig   `yaml:"logging"`
	Pipeline PipelineConfig  `yaml:"pipeline"`
	Country  CountryConfig   `yaml:"country"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`

	// RequestTimeout is the middleware deadline for a single request.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"60s"`
}

// DatabaseConfig holds the optional PostgreSQL connection used for country
// aliases. An empty URL runs the service without a database.
type DatabaseConfig struct {
	URL             string        `yaml:"url"                env:"DATABASE_URL,DB_URL"`
	MaxConns        int32         `yaml:"max_conns"          env:"DB_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DB_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DB_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Enabled reports whether a database was configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// UploadConfig holds request intake limits.
type UploadConfig struct {
	// MaxFileSize caps uploaded files and JSON bodies, in bytes.
	MaxFileSize int64 `yaml:"max_file_size" env:"UPLOAD_MAX_FILE_SIZE" env-default:"20971520"`

	// MaxConcurrent is how many packing lists are processed at once.
	MaxConcurrent int `yaml:"max_concurrent" env:"UPLOAD_MAX_CONCURRENT" env-default:"5"`

	// MaxWaitTime is how long a request waits for a processing slot.
	MaxWaitTime time.Duration `yaml:"max_wait_time" env:"UPLOAD_MAX_WAIT_TIME" env-default:"30s"`
}

// RateLimitConfig holds per-IP rate limits.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"             env-default:"true"`
	RequestsPerMinute int  `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" env-default:"100"`

	// UploadLimit applies to the processing endpoints.
	UploadLimit int `yaml:"upload_limit" env:"RATE_LIMIT_UPLOAD" env-default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies lists proxy CIDRs whose forwarding headers are honored.
	TrustedProxies []string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES" env-separator:","`

	EnableCSP bool `yaml:"enable_csp" env:"SECURITY_ENABLE_CSP" env-default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`

	// Format is text or json.
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// PipelineConfig tunes packing-list normalization.
type PipelineConfig struct {
	// Workers is how many rows are extracted concurrently; 1 is sequential.
	Workers int `yaml:"workers" env:"PIPELINE_WORKERS" env-default:"1"`

	// StrictGroups rejects rows with a CTN or QTY column missing its partner.
	StrictGroups bool `yaml:"strict_groups" env:"PIPELINE_STRICT_GROUPS" env-default:"false"`

	// MaxRangeSpan caps the cartons denoted by one range; 0 disables the cap.
	MaxRangeSpan int `yaml:"max_range_span" env:"PIPELINE_MAX_RANGE_SPAN" env-default:"10000"`
}

// CountryConfig configures origin resolution.
type CountryConfig struct {
	// AliasesFile is an optional YAML file of extra country entries.
	AliasesFile string `yaml:"aliases_file" env:"COUNTRY_ALIASES_FILE"`

	// CacheSize bounds the resolution cache; 0 disables caching.
	CacheSize int `yaml:"cache_size" env:"COUNTRY_CACHE_SIZE" env-default:"1024"`

	// AliasTable is read for extra aliases when a database is configured.
	AliasTable string `yaml:"alias_table" env:"COUNTRY_ALIAS_TABLE" env-default:"country_aliases"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
