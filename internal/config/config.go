// Package config defines the calcsuite configuration structures and
// includes functions for loading, defaulting and validating them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for calcsuite.
type Configuration struct {
	Logging LoggingConfig     `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig      `mapstructure:"output" yaml:"output,omitempty"`
	Limits  validation.Limits `mapstructure:"limits" yaml:"limits,omitempty"`
	Cache   CacheConfig       `mapstructure:"cache" yaml:"cache,omitempty"`
	Tracing TracingConfig     `mapstructure:"tracing" yaml:"tracing,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format         string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
	CurrencySymbol string `mapstructure:"currencySymbol" yaml:"currencySymbol,omitempty"`
}

// CacheConfig selects where computed schedules are cached.
type CacheConfig struct {
	Backend       string        `mapstructure:"backend" yaml:"backend,omitempty"` // none, memory, redis
	Size          int           `mapstructure:"size" yaml:"size,omitempty"`
	TTL           time.Duration `mapstructure:"ttl" yaml:"ttl,omitempty"`
	RedisAddr     string        `mapstructure:"redisAddr" yaml:"redisAddr,omitempty"`
	RedisPassword string        `mapstructure:"redisPassword" yaml:"redisPassword,omitempty"`
	RedisDB       int           `mapstructure:"redisDB" yaml:"redisDB,omitempty"`
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Endpoint    string `mapstructure:"endpoint" yaml:"endpoint,omitempty"` // host:port of an OTLP/HTTP collector
	Insecure    bool   `mapstructure:"insecure" yaml:"insecure,omitempty"`
	ServiceName string `mapstructure:"serviceName" yaml:"serviceName,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Output: OutputConfig{
			Format:         constants.OutputFormatPretty,
			CurrencySymbol: constants.DefaultCurrencySymbol,
		},
		Limits: validation.DefaultLimits(),
		Cache: CacheConfig{
			Backend: constants.CacheBackendMemory,
			Size:    constants.DefaultCacheSize,
			TTL:     time.Hour,
		},
		Tracing: TracingConfig{ServiceName: "calcsuite"},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path loads only defaults and environment
// overrides. A .env file in the working directory is read first if present.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error parsing configuration, %w", err)
	}
	return decode(v)
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load .env: %w", err)
}

// newViper returns a viper instance with defaults registered for every key,
// which AutomaticEnv needs to resolve CALC_* overrides during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.outputFile", d.Logging.OutputFile)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.currencySymbol", d.Output.CurrencySymbol)
	v.SetDefault("limits.maxPrincipal", d.Limits.MaxPrincipal)
	v.SetDefault("limits.maxTermMonths", d.Limits.MaxTermMonths)
	v.SetDefault("limits.maxRatePercent", d.Limits.MaxRatePercent)
	v.SetDefault("limits.maxSpanYears", d.Limits.MaxSpanYears)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.size", d.Cache.Size)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.redisAddr", d.Cache.RedisAddr)
	v.SetDefault("cache.redisPassword", d.Cache.RedisPassword)
	v.SetDefault("cache.redisDB", d.Cache.RedisDB)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.insecure", d.Tracing.Insecure)
	v.SetDefault("tracing.serviceName", d.Tracing.ServiceName)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// Validate returns an error for settings the application cannot run with.
func (c *Configuration) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return err
		}
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("invalid limits: %w", err)
	}

	switch c.Cache.Backend {
	case "", constants.CacheBackendNone:
	case constants.CacheBackendMemory:
		if c.Cache.Size <= 0 {
			return fmt.Errorf("cache size must be positive for the memory backend, got %d", c.Cache.Size)
		}
	case constants.CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redisAddr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s", c.Cache.Backend)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		warnings = append(warnings, "tracing is enabled without an endpoint; spans will be discarded")
	}
	if c.Cache.Backend != constants.CacheBackendNone && c.Cache.Backend != "" && c.Cache.TTL <= 0 {
		warnings = append(warnings, "cache.ttl is not positive; cached schedules never expire")
	}
	if c.Limits.MaxTermMonths > constants.DefaultMaxTermMonths {
		warnings = append(warnings, fmt.Sprintf("limits.maxTermMonths of %d allows terms longer than %d years",
			c.Limits.MaxTermMonths, constants.DefaultMaxTermMonths/constants.MonthsPerYear))
	}
	if c.Output.CurrencySymbol == "" {
		warnings = append(warnings, "output.currencySymbol is empty; amounts print without a symbol")
	}

	return warnings
}
