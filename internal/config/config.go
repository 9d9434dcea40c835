// Package config loads service and CLI configuration from a config file,
// environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// AppName is the base name of the config file and the env prefix source.
const AppName = "ats_service"

// EnvPrefix prefixes every environment variable, e.g. ATS_SERVER_PORT.
const EnvPrefix = "ATS"

// Config is the full service configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Similarity SimilarityConfig `mapstructure:"similarity"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb" validate:"min=1,max=100"`
	CORSOrigins  []string      `mapstructure:"cors_origins" validate:"min=1"`
}

// LogConfig configures logging.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SimilarityConfig configures the relevance backends. Enabling embeddings
// without an API key is valid: scoring then runs on TF-IDF alone.
type SimilarityConfig struct {
	EmbeddingEnabled bool   `mapstructure:"embedding_enabled"`
	EmbeddingModel   string `mapstructure:"embedding_model" validate:"required"`
	APIKey           string `mapstructure:"api_key"`
}

// FetchConfig configures job-posting retrieval from URLs.
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UseBrowser bool          `mapstructure:"use_browser"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
}

// RateLimitConfig configures per-client request limits.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" validate:"min=1"`
	Burst             int  `mapstructure:"burst" validate:"min=1"`
}

// Error reports an invalid configuration value.
type Error struct {
	Key     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error: '%s' %s", e.Key, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("similarity.embedding_enabled", false)
	v.SetDefault("similarity.embedding_model", "text-embedding-004")
	v.SetDefault("similarity.api_key", "")

	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.use_browser", false)
	v.SetDefault("fetch.cache_ttl", 15*time.Minute)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 60)
	v.SetDefault("ratelimit.burst", 10)
}

// NewViper returns a viper instance with defaults and environment bindings.
// Variables use the ATS_ prefix with dots replaced by underscores; the API key
// also falls back to GEMINI_API_KEY.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("similarity.api_key", "ATS_SIMILARITY_API_KEY", "GEMINI_API_KEY")
	return v
}

// Load reads configuration into a validated Config. An empty path searches
// the working directory for ats_service.{yaml,json,toml}; a missing file is
// not an error in that case.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(AppName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &Error{Message: fmt.Sprintf("failed to read config file: %v", err), Cause: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &Error{Message: "failed to decode config", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return &Error{
				Key:     keyFromNamespace(fe.Namespace()),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
				Cause:   err,
			}
		}
		return &Error{Message: "invalid configuration", Cause: err}
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c ServerConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Addr returns the listen address for the configured port.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// keyFromNamespace maps "Config.Server.MaxUploadMB" to "server.max_upload_mb".
func keyFromNamespace(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = snakeCase(part)
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	switch s {
	case "RateLimit":
		return "ratelimit"
	case "CORSOrigins":
		return "cors_origins"
	case "APIKey":
		return "api_key"
	case "JSON":
		return "json"
	case "CacheTTL":
		return "cache_ttl"
	case "MaxUploadMB":
		return "max_upload_mb"
	}
	var sb strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
