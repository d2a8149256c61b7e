package config

import (
	"slices"
	"time"
)

// Supported LLM providers.
const (
	ProviderAzure     = "azure"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	LLM        LLMConfig        `yaml:"llm"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LLMConfig holds language model provider settings.
// Endpoint, APIKey and Model are deliberately optional at load time:
// a missing value is reported per request, not at startup.
type LLMConfig struct {
	Provider string        `yaml:"provider" env:"LLM_PROVIDER"   env-default:"azure"`
	Endpoint string        `yaml:"endpoint" env:"AZURE_ENDPOINT"`
	APIKey   string        `yaml:"api_key"  env:"AZURE_API_KEY"`
	Model    string        `yaml:"model"    env:"AZURE_MODEL"`
	Timeout  time.Duration `yaml:"timeout"  env:"LLM_TIMEOUT"    env-default:"30s"`
}

// DictionaryConfig holds dictionary provider settings.
type DictionaryConfig struct {
	BaseURL         string        `yaml:"base_url"         env:"DICTIONARY_BASE_URL"         env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout         time.Duration `yaml:"timeout"          env:"DICTIONARY_TIMEOUT"          env-default:"10s"`
	BreakerFailures uint32        `yaml:"breaker_failures" env:"DICTIONARY_BREAKER_FAILURES" env-default:"5"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown" env:"DICTIONARY_BREAKER_COOLDOWN" env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP rate limiting settings. PerMinute 0 disables limiting.
type RateLimitConfig struct {
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"60"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// MissingFields returns the env names of required LLM settings that are empty.
func (c LLMConfig) MissingFields() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "AZURE_API_KEY")
	}
	if c.Endpoint == "" {
		missing = append(missing, "AZURE_ENDPOINT")
	}
	if c.Model == "" {
		missing = append(missing, "AZURE_MODEL")
	}
	return missing
}

// IsConfigured reports whether endpoint, key and model are all present.
func (c LLMConfig) IsConfigured() bool {
	return len(c.MissingFields()) == 0
}

// KnownProviders returns the accepted values for LLMConfig.Provider.
func KnownProviders() []string {
	return []string{ProviderAzure, ProviderOpenAI, ProviderAnthropic}
}

// IsKnownProvider checks if the given provider string is supported.
func IsKnownProvider(provider string) bool {
	return slices.Contains(KnownProviders(), provider)
}
