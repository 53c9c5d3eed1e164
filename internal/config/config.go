// Package config provides configuration for the chat backend.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort   int
	CORSOrigin string

	// Database
	DatabaseURL string

	// External classification service
	AzureEndpoint   string
	AzureAPIKey     string
	AzureDeployment string
	AzureAPIVersion string
	LLMProvider     string
	LLMTimeout      time.Duration
	Mode            string

	// Timeouts
	ShutdownTimeout time.Duration

	// Logging
	LogLevel string
	Env      string
}

// Environment keys understood by Load.
const (
	KeyHTTPPort          = "HTTP_PORT"
	KeyCORSOrigin        = "CORS_ORIGIN"
	KeyDatabaseURL       = "DATABASE_URL"
	KeyAzureEndpoint     = "AZURE_OPENAI_ENDPOINT"
	KeyAzureAPIKey       = "AZURE_OPENAI_API_KEY"
	KeyAzureDeployment   = "AZURE_OPENAI_DEPLOYMENT"
	KeyAzureAPIVersion   = "AZURE_OPENAI_API_VERSION"
	KeyLLMProvider       = "LLM_PROVIDER"
	KeyLLMTimeoutMs      = "LLM_TIMEOUT_MS"
	KeyMode              = "ADGENIE_MODE"
	KeyShutdownTimeoutMs = "SHUTDOWN_TIMEOUT_MS"
	KeyLogLevel          = "LOG_LEVEL"
	KeyEnv               = "ENV"
)

// LLM providers.
const (
	ProviderAzure     = "azure"
	ProviderOpenAI    = "openai"
	ProviderLangChain = "langchain"
)

// ModeMock selects the mock LLM client.
const ModeMock = "MOCK"

// New returns a viper instance with defaults registered and environment lookup enabled.
// A .env file in the working directory is loaded first when present.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(KeyHTTPPort, 8000)
	v.SetDefault(KeyCORSOrigin, "http://localhost:5173")
	v.SetDefault(KeyDatabaseURL, "file:adgenie.db?mode=rwc")
	v.SetDefault(KeyAzureEndpoint, "")
	v.SetDefault(KeyAzureAPIKey, "")
	v.SetDefault(KeyAzureDeployment, "gpt-5-chat-optiFoodAI-1")
	v.SetDefault(KeyAzureAPIVersion, "2025-01-01-preview")
	v.SetDefault(KeyLLMProvider, ProviderAzure)
	v.SetDefault(KeyLLMTimeoutMs, 15000)
	v.SetDefault(KeyMode, "")
	v.SetDefault(KeyShutdownTimeoutMs, 10000)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyEnv, "development")
	return v
}

// Load reads the configuration out of v.
func Load(v *viper.Viper) *Config {
	return &Config{
		HTTPPort:        v.GetInt(KeyHTTPPort),
		CORSOrigin:      strings.TrimSpace(v.GetString(KeyCORSOrigin)),
		DatabaseURL:     v.GetString(KeyDatabaseURL),
		AzureEndpoint:   strings.TrimSpace(v.GetString(KeyAzureEndpoint)),
		AzureAPIKey:     strings.TrimSpace(v.GetString(KeyAzureAPIKey)),
		AzureDeployment: v.GetString(KeyAzureDeployment),
		AzureAPIVersion: v.GetString(KeyAzureAPIVersion),
		LLMProvider:     strings.ToLower(v.GetString(KeyLLMProvider)),
		LLMTimeout:      time.Duration(v.GetInt(KeyLLMTimeoutMs)) * time.Millisecond,
		Mode:            strings.ToUpper(v.GetString(KeyMode)),
		ShutdownTimeout: time.Duration(v.GetInt(KeyShutdownTimeoutMs)) * time.Millisecond,
		LogLevel:        v.GetString(KeyLogLevel),
		Env:             v.GetString(KeyEnv),
	}
}

// ExternalConfigured reports whether the external classification service can be called.
// Mock mode counts as configured.
func (c *Config) ExternalConfigured() bool {
	if c.Mode == ModeMock {
		return true
	}
	return c.AzureEndpoint != "" && c.AzureAPIKey != ""
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
