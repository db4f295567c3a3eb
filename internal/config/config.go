package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the root application configuration, loaded from YAML.
// The model-access credential is never part of this file; it is read
// once from the environment at startup (see LoadAICredential).
type AppConfig struct {
	AppName        string   `yaml:"app_name"`
	Env            string   `yaml:"env"`
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	RedisURL       string   `yaml:"redis_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	JWTSecret      string   `yaml:"jwt_secret"`
	Timezone       string   `yaml:"timezone"`

	Cache CacheConfig `yaml:"cache"`
	AI    AIConfig    `yaml:"ai"`
}

// CacheConfig controls the HTTP response cache.
type CacheConfig struct {
	Disable         bool     `yaml:"disable"`
	TTLSeconds      int      `yaml:"ttl_seconds"`
	EnableCDNHeader bool     `yaml:"enable_cdn_header"`
	SkipPaths       []string `yaml:"skip_paths"`
}

// AIConfig configures the upstream generative API. Only non-secret
// knobs live here.
type AIConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	SpeechModel    string `yaml:"speech_model"`
	SpeechVoice    string `yaml:"speech_voice"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	CredentialEnv  string `yaml:"credential_env"`
}

const (
	defaultAppName       = "nexusmena-core"
	defaultPort          = 3000
	defaultRedisURL      = "redis://localhost:6379/0"
	defaultAIEndpoint    = "https://generativelanguage.googleapis.com/v1beta"
	defaultAIModel       = "gemini-2.5-flash"
	defaultSpeechModel   = "gemini-2.5-flash-preview-tts"
	defaultSpeechVoice   = "Kore"
	defaultAITimeoutSecs = 30
	defaultCredentialEnv = "GEMINI_API_KEY"
)

// Load reads and validates the YAML config file. A missing path yields
// a default configuration.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if strings.TrimSpace(path) != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if strings.TrimSpace(c.AppName) == "" {
		c.AppName = defaultAppName
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "development"
	}
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.RedisURL) == "" {
		c.RedisURL = defaultRedisURL
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 15
	}

	ai := &c.AI
	if strings.TrimSpace(ai.Endpoint) == "" {
		ai.Endpoint = defaultAIEndpoint
	}
	ai.Endpoint = strings.TrimRight(ai.Endpoint, "/")
	if strings.TrimSpace(ai.Model) == "" {
		ai.Model = defaultAIModel
	}
	if strings.TrimSpace(ai.SpeechModel) == "" {
		ai.SpeechModel = defaultSpeechModel
	}
	if strings.TrimSpace(ai.SpeechVoice) == "" {
		ai.SpeechVoice = defaultSpeechVoice
	}
	if ai.TimeoutSeconds <= 0 {
		ai.TimeoutSeconds = defaultAITimeoutSecs
	}
	if strings.TrimSpace(ai.CredentialEnv) == "" {
		ai.CredentialEnv = defaultCredentialEnv
	}
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// CacheTTL returns the HTTP cache TTL as a duration.
func (c *AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// AITimeout returns the per-call timeout for the generative API.
func (c *AIConfig) AITimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadAICredential reads the model-access credential from the process
// environment. It is read exactly once at startup and handed to the AI
// gateway; it is never logged and never serialized.
func (c *AppConfig) LoadAICredential() string {
	return strings.TrimSpace(os.Getenv(c.AI.CredentialEnv))
}
