package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Intent routing
	Router  RouterConfig
	Encoder EncoderConfig
	Store   StoreConfig

	// Answer collaborators
	Qdrant  QdrantConfig
	FAQ     FAQConfig
	Catalog CatalogConfig
	LLM     LLMConfig

	// Channels
	Telegram  TelegramConfig
	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RouterConfig struct {
	Threshold       float64
	RoutesFile      string
	SyncMode        string
	ClassifyTimeout time.Duration
	WatchRoutes     bool
	QueryCacheSize  int
	QueryCacheTTL   time.Duration
}

type EncoderConfig struct {
	Provider   string
	Model      string
	Dimensions int
	BatchSize  int
	APIKey     string
	BaseURL    string
}

type StoreConfig struct {
	Path string // sqlite file; empty keeps the reference index in memory
}

type QdrantConfig struct {
	URL            string
	APIKey         string
	CollectionName string
}

type FAQConfig struct {
	CSVPath  string
	TopK     int
	MinScore float64
}

type CatalogConfig struct {
	DBPath  string
	CSVPath string // imported on startup when set
}

type TelegramConfig struct {
	BotToken      string
	WebhookURL    string
	WebhookSecret string
	NgrokAPIURL   string // queried for a public URL when WebhookURL is empty
}

type RateLimitConfig struct {
	PerMin int
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // whole fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/intent-router/.
// CONFIG_PATH points at an explicit file instead. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_PATH"))
}

// LoadFile loads configuration from path, or from the default search paths
// when path is empty.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/intent-router/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Router
	cfg.Router.Threshold = v.GetFloat64("router.threshold")
	cfg.Router.RoutesFile = v.GetString("router.routes_file")
	cfg.Router.SyncMode = v.GetString("router.sync_mode")
	cfg.Router.ClassifyTimeout = v.GetDuration("router.classify_timeout")
	cfg.Router.WatchRoutes = v.GetBool("router.watch_routes")
	cfg.Router.QueryCacheSize = v.GetInt("router.query_cache_size")
	cfg.Router.QueryCacheTTL = v.GetDuration("router.query_cache_ttl")

	// Encoder
	cfg.Encoder.Provider = v.GetString("encoder.provider")
	cfg.Encoder.Model = v.GetString("encoder.model")
	cfg.Encoder.Dimensions = v.GetInt("encoder.dimensions")
	cfg.Encoder.BatchSize = v.GetInt("encoder.batch_size")
	cfg.Encoder.APIKey = expandEnvVar(v, v.GetString("encoder.api_key"))
	cfg.Encoder.BaseURL = v.GetString("encoder.base_url")

	cfg.Store.Path = v.GetString("store.path")

	// Answer collaborators
	cfg.Qdrant.URL = v.GetString("qdrant.url")
	cfg.Qdrant.APIKey = expandEnvVar(v, v.GetString("qdrant.api_key"))
	cfg.Qdrant.CollectionName = v.GetString("qdrant.collection_name")
	if qdrantURL := v.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	cfg.FAQ.CSVPath = v.GetString("faq.csv_path")
	cfg.FAQ.TopK = v.GetInt("faq.top_k")
	cfg.FAQ.MinScore = v.GetFloat64("faq.min_score")

	cfg.Catalog.DBPath = v.GetString("catalog.db_path")
	cfg.Catalog.CSVPath = v.GetString("catalog.csv_path")

	// Channels
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = v.GetString("telegram.webhook_secret")
	cfg.Telegram.NgrokAPIURL = v.GetString("telegram.ngrok_api_url")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.RateLimit.PerMin = v.GetInt("rate_limit.per_min")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")

	if v.IsSet("llm.providers") {
		if providersList, ok := v.Get("llm.providers").([]any); ok {
			for _, p := range providersList {
				providerMap, ok := p.(map[string]any)
				if !ok {
					continue
				}
				cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
					Name:     getStringFromMap(providerMap, "name"),
					Enabled:  getBoolFromMap(providerMap, "enabled"),
					Priority: getIntFromMap(providerMap, "priority"),
					APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
					BaseURL:  getStringFromMap(providerMap, "base_url"),
					Model:    getStringFromMap(providerMap, "model"),
					Timeout:  getStringFromMap(providerMap, "timeout"),
				})
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("router.threshold", 0.5)
	v.SetDefault("router.routes_file", "config/routes.yaml")
	v.SetDefault("router.sync_mode", "local")
	v.SetDefault("router.classify_timeout", "5s")
	v.SetDefault("router.watch_routes", false)
	v.SetDefault("router.query_cache_size", 1024)
	v.SetDefault("router.query_cache_ttl", "10m")

	v.SetDefault("encoder.provider", "hashing")
	v.SetDefault("encoder.batch_size", 64)

	v.SetDefault("qdrant.collection_name", "faq")
	v.SetDefault("faq.top_k", 3)

	v.SetDefault("rate_limit.per_min", 60)

	// LLM defaults
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 3)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s")
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if c.Router.RoutesFile == "" {
		return errors.New("router.routes_file is required")
	}
	if c.Router.Threshold < -1 || c.Router.Threshold > 1 {
		return fmt.Errorf("router.threshold must be within [-1, 1], got %v", c.Router.Threshold)
	}
	if c.Router.ClassifyTimeout < 0 {
		return errors.New("router.classify_timeout must not be negative")
	}
	if c.Encoder.Dimensions < 0 {
		return errors.New("encoder.dimensions must not be negative")
	}
	return validateLLMConfig(&c.LLM)
}

// validateLLMConfig validates the LLM configuration. No providers at all is
// allowed: the answer collaborators are disabled then.
func validateLLMConfig(cfg *LLMConfig) error {
	priorities := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("llm provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("llm provider %s: model is required", provider.Name)
		}
		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("llm provider %s: priority must be positive", provider.Name)
		}
		if priorities[provider.Priority] {
			return fmt.Errorf("llm provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorities[provider.Priority] = true
	}

	return nil
}

// expandEnvVar expands values in the format ${VAR_NAME}.
func expandEnvVar(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	envVar := value[2 : len(value)-1]
	if envValue := v.GetString(envVar); envValue != "" {
		return envValue
	}
	if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}

// Helper functions to safely extract values from map[string]any
func getStringFromMap(m map[string]any, key string) string {
	if str, ok := m[key].(string); ok {
		return str
	}
	return ""
}

func getBoolFromMap(m map[string]any, key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

func getIntFromMap(m map[string]any, key string) int {
	switch val := m[key].(type) {
	case int:
		return val
	case float64:
		return int(val)
	}
	return 0
}
