package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa toda la configuración del servicio.
// Fuente: config.yaml (opcional) + env vars con prefijo ASTHMACARE_.
type Config struct {
	Server     ServerConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Auth       AuthConfig
	Chat       ChatConfig
	AirQuality AirQualityConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LoginURL     string // destino del guard requireAuth
}

type PostgresConfig struct {
	DSN string // vacío => repos in-memory
}

type RedisConfig struct {
	Addr     string // vacío => cache/broker in-memory
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint  string // S3-compatible; vacío => store in-memory
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type AuthConfig struct {
	ProviderURL string // GoTrue-compatible; vacío => modo dev (X-Debug-User-ID)
	APIKey      string
	Timeout     time.Duration
}

type ChatConfig struct {
	// Provider: "mock" (default) u "openai".
	Provider   string
	OpenAIKey  string
	Model      string
	MinDelay   time.Duration
	MaxDelay   time.Duration
	MaxHistory int
}

type AirQualityConfig struct {
	ProviderURL string
	APIKey      string
	CacheWindow time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/asthmacare")

	viper.SetEnvPrefix("ASTHMACARE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Sin archivo de config es válido: env + defaults alcanzan.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("server.host"),
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			LoginURL:     viper.GetString("server.login_url"),
		},
		Postgres: PostgresConfig{
			DSN: viper.GetString("postgres.dsn"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Storage: StorageConfig{
			Endpoint:  viper.GetString("storage.endpoint"),
			Region:    viper.GetString("storage.region"),
			AccessKey: viper.GetString("storage.access_key"),
			SecretKey: viper.GetString("storage.secret_key"),
			Bucket:    viper.GetString("storage.bucket"),
		},
		Auth: AuthConfig{
			ProviderURL: viper.GetString("auth.provider_url"),
			APIKey:      viper.GetString("auth.api_key"),
			Timeout:     viper.GetDuration("auth.timeout"),
		},
		Chat: ChatConfig{
			Provider:   viper.GetString("chat.provider"),
			OpenAIKey:  viper.GetString("chat.openai_key"),
			Model:      viper.GetString("chat.model"),
			MinDelay:   viper.GetDuration("chat.min_delay"),
			MaxDelay:   viper.GetDuration("chat.max_delay"),
			MaxHistory: viper.GetInt("chat.max_history"),
		},
		AirQuality: AirQualityConfig{
			ProviderURL: viper.GetString("air_quality.provider_url"),
			APIKey:      viper.GetString("air_quality.api_key"),
			CacheWindow: viper.GetDuration("air_quality.cache_window"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server.port: %d", cfg.Server.Port)
	}
	if cfg.AirQuality.CacheWindow <= 0 {
		return nil, fmt.Errorf("air_quality.cache_window must be positive")
	}
	if cfg.Chat.MinDelay < 0 || cfg.Chat.MaxDelay < cfg.Chat.MinDelay {
		return nil, fmt.Errorf("invalid chat delay range")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "5s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.login_url", "/login")

	viper.SetDefault("postgres.dsn", "")

	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.bucket", "asthmacare-files")

	viper.SetDefault("auth.timeout", "5s")

	viper.SetDefault("chat.provider", "mock")
	viper.SetDefault("chat.model", "gpt-4o-mini")
	viper.SetDefault("chat.min_delay", "1s")
	viper.SetDefault("chat.max_delay", "3s")
	viper.SetDefault("chat.max_history", 20)

	viper.SetDefault("air_quality.cache_window", "30m")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
