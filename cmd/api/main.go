package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"asthmacare/internal/adapters/airquality/openaq"
	"asthmacare/internal/adapters/auth/gotrue"
	"asthmacare/internal/adapters/chat/openai"
	filess3 "asthmacare/internal/adapters/files/s3"
	"asthmacare/internal/adapters/storage/postgres"
	"asthmacare/internal/domain/airquality"
	"asthmacare/internal/domain/chat"
	"asthmacare/internal/platform/config"
	"asthmacare/internal/platform/logger"
	"asthmacare/internal/router"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{App: "asthmacare"}).Error("config load failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		App:    "asthmacare",
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: logger.ParseFormat(cfg.Logging.Format),
	})

	ctx := context.Background()
	opts := router.Options{
		CacheWindow: cfg.AirQuality.CacheWindow,
		LoginURL:    cfg.Server.LoginURL,
		Logger:      log,
	}

	// Identity provider: sin URL queda modo dev (X-Debug-User-ID).
	if cfg.Auth.ProviderURL != "" {
		authClient, err := gotrue.New(gotrue.Config{
			BaseURL: cfg.Auth.ProviderURL,
			APIKey:  cfg.Auth.APIKey,
			Timeout: cfg.Auth.Timeout,
		})
		if err != nil {
			log.Error("auth provider init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.AuthVerifier = authClient
		opts.AuthProvider = authClient
	} else {
		log.Warn("auth provider not configured, running in dev mode", nil)
	}

	if cfg.Postgres.DSN != "" {
		db, err := postgres.Open(cfg.Postgres.DSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Warn("postgres not configured, using in-memory storage", nil)
	}

	if cfg.Redis.Addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("redis ping failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer rdb.Close()
		opts.Redis = rdb
	}

	if cfg.Storage.Endpoint != "" {
		store, err := filess3.New(ctx, filess3.Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
		})
		if err != nil {
			log.Error("object storage init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.Files = store
	}

	if cfg.AirQuality.ProviderURL != "" {
		fetcher, err := openaq.New(openaq.Config{
			BaseURL: cfg.AirQuality.ProviderURL,
			APIKey:  cfg.AirQuality.APIKey,
		})
		if err != nil {
			log.Error("air quality provider init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.AirQualityFetcher = airquality.Fetcher(fetcher)
	}

	switch strings.ToLower(cfg.Chat.Provider) {
	case "openai":
		responder, err := openai.New(cfg.Chat.OpenAIKey, cfg.Chat.Model, cfg.Chat.MaxHistory)
		if err != nil {
			log.Error("chat responder init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.Responder = responder
	default:
		opts.Responder = chat.NewMockResponder(cfg.Chat.MinDelay, cfg.Chat.MaxDelay)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Server.Addr()})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
