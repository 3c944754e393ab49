package main

import (
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tapppp/storeorders/config"
	"github.com/tapppp/storeorders/internal/devserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	loggerLvl, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Error parsing log level: %v", err)
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl
	logger, err := loggerCfg.Build()
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	server, err := devserver.New(devserver.Config{
		StoreID:   "1",
		StoreName: "Dev Store",
		Email:     cfg.Dev.Email,
		Password:  cfg.Dev.Password,
		TokenKey:  []byte(cfg.Dev.TokenKey),
	}, devserver.NewRedisPublisher(rdb), logger)
	if err != nil {
		logger.Fatal("Error creating dev server", zap.Error(err))
	}

	logger.Info("Running dev server", zap.String("addr", cfg.Dev.Addr))

	if err := http.ListenAndServe(cfg.Dev.Addr, server.Router()); err != nil {
		logger.Fatal("Error starting dev server", zap.Error(err))
	}
}
