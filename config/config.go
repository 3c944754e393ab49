package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig
	Redis   RedisConfig
	Poll    PollConfig
	Session SessionConfig
	Dev     DevConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PollConfig struct {
	Interval time.Duration
}

type SessionConfig struct {
	File string
}

// DevConfig configures the local development backend
type DevConfig struct {
	Addr     string
	Email    string
	Password string
	TokenKey string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "https://api.tapppp.com")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("POLL_INTERVAL", "5s")
	viper.SetDefault("SESSION_FILE", "session.json")
	viper.SetDefault("DEV_SERVER_ADDR", ":8181")
	viper.SetDefault("DEV_LOGIN_EMAIL", "merchant@example.com")
	viper.SetDefault("DEV_LOGIN_PASSWORD", "secret")
	viper.SetDefault("DEV_TOKEN_KEY", "f53ac685bbceebd75043e6be2e06ee07")
	viper.SetDefault("LOG_LEVEL", "info")

	pollInterval, err := time.ParseDuration(viper.GetString("POLL_INTERVAL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Poll: PollConfig{
			Interval: pollInterval,
		},
		Session: SessionConfig{
			File: viper.GetString("SESSION_FILE"),
		},
		Dev: DevConfig{
			Addr:     viper.GetString("DEV_SERVER_ADDR"),
			Email:    viper.GetString("DEV_LOGIN_EMAIL"),
			Password: viper.GetString("DEV_LOGIN_PASSWORD"),
			TokenKey: viper.GetString("DEV_TOKEN_KEY"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
