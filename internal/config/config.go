package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	JWT      JWT
	Logger   Logger
}

type Server struct {
	Addr string
}

type Postgres struct {
	DSN string
}

type Redis struct {
	Addr string
}

type JWT struct {
	Secret    string
	ExpiresIn time.Duration
}

type Logger struct {
	Development bool
	Level       string
}

// Load reads config/config.yaml if present and overlays environment
// variables, so a bare DB_DSN/JWT_SECRET/REDIS_ADDR environment still works
// without a config file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("jwt.expiresin", time.Hour)
	v.SetDefault("logger.development", true)
	v.SetDefault("logger.level", "info")

	v.AutomaticEnv()
	_ = v.BindEnv("postgres.dsn", "DB_DSN")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("server.addr", "SERVER_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	if c.Postgres.DSN == "" {
		return nil, errors.New("postgres dsn is not set (DB_DSN)")
	}
	if c.JWT.Secret == "" {
		return nil, errors.New("jwt secret is not set (JWT_SECRET)")
	}
	return &c, nil
}
