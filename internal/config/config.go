package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config aggregates all gateway settings. Values come from .env /
// environment variables with the defaults below.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Payment  PaymentConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Session  SessionConfig
	Outbox   OutboxConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type PaymentConfig struct {
	BaseURL    string
	SuccessURL string
	CancelURL  string
	Timeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey string
}

type SessionConfig struct {
	TTL time.Duration
}

type OutboxConfig struct {
	Tick      time.Duration
	BatchSize int
}

// Load reads .env (if present), binds environment overrides and returns
// the effective configuration.
func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	viper.ReadInConfig()

	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("upstream.base_url", "UPSTREAM_BASE_URL")
	viper.BindEnv("payment.base_url", "PAYMENT_BASE_URL")
	viper.BindEnv("payment.success_url", "PAYMENT_SUCCESS_URL")
	viper.BindEnv("payment.cancel_url", "PAYMENT_CANCEL_URL")
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("session.ttl", "SESSION_TTL")
	viper.BindEnv("outbox.tick", "OUTBOX_TICK")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("server.idle_timeout", 60*time.Second)

	viper.SetDefault("upstream.base_url", "http://localhost:3000")
	viper.SetDefault("upstream.timeout", 10*time.Second)

	viper.SetDefault("payment.base_url", "http://localhost:3000/api")
	viper.SetDefault("payment.success_url", "http://localhost:5173/payment/success")
	viper.SetDefault("payment.cancel_url", "http://localhost:5173/payment/cancelled")
	viper.SetDefault("payment.timeout", 15*time.Second)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("jwt.secret_key", "dev-secret-change-me")
	viper.SetDefault("session.ttl", 24*time.Hour)

	viper.SetDefault("outbox.tick", time.Second)
	viper.SetDefault("outbox.batch_size", 50)

	return &Config{
		Server: ServerConfig{
			Port:         viper.GetString("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			IdleTimeout:  viper.GetDuration("server.idle_timeout"),
		},
		Upstream: UpstreamConfig{
			BaseURL: viper.GetString("upstream.base_url"),
			Timeout: viper.GetDuration("upstream.timeout"),
		},
		Payment: PaymentConfig{
			BaseURL:    viper.GetString("payment.base_url"),
			SuccessURL: viper.GetString("payment.success_url"),
			CancelURL:  viper.GetString("payment.cancel_url"),
			Timeout:    viper.GetDuration("payment.timeout"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetString("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey: viper.GetString("jwt.secret_key"),
		},
		Session: SessionConfig{
			TTL: viper.GetDuration("session.ttl"),
		},
		Outbox: OutboxConfig{
			Tick:      viper.GetDuration("outbox.tick"),
			BatchSize: viper.GetInt("outbox.batch_size"),
		},
	}
}
