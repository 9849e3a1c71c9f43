package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// LockTimeout bounds how long a rent/return request may wait for the
	// per-item exclusion token before failing with Busy.
	LockTimeout time.Duration `env:"LOCK_TIMEOUT, default=5s"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Notify   NotifyConfig
	SendGrid SendGridConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=wearloop"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
}

// SendGridConfig enables the email sink when APIKey is set; otherwise
// notifications go to the structured log only.
type SendGridConfig struct {
	APIKey    string `env:"SENDGRID_API_KEY"`
	FromEmail string `env:"SENDGRID_FROM_EMAIL, default=hello@wearloop.example"`
	FromName  string `env:"SENDGRID_FROM_NAME,  default=WearLoop"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
