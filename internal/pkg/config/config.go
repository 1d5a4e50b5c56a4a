package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	AppURL    string `env:"APP_URL,   default=http://localhost:3000"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Groq   GroqConfig
	Stripe StripeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=candipilot"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// GroqConfig configures the AI follow-up generator. An empty key disables
// the feature rather than failing startup.
type GroqConfig struct {
	APIKey string `env:"GROQ_API_KEY"`
	Model  string `env:"GROQ_MODEL, default=llama-3.3-70b-versatile"`
}

// StripeConfig configures billing. Empty values disable checkout and
// webhook verification rather than failing startup.
type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY"`
	PriceID       string `env:"STRIPE_PRICE_ID"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
