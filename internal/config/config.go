package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Scraper  ScraperConfig
	OpenAI   OpenAIConfig
	Shopify  ShopifyConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// ScraperConfig points at the deployed scraping service that renders
// supplier pages.
type ScraperConfig struct {
	BaseURL string
	Timeout time.Duration
}

// OpenAIConfig pins the rewrite model. Model, token budget and
// temperature are fixed per deployment, not per request.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

type ShopifyConfig struct {
	APIVersion string
}

func Load() *Config {
	// .env is optional; real deployments configure via environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SCRAPER_TIMEOUT_SECONDS", 45)
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("OPENAI_MAX_TOKENS", 1800)
	viper.SetDefault("OPENAI_TEMPERATURE", 0.7)
	viper.SetDefault("SHOPIFY_API_VERSION", "2024-01")

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Scraper: ScraperConfig{
			BaseURL: viper.GetString("SCRAPER_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("SCRAPER_TIMEOUT_SECONDS")) * time.Second,
		},
		OpenAI: OpenAIConfig{
			APIKey:      viper.GetString("OPENAI_API_KEY"),
			BaseURL:     viper.GetString("OPENAI_BASE_URL"),
			Model:       viper.GetString("OPENAI_MODEL"),
			MaxTokens:   viper.GetInt("OPENAI_MAX_TOKENS"),
			Temperature: viper.GetFloat64("OPENAI_TEMPERATURE"),
		},
		Shopify: ShopifyConfig{
			APIVersion: viper.GetString("SHOPIFY_API_VERSION"),
		},
	}
}
