package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingSessionSecret = errors.New("SESSION_SECRET environment variable not set")

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
	Cache   CacheConfig
	SMTP    SMTPConfig
}

type ServerConfig struct {
	Port          string
	Env           string
	SessionSecret string
	Domain        string
	BaseDomain    string
}

type APIConfig struct {
	BaseURL string
	Token   string
}

type StorageConfig struct {
	LocalDB     string
	AnalyticsDB string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether carts should live in redis instead of sqlite.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type CacheConfig struct {
	Dir    string
	MaxAge time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// Load reads .env (when present) into the process environment and resolves
// every setting through viper.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not read .env file: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := fromViper(v)
	if cfg.Server.SessionSecret == "" {
		return nil, ErrMissingSessionSecret
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("DOMAIN", "http://localhost:8080")
	v.SetDefault("BASE_DOMAIN", "localhost")
	v.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	v.SetDefault("LOCAL_DB", "vitrine.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_DIR", "cache")
	v.SetDefault("CACHE_MAX_AGE", "10m")
	v.SetDefault("SMTP_PORT", "587")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:          v.GetString("SERVER_PORT"),
			Env:           v.GetString("SERVER_ENV"),
			SessionSecret: v.GetString("SESSION_SECRET"),
			Domain:        v.GetString("DOMAIN"),
			BaseDomain:    v.GetString("BASE_DOMAIN"),
		},
		API: APIConfig{
			BaseURL: v.GetString("API_BASE_URL"),
			Token:   v.GetString("API_TOKEN"),
		},
		Storage: StorageConfig{
			LocalDB:     v.GetString("LOCAL_DB"),
			AnalyticsDB: v.GetString("ANALYTICS_DB"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Dir:    v.GetString("CACHE_DIR"),
			MaxAge: v.GetDuration("CACHE_MAX_AGE"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetString("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
	}
}
