package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	DatabaseURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	LoginRateMax    int
	LoginRateWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CLASSROOM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Classroom Management API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("jwt.ttl", "168h")
	v.SetDefault("login.rate_max", 10)
	v.SetDefault("login.rate_window", "1m")

	ttlString := v.GetString("jwt.ttl")
	if ttlString == "" {
		ttlString = "168h"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	window, err := time.ParseDuration(v.GetString("login.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid login rate window: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		DatabaseURL:     v.GetString("database.url"),
		JWTSecret:       v.GetString("jwt.secret"),
		TokenTTL:        ttl,
		LoginRateMax:    v.GetInt("login.rate_max"),
		LoginRateWindow: window,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.LoginRateMax <= 0 {
		cfg.LoginRateMax = 10
	}

	return cfg, nil
}
