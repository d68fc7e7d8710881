// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-marketplace/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "dev-secret-change-me"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env      string `mapstructure:"APP_ENV"`
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBDriver string `mapstructure:"DB_DRIVER"`
	DBDSN    string `mapstructure:"DB_DSN"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	RedisURL string `mapstructure:"REDIS_URL"`

	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	MaxUploadSize  int64  `mapstructure:"MAX_UPLOAD_SIZE"`

	SeedOnStart   bool   `mapstructure:"SEED_ON_START"`
	FakeAuctions  int    `mapstructure:"FAKE_AUCTIONS"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

// LoadConfig reads .env (if any), config.yml (if any) and the environment, in increasing priority.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.Info(".env file not found, using environment variables", nil)
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	// the config file is optional, but a broken one is not ignored
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "auction_site.db")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "auction-images")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MAX_UPLOAD_SIZE", 10<<20)
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("FAKE_AUCTIONS", 0)
	v.SetDefault("ADMIN_EMAIL", "admin@auction.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported (use sqlite or postgres)", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.FakeAuctions < 0 {
		return errors.New("FAKE_AUCTIONS cannot be negative")
	}

	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.AdminPassword == "admin123" {
			utils.Warn("ADMIN_PASSWORD uses the demo value in production", nil)
		}
	} else if len(c.JWTSecret) < 32 {
		utils.Warn("JWT_SECRET is shorter than 32 characters", nil)
	}

	return nil
}
