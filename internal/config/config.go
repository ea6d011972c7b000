package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Geocoder  GeocoderConfig
	Uploads   UploadsConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
	// BaseURL is the public origin used when building links in outbound mail.
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// ContactRecipient receives contact form submissions.
	ContactRecipient string
}

type GeocoderConfig struct {
	BaseURL   string
	UserAgent string
	// CacheTTLHours controls how long geocoded coordinates stay cached.
	CacheTTLHours int
}

type UploadsConfig struct {
	Dir string
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	viper.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org/search")
	viper.SetDefault("GEOCODER_USER_AGENT", "accessmap/1.0")
	viper.SetDefault("GEOCODER_CACHE_TTL_HOURS", 720)
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 100)

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
			BaseURL:     viper.GetString("SERVER_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		SMTP: SMTPConfig{
			Host:             viper.GetString("SMTP_HOST"),
			Port:             viper.GetInt("SMTP_PORT"),
			User:             viper.GetString("SMTP_USER"),
			Password:         viper.GetString("SMTP_PASSWORD"),
			From:             viper.GetString("SMTP_FROM"),
			ContactRecipient: viper.GetString("CONTACT_RECEIVER_EMAIL"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:       viper.GetString("GEOCODER_BASE_URL"),
			UserAgent:     viper.GetString("GEOCODER_USER_AGENT"),
			CacheTTLHours: viper.GetInt("GEOCODER_CACHE_TTL_HOURS"),
		},
		Uploads: UploadsConfig{
			Dir: viper.GetString("UPLOADS_DIR"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
