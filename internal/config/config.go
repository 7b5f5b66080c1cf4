package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN is the key/value connection string for the postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

type Config struct {
	ServiceName string
	Port        int
	LogLevel    string
	LogFile     string

	DB DBConfig

	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string

	RunMigrations bool
	AdminUsername string
	AdminPassword string

	ShutdownTimeout time.Duration
}

// Load reads the environment, after loading .env when present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "truck-dispatch"))
	cfg.Port = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))
	cfg.LogLevel = cast.ToString(getOrReturnDefault("LOG_LEVEL", "info"))
	cfg.LogFile = cast.ToString(getOrReturnDefault("LOG_FILE", "./logs/app.log"))

	cfg.DB = DBConfig{
		Host:            cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
		Port:            cast.ToInt(getOrReturnDefault("DB_PORT", 5432)),
		User:            cast.ToString(getOrReturnDefault("DB_USER", "postgres")),
		Password:        cast.ToString(getOrReturnDefault("DB_PASSWORD", "password")),
		Name:            cast.ToString(getOrReturnDefault("DB_NAME", "truck_dispatch")),
		SSLMode:         cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable")),
		TimeZone:        cast.ToString(getOrReturnDefault("DB_TIMEZONE", "UTC")),
		MaxOpenConns:    cast.ToInt(getOrReturnDefault("DB_MAX_OPEN_CONNS", 20)),
		MaxIdleConns:    cast.ToInt(getOrReturnDefault("DB_MAX_IDLE_CONNS", 5)),
		ConnMaxLifetime: cast.ToDuration(getOrReturnDefault("DB_CONN_MAX_LIFETIME", "30m")),
	}

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", ""))
	cfg.TokenTTL = cast.ToDuration(getOrReturnDefault("JWT_TTL", "72h"))
	cfg.AllowedOrigins = splitList(cast.ToString(getOrReturnDefault("CORS_ALLOWED_ORIGINS", "*")))

	cfg.RunMigrations = cast.ToBool(getOrReturnDefault("RUN_MIGRATIONS", true))
	cfg.AdminUsername = cast.ToString(getOrReturnDefault("ADMIN_USERNAME", ""))
	cfg.AdminPassword = cast.ToString(getOrReturnDefault("ADMIN_PASSWORD", ""))

	cfg.ShutdownTimeout = cast.ToDuration(getOrReturnDefault("SHUTDOWN_TIMEOUT", "10s"))

	return cfg
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET must be set")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("config: JWT_SECRET must be at least 16 characters")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: APP_PORT must be between 1 and 65535")
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		return fmt.Errorf("config: DB_PORT must be between 1 and 65535")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}
	if c.AdminUsername != "" && len(c.AdminPassword) < 8 {
		return fmt.Errorf("config: ADMIN_PASSWORD must be at least 8 characters when ADMIN_USERNAME is set")
	}
	return nil
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
