package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort               = "8080"
	defaultDBPort                 = "5432"
	defaultDBSslMode              = "disable"
	defaultLowStockReportSchedule = "0 */5 * * * *"
	defaultNotificationQueueSize  = 256
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   slog.Level

	LowStockReportSchedule string
	NotificationQueueSize  int
	OpenAPIValidation      bool
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; variables that are
// already set win over it.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	config := Config{
		HTTPPort:               get("HTTP_PORT", defaultHTTPPort),
		DBHost:                 get("DB_HOST", "localhost"),
		DBPort:                 get("DB_PORT", defaultDBPort),
		DBUser:                 get("DB_USER", ""),
		DBPassword:             get("DB_PASSWORD", ""),
		DBName:                 get("DB_NAME", ""),
		DBSslMode:              get("DB_SSLMODE", defaultDBSslMode),
		LowStockReportSchedule: get("LOW_STOCK_REPORT_SCHEDULE", defaultLowStockReportSchedule),
		NotificationQueueSize:  defaultNotificationQueueSize,
		OpenAPIValidation:      true,
	}

	if err := config.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "INFO"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if v := get("NOTIFICATION_QUEUE_SIZE", ""); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return Config{}, fmt.Errorf("NOTIFICATION_QUEUE_SIZE: %q is not a positive integer", v)
		}
		config.NotificationQueueSize = size
	}

	if v := get("OPENAPI_VALIDATION", ""); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("OPENAPI_VALIDATION: %w", err)
		}
		config.OpenAPIValidation = enabled
	}

	if config.DBUser == "" || config.DBName == "" {
		return Config{}, errors.New("DB_USER and DB_NAME are required")
	}

	return config, nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
