package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration. Secrets have no baked-in defaults;
// loading fails when a required one is absent.
type Config struct {
	Port         string
	DBConn       string
	LogLevel     string
	JWTSecret    string
	RatesURL     string
	RedisAddr    string
	CacheTTLSecs int
	WindowMonths int
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %w", err)
	}
	windowMonths, err := strconv.Atoi(getEnv("WINDOW_MONTHS", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid WINDOW_MONTHS: %w", err)
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBConn:       os.Getenv("DB_CONN"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RatesURL:     getEnv("RATES_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		CacheTTLSecs: cacheTTL,
		WindowMonths: windowMonths,
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SMTPHost != "" && (cfg.SMTPUsername == "" || cfg.SMTPPassword == "") {
		return nil, fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD are required when SMTP_HOST is set")
	}

	return cfg, nil
}

// NotificationsEnabled reports whether decision emails can be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
