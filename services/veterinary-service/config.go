package main

import (
	"os"

	"github.com/whiteheadbella/vet-management/services/common/database"
)

type Config struct {
	Port     string
	Env      string
	Database database.Config

	// Calendar mirroring is disabled when CalendarBaseURL is empty.
	CalendarBaseURL string
	CalendarID      string
	CalendarToken   string
}

func LoadConfig() *Config {
	return &Config{
		Port: getEnv("PORT", "8082"),
		Env:  getEnv("APP_ENV", "development"),
		Database: database.Config{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "veterinary"),
			Password: getEnv("POSTGRES_PASSWORD", "veterinary"),
			Name:     getEnv("POSTGRES_DB", "veterinary_service"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		CalendarBaseURL: os.Getenv("CALENDAR_BASE_URL"),
		CalendarID:      getEnv("CALENDAR_ID", "primary"),
		CalendarToken:   os.Getenv("CALENDAR_TOKEN"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
