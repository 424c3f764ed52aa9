package main

import (
	"os"

	"github.com/whiteheadbella/vet-management/services/common/database"
)

type Config struct {
	Port          string
	Env           string
	Database      database.Config
	DogAPIBaseURL string
	CatAPIBaseURL string
	CatAPIKey     string
}

func LoadConfig() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),
		Env:  getEnv("APP_ENV", "development"),
		Database: database.Config{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "shelter"),
			Password: getEnv("POSTGRES_PASSWORD", "shelter"),
			Name:     getEnv("POSTGRES_DB", "shelter_service"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		DogAPIBaseURL: getEnv("DOG_API_BASE_URL", "https://dog.ceo/api"),
		CatAPIBaseURL: getEnv("CAT_API_BASE_URL", "https://api.thecatapi.com/v1"),
		CatAPIKey:     os.Getenv("CAT_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
