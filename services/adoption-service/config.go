package main

import (
	"os"

	"github.com/whiteheadbella/vet-management/services/common/database"
)

type Config struct {
	Port     string
	Env      string
	Database database.Config

	ShelterServiceURL    string
	VeterinaryServiceURL string

	// Email is disabled when SMTPHost is empty.
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

func LoadConfig() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),
		Database: database.Config{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "adoption"),
			Password: getEnv("POSTGRES_PASSWORD", "adoption"),
			Name:     getEnv("POSTGRES_DB", "adoption_service"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		ShelterServiceURL:    getEnv("SHELTER_SERVICE_URL", "http://localhost:8081"),
		VeterinaryServiceURL: getEnv("VETERINARY_SERVICE_URL", "http://localhost:8082"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             getEnv("SMTP_PORT", "587"),
		SMTPUser:             os.Getenv("SMTP_USER"),
		SMTPPass:             os.Getenv("SMTP_PASS"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
