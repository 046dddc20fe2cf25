package config

import (
	"os"

	"github.com/finlog/finlog-backend/internal/dto"
)

type Config struct {
	ProjectID           string
	LogLevel            string
	Port                string
	PlaidClientID       string
	PlaidSecret         string
	PlaidEnvironment    dto.PlaidEnvironment
	KMSKeyName          string
	StrictEditTypeMatch bool
}

func New() *Config {
	return &Config{
		ProjectID:           os.Getenv("PROJECTID"),
		LogLevel:            os.Getenv("LOGLEVEL"),
		Port:                getPort(os.Getenv("PORT")),
		PlaidClientID:       os.Getenv("PLAIDCLIENTID"),
		PlaidSecret:         os.Getenv("PLAIDSECRET"),
		PlaidEnvironment:    getPlaidEnvironment(os.Getenv("PLAIDENVIRONMENT")),
		KMSKeyName:          os.Getenv("KMSKEYNAME"),
		StrictEditTypeMatch: os.Getenv("STRICTEDITTYPEMATCH") == "true",
	}
}

func getPort(port string) string {
	if port == "" {
		return "8080"
	}
	return port
}

func getPlaidEnvironment(env string) dto.PlaidEnvironment {
	switch env {
	case "sandbox":
		return dto.PlaidSandbox
	case "development":
		return dto.PlaidDevelopment
	default: // "production"
		return dto.PlaidProduction
	}
}
