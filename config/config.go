package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type InPostApiConfig struct {
	AccessToken            string
	RefreshToken           string
	PhoneNumber            string
	HTTPTimeout            time.Duration
	IgnoredEnRouteStatuses []string
	ParcelLockersURL       string
	ShowOnlyOwnParcels     bool
	Language               string
}

type Config struct {
	DSN           string
	LogsDirectory string
	MetricsAddr   string
	InPostApi     *InPostApiConfig
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return &Config{
		DSN:           os.Getenv("DATABASE_DSN"),
		LogsDirectory: os.Getenv("LOGS_DIRECTORY"),
		MetricsAddr:   getenvDefault("METRICS_ADDR", ":9191"),
		InPostApi: &InPostApiConfig{
			AccessToken:            os.Getenv("INPOST_ACCESS_TOKEN"),
			RefreshToken:           os.Getenv("INPOST_REFRESH_TOKEN"),
			PhoneNumber:            os.Getenv("INPOST_PHONE_NUMBER"),
			HTTPTimeout:            time.Duration(getenvInt("INPOST_HTTP_TIMEOUT", 30)) * time.Second,
			IgnoredEnRouteStatuses: getenvList("INPOST_IGNORED_EN_ROUTE_STATUSES"),
			ParcelLockersURL:       os.Getenv("INPOST_PARCEL_LOCKERS_URL"),
			ShowOnlyOwnParcels:     getenvBool("INPOST_SHOW_ONLY_OWN_PARCELS", false),
			Language:               getenvDefault("INPOST_LANGUAGE", "pl"),
		},
	}
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, raw, fallback)
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %t", key, raw, fallback)
		return fallback
	}
	return value
}

// getenvList splits a comma separated variable, dropping empty entries.
func getenvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
