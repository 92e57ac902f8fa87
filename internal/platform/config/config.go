package config

import (
	"os"
	"strconv"
)

type ServerConfig struct {
	Port string
}

// StorefrontConfig carries the tunables of the storefront process.
type StorefrontConfig struct {
	// CountdownSpec is the cron schedule (with seconds) used to refresh
	// the weekly-deals countdown string.
	CountdownSpec string
	// SuggestionLimit caps the number of products returned by the
	// search suggestion endpoint.
	SuggestionLimit int
	GinMode         string
}

func LoadServerConfig(defaultPort string) ServerConfig {
	port := defaultPort
	if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
		port = envPort
	}
	return ServerConfig{Port: ":" + port}
}

func LoadStorefrontConfig() StorefrontConfig {
	return StorefrontConfig{
		CountdownSpec:   GetEnv("DEALS_COUNTDOWN_CRON", "0 * * * * *"),
		SuggestionLimit: GetEnvAsInt("SEARCH_SUGGESTION_LIMIT", 5),
		GinMode:         GetEnv("GIN_MODE", ""),
	}
}

// GetEnv returns the value of an environment variable, or fallback when unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	strValue := GetEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
