package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	config := &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("DECKGEN_HOST", "localhost"),
			Port:            getEnvIntOrDefault("DECKGEN_PORT", 8421),
			ReadTimeout:     getEnvIntOrDefault("DECKGEN_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("DECKGEN_WRITE_TIMEOUT", 30),
			ShutdownTimeout: getEnvIntOrDefault("DECKGEN_SHUTDOWN_TIMEOUT", 5),
			Environment:     getEnvOrDefault("DECKGEN_ENV", "development"),
			CORSOrigins: getEnvSliceOrDefault("DECKGEN_CORS_ORIGINS", []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			}),
		},
		Generator: entities.GeneratorConfig{
			BaseURL:   getEnvOrDefault("DECKGEN_GENERATOR_URL", "https://api.deckgen.dev"),
			Model:     getEnvOrDefault("DECKGEN_GENERATOR_MODEL", "deck-small"),
			TimeoutS:  getEnvIntOrDefault("DECKGEN_GENERATOR_TIMEOUT", 60),
			MaxSlides: getEnvIntOrDefault("DECKGEN_MAX_SLIDES", 20),
		},
		Images: entities.ImagesConfig{
			GeneratorURL:   getEnvOrDefault("DECKGEN_IMAGES_URL", "https://api.deckgen.dev"),
			SearchURL:      getEnvOrDefault("DECKGEN_SEARCH_URL", "https://api.openverse.org"),
			PlaceholderURL: getEnvOrDefault("DECKGEN_PLACEHOLDER_URL", "https://picsum.photos"),
			TimeoutS:       getEnvIntOrDefault("DECKGEN_IMAGES_TIMEOUT", 30),
		},
		Store: entities.StoreConfig{
			Path: defaultStorePath(),
		},
		Theme: entities.ThemeConfig{
			Name: getEnvOrDefault("DECKGEN_THEME", entities.DefaultTheme),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("DECKGEN_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("DECKGEN_LOG_VERBOSE", false),
		},
	}

	// Secrets only ever come from the environment, never from files.
	config.Generator.APIKey = os.Getenv("DECKGEN_API_KEY")
	config.Images.SearchAPIKey = os.Getenv("DECKGEN_SEARCH_API_KEY")

	return config
}

// defaultStorePath places the store next to the global config.
func defaultStorePath() string {
	if p := os.Getenv("DECKGEN_STORE_PATH"); p != "" {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share", "deckgen", "store.json")
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns environment variable as slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
