package config

import (
	"os"
	"strconv"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	// Start with first config as base
	result := deepCopy(configs[0])

	// Merge subsequent configs
	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if theme, ok := flags["theme"].(string); ok && theme != "" {
		result.Theme.Name = theme
	}

	if storePath, ok := flags["store"].(string); ok && storePath != "" {
		result.Store.Path = storePath
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	// Server configuration from environment
	if host := os.Getenv("DECKGEN_HOST"); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv("DECKGEN_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	// Generator configuration from environment
	if baseURL := os.Getenv("DECKGEN_GENERATOR_URL"); baseURL != "" {
		result.Generator.BaseURL = baseURL
	}

	if model := os.Getenv("DECKGEN_GENERATOR_MODEL"); model != "" {
		result.Generator.Model = model
	}

	if apiKey := os.Getenv("DECKGEN_API_KEY"); apiKey != "" {
		result.Generator.APIKey = apiKey
	}

	// Images configuration from environment
	if genURL := os.Getenv("DECKGEN_IMAGES_URL"); genURL != "" {
		result.Images.GeneratorURL = genURL
	}

	if searchURL := os.Getenv("DECKGEN_SEARCH_URL"); searchURL != "" {
		result.Images.SearchURL = searchURL
	}

	if searchKey := os.Getenv("DECKGEN_SEARCH_API_KEY"); searchKey != "" {
		result.Images.SearchAPIKey = searchKey
	}

	// Store configuration from environment
	if storePath := os.Getenv("DECKGEN_STORE_PATH"); storePath != "" {
		result.Store.Path = storePath
	}

	// Theme configuration from environment
	if theme := os.Getenv("DECKGEN_THEME"); theme != "" {
		result.Theme.Name = theme
	}

	// Logging configuration from environment
	if level := os.Getenv("DECKGEN_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	if verboseStr := os.Getenv("DECKGEN_LOG_VERBOSE"); verboseStr != "" {
		if verbose, err := strconv.ParseBool(verboseStr); err == nil {
			result.Logging.Verbose = verbose
		}
	}

	return result
}

// mergeInto merges source configuration into target configuration
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if source.Server.Environment != "" {
		target.Server.Environment = source.Server.Environment
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = make([]string, len(source.Server.CORSOrigins))
		copy(target.Server.CORSOrigins, source.Server.CORSOrigins)
	}

	// Generator config
	if source.Generator.BaseURL != "" {
		target.Generator.BaseURL = source.Generator.BaseURL
	}
	if source.Generator.Model != "" {
		target.Generator.Model = source.Generator.Model
	}
	if source.Generator.TimeoutS != 0 {
		target.Generator.TimeoutS = source.Generator.TimeoutS
	}
	if source.Generator.APIKey != "" {
		target.Generator.APIKey = source.Generator.APIKey
	}
	if source.Generator.MaxSlides != 0 {
		target.Generator.MaxSlides = source.Generator.MaxSlides
	}

	// Images config
	if source.Images.GeneratorURL != "" {
		target.Images.GeneratorURL = source.Images.GeneratorURL
	}
	if source.Images.SearchURL != "" {
		target.Images.SearchURL = source.Images.SearchURL
	}
	if source.Images.PlaceholderURL != "" {
		target.Images.PlaceholderURL = source.Images.PlaceholderURL
	}
	if source.Images.TimeoutS != 0 {
		target.Images.TimeoutS = source.Images.TimeoutS
	}
	if source.Images.SearchAPIKey != "" {
		target.Images.SearchAPIKey = source.Images.SearchAPIKey
	}

	// Store config
	if source.Store.Path != "" {
		target.Store.Path = source.Store.Path
	}

	// Theme config
	if source.Theme.Name != "" {
		target.Theme.Name = source.Theme.Name
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.Verbose {
		target.Logging.Verbose = true
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := &entities.Config{
		Server:    src.Server,
		Generator: src.Generator,
		Images:    src.Images,
		Store:     src.Store,
		Theme:     src.Theme,
		Logging:   src.Logging,
	}

	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = make([]string, len(src.Server.CORSOrigins))
		copy(dst.Server.CORSOrigins, src.Server.CORSOrigins)
	}

	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
