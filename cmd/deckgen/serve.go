package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/deckgen/deckgen/internal/adapters/primary/http"
	configadapter "github.com/deckgen/deckgen/internal/adapters/secondary/config"
	"github.com/deckgen/deckgen/internal/adapters/secondary/content"
	"github.com/deckgen/deckgen/internal/adapters/secondary/genai"
	"github.com/deckgen/deckgen/internal/adapters/secondary/imagesearch"
	"github.com/deckgen/deckgen/internal/adapters/secondary/logging"
	"github.com/deckgen/deckgen/internal/adapters/secondary/store"
	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
	"github.com/deckgen/deckgen/internal/domain/services"
)

var (
	// Serve command flags
	port      int
	host      string
	themeName string
	storePath string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the presentation API server",
	Long: `Start the HTTP server exposing the generation, editing, auth, and
image endpoints, plus the per-presentation WebSocket for edit events.

Example:
  deckgen serve
  deckgen serve --port 9000 --store /var/lib/deckgen/store.json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Add command flags - defaults will be overridden by config loading
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&host, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().StringVarP(&themeName, "theme", "t", "", "Default theme for generated decks (overrides config)")
	serveCmd.Flags().StringVar(&storePath, "store", "", "Store file path (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Secrets come from the environment; a .env file is a convenience for
	// local development and is ignored when absent.
	_ = godotenv.Load()

	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.Logging.GetLevel())
	logger.Info("store file: %s", cfg.Store.Path)

	server, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	return runServer(cmd.Context(), server, cfg, logger)
}

// loadServeConfig loads configuration with proper precedence:
// CLI flags > env vars > local config > global config > defaults.
func loadServeConfig(cmd *cobra.Command) (*entities.Config, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	flags := map[string]interface{}{
		"port":    port,
		"host":    host,
		"theme":   themeName,
		"store":   storePath,
		"verbose": verbose,
	}

	configService := services.NewConfigService(configadapter.NewTOMLLoader(), configadapter.NewConfigMerger())
	cfg, err := configService.LoadConfig(cmd.Context(), workingDir, flags)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if err := validateServeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateServeConfig validates configuration after it's loaded
func validateServeConfig(cfg *entities.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", cfg.Server.Port)
	}

	if strings.Contains(cfg.Server.Host, " ") || strings.Contains(cfg.Server.Host, "!") {
		return fmt.Errorf("invalid host: %s", cfg.Server.Host)
	}

	return nil
}

// buildServer wires the adapters and services into the HTTP server.
func buildServer(cfg *entities.Config, logger *logging.SlogLogger) (*http.Server, error) {
	kv, err := store.NewFileStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", cfg.Store.Path, err)
	}

	normalizer := services.NewDocumentNormalizer(nil)
	presentations := store.NewPresentationRepository(kv, normalizer)

	auth := services.NewAuthService(
		store.NewUserRepository(kv),
		store.NewCredentialStore(kv),
		store.NewSessionStore(kv),
	)

	slideClient := genai.NewSlideClient(genai.SlideClientConfig{
		BaseURL:   cfg.Generator.BaseURL,
		Model:     cfg.Generator.Model,
		APIKey:    cfg.Generator.APIKey,
		Timeout:   cfg.Generator.GetTimeout(),
		MaxSlides: cfg.Generator.GetMaxSlides(),
	}, nil)

	imageClient := genai.NewImageClient(genai.ImageClientConfig{
		BaseURL: cfg.Images.GeneratorURL,
		APIKey:  cfg.Generator.APIKey,
		Timeout: cfg.Images.GetTimeout(),
	}, nil)

	// Search providers in fallback order; the placeholder provider is
	// last and always yields something.
	providers := []ports.ImageSearchProvider{
		imagesearch.NewOpenverseProvider(imagesearch.OpenverseConfig{
			BaseURL: cfg.Images.SearchURL,
			APIKey:  cfg.Images.SearchAPIKey,
			Timeout: cfg.Images.GetTimeout(),
		}, nil),
		imagesearch.NewPlaceholderProvider(cfg.Images.PlaceholderURL, nil),
	}

	images := services.NewImageService(imageClient, providers, logger.WithComponent("images"))
	generation := services.NewGenerationService(
		slideClient,
		images,
		content.NewExtractor(),
		presentations,
		nil,
		logger.WithComponent("generation"),
	)

	return http.NewServerWithLogging(http.ServerDeps{
		Generation:   generation,
		Images:       images,
		Auth:         auth,
		Repository:   presentations,
		DefaultTheme: cfg.Theme.GetName(),
	}, &cfg.Server, &cfg.Logging), nil
}

// runServer starts the server and blocks until the context is canceled.
func runServer(ctx context.Context, server *http.Server, cfg *entities.Config, logger *logging.SlogLogger) error {
	// Fail fast on an occupied port instead of logging from a goroutine.
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use or cannot be bound: %w", cfg.Server.Port, err)
	}
	if err := listener.Close(); err != nil {
		return fmt.Errorf("failed to release port after testing: %w", err)
	}

	if err := server.Start(ctx, cfg.Server.Port, cfg.Server.Host); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	logger.Info("deckgen listening on http://%s", addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
