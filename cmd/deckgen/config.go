package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	configadapter "github.com/deckgen/deckgen/internal/adapters/secondary/config"
	"github.com/deckgen/deckgen/internal/domain/services"
)

// configCmd groups configuration management commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage deckgen configuration",
}

// configInitCmd writes the global config file with defaults
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the global configuration file with defaults",
	RunE: func(cmd *cobra.Command, _ []string) error {
		loader := configadapter.NewTOMLLoader()
		configService := services.NewConfigService(loader, configadapter.NewConfigMerger())

		path := loader.GetGlobalPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		if err := configService.CreateGlobalConfig(cmd.Context()); err != nil {
			return fmt.Errorf("creating global config: %w", err)
		}

		fmt.Printf("Created %s\n", path)
		return nil
	},
}

// configShowCmd prints the effective merged configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after merging all sources",
	RunE: func(cmd *cobra.Command, _ []string) error {
		workingDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}

		configService := services.NewConfigService(configadapter.NewTOMLLoader(), configadapter.NewConfigMerger())
		cfg, err := configService.LoadConfig(cmd.Context(), workingDir, nil)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		// API keys carry a toml:"-" tag, so secrets never reach stdout.
		return toml.NewEncoder(os.Stdout).Encode(cfg)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
