package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartjourney/studio/internal/app"
	"github.com/smartjourney/studio/internal/campaign"
	"github.com/smartjourney/studio/internal/config"
	"github.com/smartjourney/studio/internal/store"
)

var (
	cfgFile   string
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Studio - campaign authoring backend",
	Long:  `Studio is the SmartJourney campaign authoring backend with a local-first record store and rule-based content assistance.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the studio backend",
	Long:  `Start the studio HTTP API with local snapshot storage and optional remote sync.`,
	RunE:  runServe,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	RunE:  runConfigValidate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the local snapshot to the seed collections",
	RunE:  runSeed,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("studio version %s\n", version)
		if commit != "unknown" {
			fmt.Printf("  commit: %s\n", commit)
		}
		if buildTime != "unknown" {
			fmt.Printf("  built:  %s\n", buildTime)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")

	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(serveCmd, configCmd, seedCmd, versionCmd)
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	return application.Run(context.Background())
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("config file is required (use -c flag)")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Printf("Configuration is valid\n")
	fmt.Printf("  API: %s\n", cfg.API.ListenAddr)
	fmt.Printf("  Storage: %s\n", cfg.Storage.Path)
	if cfg.Remote.BaseURL != "" {
		fmt.Printf("  Remote: %s (strategy %s)\n", cfg.Remote.BaseURL, cfg.Sync.Strategy)
	} else {
		fmt.Printf("  Remote: disabled\n")
	}

	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cache, err := store.NewBoltCache(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer cache.Close()

	campaigns := campaign.SeedCampaigns()
	if err := cache.SaveCampaigns(campaigns); err != nil {
		return fmt.Errorf("failed to write campaign seeds: %w", err)
	}
	templates := campaign.SeedTemplates()
	if err := cache.SaveTemplates(templates); err != nil {
		return fmt.Errorf("failed to write template seeds: %w", err)
	}

	fmt.Printf("Seeded %d campaigns and %d templates into %s\n", len(campaigns), len(templates), cfg.Storage.Path)
	return nil
}
