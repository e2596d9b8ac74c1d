package main

import (
	"fmt"
	"os"

	"github.com/de-tools/feature-tracker/pkg/server"
	"github.com/de-tools/feature-tracker/pkg/services/config"
	"github.com/de-tools/feature-tracker/pkg/services/metrics"
	"github.com/de-tools/feature-tracker/pkg/services/metrics/plausible"
	"github.com/de-tools/feature-tracker/pkg/services/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	addr    string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Feature Tracker",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml",
		"Path to the YAML configuration file")
	rootCmd.Flags().StringVarP(&addr, "addr", "a", ":8080",
		"Address for the server to listen on")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	registry := metrics.NewRegistry()
	if err := registry.Register(config.DefaultProvider, plausible.SourceFactory); err != nil {
		return fmt.Errorf("failed to register metrics provider: %w", err)
	}

	source, err := registry.Create(cfg.Provider, cfg)
	if err != nil {
		return fmt.Errorf("failed to create metrics source: %w", err)
	}

	logger.Info().
		Str("provider", cfg.Provider).
		Str("site_id", cfg.SiteID).
		Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Usage:      report.NewBuilder(source),
			Dashboards: report.NewDashboardBuilder(source),
		},
	})

	return api.Start()
}
