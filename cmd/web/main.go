package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/runtime/app"
	"github.com/de-tools/agency-atlas/pkg/server"
	"github.com/de-tools/agency-atlas/pkg/services/config"
	"github.com/de-tools/agency-atlas/pkg/services/graphsync"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profilesFile string
	profileName  string
	settingsFile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Agency Atlas",
		RunE:  runServer,
	}

	home, _ := os.UserHomeDir()
	rootCmd.Flags().StringVarP(&profilesFile, "profiles-file", "c", filepath.Join(home, ".agency-atlas.ini"),
		"Path to the connection profiles file")
	rootCmd.Flags().StringVarP(&profileName, "profile", "p", "default", "Connection profile name")
	rootCmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "Path to the report settings file")

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
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(profilesFile)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}
	profile, err := registry.GetProfile(ctx, profileName)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	settings, err := config.LoadSettings(settingsFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", profilesFile)
	logger.Info().Msgf("Using profile `%s`, graph store configured: %t", profile.Name, profile.Graph != nil)

	clk := clock.System{}
	application, err := app.Open(ctx, profile, settings, clk)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if err := application.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Error().Err(err).Msg("failed to close stores")
		}
	}()

	syncCtrl := graphsync.NewController(application.Sync, settings.Sync.Interval)
	defer syncCtrl.Close()
	if settings.Sync.Interval > 0 {
		if err := syncCtrl.Init(ctx, settings.Sync.Organizations); err != nil {
			return fmt.Errorf("failed to initialize graph sync controller: %w", err)
		}
		logger.Info().
			Dur("interval", settings.Sync.Interval).
			Strs("organizations", settings.Sync.Organizations).
			Msg("periodic graph sync enabled")
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
		logger.Warn().Msgf("SERVER_PORT not set, using %s", port)
	}
	addr := net.JoinHostPort(host, port)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports:  application.Service,
			Schedule: syncCtrl,
			Clock:    clk,
			Health:   application.Health,
		},
	})

	return api.Start()
}
