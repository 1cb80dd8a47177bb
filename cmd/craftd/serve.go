package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/craftd/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the career metrics API server",
	Long:  `Start an HTTP server exposing the career dashboard and its sections as read-only JSON endpoints.`,
	RunE:  runServe,
}

var (
	servePort        int
	serveDatabaseURL string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDatabaseURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url is required")
	}

	srv, err := server.New(server.Config{
		Port:             cfg.Port,
		DatabaseURL:      cfg.DatabaseURL,
		RecentEventLimit: cfg.RecentEventLimit,
		AllowedOrigins:   cfg.AllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
