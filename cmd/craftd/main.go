// Package main provides the craftd CLI: the career metrics API server plus
// commands to import, migrate and inspect career records.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/craftd/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "craftd",
	Short:         "Career metrics engine and API server",
	Long:          "craftd turns work history, career events and job applications into compensation, progression and job-search metrics.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// resolveConfig layers the config file over the environment and built-in
// defaults. Commands apply their own flags on top and then validate.
func resolveConfig() (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
