package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"intent-router/config"
	"intent-router/internal/app"
	"intent-router/pkg/log"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "routerctl",
	Short: "Operate the semantic intent router",
	Long: `routerctl syncs the reference index, classifies queries and runs the
chat pipeline from the command line, using the same configuration as the API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: CONFIG_PATH or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(syncCmd, classifyCmd, routesCmd, askCmd, ingestFAQCmd, importCatalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp loads the config and wires the service. When initRouter is set the
// reference index is synced before returning.
func openApp(ctx context.Context, initRouter bool) (*app.App, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	logger := log.Init(log.ZapConfig{
		Level:    level,
		Mode:     "development",
		Encoding: "console",
	})

	a, err := app.New(ctx, cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	if initRouter {
		if err := a.Router.Init(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("router init: %w", err)
		}
	}
	return a, nil
}
