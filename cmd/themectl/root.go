// Package main provides themectl, a tool for inspecting and editing the
// stored theme preferences of portfolio visitors.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/theme"
)

var (
	globalOpts struct {
		driver  string
		path    string
		verbose bool
	}
	logger     *log.Logger
	store      prefs.Store
	closeStore func() error
)

// fallback is the mode a client without a stored value starts on. It follows
// PORTFOLIO_DEFAULT_THEME like the servers do.
var fallback = theme.DefaultMode

var rootCmd = &cobra.Command{
	Use:   "themectl",
	Short: "Inspect and edit stored portfolio theme preferences",
	Long: `themectl reads and writes the preference store shared by the portfolio
servers. Each client owns a namespace: "ssh:<fingerprint>" for SSH keys and
"anon:<hash>" for clients without one.

The store is selected like the server selects it (PORTFOLIO_PREFS_DRIVER and
PORTFOLIO_PREFS_PATH) unless --driver or --path is given. Clients without a
stored value are reported and toggled from PORTFOLIO_DEFAULT_THEME.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if globalOpts.verbose {
			level = "debug"
		}
		logger = logging.New(cmd.ErrOrStderr(), level)

		cfg, err := config.LoadFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		mode, err := theme.ParseMode(cfg.DefaultTheme)
		if err != nil {
			return fmt.Errorf("failed to parse default theme: %w", err)
		}
		fallback = mode

		driver, path := globalOpts.driver, globalOpts.path
		if driver == "" {
			driver = cfg.PrefsDriver
		}
		if path == "" {
			path = cfg.PrefsPath
			if driver != cfg.PrefsDriver {
				path = config.DefaultPrefsPath(driver)
			}
		}

		store, closeStore, err = prefs.Open(driver, path, logging.Component(logger, "prefs"))
		if err != nil {
			return fmt.Errorf("failed to open preference store: %w", err)
		}
		logger.Debug("store opened", "driver", driver, "path", path, "default_theme", fallback)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeStore != nil {
			err := closeStore()
			closeStore = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.driver, "driver", "",
		"Preference store driver: sqlite, file or memory (default: $PORTFOLIO_PREFS_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.path, "path", "",
		"Preference store path (default: $PORTFOLIO_PREFS_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// clientStore scopes the shared store to one client.
func clientStore(client string) prefs.Store {
	return prefs.Namespace(store, client)
}
