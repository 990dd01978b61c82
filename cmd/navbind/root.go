package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/navbind/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "navbind",
	Short: "navbind wires page triggers to navigation targets",
	Long: `navbind binds interactive elements of an HTML page (by id) to navigation
targets, and serves the bound page over HTTP or MCP.

Without --config the built-in bindings are used:
  signUp -> /user/signup
  logIn  -> /user/login`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("page", "", "HTML page to bind (default: built-in landing page)")
	rootCmd.PersistentFlags().String("config", "", "Bindings file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().String("policy", "", "Missing-trigger policy: best-effort or fail-fast (overrides --config)")
}

// newLogger builds the command logger from --log-level and installs it as default.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)
	slog.SetDefault(logger)
	return logger, nil
}
