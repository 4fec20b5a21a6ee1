package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagService     string
	flagSaltAccount string
	flagEnvFile     string
	flagNoEnvFile   bool
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "keytar",
	Short: "Salted secret storage in the OS credential store",
	Long: `keytar resolves application secrets from two tiers: process environment
variables first, then the operating system credential store (macOS Keychain,
Linux Secret Service, Windows Credential Manager).

Secrets are stored under a salted service namespace ("{service}-{salt}") so
tools sharing one credential store never collide, even with the same base
name. The salt itself lives in the store under the unsalted service name;
initialize it once per service with "keytar salt init".`,
	SilenceUsage: true, // Don't show usage on errors
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagService, "service", "s", "", "base service name (default $KEYTAR_SERVICE, then config file)")
	rootCmd.PersistentFlags().StringVar(&flagSaltAccount, "salt-account", "", "store account the salt is kept under")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "explicit .env file to load before resolving")
	rootCmd.PersistentFlags().BoolVar(&flagNoEnvFile, "no-env-file", false, "skip .env loading")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
