package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guo/keytar/internal/config"
	"github.com/guo/keytar/internal/keychain"
	"github.com/guo/keytar/internal/secrets"
)

type checkResult struct {
	Name   string
	OK     bool
	Detail string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose config, credential store, and salt state",
	Long:  "Run setup diagnostics: config file, service selection, credential store availability, and salt initialization.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var results []checkResult

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		results = append(results, checkResult{"config", false, err.Error()})
		cfg = &config.Config{}
	} else {
		results = append(results, checkResult{"config", true, config.DefaultPath()})
	}

	// Same .env loading as regular commands, so a service name set there
	// is visible to the service check below.
	if !flagNoEnvFile {
		envFile := flagEnvFile
		if envFile == "" {
			envFile = cfg.EnvFile
		}
		if err := config.LoadEnv(envFile); err != nil {
			results = append(results, checkResult{"env-file", false, err.Error()})
		} else if envFile != "" {
			results = append(results, checkResult{"env-file", true, envFile})
		}
	}

	service := flagService
	if service == "" {
		service = os.Getenv("KEYTAR_SERVICE")
	}
	if service == "" {
		service = cfg.Service
	}
	if service == "" {
		results = append(results, checkResult{"service", false, "no service name (flag, $KEYTAR_SERVICE, or config)"})
	} else {
		results = append(results, checkResult{"service", true, service})
	}

	store, err := keychain.Open()
	if err != nil {
		results = append(results, checkResult{"store", false, err.Error()})
	} else {
		results = append(results, checkResult{"store", true, "credential store reachable"})
	}

	if service != "" && store != nil {
		saltAccount := flagSaltAccount
		if saltAccount == "" {
			saltAccount = cfg.SaltAccount
		}
		manager, err := secrets.New(secrets.Config{
			Service:     service,
			SaltAccount: saltAccount,
			Store:       store,
		})
		if err != nil {
			results = append(results, checkResult{"salt", false, err.Error()})
		} else if salt, err := manager.Salt(); err != nil {
			if errors.Is(err, secrets.ErrSaltMissing) {
				results = append(results, checkResult{"salt", false, "not initialized (run: keytar salt init)"})
			} else {
				results = append(results, checkResult{"salt", false, err.Error()})
			}
		} else {
			results = append(results, checkResult{"salt", true, fmt.Sprintf("scope %s-%s", service, salt)})
		}
	}

	var failed int
	for _, r := range results {
		if r.OK {
			fmt.Printf("OK    %-9s %s\n", r.Name, r.Detail)
		} else {
			fmt.Fprintf(os.Stderr, "FAIL  %-9s %s\n", r.Name, r.Detail)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}
