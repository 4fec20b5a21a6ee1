package main

import (
	"fmt"
	"os"

	"github.com/hengadev/errsx"
	"github.com/spf13/cobra"

	"github.com/guo/keytar/internal/audit"
)

// convert command
var convertCmd = &cobra.Command{
	Use:   "convert <env-var>...",
	Short: "Copy environment variables into the credential store",
	Long: `Copy the named environment variables into the credential store under the
salted service scope. Variables that are unset or blank are skipped. The
process environment is left untouched, so a still-exported variable keeps
winning on reads until it is removed from the environment.

Each variable is converted independently: one failure does not stop the
rest, and the command exits non-zero if any conversion failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("cli")
		if err != nil {
			return err
		}
		defer s.close()

		var errs errsx.Map
		for _, name := range args {
			moved, err := s.manager.MoveFromEnv(name)
			if err != nil {
				s.logAudit(audit.ActionSecretConvert, name, err)
				fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
				errs.Set(name, err)
				continue
			}
			if !moved {
				fmt.Printf("Skipped %s (not set or blank)\n", name)
				continue
			}
			s.logAudit(audit.ActionSecretConvert, name, nil)
			fmt.Printf("Stored %s from the environment\n", name)
		}
		return errs.AsError()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
