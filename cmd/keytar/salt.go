package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guo/keytar/internal/audit"
	"github.com/guo/keytar/internal/secrets"
)

var saltCmd = &cobra.Command{
	Use:   "salt",
	Short: "Manage the service's scope salt",
	Long: `The salt derives the scoped namespace ("{service}-{salt}") that secrets
are stored under. It is kept in the credential store under the unsalted
service name and must be initialized once per service before secrets can
be written.`,
}

var saltInitCmd = &cobra.Command{
	Use:   "init [salt]",
	Short: "Initialize the salt (no-op if one already exists)",
	Long: `Ensure the service has a salt, generating a random one unless a value is
given. An existing salt always wins: re-running init never re-namespaces a
service, even with a different salt argument.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("cli")
		if err != nil {
			return err
		}
		defer s.close()

		var provided string
		if len(args) == 1 {
			provided = args[0]
		}

		_, preErr := s.manager.Salt()
		existed := preErr == nil

		salt, err := s.manager.InitSalt(provided)
		if err != nil {
			s.logAudit(audit.ActionSaltInit, "", err)
			return err
		}
		s.logAudit(audit.ActionSaltInit, "", nil)

		if existed {
			fmt.Printf("Salt already initialized for %q\n", s.service)
			if provided != "" && provided != salt {
				fmt.Println("The existing salt was kept; a salt is never replaced once set.")
			}
		} else {
			fmt.Printf("Salt initialized for %q\n", s.service)
		}
		fmt.Printf("Scope: %s-%s\n", s.service, salt)
		return nil
	},
}

var saltShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current salt and scoped service name",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("cli")
		if err != nil {
			return err
		}
		defer s.close()

		salt, err := s.manager.Salt()
		if err != nil {
			if errors.Is(err, secrets.ErrSaltMissing) {
				return saltHint(err, s.service)
			}
			return err
		}

		fmt.Printf("Salt:  %s\n", salt)
		fmt.Printf("Scope: %s-%s\n", s.service, salt)
		return nil
	},
}

func init() {
	saltCmd.AddCommand(saltInitCmd)
	saltCmd.AddCommand(saltShowCmd)
	rootCmd.AddCommand(saltCmd)
}
