package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hengadev/errsx"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/guo/keytar/internal/audit"
	"github.com/guo/keytar/internal/keychain"
	"github.com/guo/keytar/internal/secrets"
)

// set command
var setCmd = &cobra.Command{
	Use:   "set <name> [value]",
	Short: "Store a secret in the credential store",
	Long:  "Store a secret under the salted service scope. If value is omitted, reads from stdin (hidden prompt on a terminal, raw input when piped).",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("cli")
		if err != nil {
			return err
		}
		defer s.close()

		name := args[0]
		var value string
		if len(args) == 2 {
			value = args[1]
		} else {
			value, err = readSecretValue()
			if err != nil {
				return fmt.Errorf("reading secret value: %w", err)
			}
		}
		if value == "" {
			return errors.New("secret value cannot be empty")
		}

		if err := s.manager.Set(name, value); err != nil {
			s.logAudit(audit.ActionSecretWrite, name, err)
			return saltHint(err, s.service)
		}
		s.logAudit(audit.ActionSecretWrite, name, nil)
		fmt.Printf("Secret %q stored\n", name)
		return nil
	},
}

// get command
var getCmd = &cobra.Command{
	Use:   "get <name>...",
	Short: "Resolve secrets (environment first, then the store)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("cli")
		if err != nil {
			return err
		}
		defer s.close()

		var errs errsx.Map
		for _, name := range args {
			val, ok := s.manager.Get(name)
			if !ok {
				fmt.Fprintf(os.Stderr, "%s: not found\n", name)
				errs.Set(name, errors.New("not found"))
				continue
			}
			s.logAudit(audit.ActionSecretRead, name, nil)
			if len(args) == 1 {
				fmt.Println(val)
			} else {
				fmt.Printf("%s=%s\n", name, val)
			}
		}
		return errs.AsError()
	},
}

// delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <name>...",
	Aliases: []string{"rm"},
	Short:   "Remove secrets from the credential store",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("cli")
		if err != nil {
			return err
		}
		defer s.close()

		var errs errsx.Map
		for _, name := range args {
			removed, err := s.manager.Delete(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
				errs.Set(name, err)
				continue
			}
			if !removed {
				// Deleting a missing secret is not an error.
				fmt.Printf("Secret %q not found\n", name)
				continue
			}
			s.logAudit(audit.ActionSecretDelete, name, nil)
			fmt.Printf("Secret %q deleted\n", name)
		}
		return errs.AsError()
	},
}

// list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List secret names under the salted scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("cli")
		if err != nil {
			return err
		}
		defer s.close()

		if s.store == nil {
			return errors.New("credential store unavailable")
		}
		lister, ok := s.store.(keychain.Lister)
		if !ok {
			return errors.New("the platform credential store does not support listing entries")
		}

		scope, err := s.manager.Scope()
		if err != nil {
			return saltHint(err, s.service)
		}
		names, err := lister.Accounts(scope)
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Println("No secrets stored")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME")
		for _, n := range names {
			fmt.Fprintln(w, n)
		}
		w.Flush()
		return nil
	},
}

// readSecretValue reads a secret from stdin: hidden prompt on a terminal,
// raw read when piped.
func readSecretValue() (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("Enter secret value: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// saltHint decorates a missing-salt error with the command that fixes it.
func saltHint(err error, service string) error {
	if errors.Is(err, secrets.ErrSaltMissing) {
		return fmt.Errorf("%w\n\nInitialize the service first: keytar --service %s salt init", err, service)
	}
	return err
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
}
