package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/guo/keytar/internal/audit"
	"github.com/guo/keytar/internal/keychain"
)

const (
	menuActionGet     = "get"
	menuActionSet     = "set"
	menuActionDelete  = "delete"
	menuActionConvert = "convert"
	menuActionSalt    = "salt"
	menuActionList    = "list"
	menuActionQuit    = "quit"
)

// menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage secrets interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("menu")
		if err != nil {
			return err
		}
		defer s.close()

		for {
			var action string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title(fmt.Sprintf("keytar (service %q)", s.service)).
						Options(
							huh.NewOption("Get a secret", menuActionGet),
							huh.NewOption("Set a secret", menuActionSet),
							huh.NewOption("Delete a secret", menuActionDelete),
							huh.NewOption("Convert an environment variable", menuActionConvert),
							huh.NewOption("Initialize the salt", menuActionSalt),
							huh.NewOption("List secrets", menuActionList),
							huh.NewOption("Quit", menuActionQuit),
						).
						Value(&action),
				),
			)
			if err := form.Run(); err != nil {
				if err == huh.ErrUserAborted {
					os.Exit(130) // Standard exit code for SIGINT
				}
				return err
			}

			if action == menuActionQuit {
				return nil
			}
			if err := runMenuAction(s, action); err != nil {
				// Aborting a sub-form returns to the menu.
				if errors.Is(err, huh.ErrUserAborted) {
					continue
				}
				fmt.Fprintln(os.Stderr, err)
			}
		}
	},
}

func runMenuAction(s *session, action string) error {
	switch action {
	case menuActionGet:
		return menuGet(s)
	case menuActionSet:
		return menuSet(s)
	case menuActionDelete:
		return menuDelete(s)
	case menuActionConvert:
		return menuConvert(s)
	case menuActionSalt:
		return menuSaltInit(s)
	case menuActionList:
		return menuList(s)
	}
	return nil
}

func menuGet(s *session) error {
	name, err := promptSecretName("Secret name")
	if err != nil {
		return err
	}
	val, ok := s.manager.Get(name)
	if !ok {
		fmt.Printf("Secret %q not found\n", name)
		return nil
	}
	s.logAudit(audit.ActionSecretRead, name, nil)
	fmt.Printf("%s=%s\n", name, val)
	return nil
}

func menuSet(s *session) error {
	name, err := promptSecretName("Secret name")
	if err != nil {
		return err
	}

	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Value for %s", name)).
				EchoMode(huh.EchoModePassword).
				Validate(func(v string) error {
					if v == "" {
						return errors.New("value is required")
					}
					return nil
				}).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if err := s.manager.Set(name, value); err != nil {
		s.logAudit(audit.ActionSecretWrite, name, err)
		return saltHint(err, s.service)
	}
	s.logAudit(audit.ActionSecretWrite, name, nil)
	fmt.Printf("Secret %q stored\n", name)
	return nil
}

func menuDelete(s *session) error {
	name, err := promptSecretName("Secret name")
	if err != nil {
		return err
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", name)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	removed, err := s.manager.Delete(name)
	if err != nil {
		s.logAudit(audit.ActionSecretDelete, name, err)
		return err
	}
	if !removed {
		fmt.Printf("Secret %q not found\n", name)
		return nil
	}
	s.logAudit(audit.ActionSecretDelete, name, nil)
	fmt.Printf("Secret %q deleted\n", name)
	return nil
}

func menuConvert(s *session) error {
	name, err := promptSecretName("Environment variable")
	if err != nil {
		return err
	}
	moved, err := s.manager.MoveFromEnv(name)
	if err != nil {
		s.logAudit(audit.ActionSecretConvert, name, err)
		return saltHint(err, s.service)
	}
	if !moved {
		fmt.Printf("Skipped %s (not set or blank)\n", name)
		return nil
	}
	s.logAudit(audit.ActionSecretConvert, name, nil)
	fmt.Printf("Stored %s from the environment\n", name)
	return nil
}

func menuSaltInit(s *session) error {
	salt, err := s.manager.InitSalt("")
	if err != nil {
		s.logAudit(audit.ActionSaltInit, "", err)
		return err
	}
	s.logAudit(audit.ActionSaltInit, "", nil)
	fmt.Printf("Scope: %s-%s\n", s.service, salt)
	return nil
}

func menuList(s *session) error {
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
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

// promptSecretName asks for a non-blank name.
func promptSecretName(title string) (string, error) {
	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errors.New("name is required")
					}
					return nil
				}).
				Value(&name),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
