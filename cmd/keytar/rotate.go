package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guo/keytar/internal/audit"
)

// rotate command
var rotateCmd = &cobra.Command{
	Use:   "rotate <name> <command>",
	Short: "Rotate a secret by running a command",
	Long: `Run a rotation command and store its stdout as the secret's new value.
The command is executed with /bin/sh -c and must print the new value (and
only the value) to stdout; a trailing newline is stripped.

Example:
  keytar -s myapp rotate API_TOKEN 'curl -s https://issuer.example/token'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("cli")
		if err != nil {
			return err
		}
		defer s.close()

		name, command := args[0], args[1]

		output, err := runRotationCommand(command)
		if err != nil {
			s.logRotation(name, command, err)
			return fmt.Errorf("rotation command failed: %w", err)
		}
		if output == "" {
			err := fmt.Errorf("rotation command produced no output")
			s.logRotation(name, command, err)
			return err
		}

		if err := s.manager.Set(name, output); err != nil {
			s.logRotation(name, command, err)
			return saltHint(err, s.service)
		}
		s.logRotation(name, command, nil)
		fmt.Printf("Secret %q rotated\n", name)
		return nil
	},
}

// runRotationCommand executes a rotation script and captures its stdout.
// The script must output the new secret value to stdout (and only the value).
func runRotationCommand(command string) (string, error) {
	cmd := exec.Command("/bin/sh", "-c", command)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("exit code %d: %s", exitErr.ExitCode(), string(exitErr.Stderr))
		}
		return "", err
	}
	return strings.TrimRight(string(output), "\n"), nil
}

func (s *session) logRotation(name, command string, opErr error) {
	entry := audit.Entry{
		Action:  audit.ActionSecretRotate,
		Service: s.service,
		Name:    name,
		Actor:   s.actor,
		Command: command,
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}
	// Audit logging is best-effort — a failure to log should not block the operation.
	_ = s.audit.Log(entry)
}

func init() {
	rootCmd.AddCommand(rotateCmd)
}
