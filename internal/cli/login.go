// Package cli — login.go implements the "p4bridge login" and
// "p4bridge logout" commands.
//
// Login stores a Perforce credential: an explicit logout invocation
// first, then a credential-set invocation. This is the only flow in
// p4bridge that runs two external commands, and they are strictly
// sequential. Logout clears the stored credential.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samueldotj/p4bridge/internal/model"
)

// NewLoginCommand creates the "login" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store a Perforce credential",
		Long: `Prompt for a Perforce password and store it for later commands.

Any existing session is logged out first.

Examples:
  p4bridge login`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin()
		},
	}
}

// runLogin is the main logic function for the login command.
func runLogin() error {
	password, err := promptPassword()
	if err != nil {
		return err
	}

	d, err := newDispatcher("")
	if err != nil {
		return err
	}

	if err := d.Login(password); err != nil {
		return err
	}

	fmt.Println("Credential stored.")
	return nil
}

// promptPassword reads the password from stdin.
// An empty line or a closed stdin cancels the login.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Enter P4 password: ")

	// bufio.Scanner handles different line endings across platforms
	// (LF on Unix, CRLF on Windows).
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		password := strings.TrimSpace(scanner.Text())
		if password == "" {
			return "", model.NewCLIError(model.ExitUserCancelled, "empty password, login cancelled")
		}
		return password, nil
	}

	if err := scanner.Err(); err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to read password", err)
	}
	return "", model.NewCLIError(model.ExitUserCancelled, "login cancelled")
}

// NewLogoutCommand creates the "logout" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored Perforce credential",
		Long: `Clear the stored Perforce credential.

Examples:
  p4bridge logout`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

// runLogout is the main logic function for the logout command.
func runLogout() error {
	d, err := newDispatcher("")
	if err != nil {
		return err
	}

	if err := d.Logout(); err != nil {
		return err
	}

	fmt.Println("Credential cleared.")
	return nil
}
