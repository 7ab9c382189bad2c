// ABOUTME: Account commands: register a new account and verify credentials
// ABOUTME: Registration creates the account together with its default chamber
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/core"
)

var registerName string

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Long: `Register a new account with a default "General Chamber".

Examples:
  chambers register --account ann@example.com --name "Ann" --secret s3cret
  CHAMBERS_SECRET=s3cret chambers register --account ann@example.com`,
		RunE: runRegister,
	}

	cmd.Flags().StringVar(&registerName, "name", "", "Display name (default: the account key)")

	return cmd
}

func runRegister(cmd *cobra.Command, args []string) error {
	key, err := currentAccount()
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	outcome, err := a.svc.Registry.Register(key, registerName, currentSecret())
	if err != nil {
		return describe(err)
	}

	switch outcome {
	case core.Created:
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Account %s created\n", key)
		}
		return nil
	case core.Duplicate:
		return fmt.Errorf("account %s already exists", key)
	default:
		return errors.New("account key and secret are required")
	}
}

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify account credentials",
		Long: `Verify the credentials given with --account and --secret.

Examples:
  chambers login --account ann@example.com --secret s3cret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			_, name, err := a.signIn()
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", name)
			}
			return nil
		},
	}
}
