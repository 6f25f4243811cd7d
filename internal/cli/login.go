package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Email    string
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password (prompted when omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *LoginOptions) error {
	e, err := newEnv(opts.RootOptions)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	if opts.Email == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		opts.Email = strings.TrimSpace(line)
	}
	if opts.Password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		opts.Password = strings.TrimSpace(line)
	}

	profile, err := e.Auth.Login(cmd.Context(), opts.Email, opts.Password)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return printJSON(cmd, profile)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", profile.Name, profile.Role)
	return nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			if err := e.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			profile, err := e.Auth.CurrentUser()
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd, profile)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", profile.Name, profile.Email, profile.Role)
			return nil
		},
	}
}
