// Package cli is the terminal front end. Every command builds the same client
// stack the web console uses, with a file-backed session so logins survive
// between invocations.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"orderdesk/internal/auth"
	"orderdesk/internal/session"
	"orderdesk/internal/upstream"
	"orderdesk/internal/workflow"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	APIBaseURL string
	Format     string // "text" | "json"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the orderdesk CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "orderdesk",
		Short: "Restaurant admin console",
		Long:  "Terminal console for the restaurant API: orders, menu, categories, delivery staff, dashboards and reports.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.APIBaseURL, "api-url", defaultAPIBaseURL(), "restaurant API base URL")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewOrdersCommand(opts))
	cmd.AddCommand(NewMenuCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewCouriersCommand(opts))
	cmd.AddCommand(NewOffersCommand(opts))
	cmd.AddCommand(NewDashboardCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewShareCommand(opts))

	return cmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func defaultAPIBaseURL() string {
	if v := os.Getenv("ORDERDESK_API_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:9001/api/v1"
}

// env is the per-invocation client stack.
type env struct {
	Sessions *session.Manager
	API      *upstream.Client
	Auth     *auth.Service
	Orders   *workflow.Service
}

func newEnv(opts *RootOptions) (*env, error) {
	path := os.Getenv("ORDERDESK_SESSION_FILE")
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving session path: %w", err)
		}
	}
	sessions := session.NewManager(&session.FileStore{Path: path})
	api := upstream.New(opts.APIBaseURL, sessions)
	return &env{
		Sessions: sessions,
		API:      api,
		Auth:     auth.NewService(api, sessions),
		Orders:   workflow.NewService(api, nil, nil),
	}, nil
}

// printJSON writes v as indented JSON, for --format json.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
