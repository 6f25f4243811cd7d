package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"orderdesk/internal/workflow"
)

// NewShareCommand creates the share command.
func NewShareCommand(rootOpts *RootOptions) *cobra.Command {
	var qrPath string

	cmd := &cobra.Command{
		Use:   "share <order-id>",
		Short: "Print the WhatsApp share text and link for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			view, err := e.Orders.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, workflow.ShareText(view))
			fmt.Fprintln(out)
			fmt.Fprintln(out, workflow.ShareLink(view))

			if qrPath != "" {
				png, err := workflow.ShareQR(view)
				if err != nil {
					return err
				}
				if err := os.WriteFile(qrPath, png, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nQR code written to %s\n", qrPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&qrPath, "qr", "", "write the share link as a QR PNG to this path")
	return cmd
}
