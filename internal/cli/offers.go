package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewOffersCommand creates the offers command group.
func NewOffersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "List and manage offer banners",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			banners, err := e.API.GetAllBanners(cmd.Context(), nil)
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd, banners)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tIMAGE\tADDED")
			for _, b := range banners {
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.ImageURL, b.CreatedAt.Format("02 Jan 2006"))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newOffersAddCommand(rootOpts))
	cmd.AddCommand(newOffersDeleteCommand(rootOpts))

	return cmd
}

func newOffersAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <image-path>",
		Short: "Upload a banner image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			banner, err := e.API.CreateBanner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded banner %s\n", banner.ID)
			return nil
		},
	}
}

func newOffersDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <banner-id>",
		Short: "Delete a banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			if err := e.API.DeleteBanner(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Banner deleted.")
			return nil
		},
	}
}
