package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"orderdesk/internal/domain"
)

// NewCouriersCommand creates the couriers command group.
func NewCouriersCommand(rootOpts *RootOptions) *cobra.Command {
	var page int
	var status string

	cmd := &cobra.Command{
		Use:   "couriers",
		Short: "List and manage delivery staff",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			couriers, err := e.API.GetAllDeliveryBoys(cmd.Context(), page, 20, domain.CourierStatus(status))
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd, couriers)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tEMAIL\tSTATUS")
			for _, c := range couriers.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Email, c.Status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d\n", couriers.Page, couriers.TotalPages)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active|inactive|blocked)")

	cmd.AddCommand(newCouriersAddCommand(rootOpts))
	cmd.AddCommand(newCouriersDeleteCommand(rootOpts))

	return cmd
}

func newCouriersAddCommand(rootOpts *RootOptions) *cobra.Command {
	var phone, email string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a delivery boy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			created, err := e.API.CreateDeliveryBoy(cmd.Context(), domain.DeliveryBoyInput{
				Name:   args[0],
				Phone:  phone,
				Email:  email,
				Status: domain.CourierActive,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created delivery boy %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newCouriersDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <courier-id>",
		Short: "Remove a delivery boy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			if err := e.API.DeleteDeliveryBoy(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Delivery boy removed.")
			return nil
		},
	}
}
