package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"orderdesk/internal/domain"
	"orderdesk/internal/workflow"
)

// OrdersOptions holds flags for the orders list command.
type OrdersOptions struct {
	*RootOptions
	Page      int
	Limit     int
	Search    string
	OrderType string
}

// NewOrdersCommand creates the orders command group.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrdersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List and manage orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrdersList(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "page size")
	cmd.Flags().StringVar(&opts.Search, "search", "", "search text")
	cmd.Flags().StringVar(&opts.OrderType, "type", "", "order type (dinein|delivery)")

	cmd.AddCommand(newOrdersShowCommand(rootOpts))
	cmd.AddCommand(newOrdersUpdateCommand(rootOpts))
	cmd.AddCommand(newOrdersDeleteCommand(rootOpts))

	return cmd
}

func runOrdersList(cmd *cobra.Command, opts *OrdersOptions) error {
	e, err := newEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	filter := domain.OrderFilter{
		Search:    opts.Search,
		OrderType: domain.OrderType(opts.OrderType),
		PaidOnly:  true,
	}
	page, err := e.API.GetAllOrders(cmd.Context(), opts.Page, opts.Limit, filter)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return printJSON(cmd, page)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Total %d | Pending %d | Ready %d | Delivered %d\n\n",
		page.StatusCounts.TotalOrder, page.StatusCounts.Pending, page.StatusCounts.Ready, page.StatusCounts.Delivered)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tTYPE\tSTATUS\tPAID\tTOTAL\tPLACED")
	for _, o := range page.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%.2f\t%s\n",
			o.ID, o.OrderID, o.OrderType, o.Status, o.IsPaid, o.GrandTotal, o.CreatedAt.Format("02 Jan 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d\n", page.Page, page.TotalPages)
	return nil
}

func newOrdersShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order in full",
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
			if rootOpts.Format == "json" {
				return printJSON(cmd, view)
			}
			printOrderView(cmd, view)
			return nil
		},
	}
}

func printOrderView(cmd *cobra.Command, view *workflow.OrderView) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Order %s (%s)\n", view.Code, view.Type)
	fmt.Fprintf(out, "Status: %s\n", view.StatusLabel)
	fmt.Fprintf(out, "Customer: %s", view.CustomerName)
	if view.Contact != "" {
		fmt.Fprintf(out, " (%s)", view.Contact)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Location: %s\n", view.TableOrAddress)
	if view.Courier != nil {
		fmt.Fprintf(out, "Courier: %s (%s)\n", view.Courier.Name, view.Courier.Phone)
	}
	fmt.Fprintln(out, "\nItems:")
	for i, item := range view.Items {
		fmt.Fprintf(out, "  %d. %s x%d - %.2f\n", i+1, item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	if view.DeliveryCharge > 0 {
		fmt.Fprintf(out, "\nSubtotal: %.2f\nDelivery: %.2f\n", view.Subtotal, view.DeliveryCharge)
	}
	fmt.Fprintf(out, "Total: %.2f\n", view.GrandTotal)
}

// OrderUpdateOptions holds flags for the orders update command.
type OrderUpdateOptions struct {
	*RootOptions
	Status    string
	Location  string
	CourierID string
}

func newOrdersUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrderUpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <order-id>",
		Short: "Change status, location or courier assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var status domain.Status
			if opts.Status != "" {
				var err error
				status, err = domain.ParseStatusStrict(opts.Status)
				if err != nil {
					return err
				}
			}

			e, err := newEnv(opts.RootOptions)
			if err != nil {
				return err
			}
			view, err := e.Orders.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			change := workflow.Change{
				Status:         view.Status,
				TableOrAddress: opts.Location,
				CourierID:      opts.CourierID,
			}
			if opts.Status != "" {
				change.Status = status
			}

			actor := "cli"
			if user, err := e.Auth.CurrentUser(); err == nil {
				actor = user.Email
			}
			if err := e.Orders.Save(cmd.Context(), view, change, actor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", view.Code, view.StatusLabel)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "new status (pending|ready|completed|cancelled)")
	cmd.Flags().StringVar(&opts.Location, "location", "", "table number or delivery address")
	cmd.Flags().StringVar(&opts.CourierID, "courier", "", "delivery boy id (delivery orders only)")

	return cmd
}

func newOrdersDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <order-id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			actor := "cli"
			if user, err := e.Auth.CurrentUser(); err == nil {
				actor = user.Email
			}
			if err := e.Orders.Delete(cmd.Context(), args[0], actor); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Order deleted.")
			return nil
		},
	}
}
