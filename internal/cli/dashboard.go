package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"orderdesk/internal/domain"
)

// NewDashboardCommand creates the dashboard command group.
func NewDashboardCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Revenue and order dashboards",
	}
	cmd.AddCommand(newDashboardRevenueCommand(rootOpts))
	cmd.AddCommand(newDashboardOrdersCommand(rootOpts))
	return cmd
}

func rangeFlag(cmd *cobra.Command, rng *string) {
	cmd.Flags().StringVar(rng, "range", "today", "aggregation window (today|weekly|monthly)")
}

func newDashboardRevenueCommand(rootOpts *RootOptions) *cobra.Command {
	var rng string

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Revenue summary with top sellers",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			dash, err := e.API.GetRevenueDashboard(cmd.Context(), domain.Range(rng))
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd, dash)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Today %.2f | Weekly %.2f | Monthly %.2f\n\n",
				dash.Revenue.Today, dash.Revenue.Weekly, dash.Revenue.Monthly)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ITEM\tQTY\tREVENUE\tWEEK GROWTH")
			for _, item := range dash.TopSellingItems {
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f%%\n",
					item.MenuDetails.Name, item.TotalQuantity, item.TotalRevenue, item.WeekGrowth)
			}
			return w.Flush()
		},
	}

	rangeFlag(cmd, &rng)
	return cmd
}

func newDashboardOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	var rng string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order volume summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			dash, err := e.API.GetOrderDashboard(cmd.Context(), domain.Range(rng))
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd, dash)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Orders: %d\nRevenue: %.2f\nAvg order value: %s\n",
				dash.TotalOrders, dash.TotalRevenue, dash.AvgOrderValue)
			fmt.Fprintf(out, "Completed delivery: %d\nCompleted dine-in: %d\n",
				dash.CompletedDeliveryOrdersCount, dash.CompletedDineInOrdersCount)
			return nil
		},
	}

	rangeFlag(cmd, &rng)
	return cmd
}
