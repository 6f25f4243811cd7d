// Package reports serializes dashboard aggregates to CSV for download.
package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"orderdesk/internal/domain"
	"orderdesk/internal/workflow"
)

// WriteOrdersCSV exports the completed orders from an order dashboard, one
// row per order with the flattened customer fields.
func WriteOrdersCSV(w io.Writer, dash *domain.OrderDashboard) error {
	cw := csv.NewWriter(w)
	header := []string{"order_id", "type", "status", "customer", "contact", "table_or_address", "items", "subtotal", "delivery_charge", "grand_total", "payment_status", "placed_at"}
	if err := cw.Write(header); err != nil {
		return err
	}

	rows := make([]domain.Order, 0, len(dash.CompletedDeliveryOrders)+len(dash.CompletedDineInOrders))
	rows = append(rows, dash.CompletedDeliveryOrders...)
	rows = append(rows, dash.CompletedDineInOrders...)

	for i := range rows {
		view := workflow.Normalize(&rows[i])
		record := []string{
			view.Code,
			string(view.Type),
			string(view.Status),
			view.CustomerName,
			view.Contact,
			view.TableOrAddress,
			strconv.Itoa(len(view.Items)),
			fmt.Sprintf("%.2f", view.Subtotal),
			fmt.Sprintf("%.2f", view.DeliveryCharge),
			fmt.Sprintf("%.2f", view.GrandTotal),
			string(view.PaymentStatus),
			view.PlacedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV exports the headline numbers of an order dashboard.
func WriteSummaryCSV(w io.Writer, rng domain.Range, dash *domain.OrderDashboard) error {
	cw := csv.NewWriter(w)
	records := [][]string{
		{"range", string(rng)},
		{"total_orders", strconv.Itoa(dash.TotalOrders)},
		{"total_revenue", fmt.Sprintf("%.2f", dash.TotalRevenue)},
		{"avg_order_value", dash.AvgOrderValue},
		{"completed_delivery_orders", strconv.Itoa(dash.CompletedDeliveryOrdersCount)},
		{"completed_dinein_orders", strconv.Itoa(dash.CompletedDineInOrdersCount)},
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
