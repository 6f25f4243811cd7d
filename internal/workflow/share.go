package workflow

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ShareText formats the plain-text order summary used for the WhatsApp
// handoff and clipboard copy. Pure formatting, no network.
func ShareText(view *OrderView) string {
	var b strings.Builder
	b.WriteString("Order Details\n")
	fmt.Fprintf(&b, "Order ID: %s\n", view.Code)
	fmt.Fprintf(&b, "Customer: %s\n", view.CustomerName)
	if view.Contact != "" {
		fmt.Fprintf(&b, "Phone: %s\n", view.Contact)
	}
	label := "Delivery Address"
	if view.Type == "dinein" {
		label = "Table Number"
	}
	fmt.Fprintf(&b, "%s: %s\n", label, view.TableOrAddress)
	fmt.Fprintf(&b, "Status: %s\n", view.Status)
	b.WriteString("\nItems:\n")
	for i, item := range view.Items {
		fmt.Fprintf(&b, "%d. %s x%d - ₹%.0f\n", i+1, item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: ₹%.0f", view.GrandTotal)
	return b.String()
}

// ShareLink is the WhatsApp deep link with the summary pre-filled.
func ShareLink(view *OrderView) string {
	return "https://wa.me/?text=" + url.QueryEscape(ShareText(view))
}

// ShareQR renders the deep link as a PNG so the summary can be handed to a
// phone camera.
func ShareQR(view *OrderView) ([]byte, error) {
	return qrcode.Encode(ShareLink(view), qrcode.Medium, 256)
}
