package workflow

import (
	"fmt"
	"html/template"
	"io"
)

// invoiceTmpl is the fixed-layout printable invoice. The console streams it
// into a print window or serves it as a downloadable file.
var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"amount": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
	"line":   func(price float64, qty int) string { return fmt.Sprintf("₹%.2f", price*float64(qty)) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Order {{.Code}}</title>
<style>
body { font-family: monospace; max-width: 420px; margin: 24px auto; }
h1 { font-size: 16px; text-align: center; }
table { width: 100%; border-collapse: collapse; }
td, th { padding: 4px 0; text-align: left; }
td.num, th.num { text-align: right; }
.total { border-top: 1px solid #000; font-weight: bold; }
.meta { margin: 12px 0; }
</style>
</head>
<body>
<h1>Order #{{.Code}}</h1>
<div class="meta">
<div>Customer: {{.CustomerName}}</div>
{{if .Contact}}<div>Phone: {{.Contact}}</div>{{end}}
<div>{{if eq .Type "dinein"}}Table{{else}}Address{{end}}: {{.TableOrAddress}}</div>
<div>Status: {{.StatusLabel}}</div>
<div>Placed: {{.PlacedAt.Format "02 Jan 2006 15:04"}}</div>
</div>
<table>
<tr><th>Item</th><th class="num">Qty</th><th class="num">Amount</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{line .Price .Quantity}}</td></tr>
{{end}}<tr><td>Subtotal</td><td></td><td class="num">{{amount .Subtotal}}</td></tr>
{{if .DeliveryCharge}}<tr><td>Delivery</td><td></td><td class="num">{{amount .DeliveryCharge}}</td></tr>
{{end}}<tr class="total"><td>Total</td><td></td><td class="num">{{amount .GrandTotal}}</td></tr>
</table>
</body>
</html>
`))

// RenderInvoice writes the printable invoice for one order.
func RenderInvoice(w io.Writer, view *OrderView) error {
	return invoiceTmpl.Execute(w, view)
}
