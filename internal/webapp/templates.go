package webapp

import (
	"embed"
	"fmt"
	"html/template"

	"orderdesk/internal/workflow"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"amount":    func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
	"inc":       func(i int) int { return i + 1 },
	"dec":       func(i int) int { return i - 1 },
	"sharelink": workflow.ShareLink,
}).ParseFS(templateFS, "templates/*.tmpl"))
