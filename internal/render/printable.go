package render

import (
	"fmt"
	"strings"

	"github.com/ritirai06/SWASTHMATE/internal/projection"
)

const printableStyle = `body{font-family:Arial,Helvetica,sans-serif;margin:2rem;color:#111}
h2{border-bottom:1px solid #ccc;padding-bottom:.5rem}
table{border-collapse:collapse;width:100%}
td,th{border:1px solid #ddd;padding:.4rem .6rem;text-align:left}
.risk-badge{padding:.6rem;border-radius:.4rem;color:#fff;margin-bottom:1rem}
.patient-info{display:grid;grid-template-columns:repeat(3,1fr);gap:.4rem;margin:1rem 0}
.label{font-weight:bold;margin-right:.4rem}`

// RenderPrintable wraps the full-report markup in a standalone HTML
// document for hand-off to the browser's print dialog
func (r *Renderer) RenderPrintable(panel projection.PanelModel) string {
	title := panel.Title
	if title == "" {
		title = "Medical Report"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", esc(title))
	fmt.Fprintf(&b, "<style>%s</style>\n", printableStyle)
	b.WriteString("</head>\n<body>\n")
	b.WriteString(r.RenderPanel(panel))
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
