// Package render turns projection models into HTML fragments. Nothing
// outside this package builds markup.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/ritirai06/SWASTHMATE/internal/projection"
	"go.uber.org/zap"
)

// Renderer writes panel models as HTML
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// RenderPanel writes the panel's sections in their fixed order: risk badge,
// measurements table, summary, key insights, patient info, conditions,
// abnormal values, drug interactions, recommendations. Full-report panels
// additionally get medications, specialization, and priority actions.
func (r *Renderer) RenderPanel(panel projection.PanelModel) string {
	var b strings.Builder

	b.WriteString(`<div class="report-panel">`)
	if panel.Title != "" {
		fmt.Fprintf(&b, "<h2>%s</h2>", esc(panel.Title))
	}

	r.writeRiskBadge(&b, panel.RiskBadge)
	r.writeMeasurementsTable(&b, panel.Measurements)

	fmt.Fprintf(&b, `<div class="summary-text"><p>%s</p></div>`, esc(panel.Summary))

	if len(panel.KeyInsights) > 0 {
		r.writeList(&b, "key-insights", "Key Insights", panel.KeyInsights)
	}

	r.writePatientInfo(&b, panel.PatientInfo)

	if len(panel.Conditions) > 0 {
		r.writeList(&b, "conditions", "Detected Medical Conditions", panel.Conditions)
	}
	if len(panel.AbnormalValues) > 0 {
		r.writeAbnormalValues(&b, panel.AbnormalValues)
	}
	if len(panel.Interactions) > 0 {
		r.writeInteractions(&b, panel.Interactions)
	}
	if len(panel.Recommendations) > 0 {
		r.writeList(&b, "recommendations", "Recommendations", panel.Recommendations)
	}

	if panel.FullReport {
		if len(panel.Medications) > 0 {
			r.writeList(&b, "medications", "Medications", panel.Medications)
		}
		fmt.Fprintf(&b, `<div class="specialization"><strong>Recommended Specialist:</strong> %s</div>`,
			esc(panel.Specialization))
		r.writePriorityActions(&b, panel)
	}

	b.WriteString("</div>")
	return b.String()
}

func (r *Renderer) writeRiskBadge(b *strings.Builder, badge projection.BadgeModel) {
	fmt.Fprintf(b, `<div class="risk-badge" style="background-color:%s">`, esc(badge.Color))
	fmt.Fprintf(b, `<span class="risk-level">%s Risk</span>`, esc(badge.Level))
	fmt.Fprintf(b, `<span class="risk-score">Score: %d/100</span>`, badge.Score)
	if badge.Recommendation != "" {
		fmt.Fprintf(b, `<p class="risk-recommendation">%s</p>`, esc(badge.Recommendation))
	}
	if badge.ShowFactors() {
		b.WriteString(`<div class="risk-factors"><strong>Key Risk Factors:</strong><ul>`)
		for _, factor := range badge.Factors {
			fmt.Fprintf(b, "<li>%s</li>", esc(factor))
		}
		b.WriteString("</ul></div>")
	}
	b.WriteString("</div>")
}

func (r *Renderer) writeMeasurementsTable(b *strings.Builder, table projection.TableModel) {
	b.WriteString(`<div class="measurements">`)
	fmt.Fprintf(b, `<div class="measurements-banner">%s</div>`, esc(table.Banner()))

	if table.Placeholder {
		b.WriteString(`<p class="empty-state">No measurements recorded.</p></div>`)
		return
	}

	b.WriteString(`<table class="measurements-table">`)
	b.WriteString("<tr><th>Test</th><th>Value</th><th>Unit</th><th>Status</th><th>Normal Range</th></tr>")
	for _, row := range table.Rows {
		fmt.Fprintf(b,
			`<tr><td>%s</td><td>%s</td><td>%s</td><td style="color:%s;background-color:%s">%s %s</td><td>%s</td></tr>`,
			esc(row.Test), esc(row.Value), esc(row.Unit),
			esc(row.StatusColor), esc(row.StatusBg), row.StatusIcon, esc(row.Status),
			esc(row.NormalRange))
	}
	b.WriteString("</table></div>")
}

func (r *Renderer) writePatientInfo(b *strings.Builder, fields []projection.PatientField) {
	b.WriteString(`<div class="patient-info">`)
	for _, field := range fields {
		fmt.Fprintf(b, `<div class="patient-field"><span class="label">%s</span><span class="value">%s</span></div>`,
			esc(field.Label), esc(field.Value))
	}
	b.WriteString("</div>")
}

func (r *Renderer) writeAbnormalValues(b *strings.Builder, lines []projection.AbnormalLine) {
	b.WriteString(`<div class="abnormal-values"><h3>Abnormal Values</h3><ul>`)
	for _, line := range lines {
		fmt.Fprintf(b, "<li>%s: %s (%s, normal %s)</li>",
			esc(line.Test), esc(line.Value), esc(line.Status), esc(line.NormalRange))
	}
	b.WriteString("</ul></div>")
}

func (r *Renderer) writeInteractions(b *strings.Builder, lines []projection.InteractionLine) {
	b.WriteString(`<div class="drug-interactions"><h3>Drug Interactions</h3><ul>`)
	for _, line := range lines {
		fmt.Fprintf(b, "<li><strong>%s</strong>: %s. %s</li>",
			esc(line.Drugs), esc(line.Description), esc(line.Action))
	}
	b.WriteString("</ul></div>")
}

func (r *Renderer) writePriorityActions(b *strings.Builder, panel projection.PanelModel) {
	if len(panel.PriorityActions) == 0 {
		return
	}
	b.WriteString(`<div class="priority-actions"><h3>Priority Actions</h3><ol>`)
	for _, action := range panel.PriorityActions {
		fmt.Fprintf(b, "<li><strong>%s</strong>: %s</li>", esc(action.Title), esc(action.Description))
	}
	b.WriteString("</ol></div>")
}

func (r *Renderer) writeList(b *strings.Builder, class, title string, items []string) {
	fmt.Fprintf(b, `<div class="%s"><h3>%s</h3><ul>`, class, esc(title))
	for _, item := range items {
		fmt.Fprintf(b, "<li>%s</li>", esc(item))
	}
	b.WriteString("</ul></div>")
}

func esc(s string) string {
	return html.EscapeString(s)
}
