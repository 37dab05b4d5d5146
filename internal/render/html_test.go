package render

import (
	"strings"
	"testing"

	"github.com/ritirai06/SWASTHMATE/internal/projection"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRenderPanelSectionOrder(t *testing.T) {
	projector := projection.NewProjector(zap.NewNop())
	renderer := NewRenderer(zap.NewNop())

	result := &model.AnalysisResult{
		Status: "success",
		Analysis: model.Analysis{
			Diseases: []string{"Anemia"},
		},
		EnhancedAnalysis: &model.EnhancedAnalysis{
			SummaryText: "Your hemoglobin is low.",
			KeyInsights: []string{"Low hemoglobin"},
		},
		Recommendations: []string{"Eat iron-rich foods"},
	}

	markup := renderer.RenderPanel(projector.BuildSummaryPanel(result))

	sections := []string{
		`class="risk-badge"`,
		`class="measurements"`,
		`class="summary-text"`,
		`class="key-insights"`,
		`class="patient-info"`,
		`class="conditions"`,
		`class="recommendations"`,
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(markup, section)
		if idx < 0 {
			t.Fatalf("section %s missing from markup", section)
		}
		if idx < last {
			t.Errorf("section %s out of order", section)
		}
		last = idx
	}

	assert.Contains(t, markup, "Detected Medical Conditions")
	assert.Contains(t, markup, "Anemia")
	assert.Contains(t, markup, "Eat iron-rich foods")
	assert.Contains(t, markup, "No measurements recorded.")
}

func TestRenderPanelOmitsEmptySections(t *testing.T) {
	projector := projection.NewProjector(zap.NewNop())
	renderer := NewRenderer(zap.NewNop())

	markup := renderer.RenderPanel(projector.BuildSummaryPanel(&model.AnalysisResult{Status: "success"}))

	assert.NotContains(t, markup, `class="key-insights"`)
	assert.NotContains(t, markup, `class="conditions"`)
	assert.NotContains(t, markup, `class="drug-interactions"`)
	assert.NotContains(t, markup, `class="recommendations"`)
	assert.NotContains(t, markup, "Key Risk Factors")
	assert.Contains(t, markup, "Analysis complete.")
	assert.Contains(t, markup, "Not Available")
}

func TestRenderPanelEscapesPayloadText(t *testing.T) {
	projector := projection.NewProjector(zap.NewNop())
	renderer := NewRenderer(zap.NewNop())

	result := &model.AnalysisResult{
		Status: "success",
		Analysis: model.Analysis{
			Diseases: []string{`<script>alert("x")</script>`},
		},
	}

	markup := renderer.RenderPanel(projector.BuildSummaryPanel(result))

	assert.NotContains(t, markup, "<script>")
	assert.Contains(t, markup, "&lt;script&gt;")
}

func TestRenderPrintableWrapsDocumentShell(t *testing.T) {
	projector := projection.NewProjector(zap.NewNop())
	renderer := NewRenderer(zap.NewNop())

	panel := projector.BuildFullReportPanel(&model.AnalysisResult{Status: "success"})
	doc := renderer.RenderPrintable(panel)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>Full Diagnosis Report</title>")
	assert.Contains(t, doc, `class="report-panel"`)
	assert.Contains(t, doc, "Recommended Specialist:")
	assert.Contains(t, doc, "General Physician")
	assert.Contains(t, doc, "</html>")
}
