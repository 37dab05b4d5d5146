// Package pdf renders the full analysis report as a downloadable PDF.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/ritirai06/SWASTHMATE/internal/projection"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// ReportGenerator generates PDF medical reports
type ReportGenerator struct {
	projector *projection.Projector
	logger    *zap.Logger
}

// NewReportGenerator creates a new ReportGenerator
func NewReportGenerator(projector *projection.Projector, logger *zap.Logger) *ReportGenerator {
	return &ReportGenerator{
		projector: projector,
		logger:    logger,
	}
}

// Generate creates a PDF report for an analysis result
func (g *ReportGenerator) Generate(result *model.AnalysisResult) ([]byte, error) {
	g.logger.Info("generating PDF report",
		zap.String("report_id", result.ReportID),
		zap.String("filename", result.Filename),
	)

	panel := g.projector.BuildFullReportPanel(result)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, result.Filename)
	g.addRiskAssessment(pdf, panel.RiskBadge)
	g.addPatientInfo(pdf, panel.PatientInfo)
	g.addSummary(pdf, panel.Summary, panel.KeyInsights)
	g.addMeasurements(pdf, panel.Measurements)
	g.addConditions(pdf, panel.Conditions)
	g.addMedications(pdf, panel.Medications, panel.Specialization)
	g.addInteractions(pdf, panel.Interactions)
	g.addRecommendations(pdf, panel.Recommendations, panel.PriorityActions)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("PDF report generated successfully",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *ReportGenerator) addTitle(pdf *gofpdf.Fpdf, filename string) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, "Medical Report Analysis", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	if filename != "" {
		pdf.CellFormat(0, 8, fmt.Sprintf("Source file: %s", filename), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *ReportGenerator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

func (g *ReportGenerator) addRiskAssessment(pdf *gofpdf.Fpdf, badge projection.BadgeModel) {
	g.addSectionHeader(pdf, "Risk Assessment")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s Risk (score %d/100)", badge.Level, badge.Score), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	if badge.Recommendation != "" {
		pdf.MultiCell(0, 6, badge.Recommendation, "", "L", false)
	}
	if badge.ShowFactors() {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Key Risk Factors:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, factor := range badge.Factors {
			pdf.CellFormat(0, 5, fmt.Sprintf("  - %s", factor), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(5)
}

func (g *ReportGenerator) addPatientInfo(pdf *gofpdf.Fpdf, fields []projection.PatientField) {
	g.addSectionHeader(pdf, "Patient Information")

	for _, field := range fields {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", field.Label, field.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *ReportGenerator) addSummary(pdf *gofpdf.Fpdf, summary string, insights []string) {
	g.addSectionHeader(pdf, "Summary")

	pdf.MultiCell(0, 6, summary, "", "L", false)
	if len(insights) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Key Insights:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, insight := range insights {
			pdf.CellFormat(0, 5, fmt.Sprintf("  - %s", insight), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(5)
}

func (g *ReportGenerator) addMeasurements(pdf *gofpdf.Fpdf, table projection.TableModel) {
	g.addSectionHeader(pdf, "Lab Measurements")

	if table.Placeholder {
		pdf.CellFormat(0, 8, "No measurements recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.CellFormat(0, 6, table.Banner(), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 7, "Test", "1", 0, "L", false, 0, "")
	pdf.CellFormat(28, 7, "Value", "1", 0, "L", false, 0, "")
	pdf.CellFormat(24, 7, "Unit", "1", 0, "L", false, 0, "")
	pdf.CellFormat(24, 7, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(44, 7, "Normal Range", "1", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	for _, row := range table.Rows {
		pdf.CellFormat(50, 6, row.Test, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, row.Value, "1", 0, "L", false, 0, "")
		pdf.CellFormat(24, 6, row.Unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(24, 6, row.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(44, 6, row.NormalRange, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *ReportGenerator) addConditions(pdf *gofpdf.Fpdf, conditions []string) {
	g.addSectionHeader(pdf, "Detected Medical Conditions")

	if len(conditions) == 0 {
		pdf.CellFormat(0, 8, "No conditions detected.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, condition := range conditions {
		pdf.CellFormat(0, 6, fmt.Sprintf("  - %s", condition), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *ReportGenerator) addMedications(pdf *gofpdf.Fpdf, medications []string, specialization string) {
	g.addSectionHeader(pdf, "Medications")

	if len(medications) == 0 {
		pdf.CellFormat(0, 8, "No medications recorded.", "", 1, "L", false, 0, "")
	} else {
		for _, med := range medications {
			pdf.CellFormat(0, 6, fmt.Sprintf("  - %s", med), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Recommended Specialist: %s", specialization), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.Ln(5)
}

func (g *ReportGenerator) addInteractions(pdf *gofpdf.Fpdf, interactions []projection.InteractionLine) {
	g.addSectionHeader(pdf, "Drug Interactions")

	if len(interactions) == 0 {
		pdf.CellFormat(0, 8, "No drug interactions found.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, interaction := range interactions {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, interaction.Drugs, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, fmt.Sprintf("%s. %s", interaction.Description, interaction.Action), "", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(3)
}

func (g *ReportGenerator) addRecommendations(pdf *gofpdf.Fpdf, recommendations []string, priority []model.PriorityRecommendation) {
	g.addSectionHeader(pdf, "Recommendations")

	if len(recommendations) == 0 && len(priority) == 0 {
		pdf.CellFormat(0, 8, "No recommendations recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, action := range priority {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d. %s [%s]", action.Priority, action.Title, action.Urgency), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, action.Description, "", "L", false)
		pdf.Ln(1)
	}
	for _, rec := range recommendations {
		pdf.CellFormat(0, 6, fmt.Sprintf("  - %s", rec), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}
