package projection

import (
	"fmt"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
)

// Defaults for fields absent from the payload
const (
	DefaultSummary        = "Analysis complete."
	DefaultSpecialization = "General Physician"
	notAvailable          = "Not Available"
)

// PatientField is one labeled cell in the patient-info grid
type PatientField struct {
	Label string
	Value string
}

// AbnormalLine is one entry of the abnormal-values callout
type AbnormalLine struct {
	Test        string
	Value       string
	Status      string
	NormalRange string
}

// InteractionLine is one rendered drug interaction
type InteractionLine struct {
	Drugs       string
	Description string
	Severity    string
	Action      string
}

// PanelModel holds the sections of the summary or full-report surface.
// Section order is fixed by the renderer; nil or empty slices mean the
// section is omitted entirely.
type PanelModel struct {
	Title           string
	RiskBadge       BadgeModel
	Measurements    TableModel
	Summary         string
	KeyInsights     []string
	PatientInfo     []PatientField
	Conditions      []string
	AbnormalValues  []AbnormalLine
	Interactions    []InteractionLine
	Recommendations []string

	// Full-report only
	FullReport      bool
	Medications     []string
	Specialization  string
	PriorityActions []model.PriorityRecommendation
}

// BuildSummaryPanel assembles the summary surface for a result
func (p *Projector) BuildSummaryPanel(result *model.AnalysisResult) PanelModel {
	panel := p.buildPanel(result)
	panel.Title = "Analysis Summary"
	return panel
}

// BuildFullReportPanel assembles the full-diagnosis surface, adding the
// medications list and specialization line on top of the summary sections
func (p *Projector) BuildFullReportPanel(result *model.AnalysisResult) PanelModel {
	panel := p.buildPanel(result)
	panel.Title = "Full Diagnosis Report"
	panel.FullReport = true

	for _, med := range result.Analysis.Medications {
		panel.Medications = append(panel.Medications, med.Display())
	}
	panel.Specialization = result.Analysis.Specialization
	if panel.Specialization == "" {
		panel.Specialization = DefaultSpecialization
	}
	panel.PriorityActions = result.PriorityRecommendations

	return panel
}

func (p *Projector) buildPanel(result *model.AnalysisResult) PanelModel {
	panel := PanelModel{
		Summary: DefaultSummary,
	}
	if result == nil {
		panel.RiskBadge = p.BuildRiskBadge(model.RiskAssessment{})
		panel.Measurements = TableModel{Placeholder: true}
		panel.PatientInfo = patientGrid(model.PatientInfo{})
		return panel
	}

	if result.EnhancedAnalysis != nil {
		panel.RiskBadge = p.BuildRiskBadge(result.EnhancedAnalysis.RiskAssessment)
		if result.EnhancedAnalysis.SummaryText != "" {
			panel.Summary = result.EnhancedAnalysis.SummaryText
		}
		panel.KeyInsights = result.EnhancedAnalysis.KeyInsights
	} else {
		panel.RiskBadge = p.BuildRiskBadge(model.RiskAssessment{})
	}

	panel.Measurements = p.BuildMeasurementsTable(result.MeasurementsAnalysis, result.Analysis.Measurements)
	panel.PatientInfo = patientGrid(p.ExtractPatientInfo(result.ExtractedText))
	panel.Conditions = result.Analysis.Diseases

	if result.MeasurementsAnalysis != nil {
		for _, abnormal := range result.MeasurementsAnalysis.AbnormalTests {
			panel.AbnormalValues = append(panel.AbnormalValues, AbnormalLine{
				Test:        abnormal.Test,
				Value:       formatCell(abnormal.Value),
				Status:      abnormal.Status,
				NormalRange: abnormal.NormalRange,
			})
		}
	}

	for _, interaction := range result.DrugInteractions {
		panel.Interactions = append(panel.Interactions, InteractionLine{
			Drugs:       fmt.Sprintf("%s + %s", interaction.DrugA, interaction.DrugB),
			Description: interaction.Description,
			Severity:    interaction.Severity,
			Action:      interaction.RecommendedAction,
		})
	}

	panel.Recommendations = result.Recommendations
	return panel
}

func patientGrid(info model.PatientInfo) []PatientField {
	return []PatientField{
		{Label: "Name", Value: orNotAvailable(info.Name)},
		{Label: "Age", Value: orNotAvailable(info.Age)},
		{Label: "Gender", Value: orNotAvailable(info.Gender)},
		{Label: "Patient ID", Value: orNotAvailable(info.PatientID)},
		{Label: "Date", Value: orNotAvailable(info.Date)},
		{Label: "Lab", Value: orNotAvailable(info.LabName)},
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
