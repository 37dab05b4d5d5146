package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// AICompleter is the Azure OpenAI surface the enhancer depends on
type AICompleter interface {
	CompleteJSON(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error)
}

// Enhancer produces the narrative summary, key insights, and risk
// assessment for an analysis. When an AI client is configured it refines
// the rule-based result; otherwise the rule-based result is used alone.
type Enhancer struct {
	ai     AICompleter
	logger *zap.Logger
}

// NewEnhancer creates a new Enhancer. The AI client may be nil.
func NewEnhancer(ai AICompleter, logger *zap.Logger) *Enhancer {
	return &Enhancer{
		ai:     ai,
		logger: logger,
	}
}

var criticalConditions = []string{"cancer", "heart attack", "stroke", "sepsis", "tuberculosis"}

// Enhance builds the enhanced analysis for a report
func (e *Enhancer) Enhance(ctx context.Context, analysis model.Analysis, measurementsAnalysis *model.MeasurementsAnalysis, interactions []model.DrugInteraction) *model.EnhancedAnalysis {
	enhanced := e.ruleBasedEnhancement(analysis, measurementsAnalysis, interactions)

	if e.ai == nil {
		return enhanced
	}

	refined, err := e.aiEnhancement(ctx, analysis, enhanced)
	if err != nil {
		e.logger.Warn("AI enhancement failed, using rule-based result", zap.Error(err))
		return enhanced
	}

	return refined
}

// ruleBasedEnhancement derives the summary from counts and detected conditions
func (e *Enhancer) ruleBasedEnhancement(analysis model.Analysis, measurementsAnalysis *model.MeasurementsAnalysis, interactions []model.DrugInteraction) *model.EnhancedAnalysis {
	var summaryParts []string
	var insights []string

	if len(analysis.Diseases) > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("Detected %d medical condition(s): %s", len(analysis.Diseases), strings.Join(analysis.Diseases, ", ")))

		highlighted := analysis.Diseases
		if len(highlighted) > 3 {
			highlighted = highlighted[:3]
		}
		insights = append(insights, fmt.Sprintf("Detected %d medical condition(s): %s", len(analysis.Diseases), strings.Join(highlighted, ", ")))
	}

	if len(analysis.Medications) > 0 {
		names := make([]string, 0, 3)
		for _, med := range analysis.Medications {
			names = append(names, med.Display())
			if len(names) == 3 {
				break
			}
		}
		summaryParts = append(summaryParts, fmt.Sprintf("Identified %d medication(s)", len(analysis.Medications)))
		insights = append(insights, fmt.Sprintf("Identified %d medication(s): %s", len(analysis.Medications), strings.Join(names, ", ")))
	}

	abnormalCount := 0
	totalTests := analysis.Measurements.TotalMeasurements()
	if measurementsAnalysis != nil {
		abnormalCount = measurementsAnalysis.AbnormalCount
		totalTests = measurementsAnalysis.TotalTests
	}

	if totalTests > 0 {
		if abnormalCount > 0 {
			summaryParts = append(summaryParts, fmt.Sprintf("Found %d abnormal lab value(s) out of %d tests", abnormalCount, totalTests))
			insights = append(insights, fmt.Sprintf("%d abnormal lab value(s) detected", abnormalCount))
		} else {
			summaryParts = append(summaryParts, fmt.Sprintf("All %d lab test(s) are within normal range", totalTests))
		}
	}

	if len(interactions) > 0 {
		insights = append(insights, fmt.Sprintf("%d potential drug interaction(s) found", len(interactions)))
	}

	summaryText := "Analysis complete."
	if len(summaryParts) > 0 {
		summaryText = strings.Join(summaryParts, ". ") + "."
	}

	return &model.EnhancedAnalysis{
		SummaryText:    summaryText,
		KeyInsights:    insights,
		RiskAssessment: e.assessRisk(analysis, measurementsAnalysis, interactions),
	}
}

// assessRisk computes the coarse risk level, score, and factors
func (e *Enhancer) assessRisk(analysis model.Analysis, measurementsAnalysis *model.MeasurementsAnalysis, interactions []model.DrugInteraction) model.RiskAssessment {
	abnormalCount := 0
	var abnormalTests []model.AbnormalTest
	if measurementsAnalysis != nil {
		abnormalCount = measurementsAnalysis.AbnormalCount
		abnormalTests = measurementsAnalysis.AbnormalTests
	}

	diseasesLower := strings.ToLower(strings.Join(analysis.Diseases, " "))
	hasCritical := false
	for _, cond := range criticalConditions {
		if strings.Contains(diseasesLower, cond) {
			hasCritical = true
			break
		}
	}

	score := abnormalCount*8 + len(analysis.Diseases)*5 + len(interactions)*10
	if hasCritical {
		score += 50
	}

	level := model.RiskLow
	recommendation := "Maintain a healthy lifestyle and schedule routine checkups."
	switch {
	case hasCritical:
		level = model.RiskHigh
		recommendation = "Consult a specialist urgently about the detected condition."
	case abnormalCount > 5 || len(analysis.Diseases) > 3 || len(analysis.Medications) > 5:
		level = model.RiskModerate
		recommendation = "Schedule a follow-up with your doctor to review these findings."
	case abnormalCount > 0:
		recommendation = "Discuss the abnormal values with your doctor at your next visit."
	}

	var factors []string
	for _, test := range abnormalTests {
		factors = append(factors, fmt.Sprintf("%s %s", test.Test, strings.ToLower(test.Status)))
		if len(factors) == 5 {
			break
		}
	}
	for _, interaction := range interactions {
		factors = append(factors, fmt.Sprintf("%s + %s interaction", interaction.DrugA, interaction.DrugB))
	}

	risk := model.RiskAssessment{
		Level:          level,
		Score:          score,
		Recommendation: recommendation,
		Factors:        factors,
	}
	risk.Normalize()

	return risk
}

// aiEnhancement asks the AI to refine the rule-based summary
func (e *Enhancer) aiEnhancement(ctx context.Context, analysis model.Analysis, ruleBased *model.EnhancedAnalysis) (*model.EnhancedAnalysis, error) {
	prompt := e.buildEnhancementPrompt(analysis, ruleBased)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(prompt),
		openai.UserMessage("Return the refined summary as JSON."),
	}

	response, err := e.ai.CompleteJSON(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("AI enhancement failed: %w", err)
	}

	refined, err := e.parseEnhancementResponse(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse enhancement response: %w", err)
	}

	return refined, nil
}

// buildEnhancementPrompt creates the AI prompt for summary refinement
func (e *Enhancer) buildEnhancementPrompt(analysis model.Analysis, ruleBased *model.EnhancedAnalysis) string {
	return fmt.Sprintf(`You are a medical report summarization assistant. Refine the draft summary below into clear patient-friendly language.

Detected conditions: %s
Specialization: %s
Draft summary: %s
Risk level: %s (score %d)

Return the following JSON:
{
  "summary_text": "2-3 sentence patient-friendly summary",
  "key_insights": ["list of the most important findings"],
  "risk_assessment": {
    "level": "Low/Moderate/High",
    "score": 0-100,
    "recommendation": "one sentence of advice",
    "factors": ["contributing factors"]
  }
}

Rules:
- Do not invent findings that are not in the draft
- Keep the risk level unless the draft clearly misjudges it
- Return ONLY valid JSON, no additional text`,
		strings.Join(analysis.Diseases, ", "),
		analysis.Specialization,
		ruleBased.SummaryText,
		ruleBased.RiskAssessment.Level,
		ruleBased.RiskAssessment.Score,
	)
}

// parseEnhancementResponse parses the AI response into an EnhancedAnalysis
func (e *Enhancer) parseEnhancementResponse(response string) (*model.EnhancedAnalysis, error) {
	var enhanced model.EnhancedAnalysis
	if err := json.Unmarshal([]byte(response), &enhanced); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if strings.TrimSpace(enhanced.SummaryText) == "" {
		e.logger.Warn("empty summary from AI, defaulting")
		enhanced.SummaryText = "Analysis complete."
	}

	// RiskAssessment was normalized during unmarshal; re-apply in case the
	// response omitted the field entirely.
	enhanced.RiskAssessment.Normalize()

	return &enhanced, nil
}
