package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// medicalKeywords mark a text as plausibly being a medical report
var medicalKeywords = []string{"report", "patient", "diagnosis", "findings", "test", "result"}

// minReportLength is the minimum usable report text length
const minReportLength = 50

// ValidateReportContent checks that extracted text looks like a medical
// report. A nil return means the text is acceptable.
func ValidateReportContent(text string) error {
	if len(strings.TrimSpace(text)) < minReportLength {
		return fmt.Errorf("report too short or unreadable")
	}

	lower := strings.ToLower(text)
	for _, keyword := range medicalKeywords {
		if strings.Contains(lower, keyword) {
			return nil
		}
	}

	return fmt.Errorf("document doesn't appear to be a medical report")
}

// Analyzer runs the full analysis pipeline over extracted report text
type Analyzer struct {
	parser          *MeasurementParser
	detector        *Detector
	comparator      *RangeComparator
	interactions    *InteractionChecker
	recommendations *RecommendationEngine
	enhancer        *Enhancer
	logger          *zap.Logger
}

// NewAnalyzer creates a new Analyzer. The AI client may be nil, in which
// case enhancement stays rule-based.
func NewAnalyzer(ai AICompleter, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		parser:          NewMeasurementParser(logger),
		detector:        NewDetector(logger),
		comparator:      NewRangeComparator(logger),
		interactions:    NewInteractionChecker(logger),
		recommendations: NewRecommendationEngine(logger),
		enhancer:        NewEnhancer(ai, logger),
		logger:          logger,
	}
}

// Result bundles every stage of the analysis pipeline
type Result struct {
	Analysis                model.Analysis
	EnhancedAnalysis        *model.EnhancedAnalysis
	MeasurementsAnalysis    *model.MeasurementsAnalysis
	DrugInteractions        []model.DrugInteraction
	Recommendations         []string
	PriorityRecommendations []model.PriorityRecommendation
}

// Analyze runs extraction, range comparison, interaction checking,
// recommendation generation, and enhancement over report text. Gender may
// be empty; it only affects gender-specific reference ranges.
func (a *Analyzer) Analyze(ctx context.Context, text, gender string) *Result {
	a.logger.Info("starting report analysis",
		zap.Int("text_length", len(text)),
	)

	measurements := a.parser.Parse(text)
	measurementsAnalysis := a.comparator.AnalyzeMeasurements(measurements, gender)

	diseases := a.detector.DetectDiseases(text)
	diseases = a.detector.SuggestDiseasesFromMeasurements(measurementsAnalysis.AbnormalTests, diseases)

	medications := a.detector.DetectMedications(text)
	specialization := a.detector.PredictSpecialization(text)

	analysis := model.Analysis{
		Diseases:       diseases,
		Medications:    medications,
		Specialization: specialization,
		Measurements:   measurements,
	}

	interactions := a.interactions.Check(medications)
	recommendations := a.recommendations.ForDiseases(diseases)
	priorityRecs := a.recommendations.Prioritize(diseases, medications, recommendations, measurementsAnalysis.AbnormalTests)
	enhanced := a.enhancer.Enhance(ctx, analysis, measurementsAnalysis, interactions)

	a.logger.Info("report analysis completed",
		zap.Int("diseases", len(diseases)),
		zap.Int("medications", len(medications)),
		zap.Int("abnormal_values", measurementsAnalysis.AbnormalCount),
		zap.String("risk_level", enhanced.RiskAssessment.Level),
	)

	return &Result{
		Analysis:                analysis,
		EnhancedAnalysis:        enhanced,
		MeasurementsAnalysis:    measurementsAnalysis,
		DrugInteractions:        interactions,
		Recommendations:         recommendations,
		PriorityRecommendations: priorityRecs,
	}
}
