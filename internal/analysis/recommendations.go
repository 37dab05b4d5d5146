package analysis

import (
	"fmt"
	"strings"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// conditionRecommendations maps detected conditions to general care advice
var conditionRecommendations = map[string][]string{
	"diabetes": {
		"Monitor blood sugar levels regularly.",
		"Follow a low-sugar, high-fiber diet.",
		"Exercise for at least 30 minutes daily.",
		"Take prescribed medications consistently.",
		"Get HbA1c checked every 3 months.",
	},
	"hypertension": {
		"Reduce salt intake to under 5g per day.",
		"Monitor blood pressure at home.",
		"Limit alcohol and avoid smoking.",
		"Practice stress-reduction techniques.",
		"Take antihypertensive medication as prescribed.",
	},
	"anemia": {
		"Eat iron-rich foods like leafy greens and legumes.",
		"Pair iron sources with vitamin C for absorption.",
		"Avoid tea or coffee right after meals.",
		"Get hemoglobin rechecked after 4-6 weeks.",
		"Consult a doctor about iron supplementation.",
	},
	"asthma": {
		"Keep a rescue inhaler accessible at all times.",
		"Avoid known triggers such as dust and smoke.",
		"Follow the prescribed inhaler schedule.",
		"Monitor symptoms and peak flow readings.",
		"Get an annual flu vaccination.",
	},
	"hypercholesterolemia": {
		"Reduce saturated and trans fat intake.",
		"Increase soluble fiber in your diet.",
		"Exercise regularly to raise HDL levels.",
		"Recheck lipid profile in 3 months.",
		"Discuss statin therapy with your doctor.",
	},
	"hypothyroidism": {
		"Take thyroid medication on an empty stomach.",
		"Get TSH levels rechecked every 6-8 weeks until stable.",
		"Maintain consistent medication timing.",
		"Report persistent fatigue or weight changes to your doctor.",
	},
	"kidney disease": {
		"Limit protein and salt intake as advised.",
		"Stay hydrated unless fluid-restricted.",
		"Avoid NSAIDs and other nephrotoxic drugs.",
		"Monitor kidney function tests regularly.",
	},
	"liver disease": {
		"Avoid alcohol completely.",
		"Limit fatty and processed foods.",
		"Review all medications with your doctor.",
		"Get liver function tests repeated as advised.",
	},
	"vitamin d deficiency": {
		"Get 15-20 minutes of sunlight exposure daily.",
		"Include vitamin D rich foods like fish and eggs.",
		"Take vitamin D supplements as prescribed.",
		"Recheck levels after 3 months of supplementation.",
	},
	"obesity": {
		"Aim for a gradual weight loss of 0.5-1 kg per week.",
		"Track daily calorie intake.",
		"Combine cardio with strength training.",
		"Consult a dietitian for a structured plan.",
	},
}

// RecommendationEngine produces general and prioritized recommendations
type RecommendationEngine struct {
	logger *zap.Logger
}

// NewRecommendationEngine creates a new RecommendationEngine
func NewRecommendationEngine(logger *zap.Logger) *RecommendationEngine {
	return &RecommendationEngine{
		logger: logger,
	}
}

// ForDiseases returns deduplicated care advice for the detected conditions,
// preserving disease order
func (e *RecommendationEngine) ForDiseases(diseases []string) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, disease := range diseases {
		for _, rec := range conditionRecommendations[strings.ToLower(disease)] {
			if !seen[rec] {
				seen[rec] = true
				recommendations = append(recommendations, rec)
			}
		}
	}

	return recommendations
}

// Prioritize builds an ordered list of follow-up actions from the overall
// analysis. Higher-priority entries come first.
func (e *RecommendationEngine) Prioritize(diseases []string, medications []model.Medication, recommendations []string, abnormalTests []model.AbnormalTest) []model.PriorityRecommendation {
	var priorityRecs []model.PriorityRecommendation

	diseasesLower := strings.ToLower(strings.Join(diseases, " "))

	// Critical conditions first
	criticalKeywords := []string{"cancer", "tumor", "heart attack", "stroke", "sepsis"}
	for _, keyword := range criticalKeywords {
		if strings.Contains(diseasesLower, keyword) {
			priorityRecs = append(priorityRecs, model.PriorityRecommendation{
				Priority:    1,
				Title:       "Seek Immediate Medical Attention",
				Description: "Critical condition detected. Consult a specialist urgently.",
				Action:      "Visit emergency department or contact specialist immediately",
				Category:    "Critical Condition",
				Urgency:     "high",
			})
			break
		}
	}

	if len(abnormalTests) > 5 {
		priorityRecs = append(priorityRecs, model.PriorityRecommendation{
			Priority:    2,
			Title:       "Multiple Abnormal Lab Values",
			Description: fmt.Sprintf("%d test results are outside normal range. Comprehensive evaluation recommended.", len(abnormalTests)),
			Action:      "Schedule appointment with primary care physician for complete assessment",
			Category:    "Lab Results",
			Urgency:     "high",
		})
	} else if len(abnormalTests) > 0 {
		names := make([]string, 0, 3)
		for _, test := range abnormalTests {
			names = append(names, test.Test)
			if len(names) == 3 {
				break
			}
		}
		priorityRecs = append(priorityRecs, model.PriorityRecommendation{
			Priority:    3,
			Title:       "Abnormal Lab Values Detected",
			Description: fmt.Sprintf("Following tests are outside normal range: %s", strings.Join(names, ", ")),
			Action:      "Consult with your doctor to discuss these results and next steps",
			Category:    "Lab Results",
			Urgency:     "medium",
		})
	}

	if len(medications) > 3 {
		priorityRecs = append(priorityRecs, model.PriorityRecommendation{
			Priority:    4,
			Title:       "Medication Review Recommended",
			Description: "You are taking multiple medications. Review with healthcare provider.",
			Action:      "Schedule medication review with pharmacist or doctor",
			Category:    "Medication Management",
			Urgency:     "medium",
		})
	}

	chronicConditions := []string{"diabetes", "hypertension", "asthma", "copd", "chronic kidney disease"}
	for _, cond := range chronicConditions {
		if strings.Contains(diseasesLower, cond) {
			priorityRecs = append(priorityRecs, model.PriorityRecommendation{
				Priority:    5,
				Title:       "Chronic Disease Management",
				Description: "Regular monitoring and follow-ups are important for chronic conditions.",
				Action:      "Schedule regular follow-up appointments with your specialist",
				Category:    "Chronic Disease Management",
				Urgency:     "medium",
			})
			break
		}
	}

	for i, rec := range recommendations {
		if i == 3 {
			break
		}
		priorityRecs = append(priorityRecs, model.PriorityRecommendation{
			Priority:    6 + i,
			Title:       "General Health Recommendation",
			Description: rec,
			Action:      "Follow general health guidelines and lifestyle modifications",
			Category:    "General Care",
			Urgency:     "low",
		})
	}

	return priorityRecs
}
