package analysis

import (
	"fmt"
	"strings"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// drugInteractionDB maps a medication to drugs known to interact with it
var drugInteractionDB = map[string][]string{
	"warfarin":   {"aspirin", "ibuprofen", "naproxen", "heparin"},
	"aspirin":    {"warfarin", "ibuprofen", "naproxen"},
	"metformin":  {"alcohol", "contrast dye"},
	"lisinopril": {"potassium", "spironolactone"},
	"enalapril":  {"potassium", "spironolactone"},
	"atorvastatin": {"grapefruit", "alcohol"},
	"simvastatin":  {"grapefruit", "alcohol"},
}

// InteractionChecker detects potential drug interactions between medications
type InteractionChecker struct {
	logger *zap.Logger
}

// NewInteractionChecker creates a new InteractionChecker
func NewInteractionChecker(logger *zap.Logger) *InteractionChecker {
	return &InteractionChecker{
		logger: logger,
	}
}

// Check returns potential interactions among the given medications.
// Results use the canonical DrugInteraction shape.
func (c *InteractionChecker) Check(medications []model.Medication) []model.DrugInteraction {
	if len(medications) == 0 {
		return nil
	}

	names := make([]string, 0, len(medications))
	for _, med := range medications {
		name := strings.ToLower(med.Display())
		if name != "" && name != "unknown" {
			names = append(names, name)
		}
	}

	var interactions []model.DrugInteraction
	for i, medA := range names {
		known, ok := drugInteractionDB[medA]
		if !ok {
			continue
		}
		for _, medB := range names[i+1:] {
			for _, interacting := range known {
				if strings.Contains(medB, interacting) || strings.HasPrefix(medB, interacting) {
					interactions = append(interactions, model.DrugInteraction{
						DrugA:             medA,
						DrugB:             medB,
						Description:       "potential interaction",
						Severity:          "moderate",
						RecommendedAction: fmt.Sprintf("Consult doctor about potential interaction between %s and %s", medA, medB),
					})
					break
				}
			}
		}
	}

	// Warfarin with NSAIDs is the highest-concern combination
	if contains(names, "warfarin") && (containsSubstring(names, "aspirin") || containsSubstring(names, "ibuprofen")) {
		interactions = append(interactions, model.DrugInteraction{
			DrugA:             "warfarin",
			DrugB:             "aspirin/nsaids",
			Description:       "bleeding risk",
			Severity:          "high",
			RecommendedAction: "Warfarin with NSAIDs increases bleeding risk. Monitor closely.",
		})
	}

	if len(interactions) > 0 {
		c.logger.Warn("drug interactions detected",
			zap.Int("count", len(interactions)),
		)
	}

	return interactions
}

func contains(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}

func containsSubstring(names []string, target string) bool {
	for _, n := range names {
		if strings.Contains(n, target) {
			return true
		}
	}
	return false
}
