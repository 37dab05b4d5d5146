package projection

import (
	"github.com/ritirai06/SWASTHMATE/pkg/model"
)

// Risk level colors
const (
	colorRiskHigh     = "#ef4444"
	colorRiskModerate = "#f59e0b"
	colorRiskLow      = "#10b981"
)

// BadgeModel is the rendered risk badge
type BadgeModel struct {
	Level          string
	Score          int
	Color          string
	Recommendation string
	Factors        []string
}

// ShowFactors reports whether the key-risk-factors line should appear
func (b BadgeModel) ShowFactors() bool {
	return len(b.Factors) > 0
}

// BuildRiskBadge maps a risk assessment to its badge. A zero-value
// assessment renders as Low risk with score 0 and no factors line.
func (p *Projector) BuildRiskBadge(risk model.RiskAssessment) BadgeModel {
	risk.Normalize()

	badge := BadgeModel{
		Level:          risk.Level,
		Score:          risk.Score,
		Recommendation: risk.Recommendation,
		Factors:        risk.Factors,
	}
	switch risk.Level {
	case model.RiskHigh:
		badge.Color = colorRiskHigh
	case model.RiskModerate:
		badge.Color = colorRiskModerate
	default:
		badge.Color = colorRiskLow
	}
	return badge
}
