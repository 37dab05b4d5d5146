package projection

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

func TestProperty_RiskBadgeAlwaysRenderable(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	projector := NewProjector(zap.NewNop())

	properties.Property("Badge always has a known level, a color, and a score in range", prop.ForAll(
		func(level string, score int, recommendation string, factors []string) bool {
			badge := projector.BuildRiskBadge(model.RiskAssessment{
				Level:          level,
				Score:          score,
				Recommendation: recommendation,
				Factors:        factors,
			})

			switch badge.Level {
			case model.RiskLow, model.RiskModerate, model.RiskHigh:
			default:
				t.Logf("unexpected level %q", badge.Level)
				return false
			}
			if badge.Color == "" {
				t.Log("badge color must never be empty")
				return false
			}
			if badge.Score < 0 || badge.Score > 100 {
				t.Logf("score %d out of range", badge.Score)
				return false
			}
			if badge.ShowFactors() != (len(factors) > 0) {
				t.Log("factors line shown iff factors exist")
				return false
			}
			return true
		},
		gen.AnyString(),
		gen.Int(),
		gen.AnyString(),
		gen.SliceOf(gen.AnyString()),
	))

	properties.TestingRun(t)
}

func TestProperty_MeasurementsTableRowInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	projector := NewProjector(zap.NewNop())

	properties.Property("One row per measurement, placeholder iff empty, no empty cells", prop.ForAll(
		func(testNames []string, valuesPerTest int) bool {
			if valuesPerTest < 1 || valuesPerTest > 3 {
				return true
			}

			raw := model.NewMeasurementSet()
			for _, name := range testNames {
				if name == "" {
					continue
				}
				for i := 0; i < valuesPerTest; i++ {
					raw.Add(name, model.Measurement{Value: float64(i)})
				}
			}

			table := projector.BuildMeasurementsTable(nil, raw)

			if len(table.Rows) != raw.TotalMeasurements() {
				t.Logf("expected %d rows, got %d", raw.TotalMeasurements(), len(table.Rows))
				return false
			}
			if table.Placeholder != (len(table.Rows) == 0) {
				t.Log("placeholder flag must mirror emptiness")
				return false
			}
			for _, row := range table.Rows {
				if row.Status == "" || row.Value == "" || row.Unit == "" || row.NormalRange == "" {
					t.Logf("empty cell in row %+v", row)
					return false
				}
			}
			return table.AbnormalCount <= table.TotalTests
		},
		gen.SliceOf(gen.Identifier()),
		gen.IntRange(1, 3),
	))

	properties.TestingRun(t)
}
