package projection

import (
	"fmt"
	"strconv"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
)

// Status presentation hints matching the analysis engine's palette
const (
	StatusNormal = "Normal"

	colorNormal = "#10b981"
	bgNormal    = "#d1fae5"
	iconNormal  = "✅"
)

// EmptyCell is the sentinel shown for absent values
const EmptyCell = "-"

// TableRow is one rendered measurement
type TableRow struct {
	Test        string
	Value       string
	Unit        string
	Status      string
	NormalRange string
	Change      string
	StatusColor string
	StatusBg    string
	StatusIcon  string
}

// TableModel is the measurements table for a report
type TableModel struct {
	Rows          []TableRow
	AbnormalCount int
	TotalTests    int
	Placeholder   bool
}

// Banner returns the abnormal/total summary line
func (t TableModel) Banner() string {
	return fmt.Sprintf("%d of %d tests abnormal", t.AbnormalCount, t.TotalTests)
}

// BuildMeasurementsTable builds the table model. The analyzed set takes
// precedence over the raw extraction when both are present; an empty set
// yields no rows and the placeholder flag instead of an empty table.
func (p *Projector) BuildMeasurementsTable(analysis *model.MeasurementsAnalysis, fallback model.MeasurementSet) TableModel {
	table := TableModel{}

	set := fallback
	if analysis != nil && analysis.AnalyzedMeasurements.Len() > 0 {
		set = analysis.AnalyzedMeasurements
		table.AbnormalCount = analysis.AbnormalCount
		table.TotalTests = analysis.TotalTests
	} else {
		table.TotalTests = fallback.TotalMeasurements()
	}

	for _, test := range set.Keys() {
		for _, m := range set.Get(test) {
			table.Rows = append(table.Rows, buildRow(test, m))
		}
	}

	if len(table.Rows) == 0 {
		table.Placeholder = true
	}
	return table
}

func buildRow(test string, m model.Measurement) TableRow {
	row := TableRow{
		Test:        test,
		Value:       formatCell(m.Value),
		Unit:        orSentinel(m.Unit),
		Status:      m.Status,
		NormalRange: orSentinel(m.NormalRange),
		Change:      m.Change,
		StatusColor: m.StatusColor,
		StatusBg:    m.StatusBg,
		StatusIcon:  m.StatusIcon,
	}
	if row.Status == "" {
		row.Status = StatusNormal
		row.StatusColor = colorNormal
		row.StatusBg = bgNormal
		row.StatusIcon = iconNormal
	}
	return row
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return EmptyCell
	case string:
		if v == "" {
			return EmptyCell
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func orSentinel(s string) string {
	if s == "" {
		return EmptyCell
	}
	return s
}
