package analysis

import (
	"testing"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

func TestCompareWithNormalRange(t *testing.T) {
	comparator := NewRangeComparator(zap.NewNop())

	tests := []struct {
		name         string
		test         string
		value        float64
		gender       string
		wantStatus   string
		wantAbnormal bool
	}{
		{
			name:       "glucose in range",
			test:       "Glucose",
			value:      85,
			wantStatus: StatusNormal,
		},
		{
			name:         "glucose high",
			test:         "Glucose",
			value:        140,
			wantStatus:   StatusHigh,
			wantAbnormal: true,
		},
		{
			name:         "hemoglobin low",
			test:         "Hemoglobin",
			value:        9,
			wantStatus:   StatusLow,
			wantAbnormal: true,
		},
		{
			name:       "hemoglobin normal for female",
			test:       "Hemoglobin",
			value:      12.5,
			gender:     "female",
			wantStatus: StatusNormal,
		},
		{
			name:         "hemoglobin low for male",
			test:         "Hemoglobin",
			value:        12.5,
			gender:       "male",
			wantStatus:   StatusLow,
			wantAbnormal: true,
		},
		{
			name:       "hdl above range is not abnormal",
			test:       "HDL Cholesterol",
			value:      75,
			wantStatus: StatusNormal,
		},
		{
			name:         "hdl low is abnormal",
			test:         "HDL Cholesterol",
			value:        30,
			wantStatus:   StatusLow,
			wantAbnormal: true,
		},
		{
			name:       "unknown test",
			test:       "Something Unrecognized",
			value:      42,
			wantStatus: StatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := comparator.Compare(tt.test, tt.value, tt.gender)
			if got.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, got.Status)
			}
			if got.IsAbnormal != tt.wantAbnormal {
				t.Errorf("expected abnormal %v, got %v", tt.wantAbnormal, got.IsAbnormal)
			}
		})
	}
}

func TestCompareStatusHints(t *testing.T) {
	comparator := NewRangeComparator(zap.NewNop())

	normal := comparator.Compare("Glucose", 85, "")
	if normal.StatusColor != "#10b981" || normal.StatusBg != "#d1fae5" {
		t.Errorf("unexpected normal hints: %s / %s", normal.StatusColor, normal.StatusBg)
	}

	high := comparator.Compare("Glucose", 150, "")
	if high.StatusColor != "#ef4444" || high.StatusBg != "#fee2e2" {
		t.Errorf("unexpected high hints: %s / %s", high.StatusColor, high.StatusBg)
	}

	low := comparator.Compare("Glucose", 50, "")
	if low.StatusColor != "#f59e0b" || low.StatusBg != "#fef3c7" {
		t.Errorf("unexpected low hints: %s / %s", low.StatusColor, low.StatusBg)
	}
}

func TestAnalyzeMeasurements(t *testing.T) {
	comparator := NewRangeComparator(zap.NewNop())

	measurements := model.NewMeasurementSet()
	measurements.Add("Hemoglobin", model.Measurement{Value: 9.0, Unit: "g/dL"})
	measurements.Add("Glucose", model.Measurement{Value: 85.0, Unit: "mg/dL"})
	measurements.Add("Blood Pressure", model.Measurement{Value: "120/80", Unit: "mmHg"})

	result := comparator.AnalyzeMeasurements(measurements, "")

	if result.TotalTests != 3 {
		t.Errorf("expected 3 total tests, got %d", result.TotalTests)
	}
	if result.AbnormalCount != 1 {
		t.Errorf("expected 1 abnormal test, got %d", result.AbnormalCount)
	}
	if result.AbnormalCount > result.TotalTests {
		t.Error("abnormal count must not exceed total tests")
	}

	// Blood pressure is not numeric but still appears in analyzed output,
	// uncompared and never abnormal
	if result.AnalyzedMeasurements.Len() != 3 {
		t.Errorf("expected 3 analyzed tests, got %d", result.AnalyzedMeasurements.Len())
	}
	bp := result.AnalyzedMeasurements.Get("Blood Pressure")[0]
	if bp.Value != "120/80" {
		t.Errorf("expected blood pressure value carried through, got %v", bp.Value)
	}
	if bp.Status != "" {
		t.Errorf("expected no status for uncompared measurement, got %q", bp.Status)
	}

	// Input order is preserved
	keys := result.AnalyzedMeasurements.Keys()
	if keys[0] != "Hemoglobin" || keys[1] != "Glucose" || keys[2] != "Blood Pressure" {
		t.Errorf("unexpected key order: %v", keys)
	}

	hb := result.AnalyzedMeasurements.Get("Hemoglobin")[0]
	if hb.Status != StatusLow {
		t.Errorf("expected Low status, got %q", hb.Status)
	}
	if hb.NormalRange == "" {
		t.Error("expected normal range to be filled")
	}
}

func TestNumericValue(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"float", 9.5, 9.5, true},
		{"int", 100, 100, true},
		{"numeric string", "12.4", 12.4, true},
		{"string with separator", "11,500", 11500, true},
		{"composite string", "120/80", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numericValue(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("expected ok %v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
