package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// Status values assigned by range comparison
const (
	StatusNormal  = "Normal"
	StatusLow     = "Low"
	StatusHigh    = "High"
	StatusUnknown = "unknown"
)

// Presentation hints paired with each status
const (
	colorNormal = "#10b981"
	bgNormal    = "#d1fae5"
	iconNormal  = "✅"

	colorLow = "#f59e0b"
	bgLow    = "#fef3c7"
	iconLow  = "⚠️"

	colorHigh = "#ef4444"
	bgHigh    = "#fee2e2"
	iconHigh  = "🔴"
)

// referenceRange holds the normal range for one lab test
type referenceRange struct {
	Min          float64
	Max          float64
	Unit         string
	HigherBetter bool
	Male         *bounds
	Female       *bounds
}

type bounds struct {
	Min float64
	Max float64
}

// referenceRanges lists normal ranges for common lab tests
var referenceRanges = map[string]referenceRange{
	// Hematology
	"Hemoglobin":            {Min: 13.5, Max: 17.5, Unit: "g/dL", Male: &bounds{13.5, 17.5}, Female: &bounds{12.0, 15.5}},
	"Total Leukocyte Count": {Min: 4000, Max: 11000, Unit: "cells/cumm"},
	"Total RBC Count":       {Min: 4.5, Max: 5.5, Unit: "million/cumm", Male: &bounds{4.5, 5.5}, Female: &bounds{4.0, 5.0}},
	"Platelet Count":        {Min: 150000, Max: 450000, Unit: "lakh/cumm"},
	"Hematocrit (HCT)":      {Min: 40, Max: 50, Unit: "%", Male: &bounds{40, 50}, Female: &bounds{36, 46}},
	"MCV":                   {Min: 80, Max: 100, Unit: "fL"},
	"MCH":                   {Min: 27, Max: 32, Unit: "pg"},
	"MCHC":                  {Min: 32, Max: 36, Unit: "g/dL"},
	"Neutrophils":           {Min: 40, Max: 70, Unit: "%"},
	"Lymphocytes":           {Min: 20, Max: 40, Unit: "%"},
	"Monocytes":             {Min: 2, Max: 8, Unit: "%"},
	"Eosinophils":           {Min: 1, Max: 4, Unit: "%"},
	"Basophils":             {Min: 0, Max: 1, Unit: "%"},

	// Diabetes
	"Glucose": {Min: 70, Max: 100, Unit: "mg/dL"},
	"HbA1c":   {Min: 4.0, Max: 5.6, Unit: "%"},

	// Lipid profile
	"Total Cholesterol": {Min: 125, Max: 200, Unit: "mg/dL"},
	"HDL Cholesterol":   {Min: 40, Max: 60, Unit: "mg/dL", HigherBetter: true},
	"LDL Cholesterol":   {Min: 0, Max: 130, Unit: "mg/dL"},
	"Triglycerides":     {Min: 0, Max: 150, Unit: "mg/dL"},

	// Liver function
	"SGPT (ALT)":       {Min: 7, Max: 56, Unit: "U/L"},
	"SGOT (AST)":       {Min: 10, Max: 40, Unit: "U/L"},
	"ALP":              {Min: 44, Max: 147, Unit: "U/L"},
	"Bilirubin Total":  {Min: 0.3, Max: 1.2, Unit: "mg/dL"},
	"Bilirubin Direct": {Min: 0, Max: 0.3, Unit: "mg/dL"},
	"Albumin":          {Min: 3.5, Max: 5.0, Unit: "g/dL"},

	// Kidney function
	"Serum Creatinine": {Min: 0.6, Max: 1.2, Unit: "mg/dL", Male: &bounds{0.7, 1.3}, Female: &bounds{0.6, 1.1}},
	"BUN":              {Min: 7, Max: 20, Unit: "mg/dL"},
	"Urea":             {Min: 15, Max: 40, Unit: "mg/dL"},
	"eGFR":             {Min: 90, Max: 120, Unit: "mL/min/1.73m²"},

	// Electrolytes
	"Sodium":    {Min: 136, Max: 145, Unit: "mmol/L"},
	"Potassium": {Min: 3.5, Max: 5.0, Unit: "mmol/L"},
	"Calcium":   {Min: 8.5, Max: 10.5, Unit: "mg/dL"},
	"Magnesium": {Min: 1.7, Max: 2.2, Unit: "mg/dL"},
	"Chloride":  {Min: 98, Max: 107, Unit: "mmol/L"},

	// Thyroid
	"TSH": {Min: 0.4, Max: 4.0, Unit: "µIU/mL"},
	"T3":  {Min: 80, Max: 200, Unit: "ng/dL"},
	"T4":  {Min: 5.0, Max: 12.0, Unit: "µg/dL"},

	// Vitamins
	"Vitamin D":   {Min: 30, Max: 100, Unit: "ng/mL"},
	"Vitamin B12": {Min: 200, Max: 900, Unit: "pg/mL"},

	// Cardiac and inflammation markers
	"Troponin": {Min: 0, Max: 0.04, Unit: "ng/mL"},
	"CRP":      {Min: 0, Max: 3, Unit: "mg/L"},
	"ESR":      {Min: 0, Max: 20, Unit: "mm/hr", Male: &bounds{0, 15}, Female: &bounds{0, 20}},

	// Uric acid
	"Uric Acid": {Min: 3.5, Max: 7.2, Unit: "mg/dL", Male: &bounds{3.5, 7.2}, Female: &bounds{2.6, 6.0}},
}

// Comparison is the result of checking one value against its reference range
type Comparison struct {
	Status      string
	NormalRange string
	Change      string
	IsAbnormal  bool
	StatusColor string
	StatusBg    string
	StatusIcon  string
}

// RangeComparator compares lab values against reference ranges
type RangeComparator struct {
	logger *zap.Logger
}

// NewRangeComparator creates a new RangeComparator
func NewRangeComparator(logger *zap.Logger) *RangeComparator {
	return &RangeComparator{
		logger: logger,
	}
}

// Compare checks a test value against its normal range. Unknown tests are
// never abnormal; they keep an unknown status and no presentation hints.
func (r *RangeComparator) Compare(testName string, value float64, gender string) Comparison {
	rangeInfo, ok := referenceRanges[testName]
	if !ok {
		return Comparison{
			Status:      StatusUnknown,
			NormalRange: "N/A",
			Change:      "N/A",
		}
	}

	minVal, maxVal := rangeInfo.Min, rangeInfo.Max
	switch strings.ToLower(gender) {
	case "m", "male":
		if rangeInfo.Male != nil {
			minVal, maxVal = rangeInfo.Male.Min, rangeInfo.Male.Max
		}
	case "f", "female":
		if rangeInfo.Female != nil {
			minVal, maxVal = rangeInfo.Female.Min, rangeInfo.Female.Max
		}
	}

	normalRange := strings.TrimSpace(fmt.Sprintf("%s-%s %s", formatBound(minVal), formatBound(maxVal), rangeInfo.Unit))

	comparison := Comparison{
		Status:      StatusNormal,
		NormalRange: normalRange,
		Change:      "→ Stable",
		StatusColor: colorNormal,
		StatusBg:    bgNormal,
		StatusIcon:  iconNormal,
	}

	switch {
	case value < minVal:
		comparison.IsAbnormal = true
		comparison.Status = StatusLow
		comparison.Change = strings.TrimSpace(fmt.Sprintf("↓ %.1f %s", minVal-value, rangeInfo.Unit))
		comparison.StatusColor = colorLow
		comparison.StatusBg = bgLow
		comparison.StatusIcon = iconLow
	case value > maxVal && !rangeInfo.HigherBetter:
		comparison.IsAbnormal = true
		comparison.Status = StatusHigh
		comparison.Change = strings.TrimSpace(fmt.Sprintf("↑ %.1f %s", value-maxVal, rangeInfo.Unit))
		comparison.StatusColor = colorHigh
		comparison.StatusBg = bgHigh
		comparison.StatusIcon = iconHigh
	}

	return comparison
}

// AnalyzeMeasurements compares every measurement against its reference range.
// Output preserves the input's test order; values that cannot be read as
// numbers (compound readings like blood pressure) are carried through
// without a comparison so they still render as rows.
func (r *RangeComparator) AnalyzeMeasurements(measurements model.MeasurementSet, gender string) *model.MeasurementsAnalysis {
	analyzed := model.NewMeasurementSet()
	var abnormalTests []model.AbnormalTest

	for _, testName := range measurements.Keys() {
		for _, m := range measurements.Get(testName) {
			value, ok := numericValue(m.Value)
			if !ok {
				r.logger.Debug("carrying non-numeric measurement without range comparison",
					zap.String("test", testName),
					zap.Any("value", m.Value),
				)
				analyzed.Add(testName, m)
				continue
			}

			comparison := r.Compare(testName, value, gender)

			analyzedMeasurement := m
			analyzedMeasurement.Status = comparison.Status
			analyzedMeasurement.NormalRange = comparison.NormalRange
			analyzedMeasurement.Change = comparison.Change
			analyzedMeasurement.StatusColor = comparison.StatusColor
			analyzedMeasurement.StatusBg = comparison.StatusBg
			analyzedMeasurement.StatusIcon = comparison.StatusIcon
			analyzed.Add(testName, analyzedMeasurement)

			if comparison.IsAbnormal {
				abnormalTests = append(abnormalTests, model.AbnormalTest{
					Test:        testName,
					Value:       m.Value,
					Unit:        m.Unit,
					Status:      comparison.Status,
					NormalRange: comparison.NormalRange,
				})
			}
		}
	}

	return &model.MeasurementsAnalysis{
		AnalyzedMeasurements: analyzed,
		AbnormalCount:        len(abnormalTests),
		TotalTests:           measurements.TotalMeasurements(),
		AbnormalTests:        abnormalTests,
	}
}

// numericValue reads a measurement value as a float. String values may carry
// thousands separators from OCR output.
func numericValue(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// formatBound renders a range bound without trailing zeros
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
