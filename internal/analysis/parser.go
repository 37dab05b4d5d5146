package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// measurementPattern matches one lab test in free text. The first capture
// group is the value; an optional second group is the unit.
type measurementPattern struct {
	Name        string
	Pattern     *regexp.Regexp
	DefaultUnit string
}

// measurementPatterns is checked in order, so extracted measurement sets
// have a stable test order regardless of layout in the source text.
var measurementPatterns = []measurementPattern{
	// Vitals
	{"Blood Pressure", regexp.MustCompile(`(?i)(\d{2,3}/\d{2,3})\s*(mmHg)`), "mmHg"},
	{"Heart Rate", regexp.MustCompile(`(?i)(\d+)\s*(bpm)`), "bpm"},
	{"Temperature", regexp.MustCompile(`(?i)(?:temperature|temp)\s*[:\-]?\s*(\d{2,3}(?:\.\d+)?)\s*(°?[cCfF])?`), "°C"},
	{"SpO2", regexp.MustCompile(`(?i)(\d+)\s*%\s*SpO2`), "%"},
	{"BMI", regexp.MustCompile(`(?i)BMI\s*[:\-]?\s*(\d+\.?\d*)`), "kg/m²"},

	// Diabetes
	{"Glucose", regexp.MustCompile(`(?i)(?:glucose|sugar|rbs|fbs)\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/dl|mg%)?`), "mg/dL"},
	{"HbA1c", regexp.MustCompile(`(?i)(?:hba1c|a1c|glycohemoglobin)\s*[:\-]?\s*(\d+\.?\d*)\s*(%)?`), "%"},

	// Hematology
	{"Hemoglobin", regexp.MustCompile(`(?i)(?:hb|hemoglobin)\s*[:\-]?\s*([\d.,]+)\s*(g/dl|gm%)?`), "g/dL"},
	{"Total Leukocyte Count", regexp.MustCompile(`(?i)(?:total\s+leukocyte\s+count|tlc|wbc|white\s*blood\s*cells)\s*[:\-]?\s*([\d,]+\.?\d*)\s*(cells/?cumm|cumm)?`), "cells/cumm"},
	{"Total RBC Count", regexp.MustCompile(`(?i)(?:total\s*rbc\s*count|rbc\s*count)\s*[:\-]?\s*([\d,]+\.?\d*)\s*(million/?cumm)?`), "million/cumm"},
	{"Platelet Count", regexp.MustCompile(`(?i)(?:platelet\s*count|platelets|plt)\s*[:\-]?\s*([\d,]+\.?\d*)\s*(lakhs?/?cumm)?`), "lakh/cumm"},
	{"Hematocrit (HCT)", regexp.MustCompile(`(?i)(?:hematocrit|hct|pcv)\s*[:\-]?\s*([\d.,]+)\s*(%)?`), "%"},
	{"MCV", regexp.MustCompile(`(?i)MCV\s*[:\-]?\s*([\d.,]+)\s*(fL)?`), "fL"},
	{"Neutrophils", regexp.MustCompile(`(?i)neutrophils?\s*[:\-]?\s*([\d.,]+)\s*(%)?`), "%"},
	{"Lymphocytes", regexp.MustCompile(`(?i)lymphocytes?\s*[:\-]?\s*([\d.,]+)\s*(%)?`), "%"},

	// Lipid profile
	{"Total Cholesterol", regexp.MustCompile(`(?i)total\s*cholesterol\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/dl)?`), "mg/dL"},
	{"HDL Cholesterol", regexp.MustCompile(`(?i)hdl\s*(?:cholesterol)?\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/dl)?`), "mg/dL"},
	{"LDL Cholesterol", regexp.MustCompile(`(?i)ldl\s*(?:cholesterol)?\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/dl)?`), "mg/dL"},
	{"Triglycerides", regexp.MustCompile(`(?i)triglycerides\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/dl)?`), "mg/dL"},

	// Liver function
	{"SGPT (ALT)", regexp.MustCompile(`(?i)(?:sgpt|alt)\s*[:\-]?\s*(\d+\.?\d*)\s*(u/l)?`), "U/L"},
	{"SGOT (AST)", regexp.MustCompile(`(?i)(?:sgot|ast)\s*[:\-]?\s*(\d+\.?\d*)\s*(u/l)?`), "U/L"},
	{"Bilirubin Total", regexp.MustCompile(`(?i)bilirubin\s*total\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/dl)?`), "mg/dL"},

	// Kidney function
	{"Serum Creatinine", regexp.MustCompile(`(?i)(?:serum\s*)?creatinine\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/dl)?`), "mg/dL"},
	{"Urea", regexp.MustCompile(`(?i)urea\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/dl)?`), "mg/dL"},
	{"eGFR", regexp.MustCompile(`(?i)egfr\s*[:\-]?\s*(\d+\.?\d*)`), "mL/min/1.73m²"},

	// Electrolytes
	{"Sodium", regexp.MustCompile(`(?i)sodium\s*[:\-]?\s*(\d+\.?\d*)\s*(mmol/l)?`), "mmol/L"},
	{"Potassium", regexp.MustCompile(`(?i)potassium\s*[:\-]?\s*(\d+\.?\d*)\s*(mmol/l)?`), "mmol/L"},

	// Thyroid
	{"TSH", regexp.MustCompile(`(?i)tsh\s*[:\-]?\s*(\d+\.?\d*)`), "µIU/mL"},
	{"T3", regexp.MustCompile(`(?i)\bt3\s*[:\-]?\s*(\d+\.?\d*)`), "ng/dL"},
	{"T4", regexp.MustCompile(`(?i)\bt4\s*[:\-]?\s*(\d+\.?\d*)`), "µg/dL"},

	// Vitamins
	{"Vitamin D", regexp.MustCompile(`(?i)vitamin\s*d\s*[:\-]?\s*(\d+\.?\d*)\s*(ng/ml)?`), "ng/mL"},
	{"Vitamin B12", regexp.MustCompile(`(?i)vitamin\s*b12\s*[:\-]?\s*(\d+\.?\d*)\s*(pg/ml)?`), "pg/mL"},

	// Inflammation
	{"CRP", regexp.MustCompile(`(?i)\bcrp\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/l)?`), "mg/L"},
	{"ESR", regexp.MustCompile(`(?i)\besr\s*[:\-]?\s*(\d+\.?\d*)\s*(mm/hr)?`), "mm/hr"},

	// Uric acid
	{"Uric Acid", regexp.MustCompile(`(?i)uric\s*acid\s*[:\-]?\s*(\d+\.?\d*)\s*(mg/dl)?`), "mg/dL"},
}

// MeasurementParser extracts lab measurements from raw report text
type MeasurementParser struct {
	logger *zap.Logger
}

// NewMeasurementParser creates a new MeasurementParser
func NewMeasurementParser(logger *zap.Logger) *MeasurementParser {
	return &MeasurementParser{
		logger: logger,
	}
}

// Parse scans the text against every known measurement pattern.
// Each test name appears at most once with its first match.
func (p *MeasurementParser) Parse(text string) model.MeasurementSet {
	measurements := model.NewMeasurementSet()

	for _, mp := range measurementPatterns {
		match := mp.Pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		rawValue := match[1]
		unit := mp.DefaultUnit
		if len(match) > 2 && match[2] != "" {
			unit = match[2]
		}

		measurement := model.Measurement{Unit: unit}
		if value, err := strconv.ParseFloat(strings.ReplaceAll(rawValue, ",", ""), 64); err == nil {
			measurement.Value = value
		} else {
			// Composite values like blood pressure stay as strings
			measurement.Value = rawValue
		}

		measurements.Add(mp.Name, measurement)
	}

	p.logger.Info("measurements extracted",
		zap.Int("test_count", measurements.Len()),
	)

	return measurements
}
