package analysis

import (
	"strings"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// diseaseVocabulary lists conditions recognized in report text.
// Order controls the order of detected diseases in the output.
var diseaseVocabulary = []string{
	"Diabetes",
	"Hypertension",
	"Anemia",
	"Asthma",
	"Tuberculosis",
	"Pneumonia",
	"Hepatitis",
	"Thyroid Disease",
	"Hypothyroidism",
	"Hyperthyroidism",
	"Arthritis",
	"Migraine",
	"Epilepsy",
	"Depression",
	"Anxiety",
	"Obesity",
	"Cancer",
	"Stroke",
	"Heart Attack",
	"Heart Failure",
	"Arrhythmia",
	"Coronary Artery Disease",
	"Chronic Kidney Disease",
	"Kidney Disease",
	"Liver Disease",
	"Hypercholesterolemia",
	"Hypoglycemia",
	"Vitamin D Deficiency",
	"COPD",
	"Sepsis",
	"Dengue",
	"Malaria",
	"Gout",
	"Psoriasis",
	"Eczema",
}

// knownMedications lists medication names recognized in report text
var knownMedications = []string{
	"warfarin",
	"aspirin",
	"ibuprofen",
	"naproxen",
	"heparin",
	"metformin",
	"insulin",
	"atorvastatin",
	"rosuvastatin",
	"simvastatin",
	"lisinopril",
	"enalapril",
	"ramipril",
	"amlodipine",
	"losartan",
	"omeprazole",
	"pantoprazole",
	"paracetamol",
	"acetaminophen",
	"amoxicillin",
	"azithromycin",
	"levothyroxine",
	"prednisone",
	"salbutamol",
	"clopidogrel",
}

// specializationMap maps condition keywords to the recommended specialist.
// Checked in order; the first keyword found in the text wins.
var specializationMap = []struct {
	Keyword        string
	Specialization string
}{
	{"cancer", "Oncologist"},
	{"tumor", "Oncologist"},
	{"mammogram", "Radiologist"},
	{"lesion", "Radiologist"},
	{"heart attack", "Cardiologist"},
	{"heart failure", "Cardiologist"},
	{"arrhythmia", "Cardiologist"},
	{"hypertension", "Cardiologist"},
	{"blood pressure", "Cardiologist"},
	{"cardiac", "Cardiologist"},
	{"stroke", "Neurologist"},
	{"epilepsy", "Neurologist"},
	{"migraine", "Neurologist"},
	{"parkinson", "Neurologist"},
	{"dementia", "Neurologist"},
	{"diabetes", "Endocrinologist"},
	{"hba1c", "Endocrinologist"},
	{"glucose", "Endocrinologist"},
	{"thyroid", "Endocrinologist"},
	{"obesity", "Endocrinologist"},
	{"asthma", "Pulmonologist"},
	{"copd", "Pulmonologist"},
	{"pneumonia", "Pulmonologist"},
	{"tuberculosis", "Pulmonologist"},
	{"respiratory", "Pulmonologist"},
	{"hepatitis", "Gastroenterologist"},
	{"liver disease", "Gastroenterologist"},
	{"colon", "Gastroenterologist"},
	{"arthritis", "Rheumatologist"},
	{"lupus", "Rheumatologist"},
	{"gout", "Rheumatologist"},
	{"depression", "Psychiatrist"},
	{"anxiety", "Psychiatrist"},
	{"anemia", "Hematologist"},
	{"kidney disease", "Nephrologist"},
	{"creatinine", "Nephrologist"},
	{"eczema", "Dermatologist"},
	{"psoriasis", "Dermatologist"},
	{"dengue", "Infectious Disease Specialist"},
	{"malaria", "Infectious Disease Specialist"},
	{"sepsis", "Infectious Disease Specialist"},
}

// DefaultSpecialization is used when no condition keyword matches
const DefaultSpecialization = "General Physician"

// Detector finds diseases, medications, and the recommended specialization
// in raw report text.
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a new Detector
func NewDetector(logger *zap.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// DetectDiseases returns vocabulary conditions mentioned in the text
func (d *Detector) DetectDiseases(text string) []string {
	lower := strings.ToLower(text)

	var diseases []string
	for _, disease := range diseaseVocabulary {
		if strings.Contains(lower, strings.ToLower(disease)) {
			diseases = append(diseases, disease)
		}
	}

	d.logger.Info("diseases detected", zap.Int("count", len(diseases)))

	return diseases
}

// DetectMedications returns known medications mentioned in the text
func (d *Detector) DetectMedications(text string) []model.Medication {
	lower := strings.ToLower(text)

	var medications []model.Medication
	for _, med := range knownMedications {
		if strings.Contains(lower, med) {
			medications = append(medications, model.Medication{Name: med, Canonical: med})
		}
	}

	return medications
}

// PredictSpecialization returns the specialist suggested by the text
func (d *Detector) PredictSpecialization(text string) string {
	lower := strings.ToLower(text)

	for _, entry := range specializationMap {
		if strings.Contains(lower, entry.Keyword) {
			return entry.Specialization
		}
	}

	return DefaultSpecialization
}

// SuggestDiseasesFromMeasurements adds conditions implied by abnormal lab
// values that were not already detected in the text.
func (d *Detector) SuggestDiseasesFromMeasurements(abnormalTests []model.AbnormalTest, detected []string) []string {
	seen := make(map[string]bool, len(detected))
	for _, disease := range detected {
		seen[strings.ToLower(disease)] = true
	}

	suggest := func(disease string) {
		if !seen[strings.ToLower(disease)] {
			seen[strings.ToLower(disease)] = true
			detected = append(detected, disease)
		}
	}

	for _, test := range abnormalTests {
		name := strings.ToLower(test.Test)
		status := strings.ToLower(test.Status)

		switch {
		case strings.Contains(name, "glucose") && status == "high":
			suggest("Diabetes")
		case strings.Contains(name, "glucose") && status == "low":
			suggest("Hypoglycemia")
		case strings.Contains(name, "hemoglobin") && status == "low":
			suggest("Anemia")
		case strings.Contains(name, "total cholesterol") && status == "high":
			suggest("Hypercholesterolemia")
		case strings.Contains(name, "sgpt") || strings.Contains(name, "sgot") || strings.Contains(name, "bilirubin"):
			if status == "high" {
				suggest("Liver Disease")
			}
		case strings.Contains(name, "creatinine") || strings.Contains(name, "urea") || strings.Contains(name, "bun"):
			if status == "high" {
				suggest("Kidney Disease")
			}
		case name == "egfr" && status == "low":
			suggest("Kidney Disease")
		case strings.Contains(name, "tsh") && status == "high":
			suggest("Hypothyroidism")
		case strings.Contains(name, "tsh") && status == "low":
			suggest("Hyperthyroidism")
		case strings.Contains(name, "vitamin d") && status == "low":
			suggest("Vitamin D Deficiency")
		}
	}

	return detected
}
