package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AnalysisResult is the full payload produced for one uploaded report
type AnalysisResult struct {
	Status                  string                   `json:"status"`
	ReportID                string                   `json:"report_id"`
	Filename                string                   `json:"filename"`
	ExtractedText           string                   `json:"extracted_text,omitempty"`
	Analysis                Analysis                 `json:"analysis"`
	EnhancedAnalysis        *EnhancedAnalysis        `json:"enhanced_analysis,omitempty"`
	MeasurementsAnalysis    *MeasurementsAnalysis    `json:"measurements_analysis,omitempty"`
	DrugInteractions        []DrugInteraction        `json:"drug_interactions,omitempty"`
	Recommendations         []string                 `json:"recommendations,omitempty"`
	PriorityRecommendations []PriorityRecommendation `json:"priority_recommendations,omitempty"`
	Message                 string                   `json:"message,omitempty"`
}

// Analysis holds the rule-based extraction results
type Analysis struct {
	Diseases       []string       `json:"diseases"`
	Medications    []Medication   `json:"medications,omitempty"`
	Specialization string         `json:"specialization,omitempty"`
	Measurements   MeasurementSet `json:"measurements"`
}

// EnhancedAnalysis holds the AI or rule-based enrichment of an Analysis
type EnhancedAnalysis struct {
	SummaryText    string         `json:"summary_text"`
	KeyInsights    []string       `json:"key_insights,omitempty"`
	RiskAssessment RiskAssessment `json:"risk_assessment"`
}

// MeasurementsAnalysis holds measurements compared against reference ranges
type MeasurementsAnalysis struct {
	AnalyzedMeasurements MeasurementSet `json:"analyzed_measurements"`
	AbnormalCount        int            `json:"abnormal_count"`
	TotalTests           int            `json:"total_tests"`
	AbnormalTests        []AbnormalTest `json:"abnormal_tests,omitempty"`
}

// AbnormalTest is one out-of-range lab value
type AbnormalTest struct {
	Test        string `json:"test"`
	Value       any    `json:"value"`
	Unit        string `json:"unit,omitempty"`
	Status      string `json:"status"`
	NormalRange string `json:"normal_range"`
}

// Measurement is one lab test value with its reference comparison.
// Status and the presentation hints are filled by the range comparison;
// raw extractions carry only value and unit.
type Measurement struct {
	Value       any    `json:"value"`
	Unit        string `json:"unit,omitempty"`
	Status      string `json:"status,omitempty"`
	NormalRange string `json:"normal_range,omitempty"`
	Change      string `json:"change,omitempty"`
	StatusColor string `json:"status_color,omitempty"`
	StatusBg    string `json:"status_bg,omitempty"`
	StatusIcon  string `json:"status_icon,omitempty"`
}

// MeasurementSet maps test names to their measurements while preserving
// the order in which tests were first added. Test names are unique; adding
// to an existing name appends to its measurement list.
type MeasurementSet struct {
	keys   []string
	values map[string][]Measurement
}

// NewMeasurementSet creates an empty MeasurementSet
func NewMeasurementSet() MeasurementSet {
	return MeasurementSet{values: make(map[string][]Measurement)}
}

// Add appends measurements under a test name, registering the name on first use
func (s *MeasurementSet) Add(testName string, measurements ...Measurement) {
	if s.values == nil {
		s.values = make(map[string][]Measurement)
	}
	if _, exists := s.values[testName]; !exists {
		s.keys = append(s.keys, testName)
	}
	s.values[testName] = append(s.values[testName], measurements...)
}

// Get returns the measurements for a test name
func (s *MeasurementSet) Get(testName string) []Measurement {
	return s.values[testName]
}

// Keys returns test names in insertion order
func (s *MeasurementSet) Keys() []string {
	return s.keys
}

// Len returns the number of distinct test names
func (s *MeasurementSet) Len() int {
	return len(s.keys)
}

// TotalMeasurements returns the number of measurements across all tests
func (s *MeasurementSet) TotalMeasurements() int {
	total := 0
	for _, k := range s.keys {
		total += len(s.values[k])
	}
	return total
}

// MarshalJSON writes the set as a JSON object in insertion order
func (s MeasurementSet) MarshalJSON() ([]byte, error) {
	var buf strings.Builder
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return []byte(buf.String()), nil
}

// UnmarshalJSON reads a JSON object preserving key order
func (s *MeasurementSet) UnmarshalJSON(data []byte) error {
	s.keys = nil
	s.values = make(map[string][]Measurement)

	dec := json.NewDecoder(strings.NewReader(string(data)))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("measurements: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("measurements: expected string key, got %v", keyTok)
		}

		var measurements []Measurement
		if err := dec.Decode(&measurements); err != nil {
			return fmt.Errorf("measurements: invalid value for %q: %w", key, err)
		}
		s.Add(key, measurements...)
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

// Risk levels in ascending severity
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
)

// RiskAssessment is a coarse health-risk summary
type RiskAssessment struct {
	Level          string   `json:"level"`
	Score          int      `json:"score"`
	Recommendation string   `json:"recommendation,omitempty"`
	Factors        []string `json:"factors,omitempty"`
}

// UnmarshalJSON normalizes the risk assessment at the ingestion boundary:
// unknown levels default to Low and the score is clamped to 0-100.
func (r *RiskAssessment) UnmarshalJSON(data []byte) error {
	type alias RiskAssessment
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = RiskAssessment(raw)
	r.Normalize()
	return nil
}

// Normalize clamps the score to 0-100 and defaults unknown levels to Low
func (r *RiskAssessment) Normalize() {
	switch r.Level {
	case RiskLow, RiskModerate, RiskHigh:
	default:
		r.Level = RiskLow
	}
	if r.Score < 0 {
		r.Score = 0
	}
	if r.Score > 100 {
		r.Score = 100
	}
}

// Medication is a detected medication. Upstream payloads carry either a
// plain string or an object with name/canonical fields.
type Medication struct {
	Name      string `json:"name,omitempty"`
	Canonical string `json:"canonical,omitempty"`
}

// UnmarshalJSON accepts both the string and object forms
func (m *Medication) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		m.Name = name
		return nil
	}

	type alias Medication
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("medication: expected string or object: %w", err)
	}
	*m = Medication(raw)
	return nil
}

// Display returns the best available name for the medication
func (m Medication) Display() string {
	if m.Name != "" {
		return m.Name
	}
	if m.Canonical != "" {
		return m.Canonical
	}
	return "Unknown"
}

// DrugInteraction is a potential interaction between two medications.
// Historic payloads used two field-naming conventions; both are coalesced
// into this canonical shape on receipt.
type DrugInteraction struct {
	DrugA             string `json:"drug_a"`
	DrugB             string `json:"drug_b"`
	Description       string `json:"description"`
	Severity          string `json:"severity,omitempty"`
	RecommendedAction string `json:"recommended_action"`
}

// UnmarshalJSON coalesces the legacy field names into the canonical shape
func (d *DrugInteraction) UnmarshalJSON(data []byte) error {
	var raw struct {
		DrugA             string `json:"drug_a"`
		DrugB             string `json:"drug_b"`
		Medication1       string `json:"medication1"`
		Medication2       string `json:"medication2"`
		Drug1             string `json:"drug1"`
		Drug2             string `json:"drug2"`
		Description       string `json:"description"`
		InteractionType   string `json:"interaction_type"`
		Severity          string `json:"severity"`
		RecommendedAction string `json:"recommended_action"`
		Recommendation    string `json:"recommendation"`
		Action            string `json:"action"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.DrugA = firstNonEmpty(raw.DrugA, raw.Medication1, raw.Drug1)
	d.DrugB = firstNonEmpty(raw.DrugB, raw.Medication2, raw.Drug2)
	d.Description = firstNonEmpty(raw.Description, raw.InteractionType)
	d.Severity = raw.Severity
	d.RecommendedAction = firstNonEmpty(raw.RecommendedAction, raw.Recommendation, raw.Action, "Consult your doctor")

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// PriorityRecommendation is an ordered, categorized follow-up action
type PriorityRecommendation struct {
	Priority    int    `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Category    string `json:"category"`
	Urgency     string `json:"urgency"`
}

// PatientInfo holds fields extracted heuristically from report text.
// Every field is optional; an empty string means the pattern did not match.
type PatientInfo struct {
	Name      string `json:"name,omitempty"`
	Age       string `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	PatientID string `json:"patient_id,omitempty"`
	Date      string `json:"date,omitempty"`
	LabName   string `json:"lab_name,omitempty"`
}

// ContactMessage is a submitted contact-form entry
type ContactMessage struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Profile is the patient profile returned to the client
type Profile struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
}

// TestRecord is one historical test entry for the history view
type TestRecord struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	TestType   string    `json:"test_type"`
	TestName   string    `json:"test_name"`
	Status     string    `json:"status"`
	ReportID   *string   `json:"report_id,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ReportRecord is a stored report with its analysis payload
type ReportRecord struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	BlobName      string    `json:"blob_name,omitempty"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	Result        []byte    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
