package model

import (
	"encoding/json"
	"testing"
)

func TestMeasurementSetPreservesInsertionOrder(t *testing.T) {
	payload := `{"Hemoglobin":[{"value":9,"unit":"g/dL"}],"Glucose":[{"value":110,"unit":"mg/dL"}],"TSH":[{"value":2.1}]}`

	var set MeasurementSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKeys := []string{"Hemoglobin", "Glucose", "TSH"}
	gotKeys := set.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("expected %d keys, got %d", len(wantKeys), len(gotKeys))
	}
	for i, k := range wantKeys {
		if gotKeys[i] != k {
			t.Errorf("key %d: expected %q, got %q", i, k, gotKeys[i])
		}
	}

	// Round trip keeps the same order
	out, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var again MeasurementSet
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, k := range wantKeys {
		if again.Keys()[i] != k {
			t.Errorf("round trip key %d: expected %q, got %q", i, k, again.Keys()[i])
		}
	}
}

func TestMeasurementSetDuplicateKeysAppend(t *testing.T) {
	set := NewMeasurementSet()
	set.Add("Glucose", Measurement{Value: 95.0})
	set.Add("Glucose", Measurement{Value: 110.0})

	if set.Len() != 1 {
		t.Errorf("expected 1 distinct test, got %d", set.Len())
	}
	if len(set.Get("Glucose")) != 2 {
		t.Errorf("expected 2 measurements, got %d", len(set.Get("Glucose")))
	}
	if set.TotalMeasurements() != 2 {
		t.Errorf("expected 2 total measurements, got %d", set.TotalMeasurements())
	}
}

func TestRiskAssessmentNormalization(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantLevel string
		wantScore int
	}{
		{
			name:      "empty assessment defaults to low",
			payload:   `{}`,
			wantLevel: RiskLow,
			wantScore: 0,
		},
		{
			name:      "unknown level defaults to low",
			payload:   `{"level":"Critical","score":50}`,
			wantLevel: RiskLow,
			wantScore: 50,
		},
		{
			name:      "score above 100 is clamped",
			payload:   `{"level":"High","score":250}`,
			wantLevel: RiskHigh,
			wantScore: 100,
		},
		{
			name:      "negative score is clamped",
			payload:   `{"level":"Moderate","score":-5}`,
			wantLevel: RiskModerate,
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RiskAssessment
			if err := json.Unmarshal([]byte(tt.payload), &r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Level != tt.wantLevel {
				t.Errorf("expected level %q, got %q", tt.wantLevel, r.Level)
			}
			if r.Score != tt.wantScore {
				t.Errorf("expected score %d, got %d", tt.wantScore, r.Score)
			}
		})
	}
}

func TestMedicationAcceptsStringAndObject(t *testing.T) {
	var meds []Medication
	payload := `["Aspirin",{"name":"Metformin"},{"canonical":"warfarin"},{}]`
	if err := json.Unmarshal([]byte(payload), &meds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Aspirin", "Metformin", "warfarin", "Unknown"}
	for i, w := range want {
		if got := meds[i].Display(); got != w {
			t.Errorf("medication %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestDrugInteractionCoalescesLegacyFields(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantA      string
		wantB      string
		wantDesc   string
		wantAction string
	}{
		{
			name:       "canonical fields",
			payload:    `{"drug_a":"warfarin","drug_b":"aspirin","description":"bleeding risk","recommended_action":"Monitor closely"}`,
			wantA:      "warfarin",
			wantB:      "aspirin",
			wantDesc:   "bleeding risk",
			wantAction: "Monitor closely",
		},
		{
			name:       "medication1 convention",
			payload:    `{"medication1":"warfarin","medication2":"ibuprofen","interaction_type":"potential","recommendation":"Ask your pharmacist"}`,
			wantA:      "warfarin",
			wantB:      "ibuprofen",
			wantDesc:   "potential",
			wantAction: "Ask your pharmacist",
		},
		{
			name:       "drug1 convention with action",
			payload:    `{"drug1":"metformin","drug2":"alcohol","description":"hypoglycemia risk","action":"Avoid combination"}`,
			wantA:      "metformin",
			wantB:      "alcohol",
			wantDesc:   "hypoglycemia risk",
			wantAction: "Avoid combination",
		},
		{
			name:       "missing action gets default",
			payload:    `{"drug1":"statins","drug2":"grapefruit"}`,
			wantA:      "statins",
			wantB:      "grapefruit",
			wantDesc:   "",
			wantAction: "Consult your doctor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DrugInteraction
			if err := json.Unmarshal([]byte(tt.payload), &d); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.DrugA != tt.wantA {
				t.Errorf("expected drug_a %q, got %q", tt.wantA, d.DrugA)
			}
			if d.DrugB != tt.wantB {
				t.Errorf("expected drug_b %q, got %q", tt.wantB, d.DrugB)
			}
			if d.Description != tt.wantDesc {
				t.Errorf("expected description %q, got %q", tt.wantDesc, d.Description)
			}
			if d.RecommendedAction != tt.wantAction {
				t.Errorf("expected action %q, got %q", tt.wantAction, d.RecommendedAction)
			}
		})
	}
}
