package projection

import (
	"testing"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

func TestExtractPatientInfo(t *testing.T) {
	projector := NewProjector(zap.NewNop())

	tests := []struct {
		name string
		text string
		want model.PatientInfo
	}{
		{
			name: "title prefixed name with age label",
			text: "Mr. John Smith, Age: 45",
			want: model.PatientInfo{Name: "John Smith", Age: "45"},
		},
		{
			name: "name label",
			text: "Name: Priya Sharma\nReport date 12/03/2024",
			want: model.PatientInfo{Name: "Priya Sharma", Date: "12/03/2024"},
		},
		{
			name: "prepared for fallback",
			text: "Prepared For: Anil Kumar",
			want: model.PatientInfo{Name: "Anil Kumar"},
		},
		{
			name: "gender code with age",
			text: "Patient: Mrs. Jane Doe M 42 Patient ID: 10234",
			want: model.PatientInfo{Name: "Jane Doe", Gender: "Male", Age: "42", PatientID: "10234"},
		},
		{
			name: "female gender code",
			text: "F/34 visited Apollo Labs on 5-6-23",
			want: model.PatientInfo{Gender: "Female", Age: "34", Date: "5-6-23", LabName: "Apollo Labs"},
		},
		{
			name: "compact gender age token",
			text: "Patient: John M45\nPatient ID: 12345",
			want: model.PatientInfo{Gender: "Male", Age: "45", PatientID: "12345"},
		},
		{
			name: "lab name kept verbatim",
			text: "Report issued by City labs",
			want: model.PatientInfo{LabName: "City labs"},
		},
		{
			name: "no matches",
			text: "routine checkup notes",
			want: model.PatientInfo{},
		},
		{
			name: "empty text",
			text: "  ",
			want: model.PatientInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := projector.ExtractPatientInfo(tt.text)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestExtractPatientInfoTitleWinsOverLabel(t *testing.T) {
	projector := NewProjector(zap.NewNop())

	got := projector.ExtractPatientInfo("Mr. Ravi Verma\nName: ignored entry")
	if got.Name != "Ravi Verma" {
		t.Errorf("expected title rule to win, got %q", got.Name)
	}
}
