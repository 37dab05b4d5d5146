package projection

import (
	"regexp"
	"strings"

	"github.com/ritirai06/SWASTHMATE/pkg/model"
)

// Patient-info extraction rules. Each field has an ordered list of patterns
// and the first match wins; a field with no match stays empty.
var (
	nameTitlePattern    = regexp.MustCompile(`\b(?:Mr|Mrs|Ms)\.?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	nameLabelPattern    = regexp.MustCompile(`(?i)\bName\s*:\s*([A-Za-z][A-Za-z .]*[A-Za-z.])`)
	namePreparedPattern = regexp.MustCompile(`(?i)\bPrepared\s+For\s*:?\s*([A-Za-z][A-Za-z .]*[A-Za-z.])`)

	genderAgePattern = regexp.MustCompile(`\b([MF])\s*/?\s*(\d{1,2})\b`)
	ageLabelPattern  = regexp.MustCompile(`(?i)\bAge\s*:\s*(\d{1,3})`)

	patientIDPattern = regexp.MustCompile(`(?i)\bPatient\s*ID\s*:?\s*(\d+)`)
	datePattern      = regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})\b`)
	labNamePattern   = regexp.MustCompile(`\b([A-Z][A-Za-z]+)\s+(?:labs|Labs|LABS)\b`)
)

// ExtractPatientInfo pulls patient fields out of report text with ordered
// first-match-wins rules. A pattern miss leaves the field empty; this is
// never an error, only a display gap.
func (p *Projector) ExtractPatientInfo(text string) model.PatientInfo {
	info := model.PatientInfo{}
	if strings.TrimSpace(text) == "" {
		return info
	}

	for _, pattern := range []*regexp.Regexp{nameTitlePattern, nameLabelPattern, namePreparedPattern} {
		if m := pattern.FindStringSubmatch(text); m != nil {
			info.Name = strings.TrimSpace(m[1])
			break
		}
	}

	if m := genderAgePattern.FindStringSubmatch(text); m != nil {
		switch m[1] {
		case "M":
			info.Gender = "Male"
		case "F":
			info.Gender = "Female"
		}
		info.Age = m[2]
	} else if m := ageLabelPattern.FindStringSubmatch(text); m != nil {
		info.Age = m[1]
	}

	if m := patientIDPattern.FindStringSubmatch(text); m != nil {
		info.PatientID = m[1]
	}
	if m := datePattern.FindStringSubmatch(text); m != nil {
		info.Date = m[1]
	}
	if m := labNamePattern.FindStringSubmatch(text); m != nil {
		info.LabName = m[0]
	}

	return info
}
