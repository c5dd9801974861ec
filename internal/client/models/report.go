package models

import "time"

// AshaReport is a field report submitted by an ASHA worker.
type AshaReport struct {
	ID           int            `json:"id"`
	Username     string         `json:"username"`
	DistrictName string         `json:"district_name"`
	VillageName  string         `json:"village_name"`
	Symptoms     SymptomsRecord `json:"symptoms_json"`
	GeoPoint     string         `json:"geo_point"`
	CreatedAt    time.Time      `json:"created_at"`
	IsProcessed  bool           `json:"is_processed"`
}

// SymptomsRecord is the free-form symptom payload attached to a report.
type SymptomsRecord struct {
	PatientName string          `json:"patientName,omitempty"`
	Symptoms    map[string]bool `json:"symptoms"`
	AgeGroup    string          `json:"ageGroup,omitempty"`
	Severity    string          `json:"severity,omitempty"`
	WaterSource string          `json:"waterSource,omitempty"`
	SubmittedBy string          `json:"submitted_by,omitempty"`
}

// ReportedSymptoms returns the names of symptoms flagged true.
func (s SymptomsRecord) ReportedSymptoms() []string {
	out := make([]string, 0, len(s.Symptoms))
	for name, present := range s.Symptoms {
		if present {
			out = append(out, name)
		}
	}
	return out
}

// Stats is an opaque dashboard statistics object; its shape differs between
// the district and state dashboards.
type Stats map[string]any

// Alert is a district-level alert such as an outbreak or a water quality
// warning.
type Alert struct {
	ID           int       `json:"id"`
	District     int       `json:"district"`
	DistrictName string    `json:"district_name"`
	AlertType    string    `json:"alert_type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// RiskScore is the latest computed outbreak risk of a district.
type RiskScore struct {
	ID             int       `json:"id"`
	District       int       `json:"district"`
	DistrictName   string    `json:"district_name"`
	ScoreValue     float64   `json:"score_value"`
	Classification string    `json:"classification"`
	CreatedAt      time.Time `json:"created_at"`
}
