// Package intake holds the patient intake record: the structured
// self-reported data a patient submits for preliminary analysis. Records are
// validated on submission and immutable afterwards.
package intake

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Lifestyle is the self-reported lifestyle sub-record.
type Lifestyle struct {
	Exercise   string  `json:"exercise"`
	SleepHours float64 `json:"sleep_hours"`
	Smoking    bool    `json:"smoking"`
	Alcohol    string  `json:"alcohol"`
}

// MedicalHistory lists known conditions and allergies. Duplicates are
// permitted; entries are kept exactly as submitted.
type MedicalHistory struct {
	Conditions []string `json:"conditions"`
	Allergies  []string `json:"allergies"`
}

// Medication is one entry of the current medication list.
type Medication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	Route     string `json:"route"`
}

// PatientIntake is the intake record as persisted. Created once at
// submission; there is no update path.
type PatientIntake struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	UserID           string         `db:"user_id" json:"user_id"`
	Name             string         `db:"name" json:"name"`
	Age              int            `db:"age" json:"age"`
	Sex              string         `db:"sex" json:"sex"`
	HeightCM         float64        `db:"height_cm" json:"height_cm"`
	WeightKG         float64        `db:"weight_kg" json:"weight_kg"`
	BloodPressure    string         `db:"blood_pressure" json:"blood_pressure"`
	Lifestyle        Lifestyle      `db:"lifestyle" json:"lifestyle"`
	MedicalHistory   MedicalHistory `db:"medical_history" json:"medical_history"`
	Medications      []Medication   `db:"medications" json:"medications"`
	PrimaryComplaint string         `db:"primary_complaint" json:"primary_complaint"`
	IntakeDate       time.Time      `db:"intake_date" json:"intake_date"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// BMI derives body mass index from height and weight, rounded to one decimal
// place. It is only defined when both measurements are positive; the second
// return value reports availability. Never stored.
func (p *PatientIntake) BMI() (float64, bool) {
	if p.HeightCM <= 0 || p.WeightKG <= 0 {
		return 0, false
	}
	meters := p.HeightCM / 100
	bmi := p.WeightKG / (meters * meters)
	return math.Round(bmi*10) / 10, true
}
