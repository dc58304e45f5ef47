package intake

import (
	"fmt"
	"strings"
)

// FieldError reports one failed validation rule, tagged with the offending
// field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validSexes = map[string]bool{
	"male": true, "female": true, "other": true,
}

var validComplaints = map[string]bool{
	"erectile_dysfunction": true,
	"hair_loss":            true,
	"weight_loss":          true,
	"fatigue":              true,
	"anxiety":              true,
	"depression":           true,
	"sleep_issues":         true,
	"other":                true,
}

// Validate checks every field-level and cross-field rule and returns all
// failures together; an empty slice means the intake is valid. Pure, no I/O.
func Validate(p *PatientIntake) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, FieldError{"name", "must not be empty"})
	}
	if p.Age < 0 || p.Age > 150 {
		errs = append(errs, FieldError{"age", "must be between 0 and 150"})
	}
	if !validSexes[p.Sex] {
		errs = append(errs, FieldError{"sex", "must be one of male, female, other"})
	}
	if p.HeightCM <= 0 {
		errs = append(errs, FieldError{"height_cm", "must be a positive number"})
	}
	if p.WeightKG <= 0 {
		errs = append(errs, FieldError{"weight_kg", "must be a positive number"})
	}
	if strings.TrimSpace(p.BloodPressure) == "" {
		errs = append(errs, FieldError{"blood_pressure", "must not be empty"})
	}
	if p.Lifestyle.SleepHours < 0 || p.Lifestyle.SleepHours > 24 {
		errs = append(errs, FieldError{"lifestyle.sleep_hours", "must be between 0 and 24"})
	}
	for i, c := range p.MedicalHistory.Conditions {
		if strings.TrimSpace(c) == "" {
			errs = append(errs, FieldError{
				fmt.Sprintf("medical_history.conditions[%d]", i), "must not be empty"})
		}
	}
	for i, a := range p.MedicalHistory.Allergies {
		if strings.TrimSpace(a) == "" {
			errs = append(errs, FieldError{
				fmt.Sprintf("medical_history.allergies[%d]", i), "must not be empty"})
		}
	}
	for i, m := range p.Medications {
		prefix := fmt.Sprintf("medications[%d]", i)
		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, FieldError{prefix + ".name", "must not be empty"})
		}
		if strings.TrimSpace(m.Dose) == "" {
			errs = append(errs, FieldError{prefix + ".dose", "must not be empty"})
		}
		if strings.TrimSpace(m.Frequency) == "" {
			errs = append(errs, FieldError{prefix + ".frequency", "must not be empty"})
		}
		if strings.TrimSpace(m.Route) == "" {
			errs = append(errs, FieldError{prefix + ".route", "must not be empty"})
		}
	}
	if !validComplaints[p.PrimaryComplaint] {
		errs = append(errs, FieldError{"primary_complaint", "is not a recognized complaint"})
	}

	return errs
}
