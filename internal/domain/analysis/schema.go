package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaViolationError reports a document from the inference backend that
// does not conform to the output contract. The whole document is rejected;
// nothing is coerced or dropped.
type SchemaViolationError struct {
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation at %s: %s", e.Field, e.Reason)
}

func violation(field, reason string) error {
	return &SchemaViolationError{Field: field, Reason: reason}
}

var validRiskLevels = map[string]bool{
	RiskLow: true, RiskMedium: true, RiskHigh: true,
}

// EnforceSchema validates a raw inference response field by field and
// converts it into a trusted AIAnalysisResult. This is the only path by
// which model output enters the system; any missing field, wrong type, or
// out-of-enum value rejects the entire document.
func EnforceSchema(raw []byte) (*AIAnalysisResult, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, violation("(document)", "not a JSON object")
	}

	riskLevel, err := stringField(doc, "risk_level")
	if err != nil {
		return nil, err
	}
	if !validRiskLevels[riskLevel] {
		return nil, violation("risk_level", fmt.Sprintf("%q is not one of low, medium, high", riskLevel))
	}

	safetyScore, err := scoreField(doc, "safety_score")
	if err != nil {
		return nil, err
	}

	plan, err := objectField(doc, "treatment_plan")
	if err != nil {
		return nil, err
	}
	medications, err := stringListField(plan, "treatment_plan", "medications")
	if err != nil {
		return nil, err
	}
	lifestyleChanges, err := stringListField(plan, "treatment_plan", "lifestyle_changes")
	if err != nil {
		return nil, err
	}
	referrals, err := stringListField(plan, "treatment_plan", "referrals")
	if err != nil {
		return nil, err
	}

	issues, err := objectField(doc, "flagged_issues")
	if err != nil {
		return nil, err
	}
	drugInteractions, err := stringListField(issues, "flagged_issues", "drug_interactions")
	if err != nil {
		return nil, err
	}
	contraindications, err := stringListField(issues, "flagged_issues", "contraindications")
	if err != nil {
		return nil, err
	}
	warnings, err := stringListField(issues, "flagged_issues", "warnings")
	if err != nil {
		return nil, err
	}

	summary, err := stringField(doc, "summary")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(summary) == "" {
		return nil, violation("summary", "must not be empty")
	}

	citations, err := stringListField(doc, "", "citations")
	if err != nil {
		return nil, err
	}
	for i, c := range citations {
		if strings.TrimSpace(c) == "" {
			return nil, violation(fmt.Sprintf("citations[%d]", i), "must not be empty")
		}
	}

	return &AIAnalysisResult{
		RiskLevel:   riskLevel,
		SafetyScore: safetyScore,
		TreatmentPlan: TreatmentPlan{
			Medications:      medications,
			LifestyleChanges: lifestyleChanges,
			Referrals:        referrals,
		},
		FlaggedIssues: FlaggedIssues{
			DrugInteractions:  drugInteractions,
			Contraindications: contraindications,
			Warnings:          warnings,
		},
		Summary:   summary,
		Citations: citations,
		Status:    StatusPending,
	}, nil
}

func stringField(doc map[string]interface{}, field string) (string, error) {
	v, ok := doc[field]
	if !ok {
		return "", violation(field, "is missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", violation(field, "must be a string")
	}
	return s, nil
}

// scoreField accepts any JSON number with a zero fractional part in [0,100].
func scoreField(doc map[string]interface{}, field string) (int, error) {
	v, ok := doc[field]
	if !ok {
		return 0, violation(field, "is missing")
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, violation(field, "must be a number")
	}
	f, err := num.Float64()
	if err != nil {
		return 0, violation(field, "must be a number")
	}
	score := int(f)
	if float64(score) != f {
		return 0, violation(field, "must be an integer")
	}
	if score < 0 || score > 100 {
		return 0, violation(field, fmt.Sprintf("%d is outside the range 0-100", score))
	}
	return score, nil
}

func objectField(doc map[string]interface{}, field string) (map[string]interface{}, error) {
	v, ok := doc[field]
	if !ok {
		return nil, violation(field, "is missing")
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, violation(field, "must be an object")
	}
	return obj, nil
}

func stringListField(doc map[string]interface{}, prefix, field string) ([]string, error) {
	name := field
	if prefix != "" {
		name = prefix + "." + field
	}
	v, ok := doc[field]
	if !ok {
		return nil, violation(name, "is missing")
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, violation(name, "must be a list of strings")
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, violation(fmt.Sprintf("%s[%d]", name, i), "must be a string")
		}
		out = append(out, s)
	}
	return out, nil
}
