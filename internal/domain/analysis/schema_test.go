package analysis

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validDocument() map[string]interface{} {
	return map[string]interface{}{
		"risk_level":   "medium",
		"safety_score": 72,
		"treatment_plan": map[string]interface{}{
			"medications":       []string{"metformin 500mg"},
			"lifestyle_changes": []string{"reduce sodium intake"},
			"referrals":         []string{"endocrinology"},
		},
		"flagged_issues": map[string]interface{}{
			"drug_interactions": []string{},
			"contraindications": []string{},
			"warnings":          []string{"BMI above 30"},
		},
		"summary":   "Patient presents moderate metabolic risk.",
		"citations": []string{"https://pubmed.ncbi.nlm.nih.gov/12345"},
	}
}

func enforce(t *testing.T, doc map[string]interface{}) (*AIAnalysisResult, error) {
	t.Helper()
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal document: %v", err)
	}
	return EnforceSchema(raw)
}

func assertViolation(t *testing.T, err error, field string) {
	t.Helper()
	var sv *SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("expected *SchemaViolationError, got %v", err)
	}
	if sv.Field != field {
		t.Errorf("expected violation at %s, got %s (%s)", field, sv.Field, sv.Reason)
	}
}

func TestEnforceSchema_ValidDocument(t *testing.T) {
	result, err := enforce(t, validDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RiskLevel != RiskMedium {
		t.Errorf("expected risk_level medium, got %s", result.RiskLevel)
	}
	if result.SafetyScore != 72 {
		t.Errorf("expected safety_score 72, got %d", result.SafetyScore)
	}
	if result.Status != StatusPending {
		t.Errorf("enforced result must start pending, got %s", result.Status)
	}
	if len(result.TreatmentPlan.Medications) != 1 {
		t.Errorf("unexpected medications: %v", result.TreatmentPlan.Medications)
	}
	if len(result.FlaggedIssues.Warnings) != 1 {
		t.Errorf("unexpected warnings: %v", result.FlaggedIssues.Warnings)
	}
}

func TestEnforceSchema_MinimalDocument(t *testing.T) {
	doc := validDocument()
	doc["treatment_plan"] = map[string]interface{}{
		"medications":       []string{},
		"lifestyle_changes": []string{},
		"referrals":         []string{},
	}
	doc["flagged_issues"] = map[string]interface{}{
		"drug_interactions": []string{},
		"contraindications": []string{},
		"warnings":          []string{},
	}
	doc["citations"] = []string{}

	result, err := enforce(t, doc)
	if err != nil {
		t.Fatalf("minimal well-formed document must be accepted: %v", err)
	}
	if len(result.Citations) != 0 {
		t.Errorf("expected empty citations, got %v", result.Citations)
	}
}

func TestEnforceSchema_MissingRiskLevel(t *testing.T) {
	doc := validDocument()
	delete(doc, "risk_level")
	_, err := enforce(t, doc)
	assertViolation(t, err, "risk_level")
}

func TestEnforceSchema_UnknownRiskLevel(t *testing.T) {
	doc := validDocument()
	doc["risk_level"] = "extreme"
	_, err := enforce(t, doc)
	assertViolation(t, err, "risk_level")
}

func TestEnforceSchema_RiskLevelCaseSensitive(t *testing.T) {
	doc := validDocument()
	doc["risk_level"] = "Low"
	_, err := enforce(t, doc)
	assertViolation(t, err, "risk_level")
}

func TestEnforceSchema_SafetyScoreOutOfRange(t *testing.T) {
	for _, score := range []int{150, -1, 101} {
		doc := validDocument()
		doc["safety_score"] = score
		_, err := enforce(t, doc)
		assertViolation(t, err, "safety_score")
	}
}

func TestEnforceSchema_SafetyScoreBounds(t *testing.T) {
	for _, score := range []int{0, 100} {
		doc := validDocument()
		doc["safety_score"] = score
		if _, err := enforce(t, doc); err != nil {
			t.Errorf("score %d should be accepted: %v", score, err)
		}
	}
}

func TestEnforceSchema_SafetyScoreNonNumeric(t *testing.T) {
	doc := validDocument()
	doc["safety_score"] = "85"
	_, err := enforce(t, doc)
	assertViolation(t, err, "safety_score")
}

func TestEnforceSchema_SafetyScoreFractional(t *testing.T) {
	doc := validDocument()
	doc["safety_score"] = 72.5
	_, err := enforce(t, doc)
	assertViolation(t, err, "safety_score")
}

func TestEnforceSchema_SafetyScoreIntegralFloat(t *testing.T) {
	doc := validDocument()
	doc["safety_score"] = 72.0
	if _, err := enforce(t, doc); err != nil {
		t.Errorf("integral float should be accepted: %v", err)
	}
}

func TestEnforceSchema_MissingPlanList(t *testing.T) {
	doc := validDocument()
	doc["treatment_plan"] = map[string]interface{}{
		"medications":       []string{},
		"lifestyle_changes": []string{},
	}
	_, err := enforce(t, doc)
	assertViolation(t, err, "treatment_plan.referrals")
}

func TestEnforceSchema_PlanListWrongElementType(t *testing.T) {
	doc := validDocument()
	doc["treatment_plan"] = map[string]interface{}{
		"medications":       []interface{}{"metformin", 42},
		"lifestyle_changes": []string{},
		"referrals":         []string{},
	}
	_, err := enforce(t, doc)
	assertViolation(t, err, "treatment_plan.medications[1]")
}

func TestEnforceSchema_MissingFlaggedIssues(t *testing.T) {
	doc := validDocument()
	delete(doc, "flagged_issues")
	_, err := enforce(t, doc)
	assertViolation(t, err, "flagged_issues")
}

func TestEnforceSchema_EmptySummary(t *testing.T) {
	doc := validDocument()
	doc["summary"] = "   "
	_, err := enforce(t, doc)
	assertViolation(t, err, "summary")
}

func TestEnforceSchema_CitationsWrongType(t *testing.T) {
	doc := validDocument()
	doc["citations"] = "https://example.org"
	_, err := enforce(t, doc)
	assertViolation(t, err, "citations")
}

func TestEnforceSchema_EmptyCitationEntry(t *testing.T) {
	doc := validDocument()
	doc["citations"] = []string{"https://example.org", " "}
	_, err := enforce(t, doc)
	assertViolation(t, err, "citations[1]")
}

func TestEnforceSchema_NotAnObject(t *testing.T) {
	_, err := EnforceSchema([]byte(`"just a string"`))
	var sv *SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("expected *SchemaViolationError, got %v", err)
	}

	_, err = EnforceSchema([]byte(`{invalid json`))
	if !errors.As(err, &sv) {
		t.Fatalf("expected *SchemaViolationError for malformed JSON, got %v", err)
	}
}

func TestSchemaViolationError_Message(t *testing.T) {
	err := &SchemaViolationError{Field: "risk_level", Reason: "is missing"}
	if !strings.Contains(err.Error(), "risk_level") {
		t.Errorf("expected field in message, got %q", err.Error())
	}
}
