// Package analysis holds the AI-generated analysis result, the schema
// enforcement that guards the boundary between the inference backend and the
// rest of the system, and the clinician review workflow.
package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Risk levels. Closed set; no other value is valid at any boundary.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Review states. pending is initial; approved and rejected are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// TreatmentPlan is the proposed plan, three categorized recommendation lists.
type TreatmentPlan struct {
	Medications      []string `json:"medications"`
	LifestyleChanges []string `json:"lifestyle_changes"`
	Referrals        []string `json:"referrals"`
}

// FlaggedIssues groups the safety concerns surfaced alongside the plan.
type FlaggedIssues struct {
	DrugInteractions  []string `json:"drug_interactions"`
	Contraindications []string `json:"contraindications"`
	Warnings          []string `json:"warnings"`
}

// AIAnalysisResult is a schema-enforced analysis bound to one intake. Created
// by the orchestrator with status pending; mutated only by review actions;
// never deleted.
type AIAnalysisResult struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	IntakeID        uuid.UUID     `db:"intake_id" json:"intake_id"`
	RiskLevel       string        `db:"risk_level" json:"risk_level"`
	SafetyScore     int           `db:"safety_score" json:"safety_score"`
	TreatmentPlan   TreatmentPlan `db:"treatment_plan" json:"treatment_plan"`
	FlaggedIssues   FlaggedIssues `db:"flagged_issues" json:"flagged_issues"`
	Summary         string        `db:"summary" json:"summary"`
	Citations       []string      `db:"citations" json:"citations"`
	Status          string        `db:"status" json:"status"`
	RejectionReason *string       `db:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}
