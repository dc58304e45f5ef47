package analysis

import (
	"errors"
	"strings"
)

// ErrReviewFinalized is returned when a review action targets an analysis
// already approved or rejected. Terminal states cannot be left.
var ErrReviewFinalized = errors.New("analysis review is finalized")

// Review input failures.
var (
	ErrReviewerRequired        = errors.New("reviewer_name is required")
	ErrRejectionReasonRequired = errors.New("rejection_reason is required")
)

// ApproveCommand approves a pending analysis.
type ApproveCommand struct {
	ReviewerName  string  `json:"reviewer_name"`
	ReviewerNotes *string `json:"reviewer_notes,omitempty"`
}

// RejectCommand rejects a pending analysis with a mandatory reason.
type RejectCommand struct {
	ReviewerName    string `json:"reviewer_name"`
	RejectionReason string `json:"rejection_reason"`
}

// TreatmentPlanPatch replaces individual treatment plan lists wholesale. A
// nil list is left untouched; an empty non-nil list clears the category.
type TreatmentPlanPatch struct {
	Medications      *[]string `json:"medications,omitempty"`
	LifestyleChanges *[]string `json:"lifestyle_changes,omitempty"`
	Referrals        *[]string `json:"referrals,omitempty"`
}

// EditCommand updates the treatment plan of a pending analysis without
// changing its review state.
type EditCommand struct {
	ReviewerName string             `json:"reviewer_name"`
	Plan         TreatmentPlanPatch `json:"treatment_plan"`
}

func (a *AIAnalysisResult) ensurePending() error {
	if a.Status != StatusPending {
		return ErrReviewFinalized
	}
	return nil
}

// ApplyApprove transitions pending -> approved.
func (a *AIAnalysisResult) ApplyApprove(cmd ApproveCommand) error {
	if err := a.ensurePending(); err != nil {
		return err
	}
	if strings.TrimSpace(cmd.ReviewerName) == "" {
		return ErrReviewerRequired
	}
	a.Status = StatusApproved
	return nil
}

// ApplyReject transitions pending -> rejected. The reason is mandatory and
// stored on the record.
func (a *AIAnalysisResult) ApplyReject(cmd RejectCommand) error {
	if err := a.ensurePending(); err != nil {
		return err
	}
	if strings.TrimSpace(cmd.ReviewerName) == "" {
		return ErrReviewerRequired
	}
	reason := strings.TrimSpace(cmd.RejectionReason)
	if reason == "" {
		return ErrRejectionReasonRequired
	}
	a.Status = StatusRejected
	a.RejectionReason = &reason
	return nil
}

// ApplyEdit replaces the submitted treatment plan lists. Status stays
// pending.
func (a *AIAnalysisResult) ApplyEdit(cmd EditCommand) error {
	if err := a.ensurePending(); err != nil {
		return err
	}
	if strings.TrimSpace(cmd.ReviewerName) == "" {
		return ErrReviewerRequired
	}
	if cmd.Plan.Medications != nil {
		a.TreatmentPlan.Medications = *cmd.Plan.Medications
	}
	if cmd.Plan.LifestyleChanges != nil {
		a.TreatmentPlan.LifestyleChanges = *cmd.Plan.LifestyleChanges
	}
	if cmd.Plan.Referrals != nil {
		a.TreatmentPlan.Referrals = *cmd.Plan.Referrals
	}
	return nil
}
