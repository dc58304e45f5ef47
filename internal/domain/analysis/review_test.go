package analysis

import (
	"errors"
	"testing"
)

func pendingAnalysis() *AIAnalysisResult {
	return &AIAnalysisResult{
		RiskLevel:   RiskMedium,
		SafetyScore: 70,
		TreatmentPlan: TreatmentPlan{
			Medications:      []string{"metformin"},
			LifestyleChanges: []string{"exercise"},
			Referrals:        []string{"endocrinology"},
		},
		Summary: "moderate risk",
		Status:  StatusPending,
	}
}

func TestApplyApprove(t *testing.T) {
	a := pendingAnalysis()
	if err := a.ApplyApprove(ApproveCommand{ReviewerName: "Dr. Lee"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusApproved {
		t.Errorf("expected approved, got %s", a.Status)
	}
}

func TestApplyApprove_RequiresReviewer(t *testing.T) {
	a := pendingAnalysis()
	err := a.ApplyApprove(ApproveCommand{ReviewerName: "  "})
	if !errors.Is(err, ErrReviewerRequired) {
		t.Fatalf("expected ErrReviewerRequired, got %v", err)
	}
	if a.Status != StatusPending {
		t.Error("state must not change on refused action")
	}
}

func TestApplyReject(t *testing.T) {
	a := pendingAnalysis()
	err := a.ApplyReject(RejectCommand{
		ReviewerName:    "Dr. Lee",
		RejectionReason: "patient allergic to proposed medication",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusRejected {
		t.Errorf("expected rejected, got %s", a.Status)
	}
	if a.RejectionReason == nil || *a.RejectionReason != "patient allergic to proposed medication" {
		t.Errorf("unexpected rejection reason: %v", a.RejectionReason)
	}
}

func TestApplyReject_RequiresReason(t *testing.T) {
	a := pendingAnalysis()
	err := a.ApplyReject(RejectCommand{ReviewerName: "Dr. Lee", RejectionReason: "   "})
	if !errors.Is(err, ErrRejectionReasonRequired) {
		t.Fatalf("expected ErrRejectionReasonRequired, got %v", err)
	}
	if a.Status != StatusPending {
		t.Error("state must remain pending when reject is refused")
	}
	if a.RejectionReason != nil {
		t.Error("rejection reason must not be set")
	}
}

func TestApplyEdit_ReplacesOnlySubmittedLists(t *testing.T) {
	a := pendingAnalysis()
	empty := []string{}
	err := a.ApplyEdit(EditCommand{
		ReviewerName: "Dr. Lee",
		Plan:         TreatmentPlanPatch{Medications: &empty},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.TreatmentPlan.Medications) != 0 {
		t.Errorf("medications should be cleared, got %v", a.TreatmentPlan.Medications)
	}
	if len(a.TreatmentPlan.LifestyleChanges) != 1 || len(a.TreatmentPlan.Referrals) != 1 {
		t.Error("omitted lists must be left untouched")
	}
	if a.Status != StatusPending {
		t.Errorf("edit must not change status, got %s", a.Status)
	}
}

func TestApplyEdit_WholesaleReplacement(t *testing.T) {
	a := pendingAnalysis()
	meds := []string{"lisinopril", "amlodipine"}
	refs := []string{"cardiology"}
	err := a.ApplyEdit(EditCommand{
		ReviewerName: "Dr. Lee",
		Plan:         TreatmentPlanPatch{Medications: &meds, Referrals: &refs},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.TreatmentPlan.Medications) != 2 {
		t.Errorf("expected replacement, got %v", a.TreatmentPlan.Medications)
	}
	if a.TreatmentPlan.Referrals[0] != "cardiology" {
		t.Errorf("expected cardiology referral, got %v", a.TreatmentPlan.Referrals)
	}
}

func TestTerminalStatesRefuseAllActions(t *testing.T) {
	for _, status := range []string{StatusApproved, StatusRejected} {
		a := pendingAnalysis()
		a.Status = status

		if err := a.ApplyApprove(ApproveCommand{ReviewerName: "Dr. Lee"}); !errors.Is(err, ErrReviewFinalized) {
			t.Errorf("%s: approve should be refused, got %v", status, err)
		}
		if err := a.ApplyReject(RejectCommand{ReviewerName: "Dr. Lee", RejectionReason: "x"}); !errors.Is(err, ErrReviewFinalized) {
			t.Errorf("%s: reject should be refused, got %v", status, err)
		}
		meds := []string{}
		if err := a.ApplyEdit(EditCommand{ReviewerName: "Dr. Lee", Plan: TreatmentPlanPatch{Medications: &meds}}); !errors.Is(err, ErrReviewFinalized) {
			t.Errorf("%s: edit should be refused, got %v", status, err)
		}
		if a.Status != status {
			t.Errorf("status must stay %s, got %s", status, a.Status)
		}
	}
}
