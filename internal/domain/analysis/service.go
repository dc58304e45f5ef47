package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intake/intake/internal/domain/audit"
	"github.com/intake/intake/internal/domain/intake"
	"github.com/intake/intake/internal/platform/ai"
)

// Service orchestrates the analysis pipeline and the review workflow. It is
// the single point where untrusted inference output becomes a trusted
// internal entity.
type Service struct {
	repo     Repository
	intakes  intake.Repository
	analyzer ai.Analyzer
	auditor  *audit.Logger
	log      zerolog.Logger
}

func NewService(repo Repository, intakes intake.Repository, analyzer ai.Analyzer, auditor *audit.Logger, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		intakes:  intakes,
		analyzer: analyzer,
		auditor:  auditor,
		log:      log,
	}
}

// Analyze loads the intake, calls the inference backend, enforces the output
// schema, and persists the result with status pending. On schema violation
// nothing is persisted. Repeated calls for the same intake create
// independent result records.
func (s *Service) Analyze(ctx context.Context, intakeID uuid.UUID) (*AIAnalysisResult, error) {
	p, err := s.intakes.GetByID(ctx, intakeID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serialize intake: %w", err)
	}

	raw, err := s.analyzer.Analyze(ctx, payload)
	if err != nil {
		return nil, err
	}

	result, err := EnforceSchema(raw)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("intake_id", intakeID.String()).
			Msg("inference response rejected by schema enforcement")
		return nil, err
	}

	result.IntakeID = intakeID
	if err := s.repo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}
	return result, nil
}

// Get fetches one analysis by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*AIAnalysisResult, error) {
	return s.repo.GetByID(ctx, id)
}

// Approve transitions a pending analysis to approved and appends an audit
// entry. The audit append runs after the mutation and is best-effort.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, cmd ApproveCommand) (*AIAnalysisResult, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.ApplyApprove(cmd); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("persist approval: %w", err)
	}
	s.auditor.Record(ctx, a.IntakeID, audit.ActionApproved, cmd.ReviewerName, cmd.ReviewerNotes)
	return a, nil
}

// Reject transitions a pending analysis to rejected. The rejection reason is
// carried into the audit entry as reviewer notes.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, cmd RejectCommand) (*AIAnalysisResult, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.ApplyReject(cmd); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("persist rejection: %w", err)
	}
	s.auditor.Record(ctx, a.IntakeID, audit.ActionRejected, cmd.ReviewerName, a.RejectionReason)
	return a, nil
}

// Edit replaces the submitted treatment plan lists on a pending analysis.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, cmd EditCommand) (*AIAnalysisResult, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.ApplyEdit(cmd); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("persist edit: %w", err)
	}
	s.auditor.Record(ctx, a.IntakeID, audit.ActionEdited, cmd.ReviewerName, nil)
	return a, nil
}

// SummariesForIntake returns compact views of an intake's analyses, newest
// first. Satisfies intake.AnalysisSummarizer.
func (s *Service) SummariesForIntake(ctx context.Context, intakeID uuid.UUID) ([]intake.AnalysisSummary, error) {
	items, err := s.repo.ListByIntake(ctx, intakeID)
	if err != nil {
		return nil, err
	}
	summaries := make([]intake.AnalysisSummary, 0, len(items))
	for _, a := range items {
		summaries = append(summaries, intake.AnalysisSummary{
			ID:        a.ID,
			Status:    a.Status,
			RiskLevel: a.RiskLevel,
			CreatedAt: a.CreatedAt,
		})
	}
	return summaries, nil
}
