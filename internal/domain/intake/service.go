package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ValidationError carries the full set of field failures for a rejected
// submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("intake validation failed with %d field error(s)", len(e.Fields))
}

// AnalysisSummary is the compact view of one analysis shown on intake lists.
type AnalysisSummary struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	RiskLevel string    `json:"risk_level"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisSummarizer supplies analysis summaries for an intake. Implemented
// by the analysis service; declared here so this package stays independent
// of it.
type AnalysisSummarizer interface {
	SummariesForIntake(ctx context.Context, intakeID uuid.UUID) ([]AnalysisSummary, error)
}

// IntakeWithAnalyses is one row of the intake list endpoint.
type IntakeWithAnalyses struct {
	*PatientIntake
	Analyses []AnalysisSummary `json:"analyses"`
}

type Service struct {
	repo      Repository
	summaries AnalysisSummarizer
}

func NewService(repo Repository, summaries AnalysisSummarizer) *Service {
	return &Service{repo: repo, summaries: summaries}
}

// Submit validates and persists a new intake. On any rule failure nothing is
// persisted and a *ValidationError listing every failed field is returned.
func (s *Service) Submit(ctx context.Context, p *PatientIntake) error {
	if errs := Validate(p); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return s.repo.Create(ctx, p)
}

// Get fetches one intake owned by userID. Intakes belonging to other users
// are reported as not found rather than forbidden.
func (s *Service) Get(ctx context.Context, id uuid.UUID, userID string) (*PatientIntake, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotFound
	}
	return p, nil
}

// List returns the caller's intakes newest-first, each with summaries of its
// analyses.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*IntakeWithAnalyses, int, error) {
	intakes, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*IntakeWithAnalyses, 0, len(intakes))
	for _, p := range intakes {
		summaries, err := s.summaries.SummariesForIntake(ctx, p.ID)
		if err != nil {
			return nil, 0, err
		}
		if summaries == nil {
			summaries = []AnalysisSummary{}
		}
		items = append(items, &IntakeWithAnalyses{PatientIntake: p, Analyses: summaries})
	}
	return items, total, nil
}
