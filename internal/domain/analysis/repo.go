package analysis

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no analysis exists for the requested id.
var ErrNotFound = errors.New("analysis not found")

// Repository persists analysis results.
type Repository interface {
	Create(ctx context.Context, a *AIAnalysisResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*AIAnalysisResult, error)
	Update(ctx context.Context, a *AIAnalysisResult) error
	ListByIntake(ctx context.Context, intakeID uuid.UUID) ([]*AIAnalysisResult, error)
}
