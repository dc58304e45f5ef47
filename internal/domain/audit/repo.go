package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists audit entries.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	ListByIntake(ctx context.Context, intakeID uuid.UUID) ([]*Entry, error)
}
