package intake

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no intake exists for the requested id.
var ErrNotFound = errors.New("intake not found")

// Repository persists patient intake records.
type Repository interface {
	Create(ctx context.Context, p *PatientIntake) error
	GetByID(ctx context.Context, id uuid.UUID) (*PatientIntake, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*PatientIntake, int, error)
}
