package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger appends audit entries best-effort. A failed append is logged and
// swallowed: the review decision is the system of record, the trail is not
// allowed to block it.
type Logger struct {
	repo Repository
	log  zerolog.Logger
}

func NewLogger(repo Repository, log zerolog.Logger) *Logger {
	return &Logger{repo: repo, log: log}
}

// Record appends one entry for a reviewer action. Never fails the caller.
func (l *Logger) Record(ctx context.Context, intakeID uuid.UUID, action, reviewerName string, notes *string) {
	e := &Entry{
		IntakeID:      intakeID,
		Action:        action,
		ReviewerName:  reviewerName,
		ReviewerNotes: notes,
	}
	if err := l.repo.Append(ctx, e); err != nil {
		l.log.Error().
			Err(err).
			Str("intake_id", intakeID.String()).
			Str("action", action).
			Str("reviewer_name", reviewerName).
			Msg("audit append failed")
	}
}

// Trail returns all entries for an intake, oldest first.
func (l *Logger) Trail(ctx context.Context, intakeID uuid.UUID) ([]*Entry, error) {
	return l.repo.ListByIntake(ctx, intakeID)
}
