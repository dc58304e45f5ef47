package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Append(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO audit_logs (id, intake_id, action, reviewer_name, reviewer_notes)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		e.ID, e.IntakeID, e.Action, e.ReviewerName, e.ReviewerNotes).
		Scan(&e.CreatedAt)
}

func (r *repoPG) ListByIntake(ctx context.Context, intakeID uuid.UUID) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, intake_id, action, reviewer_name, reviewer_notes, created_at
		FROM audit_logs
		WHERE intake_id = $1
		ORDER BY created_at ASC`, intakeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.IntakeID, &e.Action, &e.ReviewerName,
			&e.ReviewerNotes, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
