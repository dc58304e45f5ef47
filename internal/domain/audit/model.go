// Package audit records reviewer actions in an append-only trail. Entries
// are keyed to the intake whose analysis was acted on, never mutated, and
// never deleted.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Reviewer actions.
const (
	ActionApproved = "approved"
	ActionRejected = "rejected"
	ActionEdited   = "edited"
)

// Entry is one immutable audit record.
type Entry struct {
	ID            uuid.UUID `db:"id" json:"id"`
	IntakeID      uuid.UUID `db:"intake_id" json:"intake_id"`
	Action        string    `db:"action" json:"action"`
	ReviewerName  string    `db:"reviewer_name" json:"reviewer_name"`
	ReviewerNotes *string   `db:"reviewer_notes" json:"reviewer_notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
