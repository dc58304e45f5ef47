package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const intakeCols = `id, user_id, name, age, sex, height_cm, weight_kg, blood_pressure,
	lifestyle, medical_history, medications, primary_complaint, intake_date, created_at`

func scanIntake(row pgx.Row) (*PatientIntake, error) {
	var p PatientIntake
	var lifestyle, history, medications []byte
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Age, &p.Sex, &p.HeightCM, &p.WeightKG,
		&p.BloodPressure, &lifestyle, &history, &medications, &p.PrimaryComplaint,
		&p.IntakeDate, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lifestyle, &p.Lifestyle); err != nil {
		return nil, fmt.Errorf("decode lifestyle: %w", err)
	}
	if err := json.Unmarshal(history, &p.MedicalHistory); err != nil {
		return nil, fmt.Errorf("decode medical_history: %w", err)
	}
	if err := json.Unmarshal(medications, &p.Medications); err != nil {
		return nil, fmt.Errorf("decode medications: %w", err)
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *PatientIntake) error {
	p.ID = uuid.New()

	lifestyle, err := json.Marshal(p.Lifestyle)
	if err != nil {
		return fmt.Errorf("encode lifestyle: %w", err)
	}
	history, err := json.Marshal(p.MedicalHistory)
	if err != nil {
		return fmt.Errorf("encode medical_history: %w", err)
	}
	medications, err := json.Marshal(p.Medications)
	if err != nil {
		return fmt.Errorf("encode medications: %w", err)
	}

	return r.pool.QueryRow(ctx, `
		INSERT INTO patient_intake (id, user_id, name, age, sex, height_cm, weight_kg,
			blood_pressure, lifestyle, medical_history, medications, primary_complaint)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING intake_date, created_at`,
		p.ID, p.UserID, p.Name, p.Age, p.Sex, p.HeightCM, p.WeightKG,
		p.BloodPressure, lifestyle, history, medications, p.PrimaryComplaint).
		Scan(&p.IntakeDate, &p.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*PatientIntake, error) {
	p, err := scanIntake(r.pool.QueryRow(ctx,
		`SELECT `+intakeCols+` FROM patient_intake WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*PatientIntake, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM patient_intake WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+intakeCols+` FROM patient_intake
		WHERE user_id = $1
		ORDER BY intake_date DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*PatientIntake
	for rows.Next() {
		p, err := scanIntake(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
