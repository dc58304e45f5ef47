package analysis

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

const analysisCols = `id, intake_id, risk_level, safety_score, treatment_plan, flagged_issues,
	summary, citations, status, rejection_reason, created_at, updated_at`

func scanAnalysis(row pgx.Row) (*AIAnalysisResult, error) {
	var a AIAnalysisResult
	var plan, issues, citations []byte
	err := row.Scan(&a.ID, &a.IntakeID, &a.RiskLevel, &a.SafetyScore, &plan, &issues,
		&a.Summary, &citations, &a.Status, &a.RejectionReason, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(plan, &a.TreatmentPlan); err != nil {
		return nil, fmt.Errorf("decode treatment_plan: %w", err)
	}
	if err := json.Unmarshal(issues, &a.FlaggedIssues); err != nil {
		return nil, fmt.Errorf("decode flagged_issues: %w", err)
	}
	if err := json.Unmarshal(citations, &a.Citations); err != nil {
		return nil, fmt.Errorf("decode citations: %w", err)
	}
	return &a, nil
}

func encodeJSONB(a *AIAnalysisResult) (plan, issues, citations []byte, err error) {
	if plan, err = json.Marshal(a.TreatmentPlan); err != nil {
		return nil, nil, nil, fmt.Errorf("encode treatment_plan: %w", err)
	}
	if issues, err = json.Marshal(a.FlaggedIssues); err != nil {
		return nil, nil, nil, fmt.Errorf("encode flagged_issues: %w", err)
	}
	if a.Citations == nil {
		a.Citations = []string{}
	}
	if citations, err = json.Marshal(a.Citations); err != nil {
		return nil, nil, nil, fmt.Errorf("encode citations: %w", err)
	}
	return plan, issues, citations, nil
}

func (r *repoPG) Create(ctx context.Context, a *AIAnalysisResult) error {
	a.ID = uuid.New()
	plan, issues, citations, err := encodeJSONB(a)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO ai_analysis_results (id, intake_id, risk_level, safety_score,
			treatment_plan, flagged_issues, summary, citations, status, rejection_reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		a.ID, a.IntakeID, a.RiskLevel, a.SafetyScore, plan, issues,
		a.Summary, citations, a.Status, a.RejectionReason).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*AIAnalysisResult, error) {
	a, err := scanAnalysis(r.pool.QueryRow(ctx,
		`SELECT `+analysisCols+` FROM ai_analysis_results WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *repoPG) Update(ctx context.Context, a *AIAnalysisResult) error {
	plan, issues, citations, err := encodeJSONB(a)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx, `
		UPDATE ai_analysis_results
		SET risk_level=$2, safety_score=$3, treatment_plan=$4, flagged_issues=$5,
			summary=$6, citations=$7, status=$8, rejection_reason=$9, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		a.ID, a.RiskLevel, a.SafetyScore, plan, issues,
		a.Summary, citations, a.Status, a.RejectionReason).
		Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *repoPG) ListByIntake(ctx context.Context, intakeID uuid.UUID) ([]*AIAnalysisResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+analysisCols+` FROM ai_analysis_results
		WHERE intake_id = $1
		ORDER BY created_at DESC`, intakeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*AIAnalysisResult
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
