package database

import (
	"fmt"
	"time"

	"github.com/gridsight/greenscore/internal/analysis"
	"github.com/gridsight/greenscore/internal/types"
)

// EvaluationRow is one persisted evaluation summary.
type EvaluationRow struct {
	ID             int64     `json:"id"`
	ProjectName    string    `json:"project_name,omitempty"`
	ProjectType    string    `json:"project_type"`
	Region         string    `json:"region"`
	CapacityMW     float64   `json:"capacity_mw"`
	MLScore        float64   `json:"ml_score"`
	Recommendation string    `json:"recommendation"`
	Confidence     float64   `json:"confidence"`
	CreatedAt      time.Time `json:"created_at"`
}

// Repository persists evaluation summaries. Saving happens after the response
// is written, so a failed insert never affects the caller.
type Repository struct {
	db *DB
}

// NewRepository creates a repository over an open DB
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveEvaluation records the summary of one completed evaluation
func (r *Repository) SaveEvaluation(rec types.ProjectRecord, result analysis.Result) error {
	stmt, err := r.db.GetPreparedStatement("insert_evaluation")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		rec.ProjectName,
		rec.ProjectType,
		rec.Region,
		rec.CapacityMW,
		result.MLScore,
		result.Recommendation.FundingRecommendation,
		result.Recommendation.Confidence,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}
	return nil
}

// RecentEvaluations returns the most recent evaluation summaries, newest
// first.
func (r *Repository) RecentEvaluations(limit int) ([]EvaluationRow, error) {
	if limit <= 0 {
		limit = 20
	}

	stmt, err := r.db.GetPreparedStatement("recent_evaluations")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	var out []EvaluationRow
	for rows.Next() {
		var row EvaluationRow
		if err := rows.Scan(
			&row.ID,
			&row.ProjectName,
			&row.ProjectType,
			&row.Region,
			&row.CapacityMW,
			&row.MLScore,
			&row.Recommendation,
			&row.Confidence,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
