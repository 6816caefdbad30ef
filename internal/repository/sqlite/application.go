package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/citraoverseas/placement/internal/workflow"
	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	if a == nil {
		return fmt.Errorf("application is required")
	}
	if a.JobID == "" || a.UserID == "" {
		return fmt.Errorf("job id and user id are required")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = string(workflow.StatusSubmitted)
	}
	a.Created = now()
	_, err := r.conn.Exec(ctx, `INSERT INTO applications (id, job_id, user_id, status, match_score, created) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.JobID, a.UserID, a.Status, a.MatchScore, a.Created)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, job_id, user_id, status, match_score, created FROM applications WHERE id = ?`, id)
	var (
		a     models.Application
		score sql.NullInt64
	)
	if err := row.Scan(&a.ID, &a.JobID, &a.UserID, &a.Status, &score, &a.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if score.Valid {
		v := int(score.Int64)
		a.MatchScore = &v
	}
	return &a, nil
}

func (r *SQLiteRepo) ListApplicationsByUser(ctx context.Context, userID string) ([]models.ApplicationWithJob, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT a.id, a.job_id, a.user_id, a.status, a.match_score, a.created, j.title, j.country, j.category
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.user_id = ?
		ORDER BY a.created DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ApplicationWithJob
	for rows.Next() {
		var (
			a     models.ApplicationWithJob
			score sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.JobID, &a.UserID, &a.Status, &score, &a.Created, &a.JobTitle, &a.JobCountry, &a.JobCategory); err != nil {
			return nil, err
		}
		if score.Valid {
			v := int(score.Int64)
			a.MatchScore = &v
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) ListAppliedJobIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT job_id FROM applications WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	res, err := r.conn.Exec(ctx, `UPDATE applications SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepo) SetMatchScore(ctx context.Context, id string, score int) error {
	res, err := r.conn.Exec(ctx, `UPDATE applications SET match_score = ? WHERE id = ?`, score, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
