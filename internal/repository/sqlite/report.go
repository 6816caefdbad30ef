package sqlite

import (
	"context"
	"database/sql"

	"github.com/citraoverseas/placement/pkg/models"
)

func (r *SQLiteRepo) ApplicationStatusCounts(ctx context.Context) ([]models.StatusCount, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT status, COUNT(1) FROM applications GROUP BY status ORDER BY COUNT(1) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StatusCount
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) ApplicationScores(ctx context.Context) ([]int, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT match_score FROM applications`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var score sql.NullInt64
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		// missing scores count as zero, same as the ranker's degraded value
		out = append(out, int(score.Int64))
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) TopJobsByApplications(ctx context.Context, limit int) ([]models.JobApplicationCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.conn.QueryRows(ctx, `SELECT j.title, COUNT(1)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		GROUP BY a.job_id, j.title
		ORDER BY COUNT(1) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JobApplicationCount
	for rows.Next() {
		var c models.JobApplicationCount
		if err := rows.Scan(&c.JobTitle, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) ParticipantsByCountry(ctx context.Context) ([]models.CountryCount, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT target_country, COUNT(1) FROM profiles WHERE target_country != '' GROUP BY target_country ORDER BY COUNT(1) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CountryCount
	for rows.Next() {
		var c models.CountryCount
		if err := rows.Scan(&c.Country, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) JobsByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT category, COUNT(1) FROM jobs WHERE category != '' GROUP BY category ORDER BY COUNT(1) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CategoryCount
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) Overview(ctx context.Context) (*models.Overview, error) {
	var o models.Overview
	row := r.conn.QueryRow(ctx, `SELECT
		(SELECT COUNT(1) FROM users WHERE role = 'participant'),
		(SELECT COUNT(1) FROM jobs WHERE is_active = 1),
		(SELECT COUNT(1) FROM applications),
		(SELECT COUNT(1) FROM applications WHERE status IN ('accepted', 'deployed'))`)
	if err := row.Scan(&o.Participants, &o.ActiveJobs, &o.TotalApplications, &o.AcceptedOrDeployed); err != nil {
		return nil, err
	}
	return &o, nil
}
