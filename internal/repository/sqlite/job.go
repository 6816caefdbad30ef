package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

const jobColumns = `id, title, country, category, description, requirements, salary_min, salary_max, min_experience, required_education, deadline, is_active, created`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is required")
	}
	if j.Title == "" {
		return fmt.Errorf("job title is required")
	}
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	j.Created = now()
	_, err := r.conn.Exec(ctx, `INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Title, j.Country, j.Category, j.Description, j.Requirements,
		j.SalaryMin, j.SalaryMax, j.MinExperience, j.RequiredEducation, j.Deadline,
		boolToInt(j.IsActive), j.Created)
	return err
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return j, nil
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil || j.ID == "" {
		return fmt.Errorf("job id is required")
	}
	res, err := r.conn.Exec(ctx, `UPDATE jobs SET title = ?, country = ?, category = ?, description = ?, requirements = ?, salary_min = ?, salary_max = ?, min_experience = ?, required_education = ?, deadline = ?, is_active = ? WHERE id = ?`,
		j.Title, j.Country, j.Category, j.Description, j.Requirements,
		j.SalaryMin, j.SalaryMax, j.MinExperience, j.RequiredEducation, j.Deadline,
		boolToInt(j.IsActive), j.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepo) SetJobActive(ctx context.Context, id string, active bool) error {
	res, err := r.conn.Exec(ctx, `UPDATE jobs SET is_active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepo) ListJobs(ctx context.Context, activeOnly bool) ([]models.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created DESC`
	if activeOnly {
		q = `SELECT ` + jobColumns + ` FROM jobs WHERE is_active = 1 ORDER BY created DESC`
	}
	rows, err := r.conn.QueryRows(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func scanJob(scan func(...any) error) (*models.Job, error) {
	var (
		j         models.Job
		salMin    sql.NullInt64
		salMax    sql.NullInt64
		minExp    sql.NullInt64
		education sql.NullString
		deadline  sql.NullString
		active    int
	)
	if err := scan(&j.ID, &j.Title, &j.Country, &j.Category, &j.Description, &j.Requirements,
		&salMin, &salMax, &minExp, &education, &deadline, &active, &j.Created); err != nil {
		return nil, err
	}
	if salMin.Valid {
		j.SalaryMin = &salMin.Int64
	}
	if salMax.Valid {
		j.SalaryMax = &salMax.Int64
	}
	if minExp.Valid {
		v := int(minExp.Int64)
		j.MinExperience = &v
	}
	if education.Valid {
		j.RequiredEducation = &education.String
	}
	if deadline.Valid {
		j.Deadline = &deadline.String
	}
	j.IsActive = active != 0
	return &j, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
