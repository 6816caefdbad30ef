package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"

	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

// documentsSchema validates the document-metadata JSON stored on a profile
// row. Malformed shapes are rejected at the store boundary instead of being
// trusted at use sites.
const documentsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name", "type", "path", "uploaded_at"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"type": {"type": "string", "minLength": 1},
			"path": {"type": "string", "minLength": 1},
			"uploaded_at": {"type": "integer"}
		}
	}
}`

var compiledDocumentsSchema = mustSchema(documentsSchema)

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("compile documents schema: %v", err))
	}
	return rs
}

func validateDocuments(ctx context.Context, raw []byte) error {
	errs, err := compiledDocumentsSchema.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("validate documents: %w", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid documents: %s", errs[0].Error())
	}
	return nil
}

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil || p.UserID == "" {
		return fmt.Errorf("profile user id is required")
	}
	langs, err := json.Marshal(emptyIfNil(p.Languages))
	if err != nil {
		return fmt.Errorf("marshal languages: %w", err)
	}
	docs, err := marshalDocuments(ctx, p.Documents)
	if err != nil {
		return err
	}
	ts := now()
	p.Created, p.Updated = ts, ts
	_, err = r.conn.Exec(ctx, `INSERT INTO profiles (user_id, full_name, phone, target_country, education_level, experience_years, languages, documents, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.FullName, p.Phone, p.TargetCountry, p.EducationLevel, p.ExperienceYears, string(langs), string(docs), p.Created, p.Updated)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *SQLiteRepo) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx, `SELECT user_id, full_name, phone, target_country, education_level, experience_years, languages, documents, created, updated
		FROM profiles WHERE user_id = ?`, userID)
	p, err := scanProfile(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil || p.UserID == "" {
		return fmt.Errorf("profile user id is required")
	}
	langs, err := json.Marshal(emptyIfNil(p.Languages))
	if err != nil {
		return fmt.Errorf("marshal languages: %w", err)
	}
	res, err := r.conn.Exec(ctx, `UPDATE profiles SET full_name = ?, phone = ?, target_country = ?, education_level = ?, experience_years = ?, languages = ?, updated = ?
		WHERE user_id = ?`,
		p.FullName, p.Phone, p.TargetCountry, p.EducationLevel, p.ExperienceYears, string(langs), now(), p.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepo) UpdateDocuments(ctx context.Context, userID string, docs []models.Document) error {
	raw, err := marshalDocuments(ctx, docs)
	if err != nil {
		return err
	}
	res, err := r.conn.Exec(ctx, `UPDATE profiles SET documents = ?, updated = ? WHERE user_id = ?`, string(raw), now(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepo) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT user_id, full_name, phone, target_country, education_level, experience_years, languages, documents, created, updated
		FROM profiles ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func marshalDocuments(ctx context.Context, docs []models.Document) ([]byte, error) {
	if docs == nil {
		docs = []models.Document{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}
	if err := validateDocuments(ctx, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func scanProfile(scan func(...any) error) (*models.Profile, error) {
	var (
		p     models.Profile
		langs string
		docs  string
		exp   sql.NullInt64
	)
	if err := scan(&p.UserID, &p.FullName, &p.Phone, &p.TargetCountry, &p.EducationLevel, &exp, &langs, &docs, &p.Created, &p.Updated); err != nil {
		return nil, err
	}
	if exp.Valid {
		v := int(exp.Int64)
		p.ExperienceYears = &v
	}
	if err := json.Unmarshal([]byte(langs), &p.Languages); err != nil {
		// default malformed rows instead of failing the read
		p.Languages = nil
	}
	if err := json.Unmarshal([]byte(docs), &p.Documents); err != nil {
		p.Documents = nil
	}
	return &p, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
