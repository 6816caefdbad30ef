package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/citraoverseas/placement/pkg/models"
)

func (r *SQLiteRepo) CreateNote(ctx context.Context, n *models.ApplicationNote) error {
	if n == nil {
		return fmt.Errorf("note is required")
	}
	if n.ApplicationID == "" || n.AdminID == "" || n.Note == "" {
		return fmt.Errorf("application id, admin id, and note text are required")
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.Created = now()
	_, err := r.conn.Exec(ctx, `INSERT INTO application_notes (id, application_id, admin_id, note, created) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.ApplicationID, n.AdminID, n.Note, n.Created)
	return err
}

func (r *SQLiteRepo) ListNotesByApplication(ctx context.Context, applicationID string) ([]models.ApplicationNote, error) {
	// left join: keep notes even when the author profile is gone
	rows, err := r.conn.QueryRows(ctx, `SELECT n.id, n.application_id, n.admin_id, n.note, n.created,
			COALESCE(p.full_name, ''), COALESCE(u.email, '')
		FROM application_notes n
		LEFT JOIN profiles p ON p.user_id = n.admin_id
		LEFT JOIN users u ON u.id = n.admin_id
		WHERE n.application_id = ?
		ORDER BY n.created DESC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ApplicationNote
	for rows.Next() {
		var n models.ApplicationNote
		if err := rows.Scan(&n.ID, &n.ApplicationID, &n.AdminID, &n.Note, &n.Created, &n.AdminName, &n.AdminEmail); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) DeleteNote(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM application_notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
