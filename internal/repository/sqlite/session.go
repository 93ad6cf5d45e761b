package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
)

func (r *SQLiteRepo) CreateSession(ctx context.Context, s *models.Session) error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO sessions (token, user_id, username, email, role, created, expires) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Token, s.UserID, s.Username, s.Email, s.Role, s.Created, s.Expires)
	return err
}

func (r *SQLiteRepo) GetSession(ctx context.Context, token string) (*models.Session, error) {
	row := r.conn.QueryRow(ctx, `SELECT token, user_id, username, email, role, created, expires FROM sessions WHERE token = ?`, token)
	var s models.Session
	if err := row.Scan(&s.Token, &s.UserID, &s.Username, &s.Email, &s.Role, &s.Created, &s.Expires); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}

func (r *SQLiteRepo) DeleteSession(ctx context.Context, token string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func (r *SQLiteRepo) DeleteExpiredSessions(ctx context.Context, cutoff int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM sessions WHERE expires <= ?`, cutoff)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
