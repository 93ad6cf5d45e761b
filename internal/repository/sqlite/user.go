package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
)

func (r *SQLiteRepo) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, role FROM users WHERE username = ? OR email = ? LIMIT 1`, identifier, identifier)
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, role FROM users WHERE id = ?`, id)
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (username, email, password_hash, role) VALUES (?, ?, ?, ?)`, u.Username, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}
