package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
)

const applicationColumns = `id, job_id, job_title, applicant_name, applicant_email, resume_file_path, user_id, applied_at`

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}

	appliedAt := a.AppliedAt
	if appliedAt == 0 {
		appliedAt = now()
	}

	var userID any
	if a.UserID != nil {
		userID = *a.UserID
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO job_applications (job_id, job_title, applicant_name, applicant_email, resume_file_path, user_id, applied_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.JobID, a.JobTitle, a.Name, a.Email, a.ResumePath, userID, appliedAt)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListAll(ctx context.Context) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM job_applications ORDER BY applied_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplications(rows)
}

func (r *SQLiteRepo) ListByOwner(ctx context.Context, userID int64, email string) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE user_id = ? OR applicant_email = ? ORDER BY applied_at DESC`, userID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplications(rows)
}

func scanApplications(rows *sql.Rows) ([]models.Application, error) {
	var out []models.Application
	for rows.Next() {
		var a models.Application
		var userID sql.NullInt64
		if err := rows.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.Name, &a.Email, &a.ResumePath, &userID, &a.AppliedAt); err != nil {
			return nil, err
		}

		if userID.Valid {
			v := userID.Int64
			a.UserID = &v
		}

		out = append(out, a)
	}

	return out, rows.Err()
}
