package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/jobport/internal/model"
)

// PostgresApplicationRepo はPostgreSQLを使用した応募リポジトリ。
type PostgresApplicationRepo struct {
	db *sql.DB
}

// NewPostgresApplicationRepo はPostgresApplicationRepoを生成する。
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: db}
}

// Insert は応募を作成する。
// (job_id, user_id)が既に存在する場合は挿入せずfalseを返す。
// check-then-insertではなくON CONFLICT DO NOTHINGの単一文で行うため、
// 同一ペアの並行applyが同時に通過しても一意性は破れない。
func (r *PostgresApplicationRepo) Insert(ctx context.Context, app *model.JobApplication) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO job_applications (id, company_id, job_id, user_id, status, applied_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (job_id, user_id) DO NOTHING`,
		app.ID, app.CompanyID, app.JobID, app.UserID, app.Status, app.AppliedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert application: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// FindByID は指定IDの応募を取得する。見つからない場合はnilを返す。
func (r *PostgresApplicationRepo) FindByID(ctx context.Context, id string) (*model.JobApplication, error) {
	app := &model.JobApplication{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, job_id, user_id, status, applied_at
		 FROM job_applications WHERE id = $1`,
		id,
	).Scan(&app.ID, &app.CompanyID, &app.JobID, &app.UserID, &app.Status, &app.AppliedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application by ID: %w", err)
	}

	return app, nil
}

// ListByUser はユーザーの応募一覧を求人・企業サマリ付きで返す。応募日時の降順。
func (r *PostgresApplicationRepo) ListByUser(ctx context.Context, userID string) ([]model.ApplicationForUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.company_id, a.job_id, a.user_id, a.status, a.applied_at,
		        c.name, c.logo_url, j.title, j.location, j.level, j.salary
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN companies c ON c.id = a.company_id
		 WHERE a.user_id = $1
		 ORDER BY a.applied_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user applications: %w", err)
	}
	defer rows.Close()

	var apps []model.ApplicationForUser
	for rows.Next() {
		var a model.ApplicationForUser
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.JobID, &a.UserID, &a.Status, &a.AppliedAt,
			&a.CompanyName, &a.CompanyLogoURL, &a.JobTitle, &a.JobLocation, &a.JobLevel, &a.JobSalary); err != nil {
			return nil, fmt.Errorf("failed to scan user application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user application rows: %w", err)
	}
	return apps, nil
}

// ListByCompany は企業の受領応募一覧を求人・応募者サマリ付きで返す。応募日時の降順。
func (r *PostgresApplicationRepo) ListByCompany(ctx context.Context, companyID string) ([]model.ApplicationForCompany, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.company_id, a.job_id, a.user_id, a.status, a.applied_at,
		        u.name, u.avatar_url, u.resume_url, j.title, j.location, j.category, j.level, j.salary
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = a.user_id
		 WHERE a.company_id = $1
		 ORDER BY a.applied_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list company applications: %w", err)
	}
	defer rows.Close()

	var apps []model.ApplicationForCompany
	for rows.Next() {
		var a model.ApplicationForCompany
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.JobID, &a.UserID, &a.Status, &a.AppliedAt,
			&a.UserName, &a.UserAvatarURL, &a.UserResumeURL,
			&a.JobTitle, &a.JobLocation, &a.JobCategory, &a.JobLevel, &a.JobSalary); err != nil {
			return nil, fmt.Errorf("failed to scan company application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company application rows: %w", err)
	}
	return apps, nil
}

// UpdateStatus は応募のステータスを更新する。
func (r *PostgresApplicationRepo) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE job_applications SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
