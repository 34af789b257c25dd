package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/jobport/internal/model"
)

// PostgresJobRepo はPostgreSQLを使用した求人リポジトリ。
type PostgresJobRepo struct {
	db *sql.DB
}

// NewPostgresJobRepo はPostgresJobRepoを生成する。
func NewPostgresJobRepo(db *sql.DB) *PostgresJobRepo {
	return &PostgresJobRepo{db: db}
}

// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
func (r *PostgresJobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	job := &model.Job{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, location, category, level, salary, company_id, visible, posted_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Title, &job.Description, &job.Location, &job.Category, &job.Level,
		&job.Salary, &job.CompanyID, &job.Visible, &job.PostedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job by ID: %w", err)
	}

	return job, nil
}

// Create は求人を作成する。
func (r *PostgresJobRepo) Create(ctx context.Context, job *model.Job) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, description, location, category, level, salary, company_id, visible, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		job.ID, job.Title, job.Description, job.Location, job.Category, job.Level,
		job.Salary, job.CompanyID, job.Visible, job.PostedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// ListByCompanyWithApplicants は企業の全求人を応募者数付きで返す。
// 応募数は求人ごとのサブクエリではなくGROUP BYした単一クエリでまとめて取得する。
func (r *PostgresJobRepo) ListByCompanyWithApplicants(ctx context.Context, companyID string) ([]model.JobWithApplicants, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT j.id, j.title, j.description, j.location, j.category, j.level, j.salary,
		        j.company_id, j.visible, j.posted_at, COUNT(a.id) AS applicants
		 FROM jobs j
		 LEFT JOIN job_applications a ON a.job_id = j.id
		 WHERE j.company_id = $1
		 GROUP BY j.id
		 ORDER BY j.posted_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.JobWithApplicants
	for rows.Next() {
		var j model.JobWithApplicants
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Location, &j.Category, &j.Level,
			&j.Salary, &j.CompanyID, &j.Visible, &j.PostedAt, &j.Applicants); err != nil {
			return nil, fmt.Errorf("failed to scan company job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company job rows: %w", err)
	}
	return jobs, nil
}

// ListVisible は公開中の求人を企業サマリ付きで返す。掲載日時の降順。
func (r *PostgresJobRepo) ListVisible(ctx context.Context) ([]model.JobWithCompany, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT j.id, j.title, j.description, j.location, j.category, j.level, j.salary,
		        j.company_id, j.visible, j.posted_at, c.name, c.logo_url
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE j.visible
		 ORDER BY j.posted_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list visible jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.JobWithCompany
	for rows.Next() {
		var j model.JobWithCompany
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Location, &j.Category, &j.Level,
			&j.Salary, &j.CompanyID, &j.Visible, &j.PostedAt, &j.CompanyName, &j.CompanyLogoURL); err != nil {
			return nil, fmt.Errorf("failed to scan visible job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visible job rows: %w", err)
	}
	return jobs, nil
}

// SetVisibility は求人の公開フラグを更新する。
func (r *PostgresJobRepo) SetVisibility(ctx context.Context, jobID string, visible bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET visible = $2 WHERE id = $1`,
		jobID, visible,
	)
	if err != nil {
		return fmt.Errorf("failed to update job visibility: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}

// compile-time interface check
var _ JobRepository = (*PostgresJobRepo)(nil)
