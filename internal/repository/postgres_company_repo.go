package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/jobport/internal/model"
)

// pqUniqueViolation はPostgreSQLの一意制約違反のエラーコード。
const pqUniqueViolation = "23505"

// PostgresCompanyRepo はPostgreSQLを使用した企業リポジトリ。
type PostgresCompanyRepo struct {
	db *sql.DB
}

// NewPostgresCompanyRepo はPostgresCompanyRepoを生成する。
func NewPostgresCompanyRepo(db *sql.DB) *PostgresCompanyRepo {
	return &PostgresCompanyRepo{db: db}
}

// FindByID は指定IDの企業を取得する。見つからない場合はnilを返す。
func (r *PostgresCompanyRepo) FindByID(ctx context.Context, id string) (*model.Company, error) {
	company := &model.Company{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, logo_url, created_at
		 FROM companies WHERE id = $1`,
		id,
	).Scan(&company.ID, &company.Name, &company.Email, &company.PasswordHash, &company.LogoURL, &company.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find company by ID: %w", err)
	}

	return company, nil
}

// FindByEmail はメールアドレスで企業を検索する。見つからない場合はnilを返す。
func (r *PostgresCompanyRepo) FindByEmail(ctx context.Context, email string) (*model.Company, error) {
	company := &model.Company{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, logo_url, created_at
		 FROM companies WHERE email = $1`,
		email,
	).Scan(&company.ID, &company.Name, &company.Email, &company.PasswordHash, &company.LogoURL, &company.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find company by email: %w", err)
	}

	return company, nil
}

// Create は企業を作成する。
// メールアドレスの一意制約違反の場合はErrDuplicateを返す。
func (r *PostgresCompanyRepo) Create(ctx context.Context, company *model.Company) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, email, password_hash, logo_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		company.ID, company.Name, company.Email, company.PasswordHash, company.LogoURL, company.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert company: %w", err)
	}
	return nil
}

// compile-time interface check
var _ CompanyRepository = (*PostgresCompanyRepo)(nil)
