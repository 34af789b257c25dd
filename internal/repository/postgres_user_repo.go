package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/jobport/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用した求職者リポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, avatar_url, resume_url, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.AvatarURL, &user.ResumeURL, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return user, nil
}

// Upsert はユーザーを冪等に作成または更新する。
// Webhookのcreate/updateイベントは順序保証がないため、どちらもupsertで処理する。
// emailが空のイベント（update）では既存のemailを維持する。
func (r *PostgresUserRepo) Upsert(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, avatar_url, resume_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 ON CONFLICT (id) DO UPDATE SET
		     name       = EXCLUDED.name,
		     email      = CASE WHEN EXCLUDED.email = '' THEN users.email ELSE EXCLUDED.email END,
		     avatar_url = EXCLUDED.avatar_url,
		     updated_at = EXCLUDED.updated_at`,
		user.ID, user.Name, user.Email, user.AvatarURL, user.ResumeURL, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// UpdateResumeURL はユーザーの履歴書URLを更新する。
func (r *PostgresUserRepo) UpdateResumeURL(ctx context.Context, id, resumeURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET resume_url = $2, updated_at = NOW() WHERE id = $1`,
		id, resumeURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume URL: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// DeleteByID は指定IDのユーザーを削除する。
// Webhookのdeleteイベントは再送されうるため、対象が存在しなくてもエラーにしない。
func (r *PostgresUserRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
