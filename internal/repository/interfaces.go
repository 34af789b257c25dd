// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/jobport/internal/model"
)

// ErrDuplicate は一意制約違反を表す。
// 企業メールアドレスの重複登録などで各リポジトリ実装が返す。
var ErrDuplicate = errors.New("duplicate key")

// CompanyRepository は企業アカウントの永続化インターフェース。
type CompanyRepository interface {
	// FindByID は指定IDの企業を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Company, error)

	// FindByEmail はメールアドレスで企業を検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Company, error)

	// Create は企業を作成する。
	// メールアドレスの一意制約違反の場合はErrDuplicateを返す。
	Create(ctx context.Context, company *model.Company) error
}

// UserRepository は求職者データの永続化インターフェース。
// レコードのライフサイクルは外部IDプロバイダのWebhookイベントで駆動される。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Upsert はユーザーを冪等に作成または更新する。
	// Webhookイベントの順序保証がないため、createとupdateの両方でupsertする。
	Upsert(ctx context.Context, user *model.User) error

	// UpdateResumeURL はユーザーの履歴書URLを更新する。
	UpdateResumeURL(ctx context.Context, id, resumeURL string) error

	// DeleteByID は指定IDのユーザーを削除する。存在しない場合もエラーにしない（冪等）。
	DeleteByID(ctx context.Context, id string) error
}

// JobRepository は求人データの永続化インターフェース。
type JobRepository interface {
	// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Job, error)

	// Create は求人を作成する。
	Create(ctx context.Context, job *model.Job) error

	// ListByCompanyWithApplicants は企業の全求人を応募者数付きで返す。
	// N+1を避けるため応募数はGROUP BYした単一クエリでJOINする。
	ListByCompanyWithApplicants(ctx context.Context, companyID string) ([]model.JobWithApplicants, error)

	// ListVisible は公開中の求人を企業サマリ付きで返す。掲載日時の降順。
	ListVisible(ctx context.Context) ([]model.JobWithCompany, error)

	// SetVisibility は求人の公開フラグを更新する。
	SetVisibility(ctx context.Context, jobID string, visible bool) error
}

// ApplicationRepository は応募データの永続化インターフェース。
type ApplicationRepository interface {
	// Insert は応募を作成する。
	// (job_id, user_id)が既に存在する場合は挿入せずfalseを返す。
	// 挿入判定はON CONFLICT DO NOTHINGによる単一の原子的操作で行う。
	Insert(ctx context.Context, app *model.JobApplication) (bool, error)

	// FindByID は指定IDの応募を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.JobApplication, error)

	// ListByUser はユーザーの応募一覧を求人・企業サマリ付きで返す。応募日時の降順。
	ListByUser(ctx context.Context, userID string) ([]model.ApplicationForUser, error)

	// ListByCompany は企業の受領応募一覧を求人・応募者サマリ付きで返す。応募日時の降順。
	ListByCompany(ctx context.Context, companyID string) ([]model.ApplicationForCompany, error)

	// UpdateStatus は応募のステータスを更新する。
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error
}
