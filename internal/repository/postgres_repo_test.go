package repository

import (
	"testing"
)

// 各Postgres実装がインターフェースを満たすことを検証
func TestPostgresRepos_ImplementInterfaces(t *testing.T) {
	var _ CompanyRepository = (*PostgresCompanyRepo)(nil)
	var _ UserRepository = (*PostgresUserRepo)(nil)
	var _ JobRepository = (*PostgresJobRepo)(nil)
	var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
}

// コンストラクタが正しく初期化されることを検証
func TestNewPostgresRepos_Initialize(t *testing.T) {
	if NewPostgresCompanyRepo(nil) == nil {
		t.Error("expected non-nil company repo")
	}
	if NewPostgresUserRepo(nil) == nil {
		t.Error("expected non-nil user repo")
	}
	if NewPostgresJobRepo(nil) == nil {
		t.Error("expected non-nil job repo")
	}
	if NewPostgresApplicationRepo(nil) == nil {
		t.Error("expected non-nil application repo")
	}
}
