// Package company は企業アカウントのドメインロジックを提供する。
package company

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/jobport/internal/media"
	"github.com/hitoshi/jobport/internal/model"
	"github.com/hitoshi/jobport/internal/repository"
)

// TokenIssuer は企業セッショントークンの発行インターフェース。
type TokenIssuer interface {
	Issue(companyID string) (string, error)
}

// MetricsRecorder はドメインイベントのメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordCompanyRegistered()
}

// UploadedFile はマルチパートフォームで受信したファイル。
type UploadedFile struct {
	Content     io.Reader
	ContentType string
}

// RegisterInput は企業登録の入力。
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Logo     *UploadedFile
}

// AuthResult は登録・ログイン成功時の戻り値。
type AuthResult struct {
	Company model.CompanyView
	Token   string
}

// Service は企業アカウントのサービス層。
// 登録・ログイン・プロフィール取得のビジネスロジックを提供する。
type Service struct {
	repo     repository.CompanyRepository
	uploader media.Uploader
	tokens   TokenIssuer
	metrics  MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnil可（テスト時など記録を省略する場合）。
func NewService(repo repository.CompanyRepository, uploader media.Uploader, tokens TokenIssuer, metrics MetricsRecorder) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		tokens:   tokens,
		metrics:  metrics,
	}
}

// Register は企業アカウントを新規作成する。
// パスワードはbcryptでハッシュ化し、ロゴはメディアストレージへアップロードして
// 返された永続URLを保存する。成功時はセッショントークンを発行する。
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Logo == nil {
		return nil, model.NewValidationError("Please fill all the fields")
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing company: %w", err)
	}
	if existing != nil {
		return nil, model.NewCompanyExistsError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	logoURL, err := s.uploader.Upload(ctx, media.StorageKey("logos"), input.Logo.ContentType, input.Logo.Content)
	if err != nil {
		slog.Error("logo upload failed", slog.String("error", err.Error()))
		return nil, model.NewUploadFailedError()
	}

	company := &model.Company{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		LogoURL:      logoURL,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, company); err != nil {
		// 事前チェックとINSERTの間に同一メールで登録された場合も重複として扱う
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewCompanyExistsError()
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	token, err := s.tokens.Issue(company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue company token: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordCompanyRegistered()
	}

	slog.Info("company registered",
		slog.String("company_id", company.ID),
	)

	return &AuthResult{
		Company: company.PublicView(),
		Token:   token,
	}, nil
}

// Login はメールアドレスとパスワードで企業を認証する。
// 成功時は新しいセッショントークンを発行する。トークンはサーバー側に
// 保存されない（ステートレス検証）。
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	company, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if company == nil {
		return nil, model.NewCompanyNotFoundError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewIncorrectPasswordError()
	}

	token, err := s.tokens.Issue(company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue company token: %w", err)
	}

	return &AuthResult{
		Company: company.PublicView(),
		Token:   token,
	}, nil
}
