// Package job は求人のドメインロジックを提供する。
package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/jobport/internal/model"
	"github.com/hitoshi/jobport/internal/repository"
	"github.com/hitoshi/jobport/internal/security"
)

// MetricsRecorder はドメインイベントのメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordJobPosted()
}

// PostInput は求人掲載の入力。
type PostInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	Level       string
	Salary      int64
}

// Service は求人のサービス層。
// 掲載・一覧・公開切替のビジネスロジックを提供する。
type Service struct {
	repo      repository.JobRepository
	sanitizer security.DescriptionSanitizer
	metrics   MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnil可（テスト時など記録を省略する場合）。
func NewService(repo repository.JobRepository, sanitizer security.DescriptionSanitizer, metrics MetricsRecorder) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Post は認証済み企業の求人を新規掲載する。
// 説明文のHTMLは保存前にサニタイズし、公開状態で掲載する。
func (s *Service) Post(ctx context.Context, companyID string, input PostInput) (*model.Job, error) {
	if input.Title == "" || input.Description == "" || input.Location == "" ||
		input.Category == "" || input.Level == "" || input.Salary <= 0 {
		return nil, model.NewValidationError("Please fill all the fields")
	}

	job := &model.Job{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: s.sanitizer.Sanitize(input.Description),
		Location:    input.Location,
		Category:    input.Category,
		Level:       input.Level,
		Salary:      input.Salary,
		CompanyID:   companyID,
		Visible:     true,
		PostedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordJobPosted()
	}

	slog.Info("job posted",
		slog.String("job_id", job.ID),
		slog.String("company_id", companyID),
	)

	return job, nil
}

// ListCompanyJobs は企業の全求人を応募者数付きで返す。非公開求人も含む。
func (s *Service) ListCompanyJobs(ctx context.Context, companyID string) ([]model.JobWithApplicants, error) {
	jobs, err := s.repo.ListByCompanyWithApplicants(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}
	return jobs, nil
}

// ListVisible は公開中の全求人を企業サマリ付きで返す。認証不要。
func (s *Service) ListVisible(ctx context.Context) ([]model.JobWithCompany, error) {
	jobs, err := s.repo.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list visible jobs: %w", err)
	}
	return jobs, nil
}

// GetVisible は公開中の求人を1件取得する。
// 存在しない場合と非公開の場合は区別せずJobNotFoundを返す。
func (s *Service) GetVisible(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if job == nil || !job.Visible {
		return nil, model.NewJobNotFoundError()
	}
	return job, nil
}

// ToggleVisibility は求人の公開フラグを反転する。
// 所有企業以外からの呼び出しは拒否する。
func (s *Service) ToggleVisibility(ctx context.Context, companyID, jobID string) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if job == nil {
		return nil, model.NewJobNotFoundError()
	}
	if job.CompanyID != companyID {
		return nil, model.NewNotJobOwnerError()
	}

	if err := s.repo.SetVisibility(ctx, jobID, !job.Visible); err != nil {
		return nil, fmt.Errorf("failed to update visibility: %w", err)
	}

	job.Visible = !job.Visible
	return job, nil
}
