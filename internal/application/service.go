// Package application は応募のドメインロジックを提供する。
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/jobport/internal/model"
	"github.com/hitoshi/jobport/internal/repository"
)

// MetricsRecorder はドメインイベントのメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordApplicationSubmitted()
}

// Service は応募のサービス層。
// 応募・一覧・ステータス変更のビジネスロジックを提供する。
type Service struct {
	apps    repository.ApplicationRepository
	jobs    repository.JobRepository
	metrics MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnil可。
func NewService(apps repository.ApplicationRepository, jobs repository.JobRepository, metrics MetricsRecorder) *Service {
	return &Service{
		apps:    apps,
		jobs:    jobs,
		metrics: metrics,
	}
}

// Apply は認証済みユーザーの応募を作成する。
// 同一求人への重複応募はストレージ層の一意制約により原子的に拒否される。
// 重複チェックと挿入を分離すると並行リクエストで二重応募が成立しうるため、
// 挿入の成否のみで判定する。
func (s *Service) Apply(ctx context.Context, userID, jobID string) (*model.JobApplication, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if job == nil {
		return nil, model.NewJobNotFoundError()
	}

	app := &model.JobApplication{
		ID:        uuid.NewString(),
		CompanyID: job.CompanyID,
		JobID:     jobID,
		UserID:    userID,
		Status:    model.StatusPending,
		AppliedAt: time.Now(),
	}

	inserted, err := s.apps.Insert(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}
	if !inserted {
		return nil, model.NewAlreadyAppliedError()
	}

	if s.metrics != nil {
		s.metrics.RecordApplicationSubmitted()
	}

	slog.Info("application submitted",
		slog.String("application_id", app.ID),
		slog.String("job_id", jobID),
	)

	return app, nil
}

// ListForUser はユーザーの応募一覧を求人・企業サマリ付きで返す。
func (s *Service) ListForUser(ctx context.Context, userID string) ([]model.ApplicationForUser, error) {
	apps, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user applications: %w", err)
	}
	return apps, nil
}

// ListForCompany は企業の受領応募一覧を求人・応募者サマリ付きで返す。
func (s *Service) ListForCompany(ctx context.Context, companyID string) ([]model.ApplicationForCompany, error) {
	apps, err := s.apps.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company applications: %w", err)
	}
	return apps, nil
}

// SetStatus は応募のステータスを変更する。
// 遷移は Pending→Accepted / Pending→Rejected のみ許可し、
// 終端状態からの変更と応募を受領していない企業からの変更は拒否する。
func (s *Service) SetStatus(ctx context.Context, companyID, applicationID string, status model.ApplicationStatus) error {
	if !status.IsValid() || status == model.StatusPending {
		return model.NewInvalidStatusError(string(status))
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("failed to find application: %w", err)
	}
	if app == nil {
		return model.NewApplicationNotFoundError()
	}
	if app.CompanyID != companyID {
		return model.NewNotJobOwnerError()
	}
	if !app.Status.CanTransitionTo(status) {
		return model.NewStatusFinalError(app.Status)
	}

	if err := s.apps.UpdateStatus(ctx, applicationID, status); err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	slog.Info("application status changed",
		slog.String("application_id", applicationID),
		slog.String("status", string(status)),
	)

	return nil
}
