// Package user は求職者アカウントのドメインロジックを提供する。
// アカウントの作成・削除は外部IDプロバイダのWebhookが駆動するため、
// このサービスは閲覧と履歴書の更新のみを扱う。
package user

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hitoshi/jobport/internal/media"
	"github.com/hitoshi/jobport/internal/model"
	"github.com/hitoshi/jobport/internal/repository"
)

// Service は求職者のサービス層。
type Service struct {
	repo     repository.UserRepository
	uploader media.Uploader
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.UserRepository, uploader media.Uploader) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
	}
}

// GetProfile は認証済みユーザーのプロフィールを返す。
// Webhookの同期遅延でレコードが未作成の場合はUserNotFoundを返す。
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// UpdateResume は履歴書ファイルをアップロードし、ユーザーのresume URLを差し替える。
func (s *Service) UpdateResume(ctx context.Context, userID, contentType string, body io.Reader) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	resumeURL, err := s.uploader.Upload(ctx, media.StorageKey("resumes"), contentType, body)
	if err != nil {
		slog.Error("resume upload failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewUploadFailedError()
	}

	if err := s.repo.UpdateResumeURL(ctx, userID, resumeURL); err != nil {
		return nil, fmt.Errorf("failed to update resume URL: %w", err)
	}

	user.ResumeURL = resumeURL
	return user, nil
}
