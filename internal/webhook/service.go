// Package webhook は外部IDプロバイダからのWebhookイベント処理を提供する。
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hitoshi/jobport/internal/model"
	"github.com/hitoshi/jobport/internal/repository"
)

// イベント種別
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event はIDプロバイダから届くイベントの外形。
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// userPayload はユーザー系イベントのペイロード。
// IDプロバイダのスキーマに合わせてメールアドレスは配列で届く。
type userPayload struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ImageURL       string `json:"image_url"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// Service はWebhookイベントのサービス層。
// イベントをローカルのユーザーレコードに反映する。
type Service struct {
	users repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// Handle は検証済みイベントを処理する。
// プロバイダは配信の順序も一意性も保証しないため、全ハンドリングは冪等とする。
// 未知のイベント種別はエラーにせず無視する（プロバイダ側の種別追加で
// 配信が失敗し続けるのを避ける）。
func (s *Service) Handle(ctx context.Context, payload []byte) error {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to decode webhook event: %w", err)
	}

	switch event.Type {
	case EventUserCreated, EventUserUpdated:
		return s.upsertUser(ctx, event.Data)
	case EventUserDeleted:
		return s.deleteUser(ctx, event.Data)
	default:
		slog.Info("ignoring webhook event", slog.String("type", event.Type))
		return nil
	}
}

func (s *Service) upsertUser(ctx context.Context, data json.RawMessage) error {
	var p userPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode user payload: %w", err)
	}
	if p.ID == "" {
		return fmt.Errorf("user event has no id")
	}

	email := ""
	if len(p.EmailAddresses) > 0 {
		email = p.EmailAddresses[0].EmailAddress
	}

	now := time.Now()
	user := &model.User{
		ID:        p.ID,
		Name:      strings.TrimSpace(p.FirstName + " " + p.LastName),
		Email:     email,
		AvatarURL: p.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	slog.Info("user synced from webhook", slog.String("user_id", p.ID))
	return nil
}

func (s *Service) deleteUser(ctx context.Context, data json.RawMessage) error {
	var p userPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode user payload: %w", err)
	}
	if p.ID == "" {
		return fmt.Errorf("user event has no id")
	}

	if err := s.users.DeleteByID(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user deleted from webhook", slog.String("user_id", p.ID))
	return nil
}
