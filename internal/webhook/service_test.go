package webhook

import (
	"context"
	"testing"

	"github.com/hitoshi/jobport/internal/model"
	"github.com/hitoshi/jobport/internal/repository"
)

// mockUserRepo はUserRepositoryのテスト用モック。
type mockUserRepo struct {
	findByIDFunc        func(ctx context.Context, id string) (*model.User, error)
	upsertFunc          func(ctx context.Context, user *model.User) error
	updateResumeURLFunc func(ctx context.Context, id, resumeURL string) error
	deleteByIDFunc      func(ctx context.Context, id string) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *model.User) error {
	return m.upsertFunc(ctx, user)
}

func (m *mockUserRepo) UpdateResumeURL(ctx context.Context, id, resumeURL string) error {
	return m.updateResumeURLFunc(ctx, id, resumeURL)
}

func (m *mockUserRepo) DeleteByID(ctx context.Context, id string) error {
	return m.deleteByIDFunc(ctx, id)
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

const createdEvent = `{
	"type": "user.created",
	"data": {
		"id": "user_2abc",
		"first_name": "Hanako",
		"last_name": "Yamada",
		"image_url": "https://img.example.com/hanako.png",
		"email_addresses": [{"email_address": "hanako@example.com"}]
	}
}`

func TestHandle_UserCreated(t *testing.T) {
	var upserted *model.User
	repo := &mockUserRepo{
		upsertFunc: func(ctx context.Context, user *model.User) error {
			upserted = user
			return nil
		},
	}
	svc := NewService(repo)

	if err := svc.Handle(context.Background(), []byte(createdEvent)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if upserted == nil {
		t.Fatal("Upsert was not called")
	}
	if upserted.ID != "user_2abc" {
		t.Errorf("ID = %q", upserted.ID)
	}
	if upserted.Name != "Hanako Yamada" {
		t.Errorf("Name = %q, want %q", upserted.Name, "Hanako Yamada")
	}
	if upserted.Email != "hanako@example.com" {
		t.Errorf("Email = %q", upserted.Email)
	}
	if upserted.AvatarURL != "https://img.example.com/hanako.png" {
		t.Errorf("AvatarURL = %q", upserted.AvatarURL)
	}
}

// updatedイベントもupsertで処理されること（createdとの順序逆転に耐える）を検証
func TestHandle_UserUpdated(t *testing.T) {
	called := false
	repo := &mockUserRepo{
		upsertFunc: func(ctx context.Context, user *model.User) error {
			called = true
			return nil
		},
	}
	svc := NewService(repo)

	payload := `{"type": "user.updated", "data": {"id": "user_2abc", "first_name": "Hanako", "last_name": "Sato", "email_addresses": []}}`
	if err := svc.Handle(context.Background(), []byte(payload)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !called {
		t.Error("Upsert should be called for user.updated")
	}
}

func TestHandle_UserDeleted(t *testing.T) {
	var deletedID string
	repo := &mockUserRepo{
		deleteByIDFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	svc := NewService(repo)

	payload := `{"type": "user.deleted", "data": {"id": "user_2abc"}}`
	if err := svc.Handle(context.Background(), []byte(payload)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if deletedID != "user_2abc" {
		t.Errorf("DeleteByID called with %q", deletedID)
	}
}

func TestHandle_UnknownEventIgnored(t *testing.T) {
	repo := &mockUserRepo{
		upsertFunc: func(ctx context.Context, user *model.User) error {
			t.Fatal("Upsert should not be called")
			return nil
		},
		deleteByIDFunc: func(ctx context.Context, id string) error {
			t.Fatal("DeleteByID should not be called")
			return nil
		},
	}
	svc := NewService(repo)

	payload := `{"type": "session.created", "data": {"id": "sess_1"}}`
	if err := svc.Handle(context.Background(), []byte(payload)); err != nil {
		t.Errorf("unknown event should not fail: %v", err)
	}
}

func TestHandle_MalformedPayload(t *testing.T) {
	svc := NewService(&mockUserRepo{})

	if err := svc.Handle(context.Background(), []byte("not json")); err == nil {
		t.Error("malformed payload should return an error")
	}
}

func TestHandle_MissingUserID(t *testing.T) {
	svc := NewService(&mockUserRepo{
		upsertFunc: func(ctx context.Context, user *model.User) error {
			t.Fatal("Upsert should not be called")
			return nil
		},
	})

	payload := `{"type": "user.created", "data": {"first_name": "NoID"}}`
	if err := svc.Handle(context.Background(), []byte(payload)); err == nil {
		t.Error("event without user id should return an error")
	}
}
