package user

import (
	"context"
	"errors"
	"io"
	"strings"
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

// mockUploader はmedia.Uploaderのテスト用モック。
type mockUploader struct {
	uploadFunc func(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

func (m *mockUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	return m.uploadFunc(ctx, key, contentType, body)
}

func TestGetProfile_Found(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Name: "Hanako Yamada"}, nil
		},
	}
	svc := NewService(repo, &mockUploader{})

	user, err := svc.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if user.Name != "Hanako Yamada" {
		t.Errorf("Name = %q", user.Name)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, nil
		},
	}
	svc := NewService(repo, &mockUploader{})

	_, err := svc.GetProfile(context.Background(), "missing")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Fatalf("GetProfile() error = %v, want USER_NOT_FOUND", err)
	}
}

func TestUpdateResume_Success(t *testing.T) {
	var savedURL string
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
		updateResumeURLFunc: func(ctx context.Context, id, resumeURL string) error {
			savedURL = resumeURL
			return nil
		},
	}
	up := &mockUploader{
		uploadFunc: func(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
			if !strings.HasPrefix(key, "resumes/") {
				t.Errorf("key = %q, want resumes/ prefix", key)
			}
			return "https://cdn.example.com/resumes/r1", nil
		},
	}
	svc := NewService(repo, up)

	user, err := svc.UpdateResume(context.Background(), "user-1", "application/pdf", strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("UpdateResume() error = %v", err)
	}
	if savedURL != "https://cdn.example.com/resumes/r1" {
		t.Errorf("saved URL = %q", savedURL)
	}
	if user.ResumeURL != savedURL {
		t.Errorf("returned user ResumeURL = %q", user.ResumeURL)
	}
}

func TestUpdateResume_UploadFailure(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
		updateResumeURLFunc: func(ctx context.Context, id, resumeURL string) error {
			t.Fatal("UpdateResumeURL should not be called when upload fails")
			return nil
		},
	}
	up := &mockUploader{
		uploadFunc: func(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
			return "", errors.New("timeout")
		},
	}
	svc := NewService(repo, up)

	_, err := svc.UpdateResume(context.Background(), "user-1", "application/pdf", strings.NewReader("pdf"))

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUploadFailed {
		t.Fatalf("UpdateResume() error = %v, want UPLOAD_FAILED", err)
	}
}

func TestUpdateResume_UserMissing(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, nil
		},
	}
	svc := NewService(repo, &mockUploader{})

	_, err := svc.UpdateResume(context.Background(), "missing", "application/pdf", strings.NewReader("pdf"))

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Fatalf("UpdateResume() error = %v, want USER_NOT_FOUND", err)
	}
}
