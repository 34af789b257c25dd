package job

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/jobport/internal/model"
	"github.com/hitoshi/jobport/internal/repository"
	"github.com/hitoshi/jobport/internal/security"
)

// mockJobRepo はJobRepositoryのテスト用モック。
type mockJobRepo struct {
	findByIDFunc      func(ctx context.Context, id string) (*model.Job, error)
	createFunc        func(ctx context.Context, job *model.Job) error
	listByCompanyFunc func(ctx context.Context, companyID string) ([]model.JobWithApplicants, error)
	listVisibleFunc   func(ctx context.Context) ([]model.JobWithCompany, error)
	setVisibilityFunc func(ctx context.Context, jobID string, visible bool) error
}

func (m *mockJobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockJobRepo) Create(ctx context.Context, job *model.Job) error {
	return m.createFunc(ctx, job)
}

func (m *mockJobRepo) ListByCompanyWithApplicants(ctx context.Context, companyID string) ([]model.JobWithApplicants, error) {
	return m.listByCompanyFunc(ctx, companyID)
}

func (m *mockJobRepo) ListVisible(ctx context.Context) ([]model.JobWithCompany, error) {
	return m.listVisibleFunc(ctx)
}

func (m *mockJobRepo) SetVisibility(ctx context.Context, jobID string, visible bool) error {
	return m.setVisibilityFunc(ctx, jobID, visible)
}

var _ repository.JobRepository = (*mockJobRepo)(nil)

func validPostInput() PostInput {
	return PostInput{
		Title:       "Backend Engineer",
		Description: "<p>Build APIs in Go</p>",
		Location:    "Tokyo",
		Category:    "Programming",
		Level:       "Senior Level",
		Salary:      90000,
	}
}

func TestPost_Success(t *testing.T) {
	var created *model.Job
	repo := &mockJobRepo{
		createFunc: func(ctx context.Context, job *model.Job) error {
			created = job
			return nil
		},
	}
	svc := NewService(repo, security.NewDescriptionSanitizer(), nil)

	job, err := svc.Post(context.Background(), "company-1", validPostInput())
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if created == nil {
		t.Fatal("Create was not called")
	}
	if job.ID == "" {
		t.Error("job should have a generated ID")
	}
	if job.CompanyID != "company-1" {
		t.Errorf("CompanyID = %q, want %q", job.CompanyID, "company-1")
	}
	if !job.Visible {
		t.Error("new job should be visible")
	}
	if job.PostedAt.IsZero() {
		t.Error("PostedAt should be set")
	}
}

func TestPost_SanitizesDescription(t *testing.T) {
	repo := &mockJobRepo{
		createFunc: func(ctx context.Context, job *model.Job) error { return nil },
	}
	svc := NewService(repo, security.NewDescriptionSanitizer(), nil)

	input := validPostInput()
	input.Description = `<p>role</p><script>alert("xss")</script>`

	job, err := svc.Post(context.Background(), "company-1", input)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if strings.Contains(job.Description, "script") || strings.Contains(job.Description, "alert") {
		t.Errorf("description not sanitized: %s", job.Description)
	}
	if !strings.Contains(job.Description, "<p>role</p>") {
		t.Errorf("safe markup should survive: %s", job.Description)
	}
}

func TestPost_MissingFields(t *testing.T) {
	svc := NewService(&mockJobRepo{}, security.NewDescriptionSanitizer(), nil)

	tests := []struct {
		name   string
		mutate func(*PostInput)
	}{
		{"empty title", func(in *PostInput) { in.Title = "" }},
		{"empty description", func(in *PostInput) { in.Description = "" }},
		{"empty location", func(in *PostInput) { in.Location = "" }},
		{"empty category", func(in *PostInput) { in.Category = "" }},
		{"empty level", func(in *PostInput) { in.Level = "" }},
		{"zero salary", func(in *PostInput) { in.Salary = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validPostInput()
			tt.mutate(&input)

			_, err := svc.Post(context.Background(), "company-1", input)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeValidation {
				t.Fatalf("Post() error = %v, want VALIDATION_ERROR", err)
			}
		})
	}
}

func TestGetVisible(t *testing.T) {
	tests := []struct {
		name     string
		job      *model.Job
		wantCode string
	}{
		{"visible job", &model.Job{ID: "job-1", Visible: true}, ""},
		{"hidden job", &model.Job{ID: "job-1", Visible: false}, model.ErrCodeJobNotFound},
		{"missing job", nil, model.ErrCodeJobNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockJobRepo{
				findByIDFunc: func(ctx context.Context, id string) (*model.Job, error) {
					return tt.job, nil
				},
			}
			svc := NewService(repo, security.NewDescriptionSanitizer(), nil)

			job, err := svc.GetVisible(context.Background(), "job-1")
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("GetVisible() error = %v", err)
				}
				if job.ID != "job-1" {
					t.Errorf("job.ID = %q", job.ID)
				}
				return
			}

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != tt.wantCode {
				t.Fatalf("GetVisible() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestToggleVisibility_Success(t *testing.T) {
	var gotVisible bool
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Job, error) {
			return &model.Job{ID: id, CompanyID: "company-1", Visible: true}, nil
		},
		setVisibilityFunc: func(ctx context.Context, jobID string, visible bool) error {
			gotVisible = visible
			return nil
		},
	}
	svc := NewService(repo, security.NewDescriptionSanitizer(), nil)

	job, err := svc.ToggleVisibility(context.Background(), "company-1", "job-1")
	if err != nil {
		t.Fatalf("ToggleVisibility() error = %v", err)
	}
	if gotVisible != false {
		t.Error("SetVisibility should flip true to false")
	}
	if job.Visible {
		t.Error("returned job should reflect the new visibility")
	}
}

// 非所有企業による公開切替が拒否されることを検証
func TestToggleVisibility_NotOwner(t *testing.T) {
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Job, error) {
			return &model.Job{ID: id, CompanyID: "company-1", Visible: true}, nil
		},
		setVisibilityFunc: func(ctx context.Context, jobID string, visible bool) error {
			t.Fatal("SetVisibility should not be called")
			return nil
		},
	}
	svc := NewService(repo, security.NewDescriptionSanitizer(), nil)

	_, err := svc.ToggleVisibility(context.Background(), "company-2", "job-1")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeNotJobOwner {
		t.Fatalf("ToggleVisibility() error = %v, want NOT_JOB_OWNER", err)
	}
}

func TestToggleVisibility_JobNotFound(t *testing.T) {
	repo := &mockJobRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Job, error) {
			return nil, nil
		},
	}
	svc := NewService(repo, security.NewDescriptionSanitizer(), nil)

	_, err := svc.ToggleVisibility(context.Background(), "company-1", "missing")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeJobNotFound {
		t.Fatalf("ToggleVisibility() error = %v, want JOB_NOT_FOUND", err)
	}
}
