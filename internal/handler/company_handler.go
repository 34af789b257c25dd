package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/jobport/internal/company"
	"github.com/hitoshi/jobport/internal/job"
	"github.com/hitoshi/jobport/internal/middleware"
	"github.com/hitoshi/jobport/internal/model"
)

// CompanyServiceInterface は企業ハンドラーが必要とする企業サービスインターフェース。
type CompanyServiceInterface interface {
	// Register は企業アカウントを新規作成しセッショントークンを発行する。
	Register(ctx context.Context, input company.RegisterInput) (*company.AuthResult, error)
	// Login はメールアドレスとパスワードで企業を認証する。
	Login(ctx context.Context, email, password string) (*company.AuthResult, error)
}

// JobServiceInterface は企業ハンドラーが必要とする求人サービスインターフェース。
type JobServiceInterface interface {
	// Post は求人を新規掲載する。
	Post(ctx context.Context, companyID string, input job.PostInput) (*model.Job, error)
	// ListCompanyJobs は企業の全求人を応募者数付きで返す。
	ListCompanyJobs(ctx context.Context, companyID string) ([]model.JobWithApplicants, error)
	// ToggleVisibility は求人の公開フラグを反転する。
	ToggleVisibility(ctx context.Context, companyID, jobID string) (*model.Job, error)
}

// ApplicationServiceInterface は応募サービスのインターフェース。
type ApplicationServiceInterface interface {
	// Apply は応募を作成する。
	Apply(ctx context.Context, userID, jobID string) (*model.JobApplication, error)
	// ListForUser はユーザーの応募一覧を返す。
	ListForUser(ctx context.Context, userID string) ([]model.ApplicationForUser, error)
	// ListForCompany は企業の受領応募一覧を返す。
	ListForCompany(ctx context.Context, companyID string) ([]model.ApplicationForCompany, error)
	// SetStatus は応募のステータスを変更する。
	SetStatus(ctx context.Context, companyID, applicationID string, status model.ApplicationStatus) error
}

// CompanyHandler は企業向けAPIのHTTPハンドラー。
type CompanyHandler struct {
	companies     CompanyServiceInterface
	jobs          JobServiceInterface
	applications  ApplicationServiceInterface
	maxUploadSize int64
}

// NewCompanyHandler はCompanyHandlerを生成する。
func NewCompanyHandler(companies CompanyServiceInterface, jobs JobServiceInterface, applications ApplicationServiceInterface, maxUploadSize int64) *CompanyHandler {
	return &CompanyHandler{
		companies:     companies,
		jobs:          jobs,
		applications:  applications,
		maxUploadSize: maxUploadSize,
	}
}

// authResponse は登録・ログイン成功時のレスポンス。
type authResponse struct {
	Success bool              `json:"success"`
	Company model.CompanyView `json:"company"`
	Token   string            `json:"token"`
}

// Register は企業登録を処理する。ロゴ画像を含むmultipart/form-dataを受け付ける。
// POST /api/company/register
func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	input := company.RegisterInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		input.Logo = &company.UploadedFile{
			Content:     file,
			ContentType: header.Header.Get("Content-Type"),
		}
	}

	result, err := h.companies.Register(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Success: true,
		Company: result.Company,
		Token:   result.Token,
	})
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login は企業ログインを処理する。
// POST /api/company/login
func (h *CompanyHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.companies.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		Company: result.Company,
		Token:   result.Token,
	})
}

// Profile は認証済み企業のプロフィールを返す。
// GET /api/company
func (h *CompanyHandler) Profile(w http.ResponseWriter, r *http.Request) {
	c, err := middleware.CompanyFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool              `json:"success"`
		Company model.CompanyView `json:"company"`
	}{true, c.PublicView()})
}

// postJobRequest は求人掲載リクエストのボディ。
type postJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Salary      int64  `json:"salary"`
}

// PostJob は求人掲載を処理する。
// POST /api/company/post-job
func (h *CompanyHandler) PostJob(w http.ResponseWriter, r *http.Request) {
	c, err := middleware.CompanyFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	var req postJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	posted, err := h.jobs.Post(r.Context(), c.ID, job.PostInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Level:       req.Level,
		Salary:      req.Salary,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Success bool        `json:"success"`
		Job     jobResponse `json:"newJob"`
	}{true, toJobResponse(posted)})
}

// ListJobs は企業の掲載求人一覧を応募者数付きで返す。
// GET /api/company/list-jobs
func (h *CompanyHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	c, err := middleware.CompanyFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	jobs, err := h.jobs.ListCompanyJobs(r.Context(), c.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		resp[i] = toJobWithApplicantsResponse(j)
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool          `json:"success"`
		Jobs    []jobResponse `json:"jobsData"`
	}{true, resp})
}

// Applicants は企業の受領応募一覧を返す。
// GET /api/company/applicants
func (h *CompanyHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	c, err := middleware.CompanyFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	apps, err := h.applications.ListForCompany(r.Context(), c.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]companyApplicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = toCompanyApplicationResponse(a)
	}

	writeJSON(w, http.StatusOK, struct {
		Success      bool                         `json:"success"`
		Applications []companyApplicationResponse `json:"applications"`
	}{true, resp})
}

// changeStatusRequest は応募ステータス変更リクエストのボディ。
type changeStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ChangeStatus は応募のステータス変更を処理する。
// POST /api/company/change-status
func (h *CompanyHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	c, err := middleware.CompanyFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.applications.SetStatus(r.Context(), c.ID, req.ID, model.ApplicationStatus(req.Status)); err != nil {
		handleServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Status Changed")
}

// changeVisibilityRequest は公開切替リクエストのボディ。
type changeVisibilityRequest struct {
	ID string `json:"id"`
}

// ChangeVisibility は求人の公開フラグ反転を処理する。
// POST /api/company/change-visibility
func (h *CompanyHandler) ChangeVisibility(w http.ResponseWriter, r *http.Request) {
	c, err := middleware.CompanyFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	var req changeVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	toggled, err := h.jobs.ToggleVisibility(r.Context(), c.ID, req.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool        `json:"success"`
		Job     jobResponse `json:"job"`
	}{true, toJobResponse(toggled)})
}
