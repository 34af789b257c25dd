package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/jobport/internal/model"
)

// PublicJobServiceInterface は公開求人ハンドラーが必要とするサービスインターフェース。
type PublicJobServiceInterface interface {
	// ListVisible は公開中の全求人を返す。
	ListVisible(ctx context.Context) ([]model.JobWithCompany, error)
	// GetVisible は公開中の求人を1件取得する。
	GetVisible(ctx context.Context, jobID string) (*model.Job, error)
}

// JobHandler は公開求人APIのHTTPハンドラー。認証不要。
type JobHandler struct {
	jobs PublicJobServiceInterface
}

// NewJobHandler はJobHandlerを生成する。
func NewJobHandler(jobs PublicJobServiceInterface) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// List は公開中の求人一覧を企業サマリ付きで返す。
// 絞り込みとページングはクライアント側で行うため、常に全件を返す。
// GET /api/jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListVisible(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		resp[i] = toJobWithCompanyResponse(j)
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool          `json:"success"`
		Jobs    []jobResponse `json:"jobs"`
	}{true, resp})
}

// Get は公開中の求人を1件返す。
// GET /api/jobs/{id}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	job, err := h.jobs.GetVisible(r.Context(), jobID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool        `json:"success"`
		Job     jobResponse `json:"job"`
	}{true, toJobResponse(job)})
}
