package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hitoshi/jobport/internal/middleware"
	"github.com/hitoshi/jobport/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// GetProfile はユーザープロフィールを取得する。
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	// UpdateResume は履歴書をアップロードしてURLを差し替える。
	UpdateResume(ctx context.Context, userID, contentType string, body io.Reader) (*model.User, error)
}

// UserHandler は求職者向けAPIのHTTPハンドラー。
type UserHandler struct {
	users         UserServiceInterface
	applications  ApplicationServiceInterface
	maxUploadSize int64
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(users UserServiceInterface, applications ApplicationServiceInterface, maxUploadSize int64) *UserHandler {
	return &UserHandler{
		users:         users,
		applications:  applications,
		maxUploadSize: maxUploadSize,
	}
}

// Profile は認証済みユーザーのプロフィールを返す。
// GET /api/users
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool        `json:"success"`
		User    userSummary `json:"user"`
	}{true, toUserSummary(user)})
}

// applyRequest は応募リクエストのボディ。
type applyRequest struct {
	JobID string `json:"jobId"`
}

// Apply は求人への応募を処理する。
// POST /api/users/apply
func (h *UserHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.applications.Apply(r.Context(), userID, req.JobID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Applied Successfully")
}

// Applications はユーザーの応募一覧を返す。
// GET /api/users/applications
func (h *UserHandler) Applications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	apps, err := h.applications.ListForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]userApplicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = toUserApplicationResponse(a)
	}

	writeJSON(w, http.StatusOK, struct {
		Success      bool                      `json:"success"`
		Applications []userApplicationResponse `json:"applications"`
	}{true, resp})
}

// UpdateResume は履歴書の更新を処理する。resumeファイルを含む
// multipart/form-dataを受け付ける。
// POST /api/users/update-resume
func (h *UserHandler) UpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, Login Again")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Resume file is required")
		return
	}
	defer file.Close()

	if _, err := h.users.UpdateResume(r.Context(), userID, header.Header.Get("Content-Type"), file); err != nil {
		handleServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Resume Updated")
}
