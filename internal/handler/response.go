// Package handler はHTTP APIのハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/jobport/internal/model"
)

// successEnvelope は成功レスポンスの共通フィールド。
// 全レスポンスは {"success": bool, ...} のエンベロープに揃える。
type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// failureBody は失敗レスポンスのボディ。
type failureBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON は任意のボディをJSONで書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeMessage は成功メッセージのみのレスポンスを書き込む。
func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, successEnvelope{Success: true, Message: message})
}

// writeFailure は失敗レスポンスを書き込む。
func writeFailure(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, failureBody{Success: false, Message: message})
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
// APIErrorはエラーコードに応じたステータスとレガシー互換のメッセージで返し、
// それ以外は詳細をログのみに残して500を返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeFailure(w, statusForCode(apiErr.Code), apiErr.Message)
		return
	}

	slog.Error("internal error", slog.String("error", err.Error()))
	writeFailure(w, http.StatusInternalServerError, "Internal server error")
}

// statusForCode はエラーコードをHTTPステータスコードに対応づける。
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInvalidStatus:
		return http.StatusBadRequest
	case model.ErrCodeCompanyNotFound, model.ErrCodeIncorrectPassword:
		return http.StatusUnauthorized
	case model.ErrCodeNotJobOwner:
		return http.StatusForbidden
	case model.ErrCodeJobNotFound, model.ErrCodeApplicationMissing, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeCompanyExists, model.ErrCodeAlreadyApplied, model.ErrCodeStatusFinal:
		return http.StatusConflict
	case model.ErrCodeUploadFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// --- レスポンスDTO ---
// フィールド名は既存クライアントのために元APIのキーに合わせる。

// companySummary は求人・応募レスポンスに埋め込む企業サマリ。
type companySummary struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	LogoURL string `json:"image"`
}

// jobResponse は求人1件のレスポンス。
type jobResponse struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Category    string          `json:"category"`
	Level       string          `json:"level"`
	Salary      int64           `json:"salary"`
	Visible     bool            `json:"visible"`
	PostedAt    time.Time       `json:"date"`
	Company     *companySummary `json:"companyId,omitempty"`
	Applicants  *int            `json:"applicants,omitempty"`
}

func toJobResponse(job *model.Job) jobResponse {
	return jobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Category:    job.Category,
		Level:       job.Level,
		Salary:      job.Salary,
		Visible:     job.Visible,
		PostedAt:    job.PostedAt,
	}
}

func toJobWithCompanyResponse(j model.JobWithCompany) jobResponse {
	resp := toJobResponse(&j.Job)
	resp.Company = &companySummary{
		ID:      j.CompanyID,
		Name:    j.CompanyName,
		LogoURL: j.CompanyLogoURL,
	}
	return resp
}

func toJobWithApplicantsResponse(j model.JobWithApplicants) jobResponse {
	resp := toJobResponse(&j.Job)
	applicants := j.Applicants
	resp.Applicants = &applicants
	return resp
}

// userSummary は応募レスポンスに埋め込む応募者サマリ。
type userSummary struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"image"`
	ResumeURL string `json:"resume"`
}

func toUserSummary(u *model.User) userSummary {
	return userSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		ResumeURL: u.ResumeURL,
	}
}

// jobSummary は応募レスポンスに埋め込む求人サマリ。
type jobSummary struct {
	ID       string `json:"_id,omitempty"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Category string `json:"category,omitempty"`
	Level    string `json:"level"`
	Salary   int64  `json:"salary"`
}

// companyApplicationResponse は企業向け応募一覧の1行。
type companyApplicationResponse struct {
	ID        string      `json:"_id"`
	User      userSummary `json:"userId"`
	Job       jobSummary  `json:"jobId"`
	Status    string      `json:"status"`
	AppliedAt time.Time   `json:"date"`
}

func toCompanyApplicationResponse(a model.ApplicationForCompany) companyApplicationResponse {
	return companyApplicationResponse{
		ID: a.ID,
		User: userSummary{
			ID:        a.UserID,
			Name:      a.UserName,
			AvatarURL: a.UserAvatarURL,
			ResumeURL: a.UserResumeURL,
		},
		Job: jobSummary{
			ID:       a.JobID,
			Title:    a.JobTitle,
			Location: a.JobLocation,
			Category: a.JobCategory,
			Level:    a.JobLevel,
			Salary:   a.JobSalary,
		},
		Status:    string(a.Status),
		AppliedAt: a.AppliedAt,
	}
}

// userApplicationResponse はユーザー向け応募一覧の1行。
type userApplicationResponse struct {
	ID        string         `json:"_id"`
	Company   companySummary `json:"companyId"`
	Job       jobSummary     `json:"jobId"`
	Status    string         `json:"status"`
	AppliedAt time.Time      `json:"date"`
}

func toUserApplicationResponse(a model.ApplicationForUser) userApplicationResponse {
	return userApplicationResponse{
		ID: a.ID,
		Company: companySummary{
			Name:    a.CompanyName,
			LogoURL: a.CompanyLogoURL,
		},
		Job: jobSummary{
			ID:       a.JobID,
			Title:    a.JobTitle,
			Location: a.JobLocation,
			Level:    a.JobLevel,
			Salary:   a.JobSalary,
		},
		Status:    string(a.Status),
		AppliedAt: a.AppliedAt,
	}
}
