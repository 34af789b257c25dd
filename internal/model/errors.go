package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// Message はクライアント互換のためレガシーAPIの文言をそのまま使用する。
type APIError struct {
	Code     string // エラーコード
	Message  string // クライアントに返すメッセージ
	Category string // カテゴリ: auth, validation, job, application, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeCompanyExists      = "COMPANY_EXISTS"
	ErrCodeCompanyNotFound    = "COMPANY_NOT_FOUND"
	ErrCodeIncorrectPassword  = "INCORRECT_PASSWORD"
	ErrCodeJobNotFound        = "JOB_NOT_FOUND"
	ErrCodeNotJobOwner        = "NOT_JOB_OWNER"
	ErrCodeAlreadyApplied     = "ALREADY_APPLIED"
	ErrCodeApplicationMissing = "APPLICATION_NOT_FOUND"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeStatusFinal        = "STATUS_FINAL"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeUploadFailed       = "UPLOAD_FAILED"
)

// NewValidationError は必須項目欠落などの入力エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
	}
}

// NewCompanyExistsError はメールアドレス重複時のエラーを生成する。
func NewCompanyExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeCompanyExists,
		Message:  "Company already exists",
		Category: "validation",
	}
}

// NewCompanyNotFoundError は企業が見つからない場合のエラーを生成する。
func NewCompanyNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeCompanyNotFound,
		Message:  "Company not found",
		Category: "auth",
	}
}

// NewIncorrectPasswordError はパスワード不一致のエラーを生成する。
func NewIncorrectPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeIncorrectPassword,
		Message:  "Incorrect password",
		Category: "auth",
	}
}

// NewJobNotFoundError は求人が見つからない場合のエラーを生成する。
func NewJobNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeJobNotFound,
		Message:  "Job not found",
		Category: "job",
	}
}

// NewNotJobOwnerError は非所有企業による求人変更のエラーを生成する。
func NewNotJobOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodeNotJobOwner,
		Message:  "You do not own this job",
		Category: "auth",
	}
}

// NewAlreadyAppliedError は同一求人への重複応募のエラーを生成する。
func NewAlreadyAppliedError() *APIError {
	return &APIError{
		Code:     ErrCodeAlreadyApplied,
		Message:  "You have already applied for this job",
		Category: "application",
	}
}

// NewApplicationNotFoundError は応募が見つからない場合のエラーを生成する。
func NewApplicationNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeApplicationMissing,
		Message:  "Application not found",
		Category: "application",
	}
}

// NewInvalidStatusError は未知のステータス値のエラーを生成する。
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("Invalid status: %s", status),
		Category: "validation",
	}
}

// NewStatusFinalError は終端状態からの遷移拒否エラーを生成する。
func NewStatusFinalError(current ApplicationStatus) *APIError {
	return &APIError{
		Code:     ErrCodeStatusFinal,
		Message:  fmt.Sprintf("Application already %s", current),
		Category: "application",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User not found",
		Category: "auth",
	}
}

// NewUploadFailedError はメディアアップロード失敗のエラーを生成する。
func NewUploadFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeUploadFailed,
		Message:  "File upload failed",
		Category: "system",
	}
}
