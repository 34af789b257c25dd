package model

import "time"

// ApplicationStatus は応募の状態を表す。
type ApplicationStatus string

const (
	// StatusPending は審査待ちの初期状態。
	StatusPending ApplicationStatus = "Pending"
	// StatusAccepted は採用済みの終端状態。
	StatusAccepted ApplicationStatus = "Accepted"
	// StatusRejected は不採用の終端状態。
	StatusRejected ApplicationStatus = "Rejected"
)

// IsValid は既知のステータス値かどうかを返す。
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo は状態遷移の可否を返す。
// 許可される遷移は Pending→Accepted と Pending→Rejected のみ。
// Accepted/Rejected は終端状態であり、以後の遷移は全て拒否される。
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	return s == StatusPending && (next == StatusAccepted || next == StatusRejected)
}

// JobApplication はユーザーの求人への応募を表す。
// (JobID, UserID) の組はストレージ層の一意制約により重複しない。
// CompanyID は参照する求人から作成時に非正規化され、常に
// Job.CompanyID と一致する。
type JobApplication struct {
	ID        string
	CompanyID string
	JobID     string
	UserID    string
	Status    ApplicationStatus
	AppliedAt time.Time
}

// ApplicationForCompany は企業向け応募一覧の1行。
// 応募に求人サマリと応募者サマリをJOINした表示用データ。
type ApplicationForCompany struct {
	JobApplication
	UserName      string
	UserAvatarURL string
	UserResumeURL string
	JobTitle      string
	JobLocation   string
	JobCategory   string
	JobLevel      string
	JobSalary     int64
}

// ApplicationForUser はユーザー向け応募一覧の1行。
// 応募に求人サマリと企業サマリをJOINした表示用データ。
type ApplicationForUser struct {
	JobApplication
	CompanyName    string
	CompanyLogoURL string
	JobTitle       string
	JobLocation    string
	JobLevel       string
	JobSalary      int64
}
