package model

import "time"

// Job は1つの企業が所有する求人を表す。
// Description はリッチテキストエディタ由来のHTMLで、保存前にサニタイズされる。
// Visible の切り替えは所有企業のみが行える（job.CompanyID == requester.ID）。
type Job struct {
	ID          string
	Title       string
	Description string
	Location    string
	Category    string
	Level       string
	Salary      int64
	CompanyID   string
	Visible     bool
	PostedAt    time.Time
}

// JobWithApplicants は企業ダッシュボード向けに応募者数を付与した求人。
type JobWithApplicants struct {
	Job
	Applicants int
}

// JobWithCompany は公開求人一覧向けに企業サマリを付与した求人。
type JobWithCompany struct {
	Job
	CompanyName    string
	CompanyLogoURL string
}
