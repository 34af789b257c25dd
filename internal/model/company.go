// Package model はドメインモデルを定義する。
package model

import "time"

// Company は求人を掲載する企業アカウントを表す。
// PasswordHash はbcryptハッシュであり、APIレスポンスには一切含めない。
type Company struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	LogoURL      string
	CreatedAt    time.Time
}

// PublicView はAPIレスポンス用に資格情報を除いた企業情報を返す。
func (c *Company) PublicView() CompanyView {
	return CompanyView{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		LogoURL: c.LogoURL,
	}
}

// CompanyView は認証情報を含まない企業の公開ビュー。
type CompanyView struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	LogoURL string `json:"image"`
}
