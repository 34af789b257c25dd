// Package auth はトークンの発行・検証とWebhook署名検証を提供する。
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CompanyClaims は企業セッショントークンのクレーム。
// Subjectに企業IDを格納する。
type CompanyClaims struct {
	jwt.RegisteredClaims
}

// CompanyTokenService は企業セッショントークンの発行と検証を行う。
// トークンはHS256で署名された時限付きJWTで、サーバー側には保存しない
// （ステートレス検証）。
type CompanyTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewCompanyTokenService はCompanyTokenServiceを生成する。
func NewCompanyTokenService(secret []byte, ttl time.Duration) *CompanyTokenService {
	return &CompanyTokenService{
		secret: secret,
		ttl:    ttl,
	}
}

// Issue は企業IDをsubjectとする署名付きトークンを発行する。
func (s *CompanyTokenService) Issue(companyID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, CompanyClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   companyID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign company token: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、企業IDを返す。
func (s *CompanyTokenService) Verify(tokenString string) (string, error) {
	claims := &CompanyClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("invalid company token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid company token")
	}

	return claims.Subject, nil
}
