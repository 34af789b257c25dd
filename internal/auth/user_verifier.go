package auth

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UserVerifier は求職者のBearerトークン検証インターフェース。
// 検証は外部IDプロバイダに委譲され、本システムはsubject idのみを利用する。
type UserVerifier interface {
	// Verify はBearerトークンを検証し、プロバイダのsubject idを返す。
	Verify(tokenString string) (string, error)
}

// JWTUserVerifier はIDプロバイダの公開鍵でRS256 JWTを検証するUserVerifier実装。
// プロバイダのセッショントークンはRS256で署名されており、
// 公開鍵（PEM）をローカルに配置することでネットワーク往復なしに検証できる。
type JWTUserVerifier struct {
	publicKey *rsa.PublicKey
}

// NewJWTUserVerifier はPEM形式の公開鍵からJWTUserVerifierを生成する。
func NewJWTUserVerifier(publicKeyPEM []byte) (*JWTUserVerifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user JWT public key: %w", err)
	}
	return &JWTUserVerifier{publicKey: key}, nil
}

// Verify はBearerトークンの署名と有効期限を検証し、subject idを返す。
func (v *JWTUserVerifier) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return v.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("invalid user token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid user token")
	}

	return claims.Subject, nil
}

// compile-time interface check
var _ UserVerifier = (*JWTUserVerifier)(nil)
