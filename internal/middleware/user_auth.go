package middleware

import (
	"net/http"
	"strings"
)

// UserTokenVerifier は外部IDプロバイダ発行のユーザートークン検証インターフェース。
// auth.UserVerifierの部分集合として定義する。
type UserTokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// NewUserAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証する
// ミドルウェアを返す。トークンの署名検証は外部IDプロバイダの公開鍵で行い、
// subject（ユーザーID）をコンテキストに注入する。
// ユーザーレコードの存在確認は行わない。Webhookの同期遅延があるため、
// レコードの有無は各ハンドラの責務とする。
func NewUserAuthMiddleware(verifier UserTokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
