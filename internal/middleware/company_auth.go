package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/jobport/internal/model"
)

// companyTokenHeader は企業セッショントークンを運ぶカスタムヘッダー名。
// 既存クライアントとの互換のためAuthorizationヘッダーではなくこの名前を使う。
const companyTokenHeader = "token"

// CompanyTokenVerifier は企業トークンの検証インターフェース。
// auth.CompanyTokenServiceの部分集合として定義する。
type CompanyTokenVerifier interface {
	Verify(token string) (companyID string, err error)
}

// CompanyFinder は企業の検索に必要なインターフェース。
// repository.CompanyRepositoryの部分集合として定義する。
type CompanyFinder interface {
	FindByID(ctx context.Context, id string) (*model.Company, error)
}

// NewCompanyAuthMiddleware はtokenヘッダーの企業JWTを検証するミドルウェアを返す。
// トークンのsubjectで企業レコードを引き、認証済み企業をコンテキストに注入する。
// トークン欠落・検証失敗・企業レコード不在はいずれも401を返す。
func NewCompanyAuthMiddleware(verifier CompanyTokenVerifier, companies CompanyFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(companyTokenHeader)
			if token == "" {
				writeUnauthorized(w)
				return
			}

			companyID, err := verifier.Verify(token)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			company, err := companies.FindByID(r.Context(), companyID)
			if err != nil {
				slog.Error("failed to load company for auth",
					slog.String("error", err.Error()),
				)
				writeUnauthorized(w)
				return
			}
			if company == nil {
				// トークンは有効だが企業レコードが削除済み
				writeUnauthorized(w)
				return
			}

			// パスワードハッシュはハンドラに渡さない
			company.PasswordHash = ""

			ctx := ContextWithCompany(r.Context(), company)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthorized は401をレガシー互換のエンベロープで書き込む。
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "Not authorized, Login Again",
	})
}
