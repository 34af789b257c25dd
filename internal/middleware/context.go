// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"

	"github.com/hitoshi/jobport/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

var (
	companyContextKey = contextKey("company")
	userIDContextKey  = contextKey("user_id")
)

// CompanyFromContext はリクエストコンテキストから認証済み企業を取得する。
// 企業認証ミドルウェアを通過したリクエストでのみ有効。
func CompanyFromContext(ctx context.Context) (*model.Company, error) {
	company, ok := ctx.Value(companyContextKey).(*model.Company)
	if !ok || company == nil {
		return nil, fmt.Errorf("company not found in context")
	}
	return company, nil
}

// ContextWithCompany はコンテキストに認証済み企業を注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithCompany(ctx context.Context, company *model.Company) context.Context {
	return context.WithValue(ctx, companyContextKey, company)
}

// UserIDFromContext はリクエストコンテキストから認証済みユーザーIDを取得する。
// ユーザー認証ミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
