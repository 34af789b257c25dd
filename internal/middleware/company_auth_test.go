package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/jobport/internal/model"
)

// mockTokenVerifier はCompanyTokenVerifierのテスト用モック。
type mockTokenVerifier struct {
	verifyFunc func(token string) (string, error)
}

func (m *mockTokenVerifier) Verify(token string) (string, error) {
	return m.verifyFunc(token)
}

// mockCompanyFinder はCompanyFinderのテスト用モック。
type mockCompanyFinder struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Company, error)
}

func (m *mockCompanyFinder) FindByID(ctx context.Context, id string) (*model.Company, error) {
	return m.findByIDFunc(ctx, id)
}

func okVerifier(companyID string) *mockTokenVerifier {
	return &mockTokenVerifier{
		verifyFunc: func(token string) (string, error) {
			return companyID, nil
		},
	}
}

func TestCompanyAuth_ValidToken(t *testing.T) {
	finder := &mockCompanyFinder{
		findByIDFunc: func(ctx context.Context, id string) (*model.Company, error) {
			return &model.Company{ID: id, Name: "Acme Inc", PasswordHash: "secret-hash"}, nil
		},
	}
	mw := NewCompanyAuthMiddleware(okVerifier("company-1"), finder)

	var gotCompany *model.Company
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := CompanyFromContext(r.Context())
		if err != nil {
			t.Fatalf("CompanyFromContext() error = %v", err)
		}
		gotCompany = c
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/company/jobs", nil)
	req.Header.Set("token", "valid-jwt")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if gotCompany.ID != "company-1" {
		t.Errorf("company ID = %q", gotCompany.ID)
	}
	if gotCompany.PasswordHash != "" {
		t.Error("password hash must not reach handlers")
	}
}

func TestCompanyAuth_MissingToken(t *testing.T) {
	mw := NewCompanyAuthMiddleware(okVerifier("company-1"), &mockCompanyFinder{})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/company/jobs", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestCompanyAuth_InvalidToken(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFunc: func(token string) (string, error) {
			return "", errors.New("signature invalid")
		},
	}
	mw := NewCompanyAuthMiddleware(verifier, &mockCompanyFinder{})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/company/jobs", nil)
	req.Header.Set("token", "tampered")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

// 有効なトークンでも企業レコードが削除済みなら401になることを検証
func TestCompanyAuth_CompanyDeleted(t *testing.T) {
	finder := &mockCompanyFinder{
		findByIDFunc: func(ctx context.Context, id string) (*model.Company, error) {
			return nil, nil
		},
	}
	mw := NewCompanyAuthMiddleware(okVerifier("company-1"), finder)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/company/jobs", nil)
	req.Header.Set("token", "valid-jwt")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}
