package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(1),
		GeneralBurst:    2,
		RegisterRate:    rate.Limit(1),
		RegisterBurst:   1,
		CleanupInterval: time.Hour,
	}
}

func doRequest(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGeneralMiddleware_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(testConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		if rr := doRequest(handler, "10.0.0.1:1234"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rr.Code)
		}
	}

	rr := doRequest(handler, "10.0.0.1:1234")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("burst exceeded: status = %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("429 response should carry Retry-After")
	}
}

// クライアントごとに独立したリミッターが使われることを検証
func TestGeneralMiddleware_PerClient(t *testing.T) {
	rl := NewRateLimiter(testConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	doRequest(handler, "10.0.0.1:1234")
	doRequest(handler, "10.0.0.1:1234")
	doRequest(handler, "10.0.0.1:1234") // 10.0.0.1は枯渇

	if rr := doRequest(handler, "10.0.0.2:1234"); rr.Code != http.StatusOK {
		t.Errorf("different client should not be limited: status = %d", rr.Code)
	}

	if got := rl.GeneralLimiterCount(); got != 2 {
		t.Errorf("GeneralLimiterCount() = %d, want 2", got)
	}
}

// 登録リミッターが全般リミッターと独立であることを検証
func TestRegisterMiddleware_Independent(t *testing.T) {
	rl := NewRateLimiter(testConfig())
	defer rl.Stop()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	general := rl.GeneralMiddleware()(ok)
	register := rl.RegisterMiddleware()(ok)

	// 登録は1リクエストで枯渇する
	if rr := doRequest(register, "10.0.0.1:1234"); rr.Code != http.StatusOK {
		t.Fatalf("first register request: status = %d", rr.Code)
	}
	if rr := doRequest(register, "10.0.0.1:1234"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second register request: status = %d, want 429", rr.Code)
	}

	// 全般側は影響を受けない
	if rr := doRequest(general, "10.0.0.1:1234"); rr.Code != http.StatusOK {
		t.Errorf("general limiter should be unaffected: status = %d", rr.Code)
	}
}

func TestClientKey_ForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	if got := clientKey(req); got != "10.0.0.1" {
		t.Errorf("clientKey = %q, want 10.0.0.1", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientKey(req); got != "203.0.113.7" {
		t.Errorf("clientKey with XFF = %q, want 203.0.113.7", got)
	}
}
