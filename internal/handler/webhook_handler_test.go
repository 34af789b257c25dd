package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// mockWebhookVerifier はWebhookVerifierInterfaceのテスト用モック。
type mockWebhookVerifier struct {
	verifyFunc func(msgID, timestamp, signatureHeader string, payload []byte) error
}

func (m *mockWebhookVerifier) Verify(msgID, timestamp, signatureHeader string, payload []byte) error {
	return m.verifyFunc(msgID, timestamp, signatureHeader, payload)
}

// mockWebhookService はWebhookServiceInterfaceのテスト用モック。
type mockWebhookService struct {
	handleFunc func(ctx context.Context, payload []byte) error
}

func (m *mockWebhookService) Handle(ctx context.Context, payload []byte) error {
	return m.handleFunc(ctx, payload)
}

func webhookRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(body))
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", "1724900000")
	req.Header.Set("svix-signature", "v1,abc")
	return req
}

func TestWebhook_ValidDelivery(t *testing.T) {
	var handled []byte
	verifier := &mockWebhookVerifier{
		verifyFunc: func(msgID, timestamp, signatureHeader string, payload []byte) error {
			if msgID != "msg_1" || timestamp != "1724900000" || signatureHeader != "v1,abc" {
				t.Errorf("verifier got (%q, %q, %q)", msgID, timestamp, signatureHeader)
			}
			return nil
		},
	}
	svc := &mockWebhookService{
		handleFunc: func(ctx context.Context, payload []byte) error {
			handled = payload
			return nil
		},
	}
	h := NewWebhookHandler(verifier, svc, nil)

	body := `{"type":"user.created","data":{"id":"user_2abc"}}`
	rr := httptest.NewRecorder()
	h.Receive(rr, webhookRequest(body))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if string(handled) != body {
		t.Errorf("service got payload %q", handled)
	}
	if resp := decodeBody(t, rr); resp["success"] != true {
		t.Error("success should be true")
	}
}

// 署名検証失敗は処理せず200 + success:falseで応答することを検証
func TestWebhook_InvalidSignature(t *testing.T) {
	verifier := &mockWebhookVerifier{
		verifyFunc: func(msgID, timestamp, signatureHeader string, payload []byte) error {
			return errors.New("signature mismatch")
		},
	}
	svc := &mockWebhookService{
		handleFunc: func(ctx context.Context, payload []byte) error {
			t.Fatal("service should not be called for unverified delivery")
			return nil
		},
	}
	h := NewWebhookHandler(verifier, svc, nil)

	rr := httptest.NewRecorder()
	h.Receive(rr, webhookRequest(`{"type":"user.created"}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if resp := decodeBody(t, rr); resp["success"] != false {
		t.Error("success should be false")
	}
}

// 処理失敗は500を返してプロバイダに再送させることを検証
func TestWebhook_ProcessingFailure(t *testing.T) {
	verifier := &mockWebhookVerifier{
		verifyFunc: func(msgID, timestamp, signatureHeader string, payload []byte) error {
			return nil
		},
	}
	svc := &mockWebhookService{
		handleFunc: func(ctx context.Context, payload []byte) error {
			return errors.New("db unavailable")
		},
	}
	h := NewWebhookHandler(verifier, svc, nil)

	rr := httptest.NewRecorder()
	h.Receive(rr, webhookRequest(`{"type":"user.created","data":{"id":"u1"}}`))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestEventTypeOf(t *testing.T) {
	if got := eventTypeOf([]byte(`{"type":"user.deleted"}`)); got != "user.deleted" {
		t.Errorf("eventTypeOf = %q", got)
	}
	if got := eventTypeOf([]byte(`not json`)); got != "unknown" {
		t.Errorf("eventTypeOf = %q, want unknown", got)
	}
}
