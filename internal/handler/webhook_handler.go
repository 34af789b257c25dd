package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// WebhookVerifierInterface はWebhook署名検証のインターフェース。
// auth.WebhookVerifierの部分集合として定義する。
type WebhookVerifierInterface interface {
	// Verify は署名ヘッダーとペイロードの整合性を検証する。
	Verify(msgID, timestamp, signatureHeader string, payload []byte) error
}

// WebhookServiceInterface は検証済みイベントの処理インターフェース。
type WebhookServiceInterface interface {
	// Handle はイベントをローカルのユーザーレコードに反映する。
	Handle(ctx context.Context, payload []byte) error
}

// WebhookMetrics はWebhook処理のメトリクス記録インターフェース。
type WebhookMetrics interface {
	RecordWebhookEvent(eventType string)
	RecordWebhookRejected()
}

// maxWebhookBody はWebhookペイロードの上限サイズ。
const maxWebhookBody = 1 << 20 // 1MiB

// WebhookHandler はIDプロバイダWebhookのHTTPハンドラー。
type WebhookHandler struct {
	verifier WebhookVerifierInterface
	service  WebhookServiceInterface
	metrics  WebhookMetrics
}

// NewWebhookHandler はWebhookHandlerを生成する。metricsはnil可。
func NewWebhookHandler(verifier WebhookVerifierInterface, service WebhookServiceInterface, metrics WebhookMetrics) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		service:  service,
		metrics:  metrics,
	}
}

// Receive はWebhook配信を処理する。
// 署名検証に失敗した配信は本文を処理せずsuccess:falseで応答する。
// プロバイダの再送を誘発しないよう、検証失敗でもステータスは200を返す
// （再送しても検証は成功しない）。処理自体の失敗は500を返して再送させる。
// POST /webhooks
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	msgID := r.Header.Get("svix-id")
	timestamp := r.Header.Get("svix-timestamp")
	signature := r.Header.Get("svix-signature")

	if err := h.verifier.Verify(msgID, timestamp, signature, body); err != nil {
		slog.Warn("webhook signature verification failed",
			slog.String("msg_id", msgID),
			slog.String("error", err.Error()),
		)
		if h.metrics != nil {
			h.metrics.RecordWebhookRejected()
		}
		writeJSON(w, http.StatusOK, failureBody{Success: false, Message: "Webhook verification failed"})
		return
	}

	if err := h.service.Handle(r.Context(), body); err != nil {
		slog.Error("webhook processing failed",
			slog.String("msg_id", msgID),
			slog.String("error", err.Error()),
		)
		writeFailure(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordWebhookEvent(eventTypeOf(body))
	}

	writeJSON(w, http.StatusOK, successEnvelope{Success: true})
}

// eventTypeOf はメトリクスラベル用にイベント種別だけを取り出す。
func eventTypeOf(body []byte) string {
	var e struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Type == "" {
		return "unknown"
	}
	return e.Type
}
