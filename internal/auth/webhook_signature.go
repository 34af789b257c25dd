package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// webhookTimestampTolerance は署名タイムスタンプの許容ずれ。
// リプレイ攻撃を防ぐため、これより古い（または未来の）署名は拒否する。
const webhookTimestampTolerance = 5 * time.Minute

// WebhookVerifier はIDプロバイダのWebhook配信の署名を検証する。
// 署名方式はsvix互換: HMAC-SHA256("<id>.<timestamp>.<payload>") を
// base64エンコードし、"v1,<signature>" 形式のヘッダーで送られる。
type WebhookVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewWebhookVerifier はWebhookVerifierを生成する。
// secretは"whsec_"プレフィックス付きのbase64シークレットを受け付ける。
func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	raw := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode webhook secret: %w", err)
	}
	return &WebhookVerifier{
		secret: key,
		now:    time.Now,
	}, nil
}

// Verify はWebhookリクエストの署名を検証する。
// msgID・timestamp・signatureHeaderは配信ヘッダー
// （webhook-id / webhook-timestamp / webhook-signature）の値。
// signatureHeaderはスペース区切りで複数の "v1,<sig>" を含みうる（鍵ローテーション対応）。
func (v *WebhookVerifier) Verify(msgID, timestamp, signatureHeader string, payload []byte) error {
	if msgID == "" || timestamp == "" || signatureHeader == "" {
		return fmt.Errorf("missing webhook signature headers")
	}

	// タイムスタンプ検証
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid webhook timestamp: %w", err)
	}
	diff := v.now().Sub(time.Unix(ts, 0))
	if diff > webhookTimestampTolerance || diff < -webhookTimestampTolerance {
		return fmt.Errorf("webhook timestamp outside of tolerance")
	}

	// 期待署名の計算
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	// ヘッダー内のいずれかの署名と一致すれば成功
	for _, part := range strings.Fields(signatureHeader) {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}

	return fmt.Errorf("no matching webhook signature")
}
