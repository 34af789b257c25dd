// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordCompanyRegistered()
	RecordJobPosted()
	RecordApplicationSubmitted()
	RecordWebhookEvent(eventType string)
	RecordWebhookRejected()
	RecordHTTPStatus(statusCode int)
	RecordUploadLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	companiesRegistered prometheus.Counter
	jobsPosted          prometheus.Counter
	applications        prometheus.Counter
	webhookEvents       *prometheus.CounterVec
	webhookRejected     prometheus.Counter
	httpStatus          *prometheus.CounterVec
	uploadLatency       prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		companiesRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobport_companies_registered_total",
			Help: "企業登録の合計数",
		}),
		jobsPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobport_jobs_posted_total",
			Help: "求人掲載の合計数",
		}),
		applications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobport_applications_submitted_total",
			Help: "応募の合計数",
		}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobport_webhook_events_total",
			Help: "イベント種別ごとの処理済みWebhookイベント数",
		}, []string{"event_type"}),
		webhookRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobport_webhook_rejected_total",
			Help: "署名検証で拒否したWebhook配信の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobport_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		uploadLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobport_upload_latency_seconds",
			Help:    "メディアアップロードのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.companiesRegistered,
		c.jobsPosted,
		c.applications,
		c.webhookEvents,
		c.webhookRejected,
		c.httpStatus,
		c.uploadLatency,
	)

	return c
}

// RecordCompanyRegistered は企業登録を記録する。
func (c *Collector) RecordCompanyRegistered() {
	c.companiesRegistered.Inc()
}

// RecordJobPosted は求人掲載を記録する。
func (c *Collector) RecordJobPosted() {
	c.jobsPosted.Inc()
}

// RecordApplicationSubmitted は応募を記録する。
func (c *Collector) RecordApplicationSubmitted() {
	c.applications.Inc()
}

// RecordWebhookEvent は処理済みWebhookイベントを記録する。
func (c *Collector) RecordWebhookEvent(eventType string) {
	c.webhookEvents.WithLabelValues(eventType).Inc()
}

// RecordWebhookRejected は署名検証で拒否したWebhook配信を記録する。
func (c *Collector) RecordWebhookRejected() {
	c.webhookRejected.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordUploadLatency はメディアアップロードのレイテンシを記録する。
func (c *Collector) RecordUploadLatency(duration time.Duration) {
	c.uploadLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
