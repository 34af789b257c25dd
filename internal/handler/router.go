package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/jobport/internal/metrics"
	"github.com/hitoshi/jobport/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CompanyTokenVerifier middleware.CompanyTokenVerifier
	CompanyFinder        middleware.CompanyFinder
	UserTokenVerifier    middleware.UserTokenVerifier
	CORSAllowedOrigin    string
	RateLimiter          *middleware.RateLimiter
	Logger               *slog.Logger

	// サービス
	CompanyService     CompanyServiceInterface
	JobService         JobServiceInterface
	PublicJobService   PublicJobServiceInterface
	ApplicationService ApplicationServiceInterface
	UserService        UserServiceInterface

	// Webhook
	WebhookVerifier WebhookVerifierInterface
	WebhookService  WebhookServiceInterface

	// メトリクス
	MetricsCollector metrics.MetricsCollector
	MetricsGatherer  prometheus.Gatherer

	// アップロード上限（バイト）
	MaxUploadSize int64
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics → RateLimit(General)
//
// 企業ルートは企業JWT、ユーザールートはIDプロバイダのBearerトークンで保護する。
// Webhookは署名検証をハンドラー内で行うため認証ミドルウェアの外に置く。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.MetricsCollector != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsCollector))
	}
	r.Use(deps.RateLimiter.GeneralMiddleware())

	companyHandler := NewCompanyHandler(deps.CompanyService, deps.JobService, deps.ApplicationService, deps.MaxUploadSize)
	userHandler := NewUserHandler(deps.UserService, deps.ApplicationService, deps.MaxUploadSize)
	jobHandler := NewJobHandler(deps.PublicJobService)
	webhookHandler := NewWebhookHandler(deps.WebhookVerifier, deps.WebhookService, deps.MetricsCollector)

	// --- 認証不要のルート ---

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// 公開求人
	r.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", jobHandler.List)
		r.Get("/{id}", jobHandler.Get)
	})

	// IDプロバイダWebhook（署名検証はハンドラー内）
	r.Post("/webhooks", webhookHandler.Receive)

	// --- 企業ルート ---
	r.Route("/api/company", func(r chi.Router) {
		// 登録・ログインは総当たり対策の専用レート制限付き
		r.With(deps.RateLimiter.RegisterMiddleware()).Post("/register", companyHandler.Register)
		r.With(deps.RateLimiter.RegisterMiddleware()).Post("/login", companyHandler.Login)

		// 企業JWTで保護されたルート
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewCompanyAuthMiddleware(deps.CompanyTokenVerifier, deps.CompanyFinder))

			r.Get("/", companyHandler.Profile)
			r.Post("/post-job", companyHandler.PostJob)
			r.Get("/list-jobs", companyHandler.ListJobs)
			r.Get("/applicants", companyHandler.Applicants)
			r.Post("/change-status", companyHandler.ChangeStatus)
			r.Post("/change-visibility", companyHandler.ChangeVisibility)
		})
	})

	// --- ユーザールート ---
	// IDプロバイダのBearerトークンで保護する
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.NewUserAuthMiddleware(deps.UserTokenVerifier))

		r.Get("/", userHandler.Profile)
		r.Post("/apply", userHandler.Apply)
		r.Get("/applications", userHandler.Applications)
		r.Post("/update-resume", userHandler.UpdateResume)
	})

	return r
}
