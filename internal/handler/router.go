package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/calendula/internal/metrics"
	"github.com/hitoshi/calendula/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Metrics           *metrics.Collector
	MetricsGatherer   prometheus.Gatherer

	// アカウント
	AccountService AccountServiceInterface
	TokenIssuer    SessionTokenIssuer
	AccountConfig  AccountHandlerConfig

	// シフト種別
	ShiftTypeService ShiftTypeServiceInterface

	// マーク
	MarkService MarkServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 認証が必要なルートにはさらに Session → RateLimit(General) を適用する。
// 登録・ログインにはIP単位のRateLimit(Auth)を適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(deps.Metrics.Middleware())

	accountHandler := NewAccountHandler(deps.AccountService, deps.TokenIssuer, deps.AccountConfig)
	shiftTypeHandler := NewShiftTypeHandler(deps.ShiftTypeService)
	markHandler := NewMarkHandler(deps.MarkService)

	// --- 認証不要のルート ---

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.SetupMetricsRoute(deps.MetricsGatherer))

	// 登録・ログイン（IP単位の専用レート制限）
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.AuthMiddleware())

		r.Post("/api/usuarios", accountHandler.Register)
		r.Post("/api/login", accountHandler.Login)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.TokenVerifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// セッション管理
		r.Post("/api/logout", accountHandler.Logout)

		// アカウント管理
		r.Route("/api/usuarios/me", func(r chi.Router) {
			r.Get("/", accountHandler.GetProfile)
			r.Put("/", accountHandler.UpdateProfile)
			r.Delete("/", accountHandler.DeleteAccount)
			r.Put("/contrasena", accountHandler.UpdatePassword)
		})

		// シフト種別管理
		r.Route("/api/turnos", func(r chi.Router) {
			r.Get("/", shiftTypeHandler.List)
			r.Post("/", shiftTypeHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", shiftTypeHandler.Update)
				r.Delete("/", shiftTypeHandler.Delete)
			})
		})

		// マーク管理
		r.Route("/api/turnos_marcados", func(r chi.Router) {
			r.Get("/", markHandler.List)
			r.Post("/", markHandler.Create)
			r.Delete("/{id}", markHandler.Delete)
		})
	})

	return r
}
