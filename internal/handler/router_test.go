package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/calendula/internal/logger"
	"github.com/hitoshi/calendula/internal/metrics"
	"github.com/hitoshi/calendula/internal/middleware"
)

// --- モック ---

type stubVerifier struct{}

func (s *stubVerifier) Verify(tokenString string) (string, error) {
	if tokenString == "valid-token" {
		return "user-1", nil
	}
	return "", fmt.Errorf("invalid token")
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	registry := prometheus.NewRegistry()
	rl := middleware.NewRateLimiter(middleware.NewRateLimiterConfig(120, 10))
	t.Cleanup(rl.Stop)

	deps := &RouterDeps{
		Logger:            logger.Setup(&strings.Builder{}),
		TokenVerifier:     &stubVerifier{},
		CORSAllowedOrigin: "http://127.0.0.1:5500",
		RateLimiter:       rl,
		Metrics:           metrics.NewCollector(registry),
		MetricsGatherer:   registry,

		AccountService: &mockAccountService{},
		TokenIssuer:    &mockIssuer{},
		AccountConfig:  AccountHandlerConfig{SessionMaxAge: 3600},

		ShiftTypeService: &mockShiftTypeService{},
		MarkService:      &mockMarkService{},
	}

	return NewRouter(deps)
}

// --- テスト ---

// TestRouter_UnauthenticatedRequests はCookieなしの保護ルートが401になることを検証する。
func TestRouter_UnauthenticatedRequests(t *testing.T) {
	router := newTestRouter(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/logout"},
		{http.MethodGet, "/api/usuarios/me"},
		{http.MethodPut, "/api/usuarios/me"},
		{http.MethodDelete, "/api/usuarios/me"},
		{http.MethodPut, "/api/usuarios/me/contrasena"},
		{http.MethodGet, "/api/turnos"},
		{http.MethodPost, "/api/turnos"},
		{http.MethodPut, "/api/turnos/st-1"},
		{http.MethodDelete, "/api/turnos/st-1"},
		{http.MethodGet, "/api/turnos_marcados"},
		{http.MethodPost, "/api/turnos_marcados"},
		{http.MethodDelete, "/api/turnos_marcados/mark-1"},
	}

	for _, tt := range protected {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

// TestRouter_AuthenticatedRequest は有効なCookie付きリクエストが通ることを検証する。
func TestRouter_AuthenticatedRequest(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/turnos", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "valid-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

// TestRouter_PublicRoutes は登録・ログインが認証なしで到達できることを検証する。
func TestRouter_PublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	body := `{"nombre":"Ana","correo":"ana@example.com","contrasena":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("register: status = %d, want %d", w.Code, http.StatusCreated)
	}

	body = `{"correo":"ana@example.com","contrasena":"secret"}`
	req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("login: status = %d, want %d", w.Code, http.StatusOK)
	}
}

// TestRouter_Health はヘルスチェックエンドポイントを検証する。
func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

// TestRouter_Metrics はメトリクスエンドポイントがPrometheus形式を返すことを検証する。
func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t)

	// 先に1リクエスト流してカウンタを進める
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "calendula_http_requests_total") {
		t.Error("response should contain calendula_http_requests_total metric")
	}
}

// TestRouter_SecurityHeaders はセキュリティヘッダーが全レスポンスに付くことを検証する。
func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

// TestRouter_Preflight はOPTIONSプリフライトが204で応答することを検証する。
func TestRouter_Preflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/turnos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://127.0.0.1:5500" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

// TestRouter_UnknownRoute は未定義ルートが404になることを検証する。
func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/desconocido", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
