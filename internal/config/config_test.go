package config

import (
	"strings"
	"testing"
)

// TestLoad_RequiredFields は必須環境変数が未設定の場合にエラーになることを検証する。
func TestLoad_RequiredFields(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when DATABASE_URL is not set")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

// TestLoad_Defaults はオプション設定のデフォルト値を検証する。
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/calendula")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("SESSION_MAX_AGE", "")
	t.Setenv("RATE_LIMIT_GENERAL", "")
	t.Setenv("RATE_LIMIT_AUTH", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.SessionMaxAge != 86400 {
		t.Errorf("SessionMaxAge = %d, want 86400", cfg.SessionMaxAge)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want 120", cfg.RateLimitGeneral)
	}
	if cfg.RateLimitAuth != 10 {
		t.Errorf("RateLimitAuth = %d, want 10", cfg.RateLimitAuth)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure should be false for http base URL")
	}
}

// TestLoad_SessionSecret_FromEnv は環境変数の署名鍵が優先されることを検証する。
func TestLoad_SessionSecret_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/calendula")
	t.Setenv("SESSION_SECRET", "fixed-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(cfg.SessionSecret) != "fixed-secret" {
		t.Errorf("SessionSecret = %q, want fixed-secret", cfg.SessionSecret)
	}
}

// TestLoad_SessionSecret_Generated は未設定時にランダムな署名鍵が生成される
// ことを検証する。プロセスごとに異なるため再起動でセッションは失効する。
func TestLoad_SessionSecret_Generated(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/calendula")
	t.Setenv("SESSION_SECRET", "")

	cfg1, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg1.SessionSecret) == 0 {
		t.Fatal("expected generated session secret")
	}

	cfg2, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(cfg1.SessionSecret) == string(cfg2.SessionSecret) {
		t.Error("expected a fresh random secret per load")
	}
}

// TestLoad_CookieSecure はhttpsのBASE_URLでSecure Cookieが有効になることを検証する。
func TestLoad_CookieSecure(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/calendula")
	t.Setenv("BASE_URL", "https://calendula.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure should be true for https base URL")
	}
}

// TestLoad_InvalidIntFallsBack は数値でない環境変数がデフォルトに戻ることを検証する。
func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/calendula")
	t.Setenv("SESSION_MAX_AGE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SessionMaxAge != 86400 {
		t.Errorf("SessionMaxAge = %d, want 86400", cfg.SessionMaxAge)
	}
}
