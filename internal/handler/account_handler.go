package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/calendula/internal/account"
	"github.com/hitoshi/calendula/internal/middleware"
	"github.com/hitoshi/calendula/internal/model"
)

// AccountServiceInterface はアカウントハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	// Register は新規ユーザーを登録し、ユーザーIDを返す。
	Register(ctx context.Context, name, email, password string) (string, error)
	// Authenticate は資格情報を検証し、一致したユーザーのプロフィールを返す。
	Authenticate(ctx context.Context, email, password string) (*account.Profile, error)
	// GetProfile はユーザーのプロフィールを返す。
	GetProfile(ctx context.Context, userID string) (*account.Profile, error)
	// UpdateProfile は名前とメールアドレスを更新する。
	UpdateProfile(ctx context.Context, userID, name, email string) error
	// UpdatePassword は現在のパスワードを検証した上で更新する。
	UpdatePassword(ctx context.Context, userID, current, newPassword string) error
	// DeleteAccount はユーザーと所有データを削除する。
	DeleteAccount(ctx context.Context, userID string) error
}

// SessionTokenIssuer はセッショントークンの発行に必要なインターフェース。
// auth.TokenManagerの部分集合として定義する。
type SessionTokenIssuer interface {
	Issue(userID string) (string, error)
}

// AccountHandlerConfig はアカウントハンドラーの設定。
type AccountHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AccountHandler はアカウント管理のHTTPハンドラー。
type AccountHandler struct {
	service AccountServiceInterface
	issuer  SessionTokenIssuer
	config  AccountHandlerConfig
}

// NewAccountHandler はAccountHandlerを生成する。
func NewAccountHandler(service AccountServiceInterface, issuer SessionTokenIssuer, config AccountHandlerConfig) *AccountHandler {
	return &AccountHandler{
		service: service,
		issuer:  issuer,
		config:  config,
	}
}

// registerRequest はユーザー登録リクエストのボディ。
type registerRequest struct {
	Nombre     string `json:"nombre"`
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

// updateProfileRequest はプロフィール更新リクエストのボディ。
type updateProfileRequest struct {
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
}

// updatePasswordRequest はパスワード変更リクエストのボディ。
type updatePasswordRequest struct {
	Actual string `json:"actual"`
	Nueva  string `json:"nueva"`
}

// userResponse はユーザー情報のAPIレスポンス。パスワードハッシュは含まない。
type userResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
}

// Register はユーザー登録を処理する。
// POST /api/usuarios
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidJSONError())
		return
	}

	userID, err := h.service.Register(r.Context(), req.Nombre, req.Correo, req.Contrasena)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"mensaje": "Usuario registrado exitosamente",
		"user_id": userID,
	})
}

// Login は資格情報を検証し、セッションCookieを設定する。
// POST /api/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidJSONError())
		return
	}

	profile, err := h.service.Authenticate(r.Context(), req.Correo, req.Contrasena)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.issuer.Issue(profile.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// セッショントークンをHTTP Only Cookieに設定
	http.SetCookie(w, h.sessionCookie(token, h.config.SessionMaxAge))

	writeJSON(w, http.StatusOK, userResponse{
		ID:     profile.ID,
		Nombre: profile.Name,
		Correo: profile.Email,
	})
}

// Logout はセッションCookieをクリアする。
// POST /api/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// トークンはステートレスなのでCookieのクリアのみで完了する
	http.SetCookie(w, h.sessionCookie("", -1))

	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Sesión cerrada"})
}

// GetProfile は現在のログインユーザーのプロフィールを返す。
// GET /api/usuarios/me
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:     profile.ID,
		Nombre: profile.Name,
		Correo: profile.Email,
	})
}

// UpdateProfile は名前とメールアドレスを更新する。
// PUT /api/usuarios/me
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidJSONError())
		return
	}

	if err := h.service.UpdateProfile(r.Context(), userID, req.Nombre, req.Correo); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Perfil actualizado"})
}

// UpdatePassword は現在のパスワードを検証した上で新しいパスワードに変更する。
// PUT /api/usuarios/me/contrasena
func (h *AccountHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidJSONError())
		return
	}

	if err := h.service.UpdatePassword(r.Context(), userID, req.Actual, req.Nueva); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Contraseña actualizada"})
}

// DeleteAccount はアカウントと所有データを削除し、セッションCookieをクリアする。
// DELETE /api/usuarios/me
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie("", -1))

	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Cuenta eliminada"})
}

// sessionCookie はセッションCookieを構築する。maxAgeに-1を渡すと削除になる。
func (h *AccountHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
