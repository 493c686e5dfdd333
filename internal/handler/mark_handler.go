package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/calendula/internal/middleware"
	"github.com/hitoshi/calendula/internal/model"
)

// MarkServiceInterface はマークハンドラーが必要とするサービスインターフェース。
type MarkServiceInterface interface {
	// List はユーザーのマーク一覧を返す。
	List(ctx context.Context, userID string) ([]*model.Mark, error)
	// Create は指定日付にシフト種別のマークを作成して返す。
	Create(ctx context.Context, userID, date, shiftTypeID string) (*model.Mark, error)
	// Delete はマークを削除する。
	Delete(ctx context.Context, userID, id string) error
}

// MarkHandler はカレンダーマーク管理のHTTPハンドラー。
type MarkHandler struct {
	service MarkServiceInterface
}

// NewMarkHandler はMarkHandlerを生成する。
func NewMarkHandler(service MarkServiceInterface) *MarkHandler {
	return &MarkHandler{service: service}
}

// markRequest はマーク作成リクエストのボディ。
type markRequest struct {
	Fecha   string `json:"fecha"`
	TurnoID string `json:"turno_id"`
}

// markResponse はマークのAPIレスポンス。
type markResponse struct {
	ID      string `json:"id"`
	Fecha   string `json:"fecha"`
	TurnoID string `json:"turno_id"`
}

// List はマーク一覧を返す。
// GET /api/turnos_marcados
func (h *MarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	marks, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]markResponse, len(marks))
	for i, m := range marks {
		results[i] = toMarkResponse(m)
	}
	writeJSON(w, http.StatusOK, results)
}

// Create はマークを作成する。
// POST /api/turnos_marcados
func (h *MarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidJSONError())
		return
	}

	m, err := h.service.Create(r.Context(), userID, req.Fecha, req.TurnoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMarkResponse(m))
}

// Delete はマークを削除する。
// DELETE /api/turnos_marcados/{id}
func (h *MarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Turno desmarcado"})
}

// toMarkResponse はドメインのMarkをAPIレスポンスに変換する。
func toMarkResponse(m *model.Mark) markResponse {
	return markResponse{
		ID:      m.ID,
		Fecha:   m.Date,
		TurnoID: m.ShiftTypeID,
	}
}
