package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/calendula/internal/middleware"
	"github.com/hitoshi/calendula/internal/model"
	"github.com/hitoshi/calendula/internal/shifttype"
)

// ShiftTypeServiceInterface はシフト種別ハンドラーが必要とするサービスインターフェース。
type ShiftTypeServiceInterface interface {
	// List はユーザーのシフト種別一覧を返す。
	List(ctx context.Context, userID string) ([]*model.ShiftType, error)
	// Create は新しいシフト種別を作成して返す。
	Create(ctx context.Context, userID string, input shifttype.Input) (*model.ShiftType, error)
	// Update は既存のシフト種別を更新し、更新後の状態を返す。
	Update(ctx context.Context, userID, id string, input shifttype.Input) (*model.ShiftType, error)
	// Delete はシフト種別を削除する。
	Delete(ctx context.Context, userID, id string) error
}

// ShiftTypeHandler はシフト種別管理のHTTPハンドラー。
type ShiftTypeHandler struct {
	service ShiftTypeServiceInterface
}

// NewShiftTypeHandler はShiftTypeHandlerを生成する。
func NewShiftTypeHandler(service ShiftTypeServiceInterface) *ShiftTypeHandler {
	return &ShiftTypeHandler{service: service}
}

// shiftTypeRequest はシフト種別の作成・更新リクエストのボディ。
type shiftTypeRequest struct {
	Nombre  string  `json:"nombre"`
	Abre    string  `json:"abre"`
	Tipo    string  `json:"tipo"`
	TodoDia bool    `json:"todoDia"`
	Inicio  *string `json:"inicio"`
	Fin     *string `json:"fin"`
	ColorF  string  `json:"colorF"`
	ColorT  string  `json:"colorT"`
}

// shiftTypeResponse はシフト種別のAPIレスポンス。
type shiftTypeResponse struct {
	ID      string  `json:"id"`
	Nombre  string  `json:"nombre"`
	Abre    string  `json:"abre"`
	Tipo    string  `json:"tipo"`
	TodoDia bool    `json:"todoDia"`
	Inicio  *string `json:"inicio"`
	Fin     *string `json:"fin"`
	ColorF  string  `json:"colorF"`
	ColorT  string  `json:"colorT"`
}

// List はシフト種別一覧を返す。
// GET /api/turnos
func (h *ShiftTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	shiftTypes, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]shiftTypeResponse, len(shiftTypes))
	for i, st := range shiftTypes {
		results[i] = toShiftTypeResponse(st)
	}
	writeJSON(w, http.StatusOK, results)
}

// Create はシフト種別を作成する。
// POST /api/turnos
func (h *ShiftTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	var req shiftTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidJSONError())
		return
	}

	st, err := h.service.Create(r.Context(), userID, toShiftTypeInput(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toShiftTypeResponse(st))
}

// Update はシフト種別を更新する。
// PUT /api/turnos/{id}
func (h *ShiftTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthenticatedError())
		return
	}

	var req shiftTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidJSONError())
		return
	}

	id := chi.URLParam(r, "id")
	st, err := h.service.Update(r.Context(), userID, id, toShiftTypeInput(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftTypeResponse(st))
}

// Delete はシフト種別を削除する。
// DELETE /api/turnos/{id}
func (h *ShiftTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Turno eliminado"})
}

// toShiftTypeInput はリクエストボディをサービス層の入力値に変換する。
func toShiftTypeInput(req shiftTypeRequest) shifttype.Input {
	return shifttype.Input{
		Name:      req.Nombre,
		OpensWith: req.Abre,
		Effect:    model.Effect(req.Tipo),
		IsFullDay: req.TodoDia,
		StartTime: req.Inicio,
		EndTime:   req.Fin,
		ColorFG:   req.ColorF,
		ColorBG:   req.ColorT,
	}
}

// toShiftTypeResponse はドメインのShiftTypeをAPIレスポンスに変換する。
func toShiftTypeResponse(st *model.ShiftType) shiftTypeResponse {
	return shiftTypeResponse{
		ID:      st.ID,
		Nombre:  st.Name,
		Abre:    st.OpensWith,
		Tipo:    string(st.Effect),
		TodoDia: st.IsFullDay,
		Inicio:  st.StartTime,
		Fin:     st.EndTime,
		ColorF:  st.ColorFG,
		ColorT:  st.ColorBG,
	}
}
