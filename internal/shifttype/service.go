// Package shifttype はシフト種別（ターノ）管理のドメインロジックを提供する。
package shifttype

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hitoshi/calendula/internal/model"
	"github.com/hitoshi/calendula/internal/repository"
)

// Service はシフト種別管理のサービス層。
// すべての操作は呼び出しユーザーが所有するシフト種別のみを対象とする。
type Service struct {
	shiftTypeRepo repository.ShiftTypeRepository
}

// NewService はServiceを生成する。
func NewService(shiftTypeRepo repository.ShiftTypeRepository) *Service {
	return &Service{shiftTypeRepo: shiftTypeRepo}
}

// List はユーザーのシフト種別一覧を返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.ShiftType, error) {
	shiftTypes, err := s.shiftTypeRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift types: %w", err)
	}
	return shiftTypes, nil
}

// Input はシフト種別の作成・更新の入力値。
type Input struct {
	Name      string
	OpensWith string
	Effect    model.Effect
	IsFullDay bool
	StartTime *string
	EndTime   *string
	ColorFG   string
	ColorBG   string
}

// Create は新しいシフト種別を作成して返す。
func (s *Service) Create(ctx context.Context, userID string, input Input) (*model.ShiftType, error) {
	st, err := buildShiftType(uuid.New().String(), userID, input)
	if err != nil {
		return nil, err
	}

	if err := s.shiftTypeRepo.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to create shift type: %w", err)
	}

	slog.Info("shift type created",
		slog.String("user_id", userID),
		slog.String("shift_type_id", st.ID),
	)
	return st, nil
}

// Update は既存のシフト種別を更新し、更新後の状態を返す。
// 他ユーザーのシフト種別は存在しないものとして扱う。
func (s *Service) Update(ctx context.Context, userID, id string, input Input) (*model.ShiftType, error) {
	st, err := buildShiftType(id, userID, input)
	if err != nil {
		return nil, err
	}

	updated, err := s.shiftTypeRepo.Update(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("failed to update shift type: %w", err)
	}
	if !updated {
		return nil, model.NewShiftTypeNotFoundError()
	}
	return st, nil
}

// Delete はシフト種別を削除する。参照しているマークはCASCADE削除される。
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	deleted, err := s.shiftTypeRepo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shift type: %w", err)
	}
	if !deleted {
		return model.NewShiftTypeNotFoundError()
	}

	slog.Info("shift type deleted",
		slog.String("user_id", userID),
		slog.String("shift_type_id", id),
	)
	return nil
}

// buildShiftType は入力値を検証し、モデルを組み立てる。
func buildShiftType(id, userID string, input Input) (*model.ShiftType, error) {
	name := strings.TrimSpace(input.Name)
	opensWith := strings.TrimSpace(input.OpensWith)

	if name == "" || opensWith == "" {
		return nil, model.NewInvalidShiftDataError()
	}
	if !input.Effect.Valid() {
		return nil, model.NewInvalidShiftDataError()
	}

	st := &model.ShiftType{
		ID:        id,
		UserID:    userID,
		Name:      name,
		OpensWith: opensWith,
		Effect:    input.Effect,
		IsFullDay: input.IsFullDay,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		ColorFG:   input.ColorFG,
		ColorBG:   input.ColorBG,
	}
	// 終日のシフト種別は時刻を持たない
	if st.IsFullDay {
		st.StartTime = nil
		st.EndTime = nil
	}
	return st, nil
}
