// Package mark はカレンダー上のマーク（日付へのシフト割り当て）管理を提供する。
package mark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/calendula/internal/model"
	"github.com/hitoshi/calendula/internal/repository"
)

// dateLayout はマーク日付の形式。実在しない日付はパース時に弾かれる。
const dateLayout = "2006-01-02"

// Service はマーク管理のサービス層。
type Service struct {
	markRepo      repository.MarkRepository
	shiftTypeRepo repository.ShiftTypeRepository
}

// NewService はServiceを生成する。
func NewService(markRepo repository.MarkRepository, shiftTypeRepo repository.ShiftTypeRepository) *Service {
	return &Service{
		markRepo:      markRepo,
		shiftTypeRepo: shiftTypeRepo,
	}
}

// List はユーザーのマーク一覧を返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Mark, error) {
	marks, err := s.markRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}
	return marks, nil
}

// Create は指定日付にシフト種別のマークを作成して返す。
// 参照先のシフト種別が存在しない・他ユーザー所有の場合と、
// 同一日付への重複マークは、区別せず同じ競合エラーになる。
func (s *Service) Create(ctx context.Context, userID, date, shiftTypeID string) (*model.Mark, error) {
	if date == "" || shiftTypeID == "" {
		return nil, model.NewMissingFieldsError()
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, model.NewInvalidDateError()
	}

	st, err := s.shiftTypeRepo.FindByIDAndUser(ctx, shiftTypeID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find shift type: %w", err)
	}
	if st == nil {
		return nil, model.NewMarkConflictError()
	}

	m := &model.Mark{
		ID:          uuid.New().String(),
		UserID:      userID,
		Date:        date,
		ShiftTypeID: shiftTypeID,
	}
	if err := s.markRepo.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrMarkConflict) {
			return nil, model.NewMarkConflictError()
		}
		return nil, fmt.Errorf("failed to create mark: %w", err)
	}

	slog.Info("mark created",
		slog.String("user_id", userID),
		slog.String("mark_id", m.ID),
		slog.String("fecha", date),
	)
	return m, nil
}

// Delete はマークを削除する。他ユーザーのマークは存在しないものとして扱う。
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	deleted, err := s.markRepo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete mark: %w", err)
	}
	if !deleted {
		return model.NewMarkNotFoundError()
	}

	slog.Info("mark deleted",
		slog.String("user_id", userID),
		slog.String("mark_id", id),
	)
	return nil
}
