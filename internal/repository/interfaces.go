// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/calendula/internal/model"
)

// ErrDuplicateEmail はメールアドレスの一意制約違反を示す。
var ErrDuplicateEmail = errors.New("email already registered")

// ErrMarkConflict はマークの一意制約違反または参照先turnoの不正を示す。
// どちらの違反かは呼び出し側に区別して伝えない。
var ErrMarkConflict = errors.New("mark already exists or references an invalid shift type")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は正規化済みメールアドレスでユーザーを取得する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// CreateWithDefaults はユーザーとデフォルトのシフト種別5件を
	// 同一トランザクションで作成する。全件成功か全件失敗のいずれかになる。
	// メールアドレスが重複している場合はErrDuplicateEmailを返す。
	CreateWithDefaults(ctx context.Context, user *model.User, defaults []*model.ShiftType) error

	// UpdateProfile は名前とメールアドレスを更新する。
	// 該当行が存在したかどうかを返す。重複メールはErrDuplicateEmailを返す。
	UpdateProfile(ctx context.Context, id, name, email string) (bool, error)

	// UpdatePasswordHash はパスワードハッシュを更新する。
	// 該当行が存在したかどうかを返す。
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) (bool, error)

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するturnos、turnos_marcadosはCASCADE削除される。
	// 該当行が存在したかどうかを返す。
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// ShiftTypeRepository はシフト種別データの永続化インターフェース。
// 更新・削除は (id, userID) の両方が一致する行のみを対象とし、
// 他ユーザー所有の行は存在しない行と同様に扱う。
type ShiftTypeRepository interface {
	// ListByUserID はユーザーのシフト種別一覧を返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.ShiftType, error)

	// FindByIDAndUser は指定ユーザー所有のシフト種別を取得する。
	// 見つからない場合はnilを返す。
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.ShiftType, error)

	// Create はシフト種別を作成する。
	Create(ctx context.Context, shiftType *model.ShiftType) error

	// Update は (ID, UserID) が一致する行を更新する。
	// 該当行が存在したかどうかを返す。
	Update(ctx context.Context, shiftType *model.ShiftType) (bool, error)

	// Delete は (id, userID) が一致する行を削除する。
	// 参照するturnos_marcadosはCASCADE削除される。
	// 該当行が存在したかどうかを返す。
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// MarkRepository はマークデータの永続化インターフェース。
type MarkRepository interface {
	// ListByUserID はユーザーのマーク一覧を返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Mark, error)

	// Create はマークを作成する。
	// (usuario_id, fecha, turno_id) の重複または参照先turnoの不正は
	// ErrMarkConflictを返す。
	Create(ctx context.Context, mark *model.Mark) error

	// Delete は (id, userID) が一致する行を削除する。
	// 該当行が存在したかどうかを返す。
	Delete(ctx context.Context, id, userID string) (bool, error)
}
