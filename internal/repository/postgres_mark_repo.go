package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/calendula/internal/model"
)

// PostgresMarkRepo はPostgreSQLを使用したマークリポジトリ。
type PostgresMarkRepo struct {
	db *sql.DB
}

// NewPostgresMarkRepo はPostgresMarkRepoを生成する。
func NewPostgresMarkRepo(db *sql.DB) *PostgresMarkRepo {
	return &PostgresMarkRepo{db: db}
}

// ListByUserID はユーザーのマーク一覧を返す。
func (r *PostgresMarkRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Mark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, usuario_id, fecha, turno_id
		 FROM turnos_marcados
		 WHERE usuario_id = $1
		 ORDER BY fecha`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}
	defer rows.Close()

	var marks []*model.Mark
	for rows.Next() {
		m := &model.Mark{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.ShiftTypeID); err != nil {
			return nil, fmt.Errorf("failed to scan mark: %w", err)
		}
		marks = append(marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate marks: %w", err)
	}

	return marks, nil
}

// Create はマークを作成する。
// 一意制約違反（同一ユーザー・同一日付・同一turnoの重複）と
// 外部キー違反（存在しないturnoへの参照）はどちらもErrMarkConflictになる。
func (r *PostgresMarkRepo) Create(ctx context.Context, mark *model.Mark) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO turnos_marcados (id, usuario_id, fecha, turno_id)
		 VALUES ($1, $2, $3, $4)`,
		mark.ID, mark.UserID, mark.Date, mark.ShiftTypeID,
	)
	if err != nil {
		if isPQErrorCode(err, pgUniqueViolation) || isPQErrorCode(err, pgForeignKeyViolation) {
			return ErrMarkConflict
		}
		return fmt.Errorf("failed to insert mark: %w", err)
	}
	return nil
}

// Delete は (id, userID) が一致する行を削除する。該当行が存在したかどうかを返す。
func (r *PostgresMarkRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM turnos_marcados WHERE id = $1 AND usuario_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete mark: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ MarkRepository = (*PostgresMarkRepo)(nil)
