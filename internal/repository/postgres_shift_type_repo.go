package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/calendula/internal/model"
)

// PostgresShiftTypeRepo はPostgreSQLを使用したシフト種別リポジトリ。
type PostgresShiftTypeRepo struct {
	db *sql.DB
}

// NewPostgresShiftTypeRepo はPostgresShiftTypeRepoを生成する。
func NewPostgresShiftTypeRepo(db *sql.DB) *PostgresShiftTypeRepo {
	return &PostgresShiftTypeRepo{db: db}
}

// ListByUserID はユーザーのシフト種別一覧を返す。
func (r *PostgresShiftTypeRepo) ListByUserID(ctx context.Context, userID string) ([]*model.ShiftType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, usuario_id, nombre, abre, tipo, todo_dia, inicio, fin, color_f, color_t
		 FROM turnos
		 WHERE usuario_id = $1
		 ORDER BY nombre`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift types: %w", err)
	}
	defer rows.Close()

	var shiftTypes []*model.ShiftType
	for rows.Next() {
		st := &model.ShiftType{}
		if err := rows.Scan(
			&st.ID, &st.UserID, &st.Name, &st.OpensWith, &st.Effect,
			&st.IsFullDay, &st.StartTime, &st.EndTime, &st.ColorFG, &st.ColorBG,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		shiftTypes = append(shiftTypes, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift types: %w", err)
	}

	return shiftTypes, nil
}

// FindByIDAndUser は指定ユーザー所有のシフト種別を取得する。見つからない場合はnilを返す。
func (r *PostgresShiftTypeRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.ShiftType, error) {
	st := &model.ShiftType{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, usuario_id, nombre, abre, tipo, todo_dia, inicio, fin, color_f, color_t
		 FROM turnos
		 WHERE id = $1 AND usuario_id = $2`,
		id, userID,
	).Scan(
		&st.ID, &st.UserID, &st.Name, &st.OpensWith, &st.Effect,
		&st.IsFullDay, &st.StartTime, &st.EndTime, &st.ColorFG, &st.ColorBG,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shift type: %w", err)
	}

	return st, nil
}

// Create はシフト種別を作成する。
func (r *PostgresShiftTypeRepo) Create(ctx context.Context, shiftType *model.ShiftType) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO turnos (id, usuario_id, nombre, abre, tipo, todo_dia, inicio, fin, color_f, color_t)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		shiftType.ID, shiftType.UserID, shiftType.Name, shiftType.OpensWith, shiftType.Effect,
		shiftType.IsFullDay, shiftType.StartTime, shiftType.EndTime, shiftType.ColorFG, shiftType.ColorBG,
	)
	if err != nil {
		return fmt.Errorf("failed to insert shift type: %w", err)
	}
	return nil
}

// Update は (ID, UserID) が一致する行を更新する。該当行が存在したかどうかを返す。
func (r *PostgresShiftTypeRepo) Update(ctx context.Context, shiftType *model.ShiftType) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE turnos
		 SET nombre = $1, abre = $2, tipo = $3, todo_dia = $4, inicio = $5, fin = $6, color_f = $7, color_t = $8
		 WHERE id = $9 AND usuario_id = $10`,
		shiftType.Name, shiftType.OpensWith, shiftType.Effect, shiftType.IsFullDay,
		shiftType.StartTime, shiftType.EndTime, shiftType.ColorFG, shiftType.ColorBG,
		shiftType.ID, shiftType.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update shift type: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Delete は (id, userID) が一致する行を削除する。
// 参照するturnos_marcadosはCASCADE削除される。
func (r *PostgresShiftTypeRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM turnos WHERE id = $1 AND usuario_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete shift type: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ ShiftTypeRepository = (*PostgresShiftTypeRepo)(nil)
