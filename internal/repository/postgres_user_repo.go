package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/calendula/internal/model"
)

// PostgreSQLのエラーコード
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isPQErrorCode はerrがlib/pqの指定コードのエラーかどうかを判定する。
func isPQErrorCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nombre, correo, contrasena_hash, fecha_creacion FROM usuarios WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return user, nil
}

// FindByEmail は正規化済みメールアドレスでユーザーを取得する。
// 見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nombre, correo, contrasena_hash, fecha_creacion FROM usuarios WHERE correo = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return user, nil
}

// CreateWithDefaults はユーザーとデフォルトのシフト種別を同一トランザクションで作成する。
// 読み取り側がデフォルト行を部分的に観測することはない。
func (r *PostgresUserRepo) CreateWithDefaults(ctx context.Context, user *model.User, defaults []*model.ShiftType) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// ユーザーを作成
	_, err = tx.ExecContext(ctx,
		`INSERT INTO usuarios (id, nombre, correo, contrasena_hash, fecha_creacion)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if isPQErrorCode(err, pgUniqueViolation) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	// デフォルトのシフト種別を作成
	for _, st := range defaults {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO turnos (id, usuario_id, nombre, abre, tipo, todo_dia, inicio, fin, color_f, color_t)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			st.ID, st.UserID, st.Name, st.OpensWith, st.Effect, st.IsFullDay,
			st.StartTime, st.EndTime, st.ColorFG, st.ColorBG,
		)
		if err != nil {
			return fmt.Errorf("failed to insert default shift type: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateProfile は名前とメールアドレスを更新する。該当行が存在したかどうかを返す。
func (r *PostgresUserRepo) UpdateProfile(ctx context.Context, id, name, email string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET nombre = $1, correo = $2 WHERE id = $3`,
		name, email, id,
	)
	if err != nil {
		if isPQErrorCode(err, pgUniqueViolation) {
			return false, ErrDuplicateEmail
		}
		return false, fmt.Errorf("failed to update profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// UpdatePasswordHash はパスワードハッシュを更新する。該当行が存在したかどうかを返す。
func (r *PostgresUserRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET contrasena_hash = $1 WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update password hash: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByID は指定IDのユーザーを削除する。
// 関連するturnos、turnos_marcadosはCASCADE削除される。
func (r *PostgresUserRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM usuarios WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
