// Package account はユーザーアカウント管理のドメインロジックを提供する。
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/calendula/internal/model"
	"github.com/hitoshi/calendula/internal/repository"
)

// PasswordHasher はパスワードのハッシュ化・検証インターフェース。
type PasswordHasher interface {
	// Hash は平文パスワードのハッシュを生成する。
	Hash(password string) (string, error)
	// Compare は保存済みハッシュと平文パスワードの一致を検証する。
	Compare(hash, password string) bool
}

// Profile はパスワードハッシュを含まないユーザー情報。
// アカウント管理層の外に返すのはこの型のみ。
type Profile struct {
	ID    string
	Name  string
	Email string
}

// Service はアカウント管理のサービス層。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, hasher PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Register は新規ユーザーを登録し、ユーザーIDを返す。
// 登録と同時にデフォルトのシフト種別5件が原子的に作成される。
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return "", model.NewRequiredFieldsError()
	}
	if !isValidEmail(email) {
		return "", model.NewInvalidEmailError()
	}

	// 一意制約でも防がれるが、先に確認して分かりやすいエラーを返す
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return "", model.NewEmailTakenError()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.CreateWithDefaults(ctx, user, DefaultShiftTypes(user.ID)); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", model.NewEmailTakenError()
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
	)
	return user.ID, nil
}

// Authenticate はメールアドレスとパスワードを検証し、一致したユーザーの
// プロフィールを返す。どちらの要素が誤っていたかは区別して伝えない。
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Profile, error) {
	email = normalizeEmail(email)

	if email == "" || password == "" {
		return nil, model.NewMissingFieldsError()
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, password) {
		return nil, model.NewInvalidCredentialsError()
	}

	return toProfile(user), nil
}

// GetProfile は指定ユーザーのプロフィールを返す。
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return toProfile(user), nil
}

// UpdateProfile は名前とメールアドレスを更新する。
// 別ユーザーが使用中のメールアドレスへの変更は拒否する。
func (s *Service) UpdateProfile(ctx context.Context, userID, name, email string) error {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" {
		return model.NewMissingFieldsError()
	}
	if !isValidEmail(email) {
		return model.NewInvalidEmailError()
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil && existing.ID != userID {
		return model.NewEmailInUseError()
	}

	updated, err := s.userRepo.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.NewEmailInUseError()
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if !updated {
		return model.NewUserNotFoundError()
	}
	return nil
}

// UpdatePassword は現在のパスワードを検証した上で新しいパスワードに更新する。
func (s *Service) UpdatePassword(ctx context.Context, userID, current, newPassword string) error {
	if current == "" || newPassword == "" {
		return model.NewMissingFieldsError()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	if !s.hasher.Compare(user.PasswordHash, current) {
		return model.NewWrongPasswordError()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.userRepo.UpdatePasswordHash(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if !updated {
		return model.NewUserNotFoundError()
	}

	slog.Info("password updated",
		slog.String("user_id", userID),
	)
	return nil
}

// DeleteAccount はユーザーを削除する。
// 所有するシフト種別とマークはストレージ層でCASCADE削除される。
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	deleted, err := s.userRepo.DeleteByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return model.NewUserNotFoundError()
	}

	slog.Info("account deleted",
		slog.String("user_id", userID),
	)
	return nil
}

// normalizeEmail はメールアドレスを正規化する（前後空白除去 + 小文字化）。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isValidEmail はメールアドレスの簡易形式チェックを行う。
func isValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// toProfile はUserからパスワードハッシュを除いたProfileに変換する。
func toProfile(user *model.User) *Profile {
	return &Profile{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
