package account

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hitoshi/calendula/internal/model"
	"github.com/hitoshi/calendula/internal/repository"
)

// --- モック ---

type mockUserRepo struct {
	findByIDFn           func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn        func(ctx context.Context, email string) (*model.User, error)
	createWithDefaultsFn func(ctx context.Context, user *model.User, defaults []*model.ShiftType) error
	updateProfileFn      func(ctx context.Context, id, name, email string) (bool, error)
	updatePasswordFn     func(ctx context.Context, id, hash string) (bool, error)
	deleteByIDFn         func(ctx context.Context, id string) (bool, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *mockUserRepo) CreateWithDefaults(ctx context.Context, user *model.User, defaults []*model.ShiftType) error {
	if m.createWithDefaultsFn != nil {
		return m.createWithDefaultsFn(ctx, user, defaults)
	}
	return nil
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, id, name, email string) (bool, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, name, email)
	}
	return true, nil
}
func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) (bool, error) {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, hash)
	}
	return true, nil
}
func (m *mockUserRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return true, nil
}

// mockHasher はbcryptを使わない決定的なハッシュ実装。
type mockHasher struct{}

func (m *mockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}
func (m *mockHasher) Compare(hash, password string) bool {
	return hash == "hashed:"+password
}

// --- テスト ---

// TestService_Register_CreatesUserWithDefaults は登録時にデフォルトの
// シフト種別5件が同時に作成されることを検証する。
func TestService_Register_CreatesUserWithDefaults(t *testing.T) {
	var capturedUser *model.User
	var capturedDefaults []*model.ShiftType

	repo := &mockUserRepo{
		createWithDefaultsFn: func(ctx context.Context, user *model.User, defaults []*model.ShiftType) error {
			capturedUser = user
			capturedDefaults = defaults
			return nil
		},
	}
	svc := NewService(repo, &mockHasher{})

	userID, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if userID == "" {
		t.Fatal("expected non-empty user ID")
	}
	if capturedUser == nil {
		t.Fatal("expected CreateWithDefaults to be called")
	}
	if capturedUser.PasswordHash != "hashed:secret" {
		t.Errorf("password hash = %q, want %q", capturedUser.PasswordHash, "hashed:secret")
	}
	if len(capturedDefaults) != 5 {
		t.Fatalf("default shift types = %d, want 5", len(capturedDefaults))
	}

	wantNames := map[string]model.Effect{
		"Mañana":     model.EffectAdd,
		"Tarde":      model.EffectAdd,
		"Noche":      model.EffectAdd,
		"Descanso":   model.EffectSubtract,
		"Vacaciones": model.EffectNone,
	}
	for _, st := range capturedDefaults {
		wantEffect, ok := wantNames[st.Name]
		if !ok {
			t.Errorf("unexpected default shift type %q", st.Name)
			continue
		}
		if st.Effect != wantEffect {
			t.Errorf("%s: effect = %q, want %q", st.Name, st.Effect, wantEffect)
		}
		if st.UserID != capturedUser.ID {
			t.Errorf("%s: user ID = %q, want %q", st.Name, st.UserID, capturedUser.ID)
		}
	}
}

// TestService_Register_NormalizesEmail はメールアドレスが小文字化・空白除去
// されて保存されることを検証する。
func TestService_Register_NormalizesEmail(t *testing.T) {
	var capturedUser *model.User
	repo := &mockUserRepo{
		createWithDefaultsFn: func(ctx context.Context, user *model.User, defaults []*model.ShiftType) error {
			capturedUser = user
			return nil
		},
	}
	svc := NewService(repo, &mockHasher{})

	if _, err := svc.Register(context.Background(), "Ana", "  Ana@Example.COM ", "secret"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if capturedUser.Email != "ana@example.com" {
		t.Errorf("email = %q, want %q", capturedUser.Email, "ana@example.com")
	}
}

// TestService_Register_Validation は入力値エラーが適切なAPIErrorになることを検証する。
func TestService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantCode string
	}{
		{"空の名前", "", "ana@example.com", "secret", model.ErrCodeRequiredFields},
		{"空のメール", "Ana", "", "secret", model.ErrCodeRequiredFields},
		{"空のパスワード", "Ana", "ana@example.com", "", model.ErrCodeRequiredFields},
		{"空白のみの名前", "   ", "ana@example.com", "secret", model.ErrCodeRequiredFields},
		{"アットマークなし", "Ana", "ana.example.com", "secret", model.ErrCodeInvalidEmail},
		{"ドットなし", "Ana", "ana@example", "secret", model.ErrCodeInvalidEmail},
	}

	svc := NewService(&mockUserRepo{}, &mockHasher{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", apiErr.Code, tt.wantCode)
			}
		})
	}
}

// TestService_Register_DuplicateEmail はメールアドレス重複が競合エラーになることを検証する。
func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "existing", Email: email}, nil
		},
	}
	svc := NewService(repo, &mockHasher{})

	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeEmailTaken {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeEmailTaken)
	}
}

// TestService_Register_DuplicateEmailRace は一意制約違反（同時登録の競合）でも
// 同じエラーになることを検証する。
func TestService_Register_DuplicateEmailRace(t *testing.T) {
	repo := &mockUserRepo{
		createWithDefaultsFn: func(ctx context.Context, user *model.User, defaults []*model.ShiftType) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := NewService(repo, &mockHasher{})

	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeEmailTaken {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeEmailTaken)
	}
}

// TestService_Authenticate は認証の成功と失敗を検証する。
// 未知のメールアドレスとパスワード不一致は同一のエラーになる。
func TestService_Authenticate(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email == "ana@example.com" {
				return &model.User{
					ID:           "user-1",
					Name:         "Ana",
					Email:        email,
					PasswordHash: "hashed:secret",
				}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo, &mockHasher{})

	// 成功
	profile, err := svc.Authenticate(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if profile.ID != "user-1" || profile.Name != "Ana" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	// 未知のメールアドレス
	_, err = svc.Authenticate(context.Background(), "bob@example.com", "secret")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidCredentials {
		t.Errorf("unknown email: got %v, want INVALID_CREDENTIALS", err)
	}

	// パスワード不一致
	_, err = svc.Authenticate(context.Background(), "ana@example.com", "wrong")
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidCredentials {
		t.Errorf("wrong password: got %v, want INVALID_CREDENTIALS", err)
	}
}

// TestService_GetProfile はプロフィール取得とハッシュ除外を検証する。
func TestService_GetProfile(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			if id == "user-1" {
				return &model.User{ID: id, Name: "Ana", Email: "ana@example.com", PasswordHash: "hashed:secret"}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo, &mockHasher{})

	profile, err := svc.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if profile.ID != "user-1" || profile.Email != "ana@example.com" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	_, err = svc.GetProfile(context.Background(), "missing")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("missing user: got %v, want USER_NOT_FOUND", err)
	}
}

// TestService_UpdateProfile_EmailConflict は別ユーザーが使用中のメールアドレス
// への変更が拒否されることを検証する。
func TestService_UpdateProfile_EmailConflict(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "other-user", Email: email}, nil
		},
	}
	svc := NewService(repo, &mockHasher{})

	err := svc.UpdateProfile(context.Background(), "user-1", "Ana", "taken@example.com")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeEmailTaken {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeEmailTaken)
	}
}

// TestService_UpdateProfile_OwnEmail は自分自身のメールアドレスを維持した
// 更新が成功することを検証する。
func TestService_UpdateProfile_OwnEmail(t *testing.T) {
	updateCalled := false
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email}, nil
		},
		updateProfileFn: func(ctx context.Context, id, name, email string) (bool, error) {
			updateCalled = true
			return true, nil
		},
	}
	svc := NewService(repo, &mockHasher{})

	if err := svc.UpdateProfile(context.Background(), "user-1", "Ana María", "ana@example.com"); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if !updateCalled {
		t.Error("expected UpdateProfile to be called")
	}
}

// TestService_UpdatePassword は現在のパスワード検証と更新を検証する。
func TestService_UpdatePassword(t *testing.T) {
	var savedHash string
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, PasswordHash: "hashed:old"}, nil
		},
		updatePasswordFn: func(ctx context.Context, id, hash string) (bool, error) {
			savedHash = hash
			return true, nil
		},
	}
	svc := NewService(repo, &mockHasher{})

	// 現在のパスワードが不一致
	err := svc.UpdatePassword(context.Background(), "user-1", "wrong", "new")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeWrongPassword {
		t.Errorf("wrong current password: got %v, want WRONG_PASSWORD", err)
	}

	// 成功
	if err := svc.UpdatePassword(context.Background(), "user-1", "old", "new"); err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}
	if savedHash != "hashed:new" {
		t.Errorf("saved hash = %q, want %q", savedHash, "hashed:new")
	}
}

// TestService_DeleteAccount は削除の成功と未検出エラーを検証する。
func TestService_DeleteAccount(t *testing.T) {
	repo := &mockUserRepo{
		deleteByIDFn: func(ctx context.Context, id string) (bool, error) {
			return id == "user-1", nil
		},
	}
	svc := NewService(repo, &mockHasher{})

	if err := svc.DeleteAccount(context.Background(), "user-1"); err != nil {
		t.Fatalf("DeleteAccount returned error: %v", err)
	}

	err := svc.DeleteAccount(context.Background(), "missing")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("missing user: got %v, want USER_NOT_FOUND", err)
	}
}

// TestService_RepositoryError はリポジトリ障害がAPIErrorにならず
// 内部エラーとして伝播することを検証する。
func TestService_RepositoryError(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}
	svc := NewService(repo, &mockHasher{})

	_, err := svc.Authenticate(context.Background(), "ana@example.com", "secret")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("expected non-API error, got %v", apiErr)
	}
}
