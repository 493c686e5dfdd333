package model

import (
	"errors"
	"fmt"
	"testing"
)

// TestAPIError_Error はエラー文字列の形式を検証する。
func TestAPIError_Error(t *testing.T) {
	err := NewInvalidCredentialsError()

	want := "[INVALID_CREDENTIALS] Credenciales incorrectas"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// TestAPIError_ErrorsAs はラップされたAPIErrorがerrors.Asで取り出せることを検証する。
func TestAPIError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("service failed: %w", NewMarkConflictError())

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("expected errors.As to unwrap APIError")
	}
	if apiErr.Code != ErrCodeMarkConflict {
		t.Errorf("code = %q, want %q", apiErr.Code, ErrCodeMarkConflict)
	}
}

// TestErrorCategories は各エラーが期待するカテゴリを持つことを検証する。
func TestErrorCategories(t *testing.T) {
	tests := []struct {
		err  *APIError
		want string
	}{
		{NewRequiredFieldsError(), CategoryValidation},
		{NewMissingFieldsError(), CategoryValidation},
		{NewInvalidJSONError(), CategoryValidation},
		{NewInvalidEmailError(), CategoryValidation},
		{NewInvalidShiftDataError(), CategoryValidation},
		{NewInvalidDateError(), CategoryValidation},
		{NewEmailTakenError(), CategoryConflict},
		{NewEmailInUseError(), CategoryConflict},
		{NewMarkConflictError(), CategoryConflict},
		{NewInvalidCredentialsError(), CategoryAuth},
		{NewWrongPasswordError(), CategoryAuth},
		{NewUnauthenticatedError(), CategoryAuth},
		{NewUserNotFoundError(), CategoryNotFound},
		{NewShiftTypeNotFoundError(), CategoryNotFound},
		{NewMarkNotFoundError(), CategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			if tt.err.Category != tt.want {
				t.Errorf("category = %q, want %q", tt.err.Category, tt.want)
			}
		})
	}
}

// TestEffect_Valid はシフト種別のtipo検証を確認する。
func TestEffect_Valid(t *testing.T) {
	valid := []Effect{EffectAdd, EffectSubtract, EffectNone}
	for _, e := range valid {
		if !e.Valid() {
			t.Errorf("%q should be valid", e)
		}
	}

	invalid := []Effect{"", "otro", "SUMA", "suma "}
	for _, e := range invalid {
		if e.Valid() {
			t.Errorf("%q should be invalid", e)
		}
	}
}
