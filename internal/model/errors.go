package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// サービス層で生成し、ハンドラー層でHTTPステータスコードに変換する。
type APIError struct {
	Code     string // エラーコード
	Message  string // ユーザー向けメッセージ
	Category string // カテゴリ: auth, validation, conflict, not_found, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// エラーカテゴリ。ハンドラー層でHTTPステータスコードへの変換に使用する。
const (
	CategoryAuth       = "auth"
	CategoryValidation = "validation"
	CategoryConflict   = "conflict"
	CategoryNotFound   = "not_found"
	CategorySystem     = "system"
)

// 定義済みエラーコード
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeRequiredFields     = "REQUIRED_FIELDS"
	ErrCodeMissingFields      = "MISSING_FIELDS"
	ErrCodeInvalidEmail       = "INVALID_EMAIL"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeWrongPassword      = "WRONG_PASSWORD"
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeInvalidShiftData   = "INVALID_SHIFT_DATA"
	ErrCodeShiftTypeNotFound  = "SHIFT_TYPE_NOT_FOUND"
	ErrCodeInvalidDate        = "INVALID_DATE"
	ErrCodeMarkConflict       = "MARK_CONFLICT"
	ErrCodeMarkNotFound       = "MARK_NOT_FOUND"
)

// NewRequiredFieldsError は必須フィールド欠落エラーを生成する。
func NewRequiredFieldsError() *APIError {
	return &APIError{
		Code:     ErrCodeRequiredFields,
		Message:  "Todos los campos son obligatorios.",
		Category: CategoryValidation,
	}
}

// NewMissingFieldsError は必須フィールド欠落エラーを生成する。
// 登録以外のエンドポイントで使用する短いメッセージ。
func NewMissingFieldsError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  "Campos requeridos",
		Category: CategoryValidation,
	}
}

// NewInvalidJSONError はリクエストボディの解析エラーを生成する。
func NewInvalidJSONError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidJSON,
		Message:  "JSON inválido",
		Category: CategoryValidation,
	}
}

// NewInvalidEmailError はメールアドレス形式エラーを生成する。
func NewInvalidEmailError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidEmail,
		Message:  "Formato de correo inválido.",
		Category: CategoryValidation,
	}
}

// NewEmailTakenError は登録時のメールアドレス重複エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "Ya existe un usuario con ese correo.",
		Category: CategoryConflict,
	}
}

// NewEmailInUseError はプロフィール更新時のメールアドレス重複エラーを生成する。
func NewEmailInUseError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "El correo ya está en uso",
		Category: CategoryConflict,
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メールアドレスとパスワードのどちらが誤っているかは区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Credenciales incorrectas",
		Category: CategoryAuth,
	}
}

// NewWrongPasswordError は現在のパスワード不一致エラーを生成する。
func NewWrongPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeWrongPassword,
		Message:  "Contraseña actual incorrecta",
		Category: CategoryAuth,
	}
}

// NewUnauthenticatedError は未認証エラーを生成する。
func NewUnauthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthenticated,
		Message:  "No autenticado",
		Category: CategoryAuth,
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "Usuario no encontrado",
		Category: CategoryNotFound,
	}
}

// NewInvalidShiftDataError はシフト種別の入力値エラーを生成する。
func NewInvalidShiftDataError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidShiftData,
		Message:  "Datos de turno inválidos",
		Category: CategoryValidation,
	}
}

// NewShiftTypeNotFoundError はシフト種別未検出エラーを生成する。
// 他ユーザー所有のIDを指定した場合も同一のエラーになる（存在の漏洩防止）。
func NewShiftTypeNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeShiftTypeNotFound,
		Message:  "Turno no encontrado o sin permiso",
		Category: CategoryNotFound,
	}
}

// NewInvalidDateError は日付形式エラーを生成する。
func NewInvalidDateError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  "Formato de fecha inválido",
		Category: CategoryValidation,
	}
}

// NewMarkConflictError はマーク重複または参照不正エラーを生成する。
// 重複と参照不正は呼び出し側に区別して見せない。
func NewMarkConflictError() *APIError {
	return &APIError{
		Code:     ErrCodeMarkConflict,
		Message:  "Ese turno ya está marcado o inválido",
		Category: CategoryConflict,
	}
}

// NewMarkNotFoundError はマーク未検出エラーを生成する。
// 他ユーザー所有のIDを指定した場合も同一のエラーになる（存在の漏洩防止）。
func NewMarkNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeMarkNotFound,
		Message:  "Marcado no encontrado o sin permiso",
		Category: CategoryNotFound,
	}
}
