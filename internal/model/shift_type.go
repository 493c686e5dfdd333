package model

// Effect はシフト種別が外部の時間収支計算に与える影響を表す。
// 収支計算自体は本システムでは行わず、値を保存するだけ。
type Effect string

const (
	// EffectAdd は収支に加算されるシフトを示す。
	EffectAdd Effect = "suma"
	// EffectSubtract は収支から減算されるシフトを示す。
	EffectSubtract Effect = "resta"
	// EffectNone は収支に影響しないシフトを示す。
	EffectNone Effect = "nada"
)

// Valid はEffectが列挙された3値のいずれかであるかを判定する。
func (e Effect) Valid() bool {
	switch e {
	case EffectAdd, EffectSubtract, EffectNone:
		return true
	default:
		return false
	}
}

// ShiftType はユーザーが定義するシフト種別（turno）を表す。
// 各ShiftTypeはちょうど1人のユーザーに所有される。
type ShiftType struct {
	ID     string
	UserID string
	Name   string
	// OpensWith はカレンダー表示用の短い記号（例: "M"）。
	OpensWith string
	Effect    Effect
	IsFullDay bool
	// StartTime/EndTime は終日でない場合のみ設定される時刻文字列（例: "08:00"）。
	StartTime *string
	EndTime   *string
	ColorFG   string
	ColorBG   string
}
