package model

// Mark は「ユーザーUが日付DをシフトTでマークした」という1つの事実を表す。
// (UserID, Date, ShiftTypeID) の組は一意。同一日付に別のシフト種別を
// 重ねてマークすることは許可される。
type Mark struct {
	ID     string
	UserID string
	// Date はISO形式（YYYY-MM-DD）の日付文字列。
	Date        string
	ShiftTypeID string
}
