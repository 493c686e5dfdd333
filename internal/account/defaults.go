package account

import (
	"github.com/google/uuid"

	"github.com/hitoshi/calendula/internal/model"
)

// DefaultShiftTypes は登録時に作成されるデフォルトのシフト種別5件を返す。
// この5件の作成は登録処理の不変条件であり、省略されることはない。
func DefaultShiftTypes(userID string) []*model.ShiftType {
	return []*model.ShiftType{
		{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      "Mañana",
			OpensWith: "M",
			Effect:    model.EffectAdd,
			StartTime: timePtr("08:00"),
			EndTime:   timePtr("15:00"),
			ColorFG:   "rgb(255,123,172)",
			ColorBG:   "rgb(0,0,0)",
		},
		{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      "Tarde",
			OpensWith: "T",
			Effect:    model.EffectAdd,
			StartTime: timePtr("15:00"),
			EndTime:   timePtr("22:00"),
			ColorFG:   "rgb(255,128,73)",
			ColorBG:   "rgb(0,0,0)",
		},
		{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      "Noche",
			OpensWith: "N",
			Effect:    model.EffectAdd,
			StartTime: timePtr("22:00"),
			EndTime:   timePtr("08:00"),
			ColorFG:   "rgb(63,169,245)",
			ColorBG:   "rgb(0,0,0)",
		},
		{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      "Descanso",
			OpensWith: "D",
			Effect:    model.EffectSubtract,
			IsFullDay: true,
			ColorFG:   "rgb(122,201,67)",
			ColorBG:   "rgb(0,0,0)",
		},
		{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      "Vacaciones",
			OpensWith: "V",
			Effect:    model.EffectNone,
			IsFullDay: true,
			ColorFG:   "rgb(252,203,49)",
			ColorBG:   "rgb(0,0,0)",
		},
	}
}

func timePtr(s string) *string {
	return &s
}
