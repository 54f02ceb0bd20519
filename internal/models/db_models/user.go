package db_models

import (
	"gorm.io/datatypes"
)

type ShopUser struct {
	BaseModel
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string

	IsStaff bool
	// Staff members with this flag form the internal notification list.
	SendInternalNotifications bool
}

// QuizRecord stores one submitted quiz result. Its creation is an automation
// trigger event.
type QuizRecord struct {
	BaseModel
	Email   string
	Answers datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
