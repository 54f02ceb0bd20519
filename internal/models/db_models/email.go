package db_models

import (
	"github.com/google/uuid"
)

// Email is a stored message template. The body may reference trigger data
// with {{variable}} placeholders.
type Email struct {
	BaseModel
	Subject string `gorm:"size:128"`
	Body    string

	Attachments []EmailAttachment `gorm:"foreignKey:EmailID"`
}

type EmailAttachment struct {
	BaseModel
	EmailID     uuid.UUID `gorm:"index;not null"`
	CreatedByID *uuid.UUID

	Name string `gorm:"size:125"`
	// Name the attachment is sent under.
	FileName string `gorm:"size:125"`
	FilePath string
}
