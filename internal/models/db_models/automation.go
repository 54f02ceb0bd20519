package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TriggerType string

const (
	TriggerNewUser       TriggerType = "new_user"
	TriggerNewOrder      TriggerType = "new_order"
	TriggerNewQuizRecord TriggerType = "new_quiz_record"
)

// Trigger is a named event-type gate, optionally scoped to specific products.
// It exists as a row (rather than a bare enum on Automation) so triggers can
// be deactivated independently.
type Trigger struct {
	BaseModel
	TriggerType TriggerType `gorm:"size:64;index"`
	Name        string      `gorm:"size:32"`
	IsActive    bool        `gorm:"default:true"`

	Products []Product `gorm:"many2many:trigger_products"`
}

type ActionKind string

const (
	ActionKindEmail ActionKind = "email"
)

// Action is one unit of side effect in an automation flow. Kind tags the
// payload so future action types (SMS, webhook) stay additive.
type Action struct {
	BaseModel
	AutomationID uuid.UUID  `gorm:"index;not null"`
	Kind         ActionKind `gorm:"size:32"`
	Name         string     `gorm:"size:64"`
	IsActive     bool       `gorm:"default:true"`
	Ordering     int        `gorm:"default:0"`

	// Email action payload.
	EmailID *uuid.UUID
	// Overrides the trigger-supplied recipients when set.
	Recipients pq.StringArray `gorm:"type:text[]"`

	IsTriggerNotification  bool
	IsInternalNotification bool

	Email *Email
}

// Automation binds a trigger to an ordered action set. An automation with a
// nil trigger never fires.
type Automation struct {
	BaseModel
	Name      string     `gorm:"size:64"`
	TriggerID *uuid.UUID `gorm:"index"`
	IsActive  bool       `gorm:"default:false"`

	Trigger *Trigger
	Actions []Action `gorm:"foreignKey:AutomationID"`
}
