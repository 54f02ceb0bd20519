package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is created exactly once per order at checkout. The unique index on
// OrderID backs that up at the database level.
type Invoice struct {
	BaseModel
	OrderID uuid.UUID `gorm:"uniqueIndex;not null"`
	DueDate time.Time

	Order *Order
}
