package repositories

import (
	"context"

	"gorm.io/gorm"

	"storengine/internal/models/db_models"
)

type IAutomationRepository interface {
	// ListActiveByTriggerType loads active automations whose active trigger
	// matches the event type, with product scopes and ordered actions.
	ListActiveByTriggerType(ctx context.Context, triggerType db_models.TriggerType) ([]db_models.Automation, error)
}

type AutomationRepository struct {
	db *gorm.DB
}

func NewAutomationRepository(db *gorm.DB) IAutomationRepository {
	return &AutomationRepository{db: db}
}

func (r *AutomationRepository) ListActiveByTriggerType(ctx context.Context, triggerType db_models.TriggerType) ([]db_models.Automation, error) {
	var automations []db_models.Automation
	err := r.db.WithContext(ctx).
		Joins("JOIN triggers ON triggers.id = automations.trigger_id").
		Preload("Trigger").
		Preload("Trigger.Products").
		Preload("Actions", func(db *gorm.DB) *gorm.DB { return db.Order("ordering, created_at") }).
		Preload("Actions.Email").
		Preload("Actions.Email.Attachments").
		Where("automations.is_active = ?", true).
		Where("triggers.is_active = ?", true).
		Where("triggers.trigger_type = ?", triggerType).
		Order("automations.created_at").
		Find(&automations).Error
	if err != nil {
		return nil, err
	}
	return automations, nil
}
