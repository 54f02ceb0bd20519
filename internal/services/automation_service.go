package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"storengine/internal/models/db_models"
	"storengine/internal/repositories"
	"storengine/pkg/utils"
)

// TriggerData is the context an event hands to matching actions: who to
// notify and which values the email body may reference.
type TriggerData struct {
	Recipients []string
	Variables  map[string]string
}

// IAutomationService is the rule engine fired by explicit domain events.
// Evaluation is synchronous; a failing action never stops the remaining
// actions or the caller's transaction.
type IAutomationService interface {
	OnUserCreated(ctx context.Context, user *db_models.ShopUser)
	OnOrderCreated(ctx context.Context, order *db_models.Order)
	OnQuizRecordCreated(ctx context.Context, record *db_models.QuizRecord)
}

type AutomationService struct {
	automations repositories.IAutomationRepository
	orders      repositories.IOrderRepository
	mail        IMailService
}

func NewAutomationService(
	automations repositories.IAutomationRepository,
	orders repositories.IOrderRepository,
	mail IMailService,
) IAutomationService {
	return &AutomationService{
		automations: automations,
		orders:      orders,
		mail:        mail,
	}
}

func (a *AutomationService) OnUserCreated(ctx context.Context, user *db_models.ShopUser) {
	if user.IsStaff {
		return
	}
	a.fire(ctx, db_models.TriggerNewUser, nil, TriggerData{
		Recipients: []string{user.Email},
		Variables: map[string]string{
			"user_email": user.Email,
		},
	})
}

func (a *AutomationService) OnOrderCreated(ctx context.Context, order *db_models.Order) {
	// No items means no data to act on; the guard flag keeps redelivered
	// events from firing the automation twice.
	if len(order.Items) == 0 || order.PostSaveTriggered {
		return
	}

	recipients := []string{}
	if order.BillingAddress != nil {
		recipients = append(recipients, order.BillingAddress.Email)
	}

	productIDs := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	a.fire(ctx, db_models.TriggerNewOrder, productIDs, TriggerData{
		Recipients: recipients,
		Variables: map[string]string{
			"order_number": order.OrderNumber,
			"full_name":    order.FullName(),
			"total_price":  utils.FormatAmountMinor(order.TotalPriceMinor, order.Currency),
		},
	})

	order.PostSaveTriggered = true
	if err := a.orders.Save(ctx, order); err != nil {
		log.Printf("Failed to persist post-save trigger flag for order %s: %v", order.OrderNumber, err)
	}
}

func (a *AutomationService) OnQuizRecordCreated(ctx context.Context, record *db_models.QuizRecord) {
	a.fire(ctx, db_models.TriggerNewQuizRecord, nil, TriggerData{
		Recipients: []string{record.Email},
		Variables: map[string]string{
			"email": record.Email,
		},
	})
}

// fire runs every matching automation's active actions in insertion order.
func (a *AutomationService) fire(ctx context.Context, triggerType db_models.TriggerType, eventProducts []uuid.UUID, data TriggerData) {
	automations, err := a.automations.ListActiveByTriggerType(ctx, triggerType)
	if err != nil {
		log.Printf("Failed to load automations for trigger %s: %v", triggerType, err)
		return
	}

	for _, automation := range automations {
		if !triggerMatchesProducts(automation.Trigger, eventProducts) {
			continue
		}
		for _, action := range automation.Actions {
			if !action.IsActive {
				continue
			}
			if err := a.runAction(ctx, &action, data); err != nil {
				log.Printf("Action %q of automation %q failed: %v", action.Name, automation.Name, err)
			}
		}
	}
}

// triggerMatchesProducts applies the optional product scope: an unscoped
// trigger matches everything, a scoped one needs an intersection with the
// event's products.
func triggerMatchesProducts(trigger *db_models.Trigger, eventProducts []uuid.UUID) bool {
	if trigger == nil {
		return false
	}
	if len(trigger.Products) == 0 {
		return true
	}
	for _, scoped := range trigger.Products {
		for _, id := range eventProducts {
			if scoped.ID == id {
				return true
			}
		}
	}
	return false
}

func (a *AutomationService) runAction(ctx context.Context, action *db_models.Action, data TriggerData) error {
	switch action.Kind {
	case db_models.ActionKindEmail:
		return a.runEmailAction(ctx, action, data)
	default:
		return fmt.Errorf("unknown action kind %q", action.Kind)
	}
}

func (a *AutomationService) runEmailAction(ctx context.Context, action *db_models.Action, data TriggerData) error {
	if action.Email == nil {
		return fmt.Errorf("email action %q has no email template", action.Name)
	}

	recipients := data.Recipients
	if len(action.Recipients) > 0 {
		recipients = action.Recipients
	}

	rendered := db_models.Email{
		Subject:     action.Email.Subject,
		Body:        InsertTriggerData(action.Email.Body, data.Variables),
		Attachments: action.Email.Attachments,
	}

	// Internal wins when both flags are set; neither set is a no-op.
	if action.IsInternalNotification {
		return a.mail.SendInternalNotification(ctx, &rendered)
	}
	if action.IsTriggerNotification {
		return a.mail.SendNotification(ctx, &rendered, recipients)
	}
	return nil
}

// InsertTriggerData substitutes {{name}} placeholders in the body. Simple
// variable substitution, deliberately not a template language.
func InsertTriggerData(body string, variables map[string]string) string {
	if len(variables) == 0 {
		return body
	}
	pairs := make([]string, 0, len(variables)*2)
	for name, value := range variables {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(body)
}
