package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storengine/internal/models/db_models"
)

type ICartRepository interface {
	GetByToken(ctx context.Context, token string) (*db_models.Cart, error)
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Cart, error)
	Create(ctx context.Context, cart *db_models.Cart) error
	Delete(ctx context.Context, cartID uuid.UUID) error

	// LockCart takes the cart's row lock for the current transaction so
	// concurrent line merges on the same cart serialize.
	LockCart(ctx context.Context, cartID uuid.UUID) error

	// GetItemForUpdate locks the (cart, product, variant) line so two
	// concurrent adds merge instead of losing an increment.
	GetItemForUpdate(ctx context.Context, cartID, productID uuid.UUID, variantID *uuid.UUID) (*db_models.CartItem, error)
	CreateItem(ctx context.Context, item *db_models.CartItem) error
	SaveItem(ctx context.Context, item *db_models.CartItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	CountItems(ctx context.Context, cartID uuid.UUID) (int64, error)
}

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) ICartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) GetByToken(ctx context.Context, token string) (*db_models.Cart, error) {
	var cart db_models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Items.Product").
		Preload("Items.Variant").
		First(&cart, "session_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Cart, error) {
	var cart db_models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Items.Product").
		Preload("Items.Variant").
		First(&cart, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) Create(ctx context.Context, cart *db_models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

// Delete removes the cart and its items for good. A soft delete would keep
// the row under the session token's unique index and block the visitor's
// next cart from reusing the same cookie token.
func (r *CartRepository) Delete(ctx context.Context, cartID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Unscoped().
		Where("cart_id = ?", cartID).
		Delete(&db_models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Unscoped().
		Delete(&db_models.Cart{}, "id = ?", cartID).Error
}

func (r *CartRepository) LockCart(ctx context.Context, cartID uuid.UUID) error {
	var cart db_models.Cart
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cart, "id = ?", cartID).Error
}

func (r *CartRepository) GetItemForUpdate(ctx context.Context, cartID, productID uuid.UUID, variantID *uuid.UUID) (*db_models.CartItem, error) {
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cart_id = ? AND product_id = ?", cartID, productID)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var item db_models.CartItem
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) CreateItem(ctx context.Context, item *db_models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *CartRepository) SaveItem(ctx context.Context, item *db_models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&db_models.CartItem{}, "id = ?", itemID).Error
}

func (r *CartRepository) CountItems(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.CartItem{}).
		Where("cart_id = ?", cartID).
		Count(&count).Error
	return count, err
}
