package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storengine/internal/models/db_models"
)

type IProductRepository interface {
	ListActive(ctx context.Context) ([]db_models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Product, error)
	GetVariantByID(ctx context.Context, id uuid.UUID) (*db_models.ProductVariant, error)

	// DecrementStockIfEnough atomically takes qty pieces off the variant's
	// stock. Returns false when the stock guard rejects the decrement.
	DecrementStockIfEnough(ctx context.Context, variantID uuid.UUID, qty int64) (bool, error)
	// GetVariantForUpdate locks the variant row for the current transaction.
	GetVariantForUpdate(ctx context.Context, variantID uuid.UUID) (*db_models.ProductVariant, error)
	SetVariantStock(ctx context.Context, variantID uuid.UUID, pcs int64) error
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) IProductRepository {
	return &ProductRepository{db: db}
}

func (p *ProductRepository) ListActive(ctx context.Context) ([]db_models.Product, error) {
	var products []db_models.Product
	err := p.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("ordering") }).
		Where("is_active = ?", true).
		Order("ordering").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (p *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Product, error) {
	var product db_models.Product
	err := p.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("ordering") }).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *ProductRepository) GetVariantByID(ctx context.Context, id uuid.UUID) (*db_models.ProductVariant, error) {
	var variant db_models.ProductVariant
	err := p.db.WithContext(ctx).First(&variant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

func (p *ProductRepository) DecrementStockIfEnough(ctx context.Context, variantID uuid.UUID, qty int64) (bool, error) {
	res := p.db.WithContext(ctx).
		Model(&db_models.ProductVariant{}).
		Where("id = ? AND pcs_in_stock >= ?", variantID, qty).
		Update("pcs_in_stock", gorm.Expr("pcs_in_stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (p *ProductRepository) GetVariantForUpdate(ctx context.Context, variantID uuid.UUID) (*db_models.ProductVariant, error) {
	var variant db_models.ProductVariant
	err := p.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&variant, "id = ?", variantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

func (p *ProductRepository) SetVariantStock(ctx context.Context, variantID uuid.UUID, pcs int64) error {
	return p.db.WithContext(ctx).
		Model(&db_models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("pcs_in_stock", pcs).Error
}
