package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storengine/internal/models/db_models"
)

type IAddressRepository interface {
	// FindDuplicate looks for an exact field match so repeat customers do
	// not grow the address table without bound.
	FindDuplicate(ctx context.Context, addr *db_models.Address) (*db_models.Address, error)
	Create(ctx context.Context, addr *db_models.Address) error
}

type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) IAddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) FindDuplicate(ctx context.Context, addr *db_models.Address) (*db_models.Address, error) {
	var existing db_models.Address
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{
			"kind":       addr.Kind,
			"first_name": addr.FirstName,
			"last_name":  addr.LastName,
			"email":      addr.Email,
			"phone":      addr.Phone,
			"company":    addr.Company,
			"address1":   addr.Address1,
			"zip_code":   addr.ZipCode,
			"city":       addr.City,
			"country":    addr.Country,
		}).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &existing, nil
}

func (r *AddressRepository) Create(ctx context.Context, addr *db_models.Address) error {
	return r.db.WithContext(ctx).Create(addr).Error
}
