package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storengine/internal/models/db_models"
)

type IUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*db_models.ShopUser, error)
	Create(ctx context.Context, user *db_models.ShopUser) error

	// InternalMailingList is queried at dispatch time so staff changes take
	// effect without a restart.
	InternalMailingList(ctx context.Context) ([]string, error)

	CreateQuizRecord(ctx context.Context, record *db_models.QuizRecord) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*db_models.ShopUser, error) {
	var user db_models.ShopUser
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *db_models.ShopUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) InternalMailingList(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&db_models.ShopUser{}).
		Where("is_staff = ? AND send_internal_notifications = ?", true, true).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *UserRepository) CreateQuizRecord(ctx context.Context, record *db_models.QuizRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
