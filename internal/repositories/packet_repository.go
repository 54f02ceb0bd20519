package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storengine/internal/models/db_models"
)

type IPacketRepository interface {
	Create(ctx context.Context, packet *db_models.Packet) error
	Save(ctx context.Context, packet *db_models.Packet) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Packet, error)
}

type PacketRepository struct {
	db *gorm.DB
}

func NewPacketRepository(db *gorm.DB) IPacketRepository {
	return &PacketRepository{db: db}
}

func (r *PacketRepository) Create(ctx context.Context, packet *db_models.Packet) error {
	return r.db.WithContext(ctx).Create(packet).Error
}

func (r *PacketRepository) Save(ctx context.Context, packet *db_models.Packet) error {
	return r.db.WithContext(ctx).Save(packet).Error
}

func (r *PacketRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Packet, error) {
	var packet db_models.Packet
	err := r.db.WithContext(ctx).First(&packet, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &packet, nil
}
