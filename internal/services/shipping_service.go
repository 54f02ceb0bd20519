package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"storengine/internal/infra/packeta"
	"storengine/internal/models/db_models"
	"storengine/internal/repositories"
	"storengine/pkg/utils"
)

// PacketaCarrier is the surface of the carrier API the shop uses.
// Satisfied by *packeta.Client.
type PacketaCarrier interface {
	CreatePacket(ctx context.Context, attrs packeta.PacketAttributes) (*packeta.PacketInfo, error)
	GetPacketStatus(ctx context.Context, packetID string) (*packeta.PacketStatus, error)
	GetPacketLabelsPDF(ctx context.Context, packetIDs []string) ([]byte, error)
}

type IShippingService interface {
	// CreatePacketForOrder registers the order's shipment with the carrier.
	// Best effort: a carrier failure is logged and the order proceeds
	// without a packet.
	CreatePacketForOrder(ctx context.Context, order *db_models.Order)

	// RefreshPacketStatus re-polls the carrier and stores the latest
	// tracking status on the packet.
	RefreshPacketStatus(ctx context.Context, packetRowID uuid.UUID) (*db_models.Packet, error)

	// PacketLabel fetches the printable label sheet for one packet.
	PacketLabel(ctx context.Context, packetRowID uuid.UUID) ([]byte, error)
}

type ShippingService struct {
	carrier PacketaCarrier
	packets repositories.IPacketRepository
}

func NewShippingService(carrier PacketaCarrier, packets repositories.IPacketRepository) IShippingService {
	return &ShippingService{carrier: carrier, packets: packets}
}

func (s *ShippingService) CreatePacketForOrder(ctx context.Context, order *db_models.Order) {
	if order.PickupPointID == "" {
		return
	}

	attrs := packeta.PacketAttributes{
		Number:    order.OrderNumber,
		AddressID: order.PickupPointID,
		// Carrier amounts are whole currency units.
		COD:      order.RemainingBalanceMinor() / 100,
		Value:    order.TotalPriceMinor / 100,
		Currency: order.Currency,
	}
	if order.BillingAddress != nil {
		attrs.Name = order.BillingAddress.FirstName
		attrs.Surname = order.BillingAddress.LastName
		attrs.Email = order.BillingAddress.Email
	}

	info, err := s.carrier.CreatePacket(ctx, attrs)
	if err != nil {
		log.Printf("Packeta createPacket failed for order %s: %v", order.OrderNumber, err)
		return
	}

	packet := &db_models.Packet{
		OrderID:     &order.ID,
		PacketID:    info.ID,
		Barcode:     info.Barcode,
		BarcodeText: info.BarcodeText,
	}
	if err := s.packets.Create(ctx, packet); err != nil {
		log.Printf("Failed to persist packet %s for order %s: %v", info.ID, order.OrderNumber, err)
	}
}

func (s *ShippingService) RefreshPacketStatus(ctx context.Context, packetRowID uuid.UUID) (*db_models.Packet, error) {
	packet, err := s.packets.GetByID(ctx, packetRowID)
	if err != nil {
		return nil, err
	}
	if packet == nil {
		return nil, utils.ErrPacketNotFound
	}

	status, err := s.carrier.GetPacketStatus(ctx, packet.PacketID)
	if err != nil {
		return nil, err
	}
	// A nil status means the carrier could not answer; keep the last known
	// tracking state rather than blanking it.
	if status == nil {
		return packet, nil
	}

	packet.StatusCode = &status.Code
	packet.StatusName = status.Name
	packet.StatusDisplayName = status.DisplayName
	if err := s.packets.Save(ctx, packet); err != nil {
		return nil, err
	}
	return packet, nil
}

func (s *ShippingService) PacketLabel(ctx context.Context, packetRowID uuid.UUID) ([]byte, error) {
	packet, err := s.packets.GetByID(ctx, packetRowID)
	if err != nil {
		return nil, err
	}
	if packet == nil {
		return nil, utils.ErrPacketNotFound
	}
	return s.carrier.GetPacketLabelsPDF(ctx, []string{packet.PacketID})
}
