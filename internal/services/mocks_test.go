package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storengine/internal/infra/gopay"
	"storengine/internal/infra/packeta"
	"storengine/internal/models/db_models"
	"storengine/internal/repositories"
)

// fakeTxManager runs the callback against a fixed repo set without a real
// database, so transactional services can be unit tested with mocks.
type fakeTxManager struct {
	repos repositories.TxRepos
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repositories.TxRepos) error) error {
	return fn(m.repos)
}

type fakeTxRepos struct {
	carts     repositories.ICartRepository
	orders    repositories.IOrderRepository
	addresses repositories.IAddressRepository
	products  repositories.IProductRepository
	invoices  repositories.IInvoiceRepository
}

func (r *fakeTxRepos) Carts() repositories.ICartRepository        { return r.carts }
func (r *fakeTxRepos) Orders() repositories.IOrderRepository      { return r.orders }
func (r *fakeTxRepos) Addresses() repositories.IAddressRepository { return r.addresses }
func (r *fakeTxRepos) Products() repositories.IProductRepository  { return r.products }
func (r *fakeTxRepos) Invoices() repositories.IInvoiceRepository  { return r.invoices }

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) ListActive(ctx context.Context) ([]db_models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Product), args.Error(1)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Product), args.Error(1)
}

func (m *mockProductRepo) GetVariantByID(ctx context.Context, id uuid.UUID) (*db_models.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.ProductVariant), args.Error(1)
}

func (m *mockProductRepo) DecrementStockIfEnough(ctx context.Context, variantID uuid.UUID, qty int64) (bool, error) {
	args := m.Called(ctx, variantID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) GetVariantForUpdate(ctx context.Context, variantID uuid.UUID) (*db_models.ProductVariant, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.ProductVariant), args.Error(1)
}

func (m *mockProductRepo) SetVariantStock(ctx context.Context, variantID uuid.UUID, pcs int64) error {
	args := m.Called(ctx, variantID, pcs)
	return args.Error(0)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) GetByToken(ctx context.Context, token string) (*db_models.Cart, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Cart), args.Error(1)
}

func (m *mockCartRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Cart), args.Error(1)
}

func (m *mockCartRepo) Create(ctx context.Context, cart *db_models.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepo) Delete(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *mockCartRepo) LockCart(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *mockCartRepo) GetItemForUpdate(ctx context.Context, cartID, productID uuid.UUID, variantID *uuid.UUID) (*db_models.CartItem, error) {
	args := m.Called(ctx, cartID, productID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.CartItem), args.Error(1)
}

func (m *mockCartRepo) CreateItem(ctx context.Context, item *db_models.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockCartRepo) SaveItem(ctx context.Context, item *db_models.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockCartRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *mockCartRepo) CountItems(ctx context.Context, cartID uuid.UUID) (int64, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(int64), args.Error(1)
}

type mockAddressRepo struct{ mock.Mock }

func (m *mockAddressRepo) FindDuplicate(ctx context.Context, addr *db_models.Address) (*db_models.Address, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Address), args.Error(1)
}

func (m *mockAddressRepo) Create(ctx context.Context, addr *db_models.Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *db_models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) Save(ctx context.Context, order *db_models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) CreateItems(ctx context.Context, items []db_models.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Order), args.Error(1)
}

func (m *mockOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*db_models.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]db_models.Order, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Order), args.Error(1)
}

func (m *mockOrderRepo) ListUnpaidOnline(ctx context.Context, createdAfter time.Time) ([]db_models.Order, error) {
	args := m.Called(ctx, createdAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Order), args.Error(1)
}

func (m *mockOrderRepo) GetBillingTypeByName(ctx context.Context, name string) (*db_models.BillingType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.BillingType), args.Error(1)
}

func (m *mockOrderRepo) NextSequence(ctx context.Context, period string) (int64, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(int64), args.Error(1)
}

type mockInvoiceRepo struct{ mock.Mock }

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *db_models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *mockInvoiceRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*db_models.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Invoice), args.Error(1)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Upsert(ctx context.Context, payment *db_models.GopayPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockPaymentRepo) GetByPaymentID(ctx context.Context, paymentID string) (*db_models.GopayPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.GopayPayment), args.Error(1)
}

type mockPacketRepo struct{ mock.Mock }

func (m *mockPacketRepo) Create(ctx context.Context, packet *db_models.Packet) error {
	args := m.Called(ctx, packet)
	return args.Error(0)
}

func (m *mockPacketRepo) Save(ctx context.Context, packet *db_models.Packet) error {
	args := m.Called(ctx, packet)
	return args.Error(0)
}

func (m *mockPacketRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Packet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Packet), args.Error(1)
}

type mockAutomationRepo struct{ mock.Mock }

func (m *mockAutomationRepo) ListActiveByTriggerType(ctx context.Context, triggerType db_models.TriggerType) ([]db_models.Automation, error) {
	args := m.Called(ctx, triggerType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Automation), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*db_models.ShopUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.ShopUser), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *db_models.ShopUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) InternalMailingList(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockUserRepo) CreateQuizRecord(ctx context.Context, record *db_models.QuizRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type mockMailService struct{ mock.Mock }

func (m *mockMailService) SendNotification(ctx context.Context, email *db_models.Email, recipients []string) error {
	args := m.Called(ctx, email, recipients)
	return args.Error(0)
}

func (m *mockMailService) SendInternalNotification(ctx context.Context, email *db_models.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreatePayment(ctx context.Context, r gopay.CreatePaymentRequest) (*gopay.PaymentSession, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gopay.PaymentSession), args.Error(1)
}

func (m *mockGateway) GetStatus(ctx context.Context, paymentID string) (map[string]interface{}, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

type mockCarrier struct{ mock.Mock }

func (m *mockCarrier) CreatePacket(ctx context.Context, attrs packeta.PacketAttributes) (*packeta.PacketInfo, error) {
	args := m.Called(ctx, attrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packeta.PacketInfo), args.Error(1)
}

func (m *mockCarrier) GetPacketStatus(ctx context.Context, packetID string) (*packeta.PacketStatus, error) {
	args := m.Called(ctx, packetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packeta.PacketStatus), args.Error(1)
}

func (m *mockCarrier) GetPacketLabelsPDF(ctx context.Context, packetIDs []string) ([]byte, error) {
	args := m.Called(ctx, packetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockPaymentService struct{ mock.Mock }

func (m *mockPaymentService) GetPaymentDetails(ctx context.Context, paymentID string) (map[string]interface{}, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *mockPaymentService) CreateOrUpdatePayment(ctx context.Context, paymentID string, payload map[string]interface{}) (*db_models.GopayPayment, error) {
	args := m.Called(ctx, paymentID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.GopayPayment), args.Error(1)
}

func (m *mockPaymentService) CreatePaymentSession(ctx context.Context, order *db_models.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *mockPaymentService) Notify(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *mockPaymentService) Callback(ctx context.Context, orderNumber, paymentID string) (*db_models.Order, error) {
	args := m.Called(ctx, orderNumber, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Order), args.Error(1)
}

type mockShippingService struct{ mock.Mock }

func (m *mockShippingService) CreatePacketForOrder(ctx context.Context, order *db_models.Order) {
	m.Called(ctx, order)
}

func (m *mockShippingService) RefreshPacketStatus(ctx context.Context, packetRowID uuid.UUID) (*db_models.Packet, error) {
	args := m.Called(ctx, packetRowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Packet), args.Error(1)
}

func (m *mockShippingService) PacketLabel(ctx context.Context, packetRowID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, packetRowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockAutomationService struct{ mock.Mock }

func (m *mockAutomationService) OnUserCreated(ctx context.Context, user *db_models.ShopUser) {
	m.Called(ctx, user)
}

func (m *mockAutomationService) OnOrderCreated(ctx context.Context, order *db_models.Order) {
	m.Called(ctx, order)
}

func (m *mockAutomationService) OnQuizRecordCreated(ctx context.Context, record *db_models.QuizRecord) {
	m.Called(ctx, record)
}
