package repositories

import (
	"context"

	"gorm.io/gorm"
)

// TxRepos exposes the repositories rebuilt on top of one open transaction.
// The checkout pipeline runs against these so order creation, item pricing,
// stock decrement and cart deletion commit or roll back together.
type TxRepos interface {
	Carts() ICartRepository
	Orders() IOrderRepository
	Addresses() IAddressRepository
	Products() IProductRepository
	Invoices() IInvoiceRepository
}

type ITxManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

type txRepos struct {
	carts     ICartRepository
	orders    IOrderRepository
	addresses IAddressRepository
	products  IProductRepository
	invoices  IInvoiceRepository
}

func (r *txRepos) Carts() ICartRepository        { return r.carts }
func (r *txRepos) Orders() IOrderRepository      { return r.orders }
func (r *txRepos) Addresses() IAddressRepository { return r.addresses }
func (r *txRepos) Products() IProductRepository  { return r.products }
func (r *txRepos) Invoices() IInvoiceRepository  { return r.invoices }

type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) ITxManager {
	return &TxManager{db: db}
}

func (tm *TxManager) WithinTx(ctx context.Context, fn func(r TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepos{
			carts:     NewCartRepository(tx),
			orders:    NewOrderRepository(tx),
			addresses: NewAddressRepository(tx),
			products:  NewProductRepository(tx),
			invoices:  NewInvoiceRepository(tx),
		})
	})
}
