package utils

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrVariantNotFound    = errors.New("product variant not found")
	ErrVariantRequired    = errors.New("product requires a variant selection")
	ErrOutOfStock         = errors.New("variant out of stock")
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPacketNotFound     = errors.New("packet not found")
	ErrMustBePaidOnline   = errors.New("cart contains items that must be paid online")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrMissingPaymentID   = errors.New("missing payment id")
	ErrDatabaseError      = errors.New("database error")
	ErrInvalidRequest     = errors.New("invalid request")
)
