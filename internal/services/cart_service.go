package services

import (
	"context"

	"github.com/google/uuid"

	"storengine/internal/models/db_models"
	"storengine/internal/models/request_models"
	"storengine/internal/models/response_models"
	"storengine/internal/repositories"
	"storengine/pkg/utils"
)

type ICartService interface {
	// AddToCart merges the requested amount into the cart's line for the
	// given product/variant. Negative amounts decrement; a line reaching
	// zero is removed and a cart left with no lines is removed too.
	AddToCart(ctx context.Context, sessionToken string, req request_models.AddToCartRequest) (*response_models.CartResponse, error)
	GetCart(ctx context.Context, sessionToken string) (*response_models.CartResponse, error)
}

type CartService struct {
	tx repositories.ITxManager
}

func NewCartService(tx repositories.ITxManager) ICartService {
	return &CartService{tx: tx}
}

func (s *CartService) AddToCart(ctx context.Context, sessionToken string, req request_models.AddToCartRequest) (*response_models.CartResponse, error) {
	amount := req.Amount
	if amount == 0 {
		amount = 1
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, utils.ErrInvalidRequest
	}
	var variantID *uuid.UUID
	if req.VariantID != "" {
		parsed, err := uuid.Parse(req.VariantID)
		if err != nil {
			return nil, utils.ErrInvalidRequest
		}
		variantID = &parsed
	}

	var cartID uuid.UUID
	err = s.tx.WithinTx(ctx, func(r repositories.TxRepos) error {
		product, err := r.Products().GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return utils.ErrProductNotFound
		}
		if product.HasVariants() && variantID == nil {
			return utils.ErrVariantRequired
		}

		var variant *db_models.ProductVariant
		if variantID != nil {
			variant, err = r.Products().GetVariantByID(ctx, *variantID)
			if err != nil {
				return err
			}
			if variant == nil || variant.ProductID != product.ID {
				return utils.ErrVariantNotFound
			}
		}

		cart, err := r.Carts().GetByToken(ctx, sessionToken)
		if err != nil {
			return err
		}
		if cart == nil {
			if amount < 0 {
				return utils.ErrCartNotFound
			}
			cart = &db_models.Cart{SessionToken: sessionToken}
			if err := r.Carts().Create(ctx, cart); err != nil {
				return err
			}
		} else if err := r.Carts().LockCart(ctx, cart.ID); err != nil {
			// The line read below locks nothing when the line does not
			// exist yet, so the cart row serializes concurrent adds.
			return err
		}
		cartID = cart.ID

		item, err := r.Carts().GetItemForUpdate(ctx, cart.ID, product.ID, variantID)
		if err != nil {
			return err
		}

		var existing int64
		if item != nil {
			existing = item.Amount
		}
		newAmount := existing + amount

		// The stock gate applies to the whole line, not just the delta,
		// so repeated adds cannot creep past the available pieces.
		if variant != nil && newAmount > variant.PcsInStock {
			return utils.ErrOutOfStock
		}

		switch {
		case newAmount <= 0:
			if item != nil {
				if err := r.Carts().DeleteItem(ctx, item.ID); err != nil {
					return err
				}
			}
		case item == nil:
			item = &db_models.CartItem{
				CartID:     cart.ID,
				ProductID:  product.ID,
				VariantID:  variantID,
				Amount:     newAmount,
				PriceMinor: product.PriceMinor * newAmount,
				Currency:   product.Currency,
			}
			if err := r.Carts().CreateItem(ctx, item); err != nil {
				return err
			}
		default:
			item.Amount = newAmount
			item.PriceMinor = product.PriceMinor * newAmount
			item.Currency = product.Currency
			if err := r.Carts().SaveItem(ctx, item); err != nil {
				return err
			}
		}

		count, err := r.Carts().CountItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			cartID = uuid.Nil
			return r.Carts().Delete(ctx, cart.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cartID == uuid.Nil {
		return &response_models.CartResponse{Items: []response_models.CartItemResponse{}}, nil
	}
	return s.GetCart(ctx, sessionToken)
}

func (s *CartService) GetCart(ctx context.Context, sessionToken string) (*response_models.CartResponse, error) {
	var cart *db_models.Cart
	err := s.tx.WithinTx(ctx, func(r repositories.TxRepos) error {
		var err error
		cart, err = r.Carts().GetByToken(ctx, sessionToken)
		return err
	})
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &response_models.CartResponse{Items: []response_models.CartItemResponse{}}, nil
	}
	return cartToResponse(cart), nil
}

func cartToResponse(cart *db_models.Cart) *response_models.CartResponse {
	items := make([]response_models.CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		out := response_models.CartItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.Product.Name,
			Amount:      item.Amount,
			PriceMinor:  item.PriceMinor,
			Currency:    item.Currency,
		}
		if item.VariantID != nil {
			out.VariantID = item.VariantID.String()
			if item.Variant != nil {
				out.VariantName = item.Variant.Name
			}
		}
		items = append(items, out)
	}
	total, currency := cart.TotalPriceMinor()
	return &response_models.CartResponse{
		ID:              cart.ID.String(),
		Items:           items,
		TotalPriceMinor: total,
		Currency:        currency,
	}
}
