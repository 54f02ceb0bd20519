package services

import (
	"context"

	"github.com/google/uuid"

	"storengine/internal/models/db_models"
	"storengine/internal/models/response_models"
	"storengine/internal/repositories"
	"storengine/pkg/utils"
)

type IProductService interface {
	ListProducts(ctx context.Context) ([]response_models.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*response_models.ProductResponse, error)
}

type ProductService struct {
	products repositories.IProductRepository
}

func NewProductService(products repositories.IProductRepository) IProductService {
	return &ProductService{products: products}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]response_models.ProductResponse, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*response_models.ProductResponse, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, utils.ErrProductNotFound
	}
	return productToResponse(product), nil
}

func productToResponse(p *db_models.Product) *response_models.ProductResponse {
	variants := make([]response_models.ProductVariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, response_models.ProductVariantResponse{
			ID:         v.ID.String(),
			Name:       v.Name,
			PcsInStock: v.PcsInStock,
		})
	}
	return &response_models.ProductResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		PriceMinor:       p.PriceMinor,
		Currency:         p.Currency,
		MustBePaidOnline: p.MustBePaidOnline,
		Variants:         variants,
	}
}
