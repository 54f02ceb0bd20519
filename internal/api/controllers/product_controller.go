package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storengine/internal/services"
	"storengine/pkg/utils"
)

type ProductController struct {
	productService services.IProductService
}

func NewProductController(productService services.IProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ListProducts godoc
// @Summary List active products
// @Description List active products with their variants and stock
// @Tags Products
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /products [get]
func (p *ProductController) ListProducts(c *gin.Context) {
	products, err := p.productService.ListProducts(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, products, "Products retrieved successfully")
}

// GetProduct godoc
// @Summary Get a product
// @Description Get one product by id
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} utils.APIResponse
// @Router /products/{id} [get]
func (p *ProductController) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := p.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, product, "Product retrieved successfully")
}
