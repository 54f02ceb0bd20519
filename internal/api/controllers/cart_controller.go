package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storengine/internal/models/request_models"
	"storengine/internal/services"
	"storengine/pkg/utils"
)

type CartController struct {
	cartService services.ICartService
}

func NewCartController(cartService services.ICartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// GetCart godoc
// @Summary Get the session cart
// @Description Get the current cart for the visitor's session
// @Tags Cart
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.cartService.GetCart(c.Request.Context(), c.GetString("cart_token"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, cart, "Cart retrieved successfully")
}

// AddToCart godoc
// @Summary Add a product to the cart
// @Description Merge an amount of a product variant into the session cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body request_models.AddToCartRequest true "Add To Cart Request"
// @Success 200 {object} utils.APIResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var request request_models.AddToCartRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cart, err := ctrl.cartService.AddToCart(c.Request.Context(), c.GetString("cart_token"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, cart, "Cart updated successfully")
}
