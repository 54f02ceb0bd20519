package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storengine/internal/models/request_models"
	"storengine/internal/services"
	"storengine/pkg/utils"
)

type CheckoutController struct {
	checkoutService services.ICheckoutService
}

func NewCheckoutController(checkoutService services.ICheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// Checkout godoc
// @Summary Submit the checkout
// @Description Turn the session cart into an order and open a payment session for online payments
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body request_models.CheckoutRequest true "Checkout Request"
// @Success 200 {object} utils.APIResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	var request request_models.CheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := ctrl.checkoutService.Checkout(c.Request.Context(), c.GetString("cart_token"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Order created successfully")
}
