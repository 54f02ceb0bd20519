package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storengine/internal/models/response_models"
	"storengine/internal/services"
	"storengine/pkg/utils"
)

type PaymentController struct {
	paymentService services.IPaymentService
}

func NewPaymentController(paymentService services.IPaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// Notify godoc
// @Summary GoPay webhook
// @Description Gateway notification endpoint; fetches the payment status and updates the matching orders
// @Tags Payments
// @Produce json
// @Param id query string true "Gateway payment ID"
// @Success 200 {object} map[string]interface{}
// @Router /gopay-notify [get]
func (p *PaymentController) Notify(c *gin.Context) {
	// The gateway only checks the HTTP status, but the body shape is part of
	// the contract with its sandbox tooling.
	paymentID := c.Query("id")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing Payment ID."})
		return
	}

	if err := p.paymentService.Notify(c.Request.Context(), paymentID); err != nil {
		if errors.Is(err, utils.ErrMissingPaymentID) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing Payment ID."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Callback godoc
// @Summary Payment return callback
// @Description Where the gateway redirects the customer after payment; re-checks the payment state
// @Tags Payments
// @Produce json
// @Param order_number path string true "Order number"
// @Param id query string true "Gateway payment ID"
// @Success 200 {object} utils.APIResponse
// @Router /order/{order_number}/callback [get]
func (p *PaymentController) Callback(c *gin.Context) {
	orderNumber := c.Param("order_number")
	paymentID := c.Query("id")

	order, err := p.paymentService.Callback(c.Request.Context(), orderNumber, paymentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	redirect := "/order/" + order.OrderNumber + "/thank-you"
	if !order.IsPaid {
		redirect = "/order/" + order.OrderNumber + "/not-paid"
	}

	utils.RespondSuccess(c, response_models.PaymentCallbackResponse{
		OrderNumber: order.OrderNumber,
		IsPaid:      order.IsPaid,
		RedirectTo:  redirect,
	}, "Payment state resolved")
}
