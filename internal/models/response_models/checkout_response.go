package response_models

type CheckoutResponse struct {
	OrderNumber string `json:"order_number"`
	// Gateway URL to redirect to for online payments; empty for pay-later.
	GatewayURL string `json:"gateway_url,omitempty"`
	ThankYou   bool   `json:"thank_you"`
}

type PaymentCallbackResponse struct {
	OrderNumber string `json:"order_number"`
	IsPaid      bool   `json:"is_paid"`
	RedirectTo  string `json:"redirect_to"`
}
