package request_models

type AddressPayload struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Company   string `json:"company"`
	Address1  string `json:"address1" binding:"required"`
	ZipCode   string `json:"zip_code" binding:"required"`
	City      string `json:"city" binding:"required"`
	Country   string `json:"country" binding:"required"`
}

type CheckoutRequest struct {
	BillingAddress AddressPayload `json:"billing_address" binding:"required"`
	// Defaults to the billing address when omitted.
	ShippingAddress *AddressPayload `json:"shipping_address"`

	// "pay_now" or "pay_later".
	PaymentIntent string `json:"payment_intent" binding:"required,oneof=pay_now pay_later"`

	PickupPointID       string `json:"pickup_point_id"`
	NewsletterSubscribe bool   `json:"newsletter_subscribe"`
}
