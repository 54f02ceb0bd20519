package request_models

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	// Amount may be negative to decrement a line. Defaults to 1.
	Amount int64 `json:"amount"`
}
