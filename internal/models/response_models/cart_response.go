package response_models

type CartItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantID   string `json:"variant_id,omitempty"`
	VariantName string `json:"variant_name,omitempty"`
	Amount      int64  `json:"amount"`
	PriceMinor  int64  `json:"price_minor"`
	Currency    string `json:"currency"`
}

type CartResponse struct {
	ID              string             `json:"id"`
	Items           []CartItemResponse `json:"items"`
	TotalPriceMinor int64              `json:"total_price_minor"`
	Currency        string             `json:"currency"`
}
