package response_models

type ProductVariantResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PcsInStock int64  `json:"pcs_in_stock"`
}

type ProductResponse struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	ShortDescription string                   `json:"short_description,omitempty"`
	PriceMinor       int64                    `json:"price_minor"`
	Currency         string                   `json:"currency"`
	MustBePaidOnline bool                     `json:"must_be_paid_online"`
	Variants         []ProductVariantResponse `json:"variants,omitempty"`
}
