package dto

import "time"

// CreateListingRequest publica créditos en venta.
type CreateListingRequest struct {
	CreditsAmount  string `json:"credits_amount"`   // decimal como string
	PricePerCredit string `json:"price_per_credit"` // decimal como string
}

// ListingResponse representación pública de una publicación.
type ListingResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	CreditsAmount  string    `json:"credits_amount"`
	PricePerCredit string    `json:"price_per_credit"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// PurchaseResponse confirmación de una compra liquidada.
type PurchaseResponse struct {
	ListingID     string `json:"listing_id"`
	SellerOrgID   string `json:"seller_organization_id"`
	BuyerOrgID    string `json:"buyer_organization_id"`
	CreditsAmount string `json:"credits_amount"`
	TotalCost     string `json:"total_cost"`
}
