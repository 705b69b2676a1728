package domain

// ParsedQuery is the structured intent extracted from a free-text
// procurement query. Nil fields mean the query did not mention them.
type ParsedQuery struct {
	ProductCategory *string `json:"product_category"`
	ProductName     *string `json:"product_name"`
	Brand           *string `json:"brand"`
	Quantity        *int    `json:"quantity"`
	Urgency         *string `json:"urgency"`          // "high", "medium"
	PricePreference *string `json:"price_preference"` // "budget", "mid-range", "premium"
}

// SupplierOffer is a priced, supplier-specific proposal to fulfill a
// requested product and quantity. Offers are synthesized per request
// and never persisted.
type SupplierOffer struct {
	Supplier            Supplier `json:"supplier"`
	Product             Product  `json:"product"`
	Price               float64  `json:"price"` // unit base price
	QuantityAvailable   int      `json:"quantity_available"`
	DeliveryTime        string   `json:"delivery_time"`
	TotalCost           float64  `json:"total_cost"`
	ShippingCost        float64  `json:"shipping_cost"`
	BulkDiscountApplied float64  `json:"bulk_discount_applied"`
	FinalPrice          float64  `json:"final_price"`
	Score               int      `json:"score"`
}

// ProcurementRequest is the inbound request body for /api/procure.
// Quantity, when set, overrides any quantity parsed from the query.
type ProcurementRequest struct {
	Query           string `json:"query" binding:"required"`
	Quantity        *int   `json:"quantity,omitempty"`
	Urgency         string `json:"urgency,omitempty"`
	PricePreference string `json:"price_preference,omitempty"`
}

// ProcurementResponse is the full result of one pipeline pass.
type ProcurementResponse struct {
	Query           string          `json:"query"`
	ParsedQuery     ParsedQuery     `json:"parsed_query"`
	Offers          []SupplierOffer `json:"offers"`
	TotalOffers     int             `json:"total_offers"`
	BestOffer       *SupplierOffer  `json:"best_offer,omitempty"`
	Recommendations []string        `json:"recommendations"`
	ProcessingTime  int64           `json:"processing_time"` // milliseconds
}
