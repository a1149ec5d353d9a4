package quotations

import (
	"time"

	"github.com/arcadia-pos/arcadia-pos/internal/pricing"
	"github.com/arcadia-pos/arcadia-pos/internal/sales"
)

// Quotation is a priced offer that can later be converted into an
// invoice. Date is kept as the issued yyyy-mm-dd string; documents
// imported from older systems sometimes carry unparseable dates and
// those must survive round trips untouched.
type Quotation struct {
	ID               string           `json:"id"`
	Customer         sales.Customer   `json:"customer"`
	Receiver         sales.Receiver   `json:"receiver,omitempty"`
	OrderRef         string           `json:"orderRef,omitempty"`
	Date             string           `json:"date"`
	Mode             pricing.Mode     `json:"mode"`
	Items            []sales.LineItem `json:"items"`
	ExtraDiscountPct float64          `json:"extraDiscountPct"`
	Subtotal         float64          `json:"subtotal"`
	ItemDiscount     float64          `json:"itemDiscount"`
	ExtraDiscount    float64          `json:"extraDiscount"`
	GrandTotal       float64          `json:"grandTotal"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}
