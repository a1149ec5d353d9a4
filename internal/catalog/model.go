package catalog

import "time"

// Product is one catalog entry. Code is the short reference keyed in at
// the counter; MRP is the list rate shown on documents before any
// discount. Quantity is the stock on hand, bumped by goods receipts.
// Cost is internal and never printed.
type Product struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit,omitempty"`
	Quantity  float64   `json:"quantity"`
	MRP       float64   `json:"mrp"`
	Cost      float64   `json:"cost,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
