// Package receiving records goods received from suppliers and posts
// the received quantity onto the catalog's stock.
package receiving

import "time"

// Receipt is one received-products entry: which supplier delivered
// what, how much of it, and at what cost. TotalCost is derived, never
// client-supplied.
type Receipt struct {
	ID        string    `json:"id"`
	Supplier  string    `json:"supplier"`
	Address   string    `json:"address,omitempty"`
	ItemName  string    `json:"itemName"`
	ItemCode  string    `json:"itemCode"`
	Quantity  float64   `json:"quantity"`
	Cost      float64   `json:"cost"`
	TotalCost float64   `json:"totalCost"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
