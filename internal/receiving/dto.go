package receiving

// CreateReceiptRequest is the payload for logging received goods.
type CreateReceiptRequest struct {
	Supplier string  `json:"supplier" validate:"required,min=1,max=200"`
	Address  string  `json:"address" validate:"max=300"`
	ItemName string  `json:"itemName" validate:"required,min=1,max=200"`
	ItemCode string  `json:"itemCode" validate:"required,min=1,max=40"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Cost     float64 `json:"cost" validate:"gte=0"`
}

// UpdateReceiptRequest corrects a logged receipt.
type UpdateReceiptRequest = CreateReceiptRequest
