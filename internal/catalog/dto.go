package catalog

// CreateProductRequest is the payload for adding a catalog entry.
type CreateProductRequest struct {
	Code     string  `json:"code" validate:"required,min=1,max=40"`
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Unit     string  `json:"unit" validate:"max=20"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	MRP      float64 `json:"mrp" validate:"required,gt=0"`
	Cost     float64 `json:"cost" validate:"gte=0"`
}

// UpdateProductRequest is the payload for editing a catalog entry.
type UpdateProductRequest = CreateProductRequest
