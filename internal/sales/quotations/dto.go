package quotations

import "github.com/arcadia-pos/arcadia-pos/internal/sales"

// CreateQuotationRequest is the payload for authoring a quotation.
type CreateQuotationRequest struct {
	Customer         sales.Customer      `json:"customer"`
	Receiver         sales.Receiver      `json:"receiver"`
	OrderRef         string              `json:"orderRef" validate:"max=100"`
	Date             string              `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Mode             string              `json:"mode" validate:"omitempty,oneof=itemized rate_embedded"`
	ExtraDiscountPct float64             `json:"extraDiscountPct" validate:"gte=0,lte=100"`
	Items            []sales.ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuotationRequest mirrors the create payload; edits replace the
// full line set and re-price the document.
type UpdateQuotationRequest = CreateQuotationRequest
