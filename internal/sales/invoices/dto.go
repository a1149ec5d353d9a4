package invoices

import "github.com/arcadia-pos/arcadia-pos/internal/sales"

// CreateInvoiceRequest is the payload for issuing an invoice directly.
type CreateInvoiceRequest struct {
	Customer         sales.Customer      `json:"customer"`
	Receiver         sales.Receiver      `json:"receiver"`
	OrderRef         string              `json:"orderRef" validate:"max=100"`
	Date             string              `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Mode             string              `json:"mode" validate:"omitempty,oneof=itemized rate_embedded"`
	ExtraDiscountPct float64             `json:"extraDiscountPct" validate:"gte=0,lte=100"`
	PaymentMethod    string              `json:"paymentMethod" validate:"required,oneof=cash credit"`
	Items            []sales.ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest replaces the invoice content and re-prices it.
type UpdateInvoiceRequest = CreateInvoiceRequest

// ConvertRequest carries the payment method chosen when a quotation is
// converted into an invoice.
type ConvertRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cash credit"`
}

// UpdateStatusRequest moves an invoice between pending and paid.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid cancelled"`
}
