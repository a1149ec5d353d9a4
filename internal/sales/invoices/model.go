package invoices

import (
	"time"

	"github.com/arcadia-pos/arcadia-pos/internal/pricing"
	"github.com/arcadia-pos/arcadia-pos/internal/sales"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// PaymentMethod is how the customer settles the invoice.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
)

// Stats summarises the invoice book for the dashboard cards: one count
// per status plus the grand total across every invoice.
type Stats struct {
	Total       int     `json:"total"`
	Pending     int     `json:"pending"`
	Paid        int     `json:"paid"`
	Cancelled   int     `json:"cancelled"`
	TotalAmount float64 `json:"totalAmount"`
}

// Invoice is an issued sales document. SourceQuotationID is set when
// the invoice came from converting a quotation.
type Invoice struct {
	ID                string           `json:"id"`
	Customer          sales.Customer   `json:"customer"`
	Receiver          sales.Receiver   `json:"receiver,omitempty"`
	OrderRef          string           `json:"orderRef,omitempty"`
	Date              string           `json:"date"`
	Mode              pricing.Mode     `json:"mode"`
	Items             []sales.LineItem `json:"items"`
	ExtraDiscountPct  float64          `json:"extraDiscountPct"`
	Subtotal          float64          `json:"subtotal"`
	ItemDiscount      float64          `json:"itemDiscount"`
	ExtraDiscount     float64          `json:"extraDiscount"`
	GrandTotal        float64          `json:"grandTotal"`
	Status            Status           `json:"status"`
	PaymentMethod     PaymentMethod    `json:"paymentMethod"`
	SourceQuotationID string           `json:"sourceQuotationId,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}
