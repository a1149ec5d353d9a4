// Package sales holds the document types shared by quotations and
// invoices: the customer and receiver blocks, the line items, and the
// glue between stored items and the pricing engine.
package sales

import (
	"context"

	"github.com/arcadia-pos/arcadia-pos/internal/catalog"
	"github.com/arcadia-pos/arcadia-pos/internal/pricing"
)

// Customer is the person block on a document. Only the name is
// mandatory.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Receiver is the optional company block for documents addressed to a
// business.
type Receiver struct {
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
}

// LineItem is one stored document line. Pricing fields are persisted so
// a document re-renders exactly as issued even if the catalog changes.
// Discount is always the resolved currency amount: the full line
// discount in itemized mode, the per-unit discount in rate-embedded
// mode.
type LineItem struct {
	ProductID   string `json:"productId"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
	// PreviousQuantity records the quantity before the last edit of an
	// issued invoice. Zero means the line was never edited.
	PreviousQuantity float64 `json:"previousQuantity,omitempty"`
	Quantity         float64 `json:"quantity"`
	MRP              float64 `json:"mrp"`
	UnitPrice        float64 `json:"unitPrice"`
	Discount         float64 `json:"discount"`
	Total            float64 `json:"total"`
}

// ItemRequest is the line payload accepted when creating or editing a
// document. Discount arrives either as a currency amount or as a
// percentage; both resolve to the same stored figure.
type ItemRequest struct {
	ProductID    string  `json:"productId" validate:"required"`
	Description  string  `json:"description" validate:"max=300"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	Discount     float64 `json:"discount" validate:"gte=0"`
	DiscountKind string  `json:"discountKind" validate:"omitempty,oneof=flat percent"`
}

// ProductResolver looks up catalog products for document lines.
type ProductResolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]catalog.Product, error)
}

// BuildInputs turns request lines into pricing inputs, pulling rate
// data from the resolved catalog products.
func BuildInputs(reqs []ItemRequest, products map[string]catalog.Product) []pricing.LineInput {
	inputs := make([]pricing.LineInput, 0, len(reqs))
	for _, req := range reqs {
		p := products[req.ProductID]
		kind := pricing.DiscountKind(req.DiscountKind)
		if kind == "" {
			kind = pricing.DiscountFlat
		}
		inputs = append(inputs, pricing.LineInput{
			ProductID:    p.ID,
			Name:         p.Name,
			Quantity:     req.Quantity,
			MRP:          p.MRP,
			Discount:     req.Discount,
			DiscountKind: kind,
		})
	}
	return inputs
}

// ProductIDs collects the product IDs referenced by request lines.
func ProductIDs(reqs []ItemRequest) []string {
	ids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.ProductID)
	}
	return ids
}

// PriceItems resolves and prices request lines into stored line items.
func PriceItems(mode pricing.Mode, reqs []ItemRequest, products map[string]catalog.Product, extraDiscountPct float64) ([]LineItem, pricing.Totals, error) {
	lines, totals, err := pricing.PriceDocument(mode, BuildInputs(reqs, products), extraDiscountPct)
	if err != nil {
		return nil, pricing.Totals{}, err
	}

	items := make([]LineItem, 0, len(lines))
	for i, line := range lines {
		p := products[reqs[i].ProductID]
		items = append(items, LineItem{
			ProductID:   p.ID,
			Code:        p.Code,
			Name:        p.Name,
			Description: reqs[i].Description,
			Unit:        p.Unit,
			Quantity:    line.Quantity,
			MRP:         line.MRP,
			UnitPrice:   line.UnitPrice,
			Discount:    line.DiscountAmount,
			Total:       line.Total,
		})
	}
	return items, totals, nil
}

// PricingLines adapts stored items for mode inference on legacy
// documents.
func PricingLines(items []LineItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{MRP: it.MRP, UnitPrice: it.UnitPrice})
	}
	return lines
}
