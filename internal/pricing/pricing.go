// Package pricing computes line-item and document totals for quotations
// and invoices. Two discount modes exist: itemized, where each line keeps
// the catalog rate and carries an explicit discount amount, and
// rate-embedded, where the discount is folded into the unit rate and the
// document shows no discount column at all.
package pricing

import (
	"errors"
	"math"
)

// Mode selects how discounts are applied to a document.
type Mode string

const (
	// ModeItemized keeps the catalog rate per line and records the
	// discount as its own amount.
	ModeItemized Mode = "itemized"
	// ModeRateEmbedded subtracts the discount from the unit rate before
	// extending, so the document never shows a discount figure.
	ModeRateEmbedded Mode = "rate_embedded"
)

// DiscountKind says how a line's discount value is interpreted.
type DiscountKind string

const (
	DiscountFlat    DiscountKind = "flat"
	DiscountPercent DiscountKind = "percent"
)

// Validation errors surfaced to the API as-is.
var (
	ErrNegativeDiscount = errors.New("Discount cannot be negative")
	ErrDiscountTooLarge = errors.New("Discount cannot exceed item total")
	ErrNonPositiveQty   = errors.New("Quantity must be greater than zero")
)

// LineInput is the raw pricing input for one document line.
type LineInput struct {
	ProductID    string
	Name         string
	Quantity     float64
	MRP          float64
	Discount     float64
	DiscountKind DiscountKind
}

// Line is a fully priced document line.
type Line struct {
	ProductID string
	Name      string
	Quantity  float64
	MRP       float64
	// UnitPrice equals MRP in itemized mode; in rate-embedded mode it is
	// the rate after the per-unit discount was folded in.
	UnitPrice float64
	// DiscountAmount is the full line discount in itemized mode and the
	// per-unit discount in rate-embedded mode.
	DiscountAmount float64
	Total          float64
}

// Totals aggregates a priced document.
type Totals struct {
	Subtotal      float64
	ItemDiscount  float64
	ExtraDiscount float64
	GrandTotal    float64
}

// Round2 rounds a monetary value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PriceLine prices a single line under the given mode.
//
// Itemized: a percent discount applies to the extended amount
// (mrp * qty * pct / 100) and the line total is qty*mrp minus that
// amount. Rate-embedded: a percent discount applies to the unit rate
// only (mrp * pct / 100), the discounted rate is extended by quantity.
// The asymmetry is load-bearing: existing documents were priced this
// way and must re-total identically.
func PriceLine(mode Mode, in LineInput) (Line, error) {
	if in.Quantity <= 0 {
		return Line{}, ErrNonPositiveQty
	}
	if in.Discount < 0 {
		return Line{}, ErrNegativeDiscount
	}

	line := Line{
		ProductID: in.ProductID,
		Name:      in.Name,
		Quantity:  in.Quantity,
		MRP:       in.MRP,
	}

	switch mode {
	case ModeRateEmbedded:
		perUnit := in.Discount
		if in.DiscountKind == DiscountPercent {
			perUnit = in.MRP * in.Discount / 100
		}
		if perUnit > in.MRP {
			return Line{}, ErrDiscountTooLarge
		}
		line.UnitPrice = Round2(in.MRP - perUnit)
		line.DiscountAmount = Round2(perUnit)
		line.Total = Round2(line.UnitPrice * in.Quantity)

	default: // ModeItemized
		gross := in.MRP * in.Quantity
		amount := in.Discount
		if in.DiscountKind == DiscountPercent {
			amount = gross * in.Discount / 100
		}
		if amount > gross {
			return Line{}, ErrDiscountTooLarge
		}
		line.UnitPrice = in.MRP
		line.DiscountAmount = Round2(amount)
		line.Total = Round2(gross - amount)
	}

	return line, nil
}

// PriceDocument prices every line and aggregates document totals.
// extraDiscountPct is an additional document-level percent discount
// applied to the amount remaining after line discounts; it only has
// effect in itemized mode.
func PriceDocument(mode Mode, items []LineInput, extraDiscountPct float64) ([]Line, Totals, error) {
	if extraDiscountPct < 0 {
		return nil, Totals{}, ErrNegativeDiscount
	}

	lines := make([]Line, 0, len(items))
	var t Totals
	for _, in := range items {
		line, err := PriceLine(mode, in)
		if err != nil {
			return nil, Totals{}, err
		}
		lines = append(lines, line)

		t.Subtotal += in.MRP * in.Quantity
		if mode == ModeRateEmbedded {
			t.ItemDiscount += line.DiscountAmount * line.Quantity
		} else {
			t.ItemDiscount += line.DiscountAmount
		}
		t.GrandTotal += line.Total
	}

	if mode == ModeItemized && extraDiscountPct > 0 {
		base := t.Subtotal - t.ItemDiscount
		t.ExtraDiscount = Round2(base * extraDiscountPct / 100)
		t.GrandTotal -= t.ExtraDiscount
	}

	t.Subtotal = Round2(t.Subtotal)
	t.ItemDiscount = Round2(t.ItemDiscount)
	t.GrandTotal = Round2(t.GrandTotal)

	return lines, t, nil
}

// InferMode resolves the pricing mode for documents stored before the
// mode became an explicit field. Legacy rate-embedded documents carry a
// unit price that differs from the catalog rate on at least one line;
// everything else was itemized.
func InferMode(stored Mode, lines []Line) Mode {
	if stored == ModeItemized || stored == ModeRateEmbedded {
		return stored
	}
	for _, l := range lines {
		if l.UnitPrice != 0 && l.UnitPrice != l.MRP {
			return ModeRateEmbedded
		}
	}
	return ModeItemized
}
