// Package printdoc turns priced sales documents into a paginated,
// printable render model and serializes it to a self-contained HTML
// artifact or a PDF.
package printdoc

import (
	"github.com/arcadia-pos/arcadia-pos/internal/pricing"
	"github.com/arcadia-pos/arcadia-pos/internal/sales"
)

// Kind selects the document title and metadata fields.
type Kind string

const (
	KindQuotation Kind = "quotation"
	KindInvoice   Kind = "invoice"
)

// Issuer is the company block printed at the top of page 1.
type Issuer struct {
	Name    string
	Address string
	Phone   string
}

// Document is the normalized print input, built from either a
// quotation or an invoice.
type Document struct {
	Kind          Kind
	ID            string
	Date          string
	Mode          pricing.Mode
	Customer      sales.Customer
	Receiver      sales.Receiver
	OrderRef      string
	PaymentMethod string
	Items         []sales.LineItem
	Subtotal      float64
	ItemDiscount  float64
	ExtraDiscount float64
	GrandTotal    float64
}

// Column is one items-table column with its width as a percentage of
// the table.
type Column struct {
	Title string
	Width int
}

// Row is one formatted items-table row. UnitPrice is always the list
// rate; the fifth column carries either Rate (rate-embedded mode) or
// Discount (itemized mode).
type Row struct {
	Code        string
	Description string
	Unit        string
	Qty         string
	PreviousQty string
	UnitPrice   string
	Rate        string
	Discount    string
	Net         string
}

// Meta is the small box of document facts on page 1.
type Meta struct {
	Number        string
	Date          string
	OrderRef      string
	PaymentMethod string
	Pages         int
}

// Header is the page-1 block: title, issuer, recipient and metadata.
type Header struct {
	Title    string
	Issuer   Issuer
	Customer sales.Customer
	Receiver sales.Receiver
	Meta     Meta
}

// TotalsBlock closes the last page.
type TotalsBlock struct {
	Subtotal     string
	Discount     string
	ShowDiscount bool
	GrandTotal   string
	Remark       string
}

// Page is one printable page of the document.
type Page struct {
	Number int
	Header *Header
	Rows   []Row
	Totals *TotalsBlock
}

// Model is the complete structured print layout. It is built once per
// document and then serialized; pagination never happens during
// serialization.
type Model struct {
	Title        string
	Kind         Kind
	Mode         pricing.Mode
	Columns      []Column
	ShowDiscount bool
	Pages        []Page
}

// Columns for the two modes. Both show the list rate; the fifth column
// is Discount in itemized mode and the discounted Rate otherwise, with
// the freed width going mostly to description and net.
var (
	itemizedColumns = []Column{
		{Title: "Code", Width: 13},
		{Title: "Description", Width: 25},
		{Title: "Qty", Width: 8},
		{Title: "Unit Price", Width: 13},
		{Title: "Discount", Width: 13},
		{Title: "Net", Width: 15},
	}
	rateEmbeddedColumns = []Column{
		{Title: "Code", Width: 15},
		{Title: "Description", Width: 30},
		{Title: "Qty", Width: 8},
		{Title: "Unit Price", Width: 13},
		{Title: "Rate", Width: 13},
		{Title: "Net", Width: 21},
	}
)

const closingRemark = "Thank you for your business!"

// Build lays the document out across pages using the given pagination
// strategy.
func Build(doc Document, issuer Issuer, paginator Paginator) Model {
	showDiscount := doc.Mode != pricing.ModeRateEmbedded

	columns := rateEmbeddedColumns
	if showDiscount {
		columns = itemizedColumns
	}

	title := "QUOTATION"
	if doc.Kind == KindInvoice {
		title = "INVOICE"
	}

	chunks := paginator.Paginate(doc.Items)

	model := Model{
		Title:        title,
		Kind:         doc.Kind,
		Mode:         doc.Mode,
		Columns:      columns,
		ShowDiscount: showDiscount,
		Pages:        make([]Page, 0, len(chunks)),
	}

	for i, chunk := range chunks {
		page := Page{Number: i + 1, Rows: buildRows(doc, chunk)}

		if i == 0 {
			page.Header = &Header{
				Title:    title,
				Issuer:   issuer,
				Customer: doc.Customer,
				Receiver: doc.Receiver,
				Meta: Meta{
					Number:        FormatDocNumber(doc.ID),
					Date:          FormatDate(doc.Date),
					OrderRef:      doc.OrderRef,
					PaymentMethod: doc.PaymentMethod,
					Pages:         len(chunks),
				},
			}
		}

		if i == len(chunks)-1 {
			page.Totals = &TotalsBlock{
				Subtotal:     FormatAmount(doc.Subtotal),
				Discount:     FormatAmount(doc.ItemDiscount + doc.ExtraDiscount),
				ShowDiscount: showDiscount,
				GrandTotal:   FormatAmount(doc.GrandTotal),
				Remark:       closingRemark,
			}
		}

		model.Pages = append(model.Pages, page)
	}

	return model
}

func buildRows(doc Document, items []sales.LineItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := Row{
			Code:        it.Code,
			Description: description(it),
			Unit:        it.Unit,
			Qty:         FormatQuantity(it.Quantity),
			UnitPrice:   FormatAmount(it.MRP),
			Net:         FormatAmount(it.Total),
		}
		if doc.Mode == pricing.ModeRateEmbedded {
			row.Rate = FormatAmount(displayRate(it))
		} else {
			row.Discount = FormatAmount(it.Discount)
		}
		if it.PreviousQuantity != 0 && it.PreviousQuantity != it.Quantity {
			row.PreviousQty = FormatQuantity(it.PreviousQuantity)
		}
		rows = append(rows, row)
	}
	return rows
}

func description(it sales.LineItem) string {
	if it.Description != "" {
		return it.Name + " - " + it.Description
	}
	return it.Name
}

// displayRate is the discounted rate shown in rate-embedded mode.
// Legacy items persisted without a unit price fall back to the rate
// implied by their discount.
func displayRate(it sales.LineItem) float64 {
	if it.UnitPrice != 0 {
		return it.UnitPrice
	}
	return it.MRP - it.Discount
}
