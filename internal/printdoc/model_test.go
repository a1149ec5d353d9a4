package printdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-pos/arcadia-pos/internal/pricing"
	"github.com/arcadia-pos/arcadia-pos/internal/sales"
)

var testIssuer = Issuer{Name: "Arcadia Trading Co.", Address: "12 Harbor Road", Phone: "555-0100"}

func itemizedDoc(items []sales.LineItem) Document {
	return Document{
		Kind:         KindQuotation,
		ID:           "a1b2c3-d4e5f6",
		Date:         "2026-01-15",
		Mode:         pricing.ModeItemized,
		Customer:     sales.Customer{Name: "Acme Stores"},
		Items:        items,
		Subtotal:     350,
		ItemDiscount: 30,
		GrandTotal:   320,
	}
}

func TestBuildHeaderAndTotalsPlacement(t *testing.T) {
	model := Build(itemizedDoc(makeItems(24)), testIssuer, NewEstimatePaginator())

	require.Len(t, model.Pages, 3)

	require.NotNil(t, model.Pages[0].Header, "page 1 carries the header")
	assert.Nil(t, model.Pages[1].Header)
	assert.Nil(t, model.Pages[2].Header)

	assert.Nil(t, model.Pages[0].Totals)
	assert.Nil(t, model.Pages[1].Totals)
	require.NotNil(t, model.Pages[2].Totals, "last page carries the totals block")

	header := model.Pages[0].Header
	assert.Equal(t, "QUOTATION", header.Title)
	assert.Equal(t, "D4E5F6", header.Meta.Number)
	assert.Equal(t, "January 15, 2026", header.Meta.Date)
	assert.Equal(t, 3, header.Meta.Pages)
}

func TestBuildZeroItems(t *testing.T) {
	doc := itemizedDoc(nil)
	doc.Subtotal, doc.ItemDiscount, doc.GrandTotal = 0, 0, 0

	model := Build(doc, testIssuer, NewEstimatePaginator())

	require.Len(t, model.Pages, 1)
	assert.Empty(t, model.Pages[0].Rows)
	require.NotNil(t, model.Pages[0].Header)
	require.NotNil(t, model.Pages[0].Totals)
	assert.Equal(t, "0.00", model.Pages[0].Totals.GrandTotal)
}

func TestBuildMissingIdentityAndDate(t *testing.T) {
	doc := itemizedDoc(makeItems(1))
	doc.ID = ""
	doc.Date = "garbage"

	model := Build(doc, testIssuer, NewEstimatePaginator())

	header := model.Pages[0].Header
	assert.Equal(t, "------", header.Meta.Number)
	assert.Equal(t, "", header.Meta.Date)
}

func TestBuildModeColumns(t *testing.T) {
	t.Run("itemized shows the discount column", func(t *testing.T) {
		model := Build(itemizedDoc(makeItems(1)), testIssuer, NewEstimatePaginator())
		assert.True(t, model.ShowDiscount)
		require.Len(t, model.Columns, 6)
		assert.Equal(t, "Unit Price", model.Columns[3].Title)
		assert.Equal(t, "Discount", model.Columns[4].Title)
		require.NotNil(t, model.Pages[0].Totals)
		assert.True(t, model.Pages[0].Totals.ShowDiscount)
	})

	t.Run("rate-embedded swaps discount for the discounted rate", func(t *testing.T) {
		doc := itemizedDoc(makeItems(1))
		doc.Mode = pricing.ModeRateEmbedded

		model := Build(doc, testIssuer, NewEstimatePaginator())
		assert.False(t, model.ShowDiscount)
		require.Len(t, model.Columns, 6)
		assert.Equal(t, "Unit Price", model.Columns[3].Title)
		assert.Equal(t, "Rate", model.Columns[4].Title)
		for _, col := range model.Columns {
			assert.NotEqual(t, "Discount", col.Title)
		}
		assert.False(t, model.Pages[0].Totals.ShowDiscount)

		// The discount column's width migrates to description and net.
		assert.Greater(t, model.Columns[1].Width, itemizedColumns[1].Width)
		assert.Greater(t, model.Columns[5].Width, itemizedColumns[5].Width)
	})
}

func TestBuildLegacyUnitPriceFallback(t *testing.T) {
	doc := Document{
		Kind: KindInvoice,
		ID:   "x",
		Mode: pricing.ModeRateEmbedded,
		Items: []sales.LineItem{
			// Stored before unit prices were persisted: only mrp and the
			// per-unit discount survive.
			{Code: "P-1", Name: "Widget", Quantity: 2, MRP: 100, Discount: 10, Total: 180},
		},
		GrandTotal: 180,
	}

	model := Build(doc, testIssuer, NewEstimatePaginator())
	require.Len(t, model.Pages[0].Rows, 1)
	assert.Equal(t, "100.00", model.Pages[0].Rows[0].UnitPrice)
	assert.Equal(t, "90.00", model.Pages[0].Rows[0].Rate)
}

func TestBuildPreviousQuantityShownOnEditedLines(t *testing.T) {
	doc := Document{
		Kind: KindInvoice,
		ID:   "x",
		Mode: pricing.ModeItemized,
		Items: []sales.LineItem{
			{Code: "P-1", Name: "Widget", Quantity: 6, PreviousQuantity: 10, MRP: 10, UnitPrice: 10, Total: 60},
			{Code: "P-2", Name: "Gadget", Quantity: 2, MRP: 10, UnitPrice: 10, Total: 20},
		},
	}

	model := Build(doc, testIssuer, NewEstimatePaginator())
	rows := model.Pages[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "10", rows[0].PreviousQty)
	assert.Empty(t, rows[1].PreviousQty)
}

func TestRenderHTMLSelfContained(t *testing.T) {
	doc := itemizedDoc(makeItems(9))
	doc.PaymentMethod = ""

	html, err := RenderHTML(Build(doc, testIssuer, NewEstimatePaginator()))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "QUOTATION")
	assert.Contains(t, out, "D4E5F6")
	assert.Contains(t, out, "Arcadia Trading Co.")
	assert.Contains(t, out, "320.00")
	assert.Equal(t, 2, strings.Count(out, `class="page"`), "9 items span two pages")
	assert.NotContains(t, out, "<link", "artifact must not reference external stylesheets")
	assert.Contains(t, out, "window.print", "browser preview opens the print dialog")
}

func TestRenderHTMLRateEmbeddedHidesDiscount(t *testing.T) {
	doc := itemizedDoc([]sales.LineItem{
		{Code: "P-1", Name: "Widget", Quantity: 3, MRP: 100, UnitPrice: 90, Discount: 10, Total: 270},
	})
	doc.Mode = pricing.ModeRateEmbedded
	doc.Subtotal, doc.ItemDiscount, doc.GrandTotal = 300, 30, 270

	html, err := RenderHTML(Build(doc, testIssuer, NewEstimatePaginator()))
	require.NoError(t, err)

	out := string(html)
	assert.NotContains(t, out, "Discount")
	assert.Contains(t, out, "100.00", "list rate stays visible next to the discounted rate")
	assert.Contains(t, out, "90.00")
	assert.Contains(t, out, "270.00")
}
