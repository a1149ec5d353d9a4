package printdoc

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
	"github.com/arcadia-pos/arcadia-pos/internal/pricing"
	"github.com/arcadia-pos/arcadia-pos/internal/sales"
	"github.com/arcadia-pos/arcadia-pos/internal/sales/invoices"
	"github.com/arcadia-pos/arcadia-pos/internal/sales/quotations"
)

type stubQuotations struct {
	quotation quotations.Quotation
}

func (s *stubQuotations) Get(ctx context.Context, id string) (quotations.Quotation, error) {
	if id != s.quotation.ID {
		return quotations.Quotation{}, httpx.ErrNotFound
	}
	return s.quotation, nil
}

type stubInvoices struct {
	invoice invoices.Invoice
}

func (s *stubInvoices) Get(ctx context.Context, id string) (invoices.Invoice, error) {
	if id != s.invoice.ID {
		return invoices.Invoice{}, httpx.ErrNotFound
	}
	return s.invoice, nil
}

type countingConverter struct {
	calls atomic.Int32
}

func (c *countingConverter) ConvertHTML(ctx context.Context, html []byte) ([]byte, error) {
	c.calls.Add(1)
	return append([]byte("%PDF-1.7 "), html[:20]...), nil
}

func testQuotation() quotations.Quotation {
	return quotations.Quotation{
		ID:       "a1b2c3-d4e5f6",
		Customer: sales.Customer{Name: "Acme Stores"},
		Date:     "2026-01-15",
		Mode:     pricing.ModeItemized,
		Items: []sales.LineItem{
			{Code: "PEN-01", Name: "Ballpoint Pen", Quantity: 10, MRP: 12, UnitPrice: 12, Discount: 12, Total: 108},
		},
		Subtotal:     120,
		ItemDiscount: 12,
		GrandTotal:   108,
	}
}

func newPrintService(t *testing.T, conv PDFConverter) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	inv := invoices.Invoice{
		ID:            "inv-9z8y7x",
		Customer:      sales.Customer{Name: "Acme Stores"},
		Date:          "2026-02-01",
		Mode:          pricing.ModeItemized,
		PaymentMethod: invoices.PaymentCash,
		Status:        invoices.StatusPending,
		Items:         testQuotation().Items,
		Subtotal:      120,
		ItemDiscount:  12,
		GrandTotal:    108,
	}

	return NewService(
		&stubQuotations{quotation: testQuotation()},
		&stubInvoices{invoice: inv},
		testIssuer,
		conv,
		cache,
		slog.New(slog.DiscardHandler),
	)
}

func TestQuotationHTMLPreview(t *testing.T) {
	svc := newPrintService(t, &countingConverter{})

	html, err := svc.QuotationHTML(context.Background(), "a1b2c3-d4e5f6")
	require.NoError(t, err)
	assert.Contains(t, string(html), "QUOTATION")
	assert.Contains(t, string(html), "Ballpoint Pen")
	assert.Contains(t, string(html), "108.00")
}

func TestQuotationHTMLNotFound(t *testing.T) {
	svc := newPrintService(t, &countingConverter{})

	_, err := svc.QuotationHTML(context.Background(), "missing")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestQuotationPDFCachesRenders(t *testing.T) {
	conv := &countingConverter{}
	svc := newPrintService(t, conv)
	ctx := context.Background()

	first, err := svc.QuotationPDF(ctx, "a1b2c3-d4e5f6")
	require.NoError(t, err)
	assert.True(t, len(first) > 0)

	second, err := svc.QuotationPDF(ctx, "a1b2c3-d4e5f6")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), conv.calls.Load(), "second download must come from cache")
}

func TestInvoicePDFIncludesPayment(t *testing.T) {
	svc := newPrintService(t, &countingConverter{})

	html, err := svc.InvoiceHTML(context.Background(), "inv-9z8y7x")
	require.NoError(t, err)
	assert.Contains(t, string(html), "INVOICE")
	assert.Contains(t, string(html), "cash")
}
