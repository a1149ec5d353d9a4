package printdoc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/arcadia-pos/arcadia-pos/internal/sales/invoices"
	"github.com/arcadia-pos/arcadia-pos/internal/sales/quotations"
)

// QuotationSource loads quotations for printing.
type QuotationSource interface {
	Get(ctx context.Context, id string) (quotations.Quotation, error)
}

// InvoiceSource loads invoices for printing.
type InvoiceSource interface {
	Get(ctx context.Context, id string) (invoices.Invoice, error)
}

// PDFConverter turns a rendered HTML artifact into a PDF.
type PDFConverter interface {
	ConvertHTML(ctx context.Context, html []byte) ([]byte, error)
}

const artifactTTL = 15 * time.Minute

// Service renders print artifacts. The on-screen preview uses the
// coarse paginator; the download artifact uses the measured one. PDF
// results are cached in Redis and concurrent renders of the same
// document are collapsed.
type Service struct {
	quotes   QuotationSource
	invoices InvoiceSource
	issuer   Issuer
	preview  Paginator
	artifact Paginator
	pdf      PDFConverter
	cache    *redis.Client
	group    singleflight.Group
	logger   *slog.Logger
}

// NewService wires the print pipeline.
func NewService(quotes QuotationSource, invs InvoiceSource, issuer Issuer, pdf PDFConverter, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		quotes:   quotes,
		invoices: invs,
		issuer:   issuer,
		preview:  NewEstimatePaginator(),
		artifact: NewMeasuredPaginator(),
		pdf:      pdf,
		cache:    cache,
		logger:   logger,
	}
}

// QuotationHTML renders the on-screen print preview of a quotation.
func (s *Service) QuotationHTML(ctx context.Context, id string) ([]byte, error) {
	doc, _, err := s.quotationDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return RenderHTML(Build(doc, s.issuer, s.preview))
}

// InvoiceHTML renders the on-screen print preview of an invoice.
func (s *Service) InvoiceHTML(ctx context.Context, id string) ([]byte, error) {
	doc, _, err := s.invoiceDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return RenderHTML(Build(doc, s.issuer, s.preview))
}

// QuotationPDF renders the downloadable artifact for a quotation.
func (s *Service) QuotationPDF(ctx context.Context, id string) ([]byte, error) {
	doc, version, err := s.quotationDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderPDF(ctx, doc, version)
}

// InvoicePDF renders the downloadable artifact for an invoice.
func (s *Service) InvoicePDF(ctx context.Context, id string) ([]byte, error) {
	doc, version, err := s.invoiceDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderPDF(ctx, doc, version)
}

func (s *Service) renderPDF(ctx context.Context, doc Document, version time.Time) ([]byte, error) {
	key := fmt.Sprintf("printdoc:%s:%s:%d", doc.Kind, doc.ID, version.UnixNano())

	if s.cache != nil {
		if pdf, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			return pdf, nil
		}
	}

	out, err, _ := s.group.Do(key, func() (any, error) {
		html, err := RenderHTML(Build(doc, s.issuer, s.artifact))
		if err != nil {
			return nil, err
		}

		pdf, err := s.pdf.ConvertHTML(ctx, html)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			s.cache.Set(ctx, key, pdf, artifactTTL)
		}
		s.logger.Info("print artifact rendered",
			"kind", doc.Kind, "document_id", doc.ID, "bytes", len(pdf))
		return pdf, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (s *Service) quotationDocument(ctx context.Context, id string) (Document, time.Time, error) {
	q, err := s.quotes.Get(ctx, id)
	if err != nil {
		return Document{}, time.Time{}, err
	}
	return Document{
		Kind:          KindQuotation,
		ID:            q.ID,
		Date:          q.Date,
		Mode:          q.Mode,
		Customer:      q.Customer,
		Receiver:      q.Receiver,
		OrderRef:      q.OrderRef,
		Items:         q.Items,
		Subtotal:      q.Subtotal,
		ItemDiscount:  q.ItemDiscount,
		ExtraDiscount: q.ExtraDiscount,
		GrandTotal:    q.GrandTotal,
	}, q.UpdatedAt, nil
}

func (s *Service) invoiceDocument(ctx context.Context, id string) (Document, time.Time, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return Document{}, time.Time{}, err
	}
	return Document{
		Kind:          KindInvoice,
		ID:            inv.ID,
		Date:          inv.Date,
		Mode:          inv.Mode,
		Customer:      inv.Customer,
		Receiver:      inv.Receiver,
		OrderRef:      inv.OrderRef,
		PaymentMethod: string(inv.PaymentMethod),
		Items:         inv.Items,
		Subtotal:      inv.Subtotal,
		ItemDiscount:  inv.ItemDiscount,
		ExtraDiscount: inv.ExtraDiscount,
		GrandTotal:    inv.GrandTotal,
	}, inv.UpdatedAt, nil
}
