package invoices

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
	"github.com/arcadia-pos/arcadia-pos/internal/pricing"
	"github.com/arcadia-pos/arcadia-pos/internal/sales"
	"github.com/arcadia-pos/arcadia-pos/internal/sales/quotations"
)

// QuotationSource provides the quotation being converted.
type QuotationSource interface {
	Get(ctx context.Context, id string) (quotations.Quotation, error)
}

// Service implements invoice use cases.
type Service struct {
	repo     Repository
	products sales.ProductResolver
	source   QuotationSource
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService wires an invoice service.
func NewService(repo Repository, products sales.ProductResolver, source QuotationSource, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		source:   source,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns all invoices, newest first.
func (s *Service) List(ctx context.Context) ([]Invoice, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		normalize(&out[i])
	}
	return out, nil
}

// Get returns a single invoice.
func (s *Service) Get(ctx context.Context, id string) (Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	normalize(&inv)
	return inv, nil
}

// Stats returns the per-status counts and overall amount for the
// invoice summary cards.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// Create prices and stores a new invoice.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error) {
	inv, err := s.build(ctx, req)
	if err != nil {
		return Invoice{}, err
	}

	now := time.Now().UTC()
	inv.ID = uuid.NewString()
	inv.Status = StatusPending
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if err := s.repo.Create(ctx, inv); err != nil {
		return Invoice{}, err
	}
	s.logger.Info("invoice created", "invoice_id", inv.ID, "grand_total", inv.GrandTotal)
	return inv, nil
}

// ConvertFromQuotation issues an invoice from an existing quotation.
// Customer, items, mode and all computed totals carry over exactly as
// quoted; the invoice gets its own ID, today's date and a pending
// status.
func (s *Service) ConvertFromQuotation(ctx context.Context, quotationID string, req ConvertRequest) (Invoice, error) {
	if err := s.validate.Struct(req); err != nil {
		return Invoice{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	q, err := s.source.Get(ctx, quotationID)
	if err != nil {
		return Invoice{}, err
	}

	now := time.Now().UTC()
	inv := Invoice{
		ID:                uuid.NewString(),
		Customer:          q.Customer,
		Receiver:          q.Receiver,
		OrderRef:          q.OrderRef,
		Date:              now.Format("2006-01-02"),
		Mode:              q.Mode,
		Items:             append([]sales.LineItem(nil), q.Items...),
		ExtraDiscountPct:  q.ExtraDiscountPct,
		Subtotal:          q.Subtotal,
		ItemDiscount:      q.ItemDiscount,
		ExtraDiscount:     q.ExtraDiscount,
		GrandTotal:        q.GrandTotal,
		Status:            StatusPending,
		PaymentMethod:     PaymentMethod(req.PaymentMethod),
		SourceQuotationID: q.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return Invoice{}, err
	}
	s.logger.Info("invoice converted from quotation",
		"invoice_id", inv.ID, "quotation_id", q.ID)
	return inv, nil
}

// Update replaces the invoice content and re-prices it. For lines whose
// quantity changed, the prior quantity is stamped so the printed
// document can show what was amended.
func (s *Service) Update(ctx context.Context, id string, req UpdateInvoiceRequest) (Invoice, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}

	inv, err := s.build(ctx, req)
	if err != nil {
		return Invoice{}, err
	}

	stampPreviousQuantities(inv.Items, existing.Items)

	inv.ID = existing.ID
	inv.Status = existing.Status
	inv.SourceQuotationID = existing.SourceQuotationID
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, inv); err != nil {
		return Invoice{}, err
	}
	s.logger.Info("invoice updated", "invoice_id", inv.ID)
	return inv, nil
}

// UpdateStatus moves an invoice between pending and paid.
func (s *Service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (Invoice, error) {
	if err := s.validate.Struct(req); err != nil {
		return Invoice{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}

	inv.Status = Status(req.Status)
	inv.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, inv); err != nil {
		return Invoice{}, err
	}
	s.logger.Info("invoice status changed", "invoice_id", inv.ID, "status", inv.Status)
	return inv, nil
}

// Delete removes an invoice.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("invoice deleted", "invoice_id", id)
	return nil
}

func (s *Service) build(ctx context.Context, req CreateInvoiceRequest) (Invoice, error) {
	if err := s.validate.Struct(req); err != nil {
		return Invoice{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if strings.TrimSpace(req.Customer.Name) == "" {
		return Invoice{}, fmt.Errorf("%w: Customer name is required", httpx.ErrValidation)
	}

	products, err := s.products.Resolve(ctx, sales.ProductIDs(req.Items))
	if err != nil {
		return Invoice{}, err
	}

	mode := pricing.Mode(req.Mode)
	if mode == "" {
		mode = pricing.ModeItemized
	}

	items, totals, err := sales.PriceItems(mode, req.Items, products, req.ExtraDiscountPct)
	if err != nil {
		return Invoice{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	return Invoice{
		Customer:         req.Customer,
		Receiver:         req.Receiver,
		OrderRef:         strings.TrimSpace(req.OrderRef),
		Date:             date,
		Mode:             mode,
		Items:            items,
		ExtraDiscountPct: req.ExtraDiscountPct,
		Subtotal:         totals.Subtotal,
		ItemDiscount:     totals.ItemDiscount,
		ExtraDiscount:    totals.ExtraDiscount,
		GrandTotal:       totals.GrandTotal,
		PaymentMethod:    PaymentMethod(req.PaymentMethod),
	}, nil
}

// stampPreviousQuantities copies the pre-edit quantity onto lines whose
// quantity changed, matching lines by product. Unchanged lines carry
// any earlier stamp forward.
func stampPreviousQuantities(updated, existing []sales.LineItem) {
	prior := make(map[string]sales.LineItem, len(existing))
	for _, it := range existing {
		prior[it.ProductID] = it
	}
	for i := range updated {
		old, ok := prior[updated[i].ProductID]
		if !ok {
			continue
		}
		if old.Quantity != updated[i].Quantity {
			updated[i].PreviousQuantity = old.Quantity
		} else {
			updated[i].PreviousQuantity = old.PreviousQuantity
		}
	}
}

func normalize(inv *Invoice) {
	inv.Mode = pricing.InferMode(inv.Mode, sales.PricingLines(inv.Items))
	if inv.Status == "" {
		inv.Status = StatusPending
	}
}
