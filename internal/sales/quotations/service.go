package quotations

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
)

// Service implements quotation use cases.
type Service struct {
	repo     Repository
	products sales.ProductResolver
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService wires a quotation service.
func NewService(repo Repository, products sales.ProductResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns all quotations, newest first.
func (s *Service) List(ctx context.Context) ([]Quotation, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		normalize(&out[i])
	}
	return out, nil
}

// Get returns a single quotation.
func (s *Service) Get(ctx context.Context, id string) (Quotation, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quotation{}, err
	}
	normalize(&q)
	return q, nil
}

// Create prices and stores a new quotation.
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest) (Quotation, error) {
	q, err := s.build(ctx, req)
	if err != nil {
		return Quotation{}, err
	}

	now := time.Now().UTC()
	q.ID = uuid.NewString()
	q.CreatedAt = now
	q.UpdatedAt = now

	if err := s.repo.Create(ctx, q); err != nil {
		return Quotation{}, err
	}
	s.logger.Info("quotation created", "quotation_id", q.ID, "grand_total", q.GrandTotal)
	return q, nil
}

// Update replaces the quotation's content and re-prices it.
func (s *Service) Update(ctx context.Context, id string, req UpdateQuotationRequest) (Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quotation{}, err
	}

	q, err := s.build(ctx, req)
	if err != nil {
		return Quotation{}, err
	}

	q.ID = existing.ID
	q.CreatedAt = existing.CreatedAt
	q.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, q); err != nil {
		return Quotation{}, err
	}
	s.logger.Info("quotation updated", "quotation_id", q.ID)
	return q, nil
}

// Delete removes a quotation.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("quotation deleted", "quotation_id", id)
	return nil
}

func (s *Service) build(ctx context.Context, req CreateQuotationRequest) (Quotation, error) {
	if err := s.validate.Struct(req); err != nil {
		return Quotation{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if strings.TrimSpace(req.Customer.Name) == "" {
		return Quotation{}, fmt.Errorf("%w: Customer name is required", httpx.ErrValidation)
	}

	products, err := s.products.Resolve(ctx, sales.ProductIDs(req.Items))
	if err != nil {
		return Quotation{}, err
	}

	mode := pricing.Mode(req.Mode)
	if mode == "" {
		mode = pricing.ModeItemized
	}

	items, totals, err := sales.PriceItems(mode, req.Items, products, req.ExtraDiscountPct)
	if err != nil {
		return Quotation{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	return Quotation{
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
	}, nil
}

// normalize resolves the pricing mode for documents stored before the
// mode column existed. Resolution happens once at load, never at
// render time.
func normalize(q *Quotation) {
	q.Mode = pricing.InferMode(q.Mode, sales.PricingLines(q.Items))
}
