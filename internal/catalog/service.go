package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
)

// Service implements catalog use cases.
type Service struct {
	repo     Repository
	cache    *Cache
	validate *validator.Validate
	logger   *slog.Logger
	folder   cases.Caser
}

// NewService wires a catalog service.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
		folder:   cases.Fold(),
	}
}

// List returns all products, served from cache when possible.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	if products, ok := s.cache.Get(ctx); ok {
		return products, nil
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, products)
	return products, nil
}

// Search matches products by name, case-folded. Short queries fall back
// to the full list.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	if products, ok := s.cache.Get(ctx); ok {
		folded := s.folder.String(query)
		var matched []Product
		for _, p := range products {
			if strings.Contains(s.folder.String(p.Name), folded) ||
				strings.Contains(s.folder.String(p.Code), folded) {
				matched = append(matched, p)
			}
		}
		return matched, nil
	}

	return s.repo.Search(ctx, query)
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

// GetByCode resolves the code keyed in on the add-item line.
func (s *Service) GetByCode(ctx context.Context, code string) (Product, error) {
	p, err := s.repo.GetByCode(ctx, strings.TrimSpace(code))
	if errors.Is(err, httpx.ErrNotFound) {
		return Product{}, fmt.Errorf("%w: Product not found", httpx.ErrValidation)
	}
	return p, err
}

// Resolve looks up a set of products by ID and fails with a not-found
// style validation error when any is missing.
func (s *Service) Resolve(ctx context.Context, ids []string) (map[string]Product, error) {
	byID, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: Product not found", httpx.ErrValidation)
		}
	}
	return byID, nil
}

// Create adds a catalog entry.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return Product{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	now := time.Now().UTC()
	p := Product{
		ID:        uuid.NewString(),
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		Unit:      strings.TrimSpace(req.Unit),
		Quantity:  req.Quantity,
		MRP:       req.MRP,
		Cost:      req.Cost,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Product{}, err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("product created", "product_id", p.ID, "name", p.Name)
	return p, nil
}

// Update edits a catalog entry.
func (s *Service) Update(ctx context.Context, id string, req UpdateProductRequest) (Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return Product{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}

	p.Code = strings.TrimSpace(req.Code)
	p.Name = strings.TrimSpace(req.Name)
	p.Unit = strings.TrimSpace(req.Unit)
	p.Quantity = req.Quantity
	p.MRP = req.MRP
	p.Cost = req.Cost
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Product{}, err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("product updated", "product_id", p.ID)
	return p, nil
}

// ImportCSV loads a whole product file into the catalog in one
// transaction and reports how many rows went in. Existing codes are
// updated rather than rejected.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	products, err := ParseCSV(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if len(products) == 0 {
		return 0, fmt.Errorf("%w: csv contains no product rows", httpx.ErrValidation)
	}

	now := time.Now().UTC()
	for i := range products {
		products[i].ID = uuid.NewString()
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
	}

	if err := s.repo.ImportBatch(ctx, products); err != nil {
		return 0, err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("catalog imported", "rows", len(products))
	return len(products), nil
}

// ExportCSV streams the full catalog as a CSV download.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.List(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, products)
}

// Delete removes a catalog entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("product deleted", "product_id", id)
	return nil
}
