package receiving

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
	"github.com/arcadia-pos/arcadia-pos/internal/pricing"
)

// StockCache is notified when receipts move catalog quantities, so
// stale product lists get dropped.
type StockCache interface {
	Invalidate(ctx context.Context)
}

// Service implements the received-products use cases.
type Service struct {
	repo     Repository
	stock    StockCache
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService wires a receiving service.
func NewService(repo Repository, stock StockCache, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		stock:    stock,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns all receipts, newest first.
func (s *Service) List(ctx context.Context) ([]Receipt, error) {
	return s.repo.List(ctx)
}

// Create logs a delivery and posts its quantity onto the catalog.
func (s *Service) Create(ctx context.Context, req CreateReceiptRequest) (Receipt, error) {
	rec, err := s.build(req)
	if err != nil {
		return Receipt{}, err
	}

	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := s.repo.Create(ctx, rec); err != nil {
		return Receipt{}, err
	}
	s.stock.Invalidate(ctx)
	s.logger.Info("goods received",
		"receipt_id", rec.ID, "item_code", rec.ItemCode, "quantity", rec.Quantity)
	return rec, nil
}

// Update corrects a receipt. The stock posting is adjusted by the
// difference between the old and new quantity.
func (s *Service) Update(ctx context.Context, id string, req UpdateReceiptRequest) (Receipt, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Receipt{}, err
	}

	rec, err := s.build(req)
	if err != nil {
		return Receipt{}, err
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now().UTC()

	delta := rec.Quantity - existing.Quantity
	if rec.ItemCode != existing.ItemCode {
		// Repointed to a different item: the old posting stays, only
		// the new item receives stock.
		delta = rec.Quantity
	}

	if err := s.repo.Update(ctx, rec, delta); err != nil {
		return Receipt{}, err
	}
	s.stock.Invalidate(ctx)
	s.logger.Info("receipt updated", "receipt_id", rec.ID)
	return rec, nil
}

// Delete removes a receipt record. Stock already posted is kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("receipt deleted", "receipt_id", id)
	return nil
}

var csvExportHeader = []string{
	"Supplier", "Address", "Item Name", "Item Code", "Quantity", "Cost", "Total Cost",
}

// ExportCSV streams the receipt log as a CSV download, BOM-prefixed
// with CRLF line endings.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	receipts, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("receiving: write csv: %w", err)
	}

	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(csvExportHeader); err != nil {
		return fmt.Errorf("receiving: write csv: %w", err)
	}
	for _, rec := range receipts {
		record := []string{
			rec.Supplier,
			rec.Address,
			rec.ItemName,
			rec.ItemCode,
			fmt.Sprintf("%g", rec.Quantity),
			fmt.Sprintf("%.2f", rec.Cost),
			fmt.Sprintf("%.2f", rec.TotalCost),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("receiving: write csv: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("receiving: write csv: %w", err)
	}
	return nil
}

func (s *Service) build(req CreateReceiptRequest) (Receipt, error) {
	if err := s.validate.Struct(req); err != nil {
		return Receipt{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	qty := req.Quantity
	return Receipt{
		Supplier:  strings.TrimSpace(req.Supplier),
		Address:   strings.TrimSpace(req.Address),
		ItemName:  strings.TrimSpace(req.ItemName),
		ItemCode:  strings.TrimSpace(req.ItemCode),
		Quantity:  qty,
		Cost:      req.Cost,
		TotalCost: pricing.Round2(qty * req.Cost),
	}, nil
}
