package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
	"github.com/arcadia-pos/arcadia-pos/internal/sales"
)

// Repository persists invoices. Line items live in a JSONB column, same
// as quotations.
type Repository interface {
	List(ctx context.Context) ([]Invoice, error)
	Get(ctx context.Context, id string) (Invoice, error)
	Stats(ctx context.Context) (Stats, error)
	Create(ctx context.Context, inv Invoice) error
	Update(ctx context.Context, inv Invoice) error
	Delete(ctx context.Context, id string) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres-backed invoice repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const invoiceColumns = `
	id, customer_name, customer_email, customer_phone, receiver_company,
	receiver_address, order_ref, doc_date, mode, items, extra_discount_pct,
	subtotal, item_discount, extra_discount, grand_total, status,
	payment_method, source_quotation_id, created_at, updated_at`

func (r *pgRepository) List(ctx context.Context) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("invoices: list: %w", err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *pgRepository) Get(ctx context.Context, id string) (Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1`, id)

	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, httpx.ErrNotFound
	}
	return inv, err
}

func (r *pgRepository) Stats(ctx context.Context) (Stats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(grand_total), 0)
		FROM invoices
		GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("invoices: stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var status Status
		var count int
		var amount float64
		if err := rows.Scan(&status, &count, &amount); err != nil {
			return Stats{}, fmt.Errorf("invoices: scan stats: %w", err)
		}
		stats.Total += count
		stats.TotalAmount += amount
		switch status {
		case StatusPending:
			stats.Pending = count
		case StatusPaid:
			stats.Paid = count
		case StatusCancelled:
			stats.Cancelled = count
		}
	}
	return stats, rows.Err()
}

func (r *pgRepository) Create(ctx context.Context, inv Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("invoices: marshal items: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO invoices (
			id, customer_name, customer_email, customer_phone,
			receiver_company, receiver_address, order_ref, doc_date, mode,
			items, extra_discount_pct, subtotal, item_discount,
			extra_discount, grand_total, status, payment_method,
			source_quotation_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		inv.ID, inv.Customer.Name, inv.Customer.Email, inv.Customer.Phone,
		inv.Receiver.Company, inv.Receiver.Address, inv.OrderRef, inv.Date,
		inv.Mode, items, inv.ExtraDiscountPct, inv.Subtotal,
		inv.ItemDiscount, inv.ExtraDiscount, inv.GrandTotal, inv.Status,
		inv.PaymentMethod, nullableID(inv.SourceQuotationID),
		inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoices: create: %w", err)
	}
	return nil
}

func (r *pgRepository) Update(ctx context.Context, inv Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("invoices: marshal items: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices
		SET customer_name = $2, customer_email = $3, customer_phone = $4,
			receiver_company = $5, receiver_address = $6, order_ref = $7,
			doc_date = $8, mode = $9, items = $10, extra_discount_pct = $11,
			subtotal = $12, item_discount = $13, extra_discount = $14,
			grand_total = $15, status = $16, payment_method = $17,
			updated_at = $18
		WHERE id = $1`,
		inv.ID, inv.Customer.Name, inv.Customer.Email, inv.Customer.Phone,
		inv.Receiver.Company, inv.Receiver.Address, inv.OrderRef, inv.Date,
		inv.Mode, items, inv.ExtraDiscountPct, inv.Subtotal,
		inv.ItemDiscount, inv.ExtraDiscount, inv.GrandTotal, inv.Status,
		inv.PaymentMethod, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoices: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *pgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("invoices: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	var items []byte
	var sourceID *string
	err := row.Scan(
		&inv.ID, &inv.Customer.Name, &inv.Customer.Email, &inv.Customer.Phone,
		&inv.Receiver.Company, &inv.Receiver.Address, &inv.OrderRef,
		&inv.Date, &inv.Mode, &items, &inv.ExtraDiscountPct, &inv.Subtotal,
		&inv.ItemDiscount, &inv.ExtraDiscount, &inv.GrandTotal, &inv.Status,
		&inv.PaymentMethod, &sourceID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return Invoice{}, err
	}
	if sourceID != nil {
		inv.SourceQuotationID = *sourceID
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return Invoice{}, fmt.Errorf("invoices: unmarshal items: %w", err)
		}
	}
	if inv.Items == nil {
		inv.Items = []sales.LineItem{}
	}
	return inv, nil
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
