package quotations

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

// Repository persists quotations. Line items live in a JSONB column so
// a document keeps its issued shape regardless of later catalog edits.
type Repository interface {
	List(ctx context.Context) ([]Quotation, error)
	Get(ctx context.Context, id string) (Quotation, error)
	Create(ctx context.Context, q Quotation) error
	Update(ctx context.Context, q Quotation) error
	Delete(ctx context.Context, id string) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres-backed quotation repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const quotationColumns = `
	id, customer_name, customer_email, customer_phone, receiver_company,
	receiver_address, order_ref, doc_date, mode, items, extra_discount_pct,
	subtotal, item_discount, extra_discount, grand_total, created_at,
	updated_at`

func (r *pgRepository) List(ctx context.Context) ([]Quotation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+quotationColumns+`
		FROM quotations
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("quotations: list: %w", err)
	}
	defer rows.Close()

	var out []Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *pgRepository) Get(ctx context.Context, id string) (Quotation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+quotationColumns+`
		FROM quotations
		WHERE id = $1`, id)

	q, err := scanQuotation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Quotation{}, httpx.ErrNotFound
	}
	return q, err
}

func (r *pgRepository) Create(ctx context.Context, q Quotation) error {
	items, err := json.Marshal(q.Items)
	if err != nil {
		return fmt.Errorf("quotations: marshal items: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO quotations (
			id, customer_name, customer_email, customer_phone,
			receiver_company, receiver_address, order_ref, doc_date, mode,
			items, extra_discount_pct, subtotal, item_discount,
			extra_discount, grand_total, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		q.ID, q.Customer.Name, q.Customer.Email, q.Customer.Phone,
		q.Receiver.Company, q.Receiver.Address, q.OrderRef, q.Date, q.Mode,
		items, q.ExtraDiscountPct, q.Subtotal, q.ItemDiscount,
		q.ExtraDiscount, q.GrandTotal, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("quotations: create: %w", err)
	}
	return nil
}

func (r *pgRepository) Update(ctx context.Context, q Quotation) error {
	items, err := json.Marshal(q.Items)
	if err != nil {
		return fmt.Errorf("quotations: marshal items: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE quotations
		SET customer_name = $2, customer_email = $3, customer_phone = $4,
			receiver_company = $5, receiver_address = $6, order_ref = $7,
			doc_date = $8, mode = $9, items = $10, extra_discount_pct = $11,
			subtotal = $12, item_discount = $13, extra_discount = $14,
			grand_total = $15, updated_at = $16
		WHERE id = $1`,
		q.ID, q.Customer.Name, q.Customer.Email, q.Customer.Phone,
		q.Receiver.Company, q.Receiver.Address, q.OrderRef, q.Date, q.Mode,
		items, q.ExtraDiscountPct, q.Subtotal, q.ItemDiscount,
		q.ExtraDiscount, q.GrandTotal, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("quotations: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *pgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("quotations: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanQuotation(row pgx.Row) (Quotation, error) {
	var q Quotation
	var items []byte
	err := row.Scan(
		&q.ID, &q.Customer.Name, &q.Customer.Email, &q.Customer.Phone,
		&q.Receiver.Company, &q.Receiver.Address, &q.OrderRef, &q.Date,
		&q.Mode, &items, &q.ExtraDiscountPct, &q.Subtotal, &q.ItemDiscount,
		&q.ExtraDiscount, &q.GrandTotal, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return Quotation{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &q.Items); err != nil {
			return Quotation{}, fmt.Errorf("quotations: unmarshal items: %w", err)
		}
	}
	if q.Items == nil {
		q.Items = []sales.LineItem{}
	}
	return q, nil
}
