package receiving

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/db"
	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
)

// Repository persists receipts. Create and Update also post the
// quantity movement onto the matching catalog product, in the same
// transaction as the receipt row.
type Repository interface {
	List(ctx context.Context) ([]Receipt, error)
	Get(ctx context.Context, id string) (Receipt, error)
	Create(ctx context.Context, rec Receipt) error
	Update(ctx context.Context, rec Receipt, qtyDelta float64) error
	Delete(ctx context.Context, id string) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres-backed receipt repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const receiptColumns = `
	id, supplier, address, item_name, item_code, quantity, cost,
	total_cost, created_at, updated_at`

func (r *pgRepository) List(ctx context.Context) ([]Receipt, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+receiptColumns+`
		FROM received_products
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("receiving: list: %w", err)
	}
	defer rows.Close()

	var out []Receipt
	for rows.Next() {
		var rec Receipt
		if err := rows.Scan(
			&rec.ID, &rec.Supplier, &rec.Address, &rec.ItemName, &rec.ItemCode,
			&rec.Quantity, &rec.Cost, &rec.TotalCost, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("receiving: scan receipt: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *pgRepository) Get(ctx context.Context, id string) (Receipt, error) {
	var rec Receipt
	err := r.pool.QueryRow(ctx, `
		SELECT `+receiptColumns+`
		FROM received_products
		WHERE id = $1`, id).Scan(
		&rec.ID, &rec.Supplier, &rec.Address, &rec.ItemName, &rec.ItemCode,
		&rec.Quantity, &rec.Cost, &rec.TotalCost, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Receipt{}, httpx.ErrNotFound
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("receiving: get: %w", err)
	}
	return rec, nil
}

func (r *pgRepository) Create(ctx context.Context, rec Receipt) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO received_products (
				id, supplier, address, item_name, item_code, quantity, cost,
				total_cost, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			rec.ID, rec.Supplier, rec.Address, rec.ItemName, rec.ItemCode,
			rec.Quantity, rec.Cost, rec.TotalCost, rec.CreatedAt, rec.UpdatedAt)
		if err != nil {
			return fmt.Errorf("receiving: create: %w", err)
		}
		return bumpStock(ctx, tx, rec.ItemCode, rec.Quantity)
	})
}

func (r *pgRepository) Update(ctx context.Context, rec Receipt, qtyDelta float64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE received_products
			SET supplier = $2, address = $3, item_name = $4, item_code = $5,
				quantity = $6, cost = $7, total_cost = $8, updated_at = $9
			WHERE id = $1`,
			rec.ID, rec.Supplier, rec.Address, rec.ItemName, rec.ItemCode,
			rec.Quantity, rec.Cost, rec.TotalCost, rec.UpdatedAt)
		if err != nil {
			return fmt.Errorf("receiving: update: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return httpx.ErrNotFound
		}
		return bumpStock(ctx, tx, rec.ItemCode, qtyDelta)
	})
}

func (r *pgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM received_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("receiving: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// bumpStock moves the catalog quantity for the received item. Receipts
// may reference items that are not in the catalog yet; those post
// nothing.
func bumpStock(ctx context.Context, tx pgx.Tx, code string, delta float64) error {
	if delta == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		UPDATE products
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE code = $1`, code, delta)
	if err != nil {
		return fmt.Errorf("receiving: post stock for %q: %w", code, err)
	}
	return nil
}
