package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/db"
	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
)

// Repository persists catalog products.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	GetByCode(ctx context.Context, code string) (Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]Product, error)
	Create(ctx context.Context, p Product) error
	ImportBatch(ctx context.Context, products []Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres-backed product repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const productColumns = `id, code, name, unit, quantity, mrp, cost, created_at, updated_at`

func (r *pgRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *pgRepository) Search(ctx context.Context, query string) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 50`, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *pgRepository) Get(ctx context.Context, id string) (Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1`, id)
	return scanProduct(row)
}

func (r *pgRepository) GetByCode(ctx context.Context, code string) (Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE code = $1`, code)
	return scanProduct(row)
}

func (r *pgRepository) GetMany(ctx context.Context, ids []string) (map[string]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("catalog: get many products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *pgRepository) Create(ctx context.Context, p Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, code, name, unit, quantity, mrp, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Code, p.Name, p.Unit, p.Quantity, p.MRP, p.Cost, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return httpx.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("catalog: create product: %w", err)
	}
	return nil
}

// ImportBatch upserts a CSV batch in one transaction: rows matching an
// existing code update it in place, everything else inserts.
func (r *pgRepository) ImportBatch(ctx context.Context, products []Product) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, p := range products {
			_, err := tx.Exec(ctx, `
				INSERT INTO products (id, code, name, unit, quantity, mrp, cost, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (code) DO UPDATE
				SET name = EXCLUDED.name, quantity = EXCLUDED.quantity,
					mrp = EXCLUDED.mrp, updated_at = EXCLUDED.updated_at`,
				p.ID, p.Code, p.Name, p.Unit, p.Quantity, p.MRP, p.Cost, p.CreatedAt, p.UpdatedAt)
			if err != nil {
				return fmt.Errorf("catalog: import product %q: %w", p.Code, err)
			}
		}
		return nil
	})
}

func (r *pgRepository) Update(ctx context.Context, p Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET code = $2, name = $3, unit = $4, quantity = $5, mrp = $6, cost = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Code, p.Name, p.Unit, p.Quantity, p.MRP, p.Cost, p.UpdatedAt)
	if isUniqueViolation(err) {
		return httpx.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("catalog: update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *pgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("catalog: delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Unit, &p.Quantity, &p.MRP, &p.Cost, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, httpx.ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog: scan product: %w", err)
	}
	return p, nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Unit, &p.Quantity, &p.MRP, &p.Cost, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("catalog: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
