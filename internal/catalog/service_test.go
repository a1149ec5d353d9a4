package catalog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
)

type mockRepository struct {
	products map[string]Product
	listHits int
}

func newMockRepository(products ...Product) *mockRepository {
	m := &mockRepository{products: make(map[string]Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockRepository) List(ctx context.Context) ([]Product, error) {
	m.listHits++
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepository) Search(ctx context.Context, query string) ([]Product, error) {
	return m.List(ctx)
}

func (m *mockRepository) Get(ctx context.Context, id string) (Product, error) {
	p, ok := m.products[id]
	if !ok {
		return Product{}, httpx.ErrNotFound
	}
	return p, nil
}

func (m *mockRepository) GetByCode(ctx context.Context, code string) (Product, error) {
	for _, p := range m.products {
		if p.Code == code {
			return p, nil
		}
	}
	return Product{}, httpx.ErrNotFound
}

func (m *mockRepository) GetMany(ctx context.Context, ids []string) (map[string]Product, error) {
	out := make(map[string]Product)
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockRepository) Create(ctx context.Context, p Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockRepository) ImportBatch(ctx context.Context, products []Product) error {
	for _, p := range products {
		if existing, err := m.GetByCode(ctx, p.Code); err == nil {
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
		}
		m.products[p.ID] = p
	}
	return nil
}

func (m *mockRepository) Update(ctx context.Context, p Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return httpx.ErrNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(repo, NewCache(client), slog.New(slog.DiscardHandler))
}

func TestServiceListCaches(t *testing.T) {
	repo := newMockRepository(Product{ID: "p1", Code: "PEN-01", Name: "Ballpoint Pen", MRP: 12})
	svc := newTestService(t, repo)
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	second, err := svc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listHits, "second list should come from cache")
}

func TestServiceSearchFoldsCase(t *testing.T) {
	repo := newMockRepository(
		Product{ID: "p1", Code: "PEN-01", Name: "Ballpoint Pen", MRP: 12},
		Product{ID: "p2", Code: "STP-01", Name: "Stapler", MRP: 85},
	)
	svc := newTestService(t, repo)
	ctx := context.Background()

	// Warm the cache so matching happens against the folded names.
	_, err := svc.List(ctx)
	require.NoError(t, err)

	matched, err := svc.Search(ctx, "ballpoint")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "p1", matched[0].ID)

	// Codes match too.
	matched, err = svc.Search(ctx, "stp")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "p2", matched[0].ID)
}

func TestServiceGetByCode(t *testing.T) {
	repo := newMockRepository(Product{ID: "p1", Code: "PEN-01", Name: "Ballpoint Pen", MRP: 12})
	svc := newTestService(t, repo)

	p, err := svc.GetByCode(context.Background(), " PEN-01 ")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	_, err = svc.GetByCode(context.Background(), "NOPE")
	require.ErrorIs(t, err, httpx.ErrValidation)
	assert.Contains(t, err.Error(), "Product not found")
}

func TestServiceCreateValidatesAndInvalidates(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductRequest{Code: "NB-01", Name: "", MRP: 10})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, CreateProductRequest{Code: "NB-01", Name: "Notebook", MRP: 0})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	p, err := svc.Create(ctx, CreateProductRequest{Code: "NB-01", Name: "  Notebook  ", MRP: 45})
	require.NoError(t, err)
	assert.Equal(t, "Notebook", p.Name)
	assert.Equal(t, "NB-01", p.Code)
	assert.NotEmpty(t, p.ID)
	assert.WithinDuration(t, time.Now().UTC(), p.CreatedAt, time.Minute)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestServiceResolveMissingProduct(t *testing.T) {
	repo := newMockRepository(Product{ID: "p1", Code: "PEN-01", Name: "Ballpoint Pen", MRP: 12})
	svc := newTestService(t, repo)

	_, err := svc.Resolve(context.Background(), []string{"p1", "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.Contains(t, err.Error(), "Product not found")
}
