package quotations

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-pos/arcadia-pos/internal/catalog"
	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
	"github.com/arcadia-pos/arcadia-pos/internal/pricing"
	"github.com/arcadia-pos/arcadia-pos/internal/sales"
)

type mockRepository struct {
	quotations map[string]Quotation
}

func newMockRepository() *mockRepository {
	return &mockRepository{quotations: make(map[string]Quotation)}
}

func (m *mockRepository) List(ctx context.Context) ([]Quotation, error) {
	out := make([]Quotation, 0, len(m.quotations))
	for _, q := range m.quotations {
		out = append(out, q)
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (Quotation, error) {
	q, ok := m.quotations[id]
	if !ok {
		return Quotation{}, httpx.ErrNotFound
	}
	return q, nil
}

func (m *mockRepository) Create(ctx context.Context, q Quotation) error {
	m.quotations[q.ID] = q
	return nil
}

func (m *mockRepository) Update(ctx context.Context, q Quotation) error {
	if _, ok := m.quotations[q.ID]; !ok {
		return httpx.ErrNotFound
	}
	m.quotations[q.ID] = q
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.quotations[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.quotations, id)
	return nil
}

type mockResolver struct {
	products map[string]catalog.Product
}

func (m *mockResolver) Resolve(ctx context.Context, ids []string) (map[string]catalog.Product, error) {
	out := make(map[string]catalog.Product)
	for _, id := range ids {
		p, ok := m.products[id]
		if !ok {
			return nil, httpx.ErrValidation
		}
		out[id] = p
	}
	return out, nil
}

func testResolver() *mockResolver {
	return &mockResolver{products: map[string]catalog.Product{
		"p1": {ID: "p1", Code: "PEN-01", Name: "Ballpoint Pen", MRP: 12},
		"p2": {ID: "p2", Code: "STP-01", Name: "Stapler", MRP: 85},
	}}
}

func newTestService(repo Repository) *Service {
	return NewService(repo, testResolver(), slog.New(slog.DiscardHandler))
}

func TestCreateQuotation(t *testing.T) {
	svc := newTestService(newMockRepository())

	q, err := svc.Create(context.Background(), CreateQuotationRequest{
		Customer: sales.Customer{Name: "Acme Stores"},
		Items: []sales.ItemRequest{
			{ProductID: "p1", Quantity: 10, Discount: 10, DiscountKind: "percent"},
			{ProductID: "p2", Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, q.ID)
	assert.NotEmpty(t, q.Date, "date defaults to today")
	assert.Equal(t, pricing.ModeItemized, q.Mode)
	require.Len(t, q.Items, 2)

	// 10 pens at 12 with 10% off the line: 120 - 12 = 108.
	assert.InDelta(t, 108, q.Items[0].Total, 0.001)
	assert.InDelta(t, 170, q.Items[1].Total, 0.001)
	assert.InDelta(t, 290, q.Subtotal, 0.001)
	assert.InDelta(t, 278, q.GrandTotal, 0.001)
}

func TestCreateQuotationRateEmbedded(t *testing.T) {
	svc := newTestService(newMockRepository())

	q, err := svc.Create(context.Background(), CreateQuotationRequest{
		Customer: sales.Customer{Name: "Acme Stores"},
		Mode:     "rate_embedded",
		Items: []sales.ItemRequest{
			{ProductID: "p2", Quantity: 3, Discount: 5, DiscountKind: "flat"},
		},
	})
	require.NoError(t, err)

	require.Len(t, q.Items, 1)
	assert.InDelta(t, 80, q.Items[0].UnitPrice, 0.001)
	assert.InDelta(t, 240, q.GrandTotal, 0.001)
}

func TestCreateQuotationValidation(t *testing.T) {
	svc := newTestService(newMockRepository())
	ctx := context.Background()

	t.Run("missing customer name", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuotationRequest{
			Items: []sales.ItemRequest{{ProductID: "p1", Quantity: 1}},
		})
		require.ErrorIs(t, err, httpx.ErrValidation)
		assert.Contains(t, err.Error(), "Customer name is required")
	})

	t.Run("no items", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuotationRequest{
			Customer: sales.Customer{Name: "Acme Stores"},
		})
		assert.ErrorIs(t, err, httpx.ErrValidation)
	})

	t.Run("oversized discount", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateQuotationRequest{
			Customer: sales.Customer{Name: "Acme Stores"},
			Items:    []sales.ItemRequest{{ProductID: "p1", Quantity: 1, Discount: 500}},
		})
		require.ErrorIs(t, err, httpx.ErrValidation)
		assert.Contains(t, err.Error(), "Discount cannot exceed item total")
	})
}

func TestUpdateQuotationRepricesAndKeepsIdentity(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	q, err := svc.Create(ctx, CreateQuotationRequest{
		Customer: sales.Customer{Name: "Acme Stores"},
		Items:    []sales.ItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, q.ID, UpdateQuotationRequest{
		Customer: sales.Customer{Name: "Acme Stores"},
		Items:    []sales.ItemRequest{{ProductID: "p1", Quantity: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, q.ID, updated.ID)
	assert.Equal(t, q.CreatedAt, updated.CreatedAt)
	assert.InDelta(t, 60, updated.GrandTotal, 0.001)
}

func TestGetInfersLegacyMode(t *testing.T) {
	repo := newMockRepository()
	repo.quotations["legacy"] = Quotation{
		ID: "legacy",
		Items: []sales.LineItem{
			{ProductID: "p1", MRP: 100, UnitPrice: 90, Quantity: 1, Total: 90},
		},
	}
	svc := newTestService(repo)

	q, err := svc.Get(context.Background(), "legacy")
	require.NoError(t, err)
	assert.Equal(t, pricing.ModeRateEmbedded, q.Mode)
}
