package receiving

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
)

type mockRepository struct {
	receipts map[string]Receipt
	postings map[string]float64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		receipts: make(map[string]Receipt),
		postings: make(map[string]float64),
	}
}

func (m *mockRepository) List(ctx context.Context) ([]Receipt, error) {
	out := make([]Receipt, 0, len(m.receipts))
	for _, rec := range m.receipts {
		out = append(out, rec)
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (Receipt, error) {
	rec, ok := m.receipts[id]
	if !ok {
		return Receipt{}, httpx.ErrNotFound
	}
	return rec, nil
}

func (m *mockRepository) Create(ctx context.Context, rec Receipt) error {
	m.receipts[rec.ID] = rec
	m.postings[rec.ItemCode] += rec.Quantity
	return nil
}

func (m *mockRepository) Update(ctx context.Context, rec Receipt, qtyDelta float64) error {
	if _, ok := m.receipts[rec.ID]; !ok {
		return httpx.ErrNotFound
	}
	m.receipts[rec.ID] = rec
	m.postings[rec.ItemCode] += qtyDelta
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.receipts[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.receipts, id)
	return nil
}

type mockStockCache struct {
	invalidations int
}

func (m *mockStockCache) Invalidate(ctx context.Context) { m.invalidations++ }

func newTestService(repo Repository, stock StockCache) *Service {
	return NewService(repo, stock, slog.New(slog.DiscardHandler))
}

func TestCreateComputesTotalAndPostsStock(t *testing.T) {
	repo := newMockRepository()
	stock := &mockStockCache{}
	svc := newTestService(repo, stock)

	rec, err := svc.Create(context.Background(), CreateReceiptRequest{
		Supplier: "Harbor Supplies",
		ItemName: "Ballpoint Pen",
		ItemCode: "PEN-01",
		Quantity: 40,
		Cost:     7.25,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.InDelta(t, 290, rec.TotalCost, 0.001, "total cost is quantity times cost")
	assert.InDelta(t, 40, repo.postings["PEN-01"], 0.001)
	assert.Equal(t, 1, stock.invalidations)
}

func TestCreateValidates(t *testing.T) {
	svc := newTestService(newMockRepository(), &mockStockCache{})

	_, err := svc.Create(context.Background(), CreateReceiptRequest{
		Supplier: "Harbor Supplies",
		ItemName: "Pen",
		ItemCode: "PEN-01",
		Quantity: 0,
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), CreateReceiptRequest{
		ItemName: "Pen",
		ItemCode: "PEN-01",
		Quantity: 5,
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateAdjustsStockByDelta(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockStockCache{})
	ctx := context.Background()

	rec, err := svc.Create(ctx, CreateReceiptRequest{
		Supplier: "Harbor Supplies",
		ItemName: "Ballpoint Pen",
		ItemCode: "PEN-01",
		Quantity: 40,
		Cost:     7.25,
	})
	require.NoError(t, err)

	// A corrected count only moves stock by the difference.
	updated, err := svc.Update(ctx, rec.ID, UpdateReceiptRequest{
		Supplier: "Harbor Supplies",
		ItemName: "Ballpoint Pen",
		ItemCode: "PEN-01",
		Quantity: 36,
		Cost:     7.25,
	})
	require.NoError(t, err)
	assert.InDelta(t, 261, updated.TotalCost, 0.001)
	assert.InDelta(t, 36, repo.postings["PEN-01"], 0.001)
	assert.Equal(t, rec.CreatedAt, updated.CreatedAt)
}

func TestUpdateMissingReceipt(t *testing.T) {
	svc := newTestService(newMockRepository(), &mockStockCache{})

	_, err := svc.Update(context.Background(), "gone", UpdateReceiptRequest{
		Supplier: "Harbor Supplies",
		ItemName: "Pen",
		ItemCode: "PEN-01",
		Quantity: 1,
	})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestExportCSV(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockStockCache{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateReceiptRequest{
		Supplier: "Harbor Supplies",
		Address:  "9 Dock Street",
		ItemName: "Ballpoint Pen",
		ItemCode: "PEN-01",
		Quantity: 40,
		Cost:     7.25,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(out), "Supplier,Address,Item Name,Item Code,Quantity,Cost,Total Cost\r\n")
	assert.Contains(t, string(out), "Harbor Supplies,9 Dock Street,Ballpoint Pen,PEN-01,40,7.25,290.00\r\n")
}
