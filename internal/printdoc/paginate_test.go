package printdoc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-pos/arcadia-pos/internal/sales"
)

func makeItems(n int) []sales.LineItem {
	items := make([]sales.LineItem, n)
	for i := range items {
		items[i] = sales.LineItem{
			Code:     fmt.Sprintf("P-%03d", i),
			Name:     "Item",
			Quantity: 1,
			MRP:      10,
			Total:    10,
		}
	}
	return items
}

func TestEstimatePages(t *testing.T) {
	tests := []struct {
		items int
		pages int
	}{
		{0, 1},
		{1, 1},
		{8, 1},
		{9, 2},
		{23, 2},
		{24, 3},
		{38, 3},
		{39, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.pages, EstimatePages(tt.items), "items=%d", tt.items)
	}
}

func TestEstimatePaginatorChunks(t *testing.T) {
	p := NewEstimatePaginator()

	t.Run("zero items still yield one empty page", func(t *testing.T) {
		pages := p.Paginate(nil)
		require.Len(t, pages, 1)
		assert.Empty(t, pages[0])
	})

	t.Run("first page holds eight, overflow fifteen", func(t *testing.T) {
		pages := p.Paginate(makeItems(24))
		require.Len(t, pages, 3)
		assert.Len(t, pages[0], 8)
		assert.Len(t, pages[1], 15)
		assert.Len(t, pages[2], 1)
	})

	t.Run("page count matches the estimate", func(t *testing.T) {
		for _, n := range []int{0, 1, 8, 9, 23, 24, 50} {
			pages := p.Paginate(makeItems(n))
			assert.Len(t, pages, EstimatePages(n), "items=%d", n)
		}
	})
}

func TestMeasuredPaginator(t *testing.T) {
	// Fixed-height rows make the break points exact: the first page
	// body fits (100-40)/10 = 6 rows, later pages 10 rows.
	p := &MeasuredPaginator{
		PageHeight:   100,
		HeaderHeight: 40,
		TotalsHeight: 0,
		Height:       func(sales.LineItem) float64 { return 10 },
	}

	t.Run("zero items", func(t *testing.T) {
		pages := p.Paginate(nil)
		require.Len(t, pages, 1)
		assert.Empty(t, pages[0])
	})

	t.Run("rows flow to the next page when height runs out", func(t *testing.T) {
		pages := p.Paginate(makeItems(17))
		require.Len(t, pages, 3)
		assert.Len(t, pages[0], 6)
		assert.Len(t, pages[1], 10)
		assert.Len(t, pages[2], 1)
	})

	t.Run("order is preserved across pages", func(t *testing.T) {
		items := makeItems(9)
		pages := p.Paginate(items)
		var flat []sales.LineItem
		for _, page := range pages {
			flat = append(flat, page...)
		}
		assert.Equal(t, items, flat)
	})
}

func TestMeasuredPaginatorReservesTotalsSpace(t *testing.T) {
	// Six rows exactly fill the first page body, leaving no room for
	// the totals block; the last row moves to a second page.
	p := &MeasuredPaginator{
		PageHeight:   100,
		HeaderHeight: 40,
		TotalsHeight: 20,
		Height:       func(sales.LineItem) float64 { return 10 },
	}

	pages := p.Paginate(makeItems(6))
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 5)
	assert.Len(t, pages[1], 1)
}

func TestDefaultHeightModelChargesWrappedRows(t *testing.T) {
	short := sales.LineItem{Name: "Pen"}
	long := sales.LineItem{Name: "Pen", Description: "extra-long descriptive text that will wrap to a second line"}

	assert.Greater(t, DefaultHeightModel(long), DefaultHeightModel(short))
}
