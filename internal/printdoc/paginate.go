package printdoc

import (
	"github.com/arcadia-pos/arcadia-pos/internal/sales"
)

// Page capacities for the coarse estimate. The first page shares its
// space with the header and customer blocks, so it holds fewer rows.
const (
	FirstPageCapacity    = 8
	OverflowPageCapacity = 15
)

// EstimatePages returns the coarse page count shown on the preview
// counter. Zero items still produce one page.
func EstimatePages(totalItems int) int {
	if totalItems <= FirstPageCapacity {
		return 1
	}
	rest := totalItems - FirstPageCapacity
	return 1 + (rest+OverflowPageCapacity-1)/OverflowPageCapacity
}

// Paginator splits document lines across print pages. The estimated
// strategy is deterministic and the default; the measured strategy
// models actual row heights and is used for the download artifact.
type Paginator interface {
	Paginate(items []sales.LineItem) [][]sales.LineItem
}

// EstimatePaginator slices by fixed per-page row counts.
type EstimatePaginator struct {
	First    int
	Overflow int
}

// NewEstimatePaginator returns the coarse strategy with the standard
// capacities.
func NewEstimatePaginator() *EstimatePaginator {
	return &EstimatePaginator{First: FirstPageCapacity, Overflow: OverflowPageCapacity}
}

func (p *EstimatePaginator) Paginate(items []sales.LineItem) [][]sales.LineItem {
	pages := [][]sales.LineItem{}

	capacity := p.First
	rest := items
	for {
		if len(rest) <= capacity {
			pages = append(pages, rest)
			return pages
		}
		pages = append(pages, rest[:capacity])
		rest = rest[capacity:]
		capacity = p.Overflow
	}
}

// HeightModel gives the rendered height of one row in layout units.
// Keeping it injectable lets tests pin exact break points.
type HeightModel func(item sales.LineItem) float64

// Default layout metrics for the measured strategy, in millimetres of
// an A4 page body.
const (
	defaultPageHeight   = 250.0
	defaultHeaderHeight = 95.0
	defaultTotalsHeight = 40.0
	defaultRowHeight    = 9.0
)

// DefaultHeightModel charges a base row height plus extra for long
// descriptions that wrap.
func DefaultHeightModel(item sales.LineItem) float64 {
	h := defaultRowHeight
	chars := len(item.Name) + len(item.Description)
	for chars > 40 {
		h += defaultRowHeight / 2
		chars -= 40
	}
	return h
}

// MeasuredPaginator appends rows one at a time against the remaining
// page height and starts a new page when a row no longer fits. The
// last page reserves room for the totals block.
type MeasuredPaginator struct {
	PageHeight   float64
	HeaderHeight float64
	TotalsHeight float64
	Height       HeightModel
}

// NewMeasuredPaginator returns the measured strategy with the default
// height model.
func NewMeasuredPaginator() *MeasuredPaginator {
	return &MeasuredPaginator{
		PageHeight:   defaultPageHeight,
		HeaderHeight: defaultHeaderHeight,
		TotalsHeight: defaultTotalsHeight,
		Height:       DefaultHeightModel,
	}
}

func (p *MeasuredPaginator) Paginate(items []sales.LineItem) [][]sales.LineItem {
	pages := [][]sales.LineItem{{}}

	available := p.PageHeight - p.HeaderHeight
	for _, item := range items {
		h := p.Height(item)
		if h > available && len(pages[len(pages)-1]) > 0 {
			pages = append(pages, []sales.LineItem{})
			available = p.PageHeight
		}
		last := len(pages) - 1
		pages[last] = append(pages[last], item)
		available -= h
	}

	// The totals block must fit under the last rows; give it a page of
	// its own when it does not.
	if available < p.TotalsHeight && len(pages[len(pages)-1]) > 0 {
		n := len(pages) - 1
		rows := pages[n]
		pages[n] = rows[:len(rows)-1]
		pages = append(pages, rows[len(rows)-1:])
	}

	return pages
}
