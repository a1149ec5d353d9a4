package printdoc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// missingNumber is printed when a document has no identifier yet.
const missingNumber = "------"

// FormatDocNumber derives the printed document number: the last six
// characters of the identifier, upper-cased.
func FormatDocNumber(id string) string {
	if id == "" {
		return missingNumber
	}
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// FormatDate renders the document date in long form ("January 2,
// 2006"). Missing or unparseable dates render empty rather than
// failing the whole document.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return ""
}

// FormatAmount renders a currency figure with exactly two decimals.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatQuantity trims trailing zeros so fractional quantities print
// naturally.
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
