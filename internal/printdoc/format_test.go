package printdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDocNumber(t *testing.T) {
	assert.Equal(t, "------", FormatDocNumber(""))
	assert.Equal(t, "D4E5F6", FormatDocNumber("a1b2c3-d4e5f6"))
	assert.Equal(t, "AB12", FormatDocNumber("ab12"), "short ids print in full")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "January 15, 2026", FormatDate("2026-01-15"))
	assert.Equal(t, "March 3, 2025", FormatDate("2025-03-03T10:30:00Z"))
	assert.Equal(t, "", FormatDate(""))
	assert.Equal(t, "", FormatDate("not-a-date"))
	assert.Equal(t, "", FormatDate("15/01/2026"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "270.00", FormatAmount(270))
	assert.Equal(t, "99.98", FormatAmount(99.98))
	assert.Equal(t, "1234.50", FormatAmount(1234.5))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "3", FormatQuantity(3))
	assert.Equal(t, "2.5", FormatQuantity(2.5))
}
