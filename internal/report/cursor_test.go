package report

import (
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
)

func TestCursor(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	c := newCursor(pdf, 20, 277)

	c.newPage()
	assert.Equal(t, 1, pdf.PageCount())
	assert.Equal(t, 20.0, c.y)

	c.advance(100)
	assert.Equal(t, 120.0, c.y)
	assert.False(t, c.wouldOverflow(157))
	assert.True(t, c.wouldOverflow(158))

	// ensure is a no-op while the height still fits.
	c.ensure(157)
	assert.Equal(t, 1, pdf.PageCount())
	assert.Equal(t, 120.0, c.y)

	// Overflow starts a new page and resets to the top margin.
	c.ensure(158)
	assert.Equal(t, 2, pdf.PageCount())
	assert.Equal(t, 20.0, c.y)
}
