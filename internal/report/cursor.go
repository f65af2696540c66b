package report

import "github.com/go-pdf/fpdf"

// cursor owns all page and vertical-position bookkeeping for a document.
// Section renderers only call advance/wouldOverflow/newPage and never touch
// coordinates directly; the write position moves monotonically within a page
// and resets to the top margin on every page break.
type cursor struct {
	pdf    *fpdf.Fpdf
	top    float64
	bottom float64
	y      float64
}

func newCursor(pdf *fpdf.Fpdf, top, bottom float64) *cursor {
	return &cursor{pdf: pdf, top: top, bottom: bottom, y: top}
}

func (c *cursor) advance(h float64) {
	c.y += h
}

func (c *cursor) wouldOverflow(h float64) bool {
	return c.y+h > c.bottom
}

func (c *cursor) newPage() {
	c.pdf.AddPage()
	c.y = c.top
}

// ensure starts a new page when h no longer fits on the current one.
func (c *cursor) ensure(h float64) {
	if c.wouldOverflow(h) {
		c.newPage()
	}
}
