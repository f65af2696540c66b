package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"

	"clinicapi/internal/model"
)

// PortfolioReportData carries the read models for one portfolio report.
type PortfolioReportData struct {
	Portfolio   *model.Portfolio
	Patient     *model.Patient
	BeforeVisit *model.Visit
	AfterVisit  *model.Visit
	Pairs       []model.ComparisonPair
}

// PortfolioReport renders one before/after pair per landscape page, two
// fixed-size image slots side by side with before/after date captions.
// Missing or corrupt images leave their slot empty; the captions and the
// rest of the document still render.
func (c *Compositor) PortfolioReport(ctx context.Context, data PortfolioReportData) ([]byte, error) {
	if data.Portfolio == nil || data.Patient == nil || data.BeforeVisit == nil || data.AfterVisit == nil {
		return nil, errors.New("portfolio, patient and both visits are required")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	d := &doc{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		cur:   newCursor(pdf, landscapeTop, landscapeBottom),
		left:  pageLeft,
		width: landscapeWidth,
	}

	if len(data.Pairs) == 0 {
		d.cur.newPage()
		c.portfolioHeader(d, data, "")
		d.line("", 12, "No comparable photos")
	}

	for _, pair := range data.Pairs {
		d.cur.newPage()
		c.portfolioHeader(d, data, pairCaption(pair))
		d.cur.advance(sectionGap)

		y := d.cur.y
		leftX := d.left
		rightX := d.left + slotW + slotGap

		if pair.Before != nil {
			if img, typ, err := c.openImage(ctx, pair.Before.OriginalPath); err == nil {
				c.placeImage(d, "before-"+pair.Before.ID, typ, img, leftX, y, slotW, slotH)
			}
		}
		if pair.After != nil {
			if img, typ, err := c.openImage(ctx, pair.After.OriginalPath); err == nil {
				c.placeImage(d, "after-"+pair.After.ID, typ, img, rightX, y, slotW, slotH)
			}
		}

		d.pdf.SetFont("Helvetica", "", 10)
		d.pdf.SetXY(leftX, y+slotH)
		d.pdf.CellFormat(slotW, photoCaptionH, d.tr("Before: "+data.BeforeVisit.VisitDate.Format("2006-01-02")), "", 0, "C", false, 0, "")
		d.pdf.SetXY(rightX, y+slotH)
		d.pdf.CellFormat(slotW, photoCaptionH, d.tr("After: "+data.AfterVisit.VisitDate.Format("2006-01-02")), "", 0, "C", false, 0, "")
		d.cur.y = y + slotH + photoCaptionH
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Compositor) portfolioHeader(d *doc, data PortfolioReportData, caption string) {
	d.line("B", 14, c.clinicName+" - "+data.Portfolio.Name)
	subtitle := data.Patient.FirstName + " " + data.Patient.LastName
	if caption != "" {
		subtitle += ": " + caption
	}
	d.line("", 12, subtitle)
}

func pairCaption(pair model.ComparisonPair) string {
	caption := pair.Position
	if pair.State != nil && *pair.State != "" {
		caption += " - " + *pair.State
	}
	return caption
}
