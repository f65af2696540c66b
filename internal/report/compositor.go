package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"clinicapi/internal/costing"
	"clinicapi/internal/model"
)

// Layout constants. These are part of the observable contract: changing them
// changes the rendered output, not just an internal detail.
const (
	pageLeft     = 15.0
	pageTop      = 20.0
	pageBottom   = 277.0 // A4 portrait content floor
	contentWidth = 180.0

	lineHeight = 6.0
	sectionGap = 3.0

	gridCols      = 3
	photoCellW    = 55.0
	photoCellH    = 55.0
	photoGapX     = 7.5
	photoCaptionH = 6.0
	photoRowH     = photoCellH + photoCaptionH + 6.0

	signatureW = 60.0
	signatureH = 25.0

	landscapeTop    = 20.0
	landscapeBottom = 190.0 // A4 landscape content floor
	landscapeWidth  = 267.0
	slotW           = 125.0
	slotH           = 125.0
	slotGap         = 17.0
)

// AssetSource resolves stored photo and image assets at render time. A
// failed Open is the MissingAsset case: the compositor skips that visual
// element and keeps going.
type AssetSource interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Compositor is the paginated document layout engine. It is a single-pass,
// forward-only renderer: sections are emitted in a fixed order and the page
// cursor never moves backwards. One Compositor is safe to share across
// requests; all mutable state lives in the per-document doc value.
type Compositor struct {
	clinicName        string
	provincialTaxRate float64
	federalTaxRate    float64
	assets            AssetSource
}

// NewCompositor creates a Compositor. The tax rates are percentages; a zero
// rate suppresses its ledger line.
func NewCompositor(clinicName string, provincialTaxRate, federalTaxRate float64, assets AssetSource) *Compositor {
	return &Compositor{
		clinicName:        clinicName,
		provincialTaxRate: provincialTaxRate,
		federalTaxRate:    federalTaxRate,
		assets:            assets,
	}
}

// VisitReportData carries the read models for one visit report. Patient and
// Visit are hard preconditions; everything else renders only if present.
type VisitReportData struct {
	Patient    *model.Patient
	Visit      *model.Visit
	Photos     []model.Photo
	Treatments []model.Treatment
	// Annotations maps treatment ID to its annotation records.
	Annotations map[string][]model.Annotation
	Consents    []model.Consent
}

// doc bundles the per-document rendering state: the PDF, the latin-1
// translator for the core fonts, and the layout cursor.
type doc struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	cur   *cursor
	left  float64
	width float64
}

func (d *doc) line(style string, size float64, txt string) {
	d.cur.ensure(lineHeight)
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.SetXY(d.left, d.cur.y)
	d.pdf.CellFormat(d.width, lineHeight, d.tr(txt), "", 0, "L", false, 0, "")
	d.cur.advance(lineHeight)
}

func (d *doc) heading(txt string) {
	d.line("B", 13, txt)
	d.cur.advance(sectionGap)
}

// wrapped flows multi-line plain text, wrapping each paragraph to the
// content width and breaking pages between rows.
func (d *doc) wrapped(txt string) {
	d.pdf.SetFont("Helvetica", "", 11)
	for _, paragraph := range strings.Split(txt, "\n") {
		if paragraph == "" {
			continue
		}
		for _, row := range d.pdf.SplitText(d.tr(paragraph), d.width) {
			d.cur.ensure(lineHeight)
			d.pdf.SetFont("Helvetica", "", 11)
			d.pdf.SetXY(d.left, d.cur.y)
			d.pdf.CellFormat(d.width, lineHeight, row, "", 0, "L", false, 0, "")
			d.cur.advance(lineHeight)
		}
	}
}

// VisitReport renders the full visit document and returns the PDF bytes.
// Per-item failures (missing photo file, corrupt annotation payload, bad
// signature image) are absorbed inside their section; only precondition and
// rendering failures surface.
func (c *Compositor) VisitReport(ctx context.Context, data VisitReportData) ([]byte, error) {
	if data.Patient == nil || data.Visit == nil {
		return nil, errors.New("patient and visit are required")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	d := &doc{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		cur:   newCursor(pdf, pageTop, pageBottom),
		left:  pageLeft,
		width: contentWidth,
	}
	d.cur.newPage()

	c.titleBlock(d, "Visit Report")
	c.patientBlock(d, data.Patient)
	c.visitBlock(d, data.Visit)
	if len(data.Photos) > 0 {
		c.photoGrid(ctx, d, data.Photos)
	}
	if len(data.Treatments) > 0 {
		c.treatmentLedger(d, data.Treatments)
	}
	if hasAnnotations(data.Treatments, data.Annotations) {
		c.annotationSummary(d, data.Treatments, data.Annotations)
	}
	if len(data.Consents) > 0 {
		c.consentBlocks(ctx, d, data.Consents)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Compositor) titleBlock(d *doc, kind string) {
	d.line("B", 16, c.clinicName)
	d.line("", 12, kind)
	d.cur.advance(sectionGap * 2)
}

func (c *Compositor) patientBlock(d *doc, p *model.Patient) {
	d.heading("Patient")
	d.line("B", 11, p.FirstName+" "+p.LastName)
	if p.BirthDate != nil {
		d.line("", 11, "Date of birth: "+p.BirthDate.Format("2006-01-02"))
	}
	if p.Sex != nil {
		d.line("", 11, "Sex: "+*p.Sex)
	}
	if p.Ethnicity != nil {
		d.line("", 11, "Ethnicity: "+*p.Ethnicity)
	}
	if p.Email != nil {
		d.line("", 11, "Email: "+*p.Email)
	}
	if p.Phone != nil {
		d.line("", 11, "Phone: "+*p.Phone)
	}
	if loc := cityLine(p); loc != "" {
		d.line("", 11, loc)
	}
	d.cur.advance(sectionGap)
}

func cityLine(p *model.Patient) string {
	var parts []string
	if p.City != nil {
		parts = append(parts, *p.City)
	}
	if p.Province != nil {
		parts = append(parts, *p.Province)
	}
	return strings.Join(parts, ", ")
}

func (c *Compositor) visitBlock(d *doc, v *model.Visit) {
	d.heading("Visit")
	d.line("", 11, "Date: "+v.VisitDate.Format("2006-01-02"))
	if v.VisitTime != nil {
		d.line("", 11, "Time: "+*v.VisitTime)
	}
	if v.Practitioner != nil {
		d.line("", 11, "Practitioner: "+*v.Practitioner)
	}
	if v.Notes != nil {
		if notes := StripMarkup(*v.Notes); notes != "" {
			d.cur.advance(sectionGap)
			d.line("B", 11, "Clinical notes")
			d.wrapped(notes)
		}
	}
}

// photoGrid lays photos out in a fixed 3-column grid, starting on a fresh
// page. The column index advances per placed photo, wrapping to a new row
// every gridCols photos; a row that would cross the page floor starts a new
// page first. Photos whose asset cannot be opened or decoded are skipped
// entirely: no cell, no orphaned caption.
func (c *Compositor) photoGrid(ctx context.Context, d *doc, photos []model.Photo) {
	d.cur.newPage()
	d.heading("Photos")

	placed := 0
	rowY := d.cur.y
	for _, ph := range photos {
		img, typ, err := c.openImage(ctx, ph.OriginalPath)
		if err != nil {
			continue
		}

		col := placed % gridCols
		if col == 0 && placed > 0 {
			rowY += photoRowH
		}
		if rowY+photoRowH > d.cur.bottom {
			d.cur.newPage()
			rowY = d.cur.top
		}

		x := d.left + float64(col)*(photoCellW+photoGapX)
		if !c.placeImage(d, "photo-"+ph.ID, typ, img, x, rowY, photoCellW, photoCellH) {
			continue
		}
		if caption := photoCaption(ph); caption != "" {
			d.pdf.SetFont("Helvetica", "", 9)
			d.pdf.SetXY(x, rowY+photoCellH)
			d.pdf.CellFormat(photoCellW, photoCaptionH, d.tr(caption), "", 0, "C", false, 0, "")
		}
		placed++
	}
	if placed > 0 {
		d.cur.y = rowY + photoRowH
	}
}

func photoCaption(ph model.Photo) string {
	if ph.Position == nil {
		return ""
	}
	caption := *ph.Position
	if ph.State != nil && *ph.State != "" {
		caption += " - " + *ph.State
	}
	return caption
}

func (c *Compositor) treatmentLedger(d *doc, treatments []model.Treatment) {
	d.cur.newPage()
	d.heading("Treatments")

	subtotal := decimal.Zero
	for _, t := range treatments {
		d.cur.advance(sectionGap)
		d.line("B", 12, treatmentHeading(t))
		if t.TreatmentType != nil {
			d.line("", 11, "Type: "+*t.TreatmentType)
		}
		if t.LotNumber != nil {
			d.line("", 11, "Lot: "+*t.LotNumber)
		}
		if t.ExpiryDate != nil {
			d.line("", 11, "Expiry: "+t.ExpiryDate.Format("2006-01-02"))
		}
		for _, a := range t.Areas {
			cost := decimal.NewFromFloat(a.Cost)
			d.line("", 11, fmt.Sprintf("%s: %s u, $%s", a.Name, formatUnits(a.Units), costing.Display(cost)))
			subtotal = subtotal.Add(cost)
		}
	}

	d.cur.advance(sectionGap * 2)
	rollup := costing.Compute(subtotal, c.provincialTaxRate, c.federalTaxRate)
	d.line("", 11, "Subtotal: $"+costing.Display(rollup.Subtotal))
	if c.provincialTaxRate != 0 {
		d.line("", 11, fmt.Sprintf("Provincial tax (%s%%): $%s", formatRate(c.provincialTaxRate), costing.Display(rollup.ProvincialTax)))
	}
	if c.federalTaxRate != 0 {
		d.line("", 11, fmt.Sprintf("Federal tax (%s%%): $%s", formatRate(c.federalTaxRate), costing.Display(rollup.FederalTax)))
	}
	d.line("B", 11, "Total: $"+costing.Display(rollup.Total))
}

func treatmentHeading(t model.Treatment) string {
	switch {
	case t.ProductName != nil:
		return *t.ProductName
	case t.Brand != nil:
		return *t.Brand
	case t.TreatmentType != nil:
		return *t.TreatmentType
	default:
		return "Treatment"
	}
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

func formatUnits(units float64) string {
	return strconv.FormatFloat(units, 'f', -1, 64)
}

func hasAnnotations(treatments []model.Treatment, annotations map[string][]model.Annotation) bool {
	for _, t := range treatments {
		if len(annotations[t.ID]) > 0 {
			return true
		}
	}
	return false
}

// annotationSummary starts exactly one page for all annotated treatments.
// A record whose point data fails to parse degrades to a single fallback
// line; parsing never fails the document.
func (c *Compositor) annotationSummary(d *doc, treatments []model.Treatment, annotations map[string][]model.Annotation) {
	d.cur.newPage()
	d.heading("Injection Annotations")

	for _, t := range treatments {
		anns := annotations[t.ID]
		if len(anns) == 0 {
			continue
		}
		d.cur.advance(sectionGap)
		d.line("B", 12, treatmentHeading(t))
		for _, a := range anns {
			lines, ok := annotationLines(a.Points)
			if !ok {
				d.line("I", 11, "Annotation data could not be read")
				continue
			}
			for _, ln := range lines {
				d.line("", 11, ln)
			}
		}
	}
}

type annotationViews struct {
	Views []struct {
		Name   string            `json:"name"`
		Points []json.RawMessage `json:"points"`
	} `json:"views"`
}

func annotationLines(points string) ([]string, bool) {
	var parsed annotationViews
	if err := json.Unmarshal([]byte(points), &parsed); err != nil {
		return nil, false
	}
	lines := make([]string, 0, len(parsed.Views))
	for _, v := range parsed.Views {
		lines = append(lines, fmt.Sprintf("%s: %d points", v.Name, len(v.Points)))
	}
	return lines, true
}

// consentBlocks renders one block per consent. A signature that fails to
// decode or embed is skipped; the type and date lines always render.
func (c *Compositor) consentBlocks(ctx context.Context, d *doc, consents []model.Consent) {
	d.cur.newPage()
	d.heading("Consents")

	for _, consent := range consents {
		d.cur.advance(sectionGap)
		d.line("B", 12, "Consent: "+consent.ConsentType)
		if consent.SignedAt != nil {
			d.line("", 11, "Signed: "+consent.SignedAt.Format("2006-01-02"))
		}
		if consent.SignatureData == nil {
			continue
		}
		img, typ, err := decodeDataURL(*consent.SignatureData)
		if err != nil {
			continue
		}
		d.cur.ensure(signatureH + 2)
		if c.placeImage(d, "signature-"+consent.ID, typ, img, d.left, d.cur.y, signatureW, signatureH) {
			d.cur.advance(signatureH + 2)
		}
	}
}

// openImage loads an asset and maps its extension to an fpdf image type.
func (c *Compositor) openImage(ctx context.Context, assetPath string) ([]byte, string, error) {
	rd, err := c.assets.Open(ctx, assetPath)
	if err != nil {
		return nil, "", err
	}
	defer rd.Close()

	img, err := io.ReadAll(rd)
	if err != nil {
		return nil, "", err
	}

	var typ string
	switch strings.ToLower(path.Ext(assetPath)) {
	case ".png":
		typ = "PNG"
	case ".jpg", ".jpeg":
		typ = "JPG"
	case ".gif":
		typ = "GIF"
	}
	return img, typ, nil
}

// placeImage registers and draws one image, clearing any fpdf error so a
// corrupt asset never poisons the rest of the document.
func (c *Compositor) placeImage(d *doc, name, typ string, img []byte, x, y, w, h float64) bool {
	opts := fpdf.ImageOptions{ImageType: typ}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if d.pdf.Err() {
		d.pdf.ClearError()
		return false
	}
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if d.pdf.Err() {
		d.pdf.ClearError()
		return false
	}
	return true
}

func decodeDataURL(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", errors.New("malformed data URL")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, "", errors.New("data URL is not base64")
	}

	var typ string
	switch mime {
	case "image/png":
		typ = "PNG"
	case "image/jpeg", "image/jpg":
		typ = "JPG"
	default:
		return nil, "", fmt.Errorf("unsupported signature image type %q", mime)
	}

	img, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	return img, typ, nil
}
