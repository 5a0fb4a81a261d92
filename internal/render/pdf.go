package render

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"rootedweb/lbs-invoice/internal/theme"
)

const fontFamily = "Arial"

// PDFCanvas draws on an A4 portrait gofpdf document with a logo and title
// header and a page number footer.
type PDFCanvas struct {
	pdf     *gofpdf.Fpdf
	tr      func(string) string
	logo    string
	logoErr error
}

// NewPDFCanvas starts a document titled title. The logo is drawn only when
// the accent was sampled from a readable image that gofpdf also accepts;
// otherwise the header carries the title alone and LogoError reports why.
func NewPDFCanvas(title string, accent theme.Accent) *PDFCanvas {
	pdf := gofpdf.New("P", "mm", "A4", "")
	c := &PDFCanvas{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}

	pdf.SetTitle(title, true)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 15)

	if accent.LogoPath != "" {
		c.registerLogo(accent)
	}

	pdf.SetHeaderFunc(func() {
		if c.logo != "" {
			pdf.ImageOptions(c.logo, 10, 8, 40, 0, false, c.logoOptions(accent), 0, "")
		}
		pdf.SetFont(fontFamily, StyleBold, 14)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetY(15)
		pdf.CellFormat(0, 10, c.tr(title), "", 1, AlignRight, false, 0, "")
		pdf.Ln(10)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, StyleItalic, 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, AlignCenter, false, 0, "")
	})

	pdf.AddPage()
	return c
}

func (c *PDFCanvas) logoOptions(accent theme.Accent) gofpdf.ImageOptions {
	return gofpdf.ImageOptions{ImageType: accent.LogoType, ReadDpi: true}
}

// registerLogo loads the logo once under an explicit image type. A logo
// gofpdf cannot embed (16-bit or interlaced PNG, for instance) is dropped
// and the document error cleared.
func (c *PDFCanvas) registerLogo(accent theme.Accent) {
	if accent.LogoType == "" {
		c.logoErr = fmt.Errorf("unknown image type for logo %s", accent.LogoPath)
		return
	}

	f, err := os.Open(accent.LogoPath) // #nosec G304 -- logo path comes from configuration
	if err != nil {
		c.logoErr = fmt.Errorf("error opening logo: %w", err)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	c.pdf.RegisterImageOptionsReader(accent.LogoPath, c.logoOptions(accent), f)
	if c.pdf.Err() {
		c.logoErr = fmt.Errorf("error embedding logo: %w", c.pdf.Error())
		c.pdf.ClearError()
		return
	}
	c.logo = accent.LogoPath
}

// LogoError reports why the logo was left out of the header, if it was.
func (c *PDFCanvas) LogoError() error { return c.logoErr }

func (c *PDFCanvas) AddPage() { c.pdf.AddPage() }

func (c *PDFCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *PDFCanvas) SetTextColor(r, g, b int) { c.pdf.SetTextColor(r, g, b) }

func (c *PDFCanvas) SetX(x float64) { c.pdf.SetX(x) }

func (c *PDFCanvas) GetY() float64 { return c.pdf.GetY() }

func (c *PDFCanvas) Line(h float64, text, align string) {
	c.pdf.CellFormat(0, h, c.tr(text), "", 1, align, false, 0, "")
}

func (c *PDFCanvas) Paragraph(h float64, text string) {
	c.pdf.MultiCell(0, h, c.tr(text), "", AlignLeft, false)
}

func (c *PDFCanvas) Ln(h float64) { c.pdf.Ln(h) }

// PageCount returns the number of pages started so far.
func (c *PDFCanvas) PageCount() int { return c.pdf.PageCount() }

// Output closes the document and writes it to w.
func (c *PDFCanvas) Output(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("error writing PDF: %w", err)
	}
	return nil
}
