// Package render lays out an aggregated invoice report as a paginated
// document. Layout is expressed against the Canvas interface; PDFCanvas
// implements it with gofpdf.
package render

import "io"

// Text alignment within a cell.
const (
	AlignLeft   = "L"
	AlignCenter = "C"
	AlignRight  = "R"
)

// Font styles.
const (
	StyleRegular = ""
	StyleBold    = "B"
	StyleItalic  = "I"
)

// Canvas is the drawing surface used by Renderer. Units are millimetres.
type Canvas interface {
	AddPage()
	SetFont(style string, size float64)
	SetTextColor(r, g, b int)
	SetX(x float64)
	GetY() float64
	// Line writes a full-width cell and moves to the next line.
	Line(h float64, text, align string)
	// Paragraph writes wrapped text.
	Paragraph(h float64, text string)
	Ln(h float64)
}

// Document is a Canvas that can serialise its output.
type Document interface {
	Canvas
	Output(w io.Writer) error
}
