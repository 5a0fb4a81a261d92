package render

import (
	"rootedweb/lbs-invoice/internal/currencyutils"
	"rootedweb/lbs-invoice/internal/models"
	"rootedweb/lbs-invoice/internal/theme"
)

// Layout constants, in millimetres and points.
const (
	LeftMargin       = 10.0
	PageBreakY       = 250.0
	AnnotationIndent = 5.0
	ExpenseIndent    = 10.0

	sectionHeaderSize = 12
	projectNameSize   = 11
	lineSize          = 10
	annotationSize    = 9
	totalSize         = 11
)

// Renderer walks a report and draws it on a Canvas.
type Renderer struct {
	accent theme.Accent
}

// NewRenderer creates a Renderer using accent for section headers.
func NewRenderer(accent theme.Accent) *Renderer {
	return &Renderer{accent: accent}
}

// Render draws every section of the report in order. Annotations are looked
// up by line identifier and never change the report itself.
func (r *Renderer) Render(report models.Report, annotations models.AnnotationMap, c Canvas) {
	for _, section := range report.Sections {
		r.renderSection(section, annotations, c)
	}
}

func (r *Renderer) renderSection(section models.Section, annotations models.AnnotationMap, c Canvas) {
	c.SetFont(StyleBold, sectionHeaderSize)
	c.SetTextColor(r.accent.R, r.accent.G, r.accent.B)
	c.Line(10, section.Header, AlignLeft)

	if section.Note != "" {
		c.SetFont(StyleRegular, lineSize)
		c.SetTextColor(0, 0, 0)
		c.Paragraph(6, section.Note)
		c.Ln(2)
	}

	for _, project := range section.Projects {
		// Only checked between projects so a project is never split by it.
		if c.GetY() > PageBreakY {
			c.AddPage()
		}
		r.renderProject(project, annotations, c)
	}

	c.SetFont(StyleBold, totalSize)
	c.SetTextColor(0, 0, 0)
	c.Line(10, section.Header+" Total: "+currencyutils.FormatDollars(section.Subtotal), AlignRight)
	c.Ln(5)
}

func (r *Renderer) renderProject(project models.Project, annotations models.AnnotationMap, c Canvas) {
	c.SetFont(StyleBold, projectNameSize)
	c.SetTextColor(0, 0, 0)
	c.Line(8, project.Name, AlignLeft)

	var pendingExpense models.LineID
	for i, line := range project.Lines {
		c.SetFont(StyleRegular, lineSize)
		c.Line(6, line.Label(), AlignLeft)

		switch line.Kind {
		case models.LineExpenseAmount:
			hasDetail := i+1 < len(project.Lines) && project.Lines[i+1].Kind == models.LineExpenseDetail
			if hasDetail {
				pendingExpense = line.ID
				continue
			}
			r.annotate(annotations, line.ID, ExpenseIndent, "", c)
		case models.LineExpenseDetail:
			if pendingExpense != "" {
				r.annotate(annotations, pendingExpense, ExpenseIndent, "", c)
				pendingExpense = ""
			}
		default:
			r.annotate(annotations, line.ID, AnnotationIndent, "• ", c)
		}
	}
	c.Ln(1)
}

func (r *Renderer) annotate(annotations models.AnnotationMap, id models.LineID, indent float64, bullet string, c Canvas) {
	comment, ok := annotations.Lookup(id)
	if !ok {
		return
	}
	c.SetFont(StyleItalic, annotationSize)
	c.SetX(LeftMargin + indent)
	c.Line(5, bullet+comment, AlignLeft)
}
