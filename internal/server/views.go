package server

import (
	"embed"
	"html/template"
	"net/http"

	"rootedweb/lbs-invoice/internal/currencyutils"
	"rootedweb/lbs-invoice/internal/models"
	"rootedweb/lbs-invoice/internal/session"
	"rootedweb/lbs-invoice/internal/sheetparser"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const pageTitle = "LBS Invoice Report Generator"

var acceptedTypes = sheetparser.ExtXLSX + "," + sheetparser.ExtXLSM + "," + sheetparser.ExtCSV

type uploadPage struct {
	Title         string
	Flash         session.Flash
	DownloadReady bool
	Accept        string
}

type commentItem struct {
	ID          models.LineID
	Label       string
	Detail      string
	Placeholder string
}

type commentProject struct {
	Name  string
	Items []commentItem
}

type commentSection struct {
	Header   string
	Note     string
	Total    string
	Projects []commentProject
}

type commentsPage struct {
	Title    string
	Flash    session.Flash
	Report   models.Report
	Sections []commentSection
}

// commentSections groups the annotatable lines for the review form. An
// expense amount and its description share one comment field.
func commentSections(report models.Report) []commentSection {
	sections := make([]commentSection, 0, len(report.Sections))
	for _, s := range report.Sections {
		cs := commentSection{
			Header: s.Header,
			Note:   s.Note,
			Total:  currencyutils.FormatDollars(s.Subtotal),
		}
		for _, p := range s.Projects {
			cp := commentProject{Name: p.Name}
			for i, line := range p.Lines {
				if !line.Annotatable() {
					continue
				}
				item := commentItem{
					ID:          line.ID,
					Label:       line.Label(),
					Placeholder: "Enter a custom comment for this line item...",
				}
				if line.Kind == models.LineExpenseAmount && i+1 < len(p.Lines) && p.Lines[i+1].Kind == models.LineExpenseDetail {
					item.Detail = p.Lines[i+1].Label()
					item.Placeholder = "Add an additional comment for this expense..."
				}
				cp.Items = append(cp.Items, item)
			}
			cs.Projects = append(cs.Projects, cp)
		}
		sections = append(sections, cs)
	}
	return sections
}

func (w *WebAPI) renderPage(rw http.ResponseWriter, name string, data interface{}) {
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(rw, name, data); err != nil {
		w.logger.WithError(err).WithField("template", name).Error("Failed to render page")
	}
}
