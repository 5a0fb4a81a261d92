package models

import "github.com/shopspring/decimal"

// Project groups the entries of one project within a segment.
type Project struct {
	Name     string          `json:"name"`
	Entries  []LedgerEntry   `json:"entries"`
	Lines    []RenderLine    `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Section groups the projects of one segment.
type Section struct {
	Header   string          `json:"header"`
	Note     string          `json:"note"`
	Projects []Project       `json:"projects"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Report is the intermediate state held between aggregation and rendering.
type Report struct {
	Period     string    `json:"report_date"`
	OutputName string    `json:"output_name"`
	Sections   []Section `json:"sections"`
}

// Title returns the document title for the report.
func (r Report) Title() string {
	return ReportTitle(r.Period)
}

// Total sums the section subtotals.
func (r Report) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Sections {
		total = total.Add(s.Subtotal)
	}
	return total
}

// LineCount returns the number of render lines across all projects.
func (r Report) LineCount() int {
	n := 0
	for _, s := range r.Sections {
		for _, p := range s.Projects {
			n += len(p.Lines)
		}
	}
	return n
}
