// Package aggregator groups ledger entries into the segment and project
// hierarchy of the invoice report and derives each project's render lines,
// subtotals and line identifiers.
package aggregator

import (
	"github.com/shopspring/decimal"

	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/models"
	"rootedweb/lbs-invoice/internal/sheetparser"
)

// Aggregator builds reports from parsed ledger entries.
type Aggregator struct {
	logger logging.Logger
}

// New creates an Aggregator. A nil logger falls back to a default adapter.
func New(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{logger: logger}
}

// BuildReport aggregates a parse result into a report.
func (a *Aggregator) BuildReport(result *sheetparser.Result) models.Report {
	report := models.Report{
		Period:     result.Period,
		OutputName: result.OutputName,
		Sections:   a.Aggregate(result.Entries),
	}

	a.logger.WithFields(
		logging.F(logging.FieldPeriod, report.Period),
		logging.F("sections", len(report.Sections)),
		logging.F("lines", report.LineCount()),
	).Info("Aggregated invoice report")

	return report
}

// Aggregate groups entries by segment then project, preserving first-seen
// order at both levels and the source order of entries within a project.
func (a *Aggregator) Aggregate(entries []models.LedgerEntry) []models.Section {
	var sections []models.Section
	sectionIndex := make(map[string]int)
	projectIndex := make(map[string]map[string]int)

	for _, entry := range entries {
		si, ok := sectionIndex[entry.Segment]
		if !ok {
			si = len(sections)
			sectionIndex[entry.Segment] = si
			projectIndex[entry.Segment] = make(map[string]int)
			sections = append(sections, models.Section{
				Header: entry.Segment,
				Note:   models.SegmentNote(entry.Segment),
			})
		}

		section := &sections[si]
		pi, ok := projectIndex[entry.Segment][entry.Project]
		if !ok {
			pi = len(section.Projects)
			projectIndex[entry.Segment][entry.Project] = pi
			section.Projects = append(section.Projects, models.Project{Name: entry.Project})
		}
		section.Projects[pi].Entries = append(section.Projects[pi].Entries, entry)
	}

	for si := range sections {
		section := &sections[si]
		section.Subtotal = decimal.Zero
		for pi := range section.Projects {
			project := &section.Projects[pi]
			project.Lines, project.Subtotal = a.projectLines(section.Header, project)
			section.Subtotal = section.Subtotal.Add(project.Subtotal)
		}
	}

	return sections
}

type rateGroup struct {
	rate     decimal.Decimal
	quantity decimal.Decimal
}

func (a *Aggregator) projectLines(segment string, project *models.Project) ([]models.RenderLine, decimal.Decimal) {
	subtotal := decimal.Zero
	var promoted *models.LedgerEntry
	var rates []rateGroup
	var expenses []models.LedgerEntry

	for i := range project.Entries {
		entry := project.Entries[i]
		switch classify(entry) {
		case classPromoted:
			if promoted != nil {
				a.logger.WithFields(
					logging.F(logging.FieldSegment, segment),
					logging.F(logging.FieldProject, project.Name),
					logging.F(logging.FieldRow, entry.Row),
				).Debug("Promoted comment replaces an earlier one")
			}
			promoted = &project.Entries[i]
		case classExpense:
			expenses = append(expenses, entry)
			subtotal = subtotal.Add(entry.BillableAmount)
		default:
			rates = addToRate(rates, entry.UnitRate, entry.Quantity)
			subtotal = subtotal.Add(entry.BillableAmount)
		}
	}

	lines := make([]models.RenderLine, 0, len(rates)+2*len(expenses)+1)
	if promoted != nil {
		lines = append(lines, models.RenderLine{Kind: models.LineFreeText, Text: promoted.Comments})
	}
	for _, g := range rates {
		lines = append(lines, models.RenderLine{Kind: models.LineAggregateHours, Quantity: g.quantity, Rate: g.rate})
	}
	for _, e := range expenses {
		lines = append(lines,
			models.RenderLine{Kind: models.LineExpenseAmount, Amount: e.BillableAmount, Text: e.Comments},
			models.RenderLine{Kind: models.LineExpenseDetail, Text: e.Comments},
		)
	}

	assignIDs(segment, project.Name, lines)
	return lines, subtotal
}

// addToRate sums quantity into the group whose rate is numerically equal,
// appending a new group on first sight.
func addToRate(groups []rateGroup, rate, quantity decimal.Decimal) []rateGroup {
	for i := range groups {
		if groups[i].rate.Equal(rate) {
			groups[i].quantity = groups[i].quantity.Add(quantity)
			return groups
		}
	}
	return append(groups, rateGroup{rate: rate, quantity: quantity})
}

func assignIDs(segment, project string, lines []models.RenderLine) {
	for i := range lines {
		lines[i].Index = i
		lines[i].ID = models.NewLineID(segment, project, i)
	}
}

// AssignLineIDs recomputes indices and identifiers in place, for reports
// restored from storage.
func AssignLineIDs(report *models.Report) {
	for si := range report.Sections {
		section := &report.Sections[si]
		for pi := range section.Projects {
			assignIDs(section.Header, section.Projects[pi].Name, section.Projects[pi].Lines)
		}
	}
}

// ReviewLine is one annotatable line with its position in the report.
type ReviewLine struct {
	Segment string
	Project string
	Line    models.RenderLine
	// Detail is the description shown under an expense amount, if any.
	Detail string
}

// Lines flattens the annotatable lines of a report in traversal order.
func Lines(report models.Report) []ReviewLine {
	var out []ReviewLine
	for _, section := range report.Sections {
		for _, project := range section.Projects {
			for i, line := range project.Lines {
				if !line.Annotatable() {
					continue
				}
				rl := ReviewLine{Segment: section.Header, Project: project.Name, Line: line}
				if line.Kind == models.LineExpenseAmount && i+1 < len(project.Lines) &&
					project.Lines[i+1].Kind == models.LineExpenseDetail {
					rl.Detail = project.Lines[i+1].Label()
				}
				out = append(out, rl)
			}
		}
	}
	return out
}
