package sheetparser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rootedweb/lbs-invoice/internal/currencyutils"
	"rootedweb/lbs-invoice/internal/dateutils"
	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/models"
)

// Column positions of the input sheet.
const (
	colDate = iota
	colSegment
	colProject
	colDescription
	colType
	colComments
	colQuantity
	colUnitCost
	colBillableAmount
	columnCount
)

// headerRows is the number of leading rows (title, column headers) skipped
// by position.
const headerRows = 2

// Result is the outcome of parsing one workbook.
type Result struct {
	Entries    []models.LedgerEntry
	Period     string
	OutputName string
}

// Parser turns an input sheet into ledger entries.
type Parser struct {
	logger logging.Logger
	now    func() time.Time
}

// New creates a Parser. A nil logger falls back to a default logrus adapter.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{logger: logger, now: time.Now}
}

// WithClock replaces the clock used for the period of an empty sheet.
func (p *Parser) WithClock(now func() time.Time) *Parser {
	p.now = now
	return p
}

// Parse reads and parses the file at path.
func (p *Parser) Parse(path string) (*Result, error) {
	p.logger.WithField(logging.FieldFile, path).Info("Parsing invoice sheet")

	grid, err := ReadGrid(path)
	if err != nil {
		return nil, fmt.Errorf("error reading invoice sheet: %w", err)
	}
	return p.result(grid), nil
}

// ParseReader parses an uploaded sheet. name supplies the extension.
func (p *Parser) ParseReader(r io.Reader, name string) (*Result, error) {
	if err := ValidateExtension(name); err != nil {
		return nil, err
	}

	p.logger.WithField(logging.FieldFile, name).Info("Parsing uploaded invoice sheet")

	grid, err := ReadGridFrom(r, filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("error reading invoice sheet: %w", err)
	}
	return p.result(grid), nil
}

func (p *Parser) result(grid Grid) *Result {
	entries := p.ParseGrid(grid)
	period := p.Period(entries)

	p.logger.WithFields(
		logging.F(logging.FieldCount, len(entries)),
		logging.F(logging.FieldPeriod, period),
	).Info("Parsed invoice sheet")

	return &Result{
		Entries:    entries,
		Period:     period,
		OutputName: models.OutputName(period),
	}
}

// ParseGrid maps data rows onto ledger entries in source order.
func (p *Parser) ParseGrid(grid Grid) []models.LedgerEntry {
	entries := make([]models.LedgerEntry, 0, len(grid.Rows))
	for i, row := range grid.Rows {
		if i < headerRows {
			continue
		}
		cells := normalizeRow(row)
		if emptyDateCell(cells[colDate]) {
			continue
		}
		entries = append(entries, p.parseRow(i+1, cells, grid.Date1904))
	}
	return entries
}

// emptyDateCell reports a date cell that marks a row as unused. A lone "0"
// counts as empty, as it does in the exports this reads.
func emptyDateCell(v string) bool {
	return v == "" || v == "0"
}

// Period returns the "Month Year" label of the first entry, falling back to
// the current date.
func (p *Parser) Period(entries []models.LedgerEntry) string {
	if len(entries) > 0 && entries[0].DateValid {
		return dateutils.FormatPeriod(entries[0].Date)
	}
	return dateutils.FormatPeriod(p.now())
}

func (p *Parser) parseRow(rowNum int, cells []string, date1904 bool) models.LedgerEntry {
	entry := models.LedgerEntry{
		Row:            rowNum,
		Segment:        cells[colSegment],
		Project:        cells[colProject],
		Description:    cells[colDescription],
		Type:           cells[colType],
		Comments:       cells[colComments],
		Quantity:       p.number(rowNum, "quantity", cells[colQuantity]),
		UnitRate:       p.number(rowNum, "unit_cost", cells[colUnitCost]),
		BillableAmount: p.number(rowNum, "billable_amount", cells[colBillableAmount]),
	}

	date, err := dateutils.ParseCell(cells[colDate], date1904)
	if err != nil {
		p.logger.WithFields(
			logging.F(logging.FieldRow, rowNum),
			logging.F(logging.FieldValue, cells[colDate]),
		).WithError(err).Warn("Unreadable date, keeping entry without a date")
	} else {
		entry.Date = date
		entry.DateValid = true
	}

	return entry
}

func (p *Parser) number(rowNum int, column, raw string) decimal.Decimal {
	value, ok := currencyutils.ParseAmount(raw)
	if !ok && raw != "" {
		p.logger.WithFields(
			logging.F(logging.FieldRow, rowNum),
			logging.F(logging.FieldColumn, column),
			logging.F(logging.FieldValue, raw),
		).Debug("Unreadable number, using zero")
	}
	return value
}

func normalizeRow(row []string) []string {
	cells := make([]string, columnCount)
	for i := 0; i < columnCount && i < len(row); i++ {
		cells[i] = strings.TrimSpace(row[i])
	}
	return cells
}
