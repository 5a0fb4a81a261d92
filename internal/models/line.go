package models

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"

	"github.com/shopspring/decimal"

	"rootedweb/lbs-invoice/internal/currencyutils"
)

// LineKind identifies how a RenderLine is derived and displayed.
type LineKind string

const (
	// LineFreeText is a comment promoted verbatim to a line.
	LineFreeText LineKind = "freeText"
	// LineAggregateHours is the summed quantity for one unit rate.
	LineAggregateHours LineKind = "aggregateHours"
	// LineExpenseAmount is the amount of one expense entry.
	LineExpenseAmount LineKind = "expenseAmount"
	// LineExpenseDetail is the description sub-line following an expense amount.
	LineExpenseDetail LineKind = "expenseDetail"
)

// LineID joins a render line to a reviewer annotation. It depends only on
// the segment, the project and the line position.
type LineID string

// NewLineID derives the identifier for the line at index within a project.
func NewLineID(segment, project string, index int) LineID {
	sum := md5.Sum([]byte(segment + "_" + project + "_" + strconv.Itoa(index)))
	return LineID(hex.EncodeToString(sum[:]))
}

// RenderLine is one output row of a project.
type RenderLine struct {
	Kind     LineKind        `json:"kind"`
	Index    int             `json:"index"`
	ID       LineID          `json:"id"`
	Text     string          `json:"text,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// Label returns the display text of the line.
func (l RenderLine) Label() string {
	switch l.Kind {
	case LineAggregateHours:
		return "- " + currencyutils.FormatNumber(l.Quantity) + " " + UnitLabel(l.Quantity) +
			" @ " + currencyutils.FormatDollars(l.Rate) + "/hr"
	case LineExpenseAmount:
		return "- " + currencyutils.FormatDollars(l.Amount)
	case LineExpenseDetail:
		return "• " + l.Text
	default:
		return l.Text
	}
}

// Annotatable reports whether a reviewer may attach a comment to the line.
// Expense descriptions share the annotation of their amount line.
func (l RenderLine) Annotatable() bool {
	return l.Kind != LineExpenseDetail
}

// UnitLabel pluralises the hour unit: up to and including one is singular.
func UnitLabel(quantity decimal.Decimal) string {
	if quantity.LessThanOrEqual(decimal.NewFromInt(1)) {
		return "hour"
	}
	return "hours"
}
