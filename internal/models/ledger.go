package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one billable row of the input sheet.
type LedgerEntry struct {
	Row            int             `json:"row"`
	Date           time.Time       `json:"date"`
	DateValid      bool            `json:"date_valid"`
	Segment        string          `json:"segment"`
	Project        string          `json:"project"`
	Description    string          `json:"description"`
	Type           string          `json:"type"`
	Comments       string          `json:"comments"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitRate       decimal.Decimal `json:"unit_rate"`
	BillableAmount decimal.Decimal `json:"billable_amount"`
}

// ISODate returns the entry date as YYYY-MM-DD, or "" when the source cell
// could not be read as a date.
func (e LedgerEntry) ISODate() string {
	if !e.DateValid {
		return ""
	}
	return e.Date.Format("2006-01-02")
}
