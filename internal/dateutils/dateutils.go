// Package dateutils provides the date handling used when reading ledger rows:
// spreadsheet serial dates, loose string dates and the report period label.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Common date layout constants used throughout the application
const (
	DateLayoutISO    = "2006-01-02"
	DateLayoutUS     = "01/02/2006"
	DateLayoutFull   = "2006-01-02 15:04:05"
	PeriodLayout     = "January 2006"
	DateLayoutShort  = "1/2/2006"
	DateLayoutShortY = "1/2/06"
)

// CommonFormats is the ordered list of layouts tried for string dates.
// US month-first forms win over day-first ones.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	time.RFC3339,
	DateLayoutUS,
	DateLayoutShort,
	DateLayoutShortY,
	"01-02-2006",
	"1-2-2006",
	"01-02-06",
	"2006/01/02",
	"02.01.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Monday, January 2, 2006",
}

var spaces = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses internal whitespace.
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate attempts to parse a date string using CommonFormats. The result
// is normalised to midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("unable to parse date: empty value")
	}

	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return TruncateToDate(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// FromSerial converts a spreadsheet serial date (days since the workbook
// epoch, fraction = time of day) into a calendar date.
func FromSerial(serial float64, date1904 bool) (time.Time, error) {
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid serial date %v: %w", serial, err)
	}
	return TruncateToDate(t), nil
}

// ParseCell accepts either a numeric serial date or a date string.
func ParseCell(raw string, date1904 bool) (time.Time, error) {
	cleaned := CleanDateString(raw)
	if serial, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return FromSerial(serial, date1904)
	}
	return ParseDate(cleaned)
}

// TruncateToDate drops the time of day and location.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// FormatPeriod renders the "Month Year" report period label.
func FormatPeriod(date time.Time) string {
	return date.Format(PeriodLayout)
}
