// Package sheetparser reads the invoice workbook and maps its rows onto
// ledger entries. Cell content is read leniently: a malformed date or number
// never fails the file, only structural problems do.
package sheetparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"rootedweb/lbs-invoice/internal/parsererror"
)

const parserName = "sheetparser"

// Accepted input extensions.
const (
	ExtXLSX = ".xlsx"
	ExtXLSM = ".xlsm"
	ExtCSV  = ".csv"
)

// ExpectedFormat describes the accepted inputs in user-facing messages.
const ExpectedFormat = "an Excel file (.xlsx, .xlsm) or a CSV file (.csv)"

var acceptedExtensions = map[string]bool{
	ExtXLSX: true,
	ExtXLSM: true,
	ExtCSV:  true,
}

// Grid is the cell text of the first sheet, row-major. Date1904 records the
// workbook's date epoch for serial date cells.
type Grid struct {
	Rows     [][]string
	Date1904 bool
}

// ValidateExtension checks the file name against the accepted input types.
func ValidateExtension(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !acceptedExtensions[ext] {
		return &parsererror.InvalidFormatError{
			FilePath:       name,
			Extension:      ext,
			ExpectedFormat: ExpectedFormat,
		}
	}
	return nil
}

// ReadGrid reads the first sheet of the file at path.
func ReadGrid(path string) (Grid, error) {
	if err := ValidateExtension(path); err != nil {
		return Grid{}, err
	}

	file, err := os.Open(path) // #nosec G304 -- path is supplied by the operator or an upload temp file
	if err != nil {
		return Grid{}, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ReadGridFrom(file, filepath.Ext(path))
}

// ReadGridFrom reads the first sheet from r, using ext to pick the decoder.
func ReadGridFrom(r io.Reader, ext string) (Grid, error) {
	switch strings.ToLower(ext) {
	case ExtXLSX, ExtXLSM:
		return readWorkbook(r)
	case ExtCSV:
		return readCSV(r)
	default:
		return Grid{}, &parsererror.InvalidFormatError{Extension: ext, ExpectedFormat: ExpectedFormat}
	}
}

func readWorkbook(r io.Reader) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Grid{}, &parsererror.ParseError{Parser: parserName, Field: "workbook", Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Grid{}, &parsererror.ParseError{Parser: parserName, Field: "sheet", Err: errors.New("workbook has no sheets")}
	}

	// Raw values keep date cells as serial numbers instead of display strings.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Grid{}, &parsererror.ParseError{Parser: parserName, Field: "sheet", Value: sheets[0], Err: err}
	}

	grid := Grid{Rows: rows}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		grid.Date1904 = *props.Date1904
	}
	return grid, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(r io.Reader) (Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Grid{}, &parsererror.ParseError{Parser: parserName, Field: "csv", Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return Grid{}, &parsererror.ParseError{Parser: parserName, Field: "csv", Err: err}
	}
	return Grid{Rows: rows}, nil
}
