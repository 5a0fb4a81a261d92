// Package annotations loads reviewer comments for offline generation and
// exports the annotatable lines of a report for review.
//
// Three file formats are accepted, picked by extension:
//
//	.csv          line_id,comment columns (the export format, extra columns ignored)
//	.yaml / .yml  a mapping of line id to comment
//	.json         an object of line id to comment
package annotations

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"rootedweb/lbs-invoice/internal/aggregator"
	"rootedweb/lbs-invoice/internal/models"
	"rootedweb/lbs-invoice/internal/parsererror"
)

// Format identifies an annotation file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Row is one line of the review CSV.
type Row struct {
	LineID  string `csv:"line_id"`
	Segment string `csv:"segment"`
	Project string `csv:"project"`
	Line    string `csv:"line"`
	Detail  string `csv:"detail"`
	Comment string `csv:"comment"`
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", &parsererror.InvalidFormatError{
			FilePath:       path,
			Extension:      ext,
			ExpectedFormat: "a .csv, .yaml or .json annotation file",
		}
	}
}

// Load reads an annotation file. An empty path yields an empty map.
func Load(path string) (models.AnnotationMap, error) {
	if path == "" {
		return models.AnnotationMap{}, nil
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied annotation file
	if err != nil {
		return nil, fmt.Errorf("error reading annotation file: %w", err)
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode parses annotations in the given format.
func Decode(r io.Reader, format Format) (models.AnnotationMap, error) {
	raw := make(map[string]string)

	switch format {
	case FormatCSV:
		var rows []Row
		if err := gocsv.Unmarshal(r, &rows); err != nil {
			return nil, &parsererror.ParseError{Parser: "annotations", Field: "csv", Err: err}
		}
		for _, row := range rows {
			raw[strings.TrimSpace(row.LineID)] = row.Comment
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return nil, &parsererror.ParseError{Parser: "annotations", Field: "yaml", Err: err}
		}
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("error reading annotations: %w", err)
		}
		if len(bytes.TrimSpace(data)) > 0 {
			if err := sonic.Unmarshal(data, &raw); err != nil {
				return nil, &parsererror.ParseError{Parser: "annotations", Field: "json", Err: err}
			}
		}
	default:
		return nil, fmt.Errorf("unsupported annotation format %q", format)
	}

	return models.NewAnnotationMap(raw), nil
}

// Rows converts review lines into export rows with empty comments.
func Rows(lines []aggregator.ReviewLine) []Row {
	rows := make([]Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, Row{
			LineID:  string(l.Line.ID),
			Segment: l.Segment,
			Project: l.Project,
			Line:    l.Line.Label(),
			Detail:  l.Detail,
		})
	}
	return rows
}

// WriteCSV writes the review lines as a CSV that Load accepts once the
// comment column is filled in.
func WriteCSV(w io.Writer, lines []aggregator.ReviewLine) error {
	rows := Rows(lines)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("error writing review CSV: %w", err)
	}
	return nil
}
