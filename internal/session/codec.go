// Package session keeps the aggregated report between the upload and the
// generate steps. Values are stored encoded so each reader works on its own
// copy.
package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"rootedweb/lbs-invoice/internal/aggregator"
	"rootedweb/lbs-invoice/internal/fileutils"
	"rootedweb/lbs-invoice/internal/models"
)

// ExpiredMessage is shown when the report is no longer available.
const ExpiredMessage = "Session expired. Please upload the file again."

// ErrExpired is returned when no report is held for the caller.
var ErrExpired = errors.New("session expired")

// EncodeReport serialises a report.
func EncodeReport(report models.Report) ([]byte, error) {
	data, err := sonic.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("error encoding report: %w", err)
	}
	return data, nil
}

// DecodeReport restores a report and recomputes its line identifiers.
func DecodeReport(data []byte) (models.Report, error) {
	var report models.Report
	if err := sonic.Unmarshal(data, &report); err != nil {
		return models.Report{}, fmt.Errorf("error decoding report: %w", err)
	}
	aggregator.AssignLineIDs(&report)
	return report, nil
}

// WriteStateFile stores a report for a later generate run.
func WriteStateFile(path string, report models.Report) error {
	data, err := EncodeReport(report)
	if err != nil {
		return err
	}
	return fileutils.WriteFileAtomic(path, data, 0o600)
}

// ReadStateFile loads a report written by WriteStateFile. A missing file
// reports ErrExpired.
func ReadStateFile(path string) (models.Report, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied state file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Report{}, fmt.Errorf("%w: no state file at %s", ErrExpired, path)
		}
		return models.Report{}, fmt.Errorf("error reading state file: %w", err)
	}
	return DecodeReport(data)
}
