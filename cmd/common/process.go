// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"path/filepath"
	"strings"

	"rootedweb/lbs-invoice/internal/container"
	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/models"
	"rootedweb/lbs-invoice/internal/session"
)

// StateExtension marks a saved report rather than a workbook.
const StateExtension = ".json"

// IsStateFile reports whether path names a saved report.
func IsStateFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), StateExtension)
}

// LoadReport builds a report from a workbook, or restores it from a state
// file written by the prepare command.
func LoadReport(c *container.Container, input string) (models.Report, error) {
	if input == "" {
		return models.Report{}, fmt.Errorf("an input file is required (--input)")
	}

	log := c.GetLogger().WithField(logging.FieldFile, input)

	if IsStateFile(input) {
		log.Debug("Restoring report from state file")
		report, err := session.ReadStateFile(input)
		if err != nil {
			return models.Report{}, fmt.Errorf("error loading state file: %w", err)
		}
		return report, nil
	}

	result, err := c.GetParser().Parse(input)
	if err != nil {
		return models.Report{}, err
	}
	return c.GetAggregator().BuildReport(result), nil
}

// DefaultStatePath derives the state file name from the input workbook.
func DefaultStatePath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".state" + StateExtension
}
