package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"rootedweb/lbs-invoice/internal/fileutils"
	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/models"
	"rootedweb/lbs-invoice/internal/theme"
)

// Generator renders reports to PDF files.
type Generator struct {
	logoPath string
	logger   logging.Logger
}

// NewGenerator creates a Generator that samples its accent from logoPath.
func NewGenerator(logoPath string, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{logoPath: logoPath, logger: logger}
}

// Accent samples the logo, logging and absorbing any failure.
func (g *Generator) Accent() theme.Accent {
	accent, err := theme.Sample(g.logoPath)
	if err != nil {
		g.logger.WithError(err).WithField(logging.FieldFile, g.logoPath).
			Debug("Using default accent colour")
	}
	return accent
}

// Render writes the PDF for report to w.
func (g *Generator) Render(report models.Report, annotations models.AnnotationMap, w io.Writer) error {
	accent := g.Accent()
	canvas := NewPDFCanvas(report.Title(), accent)
	if err := canvas.LogoError(); err != nil {
		g.logger.WithError(err).WithField(logging.FieldFile, accent.LogoPath).
			Debug("Drawing header without logo")
	}
	NewRenderer(accent).Render(report, annotations, canvas)
	return canvas.Output(w)
}

// Generate renders report and stores it as dir/OutputName. The file only
// appears once the document is complete.
func (g *Generator) Generate(ctx context.Context, report models.Report, annotations models.AnnotationMap, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := g.Render(report, annotations, &buf); err != nil {
		return "", fmt.Errorf("error rendering report: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := report.OutputName
	if name == "" {
		name = models.OutputName(report.Period)
	}
	outputPath := filepath.Join(dir, filepath.Base(name))
	if err := fileutils.WriteFileAtomic(outputPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("error saving report: %w", err)
	}

	g.logger.WithFields(
		logging.F(logging.FieldOutputFile, outputPath),
		logging.F(logging.FieldPeriod, report.Period),
		logging.F(logging.FieldCount, len(annotations)),
		logging.F(logging.FieldDuration, time.Since(start).String()),
	).Info("Generated invoice report")

	return outputPath, nil
}
