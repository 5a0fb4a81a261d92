package models

// Sentinel values that trigger special line treatment.
const (
	// SentinelDescription marks a row whose comment is promoted to the
	// project's first line.
	SentinelDescription = "Rooted Web"
	// SentinelExpenseType marks an expense row.
	SentinelExpenseType = "Expense"
)

// Report naming.
const (
	ReportTitlePrefix = "LBS Invoice Report"
	OutputNamePrefix  = "LBS_Invoice_Report_"
	OutputNameSuffix  = ".pdf"
)

// GraphicsNote is attached to the graphic design segments.
const GraphicsNote = "Includes graphic design, proofing and project management."

// segmentNotes is a closed lookup table; every other segment has no note.
var segmentNotes = map[string]string{
	"Graphic Design":     GraphicsNote,
	"Graphic Production": GraphicsNote,
}

// SegmentNote returns the fixed advisory note for a segment, or "".
func SegmentNote(segment string) string {
	return segmentNotes[segment]
}

// OutputName builds the artifact file name for a report period.
func OutputName(period string) string {
	return OutputNamePrefix + period + OutputNameSuffix
}

// ReportTitle builds the document title for a report period.
func ReportTitle(period string) string {
	return ReportTitlePrefix + " - " + period
}
