package aggregator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/models"
	"rootedweb/lbs-invoice/internal/sheetparser"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func hours(segment, project, qty, rate, amount string) models.LedgerEntry {
	return models.LedgerEntry{
		Segment:        segment,
		Project:        project,
		Description:    "Development",
		Type:           "Hours",
		Quantity:       dec(qty),
		UnitRate:       dec(rate),
		BillableAmount: dec(amount),
	}
}

func promoted(segment, project, comment string) models.LedgerEntry {
	return models.LedgerEntry{
		Segment:        segment,
		Project:        project,
		Description:    models.SentinelDescription,
		Comments:       comment,
		Quantity:       dec("3"),
		UnitRate:       dec("95"),
		BillableAmount: dec("285"),
	}
}

func expense(segment, project, comment, amount string) models.LedgerEntry {
	return models.LedgerEntry{
		Segment:        segment,
		Project:        project,
		Description:    "Printing",
		Type:           models.SentinelExpenseType,
		Comments:       comment,
		BillableAmount: dec(amount),
	}
}

func newTestAggregator() *Aggregator {
	return New(logging.NewMockLogger())
}

func labels(lines []models.RenderLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Label()
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		entry    models.LedgerEntry
		expected entryClass
	}{
		{"sentinel with comment", promoted("S", "P", "note"), classPromoted},
		{"sentinel without comment", models.LedgerEntry{Description: models.SentinelDescription}, classHours},
		{"expense with comment", expense("S", "P", "Stock photos", "40"), classExpense},
		{"expense without comment", models.LedgerEntry{Type: models.SentinelExpenseType}, classHours},
		{"sentinel expense prefers promotion", models.LedgerEntry{Description: models.SentinelDescription, Type: models.SentinelExpenseType, Comments: "x"}, classPromoted},
		{"case sensitive sentinel", models.LedgerEntry{Description: "rooted web", Comments: "x"}, classHours},
		{"labor", hours("S", "P", "1", "95", "95"), classHours},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classify(tc.entry), tc.expected.String())
		})
	}
}

func TestAggregate_EndToEndScenario(t *testing.T) {
	entries := []models.LedgerEntry{
		hours("Web", "Site", "2", "95", "190"),
		promoted("Web", "Site", "Monthly retainer covers hosting"),
		hours("Web", "Site", "1.5", "95", "142.50"),
		expense("Web", "Site", "Stock photos", "40"),
		hours("Web", "Site", "0.5", "120", "60"),
	}

	sections := newTestAggregator().Aggregate(entries)
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Projects, 1)
	project := sections[0].Projects[0]

	assert.Equal(t, []string{
		"Monthly retainer covers hosting",
		"- 3.50 hours @ $95.00/hr",
		"- 0.50 hour @ $120.00/hr",
		"- $40.00",
		"• Stock photos",
	}, labels(project.Lines))

	assert.Equal(t, models.LineFreeText, project.Lines[0].Kind)
	assert.Equal(t, models.LineAggregateHours, project.Lines[1].Kind)
	assert.True(t, dec("3.5").Equal(project.Lines[1].Quantity))
	assert.Equal(t, models.LineExpenseAmount, project.Lines[3].Kind)
	assert.Equal(t, models.LineExpenseDetail, project.Lines[4].Kind)

	report := models.Report{Sections: sections}
	assert.Len(t, Lines(report), 4, "expense and its description form one reviewable item")

	assert.True(t, dec("432.50").Equal(project.Subtotal), project.Subtotal.String())
	assert.True(t, dec("432.50").Equal(sections[0].Subtotal))
	assert.Len(t, project.Entries, 5)
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	entries := []models.LedgerEntry{
		hours("Seg B", "P2", "1", "10", "10"),
		hours("Seg A", "P1", "1", "10", "10"),
		hours("Seg B", "P1", "1", "10", "10"),
		hours("Seg A", "P1", "1", "20", "20"),
		hours("Seg B", "P2", "1", "30", "30"),
	}

	sections := newTestAggregator().Aggregate(entries)
	require.Len(t, sections, 2)
	assert.Equal(t, "Seg B", sections[0].Header)
	assert.Equal(t, "Seg A", sections[1].Header)

	require.Len(t, sections[0].Projects, 2)
	assert.Equal(t, "P2", sections[0].Projects[0].Name)
	assert.Equal(t, "P1", sections[0].Projects[1].Name)
	assert.Len(t, sections[0].Projects[0].Entries, 2)
	assert.True(t, dec("30").Equal(sections[0].Projects[0].Entries[1].UnitRate))

	assert.True(t, dec("50").Equal(sections[0].Subtotal))
	assert.True(t, dec("30").Equal(sections[1].Subtotal))
}

func TestAggregate_RateGrouping(t *testing.T) {
	entries := []models.LedgerEntry{
		hours("S", "P", "1", "120", "120"),
		hours("S", "P", "2", "95.00", "190"),
		hours("S", "P", "0.25", "120.0", "30"),
		hours("S", "P", "1", "95", "95"),
	}

	lines := newTestAggregator().Aggregate(entries)[0].Projects[0].Lines
	require.Len(t, lines, 2)
	assert.True(t, dec("120").Equal(lines[0].Rate))
	assert.True(t, dec("1.25").Equal(lines[0].Quantity))
	assert.True(t, dec("95").Equal(lines[1].Rate))
	assert.True(t, dec("3").Equal(lines[1].Quantity))
}

func TestAggregate_Pluralization(t *testing.T) {
	tests := []struct {
		qty      string
		expected string
	}{
		{"1.0", "- 1.00 hour @ $95.00/hr"},
		{"1.01", "- 1.01 hours @ $95.00/hr"},
		{"0.5", "- 0.50 hour @ $95.00/hr"},
		{"0.99", "- 0.99 hour @ $95.00/hr"},
	}

	for _, tc := range tests {
		t.Run(tc.qty, func(t *testing.T) {
			lines := newTestAggregator().Aggregate([]models.LedgerEntry{hours("S", "P", tc.qty, "95", "0")})[0].Projects[0].Lines
			require.Len(t, lines, 1)
			assert.Equal(t, tc.expected, lines[0].Label())
		})
	}
}

func TestAggregate_PromotedLastMatchWins(t *testing.T) {
	entries := []models.LedgerEntry{
		promoted("S", "P", "first"),
		hours("S", "P", "1", "50", "50"),
		promoted("S", "P", "second"),
	}

	project := newTestAggregator().Aggregate(entries)[0].Projects[0]
	require.Len(t, project.Lines, 2)
	assert.Equal(t, "second", project.Lines[0].Label())
	assert.True(t, dec("50").Equal(project.Subtotal), "promoted rows contribute no amount")
}

func TestAggregate_MultipleExpensesKept(t *testing.T) {
	entries := []models.LedgerEntry{
		expense("S", "P", "Stock photos", "40"),
		hours("S", "P", "1", "50", "50"),
		expense("S", "P", "Courier", "-12.5"),
	}

	project := newTestAggregator().Aggregate(entries)[0].Projects[0]
	assert.Equal(t, []string{
		"- 1.00 hour @ $50.00/hr",
		"- $40.00",
		"• Stock photos",
		"- -$12.50",
		"• Courier",
	}, labels(project.Lines))
	assert.True(t, dec("77.5").Equal(project.Subtotal))
}

func TestAggregate_SectionNotes(t *testing.T) {
	sections := newTestAggregator().Aggregate([]models.LedgerEntry{
		hours("Graphic Design", "Logo", "1", "80", "80"),
		hours("Web", "Site", "1", "80", "80"),
		hours("Graphic Production", "Flyer", "1", "80", "80"),
	})

	require.Len(t, sections, 3)
	assert.Equal(t, models.GraphicsNote, sections[0].Note)
	assert.Equal(t, "", sections[1].Note)
	assert.Equal(t, models.GraphicsNote, sections[2].Note)
}

func TestAggregate_LineIDs(t *testing.T) {
	entries := []models.LedgerEntry{
		promoted("Web", "Site", "note"),
		hours("Web", "Site", "1", "95", "95"),
		expense("Web", "Site", "Fonts", "20"),
	}

	a := newTestAggregator()
	first := a.Aggregate(entries)
	second := a.Aggregate(entries)
	assert.Equal(t, first, second)

	lines := first[0].Projects[0].Lines
	for i, line := range lines {
		assert.Equal(t, i, line.Index)
		assert.Equal(t, models.NewLineID("Web", "Site", i), line.ID)
	}

	seen := make(map[models.LineID]bool)
	for _, line := range lines {
		assert.False(t, seen[line.ID])
		seen[line.ID] = true
	}
}

func TestAssignLineIDs(t *testing.T) {
	report := models.Report{
		Sections: newTestAggregator().Aggregate([]models.LedgerEntry{
			hours("Web", "Site", "1", "95", "95"),
			expense("Web", "Site", "Fonts", "20"),
		}),
	}
	expected := report.Sections[0].Projects[0].Lines[2].ID

	for i := range report.Sections[0].Projects[0].Lines {
		report.Sections[0].Projects[0].Lines[i].ID = ""
		report.Sections[0].Projects[0].Lines[i].Index = 0
	}
	AssignLineIDs(&report)

	assert.Equal(t, expected, report.Sections[0].Projects[0].Lines[2].ID)
	assert.Equal(t, 2, report.Sections[0].Projects[0].Lines[2].Index)
}

func TestLines(t *testing.T) {
	report := models.Report{
		Sections: newTestAggregator().Aggregate([]models.LedgerEntry{
			hours("Web", "Site", "1", "95", "95"),
			expense("Web", "Site", "Fonts", "20"),
			hours("Print", "Flyer", "2", "60", "120"),
		}),
	}

	lines := Lines(report)
	require.Len(t, lines, 3)
	assert.Equal(t, "Web", lines[0].Segment)
	assert.Equal(t, models.LineExpenseAmount, lines[1].Line.Kind)
	assert.Equal(t, "• Fonts", lines[1].Detail)
	assert.Equal(t, models.NewLineID("Web", "Site", 1), lines[1].Line.ID)
	assert.Equal(t, "Print", lines[2].Segment)
	assert.Equal(t, "Flyer", lines[2].Project)
}

func TestBuildReport(t *testing.T) {
	result := &sheetparser.Result{
		Entries:    []models.LedgerEntry{hours("Web", "Site", "2", "95", "190")},
		Period:     "March 2024",
		OutputName: models.OutputName("March 2024"),
	}

	logger := logging.NewMockLogger()
	report := New(logger).BuildReport(result)

	assert.Equal(t, "March 2024", report.Period)
	assert.Equal(t, "LBS_Invoice_Report_March 2024.pdf", report.OutputName)
	assert.Equal(t, "LBS Invoice Report - March 2024", report.Title())
	assert.True(t, dec("190").Equal(report.Total()))
	assert.True(t, logger.HasEntry("INFO", "Aggregated invoice report"))
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, newTestAggregator().Aggregate(nil))
}
