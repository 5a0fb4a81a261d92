package aggregator

import "rootedweb/lbs-invoice/internal/models"

// entryClass is the line treatment an entry receives within its project.
type entryClass int

const (
	classHours entryClass = iota
	classPromoted
	classExpense
)

func (c entryClass) String() string {
	switch c {
	case classPromoted:
		return "promoted"
	case classExpense:
		return "expense"
	default:
		return "hours"
	}
}

type rule struct {
	class entryClass
	match func(models.LedgerEntry) bool
}

// classificationRules are evaluated in order; the first match wins and an
// entry matching none is billed as hours.
var classificationRules = []rule{
	{
		class: classPromoted,
		match: func(e models.LedgerEntry) bool {
			return e.Description == models.SentinelDescription && e.Comments != ""
		},
	},
	{
		class: classExpense,
		match: func(e models.LedgerEntry) bool {
			return e.Type == models.SentinelExpenseType && e.Comments != ""
		},
	},
}

func classify(e models.LedgerEntry) entryClass {
	for _, r := range classificationRules {
		if r.match(e) {
			return r.class
		}
	}
	return classHours
}
