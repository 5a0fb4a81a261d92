// Package models provides the data structures shared by the invoice pipeline:
// parsed ledger entries, the segment/project hierarchy, render lines and the
// serialisable report handed between the review and render steps.
package models
