package domain

import (
	"fmt"
	"strings"
	"time"
)

// DenialRecord is one denied claim line after normalization.
// Records are immutable once normalized; aggregation never mutates them.
type DenialRecord struct {
	ID           string
	PatientID    string
	PayerName    string
	Date         time.Time
	DenialAmount float64 // abs(adjustment_amount), always >= 0
	DenialReason string  // free text, may carry a code prefix like "CO-97"
	InvoiceID    string
}

// FilterParams are the three user-driven inputs that affect aggregation output.
type FilterParams struct {
	StartDate time.Time
	EndDate   time.Time
	Payer     string // case-insensitive substring match, empty = no filter
}

// Key returns the canonical cache key for this filter tuple.
func (f FilterParams) Key() string {
	return fmt.Sprintf("%s|%s|%s",
		f.StartDate.Format("2006-01-02"),
		f.EndDate.Format("2006-01-02"),
		strings.ToLower(strings.TrimSpace(f.Payer)))
}

// GroupCount is one entry of a top-N grouping.
type GroupCount struct {
	Value string
	Count int
}

// WeeklyPoint is one Monday-anchored bucket of the trend series.
type WeeklyPoint struct {
	WeekStart time.Time
	Amount    float64
}

// AggregateSnapshot holds the derived metrics for one filtered record set.
// It is recomputed on every filter change and never persisted.
type AggregateSnapshot struct {
	Period        TimePeriod
	TotalCount    int
	TotalAmount   float64
	AverageAmount float64
	EstimatedRate float64 // total_count / (total_count + baseline), a heuristic
	WeeklySeries  []WeeklyPoint
	TopReasons    []GroupCount
	TopPayers     []GroupCount
	Records       []DenialRecord
}
