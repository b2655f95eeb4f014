// Package denials computes aggregate metrics over normalized denial records.
package denials

import (
	"sort"
	"time"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
)

const (
	// DefaultTopN bounds the reason and payer groupings.
	DefaultTopN = 8
	// DefaultRateBaseline is the denominator constant of the estimated
	// denial rate. The rate is count/(count+baseline): a rough heuristic,
	// not a true rate, since the full claims universe is unknown here.
	DefaultRateBaseline = 500
)

// AnalyzerSettings tune snapshot computation.
type AnalyzerSettings struct {
	TopN         int
	RateBaseline int
}

func (s AnalyzerSettings) withDefaults() AnalyzerSettings {
	if s.TopN <= 0 {
		s.TopN = DefaultTopN
	}
	if s.RateBaseline <= 0 {
		s.RateBaseline = DefaultRateBaseline
	}
	return s
}

// Snapshot computes the aggregate metrics for one filtered record set. The
// input is never mutated.
func Snapshot(records []domain.DenialRecord, period domain.TimePeriod, settings AnalyzerSettings) domain.AggregateSnapshot {
	settings = settings.withDefaults()

	snapshot := domain.AggregateSnapshot{
		Period:     period,
		TotalCount: len(records),
		Records:    records,
	}

	if len(records) == 0 {
		return snapshot
	}

	for _, r := range records {
		snapshot.TotalAmount += r.DenialAmount
	}
	snapshot.AverageAmount = snapshot.TotalAmount / float64(snapshot.TotalCount)
	snapshot.EstimatedRate = float64(snapshot.TotalCount) / float64(snapshot.TotalCount+settings.RateBaseline)

	snapshot.WeeklySeries = weeklySeries(records)
	snapshot.TopReasons = topValues(records, settings.TopN, func(r domain.DenialRecord) string { return r.DenialReason })
	snapshot.TopPayers = topValues(records, settings.TopN, func(r domain.DenialRecord) string { return r.PayerName })

	return snapshot
}

// weekStart returns the Monday on or before t, truncated to midnight UTC.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// weeklySeries sums denial amounts into Monday-anchored buckets. Weeks with
// no records are omitted, and the result is ordered chronologically.
func weeklySeries(records []domain.DenialRecord) []domain.WeeklyPoint {
	sums := make(map[time.Time]float64)
	for _, r := range records {
		sums[weekStart(r.Date)] += r.DenialAmount
	}

	series := make([]domain.WeeklyPoint, 0, len(sums))
	for start, amount := range sums {
		series = append(series, domain.WeeklyPoint{WeekStart: start, Amount: amount})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].WeekStart.Before(series[j].WeekStart)
	})
	return series
}

// topValues counts occurrences of one string field and returns the n most
// frequent values, descending. Ties keep first-seen input order.
func topValues(records []domain.DenialRecord, n int, key func(domain.DenialRecord) string) []domain.GroupCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		v := key(r)
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	groups := make([]domain.GroupCount, 0, len(order))
	for _, v := range order {
		groups = append(groups, domain.GroupCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
