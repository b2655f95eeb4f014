package domain

import "time"

// Report is the renderable form of an analysis, consumed by the terminal
// reporters.
type Report struct {
	Title       string
	Period      TimePeriod
	Sections    []ReportSection
	TotalAmount float64
	Currency    string
}

// TimePeriod represents the queried time range.
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report.
type ReportSection struct {
	Title   string
	Summary map[string]string
	Details []ReportDetail
}

// ReportDetail represents one line within a section.
type ReportDetail struct {
	Name        string
	Value       string
	Description string
}
