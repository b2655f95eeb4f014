package api

import "time"

type Diagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type DenialRecord struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patient_id"`
	PayerName    string    `json:"payer_name"`
	Date         time.Time `json:"date"`
	DenialAmount float64   `json:"denial_amount"`
	DenialReason string    `json:"denial_reason"`
	InvoiceID    string    `json:"invoice_id"`
}

type WeeklyPoint struct {
	WeekStart string  `json:"week_start"`
	Amount    float64 `json:"amount"`
}

type GroupCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type Summary struct {
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	TotalCount    int           `json:"total_count"`
	TotalAmount   float64       `json:"total_amount"`
	AverageAmount float64       `json:"average_amount"`
	EstimatedRate float64       `json:"estimated_rate"`
	WeeklySeries  []WeeklyPoint `json:"weekly_series"`
	TopReasons    []GroupCount  `json:"top_reasons"`
	TopPayers     []GroupCount  `json:"top_payers"`
	Diagnostics   []Diagnostic  `json:"diagnostics,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
