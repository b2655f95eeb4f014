// Package normalize turns raw payment lines into denial records.
package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/models/source"
)

const deniedStatus = "denied"

// Result carries the normalized records together with the count of records
// skipped because their date could not be parsed.
type Result struct {
	Records []domain.DenialRecord
	Dropped int
}

// Records filters raw payment lines down to denied claims and derives the
// normalized fields. Relative input order is preserved.
//
// A record is a denial when its status equals "denied" case-insensitively.
// Some upstream feeds also mark any line with a positive adjustment amount as
// a denial; that convention is intentionally not honored here so the working
// set stays consistent across sources.
func Records(raw []source.PaymentRecord, payerFilter string) Result {
	payerFilter = strings.TrimSpace(payerFilter)

	var out Result
	for _, r := range raw {
		if !strings.EqualFold(strings.TrimSpace(r.Status), deniedStatus) {
			continue
		}

		date, ok := ParseDate(r.CreatedAt)
		if !ok {
			date, ok = ParseDate(r.Date)
		}
		if !ok {
			// Unparseable dates drop the record, not the batch.
			out.Dropped++
			continue
		}

		if payerFilter != "" && !containsFold(r.PayerName, payerFilter) {
			continue
		}

		var amount float64
		if r.AdjustmentAmount != nil {
			amount = math.Abs(*r.AdjustmentAmount)
		}

		out.Records = append(out.Records, domain.DenialRecord{
			ID:           r.ID.String(),
			PatientID:    r.PatientID,
			PayerName:    r.PayerName,
			Date:         date,
			DenialAmount: amount,
			DenialReason: r.DenialReason,
			InvoiceID:    r.InvoiceID,
		})
	}
	return out
}

// FilterByPayer applies the case-insensitive payer substring filter to an
// already-normalized set. An empty filter returns the input unchanged.
func FilterByPayer(records []domain.DenialRecord, payerFilter string) []domain.DenialRecord {
	payerFilter = strings.TrimSpace(payerFilter)
	if payerFilter == "" {
		return records
	}
	var out []domain.DenialRecord
	for _, r := range records {
		if containsFold(r.PayerName, payerFilter) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByDateRange keeps records whose date falls within [start, end]
// inclusive. The remote API already scopes server-side, but the synthetic
// fixture does not, so the pipeline applies this uniformly.
func FilterByDateRange(records []domain.DenialRecord, start, end time.Time) []domain.DenialRecord {
	var out []domain.DenialRecord
	for _, r := range records {
		day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(start) || day.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
