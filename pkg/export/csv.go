// Package export writes normalized denial records to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
)

// Header is the column order of the CSV export.
var Header = []string{"date", "patient_id", "payer_name", "denial_reason", "denial_amount", "invoice_id"}

// WriteCSV writes one row per record in input order. Dates are ISO formatted
// and amounts are raw decimals with two places, no currency formatting.
func WriteCSV(w io.Writer, records []domain.DenialRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.PatientID,
			r.PayerName,
			r.DenialReason,
			strconv.FormatFloat(r.DenialAmount, 'f', 2, 64),
			r.InvoiceID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
