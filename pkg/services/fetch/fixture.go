package fetch

import (
	"context"
	"encoding/json"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/models/source"
)

// fixtureReplication simulates production volume from the five base rows.
const fixtureReplication = 12

func amount(v float64) *float64 { return &v }

// fixtureRecords are the canonical sample denials used when no API key is
// configured. They share the wire shape of the remote source so everything
// downstream behaves identically.
var fixtureRecords = []source.PaymentRecord{
	{ID: json.Number("101"), PatientID: "PT-1001", PayerName: "Medicare", Status: "denied",
		CreatedAt: "2025-12-09", AdjustmentAmount: amount(-425.00),
		DenialReason: "CO-97: Duplicate", InvoiceID: "INV-8401"},
	{ID: json.Number("102"), PatientID: "PT-1005", PayerName: "Blue Cross", Status: "denied",
		CreatedAt: "2025-12-08", AdjustmentAmount: amount(-180.00),
		DenialReason: "PR-96: Non-covered", InvoiceID: "INV-8405"},
	{ID: json.Number("103"), PatientID: "PT-1012", PayerName: "Aetna", Status: "denied",
		CreatedAt: "2025-12-07", AdjustmentAmount: amount(-720.00),
		DenialReason: "CO-45: Charge exceeds fee", InvoiceID: "INV-8412"},
	{ID: json.Number("104"), PatientID: "PT-1008", PayerName: "Medicare", Status: "denied",
		CreatedAt: "2025-12-06", AdjustmentAmount: amount(-310.00),
		DenialReason: "CO-16: Missing info", InvoiceID: "INV-8408"},
	{ID: json.Number("105"), PatientID: "PT-1020", PayerName: "UnitedHealthcare", Status: "denied",
		CreatedAt: "2025-12-05", AdjustmentAmount: amount(-95.00),
		DenialReason: "OA-23: Prior payer paid", InvoiceID: "INV-8420"},
}

type fixtureFetcher struct{}

// NewSyntheticFixture creates a Fetcher that serves a fixed, reproducible
// sample data set without any network access.
func NewSyntheticFixture() Fetcher {
	return fixtureFetcher{}
}

func (fixtureFetcher) FetchPayments(
	_ context.Context,
	_ domain.FilterParams,
) ([]source.PaymentRecord, []domain.Diagnostic, error) {
	records := make([]source.PaymentRecord, 0, len(fixtureRecords)*fixtureReplication)
	for i := 0; i < fixtureReplication; i++ {
		records = append(records, fixtureRecords...)
	}
	return records, []domain.Diagnostic{{
		Severity: domain.SeverityWarning,
		Message:  "Running in demo mode – showing sample data (no API key configured)",
	}}, nil
}
