package adapters

import (
	"github.com/rcm-tools/denial-atlas/pkg/models/api"
	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
)

func MapDenialRecordDomainToApi(r domain.DenialRecord) api.DenialRecord {
	return api.DenialRecord{
		ID:           r.ID,
		PatientID:    r.PatientID,
		PayerName:    r.PayerName,
		Date:         r.Date,
		DenialAmount: r.DenialAmount,
		DenialReason: r.DenialReason,
		InvoiceID:    r.InvoiceID,
	}
}

func MapDiagnosticDomainToApi(d domain.Diagnostic) api.Diagnostic {
	return api.Diagnostic{
		Severity: string(d.Severity),
		Message:  d.Message,
	}
}

func MapSnapshotDomainToApi(result domain.PipelineResult) api.Summary {
	s := result.Snapshot

	summary := api.Summary{
		StartDate:     s.Period.Start.Format("2006-01-02"),
		EndDate:       s.Period.End.Format("2006-01-02"),
		TotalCount:    s.TotalCount,
		TotalAmount:   s.TotalAmount,
		AverageAmount: s.AverageAmount,
		EstimatedRate: s.EstimatedRate,
		WeeklySeries:  []api.WeeklyPoint{},
		TopReasons:    []api.GroupCount{},
		TopPayers:     []api.GroupCount{},
	}

	for _, p := range s.WeeklySeries {
		summary.WeeklySeries = append(summary.WeeklySeries, api.WeeklyPoint{
			WeekStart: p.WeekStart.Format("2006-01-02"),
			Amount:    p.Amount,
		})
	}
	for _, g := range s.TopReasons {
		summary.TopReasons = append(summary.TopReasons, api.GroupCount{Value: g.Value, Count: g.Count})
	}
	for _, g := range s.TopPayers {
		summary.TopPayers = append(summary.TopPayers, api.GroupCount{Value: g.Value, Count: g.Count})
	}
	for _, d := range result.Diagnostics {
		summary.Diagnostics = append(summary.Diagnostics, MapDiagnosticDomainToApi(d))
	}

	return summary
}
