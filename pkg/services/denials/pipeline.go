package denials

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/services/fetch"
	"github.com/rcm-tools/denial-atlas/pkg/services/normalize"
)

// Controller runs the fetch -> normalize -> aggregate pipeline for a filter
// tuple. It is the single entry point both runtimes build on.
type Controller struct {
	fetcher  fetch.Fetcher
	settings AnalyzerSettings
}

// NewController creates a pipeline controller over the given fetcher.
func NewController(fetcher fetch.Fetcher, settings AnalyzerSettings) *Controller {
	return &Controller{
		fetcher:  fetcher,
		settings: settings.withDefaults(),
	}
}

// Analyze produces the aggregate snapshot for one filter tuple. Upstream
// transport and API failures come back as error-severity diagnostics with an
// empty snapshot; the error return is reserved for invalid arguments.
func (c *Controller) Analyze(ctx context.Context, params domain.FilterParams) (domain.PipelineResult, error) {
	logger := zerolog.Ctx(ctx)

	if params.EndDate.Before(params.StartDate) {
		return domain.PipelineResult{}, fmt.Errorf("end date %s precedes start date %s",
			params.EndDate.Format("2006-01-02"), params.StartDate.Format("2006-01-02"))
	}

	period := domain.TimePeriod{
		Start:    params.StartDate,
		End:      params.EndDate,
		Duration: int(params.EndDate.Sub(params.StartDate).Hours()/24) + 1,
	}

	raw, diagnostics, err := c.fetcher.FetchPayments(ctx, params)
	if err != nil {
		return domain.PipelineResult{}, fmt.Errorf("fetch payments: %w", err)
	}

	normalized := normalize.Records(raw, params.Payer)
	if normalized.Dropped > 0 {
		logger.Warn().Int("dropped", normalized.Dropped).Msg("skipped records with unparseable dates")
		diagnostics = append(diagnostics, domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Skipped %d record(s) with unparseable dates", normalized.Dropped),
		})
	}

	records := normalize.FilterByDateRange(normalized.Records, params.StartDate, params.EndDate)

	if len(records) == 0 {
		diagnostics = append(diagnostics, domain.Diagnostic{
			Severity: domain.SeverityInfo,
			Message:  "No denials found in the selected date range.",
		})
	}

	snapshot := Snapshot(records, period, c.settings)
	logger.Info().
		Int("total_count", snapshot.TotalCount).
		Float64("total_amount", snapshot.TotalAmount).
		Msg("denials analyzed")

	return domain.PipelineResult{
		Snapshot:    snapshot,
		Diagnostics: diagnostics,
	}, nil
}

// RecordsByDateDesc returns a copy of the snapshot records sorted newest
// first, the order the detail table displays.
func RecordsByDateDesc(records []domain.DenialRecord) []domain.DenialRecord {
	sorted := make([]domain.DenialRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}
