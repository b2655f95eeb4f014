package denials

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/models/source"
	"github.com/rcm-tools/denial-atlas/pkg/services/fetch"
)

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) FetchPayments(
	ctx context.Context,
	params domain.FilterParams,
) ([]source.PaymentRecord, []domain.Diagnostic, error) {
	args := m.Called(ctx, params)
	var records []source.PaymentRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]source.PaymentRecord)
	}
	var diagnostics []domain.Diagnostic
	if args.Get(1) != nil {
		diagnostics = args.Get(1).([]domain.Diagnostic)
	}
	return records, diagnostics, args.Error(2)
}

func decemberParams(payer string) domain.FilterParams {
	return domain.FilterParams{
		StartDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Payer:     payer,
	}
}

func TestAnalyze_SyntheticFixtureTotals(t *testing.T) {
	ctrl := NewController(fetch.NewSyntheticFixture(), AnalyzerSettings{})

	result, err := ctrl.Analyze(context.Background(), decemberParams(""))
	assert.NoError(t, err)

	s := result.Snapshot
	assert.Equal(t, 60, s.TotalCount)
	assert.Equal(t, 21720.0, s.TotalAmount)
	assert.InDelta(t, 362.00, s.AverageAmount, 1e-9)

	// The fixture always announces demo mode.
	assert.Len(t, result.Diagnostics, 1)
	assert.Equal(t, domain.SeverityWarning, result.Diagnostics[0].Severity)

	var weeklySum float64
	for _, p := range s.WeeklySeries {
		weeklySum += p.Amount
	}
	assert.InDelta(t, s.TotalAmount, weeklySum, 1e-9)
}

func TestAnalyze_PayerFilter(t *testing.T) {
	ctrl := NewController(fetch.NewSyntheticFixture(), AnalyzerSettings{})

	for _, filter := range []string{"medicare", "MEDICARE"} {
		result, err := ctrl.Analyze(context.Background(), decemberParams(filter))
		assert.NoError(t, err)

		s := result.Snapshot
		assert.Equal(t, 24, s.TotalCount, "filter %q", filter)
		assert.Equal(t, 8820.0, s.TotalAmount, "filter %q", filter)
		for _, r := range s.Records {
			assert.Equal(t, "Medicare", r.PayerName)
		}
	}
}

func TestAnalyze_EmptyDateRange(t *testing.T) {
	ctrl := NewController(fetch.NewSyntheticFixture(), AnalyzerSettings{})

	result, err := ctrl.Analyze(context.Background(), domain.FilterParams{
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	s := result.Snapshot
	assert.Equal(t, 0, s.TotalCount)
	assert.Equal(t, 0.0, s.AverageAmount)
	assert.Empty(t, s.WeeklySeries)

	var found bool
	for _, d := range result.Diagnostics {
		if d.Severity == domain.SeverityInfo {
			found = true
		}
	}
	assert.True(t, found, "expected an informational empty-result diagnostic")
	assert.False(t, result.HasErrors())
}

func TestAnalyze_UpstreamFailureBehavesLikeEmptySet(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchPayments", mock.Anything, mock.Anything).Return(
		nil,
		[]domain.Diagnostic{{Severity: domain.SeverityError, Message: "API Error 500: upstream exploded"}},
		nil,
	)

	ctrl := NewController(fetcher, AnalyzerSettings{})
	result, err := ctrl.Analyze(context.Background(), decemberParams(""))

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Snapshot.TotalCount)
	assert.True(t, result.HasErrors())
	assert.Contains(t, result.Diagnostics[0].Message, "500")
	fetcher.AssertExpectations(t)
}

func TestAnalyze_UnparseableDatesAreDroppedAndCounted(t *testing.T) {
	bad := func(v float64) *float64 { return &v }
	fetcher := new(mockFetcher)
	fetcher.On("FetchPayments", mock.Anything, mock.Anything).Return(
		[]source.PaymentRecord{
			{ID: "1", Status: "denied", CreatedAt: "2025-12-09", AdjustmentAmount: bad(-100), PayerName: "Medicare"},
			{ID: "2", Status: "denied", CreatedAt: "garbage", AdjustmentAmount: bad(-200), PayerName: "Aetna"},
		},
		nil, nil,
	)

	ctrl := NewController(fetcher, AnalyzerSettings{})
	result, err := ctrl.Analyze(context.Background(), decemberParams(""))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Snapshot.TotalCount)

	var warned bool
	for _, d := range result.Diagnostics {
		if d.Severity == domain.SeverityWarning {
			warned = true
			assert.Contains(t, d.Message, "1")
		}
	}
	assert.True(t, warned)
}

func TestAnalyze_RejectsInvertedRange(t *testing.T) {
	ctrl := NewController(fetch.NewSyntheticFixture(), AnalyzerSettings{})

	_, err := ctrl.Analyze(context.Background(), domain.FilterParams{
		StartDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Error(t, err)
}
