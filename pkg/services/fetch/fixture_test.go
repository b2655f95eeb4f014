package fetch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
)

func TestSyntheticFixture_ShapeAndVolume(t *testing.T) {
	fetcher := NewSyntheticFixture()

	records, diagnostics, err := fetcher.FetchPayments(context.Background(), domain.FilterParams{})
	assert.NoError(t, err)

	assert.Len(t, records, 60)
	assert.Len(t, diagnostics, 1)
	assert.Equal(t, domain.SeverityWarning, diagnostics[0].Severity)

	// Replication preserves the base ordering.
	assert.Equal(t, "101", records[0].ID.String())
	assert.Equal(t, "105", records[4].ID.String())
	assert.Equal(t, "101", records[5].ID.String())

	for _, r := range records {
		assert.Equal(t, "denied", r.Status)
		assert.NotNil(t, r.AdjustmentAmount)
		assert.Negative(t, *r.AdjustmentAmount)
	}
}
