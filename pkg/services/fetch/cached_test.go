package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/models/source"
)

type countingFetcher struct {
	calls int
}

func (c *countingFetcher) FetchPayments(
	_ context.Context,
	_ domain.FilterParams,
) ([]source.PaymentRecord, []domain.Diagnostic, error) {
	c.calls++
	return []source.PaymentRecord{{ID: "1", Status: "denied", CreatedAt: "2025-12-09"}}, nil, nil
}

func cachedParams(payer string) domain.FilterParams {
	return domain.FilterParams{
		StartDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Payer:     payer,
	}
}

func TestCachedFetcher_HitWithinTTL(t *testing.T) {
	inner := &countingFetcher{}
	cached := NewCached(inner, time.Minute)
	ctx := context.Background()

	_, _, err := cached.FetchPayments(ctx, cachedParams(""))
	assert.NoError(t, err)
	records, _, err := cached.FetchPayments(ctx, cachedParams(""))
	assert.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Len(t, records, 1)
}

func TestCachedFetcher_DistinctTuplesMiss(t *testing.T) {
	inner := &countingFetcher{}
	cached := NewCached(inner, time.Minute)
	ctx := context.Background()

	_, _, _ = cached.FetchPayments(ctx, cachedParams(""))
	_, _, _ = cached.FetchPayments(ctx, cachedParams("medicare"))
	// Key normalization: filter casing does not create a new entry.
	_, _, _ = cached.FetchPayments(ctx, cachedParams("MEDICARE"))

	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetcher_ExpiredEntryRefetches(t *testing.T) {
	inner := &countingFetcher{}
	cached := NewCached(inner, time.Minute)

	current := time.Date(2025, 12, 9, 12, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return current }

	ctx := context.Background()
	_, _, _ = cached.FetchPayments(ctx, cachedParams(""))
	assert.Equal(t, 1, inner.calls)

	current = current.Add(2 * time.Minute)
	_, _, _ = cached.FetchPayments(ctx, cachedParams(""))
	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetcher_Invalidate(t *testing.T) {
	inner := &countingFetcher{}
	cached := NewCached(inner, time.Minute)
	ctx := context.Background()

	_, _, _ = cached.FetchPayments(ctx, cachedParams(""))
	cached.Invalidate(cachedParams(""))
	_, _, _ = cached.FetchPayments(ctx, cachedParams(""))

	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetcher_ExpireSweepsStaleEntries(t *testing.T) {
	inner := &countingFetcher{}
	cached := NewCached(inner, time.Minute)

	current := time.Date(2025, 12, 9, 12, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return current }

	ctx := context.Background()
	_, _, _ = cached.FetchPayments(ctx, cachedParams(""))
	_, _, _ = cached.FetchPayments(ctx, cachedParams("medicare"))

	current = current.Add(90 * time.Second)
	_, _, _ = cached.FetchPayments(ctx, cachedParams("aetna"))

	assert.Equal(t, 2, cached.Expire())

	// The fresh entry survives the sweep.
	_, _, _ = cached.FetchPayments(ctx, cachedParams("aetna"))
	assert.Equal(t, 3, inner.calls)
}

func TestRegistry_BuiltInSources(t *testing.T) {
	registry := NewRegistry()
	assert.ElementsMatch(t, []DataSource{SourceRemoteAPI, SourceSynthetic}, registry.Sources())

	fetcher, err := registry.Create(SourceSynthetic, RemoteConfig{})
	assert.NoError(t, err)
	assert.NotNil(t, fetcher)

	_, err = registry.Create(SourceRemoteAPI, RemoteConfig{})
	assert.Error(t, err, "remote source requires a credential")

	_, err = registry.Create("bigquery", RemoteConfig{})
	assert.Error(t, err)
}
