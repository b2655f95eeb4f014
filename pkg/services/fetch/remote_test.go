package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
)

func testParams() domain.FilterParams {
	return domain.FilterParams{
		StartDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Payer:     "Medicare",
	}
}

func TestRemoteFetcher_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/payments", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "2025-12-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-12-31", r.URL.Query().Get("end_date"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		assert.Equal(t, "Medicare", r.URL.Query().Get("payer"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":101,"patient_id":"PT-1001","payer_name":"Medicare","status":"denied",
			 "created_at":"2025-12-09","adjustment_amount":-425.0,
			 "denial_reason":"CO-97: Duplicate","invoice_id":"INV-8401"}
		]}`))
	}))
	defer srv.Close()

	fetcher, err := NewRemote(RemoteConfig{BaseURL: srv.URL, APIKey: "test-key"})
	assert.NoError(t, err)

	records, diagnostics, err := fetcher.FetchPayments(context.Background(), testParams())
	assert.NoError(t, err)
	assert.Empty(t, diagnostics)
	assert.Len(t, records, 1)
	assert.Equal(t, "101", records[0].ID.String())
	assert.Equal(t, "Medicare", records[0].PayerName)
	assert.Equal(t, -425.0, *records[0].AdjustmentAmount)
}

func TestRemoteFetcher_NonSuccessStatusIsAbsorbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	fetcher, err := NewRemote(RemoteConfig{BaseURL: srv.URL, APIKey: "test-key"})
	assert.NoError(t, err)

	records, diagnostics, err := fetcher.FetchPayments(context.Background(), testParams())
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.Len(t, diagnostics, 1)
	assert.Equal(t, domain.SeverityError, diagnostics[0].Severity)
	assert.Contains(t, diagnostics[0].Message, "500")
	assert.Contains(t, diagnostics[0].Message, "upstream exploded")
}

func TestRemoteFetcher_TransportFailureIsAbsorbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	fetcher, err := NewRemote(RemoteConfig{BaseURL: srv.URL, APIKey: "test-key"})
	assert.NoError(t, err)

	records, diagnostics, err := fetcher.FetchPayments(context.Background(), testParams())
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.Len(t, diagnostics, 1)
	assert.Equal(t, domain.SeverityError, diagnostics[0].Severity)
	assert.Contains(t, diagnostics[0].Message, "Connection error")
}

func TestRemoteFetcher_MalformedBodyIsAbsorbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	fetcher, err := NewRemote(RemoteConfig{BaseURL: srv.URL, APIKey: "test-key"})
	assert.NoError(t, err)

	records, diagnostics, err := fetcher.FetchPayments(context.Background(), testParams())
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.Len(t, diagnostics, 1)
	assert.Equal(t, domain.SeverityError, diagnostics[0].Severity)
}

func TestNewRemote_RequiresCredential(t *testing.T) {
	_, err := NewRemote(RemoteConfig{BaseURL: "https://example.com"})
	assert.Error(t, err)

	_, err = NewRemote(RemoteConfig{APIKey: "k"})
	assert.Error(t, err)
}
