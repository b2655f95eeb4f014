package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/models/source"
)

const (
	paymentsPath   = "/v2/payments"
	defaultTimeout = 20 * time.Second
	defaultLimit   = 1000
)

// RemoteConfig holds the credential and endpoint for the payments API.
type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Limit   int
}

type remoteFetcher struct {
	cfg    RemoteConfig
	client *http.Client
}

// NewRemote creates a Fetcher backed by the remote payments API.
func NewRemote(cfg RemoteConfig) (Fetcher, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote fetcher requires a base URL")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("remote fetcher requires an API key")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaultLimit
	}
	return &remoteFetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (f *remoteFetcher) FetchPayments(
	ctx context.Context,
	params domain.FilterParams,
) ([]source.PaymentRecord, []domain.Diagnostic, error) {
	logger := zerolog.Ctx(ctx)

	endpoint := f.cfg.BaseURL + paymentsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build payments request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.cfg.APIKey)

	q := req.URL.Query()
	q.Set("start_date", params.StartDate.Format("2006-01-02"))
	q.Set("end_date", params.EndDate.Format("2006-01-02"))
	q.Set("limit", strconv.Itoa(f.cfg.Limit))
	if params.Payer != "" {
		q.Set("payer", params.Payer)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := f.client.Do(req)
	if err != nil {
		// Timeout, DNS, connection refused: absorbed here, never a crash.
		logger.Error().Err(err).Str("endpoint", endpoint).Msg("payments request failed")
		return nil, []domain.Diagnostic{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Connection error: %v", err),
		}}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, []domain.Diagnostic{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Connection error: %v", err),
		}}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error().Int("status", resp.StatusCode).Msg("payments API returned non-success status")
		return nil, []domain.Diagnostic{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("API Error %d: %s", resp.StatusCode, string(body)),
		}}, nil
	}

	var envelope source.PaymentsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, []domain.Diagnostic{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("API Error: unreadable response body: %v", err),
		}}, nil
	}

	logger.Debug().Int("records", len(envelope.Data)).Msg("payments fetched")
	return envelope.Data, nil, nil
}
