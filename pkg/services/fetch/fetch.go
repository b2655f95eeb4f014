// Package fetch retrieves raw payment records from a configured data source.
package fetch

import (
	"context"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/models/source"
)

// Fetcher returns raw payment records for a filter tuple. Transport and API
// failures never surface as errors: the fetcher absorbs them and reports an
// empty record set plus an error-severity diagnostic. The error return is
// reserved for programming mistakes (nil config, unusable base URL).
type Fetcher interface {
	FetchPayments(ctx context.Context, params domain.FilterParams) ([]source.PaymentRecord, []domain.Diagnostic, error)
}

// DataSource selects between the remote API and the synthetic fixture.
type DataSource string

const (
	SourceRemoteAPI DataSource = "remote"
	SourceSynthetic DataSource = "synthetic"
)
