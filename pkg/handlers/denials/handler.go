package denials

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcm-tools/denial-atlas/pkg/adapters"
	"github.com/rcm-tools/denial-atlas/pkg/export"
	"github.com/rcm-tools/denial-atlas/pkg/models/api"
	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
)

const (
	dateLayout       = "2006-01-02"
	defaultRangeDays = 30
)

// Pipeline is the slice of the denials controller the handlers depend on.
type Pipeline interface {
	Analyze(ctx context.Context, params domain.FilterParams) (domain.PipelineResult, error)
}

type Handler struct {
	pipeline Pipeline
}

func NewHandler(pipeline Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// parseParams resolves the filter tuple from query parameters, defaulting to
// the trailing 30 days ending today.
func parseParams(r *http.Request) (domain.FilterParams, error) {
	now := time.Now().UTC()
	params := domain.FilterParams{
		StartDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -defaultRangeDays),
		EndDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Payer:     r.URL.Query().Get("payer"),
	}

	var err error
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		params.StartDate, err = time.Parse(dateLayout, raw)
		if err != nil {
			return domain.FilterParams{}, fmt.Errorf("invalid start_date %q", raw)
		}
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		params.EndDate, err = time.Parse(dateLayout, raw)
		if err != nil {
			return domain.FilterParams{}, fmt.Errorf("invalid end_date %q", raw)
		}
	}
	if params.EndDate.Before(params.StartDate) {
		return domain.FilterParams{}, fmt.Errorf("end_date precedes start_date")
	}
	return params, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: msg})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	params, err := parseParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.pipeline.Analyze(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("failed to analyze denials")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapSnapshotDomainToApi(result)); err != nil {
		logger.Error().Err(err).Msg("failed to encode summary")
	}
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	params, err := parseParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.pipeline.Analyze(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("failed to analyze denials")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	response := make([]api.DenialRecord, 0, len(result.Snapshot.Records))
	for _, rec := range result.Snapshot.Records {
		response = append(response, adapters.MapDenialRecordDomainToApi(rec))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode records")
	}
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	params, err := parseParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.pipeline.Analyze(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("failed to analyze denials")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	filename := fmt.Sprintf("denials_%s_%s.csv",
		params.StartDate.Format(dateLayout), params.EndDate.Format(dateLayout))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteCSV(w, result.Snapshot.Records); err != nil {
		logger.Error().Err(err).Msg("failed to write CSV export")
	}
}
