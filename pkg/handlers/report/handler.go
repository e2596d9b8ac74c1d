package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/feature-tracker/pkg/adapters"
	"github.com/de-tools/feature-tracker/pkg/models/api"
	"github.com/de-tools/feature-tracker/pkg/models/domain"
	"github.com/de-tools/feature-tracker/pkg/services/report"
	"github.com/rs/zerolog"
)

const defaultPagePath = "/"

// UsageBuilder builds the bucketed comparison report.
type UsageBuilder interface {
	Build(
		ctx context.Context,
		unit domain.IntervalUnit,
		start, end string,
		pagePath string,
		primaryFeatureCode string,
		comparisonFeatureCodes []string,
	) (*domain.Report, error)
}

// DashboardBuilder builds the full dashboard view.
type DashboardBuilder interface {
	Build(
		ctx context.Context,
		unit domain.IntervalUnit,
		start, end string,
		pagePath string,
		primaryFeatureCode string,
		comparisonFeatureCodes []string,
	) (*domain.Dashboard, error)
}

type Handler struct {
	usage      UsageBuilder
	dashboards DashboardBuilder
}

func NewHandler(usage UsageBuilder, dashboards DashboardBuilder) *Handler {
	return &Handler{
		usage:      usage,
		dashboards: dashboards,
	}
}

type reportQuery struct {
	unit        domain.IntervalUnit
	start       string
	end         string
	pagePath    string
	primary     string
	comparisons []string
}

func parseQuery(r *http.Request) (*reportQuery, error) {
	q := r.URL.Query()

	unit, err := domain.ParseIntervalUnit(q.Get("unit"))
	if err != nil {
		return nil, err
	}

	primary := q.Get("feature")
	if primary == "" {
		return nil, errors.New("query parameter 'feature' is required")
	}

	pagePath := q.Get("page")
	if pagePath == "" {
		pagePath = defaultPagePath
	}

	return &reportQuery{
		unit:        unit,
		start:       q.Get("start"),
		end:         q.Get("end"),
		pagePath:    pagePath,
		primary:     primary,
		comparisons: q["compare"],
	}, nil
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query, err := parseQuery(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	usage, err := h.usage.Build(ctx, query.unit, query.start, query.end,
		query.pagePath, query.primary, query.comparisons)
	if err != nil {
		writeError(ctx, w, statusFor(err), err)
		return
	}

	writeJSON(ctx, w, adapters.MapReportDomainToApi(usage))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query, err := parseQuery(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	dashboard, err := h.dashboards.Build(ctx, query.unit, query.start, query.end,
		query.pagePath, query.primary, query.comparisons)
	if err != nil {
		writeError(ctx, w, statusFor(err), err)
		return
	}

	writeJSON(ctx, w, adapters.MapDashboardDomainToApi(dashboard))
}

func statusFor(err error) int {
	var invalidUnit *domain.InvalidUnitError
	var invalidRange *domain.InvalidRangeError
	var fetchErr *report.MetricFetchError

	switch {
	case errors.As(err, &invalidUnit), errors.As(err, &invalidRange):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	zerolog.Ctx(ctx).Error().
		Err(err).
		Int("status", status).
		Msg("request failed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}
