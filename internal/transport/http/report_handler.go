// Package http exposes the compiled reports over a JSON API.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"retailpulse/internal/analytics"
	"retailpulse/internal/dataset"
	"retailpulse/internal/forecast"
)

// ReportHandler serves the analytics and forecast reports computed over one
// immutable dataset snapshot. Every request recomputes from the snapshot, so
// repeated calls are deterministic and side-effect free.
type ReportHandler struct {
	ds             *dataset.Dataset
	logger         *slog.Logger
	validate       *validator.Validate
	defaultPeriods int
	maxPeriods     int
}

// NewReportHandler creates the handler for a dataset snapshot.
func NewReportHandler(ds *dataset.Dataset, defaultPeriods, maxPeriods int, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		ds:             ds,
		logger:         logger.With(slog.String("component", "report_handler")),
		validate:       validator.New(),
		defaultPeriods: defaultPeriods,
		maxPeriods:     maxPeriods,
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/kpis", h.GetKPIs)
	r.Get("/rfm", h.GetRFM)
	r.Get("/abc", h.GetABC)
	r.Get("/seasonal", h.GetSeasonal)
	r.Get("/geographic", h.GetGeographic)
	r.Get("/monthly", h.GetMonthly)
	r.Get("/business", h.GetBusinessReport)
	r.Get("/forecast", h.GetForecast)

	return r
}

// GetKPIs returns the headline metrics of the snapshot.
func (h *ReportHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.ds.KPIs())
}

// GetRFM returns the scored customer table. An optional reference query
// parameter (YYYY-MM-DD) overrides the recency anchor.
func (h *ReportHandler) GetRFM(w http.ResponseWriter, r *http.Request) {
	reference, ok := h.parseReference(w, r)
	if !ok {
		return
	}

	report, err := analytics.ComputeRFM(h.ds, reference, h.logger)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// GetABC returns the product revenue-tier classification.
func (h *ReportHandler) GetABC(w http.ResponseWriter, r *http.Request) {
	report, err := analytics.ComputeABC(h.ds, h.logger)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// GetSeasonal returns calendar-dimension patterns and the seasonality score.
func (h *ReportHandler) GetSeasonal(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, analytics.SeasonalPatterns(h.ds))
}

// GetGeographic returns the per-country rollup.
func (h *ReportHandler) GetGeographic(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, analytics.GeographicBreakdown(h.ds))
}

// GetMonthly returns the monthly revenue series fed to the forecaster.
func (h *ReportHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.ds.MonthlySeries())
}

// GetBusinessReport returns the merged decision-support bundle.
func (h *ReportHandler) GetBusinessReport(w http.ResponseWriter, r *http.Request) {
	reference, ok := h.parseReference(w, r)
	if !ok {
		return
	}

	rfm, err := analytics.ComputeRFM(h.ds, reference, h.logger)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, analytics.CompileBusinessReport(h.ds, rfm, h.logger))
}

// GetForecast runs the ensemble forecast. The periods query parameter
// defaults to the configured horizon and is bounded by the configured
// maximum.
func (h *ReportHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	periods := h.defaultPeriods
	if raw := r.URL.Query().Get("periods"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			render.Render(w, r, validationProblem(fmt.Sprintf("periods must be an integer, got %q", raw)))
			return
		}
		periods = parsed
	}

	if err := h.validate.Var(periods, fmt.Sprintf("min=1,max=%d", h.maxPeriods)); err != nil {
		render.Render(w, r, validationProblem(
			fmt.Sprintf("periods must be between 1 and %d, got %d", h.maxPeriods, periods)))
		return
	}

	report, err := forecast.BuildReport(h.ds, periods, h.logger)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (h *ReportHandler) parseReference(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("reference")
	if raw == "" {
		return time.Time{}, true
	}
	reference, err := time.Parse("2006-01-02", raw)
	if err != nil {
		render.Render(w, r, validationProblem(fmt.Sprintf("reference must be YYYY-MM-DD, got %q", raw)))
		return time.Time{}, false
	}
	return reference, true
}

func (h *ReportHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	problem := problemFor(err)
	if problem.Status >= 500 {
		h.logger.ErrorContext(r.Context(), "report request failed", "error", err)
	} else {
		h.logger.WarnContext(r.Context(), "report request rejected", "error", err)
	}
	render.Render(w, r, problem)
}

// HealthHandler reports liveness and snapshot shape.
type HealthHandler struct {
	ds      *dataset.Dataset
	started time.Time
}

// NewHealthHandler creates the health endpoint handler.
func NewHealthHandler(ds *dataset.Dataset) *HealthHandler {
	return &HealthHandler{ds: ds, started: time.Now()}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.Get)
	return r
}

// Get returns status, uptime and dataset dimensions.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":       "healthy",
		"uptime":       time.Since(h.started).String(),
		"transactions": h.ds.Len(),
		"range_start":  h.ds.Start().Format("2006-01-02"),
		"range_end":    h.ds.End().Format("2006-01-02"),
	})
}
