package handlers

import (
	"context"
	"net/http"
	"strconv"

	"chainboard/internal/chart"
	"chainboard/internal/indicators"
	"chainboard/internal/services/charts"
	"chainboard/pkg/errors"
)

// ChartsService is the slice of the charts service the handlers need
type ChartsService interface {
	MetricChart(ctx context.Context, req charts.MetricChartRequest) (chart.Payload, error)
	IndicatorChart(ctx context.Context, name, timeframe string, customDays int) (chart.Payload, error)
	LatestMVRV(ctx context.Context) (indicators.Classification, error)
	LatestNUPL(ctx context.Context) (indicators.Classification, error)
}

// ChartsHandler serves the metric, indicator and valuation ratio endpoints
type ChartsHandler struct {
	svc ChartsService
}

// NewChartsHandler creates a new charts handler
func NewChartsHandler(svc ChartsService) *ChartsHandler {
	return &ChartsHandler{svc: svc}
}

// HandleMetric serves GET /api/v1/metrics/{name}
//
// Query parameters: timeframe (1m..10y|all|custom), days (with timeframe=custom),
// ma (moving average period), kind (sma|ema), overlay=price, scale=log.
func (h *ChartsHandler) HandleMetric(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := charts.MetricChartRequest{
		Metric:    r.PathValue("name"),
		Timeframe: q.Get("timeframe"),
		MAKind:    q.Get("kind"),
		Overlay:   q.Get("overlay") == "price",
		LogScale:  q.Get("scale") == "log",
	}

	var err error
	if req.CustomDays, err = parseIntParam(q.Get("days"), "days"); err != nil {
		respondError(w, err)
		return
	}
	if req.MAPeriod, err = parseIntParam(q.Get("ma"), "ma"); err != nil {
		respondError(w, err)
		return
	}

	payload, err := h.svc.MetricChart(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payload)
}

// HandleIndicator serves GET /api/v1/indicators/{name} for rsi, macd and bollinger
func (h *ChartsHandler) HandleIndicator(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	days, err := parseIntParam(q.Get("days"), "days")
	if err != nil {
		respondError(w, err)
		return
	}

	payload, err := h.svc.IndicatorChart(r.Context(), r.PathValue("name"), q.Get("timeframe"), days)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payload)
}

// HandleMVRV serves GET /api/v1/mvrv
func (h *ChartsHandler) HandleMVRV(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.LatestMVRV(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// HandleNUPL serves GET /api/v1/nupl
func (h *ChartsHandler) HandleNUPL(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.LatestNUPL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// parseIntParam parses an optional integer query parameter; empty means zero
func parseIntParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
