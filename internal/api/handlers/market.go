package handlers

import (
	"context"
	"net/http"

	"chainboard/internal/services/overview"
)

const (
	defaultNewsLimit = 10
	maxNewsLimit     = 50
)

// MarketService is the slice of the overview service the handlers need
type MarketService interface {
	Price(ctx context.Context) overview.PriceResponse
	FearGreed(ctx context.Context) overview.FearGreedResponse
	News(ctx context.Context, limit int) overview.NewsResponse
	Distribution(ctx context.Context) overview.DistributionResponse
	Overview(ctx context.Context) overview.OverviewResponse
}

// MarketHandler serves the feed-backed market data endpoints. These never
// return upstream errors; the service substitutes sample payloads instead.
type MarketHandler struct {
	svc MarketService
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(svc MarketService) *MarketHandler {
	return &MarketHandler{svc: svc}
}

// HandlePrice serves GET /api/v1/price
func (h *MarketHandler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Price(r.Context()))
}

// HandleFearGreed serves GET /api/v1/feargreed
func (h *MarketHandler) HandleFearGreed(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.FearGreed(r.Context()))
}

// HandleNews serves GET /api/v1/news
func (h *MarketHandler) HandleNews(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		respondError(w, err)
		return
	}
	if limit <= 0 {
		limit = defaultNewsLimit
	}
	if limit > maxNewsLimit {
		limit = maxNewsLimit
	}
	respondJSON(w, http.StatusOK, h.svc.News(r.Context(), limit))
}

// HandleDistribution serves GET /api/v1/distribution
func (h *MarketHandler) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Distribution(r.Context()))
}

// HandleOverview serves GET /api/v1/overview
func (h *MarketHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Overview(r.Context()))
}
