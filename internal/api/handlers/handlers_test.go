package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainboard/internal/chart"
	"chainboard/internal/domain/market"
	"chainboard/internal/indicators"
	"chainboard/internal/services/charts"
	"chainboard/internal/services/chatbot"
	"chainboard/internal/services/explorer"
	"chainboard/internal/services/overview"
	"chainboard/pkg/errors"
)

type fakeCharts struct {
	payload chart.Payload
	err     error
}

func (f *fakeCharts) MetricChart(ctx context.Context, req charts.MetricChartRequest) (chart.Payload, error) {
	return f.payload, f.err
}

func (f *fakeCharts) IndicatorChart(ctx context.Context, name, timeframe string, customDays int) (chart.Payload, error) {
	return f.payload, f.err
}

func (f *fakeCharts) LatestMVRV(ctx context.Context) (indicators.Classification, error) {
	return indicators.Classification{Value: 2.1, Label: "Fair Value"}, f.err
}

func (f *fakeCharts) LatestNUPL(ctx context.Context) (indicators.Classification, error) {
	return indicators.Classification{Value: 0.4, Label: "Optimism"}, f.err
}

func okPayload() chart.Payload {
	return chart.Payload{
		Labels: []string{"Jan 1", "Jan 2"},
		Datasets: []chart.Dataset{
			{Label: "price", Values: []chart.Value{100, 101}},
		},
	}
}

func TestChartsHandler_HandleMetric(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		h := NewChartsHandler(&fakeCharts{payload: okPayload()})

		r := httptest.NewRequest(http.MethodGet, "/api/v1/metrics/price?timeframe=1m", nil)
		r.SetPathValue("name", "price")
		w := httptest.NewRecorder()

		h.HandleMetric(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var payload chart.Payload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, []string{"Jan 1", "Jan 2"}, payload.Labels)
	})

	t.Run("NonIntegerPeriodIsBadRequest", func(t *testing.T) {
		h := NewChartsHandler(&fakeCharts{payload: okPayload()})

		r := httptest.NewRequest(http.MethodGet, "/api/v1/metrics/price?ma=abc", nil)
		r.SetPathValue("name", "price")
		w := httptest.NewRecorder()

		h.HandleMetric(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UnknownTimeframeIsBadRequest", func(t *testing.T) {
		h := NewChartsHandler(&fakeCharts{err: errors.Wrap(errors.ErrUnknownTimeframe, "2w")})

		r := httptest.NewRequest(http.MethodGet, "/api/v1/metrics/price?timeframe=2w", nil)
		r.SetPathValue("name", "price")
		w := httptest.NewRecorder()

		h.HandleMetric(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("WarehouseFailureIsServiceUnavailable", func(t *testing.T) {
		h := NewChartsHandler(&fakeCharts{err: errors.Wrap(errors.ErrWarehouseUnavailable, "query")})

		r := httptest.NewRequest(http.MethodGet, "/api/v1/metrics/price", nil)
		r.SetPathValue("name", "price")
		w := httptest.NewRecorder()

		h.HandleMetric(w, r)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		// internals stay out of the response body
		assert.NotContains(t, w.Body.String(), "query")
	})
}

func TestChartsHandler_Ratios(t *testing.T) {
	h := NewChartsHandler(&fakeCharts{})

	w := httptest.NewRecorder()
	h.HandleMVRV(w, httptest.NewRequest(http.MethodGet, "/api/v1/mvrv", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var c indicators.Classification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, "Fair Value", c.Label)
}

type fakeMarket struct{}

func (fakeMarket) Price(ctx context.Context) overview.PriceResponse {
	return overview.PriceResponse{SpotPrice: market.SpotPrice{PriceUSD: 64250}, Sample: true}
}

func (fakeMarket) FearGreed(ctx context.Context) overview.FearGreedResponse {
	return overview.FearGreedResponse{FearGreedIndex: market.FearGreedIndex{Value: 50, Rating: "Neutral"}}
}

func (fakeMarket) News(ctx context.Context, limit int) overview.NewsResponse {
	articles := make([]market.NewsArticle, limit)
	return overview.NewsResponse{Articles: articles}
}

func (fakeMarket) Distribution(ctx context.Context) overview.DistributionResponse {
	return overview.DistributionResponse{}
}

func (fakeMarket) Overview(ctx context.Context) overview.OverviewResponse {
	return overview.OverviewResponse{}
}

func TestMarketHandler(t *testing.T) {
	h := NewMarketHandler(fakeMarket{})

	t.Run("PriceCarriesSampleFlag", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandlePrice(w, httptest.NewRequest(http.MethodGet, "/api/v1/price", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["sample"])
	})

	t.Run("NewsLimitClamped", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleNews(w, httptest.NewRequest(http.MethodGet, "/api/v1/news?limit=500", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp overview.NewsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Articles, maxNewsLimit)
	})

	t.Run("NewsDefaultLimit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleNews(w, httptest.NewRequest(http.MethodGet, "/api/v1/news", nil))

		var resp overview.NewsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Articles, defaultNewsLimit)
	})
}

type fakeExplorer struct {
	notFound bool
}

func (f *fakeExplorer) RecentBlocks(ctx context.Context, limit int) ([]explorer.BlockView, error) {
	return []explorer.BlockView{}, nil
}

func (f *fakeExplorer) Block(ctx context.Context, height uint64) (*explorer.BlockDetail, error) {
	if f.notFound {
		return nil, errors.Wrapf(errors.ErrNotFound, "block %d", height)
	}
	return &explorer.BlockDetail{}, nil
}

func (f *fakeExplorer) Transaction(ctx context.Context, hash string) (*explorer.TransactionView, error) {
	return &explorer.TransactionView{}, nil
}

func (f *fakeExplorer) Address(ctx context.Context, address string) (*explorer.AddressView, error) {
	return &explorer.AddressView{}, nil
}

func TestExplorerHandler_HandleBlock(t *testing.T) {
	t.Run("InvalidHeightIsBadRequest", func(t *testing.T) {
		h := NewExplorerHandler(&fakeExplorer{})

		r := httptest.NewRequest(http.MethodGet, "/api/v1/explorer/blocks/notanumber", nil)
		r.SetPathValue("height", "notanumber")
		w := httptest.NewRecorder()

		h.HandleBlock(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingBlockIsNotFound", func(t *testing.T) {
		h := NewExplorerHandler(&fakeExplorer{notFound: true})

		r := httptest.NewRequest(http.MethodGet, "/api/v1/explorer/blocks/1", nil)
		r.SetPathValue("height", "1")
		w := httptest.NewRecorder()

		h.HandleBlock(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

type fakeChat struct{}

func (fakeChat) Ask(ctx context.Context, message string) (chatbot.Reply, error) {
	return chatbot.Reply{Message: "echo: " + message}, nil
}

func TestChatHandler_HandleAsk(t *testing.T) {
	h := NewChatHandler(fakeChat{})

	t.Run("OK", func(t *testing.T) {
		body := strings.NewReader(`{"message":"how is btc doing?"}`)
		w := httptest.NewRecorder()

		h.HandleAsk(w, httptest.NewRequest(http.MethodPost, "/api/v1/chat", body))

		require.Equal(t, http.StatusOK, w.Code)
		var reply chatbot.Reply
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
		assert.Equal(t, "echo: how is btc doing?", reply.Message)
	})

	t.Run("EmptyMessageIsBadRequest", func(t *testing.T) {
		body := strings.NewReader(`{"message":"   "}`)
		w := httptest.NewRecorder()

		h.HandleAsk(w, httptest.NewRequest(http.MethodPost, "/api/v1/chat", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MalformedBodyIsBadRequest", func(t *testing.T) {
		body := strings.NewReader(`{"message":`)
		w := httptest.NewRecorder()

		h.HandleAsk(w, httptest.NewRequest(http.MethodPost, "/api/v1/chat", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("OversizedMessageIsBadRequest", func(t *testing.T) {
		msg := strings.Repeat("a", maxChatMessageLen+1)
		raw, err := json.Marshal(chatRequest{Message: msg})
		require.NoError(t, err)
		w := httptest.NewRecorder()

		h.HandleAsk(w, httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(string(raw))))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
