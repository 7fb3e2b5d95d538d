package overview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainboard/internal/domain/market"
	"chainboard/internal/indicators"
	"chainboard/pkg/errors"
	"chainboard/pkg/logger"
)

type stubPrice struct{ fail bool }

func (s stubPrice) Fetch(ctx context.Context) (*market.SpotPrice, error) {
	if s.fail {
		return nil, errors.ErrUpstreamUnavailable
	}
	return &market.SpotPrice{PriceUSD: 64000, UpdatedAt: time.Now()}, nil
}

func (s stubPrice) Sample() *market.SpotPrice {
	return &market.SpotPrice{PriceUSD: 50000}
}

type stubFearGreed struct{ fail bool }

func (s stubFearGreed) Fetch(ctx context.Context) (*market.FearGreedIndex, error) {
	if s.fail {
		return nil, errors.ErrUpstreamUnavailable
	}
	return &market.FearGreedIndex{Value: 71, Rating: "Greed"}, nil
}

func (s stubFearGreed) Sample() *market.FearGreedIndex {
	return &market.FearGreedIndex{Value: 50, Rating: "Neutral"}
}

type stubNews struct{ fail bool }

func (s stubNews) Fetch(ctx context.Context, limit int) ([]market.NewsArticle, error) {
	if s.fail {
		return nil, errors.ErrUpstreamUnavailable
	}
	return []market.NewsArticle{{Title: "live headline"}}, nil
}

func (s stubNews) Sample() []market.NewsArticle {
	return []market.NewsArticle{{Title: "sample headline"}}
}

type stubDistribution struct{ fail bool }

func (s stubDistribution) Fetch(ctx context.Context) ([]market.BalanceBucket, error) {
	if s.fail {
		return nil, errors.ErrUpstreamUnavailable
	}
	return []market.BalanceBucket{
		{RangeFrom: 0, RangeTo: 1, TotalVolume: 25},
		{RangeFrom: 1, RangeTo: 10, TotalVolume: 75},
	}, nil
}

func (s stubDistribution) Sample() []market.BalanceBucket {
	return []market.BalanceBucket{{RangeFrom: 0, RangeTo: 1, TotalVolume: 10}}
}

type stubRatios struct{ fail bool }

func (s stubRatios) LatestMVRV(ctx context.Context) (indicators.Classification, error) {
	if s.fail {
		return indicators.Classification{}, errors.ErrWarehouseUnavailable
	}
	return indicators.Classification{Value: 2.0, Label: "Fair Value"}, nil
}

func (s stubRatios) LatestNUPL(ctx context.Context) (indicators.Classification, error) {
	if s.fail {
		return indicators.Classification{}, errors.ErrWarehouseUnavailable
	}
	return indicators.Classification{Value: 0.4, Label: "Optimism"}, nil
}

func newService(priceFail, fgFail, newsFail, distFail, ratioFail bool) *Service {
	return New(
		stubPrice{fail: priceFail},
		stubFearGreed{fail: fgFail},
		stubNews{fail: newsFail},
		stubDistribution{fail: distFail},
		stubRatios{fail: ratioFail},
		logger.Get(),
	)
}

func TestService_FallbackPaths(t *testing.T) {
	ctx := context.Background()

	t.Run("LivePriceIsNotSample", func(t *testing.T) {
		resp := newService(false, false, false, false, false).Price(ctx)
		assert.False(t, resp.Sample)
		assert.Equal(t, 64000.0, resp.PriceUSD)
	})

	t.Run("FailedPriceServesSample", func(t *testing.T) {
		resp := newService(true, false, false, false, false).Price(ctx)
		assert.True(t, resp.Sample)
		assert.Equal(t, 50000.0, resp.PriceUSD)
	})

	t.Run("FailedFearGreedServesSample", func(t *testing.T) {
		resp := newService(false, true, false, false, false).FearGreed(ctx)
		assert.True(t, resp.Sample)
		assert.Equal(t, "Neutral", resp.Rating)
	})

	t.Run("FailedNewsServesSample", func(t *testing.T) {
		resp := newService(false, false, true, false, false).News(ctx, 5)
		assert.True(t, resp.Sample)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, "sample headline", resp.Articles[0].Title)
	})
}

func TestService_Distribution(t *testing.T) {
	resp := newService(false, false, false, false, false).Distribution(context.Background())

	require.Len(t, resp.Buckets, 2)
	assert.False(t, resp.Sample)
	assert.InDelta(t, 25.0, resp.Buckets[0].Percent, 1e-9)
	assert.InDelta(t, 75.0, resp.Buckets[1].Percent, 1e-9)

	t.Run("SampleAlsoGetsPercentages", func(t *testing.T) {
		resp := newService(false, false, false, true, false).Distribution(context.Background())
		assert.True(t, resp.Sample)
		require.Len(t, resp.Buckets, 1)
		assert.InDelta(t, 100.0, resp.Buckets[0].Percent, 1e-9)
	})
}

func TestService_Overview(t *testing.T) {
	t.Run("JoinsAllSources", func(t *testing.T) {
		resp := newService(false, false, false, false, false).Overview(context.Background())

		assert.Equal(t, 64000.0, resp.Price.PriceUSD)
		assert.Equal(t, 71, resp.FearGreed.Value)
		require.NotNil(t, resp.MVRV)
		assert.Equal(t, "Fair Value", resp.MVRV.Label)
		require.NotNil(t, resp.NUPL)
	})

	t.Run("RatioFailureOmitsField", func(t *testing.T) {
		resp := newService(false, false, false, false, true).Overview(context.Background())

		assert.Nil(t, resp.MVRV)
		assert.Nil(t, resp.NUPL)
		assert.Equal(t, 64000.0, resp.Price.PriceUSD, "feeds still resolve")
	})

	t.Run("EverythingDownStillRenders", func(t *testing.T) {
		resp := newService(true, true, true, true, true).Overview(context.Background())

		assert.True(t, resp.Price.Sample)
		assert.True(t, resp.FearGreed.Sample)
		assert.Nil(t, resp.MVRV)
	})
}
