package overview

import (
	"context"

	"golang.org/x/sync/errgroup"

	"chainboard/internal/domain/market"
	"chainboard/internal/indicators"
	"chainboard/internal/metrics"
	"chainboard/pkg/logger"
)

// Feed sources. Each source pairs a live fetch with a documented sample
// payload; the service substitutes the sample whenever the fetch fails, so
// upstream trouble never reaches the UI as an error.

type PriceSource interface {
	Fetch(ctx context.Context) (*market.SpotPrice, error)
	Sample() *market.SpotPrice
}

type FearGreedSource interface {
	Fetch(ctx context.Context) (*market.FearGreedIndex, error)
	Sample() *market.FearGreedIndex
}

type NewsSource interface {
	Fetch(ctx context.Context, limit int) ([]market.NewsArticle, error)
	Sample() []market.NewsArticle
}

type DistributionSource interface {
	Fetch(ctx context.Context) ([]market.BalanceBucket, error)
	Sample() []market.BalanceBucket
}

// RatioSource supplies the latest warehouse valuation ratios
type RatioSource interface {
	LatestMVRV(ctx context.Context) (indicators.Classification, error)
	LatestNUPL(ctx context.Context) (indicators.Classification, error)
}

// Service aggregates the dashboard's top-of-page data from the external feeds
// and the warehouse ratios
type Service struct {
	price        PriceSource
	fearGreed    FearGreedSource
	news         NewsSource
	distribution DistributionSource
	ratios       RatioSource
	log          *logger.Logger
}

// New creates a new overview service
func New(price PriceSource, fearGreed FearGreedSource, news NewsSource, distribution DistributionSource, ratios RatioSource, log *logger.Logger) *Service {
	return &Service{
		price:        price,
		fearGreed:    fearGreed,
		news:         news,
		distribution: distribution,
		ratios:       ratios,
		log:          log,
	}
}

// PriceResponse is the spot price with its fallback marker
type PriceResponse struct {
	market.SpotPrice
	Sample bool `json:"sample"`
}

// FearGreedResponse is the index reading with its fallback marker
type FearGreedResponse struct {
	market.FearGreedIndex
	Sample bool `json:"sample"`
}

// NewsResponse is the headline list with its fallback marker
type NewsResponse struct {
	Articles []market.NewsArticle `json:"articles"`
	Sample   bool                 `json:"sample"`
}

// DistributionResponse is the balance distribution with its fallback marker
type DistributionResponse struct {
	Buckets []market.BalanceBucket `json:"buckets"`
	Sample  bool                   `json:"sample"`
}

// OverviewResponse is the combined top-of-page snapshot
type OverviewResponse struct {
	Price     PriceResponse              `json:"price"`
	FearGreed FearGreedResponse          `json:"fear_greed"`
	MVRV      *indicators.Classification `json:"mvrv,omitempty"`
	NUPL      *indicators.Classification `json:"nupl,omitempty"`
}

// Price returns the spot price, falling back to the sample payload
func (s *Service) Price(ctx context.Context) PriceResponse {
	price, err := s.price.Fetch(ctx)
	if err != nil {
		s.log.Warnf("price feed failed, serving sample: %v", err)
		metrics.FeedFallbacks.WithLabelValues("price").Inc()
		return PriceResponse{SpotPrice: *s.price.Sample(), Sample: true}
	}
	return PriceResponse{SpotPrice: *price}
}

// FearGreed returns the current index, falling back to the sample payload
func (s *Service) FearGreed(ctx context.Context) FearGreedResponse {
	index, err := s.fearGreed.Fetch(ctx)
	if err != nil {
		s.log.Warnf("fear greed feed failed, serving sample: %v", err)
		metrics.FeedFallbacks.WithLabelValues("feargreed").Inc()
		return FearGreedResponse{FearGreedIndex: *s.fearGreed.Sample(), Sample: true}
	}
	return FearGreedResponse{FearGreedIndex: *index}
}

// News returns recent headlines, falling back to the sample payload
func (s *Service) News(ctx context.Context, limit int) NewsResponse {
	articles, err := s.news.Fetch(ctx, limit)
	if err != nil {
		s.log.Warnf("news feed failed, serving sample: %v", err)
		metrics.FeedFallbacks.WithLabelValues("news").Inc()
		return NewsResponse{Articles: s.news.Sample(), Sample: true}
	}
	return NewsResponse{Articles: articles}
}

// Distribution returns the balance buckets with percent-of-total filled in,
// falling back to the sample snapshot
func (s *Service) Distribution(ctx context.Context) DistributionResponse {
	buckets, err := s.distribution.Fetch(ctx)
	if err != nil {
		s.log.Warnf("distribution feed failed, serving sample: %v", err)
		metrics.FeedFallbacks.WithLabelValues("distribution").Inc()
		return DistributionResponse{Buckets: withPercentages(s.distribution.Sample()), Sample: true}
	}
	return DistributionResponse{Buckets: withPercentages(buckets)}
}

// Overview fetches the independent sources concurrently and joins the results.
// Feed failures degrade to samples; ratio failures leave the field out.
func (s *Service) Overview(ctx context.Context) OverviewResponse {
	var resp OverviewResponse

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resp.Price = s.Price(gctx)
		return nil
	})
	g.Go(func() error {
		resp.FearGreed = s.FearGreed(gctx)
		return nil
	})
	g.Go(func() error {
		mvrv, err := s.ratios.LatestMVRV(gctx)
		if err != nil {
			s.log.Warnf("mvrv unavailable: %v", err)
			return nil
		}
		resp.MVRV = &mvrv
		return nil
	})
	g.Go(func() error {
		nupl, err := s.ratios.LatestNUPL(gctx)
		if err != nil {
			s.log.Warnf("nupl unavailable: %v", err)
			return nil
		}
		resp.NUPL = &nupl
		return nil
	})

	// Goroutines swallow their own failures, so Wait only synchronizes
	_ = g.Wait()

	return resp
}

// withPercentages fills each bucket's share of the total volume
func withPercentages(buckets []market.BalanceBucket) []market.BalanceBucket {
	var total float64
	for _, b := range buckets {
		total += b.TotalVolume
	}
	if total == 0 {
		return buckets
	}

	out := make([]market.BalanceBucket, len(buckets))
	for i, b := range buckets {
		b.Percent = b.TotalVolume / total * 100
		out[i] = b
	}
	return out
}
