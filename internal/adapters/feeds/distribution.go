package feeds

import (
	"context"

	"chainboard/internal/domain/market"
	"chainboard/pkg/errors"
)

// DistributionFeed fetches the address balance distribution snapshot.
// The upstream is optional; without a configured URL every request serves
// the sample snapshot.
type DistributionFeed struct {
	fetcher *Fetcher
	url     string
}

// NewDistributionFeed creates a new balance distribution feed
func NewDistributionFeed(fetcher *Fetcher, url string) *DistributionFeed {
	return &DistributionFeed{fetcher: fetcher, url: url}
}

type distributionResponse struct {
	Buckets []distributionBucket `json:"buckets"`
}

type distributionBucket struct {
	From         float64 `json:"from"`
	To           float64 `json:"to"`
	TotalVolume  float64 `json:"total_volume"`
	AddressCount int64   `json:"address_count"`
}

// Fetch returns the current balance distribution buckets
func (d *DistributionFeed) Fetch(ctx context.Context) ([]market.BalanceBucket, error) {
	if d.url == "" {
		return nil, errors.Wrap(errors.ErrUpstreamUnavailable, "distribution feed not configured")
	}

	var resp distributionResponse
	if err := d.fetcher.GetJSON(ctx, "feed:distribution", d.url, &resp); err != nil {
		return nil, errors.Wrap(err, "fetch balance distribution")
	}
	if len(resp.Buckets) == 0 {
		return nil, errors.Wrap(errors.ErrUpstreamUnavailable, "distribution response has no buckets")
	}

	buckets := make([]market.BalanceBucket, len(resp.Buckets))
	for i, b := range resp.Buckets {
		buckets[i] = market.BalanceBucket{
			RangeFrom:    b.From,
			RangeTo:      b.To,
			TotalVolume:  b.TotalVolume,
			AddressCount: b.AddressCount,
		}
	}

	return buckets, nil
}

// Sample is the documented fallback snapshot, shaped like the usual rich-list buckets
func (d *DistributionFeed) Sample() []market.BalanceBucket {
	return []market.BalanceBucket{
		{RangeFrom: 0, RangeTo: 0.001, TotalVolume: 6_400, AddressCount: 24_531_120},
		{RangeFrom: 0.001, RangeTo: 0.01, TotalVolume: 41_300, AddressCount: 10_612_450},
		{RangeFrom: 0.01, RangeTo: 0.1, TotalVolume: 352_000, AddressCount: 9_841_007},
		{RangeFrom: 0.1, RangeTo: 1, TotalVolume: 1_060_000, AddressCount: 3_412_886},
		{RangeFrom: 1, RangeTo: 10, TotalVolume: 2_110_000, AddressCount: 673_921},
		{RangeFrom: 10, RangeTo: 100, TotalVolume: 4_380_000, AddressCount: 131_204},
		{RangeFrom: 100, RangeTo: 1_000, TotalVolume: 3_960_000, AddressCount: 13_987},
		{RangeFrom: 1_000, RangeTo: 10_000, TotalVolume: 5_210_000, AddressCount: 2_011},
		{RangeFrom: 10_000, RangeTo: 0, TotalVolume: 2_180_000, AddressCount: 93},
	}
}
