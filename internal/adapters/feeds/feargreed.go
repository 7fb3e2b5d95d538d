package feeds

import (
	"context"
	"strconv"
	"time"

	"chainboard/internal/domain/market"
	"chainboard/pkg/errors"
)

// FearGreedFeed fetches the Crypto Fear & Greed Index.
// Alternative.me serves it for free with no authentication.
type FearGreedFeed struct {
	fetcher *Fetcher
	url     string
}

// NewFearGreedFeed creates a new fear-and-greed feed
func NewFearGreedFeed(fetcher *Fetcher, url string) *FearGreedFeed {
	return &FearGreedFeed{fetcher: fetcher, url: url}
}

// Alternative.me API response structure
type fearGreedResponse struct {
	Name     string              `json:"name"`
	Data     []fearGreedDataItem `json:"data"`
	Metadata fearGreedMetadata   `json:"metadata"`
}

type fearGreedDataItem struct {
	Value               string `json:"value"`
	ValueClassification string `json:"value_classification"`
	Timestamp           string `json:"timestamp"`
}

type fearGreedMetadata struct {
	Error string `json:"error"`
}

// Fetch returns the current index value and rating
func (fg *FearGreedFeed) Fetch(ctx context.Context) (*market.FearGreedIndex, error) {
	var resp fearGreedResponse
	if err := fg.fetcher.GetJSON(ctx, "feed:feargreed", fg.url+"?limit=1", &resp); err != nil {
		return nil, errors.Wrap(err, "fetch fear greed index")
	}

	if resp.Metadata.Error != "" {
		return nil, errors.Wrapf(errors.ErrUpstreamUnavailable, "fear greed API error: %s", resp.Metadata.Error)
	}
	if len(resp.Data) == 0 {
		return nil, errors.Wrap(errors.ErrUpstreamUnavailable, "fear greed response has no data")
	}

	item := resp.Data[0]

	value, err := strconv.Atoi(item.Value)
	if err != nil {
		return nil, errors.Wrap(err, "parse fear greed value")
	}

	ts, err := strconv.ParseInt(item.Timestamp, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse fear greed timestamp")
	}

	return &market.FearGreedIndex{
		Value:     value,
		Rating:    item.ValueClassification,
		Timestamp: time.Unix(ts, 0).UTC(),
	}, nil
}

// Sample is the documented fallback payload served when the feed is unreachable
func (fg *FearGreedFeed) Sample() *market.FearGreedIndex {
	return &market.FearGreedIndex{
		Value:     50,
		Rating:    "Neutral",
		Timestamp: time.Now().UTC(),
	}
}
