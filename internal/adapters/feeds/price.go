package feeds

import (
	"context"
	"time"

	"chainboard/internal/domain/market"
	"chainboard/pkg/errors"
)

// PriceFeed fetches the Bitcoin spot price from a CoinGecko-shaped endpoint
type PriceFeed struct {
	fetcher *Fetcher
	url     string
}

// NewPriceFeed creates a new spot price feed
func NewPriceFeed(fetcher *Fetcher, url string) *PriceFeed {
	return &PriceFeed{fetcher: fetcher, url: url}
}

// CoinGecko simple/price response structure
type coinGeckoPrice struct {
	Bitcoin struct {
		USD          float64 `json:"usd"`
		USDMarketCap float64 `json:"usd_market_cap"`
		USD24hVol    float64 `json:"usd_24h_vol"`
		USD24hChange float64 `json:"usd_24h_change"`
	} `json:"bitcoin"`
}

// Fetch returns the current spot price
func (p *PriceFeed) Fetch(ctx context.Context) (*market.SpotPrice, error) {
	url := p.url + "?ids=bitcoin&vs_currencies=usd&include_market_cap=true&include_24hr_vol=true&include_24hr_change=true"

	var resp coinGeckoPrice
	if err := p.fetcher.GetJSON(ctx, "feed:price", url, &resp); err != nil {
		return nil, errors.Wrap(err, "fetch spot price")
	}

	if resp.Bitcoin.USD == 0 {
		return nil, errors.Wrap(errors.ErrUpstreamUnavailable, "price feed returned zero price")
	}

	return &market.SpotPrice{
		PriceUSD:     resp.Bitcoin.USD,
		Change24h:    resp.Bitcoin.USD24hChange,
		MarketCapUSD: resp.Bitcoin.USDMarketCap,
		Volume24hUSD: resp.Bitcoin.USD24hVol,
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

// Sample is the documented fallback payload served when the feed is unreachable
func (p *PriceFeed) Sample() *market.SpotPrice {
	return &market.SpotPrice{
		PriceUSD:     64250.0,
		Change24h:    1.8,
		MarketCapUSD: 1.26e12,
		Volume24hUSD: 3.1e10,
		UpdatedAt:    time.Now().UTC(),
	}
}
