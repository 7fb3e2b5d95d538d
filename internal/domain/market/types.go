package market

import "time"

// MetricPoint is one daily observation of a warehouse metric column
type MetricPoint struct {
	Date  time.Time `ch:"date" json:"date"`
	Value float64   `ch:"value" json:"value"`
}

// MetricSeries is a chronologically ascending sequence of daily observations.
// Built fresh per request; never mutated after creation.
type MetricSeries []MetricPoint

// Values extracts the value column in order
func (s MetricSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// PricePoint is one daily OHLCV row from the metrics schema
type PricePoint struct {
	Date   time.Time `ch:"date" json:"date"`
	Open   float64   `ch:"open" json:"open"`
	High   float64   `ch:"high" json:"high"`
	Low    float64   `ch:"low" json:"low"`
	Close  float64   `ch:"close" json:"close"`
	Volume float64   `ch:"volume" json:"volume"`
}

// SpotPrice is the current price snapshot from the price feed
type SpotPrice struct {
	PriceUSD     float64   `json:"price_usd"`
	Change24h    float64   `json:"change_24h"`
	MarketCapUSD float64   `json:"market_cap_usd"`
	Volume24hUSD float64   `json:"volume_24h_usd"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FearGreedIndex is the current fear-and-greed reading
type FearGreedIndex struct {
	Value     int       `json:"value"`
	Rating    string    `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// NewsArticle is one headline from the news feed
type NewsArticle struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// BalanceBucket is one row of the address balance distribution feed
type BalanceBucket struct {
	RangeFrom    float64 `json:"range_from"`
	RangeTo      float64 `json:"range_to"`
	TotalVolume  float64 `json:"total_volume"`
	AddressCount int64   `json:"address_count"`
	// Percent of total volume held by the bucket, filled in by the service layer
	Percent float64 `json:"percent"`
}
