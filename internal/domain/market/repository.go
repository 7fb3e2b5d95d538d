package market

import "context"

// Repository reads precomputed daily rows from the metrics schema
type Repository interface {
	// GetMetricSeries returns the named daily metric, chronologically ascending.
	// days of 0 means full history.
	GetMetricSeries(ctx context.Context, name string, days int) (MetricSeries, error)

	// GetPriceSeries returns daily OHLCV rows, chronologically ascending
	GetPriceSeries(ctx context.Context, days int) ([]PricePoint, error)

	// GetLatestRatio returns the most recent value of a ratio column (mvrv, nupl)
	GetLatestRatio(ctx context.Context, name string) (float64, error)
}
