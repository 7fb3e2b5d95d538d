package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"chainboard/internal/domain/market"
	"chainboard/pkg/errors"
)

// Compile-time check
var _ market.Repository = (*MetricsRepository)(nil)

// metricColumns whitelists the metric names the API accepts and maps them to
// columns of the daily_metrics table. Identifiers are never interpolated from
// raw user input.
var metricColumns = map[string]string{
	"price":            "close",
	"volume":           "volume",
	"tx_count":         "tx_count",
	"active_addresses": "active_addresses",
	"hashrate":         "hashrate",
	"difficulty":       "difficulty",
	"fees":             "total_fees_btc",
	"supply":           "circulating_supply",
	"mvrv":             "mvrv",
	"nupl":             "nupl",
	"sopr":             "sopr",
	"realized_cap":     "realized_cap_usd",
}

// MetricsRepository implements market.Repository over the ClickHouse metrics schema
type MetricsRepository struct {
	conn driver.Conn
}

// NewMetricsRepository creates a new metrics repository
func NewMetricsRepository(conn driver.Conn) *MetricsRepository {
	return &MetricsRepository{conn: conn}
}

// GetMetricSeries returns the named daily metric, chronologically ascending
func (r *MetricsRepository) GetMetricSeries(ctx context.Context, name string, days int) (market.MetricSeries, error) {
	column, ok := metricColumns[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownMetric, "%q", name)
	}

	query := fmt.Sprintf(`
		SELECT date, toFloat64(%s) AS value
		FROM daily_metrics`, column)

	var args []interface{}
	if days > 0 {
		query += ` WHERE date >= today() - ?`
		args = append(args, days)
	}
	query += ` ORDER BY date ASC`

	var series market.MetricSeries
	err := r.conn.Select(ctx, &series, query, args...)
	observeQuery("metric_series", err)
	if err != nil {
		return nil, errors.Wrapf(err, "select metric %s", name)
	}

	return series, nil
}

// GetPriceSeries returns daily OHLCV rows, chronologically ascending
func (r *MetricsRepository) GetPriceSeries(ctx context.Context, days int) ([]market.PricePoint, error) {
	query := `
		SELECT date, open, high, low, close, volume
		FROM daily_ohlcv`

	var args []interface{}
	if days > 0 {
		query += ` WHERE date >= today() - ?`
		args = append(args, days)
	}
	query += ` ORDER BY date ASC`

	var points []market.PricePoint
	err := r.conn.Select(ctx, &points, query, args...)
	observeQuery("price_series", err)
	if err != nil {
		return nil, errors.Wrap(err, "select price series")
	}

	return points, nil
}

// GetLatestRatio returns the most recent value of a ratio column (mvrv, nupl)
func (r *MetricsRepository) GetLatestRatio(ctx context.Context, name string) (float64, error) {
	column, ok := metricColumns[name]
	if !ok {
		return 0, errors.Wrapf(errors.ErrUnknownMetric, "%q", name)
	}

	query := fmt.Sprintf(`
		SELECT date, toFloat64(%s) AS value
		FROM daily_metrics
		ORDER BY date DESC
		LIMIT 1`, column)

	var rows []market.MetricPoint
	err := r.conn.Select(ctx, &rows, query)
	observeQuery("latest_ratio", err)
	if err != nil {
		return 0, errors.Wrapf(err, "select latest %s", name)
	}
	if len(rows) == 0 {
		return 0, errors.Wrapf(errors.ErrNotFound, "no %s rows", name)
	}

	return rows[0].Value, nil
}
