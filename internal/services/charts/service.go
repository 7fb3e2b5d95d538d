package charts

import (
	"context"
	"fmt"

	"chainboard/internal/chart"
	"chainboard/internal/domain/market"
	"chainboard/internal/indicators"
	"chainboard/pkg/errors"
	"chainboard/pkg/logger"
)

// Default periods for the technical indicator views
const (
	rsiPeriod       = 14
	macdFast        = 12
	macdSlow        = 26
	macdSignal      = 9
	bollingerPeriod = 20
	bollingerStdDev = 2.0
)

// Service turns warehouse series into chart payloads: metric charts with
// optional moving averages and price overlay, technical indicator charts,
// and the latest valuation ratios.
type Service struct {
	repo market.Repository
	log  *logger.Logger
}

// New creates a new charts service
func New(repo market.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// MetricChartRequest carries the query parameters of a metric chart call
type MetricChartRequest struct {
	Metric     string
	Timeframe  string
	CustomDays int
	MAPeriod   int // 0 disables the moving average dataset
	MAKind     string
	Overlay    bool
	LogScale   bool
}

// MetricChart builds the chart payload for one warehouse metric
func (s *Service) MetricChart(ctx context.Context, req MetricChartRequest) (chart.Payload, error) {
	tf, err := chart.ParseTimeframe(req.Timeframe, req.CustomDays)
	if err != nil {
		return chart.Payload{}, err
	}

	var kind indicators.Kind
	if req.MAPeriod != 0 {
		if req.MAPeriod < 1 {
			return chart.Payload{}, errors.Wrapf(errors.ErrInvalidInput,
				"moving average period must be positive, got %d", req.MAPeriod)
		}
		kind, err = indicators.ParseKind(req.MAKind)
		if err != nil {
			return chart.Payload{}, err
		}
	}

	series, err := s.repo.GetMetricSeries(ctx, req.Metric, tf.RowLimit())
	if err != nil {
		return chart.Payload{}, err
	}

	var overlay []market.PricePoint
	if req.Overlay && req.Metric != "price" {
		overlay, err = s.repo.GetPriceSeries(ctx, tf.RowLimit())
		if err != nil {
			// A failed join leaves the overlay out; the primary chart still renders
			s.log.Warnf("price overlay unavailable for %s: %v", req.Metric, err)
			overlay = nil
		}
	}

	values := series.Values()
	if req.LogScale {
		floored := chart.LogFloor(values)
		for i := range series {
			series[i].Value = floored[i]
		}
		for i := range overlay {
			overlay[i].Close = max(overlay[i].Close, 1)
		}
	}

	payload := chart.Assemble(req.Metric, series, overlay, tf)

	if req.MAPeriod > 0 && len(series) > 0 {
		ma, err := indicators.MovingAverage(values, req.MAPeriod, kind)
		if err != nil {
			return chart.Payload{}, err
		}
		if req.LogScale {
			ma = chart.LogFloor(ma)
		}
		label := fmt.Sprintf("%s_%d", kind, req.MAPeriod)
		if err := payload.AddDataset(label, ma); err != nil {
			return chart.Payload{}, err
		}
	}

	return payload, nil
}

// IndicatorChart builds the payload for a technical indicator over the daily closes
func (s *Service) IndicatorChart(ctx context.Context, name, timeframe string, customDays int) (chart.Payload, error) {
	tf, err := chart.ParseTimeframe(timeframe, customDays)
	if err != nil {
		return chart.Payload{}, err
	}

	prices, err := s.repo.GetPriceSeries(ctx, tf.RowLimit())
	if err != nil {
		return chart.Payload{}, err
	}
	if len(prices) == 0 {
		return chart.Payload{Labels: []string{}, Datasets: []chart.Dataset{}}, nil
	}

	closes := make([]float64, len(prices))
	series := make(market.MetricSeries, len(prices))
	for i, p := range prices {
		closes[i] = p.Close
		series[i] = market.MetricPoint{Date: p.Date, Value: p.Close}
	}

	payload := chart.Assemble("close", series, nil, tf)

	switch name {
	case "rsi":
		rsi, err := indicators.RSI(closes, rsiPeriod)
		if err != nil {
			return chart.Payload{}, err
		}
		err = payload.AddDataset("rsi", rsi)
		return payload, err

	case "macd":
		macd, signal, hist, err := indicators.MACD(closes, macdFast, macdSlow, macdSignal)
		if err != nil {
			return chart.Payload{}, err
		}
		for _, ds := range []struct {
			label  string
			values []float64
		}{{"macd", macd}, {"signal", signal}, {"histogram", hist}} {
			if err := payload.AddDataset(ds.label, ds.values); err != nil {
				return chart.Payload{}, err
			}
		}
		return payload, nil

	case "bollinger":
		upper, middle, lower, err := indicators.Bollinger(closes, bollingerPeriod, bollingerStdDev)
		if err != nil {
			return chart.Payload{}, err
		}
		for _, ds := range []struct {
			label  string
			values []float64
		}{{"upper", upper}, {"middle", middle}, {"lower", lower}} {
			if err := payload.AddDataset(ds.label, ds.values); err != nil {
				return chart.Payload{}, err
			}
		}
		return payload, nil

	default:
		return chart.Payload{}, errors.Wrapf(errors.ErrInvalidInput, "unknown indicator %q", name)
	}
}

// LatestMVRV returns the most recent MVRV ratio with its valuation bucket
func (s *Service) LatestMVRV(ctx context.Context) (indicators.Classification, error) {
	value, err := s.repo.GetLatestRatio(ctx, "mvrv")
	if err != nil {
		return indicators.Classification{}, err
	}
	return indicators.ClassifyRatio(value, indicators.MVRVThresholds), nil
}

// LatestNUPL returns the most recent NUPL ratio with its sentiment bucket
func (s *Service) LatestNUPL(ctx context.Context) (indicators.Classification, error) {
	value, err := s.repo.GetLatestRatio(ctx, "nupl")
	if err != nil {
		return indicators.Classification{}, err
	}
	return indicators.ClassifyRatio(value, indicators.NUPLThresholds), nil
}
