package indicators

import (
	"github.com/markcheno/go-talib"

	"chainboard/pkg/errors"
)

// Series computed by ta-lib over warehouse close columns. These supplement the
// hand-rolled moving averages for the technical indicators view; ta-lib handles
// the indicators with non-trivial warmup semantics.

// RSI computes the relative strength index series
func RSI(closes []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "rsi period must be positive, got %d", period)
	}
	if len(closes) <= period {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "rsi needs more than %d closes, got %d", period, len(closes))
	}
	return talib.Rsi(closes, period), nil
}

// MACD computes the MACD line, signal line, and histogram
func MACD(closes []float64, fast, slow, signal int) (macd, signalLine, hist []float64, err error) {
	if fast < 1 || slow < 1 || signal < 1 {
		return nil, nil, nil, errors.Wrapf(errors.ErrInvalidInput,
			"macd periods must be positive, got %d/%d/%d", fast, slow, signal)
	}
	if len(closes) <= slow+signal {
		return nil, nil, nil, errors.Wrapf(errors.ErrInvalidInput,
			"macd needs more than %d closes, got %d", slow+signal, len(closes))
	}
	macd, signalLine, hist = talib.Macd(closes, fast, slow, signal)
	return macd, signalLine, hist, nil
}

// Bollinger computes upper, middle, and lower bands
func Bollinger(closes []float64, period int, stdDev float64) (upper, middle, lower []float64, err error) {
	if period < 1 {
		return nil, nil, nil, errors.Wrapf(errors.ErrInvalidInput, "bollinger period must be positive, got %d", period)
	}
	if len(closes) < period {
		return nil, nil, nil, errors.Wrapf(errors.ErrInvalidInput,
			"bollinger needs at least %d closes, got %d", period, len(closes))
	}
	upper, middle, lower = talib.BBands(closes, period, stdDev, stdDev, talib.SMA)
	return upper, middle, lower, nil
}
