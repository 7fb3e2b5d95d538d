package indicators

import (
	"math"

	"chainboard/pkg/errors"
)

// Kind selects the moving average flavor
type Kind string

const (
	SMA Kind = "sma"
	EMA Kind = "ema"
)

// ParseKind maps a query-string value to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "sma":
		return SMA, nil
	case "ema":
		return EMA, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidInput, "unknown moving average kind %q", s)
	}
}

// MovingAverage computes an SMA or EMA series aligned index-for-index with values.
//
// SMA entries before index period-1 are NaN. EMA seeds from values[0] and has no
// NaN prefix. period < 1 is rejected; period > len(values) yields an all-NaN
// series rather than panicking on an out-of-range window.
func MovingAverage(values []float64, period int, kind Kind) ([]float64, error) {
	if period < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "moving average period must be positive, got %d", period)
	}

	out := make([]float64, len(values))
	if period > len(values) {
		for i := range out {
			out[i] = math.NaN()
		}
		return out, nil
	}

	switch kind {
	case SMA:
		for i := range values {
			if i < period-1 {
				out[i] = math.NaN()
				continue
			}
			var sum float64
			for _, v := range values[i-period+1 : i+1] {
				sum += v
			}
			out[i] = sum / float64(period)
		}
	case EMA:
		k := 2.0 / (float64(period) + 1)
		for i, v := range values {
			if i == 0 {
				out[i] = v
				continue
			}
			out[i] = v*k + out[i-1]*(1-k)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown moving average kind %q", kind)
	}

	return out, nil
}
