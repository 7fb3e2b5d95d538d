package chart

import (
	"chainboard/pkg/errors"
)

// Timeframe is one of the closed set of range selectors the dashboard offers.
// Days of 0 means the full history.
type Timeframe struct {
	Code string
	Days int
}

var timeframeDays = map[string]int{
	"1m":  30,
	"3m":  90,
	"6m":  180,
	"1y":  365,
	"3y":  365 * 3,
	"5y":  365 * 5,
	"10y": 365 * 10,
	"all": 0,
}

// ParseTimeframe resolves a timeframe code. An empty code means the full
// history; "custom" takes the caller-supplied day count; any other unknown
// code is rejected rather than silently defaulted.
func ParseTimeframe(code string, customDays int) (Timeframe, error) {
	if code == "" {
		code = "all"
	}
	if code == "custom" {
		if customDays < 1 {
			return Timeframe{}, errors.Wrapf(errors.ErrInvalidInput,
				"custom timeframe needs a positive day count, got %d", customDays)
		}
		return Timeframe{Code: code, Days: customDays}, nil
	}

	days, ok := timeframeDays[code]
	if !ok {
		return Timeframe{}, errors.Wrapf(errors.ErrUnknownTimeframe, "%q", code)
	}
	return Timeframe{Code: code, Days: days}, nil
}

// RowLimit is the warehouse row limit for the timeframe; 0 means no limit
func (tf Timeframe) RowLimit() int {
	return tf.Days
}

// LabelFormat returns the date display layout for the timeframe. Ranges over a
// year get month/year labels, shorter ranges month/day.
func (tf Timeframe) LabelFormat() string {
	if tf.Days > 0 && tf.Days <= 365 {
		return "Jan 2"
	}
	return "Jan 2006"
}
