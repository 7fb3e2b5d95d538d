package chart

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainboard/internal/domain/market"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleSeries() market.MetricSeries {
	return market.MetricSeries{
		{Date: day(2024, time.March, 1), Value: 10},
		{Date: day(2024, time.March, 2), Value: 20},
		{Date: day(2024, time.March, 3), Value: 30},
	}
}

func TestAssemble(t *testing.T) {
	tf, err := ParseTimeframe("1m", 0)
	require.NoError(t, err)

	t.Run("PrimaryOnly", func(t *testing.T) {
		payload := Assemble("tx_count", sampleSeries(), nil, tf)

		assert.Equal(t, []string{"Mar 1", "Mar 2", "Mar 3"}, payload.Labels)
		require.Len(t, payload.Datasets, 1)
		assert.Equal(t, "tx_count", payload.Datasets[0].Label)
		assert.Equal(t, []Value{10, 20, 30}, payload.Datasets[0].Values)
	})

	t.Run("OverlayJoinByDate", func(t *testing.T) {
		overlay := []market.PricePoint{
			{Date: day(2024, time.March, 1), Close: 60000},
			{Date: day(2024, time.March, 3), Close: 61000},
		}

		payload := Assemble("tx_count", sampleSeries(), overlay, tf)

		require.Len(t, payload.Datasets, 2)
		price := payload.Datasets[1]
		assert.Equal(t, "price", price.Label)
		require.Len(t, price.Values, 3)
		assert.Equal(t, Value(60000), price.Values[0])
		assert.True(t, math.IsNaN(float64(price.Values[1])), "unmatched date carries NaN, row is not dropped")
		assert.Equal(t, Value(61000), price.Values[2])
	})

	t.Run("EmptyPrimary", func(t *testing.T) {
		payload := Assemble("tx_count", nil, nil, tf)

		assert.NotNil(t, payload.Labels)
		assert.Empty(t, payload.Labels)
		assert.NotNil(t, payload.Datasets)
		assert.Empty(t, payload.Datasets)
	})

	t.Run("LengthInvariant", func(t *testing.T) {
		overlay := []market.PricePoint{{Date: day(2024, time.March, 2), Close: 59000}}
		payload := Assemble("tx_count", sampleSeries(), overlay, tf)

		for _, ds := range payload.Datasets {
			assert.Len(t, ds.Values, len(payload.Labels), "dataset %s", ds.Label)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		overlay := []market.PricePoint{{Date: day(2024, time.March, 1), Close: 60000}}
		a := Assemble("tx_count", sampleSeries(), overlay, tf)
		b := Assemble("tx_count", sampleSeries(), overlay, tf)

		aj, err := json.Marshal(a)
		require.NoError(t, err)
		bj, err := json.Marshal(b)
		require.NoError(t, err)
		assert.Equal(t, aj, bj)
	})

	t.Run("MultiYearLabels", func(t *testing.T) {
		long, err := ParseTimeframe("3y", 0)
		require.NoError(t, err)

		payload := Assemble("tx_count", sampleSeries(), nil, long)
		assert.Equal(t, []string{"Mar 2024", "Mar 2024", "Mar 2024"}, payload.Labels)
	})
}

func TestPayload_AddDataset(t *testing.T) {
	tf, _ := ParseTimeframe("1m", 0)
	payload := Assemble("tx_count", sampleSeries(), nil, tf)

	require.NoError(t, payload.AddDataset("sma", []float64{math.NaN(), 15, 25}))
	assert.Len(t, payload.Datasets, 2)

	err := payload.AddDataset("broken", []float64{1, 2})
	require.Error(t, err)
}

func TestValue_MarshalsNaNAsNull(t *testing.T) {
	data, err := json.Marshal([]Value{1.5, Value(math.NaN()), 3})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, null, 3]`, string(data))
}

func TestLogFloor(t *testing.T) {
	in := []float64{-5, 0, 0.3, 1, 2.5, math.NaN()}
	out := LogFloor(in)

	assert.Equal(t, 1.0, out[0])
	assert.Equal(t, 1.0, out[1])
	assert.Equal(t, 1.0, out[2])
	assert.Equal(t, 1.0, out[3])
	assert.Equal(t, 2.5, out[4])
	assert.True(t, math.IsNaN(out[5]))

	// input untouched
	assert.Equal(t, -5.0, in[0])
}

func TestParseTimeframe(t *testing.T) {
	cases := map[string]int{
		"1m": 30, "3m": 90, "6m": 180, "1y": 365,
		"3y": 1095, "5y": 1825, "10y": 3650, "all": 0,
	}
	for code, days := range cases {
		tf, err := ParseTimeframe(code, 0)
		require.NoError(t, err, code)
		assert.Equal(t, days, tf.Days, code)
	}

	t.Run("Custom", func(t *testing.T) {
		tf, err := ParseTimeframe("custom", 45)
		require.NoError(t, err)
		assert.Equal(t, 45, tf.Days)
		assert.Equal(t, "Jan 2", tf.LabelFormat())

		_, err = ParseTimeframe("custom", 0)
		require.Error(t, err)
	})

	t.Run("EmptyMeansFullHistory", func(t *testing.T) {
		tf, err := ParseTimeframe("", 0)
		require.NoError(t, err)
		assert.Equal(t, 0, tf.Days)
	})

	t.Run("UnknownCodeRejected", func(t *testing.T) {
		_, err := ParseTimeframe("2w", 0)
		require.Error(t, err)
	})
}
