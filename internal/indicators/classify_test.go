package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRatio_MVRV(t *testing.T) {
	cases := []struct {
		value float64
		label string
	}{
		{0.5, "Undervalued"},
		{1.0, "Undervalued"},
		{1.01, "Fair Value"},
		{3.7, "Fair Value"},
		{3.71, "Overvalued"}, // the documented top boundary
		{5.2, "Overvalued"},
	}

	for _, tc := range cases {
		got := ClassifyRatio(tc.value, MVRVThresholds)
		assert.Equal(t, tc.label, got.Label, "mvrv %.2f", tc.value)
		assert.Equal(t, tc.value, got.Value, "value passes through unchanged")
	}
}

func TestClassifyRatio_NUPL(t *testing.T) {
	cases := []struct {
		value float64
		label string
	}{
		{-0.3, "Capitulation"},
		{0.1, "Hope"},
		{0.4, "Optimism"},
		{0.6, "Belief"},
		{0.9, "Euphoria"},
	}

	for _, tc := range cases {
		got := ClassifyRatio(tc.value, NUPLThresholds)
		assert.Equal(t, tc.label, got.Label, "nupl %.2f", tc.value)
	}
}

func TestClassifyRatio_Deterministic(t *testing.T) {
	a := ClassifyRatio(2.5, MVRVThresholds)
	b := ClassifyRatio(2.5, MVRVThresholds)
	assert.Equal(t, a, b)
}

func TestClassifyRatio_EmptyTable(t *testing.T) {
	got := ClassifyRatio(1.0, nil)
	assert.Empty(t, got.Label)
	assert.Equal(t, 1.0, got.Value)
}
