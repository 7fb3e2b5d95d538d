package chart

import (
	"encoding/json"
	"math"

	"chainboard/internal/domain/market"
	"chainboard/pkg/errors"
)

// Value marshals NaN as null so chart renderers skip undefined points
type Value float64

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(v)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(v))
}

// Dataset is one named numeric sequence of a payload
type Dataset struct {
	Label  string  `json:"label"`
	Values []Value `json:"values"`
}

// Payload is the uniform (labels, datasets) structure the rendering layer
// consumes. Every dataset has the same length as Labels; index i of every
// dataset corresponds to the date behind Labels[i].
type Payload struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// AddDataset appends an aligned dataset, enforcing the length invariant
func (p *Payload) AddDataset(label string, values []float64) error {
	if len(values) != len(p.Labels) {
		return errors.Wrapf(errors.ErrInvalidInput,
			"dataset %q has %d values for %d labels", label, len(values), len(p.Labels))
	}
	p.Datasets = append(p.Datasets, Dataset{Label: label, Values: toValues(values)})
	return nil
}

// Assemble builds a payload from a primary metric series and an optional price
// overlay. Overlay values join the primary series by calendar day; primary rows
// with no overlay match keep their position with a NaN overlay value. An empty
// primary series yields an empty payload, never an error.
func Assemble(metricLabel string, primary market.MetricSeries, overlay []market.PricePoint, tf Timeframe) Payload {
	payload := Payload{
		Labels:   []string{},
		Datasets: []Dataset{},
	}
	if len(primary) == 0 {
		return payload
	}

	layout := tf.LabelFormat()
	values := make([]Value, len(primary))
	for i, p := range primary {
		payload.Labels = append(payload.Labels, p.Date.Format(layout))
		values[i] = Value(p.Value)
	}
	payload.Datasets = append(payload.Datasets, Dataset{Label: metricLabel, Values: values})

	if len(overlay) == 0 {
		return payload
	}

	byDay := make(map[string]float64, len(overlay))
	for _, pp := range overlay {
		byDay[pp.Date.Format("2006-01-02")] = pp.Close
	}

	joined := make([]Value, len(primary))
	for i, p := range primary {
		if px, ok := byDay[p.Date.Format("2006-01-02")]; ok {
			joined[i] = Value(px)
		} else {
			joined[i] = Value(math.NaN())
		}
	}
	payload.Datasets = append(payload.Datasets, Dataset{Label: "price", Values: joined})

	return payload
}

// LogFloor clamps non-positive values to 1 so they survive a logarithmic axis.
// NaN entries pass through untouched.
func LogFloor(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if !math.IsNaN(v) && v < 1 {
			out[i] = 1
			continue
		}
		out[i] = v
	}
	return out
}

func toValues(values []float64) []Value {
	out := make([]Value, len(values))
	for i, v := range values {
		out[i] = Value(v)
	}
	return out
}
