package indicators

// Threshold is one (upperBound, label) pair of a classification table
type Threshold struct {
	UpperBound float64
	Label      string
}

// Classification is a ratio with its bucket label, returned to single-indicator displays
type Classification struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// MVRVThresholds buckets the market-value-to-realized-value ratio.
// Above 3.7 the market has historically been near cycle tops.
var MVRVThresholds = []Threshold{
	{UpperBound: 1.0, Label: "Undervalued"},
	{UpperBound: 3.7, Label: "Fair Value"},
	{Label: "Overvalued"},
}

// NUPLThresholds buckets net unrealized profit/loss into the usual sentiment bands
var NUPLThresholds = []Threshold{
	{UpperBound: 0, Label: "Capitulation"},
	{UpperBound: 0.25, Label: "Hope"},
	{UpperBound: 0.5, Label: "Optimism"},
	{UpperBound: 0.75, Label: "Belief"},
	{Label: "Euphoria"},
}

// ClassifyRatio evaluates thresholds in order; the first bound the value is <=
// wins, and the final entry is the overflow bucket. Pure function of its inputs.
func ClassifyRatio(value float64, thresholds []Threshold) Classification {
	for i, t := range thresholds {
		if i == len(thresholds)-1 {
			break
		}
		if value <= t.UpperBound {
			return Classification{Value: value, Label: t.Label}
		}
	}
	if len(thresholds) == 0 {
		return Classification{Value: value}
	}
	return Classification{Value: value, Label: thresholds[len(thresholds)-1].Label}
}
