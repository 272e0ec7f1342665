package results

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// PhaseSummary aggregates one timing phase over many trials.
type PhaseSummary struct {
	Count int
	Mean  time.Duration
	Std   time.Duration
}

// SummarizeDurations reports mean and standard deviation of a phase.
func SummarizeDurations(ds []time.Duration) PhaseSummary {
	if len(ds) == 0 {
		return PhaseSummary{}
	}
	xs := make([]float64, len(ds))
	for i, d := range ds {
		xs[i] = float64(d)
	}
	mean := stat.Mean(xs, nil)
	std := 0.0
	if len(xs) > 1 {
		std = stat.StdDev(xs, nil)
	}
	return PhaseSummary{
		Count: len(ds),
		Mean:  time.Duration(mean),
		Std:   time.Duration(std),
	}
}
