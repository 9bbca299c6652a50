package mapthin

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Result summarizes one thinning run. Residuals holds, for each dropped
// record, the worst absolute interpolation error across the configured
// genetic coordinates when that record is reconstructed from the retained
// set.
type Result struct {
	Input     int
	Kept      int
	Residuals []float64
}

func (r Result) Dropped() int {
	return r.Input - r.Kept
}

// Stats reports the maximum, mean, standard deviation, and 0.99 quantile of
// the dropped-record residuals. All zero when nothing was dropped.
func (r Result) Stats() (max, mean, stddev, p99 float64) {
	if len(r.Residuals) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(r.Residuals))
	copy(sorted, r.Residuals)
	sort.Float64s(sorted)

	mean, stddev = stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		stddev = 0
	}

	return floats.Max(sorted), mean, stddev, stat.Quantile(0.99, stat.LinInterp, sorted, nil)
}

// String renders the one-line summary the command-line tools log per
// chromosome.
func (r Result) String() string {
	if r.Dropped() == 0 {
		return fmt.Sprintf("kept all %d records", r.Input)
	}

	max, mean, stddev, p99 := r.Stats()

	return fmt.Sprintf("kept %d of %d records (dropped %d; residual cM max %.3g mean %.3g sd %.3g p99 %.3g)",
		r.Kept, r.Input, r.Dropped(), max, mean, stddev, p99)
}
