// Package stats holds the inferential pieces of the engine. Unlike the
// descriptive KPIs, the bootstrap consumes randomness, so the random
// source is an explicit injected dependency: tests fix the seed and
// assert exact intervals.
package stats

import (
	"math/rand"
	"sort"
)

// DefaultIterations is the bootstrap resample count when the caller does
// not choose one.
const DefaultIterations = 2000

// CI is a point estimate of a mean difference with a 95% percentile
// bootstrap interval. Percentile, not bias-corrected: Lo <= Hi always
// holds, but Diff is not guaranteed to fall inside [Lo, Hi].
type CI struct {
	Diff float64 `json:"diff"`
	Lo   float64 `json:"lo"`
	Hi   float64 `json:"hi"`
}

// Estimator runs percentile bootstraps against a seedable random source.
type Estimator struct {
	rng   *rand.Rand
	iters int
}

// NewEstimator builds an estimator around rng. iters <= 0 selects
// DefaultIterations.
func NewEstimator(rng *rand.Rand, iters int) *Estimator {
	if iters <= 0 {
		iters = DefaultIterations
	}
	return &Estimator{rng: rng, iters: iters}
}

// Mean is the arithmetic mean with an empty sample defined as 0.
func Mean(sample []float64) float64 {
	var sum float64
	for _, v := range sample {
		sum += v
	}
	n := float64(len(sample))
	if n == 0 {
		n = 1
	}
	return sum / n
}

// MeanDiffCI estimates mean(a) - mean(b) and its 95% interval by
// resampling both samples with replacement iters times. Either sample may
// be empty; the interval then collapses around the degenerate point
// estimate.
func (e *Estimator) MeanDiffCI(a, b []float64) CI {
	diffs := make([]float64, e.iters)
	for i := 0; i < e.iters; i++ {
		diffs[i] = Mean(e.resample(a)) - Mean(e.resample(b))
	}
	sort.Float64s(diffs)

	lo := diffs[int(0.025*float64(e.iters))]
	hi := diffs[int(0.975*float64(e.iters))]
	return CI{Diff: Mean(a) - Mean(b), Lo: lo, Hi: hi}
}

func (e *Estimator) resample(sample []float64) []float64 {
	if len(sample) == 0 {
		return nil
	}
	out := make([]float64, len(sample))
	for i := range out {
		out[i] = sample[e.rng.Intn(len(sample))]
	}
	return out
}
