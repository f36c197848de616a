// Package statistics provides the summary statistics the benchmark reports
// over per-scenario utility scores.
package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// ConfidenceInterval holds the result of a bootstrap confidence interval
// computation over a set of scenario scores.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 10000

// BootstrapCI computes a bootstrap confidence interval over the given scores
// using the percentile method. confidenceLevel should be in (0, 1), e.g. 0.95.
// Returns a degenerate interval when fewer than 2 scores exist.
func BootstrapCI(scores []float64, confidenceLevel float64) ConfidenceInterval {
	return BootstrapCIWithSeed(scores, confidenceLevel, -1)
}

// BootstrapCIWithSeed is like BootstrapCI but accepts a seed for reproducibility.
// A negative seed uses a non-deterministic source.
func BootstrapCIWithSeed(scores []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	n := len(scores)
	if n < 2 {
		m := Mean(scores)
		return ConfidenceInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: confidenceLevel,
			NumBootstraps:   0,
		}
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	m := Mean(scores)
	iters := DefaultBootstrapIterations

	// Bootstrap: resample with replacement, compute mean of each resample
	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = scores[rng.Intn(n)]
		}
		bootMeans[i] = Mean(sample)
	}

	sort.Float64s(bootMeans)

	// Percentile method
	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return ConfidenceInterval{
		Lower:           bootMeans[loIdx],
		Upper:           bootMeans[hiIdx],
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// WeightedMean returns the mean of values weighted by weights, or 0 when
// the total weight is not positive. Used for the scenario-count-weighted
// overall aggregate across models.
func WeightedMean(values []float64, weights []int) float64 {
	var sum, total float64
	for i, v := range values {
		w := float64(weights[i])
		sum += v * w
		total += w
	}
	if total <= 0 {
		return 0.0
	}
	return sum / total
}
