// Package statistics accumulates running sample moments that can be merged
// across independently computed chunks.
package statistics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Moments tracks a weighted sample through its count and the sums of its
// values and squared values.
type Moments struct {
	N     float64
	Sum   float64
	SumSq float64 // Sum of squares for variance calculation
}

// Add incorporates one observation with weight 1.
func (m *Moments) Add(x float64) {
	m.AddWeighted(x, 1)
}

// AddWeighted incorporates an observation counted w times.
func (m *Moments) AddWeighted(x, w float64) {
	m.N += w
	m.Sum += w * x
	m.SumSq += w * x * x
}

// Merge adds the observations of other into m.
func (m *Moments) Merge(other Moments) {
	m.N += other.N
	m.Sum += other.Sum
	m.SumSq += other.SumSq
}

// Mean returns the arithmetic mean of the observations.
func (m Moments) Mean() float64 {
	if m.N == 0 {
		return 0
	}
	return m.Sum / m.N
}

// Variance returns the sample variance of the observations.
func (m Moments) Variance() float64 {
	if m.N < 2 {
		return 0
	}
	mean := m.Mean()
	v := (m.SumSq - m.N*mean*mean) / (m.N - 1)
	return max(v, 0)
}

// StdDev returns the sample standard deviation.
func (m Moments) StdDev() float64 {
	return math.Sqrt(m.Variance())
}

// StdError returns the standard error of the mean.
func (m Moments) StdError() float64 {
	if m.N == 0 {
		return 0
	}
	return m.StdDev() / math.Sqrt(m.N)
}

// ConfidenceInterval returns the two-sided interval for the mean at the
// given confidence level in (0, 1), e.g. 0.95.
func (m Moments) ConfidenceInterval(level float64) (float64, float64) {
	mean := m.Mean()
	se := m.StdError()
	if se == 0 {
		return mean, mean
	}
	margin := ZValue(level) * se
	return mean - margin, mean + margin
}

// ZValue returns the two-tailed standard normal quantile for a confidence
// level in (0, 1). Levels at or below 0 give 0 and levels at or above 1 give
// +Inf.
func ZValue(level float64) float64 {
	switch {
	case math.IsNaN(level) || level <= 0:
		return 0
	case level >= 1:
		return math.Inf(1)
	}
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	return dist.Quantile((1 + level) / 2)
}
