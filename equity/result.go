package equity

import (
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/lox/holdem-equity/internal/statistics"
)

// Outcome is the result for one participant. Win, Tie and Equity are
// fractions in [0, 1] of the total branch weight.
type Outcome struct {
	// Win is the share of branches won outright.
	Win float64
	// Tie is the share of branches tied for the best hand.
	Tie float64
	// Equity is the expected pot share, counting a t-way tie as 1/t.
	Equity float64
	// Variance is the variance of the per-branch pot share.
	Variance float64
	// StdErr is the standard error of Equity. Exact results have none.
	StdErr float64
}

// ConfidenceInterval returns the interval around Equity at the given
// confidence level in (0, 1), clamped to [0, 1]. Exact outcomes and levels
// at or below 0 give the zero-width interval at Equity; levels at or above 1
// give [0, 1].
func (o Outcome) ConfidenceInterval(level float64) (float64, float64) {
	switch {
	case o.StdErr == 0 || math.IsNaN(level) || level <= 0:
		return o.Equity, o.Equity
	case level >= 1:
		return 0, 1
	}
	margin := statistics.ZValue(level) * o.StdErr
	return max(o.Equity-margin, 0), min(o.Equity+margin, 1)
}

// Result holds one Outcome per participant, in request order.
type Result struct {
	Outcomes []Outcome
	// Mode is Exact or MonteCarlo, never Auto.
	Mode Mode
	// Branches is the number of completions enumerated or trials simulated.
	Branches int64
	// Seed is the base seed of a simulation.
	Seed    uint64
	Chunks  int
	Workers int
	Elapsed time.Duration
}

// Equities returns the equity of every participant.
func (r *Result) Equities() []float64 {
	return lo.Map(r.Outcomes, func(o Outcome, _ int) float64 {
		return o.Equity
	})
}

func newResult(total tally, mode Mode) *Result {
	res := &Result{
		Outcomes: make([]Outcome, len(total.wins)),
		Mode:     mode,
		Branches: total.branches,
	}
	if total.weight == 0 {
		return res
	}
	for i := range res.Outcomes {
		o := Outcome{
			Win:      total.wins[i] / total.weight,
			Tie:      total.ties[i] / total.weight,
			Equity:   total.shares[i] / total.weight,
			Variance: total.moments[i].Variance(),
		}
		if mode == MonteCarlo {
			o.StdErr = total.moments[i].StdError()
		}
		res.Outcomes[i] = o
	}
	return res
}
