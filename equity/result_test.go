package equity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeConfidenceInterval(t *testing.T) {
	t.Parallel()
	sampled := Outcome{Equity: 0.6, StdErr: 0.01}
	exact := Outcome{Equity: 0.6}

	tests := []struct {
		name    string
		outcome Outcome
		level   float64
		wantLo  float64
		wantHi  float64
	}{
		{name: "level one spans everything", outcome: sampled, level: 1, wantLo: 0, wantHi: 1},
		{name: "level above one", outcome: sampled, level: 1.5, wantLo: 0, wantHi: 1},
		{name: "level below minus one", outcome: sampled, level: -2, wantLo: 0.6, wantHi: 0.6},
		{name: "zero level", outcome: sampled, level: 0, wantLo: 0.6, wantHi: 0.6},
		{name: "nan level", outcome: sampled, level: math.NaN(), wantLo: 0.6, wantHi: 0.6},
		{name: "exact outcome", outcome: exact, level: 1, wantLo: 0.6, wantHi: 0.6},
		{name: "clamped at zero", outcome: Outcome{Equity: 0.001, StdErr: 0.01}, level: 0.95, wantLo: 0, wantHi: 0.001 + 1.959963984540054*0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var lo, hi float64
			assert.NotPanics(t, func() {
				lo, hi = tt.outcome.ConfidenceInterval(tt.level)
			})
			assert.InDelta(t, tt.wantLo, lo, 1e-9)
			assert.InDelta(t, tt.wantHi, hi, 1e-9)
		})
	}
}

func TestOutcomeConfidenceIntervalBracketsEquity(t *testing.T) {
	t.Parallel()
	o := Outcome{Equity: 0.5, StdErr: 0.02}
	lo, hi := o.ConfidenceInterval(0.95)
	assert.Less(t, lo, 0.5)
	assert.Greater(t, hi, 0.5)
	assert.InDelta(t, hi-0.5, 0.5-lo, 1e-12)
}
