package equity

import (
	"context"
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/analysis"
	"github.com/lox/holdem-equity/poker"
)

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 4
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(cfg,
		WithLogger(zerolog.New(zerolog.NewTestWriter(t))),
		WithClock(quartz.NewMock(t)),
	)
	require.NoError(t, err)
	return e
}

func ranges(t *testing.T, notations ...string) []*analysis.Range {
	t.Helper()
	out := make([]*analysis.Range, len(notations))
	for i, n := range notations {
		r, err := analysis.ParseRange(n, 0)
		require.NoError(t, err)
		out[i] = r
	}
	return out
}

func seed(v uint64) *uint64 {
	return &v
}

func assertSumsToOne(t *testing.T, res *Result) {
	t.Helper()
	total := 0.0
	for _, o := range res.Outcomes {
		assert.GreaterOrEqual(t, o.Equity, 0.0)
		assert.LessOrEqual(t, o.Equity, 1.0)
		total += o.Equity
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestAcesVersusKings(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)

	res, err := e.Compute(context.Background(), Request{
		Participants: ranges(t, "AhAs", "KhKs"),
	})
	require.NoError(t, err)

	assert.Equal(t, Exact, res.Mode)
	assert.Equal(t, int64(1712304), res.Branches)
	assert.InDelta(t, 0.82, res.Outcomes[0].Equity, 0.01)
	assert.InDelta(t, res.Outcomes[0].Win+res.Outcomes[0].Tie/2, res.Outcomes[0].Equity, 1e-9)
	assert.Zero(t, res.Outcomes[0].StdErr)
	assertSumsToOne(t, res)
}

func TestBoardPlaysSplitsPot(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)

	res, err := e.Compute(context.Background(), Request{
		Participants: ranges(t, "2c3d", "4s5s"),
		Board:        poker.MustParseCardSet("Ah Kd Qc Jh Ts"),
	})
	require.NoError(t, err)

	require.Len(t, res.Outcomes, 2)
	for _, o := range res.Outcomes {
		assert.InDelta(t, 0.5, o.Equity, 1e-12)
		assert.InDelta(t, 1.0, o.Tie, 1e-12)
		assert.Zero(t, o.Win)
	}
	assert.Equal(t, int64(1), res.Branches)
}

func TestThreeWayTieSplitsEvenly(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)

	res, err := e.Compute(context.Background(), Request{
		Participants: ranges(t, "2c3d", "4s5s", "6h7h"),
		Board:        poker.MustParseCardSet("Ah Kd Qc Jh Ts"),
	})
	require.NoError(t, err)
	for _, o := range res.Outcomes {
		assert.InDelta(t, 1.0/3, o.Equity, 1e-12)
	}
}

func TestRiverWinner(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)

	res, err := e.Compute(context.Background(), Request{
		Participants: ranges(t, "AsAd", "KsKd"),
		Board:        poker.MustParseCardSet("Ac 7d 2h 9s 4c"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Outcomes[0].Win)
	assert.Equal(t, 0.0, res.Outcomes[1].Equity)
}

func TestWeightedRangeMatchesMixture(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	board := poker.MustParseCardSet("2c 7d 9h")

	equityOf := func(hero, villain string) float64 {
		res, err := e.Compute(context.Background(), Request{
			Participants: ranges(t, hero, villain),
			Board:        board,
			Mode:         Exact,
		})
		require.NoError(t, err)
		return res.Outcomes[0].Equity
	}

	vsKings := equityOf("AhAs", "KhKs")
	vsQueens := equityOf("AhAs", "QhQs")
	mixed := equityOf("AhAs", "KhKs:0.5, QhQs")

	assert.InDelta(t, (0.5*vsKings+vsQueens)/1.5, mixed, 1e-12)
}

func TestMonteCarloConvergesToExact(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	req := Request{
		Participants: ranges(t, "AhKh", "QQ, JJ, AQs, KTs+"),
		Board:        poker.MustParseCardSet("Kc 7d 2h"),
	}

	req.Mode = Exact
	exact, err := e.Compute(context.Background(), req)
	require.NoError(t, err)

	req.Mode = MonteCarlo
	req.Trials = 100_000
	req.Seed = seed(2024)
	sim, err := e.Compute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, MonteCarlo, sim.Mode)
	assert.Equal(t, int64(100_000), sim.Branches)
	for i := range exact.Outcomes {
		assert.InDelta(t, exact.Outcomes[i].Equity, sim.Outcomes[i].Equity, 0.005, "participant %d", i)
		assert.Positive(t, sim.Outcomes[i].StdErr)
	}
	assertSumsToOne(t, sim)

	lo, hi := sim.Outcomes[0].ConfidenceInterval(0.95)
	assert.Less(t, lo, sim.Outcomes[0].Equity)
	assert.Greater(t, hi, sim.Outcomes[0].Equity)
}

func TestExactParallelMatchesSequential(t *testing.T) {
	t.Parallel()
	req := Request{
		Participants: ranges(t, "QQ+, AKs", "JJ-99, AQs, KQo"),
		Board:        poker.MustParseCardSet("2c 7d Th"),
		Mode:         Exact,
	}

	sequential := newTestEngine(t, func(c *Config) { c.Workers = 1 })
	parallel := newTestEngine(t, func(c *Config) { c.Workers = 8 })

	a, err := sequential.Compute(context.Background(), req)
	require.NoError(t, err)
	b, err := parallel.Compute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Workers)
	assert.Equal(t, 8, b.Workers)
	assert.Greater(t, b.Chunks, 1)
	assert.Equal(t, a.Chunks, b.Chunks)
	assert.Equal(t, a.Branches, b.Branches)
	assert.Equal(t, a.Outcomes, b.Outcomes, "parallel exact results must be bit-identical")
	assertSumsToOne(t, a)
}

func TestSimulationParallelMatchesSequential(t *testing.T) {
	t.Parallel()
	req := Request{
		Participants: ranges(t, "22+, A2s+", "KTo+, QJs", "AhKd"),
		Mode:         MonteCarlo,
		Trials:       20_000,
		Seed:         seed(7),
	}

	sequential := newTestEngine(t, func(c *Config) { c.Workers = 1 })
	parallel := newTestEngine(t, func(c *Config) { c.Workers = 8 })

	a, err := sequential.Compute(context.Background(), req)
	require.NoError(t, err)
	b, err := parallel.Compute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), a.Seed)
	assert.Equal(t, 20, a.Chunks)
	assert.Equal(t, a.Outcomes, b.Outcomes, "parallel simulation must match sequential")
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	req := Request{
		Participants: ranges(t, "AKs", "QQ"),
		Mode:         MonteCarlo,
		Trials:       5_000,
		Seed:         seed(99),
	}

	a, err := e.Compute(context.Background(), req)
	require.NoError(t, err)
	b, err := e.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a.Outcomes, b.Outcomes)

	req.Seed = seed(100)
	c, err := e.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, a.Outcomes, c.Outcomes)
}

func TestConfigSeedUsedWhenRequestHasNone(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, func(c *Config) { c.Seed = seed(11) })
	res, err := e.Compute(context.Background(), Request{
		Participants: ranges(t, "AKs", "QQ"),
		Mode:         MonteCarlo,
		Trials:       1_000,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), res.Seed)
}

func TestAutoModeFallsBackToSimulation(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, func(c *Config) {
		c.ExactThreshold = 1000
		c.Trials = 2_000
	})

	res, err := e.Compute(context.Background(), Request{
		Participants: ranges(t, "AhAs", "KhKs"),
	})
	require.NoError(t, err)
	assert.Equal(t, MonteCarlo, res.Mode)
	assert.Equal(t, int64(2_000), res.Branches)
	assert.InDelta(t, 0.82, res.Outcomes[0].Equity, 0.05)
}

func TestElapsedUsesClock(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	res, err := e.Compute(context.Background(), Request{
		Participants: ranges(t, "2c3d", "4s5s"),
		Board:        poker.MustParseCardSet("Ah Kd Qc Jh Ts"),
	})
	require.NoError(t, err)
	// The mock clock never moves on its own.
	assert.Zero(t, res.Elapsed)
}

func TestCancelledRequest(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		e := newTestEngine(t, func(c *Config) { c.Workers = workers })
		res, err := e.Compute(ctx, Request{
			Participants: ranges(t, "QQ+", "AKs, AQs"),
			Mode:         MonteCarlo,
			Trials:       10_000,
			Seed:         seed(1),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Nil(t, res)
	}
}

func TestRequestValidation(t *testing.T) {
	t.Parallel()
	anyTwo := analysis.NewRange()
	for a := range 52 {
		for b := a + 1; b < 52; b++ {
			h, err := poker.NewHoleCards(poker.CardFromIndex(a), poker.CardFromIndex(b))
			require.NoError(t, err)
			anyTwo.Add(h, 1)
		}
	}
	require.Equal(t, 1326, anyTwo.Size())

	tests := []struct {
		name     string
		req      Request
		conflict bool
	}{
		{
			name: "single participant",
			req:  Request{Participants: ranges(t, "AA")},
		},
		{
			name: "two card board",
			req:  Request{Participants: ranges(t, "AA", "KK"), Board: poker.MustParseCardSet("2c 3d")},
		},
		{
			name:     "board overlaps dead",
			req:      Request{Participants: ranges(t, "AA", "KK"), Board: poker.MustParseCardSet("2c 3d 4h"), Dead: poker.MustParseCardSet("2c")},
			conflict: true,
		},
		{
			name:     "hole cards shared",
			req:      Request{Participants: ranges(t, "AhKh", "AhQd")},
			conflict: true,
		},
		{
			name:     "hole card on board",
			req:      Request{Participants: ranges(t, "AhKh", "QQ"), Board: poker.MustParseCardSet("Ah 7d 2c")},
			conflict: true,
		},
		{
			name:     "hole card dead",
			req:      Request{Participants: ranges(t, "AhKh", "QQ"), Dead: poker.MustParseCardSet("Kh")},
			conflict: true,
		},
		{
			name:     "no disjoint assignment",
			req:      Request{Participants: ranges(t, "AA", "AA", "AA")},
			conflict: true,
		},
		{
			name: "empty range",
			req:  Request{Participants: []*analysis.Range{analysis.NewRange(), analysis.MustParseRange("AA")}},
		},
		{
			name: "nil range",
			req:  Request{Participants: []*analysis.Range{nil, analysis.MustParseRange("AA")}},
		},
		{
			name: "negative trials",
			req:  Request{Participants: ranges(t, "AA", "KK"), Trials: -1},
		},
		{
			name: "negative workers",
			req:  Request{Participants: ranges(t, "AA", "KK"), Workers: -2},
		},
		{
			name: "too many participants for the deck",
			req: Request{Participants: []*analysis.Range{
				anyTwo, anyTwo, anyTwo, anyTwo, anyTwo, anyTwo, anyTwo, anyTwo,
				anyTwo, anyTwo, anyTwo, anyTwo, anyTwo, anyTwo, anyTwo, anyTwo,
				anyTwo, anyTwo, anyTwo, anyTwo, anyTwo, anyTwo, anyTwo, anyTwo,
			}},
		},
	}

	e := newTestEngine(t, nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := e.Compute(context.Background(), tc.req)
			require.Error(t, err)
			assert.Nil(t, res)

			var conflict *CardConflictError
			var cfgErr *ConfigError
			if tc.conflict {
				assert.True(t, errors.As(err, &conflict), "want CardConflictError, got %T: %v", err, err)
			} else {
				assert.True(t, errors.As(err, &cfgErr), "want ConfigError, got %T: %v", err, err)
			}
		})
	}
}

func TestPackageCompute(t *testing.T) {
	t.Parallel()
	res, err := Compute(context.Background(), Request{
		Participants: ranges(t, "AsAd", "KsKd"),
		Board:        poker.MustParseCardSet("Ac 7d 2h 9s"),
	})
	require.NoError(t, err)
	assert.Equal(t, Exact, res.Mode)
	assert.Equal(t, int64(44), res.Branches)
	assert.Equal(t, []float64{res.Outcomes[0].Equity, res.Outcomes[1].Equity}, res.Equities())
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Mode{"": Auto, "auto": Auto, "Exact": Exact, "mc": MonteCarlo, "montecarlo": MonteCarlo} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		if in != "" {
			assert.Contains(t, []string{"auto", "exact", "montecarlo"}, got.String())
		}
	}
	_, err := ParseMode("fast")
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func BenchmarkExactRangeVsRange(b *testing.B) {
	e, err := New(DefaultConfig())
	require.NoError(b, err)
	req := Request{
		Participants: []*analysis.Range{analysis.MustParseRange("QQ+, AKs"), analysis.MustParseRange("JJ-99, AQs")},
		Board:        poker.MustParseCardSet("2c 7d Th"),
		Mode:         Exact,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Compute(context.Background(), req); err != nil {
			b.Fatal(err)
		}
	}
}
