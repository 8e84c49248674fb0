package equity

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/analysis"
	"github.com/lox/holdem-equity/poker"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "equity.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
trials          = 250000
workers         = 3
exact_threshold = 5000
seed            = 42
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 250000, cfg.Trials)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, int64(5000), cfg.ExactThreshold)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
}

func TestLoadConfigDefaultsForOmittedValues(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "equity.hcl")
	require.NoError(t, os.WriteFile(path, []byte("workers = 2\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, defaultTrials, cfg.Trials)
	assert.Equal(t, int64(defaultExactThreshold), cfg.ExactThreshold)
	assert.Nil(t, cfg.Seed)
}

func TestLoadConfigExplicitZeroThreshold(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "equity.hcl")
	require.NoError(t, os.WriteFile(path, []byte("exact_threshold = 0\nseed = 9\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.ExactThreshold)
	assert.Equal(t, defaultTrials, cfg.Trials)

	cfg.Trials = 500
	e, err := New(cfg)
	require.NoError(t, err)
	res, err := e.Compute(context.Background(), Request{
		Participants: []*analysis.Range{
			analysis.MustParseRange("AhAs"),
			analysis.MustParseRange("KhKs"),
		},
		Board: poker.MustParseCardSet("2c 7d 9h 3s"),
	})
	require.NoError(t, err)
	assert.Equal(t, MonteCarlo, res.Mode)
	assert.Equal(t, int64(500), res.Branches)
	assert.Equal(t, uint64(9), res.Seed)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.hcl")
	require.NoError(t, os.WriteFile(bad, []byte("trials = \n"), 0o600))
	_, err := LoadConfig(bad)
	assert.Error(t, err)

	negative := filepath.Join(dir, "negative.hcl")
	require.NoError(t, os.WriteFile(negative, []byte("trials = -5\n"), 0o600))
	_, err = LoadConfig(negative)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Trials = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ExactThreshold = -1
	assert.Error(t, cfg.Validate())

	_, err := New(Config{})
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
