package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "quality: low\nseed: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, QualityLow, cfg.QualityTier())
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 1.0, cfg.TimeScale)
	assert.Equal(t, DefaultBaseFadeRate, cfg.BaseFadeRate)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadClampsAndRejects(t *testing.T) {
	cfg, err := Load(writeConfig(t, "time_scale: 100\nbase_fade_rate: -2\n"))
	require.NoError(t, err)
	assert.Equal(t, MaxTimeScale, cfg.TimeScale)
	assert.Equal(t, DefaultBaseFadeRate, cfg.BaseFadeRate)

	_, err = Load(writeConfig(t, "quality: ultra\n"))
	assert.Error(t, err)
	_, err = Load(writeConfig(t, "log_level: loud\n"))
	assert.Error(t, err)
	_, err = Load(writeConfig(t, "quality: [\n"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestQualityTable(t *testing.T) {
	q, err := ParseQuality(" Medium ")
	require.NoError(t, err)
	assert.Equal(t, QualityMedium, q)
	assert.Equal(t, "medium", q.String())

	assert.Equal(t, 0.7, QualityLow.LifeMultiplier())
	assert.Equal(t, 1.0, QualityHigh.LifeMultiplier())
	assert.Equal(t, 0.0, QualityHigh.PopupSkipChance())
	assert.Greater(t, QualityLow.PopupSkipChance(), QualityMedium.PopupSkipChance())

	assert.Equal(t, 1, QualityLow.Count(1))
	assert.Equal(t, 4, QualityLow.Count(10))
	assert.Equal(t, 10, QualityHigh.Count(10))
	assert.Equal(t, 6, QualityLow.Segments(8, 6))
	assert.Equal(t, 24, QualityLow.Segments(48, 12))

	// out of range values behave like high
	assert.Equal(t, 1.0, Quality(9).LifeMultiplier())
}

func TestLoadTiersAscending(t *testing.T) {
	for i := 1; i < len(LoadTiers); i++ {
		assert.Less(t, LoadTiers[i-1].BelowFPS, LoadTiers[i].BelowFPS)
		assert.Less(t, LoadTiers[i-1].MaxBudget, LoadTiers[i].MaxBudget)
		assert.Greater(t, LoadTiers[i-1].FadeBoost, LoadTiers[i].FadeBoost)
	}
	last := LoadTiers[len(LoadTiers)-1]
	assert.Less(t, last.MaxBudget, DefaultLoadTier.MaxBudget)
}
