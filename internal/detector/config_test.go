package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1.0, cfg.MinATRMultiple)
	assert.Equal(t, 1.2, cfg.MinVolumeRatio)
	assert.Equal(t, 10, cfg.MaxTimeBars)
	assert.Equal(t, 20, cfg.FXLookback)
	assert.Equal(t, 3, cfg.FXMinStrength)
	assert.Equal(t, 10, cfg.BILookback)
	assert.Equal(t, 0.0, cfg.BIMinPower)
	assert.False(t, cfg.CHOCHMomentumRequired)
	assert.False(t, cfg.CHOCHInternalStructureRequired)
}

func TestWithDefaults_FillsZeroValues(t *testing.T) {
	assert.Equal(t, DefaultConfig(), Config{}.withDefaults())
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{MinATRMultiple: 2.5, MaxTimeBars: 30}.withDefaults()

	assert.Equal(t, 2.5, cfg.MinATRMultiple)
	assert.Equal(t, 30, cfg.MaxTimeBars)
	assert.Equal(t, 1.2, cfg.MinVolumeRatio)
}

func TestValidate_RejectsNegatives(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"min_atr_multiple", Config{MinATRMultiple: -1}},
		{"min_volume_ratio", Config{MinVolumeRatio: -0.1}},
		{"max_time_bars", Config{MaxTimeBars: -5}},
		{"fx_lookback", Config{FXLookback: -1}},
		{"fx_min_strength", Config{FXMinStrength: -3}},
		{"bi_lookback", Config{BILookback: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{MinATRMultiple: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_atr_multiple")
}

func TestNew_AppliesDefaults(t *testing.T) {
	det, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), det.cfg)
}
