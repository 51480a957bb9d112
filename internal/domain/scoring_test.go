package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConvictionScore_AllFactorsPositive(t *testing.T) {
	assert.InDelta(t, 1.0, ConvictionScore(true, 1.0, true), 0.0001)
}

func TestConvictionScore_VolumeNotConfirmed(t *testing.T) {
	// (0.5 + 0.5 + 1.0) / 3
	assert.InDelta(t, 0.6667, ConvictionScore(false, 0.5, true), 0.001)
}

func TestConvictionScore_MomentumNotAligned(t *testing.T) {
	// (1.0 + 0.4 + 0.7) / 3 = 0.7 exacto: justo en el umbral
	score := ConvictionScore(true, 0.4, false)
	assert.InDelta(t, 0.7, score, 0.0001)
	assert.True(t, Confirmed(score))
}

func TestConvictionScore_WorstCase(t *testing.T) {
	// (0.5 + 0.0 + 0.7) / 3 = 0.4
	assert.InDelta(t, 0.4, ConvictionScore(false, 0.0, false), 0.0001)
}

func TestFalseBreakProbability_Complement(t *testing.T) {
	assert.InDelta(t, 0.3, FalseBreakProbability(0.7), 0.0001)
}

func TestFalseBreakProbability_FlooredAtZero(t *testing.T) {
	assert.Equal(t, 0.0, FalseBreakProbability(1.2))
}

func TestFollowThroughPotential(t *testing.T) {
	// 0.8×0.7 + 0.2×0.4 = 0.64
	assert.InDelta(t, 0.64, FollowThroughPotential(0.7, 0.4), 0.0001)
}

func TestTimeEfficiencyHours_Immediate(t *testing.T) {
	assert.InDelta(t, 1.0, TimeEfficiencyHours(0), 0.0001)
}

func TestTimeEfficiencyHours_HalfBase(t *testing.T) {
	assert.InDelta(t, 0.5, TimeEfficiencyHours(120*time.Hour), 0.0001)
}

func TestTimeEfficiencyHours_FlooredAtZero(t *testing.T) {
	assert.Equal(t, 0.0, TimeEfficiencyHours(300*time.Hour))
}

func TestTimeEfficiencyBars_Partial(t *testing.T) {
	assert.InDelta(t, 0.5, TimeEfficiencyBars(5, 10), 0.0001)
}

func TestTimeEfficiencyBars_CappedAtOne(t *testing.T) {
	assert.Equal(t, 1.0, TimeEfficiencyBars(15, 10))
}

func TestTimeEfficiencyBars_ZeroBase(t *testing.T) {
	assert.Equal(t, 0.0, TimeEfficiencyBars(3, 0))
}

func TestConfirmed_Threshold(t *testing.T) {
	assert.True(t, Confirmed(0.7))
	assert.True(t, Confirmed(0.95))
	assert.False(t, Confirmed(0.6999))
}
