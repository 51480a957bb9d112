package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hour(i int) time.Time {
	return time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC)
}

func TestOrderBlock_Geometry(t *testing.T) {
	ob := OrderBlock{Upper: 106, Lower: 104}

	assert.Equal(t, 2.0, ob.Size())
	assert.Equal(t, 105.0, ob.Center())
}

func TestOrderBlock_Contains(t *testing.T) {
	ob := OrderBlock{Upper: 106, Lower: 104}

	assert.True(t, ob.Contains(105))
	assert.True(t, ob.Contains(104)) // bordes incluidos
	assert.True(t, ob.Contains(106))
	assert.False(t, ob.Contains(103.99))
	assert.False(t, ob.Contains(106.01))
}

func TestOrderBlock_DistanceTo(t *testing.T) {
	ob := OrderBlock{Upper: 106, Lower: 104}

	assert.Equal(t, 0.0, ob.DistanceTo(105))
	assert.Equal(t, 4.0, ob.DistanceTo(110))
	assert.Equal(t, 4.0, ob.DistanceTo(100))
}

func TestOrderBlock_Volume(t *testing.T) {
	ob := OrderBlock{Candle: Bar{Volume: 1500}}
	assert.Equal(t, 1500.0, ob.Volume())
}

func TestFractal_Strength(t *testing.T) {
	f := Fractal{Elements: []Bar{{}, {}, {}}}
	assert.Equal(t, 3, f.Strength())
	assert.Equal(t, 0, Fractal{}.Strength())
}

func TestFractal_MaxVolume(t *testing.T) {
	f := Fractal{Elements: []Bar{{Volume: 10}, {Volume: 30}, {Volume: 20}}}
	assert.Equal(t, 30.0, f.MaxVolume())
}

func TestStroke_Covers(t *testing.T) {
	s := Stroke{
		Start: Fractal{Timestamp: hour(0)},
		End:   Fractal{Timestamp: hour(5)},
	}

	assert.True(t, s.Covers(hour(0)))
	assert.True(t, s.Covers(hour(3)))
	assert.True(t, s.Covers(hour(5)))
	assert.False(t, s.Covers(hour(6)))
}
