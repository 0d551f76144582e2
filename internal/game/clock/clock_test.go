package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hmelgaard/beforefall/internal/game/clock"
)

func TestAdvance_SimpleMinutes(t *testing.T) {
	c := clock.New()
	// 1 real second at speed 10 = 10 game minutes.
	c.Advance(1000)
	assert.Equal(t, 7, c.Hour)
	assert.InDelta(t, 10.0, c.Minute, 1e-9)
}

func TestAdvance_HourRollover(t *testing.T) {
	c := clock.New()
	c.Minute = 55
	c.Advance(1000) // +10 minutes
	assert.Equal(t, 8, c.Hour)
	assert.InDelta(t, 5.0, c.Minute, 1e-9)
}

func TestAdvance_MultiBoundaryRollover(t *testing.T) {
	// From day 1, 23:50, advance 1500 game minutes (150000 real ms at speed 10).
	// 23:50 + 25h00m = day 2, 00:50.
	c := clock.New()
	c.Hour = 23
	c.Minute = 50
	c.Advance(150000)
	assert.Equal(t, 2, c.Day, "crossing midnight must increment the day")
	assert.Equal(t, 0, c.Hour)
	assert.InDelta(t, 50.0, c.Minute, 1e-9)
}

func TestAdvance_LargeDeltaEqualsManySmall(t *testing.T) {
	big := clock.New()
	small := clock.New()

	// 3 game days in one call vs. 432 ten-minute steps.
	big.Advance(432 * 1000)
	for i := 0; i < 432; i++ {
		small.Advance(1000)
	}

	assert.Equal(t, big.Day, small.Day)
	assert.Equal(t, big.Hour, small.Hour)
	assert.InDelta(t, big.Minute, small.Minute, 1e-6)
}

func TestAdvance_PausedIsNoOp(t *testing.T) {
	c := clock.New()
	c.Pause()
	c.Advance(60000)
	assert.Equal(t, 1, c.Day)
	assert.Equal(t, 7, c.Hour)
	assert.Zero(t, c.Minute)
}

func TestAdvance_NegativeDeltaIgnored(t *testing.T) {
	c := clock.New()
	c.Advance(-5000)
	assert.Equal(t, 7, c.Hour)
	assert.Zero(t, c.Minute, "time never moves backwards")
}

func TestPauseResumeToggle(t *testing.T) {
	c := clock.New()
	c.Pause()
	c.Pause()
	require.True(t, c.Paused, "Pause is idempotent")
	c.Resume()
	c.Resume()
	require.False(t, c.Paused, "Resume is idempotent")
	c.Toggle()
	assert.True(t, c.Paused)
	c.Toggle()
	assert.False(t, c.Paused)
}

func TestPhase(t *testing.T) {
	cases := []struct {
		hour int
		want clock.DayPhase
	}{
		{0, clock.Night},
		{5, clock.Night},
		{6, clock.Morning},
		{11, clock.Morning},
		{12, clock.Afternoon},
		{17, clock.Afternoon},
		{18, clock.Evening},
		{21, clock.Evening},
		{22, clock.Night},
		{23, clock.Night},
	}
	c := clock.New()
	for _, tc := range cases {
		c.Hour = tc.hour
		assert.Equal(t, tc.want, c.Phase(), "hour %d", tc.hour)
	}
}

func TestFormattedTime(t *testing.T) {
	c := clock.New()
	c.Hour = 9
	c.Minute = 5.7
	assert.Equal(t, "09:05", c.FormattedTime())
}

func TestReset(t *testing.T) {
	c := clock.New()
	c.Advance(500000)
	c.Reset()
	assert.Equal(t, 1, c.Day)
	assert.Equal(t, 6, c.Hour)
	assert.Zero(t, c.Minute)
	assert.True(t, c.Paused, "a reset game starts paused")
}

// TestAdvance_Normalized_Property verifies the clock invariant holds for
// arbitrary advance patterns.
func TestAdvance_Normalized_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := clock.New()
		deltas := rapid.SliceOfN(rapid.Float64Range(0, 1e7), 1, 50).Draw(rt, "deltas")
		for _, d := range deltas {
			c.Advance(d)
			assert.GreaterOrEqual(rt, c.Minute, 0.0)
			assert.Less(rt, c.Minute, 60.0)
			assert.GreaterOrEqual(rt, c.Hour, 0)
			assert.Less(rt, c.Hour, 24)
			assert.GreaterOrEqual(rt, c.Day, 1)
		}
	})
}
