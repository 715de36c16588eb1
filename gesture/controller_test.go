package gesture_test

import (
	"math"
	"testing"
	"time"

	"github.com/plus3/handtris/gesture"
	"github.com/plus3/handtris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"origin", 0, 0},
		{"middle", 640, 5},
		{"right edge", 1280, 10},
		{"below range clamps", -200, 0},
		{"above range clamps", 2000, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, gesture.Normalize(tt.value, 0, 1280, 10), 1e-9)
		})
	}

	assert.Equal(t, 0.0, gesture.Normalize(5, 3, 3, 10), "degenerate source range")
}

func TestDebouncer(t *testing.T) {
	d := gesture.NewDebouncer(150 * time.Millisecond)

	assert.True(t, d.Allow(tetris.MoveLeft, 0))
	assert.False(t, d.Allow(tetris.MoveLeft, 50*time.Millisecond))
	assert.False(t, d.Allow(tetris.MoveLeft, 150*time.Millisecond), "window boundary is still debounced")
	assert.True(t, d.Allow(tetris.MoveRight, 60*time.Millisecond), "kinds are independent")
	assert.True(t, d.Allow(tetris.MoveLeft, 151*time.Millisecond))

	last, ok := d.Last(tetris.MoveLeft)
	require.True(t, ok)
	assert.Equal(t, 151*time.Millisecond, last)

	d.Reset()
	_, ok = d.Last(tetris.MoveLeft)
	assert.False(t, ok)
	assert.True(t, d.Allow(tetris.MoveLeft, 152*time.Millisecond))
}

func TestControllerZones(t *testing.T) {
	c := gesture.NewController(12, 1.0/6, 150*time.Millisecond)

	tests := []struct {
		name string
		sig  gesture.Signal
		want gesture.Zone
	}{
		{"not detected", gesture.Signal{X: 1}, gesture.NoSignal},
		{"far left", gesture.Signal{X: 0, Detected: true}, gesture.Left},
		{"just inside left margin", gesture.Signal{X: 3.9, Detected: true}, gesture.Left},
		{"left margin boundary", gesture.Signal{X: 4, Detected: true}, gesture.Centre},
		{"centre", gesture.Signal{X: 6, Detected: true}, gesture.Centre},
		{"right margin boundary", gesture.Signal{X: 8, Detected: true}, gesture.Centre},
		{"right", gesture.Signal{X: 8.1, Detected: true}, gesture.Right},
		{"right edge", gesture.Signal{X: 12, Detected: true}, gesture.Right},
		{"out of range", gesture.Signal{X: 13, Detected: true}, gesture.NoSignal},
		{"negative", gesture.Signal{X: -1, Detected: true}, gesture.NoSignal},
		{"nan", gesture.Signal{X: math.NaN(), Detected: true}, gesture.NoSignal},
		{"inf", gesture.Signal{X: math.Inf(1), Detected: true}, gesture.NoSignal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Zone(tt.sig))
		})
	}
}

func TestControllerDebouncesHeldGesture(t *testing.T) {
	c := gesture.NewController(10, 1.0/6, 150*time.Millisecond)
	left := gesture.Signal{X: 1, Detected: true}

	var commands []tetris.Command
	for _, at := range []time.Duration{0, 50 * time.Millisecond} {
		if cmd, ok := c.Translate(left, at); ok {
			commands = append(commands, cmd)
		}
	}

	assert.Equal(t, []tetris.Command{tetris.MoveLeft}, commands)

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Samples)
	assert.Equal(t, uint64(1), stats.Accepted)
	assert.Equal(t, uint64(1), stats.Debounced)
	assert.Equal(t, tetris.MoveLeft, stats.LastCommand)
	assert.Equal(t, gesture.Left, stats.LastZone)
}

func TestControllerTranslate(t *testing.T) {
	c := gesture.NewController(10, 1.0/6, 150*time.Millisecond)

	cmd, ok := c.Translate(gesture.Signal{X: 9, Detected: true}, 0)
	require.True(t, ok)
	assert.Equal(t, tetris.MoveRight, cmd)

	cmd, ok = c.Translate(gesture.Signal{X: 1, Detected: true}, 10*time.Millisecond)
	require.True(t, ok, "a different kind is not debounced")
	assert.Equal(t, tetris.MoveLeft, cmd)

	_, ok = c.Translate(gesture.Signal{X: 5, Detected: true}, 400*time.Millisecond)
	assert.False(t, ok)
	_, ok = c.Translate(gesture.Signal{X: 1}, 500*time.Millisecond)
	assert.False(t, ok)

	cmd, ok = c.Translate(gesture.Signal{X: 1, Detected: true}, 600*time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, tetris.MoveLeft, cmd)

	stats := c.Stats()
	assert.Equal(t, uint64(3), stats.Accepted)
	assert.Equal(t, uint64(1), stats.Idle)
	assert.Equal(t, uint64(1), stats.NoSignal)

	c.Reset()
	assert.Equal(t, gesture.Stats{}, c.Stats())
	_, ok = c.Translate(gesture.Signal{X: 1, Detected: true}, 601*time.Millisecond)
	assert.True(t, ok, "reset clears debounce history")
}

func TestSources(t *testing.T) {
	assert.Equal(t, gesture.Signal{}, gesture.None.Sample())

	static := gesture.Static{X: 2, Detected: true}
	assert.Equal(t, gesture.Signal{X: 2, Detected: true}, static.Sample())

	calls := 0
	fn := gesture.SourceFunc(func() gesture.Signal {
		calls++
		return gesture.Signal{X: float64(calls), Detected: true}
	})
	fn.Sample()
	assert.Equal(t, 2.0, fn.Sample().X)
}
