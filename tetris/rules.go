package tetris

import "time"

// Rules holds the tunable constants of a game.
type Rules struct {
	Rows int
	Cols int

	InitialInterval   time.Duration
	MinInterval       time.Duration
	IntervalDecrement time.Duration

	LinesPerLevel int

	// LineScores[n] is the base award for clearing n rows in one lock,
	// multiplied by the level at the time of the clear.
	LineScores [5]int
}

// DefaultRules returns a 20x10 board with the classic 100/300/500/800 line
// awards and a 500ms drop interval shrinking by 50ms per level down to 100ms.
func DefaultRules() Rules {
	return Rules{
		Rows:              20,
		Cols:              10,
		InitialInterval:   500 * time.Millisecond,
		MinInterval:       100 * time.Millisecond,
		IntervalDecrement: 50 * time.Millisecond,
		LinesPerLevel:     10,
		LineScores:        [5]int{0, 100, 300, 500, 800},
	}
}

// Points returns the award for clearing rows lines at the given level.
func (r Rules) Points(rows, level int) int {
	if rows <= 0 {
		return 0
	}
	if rows >= len(r.LineScores) {
		rows = len(r.LineScores) - 1
	}
	return r.LineScores[rows] * level
}

// LevelFor returns the level reached after clearing lines in total.
func (r Rules) LevelFor(lines int) int {
	per := r.LinesPerLevel
	if per <= 0 {
		per = 10
	}
	return lines/per + 1
}

// IntervalFor returns the auto-drop interval at the given level.
func (r Rules) IntervalFor(level int) time.Duration {
	interval := r.InitialInterval - time.Duration(level-1)*r.IntervalDecrement
	return max(r.MinInterval, interval)
}
