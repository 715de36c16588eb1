// Package config loads game settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/plus3/handtris/tetris"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Board struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

type Speed struct {
	InitialInterval   Duration `yaml:"initial_interval"`
	MinInterval       Duration `yaml:"min_interval"`
	IntervalDecrement Duration `yaml:"interval_decrement"`
	LinesPerLevel     int      `yaml:"lines_per_level"`
}

// Scoring lists the points for clearing 1..4 rows at level 1.
type Scoring struct {
	Single int `yaml:"single"`
	Double int `yaml:"double"`
	Triple int `yaml:"triple"`
	Tetris int `yaml:"tetris"`
}

type Gesture struct {
	SamplePeriod  Duration `yaml:"sample_period"`
	Debounce      Duration `yaml:"debounce"`
	SideThreshold float64  `yaml:"side_threshold"`
	SourceWidth   float64  `yaml:"source_width"`
	StaleAfter    Duration `yaml:"stale_after"`
}

type Debug struct {
	LogEvents bool `yaml:"log_events"`
	Overlay   bool `yaml:"overlay"`
}

// Config is the full settings file.
type Config struct {
	Board      Board   `yaml:"board"`
	Speed      Speed   `yaml:"speed"`
	Scoring    Scoring `yaml:"scoring"`
	Randomizer string  `yaml:"randomizer"`
	Gesture    Gesture `yaml:"gesture"`
	Debug      Debug   `yaml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	rules := tetris.DefaultRules()
	return Config{
		Board: Board{Rows: rules.Rows, Cols: rules.Cols},
		Speed: Speed{
			InitialInterval:   Duration(rules.InitialInterval),
			MinInterval:       Duration(rules.MinInterval),
			IntervalDecrement: Duration(rules.IntervalDecrement),
			LinesPerLevel:     rules.LinesPerLevel,
		},
		Scoring: Scoring{
			Single: rules.LineScores[1],
			Double: rules.LineScores[2],
			Triple: rules.LineScores[3],
			Tetris: rules.LineScores[4],
		},
		Randomizer: RandomizerUniform,
		Gesture: Gesture{
			SamplePeriod:  Duration(30 * time.Millisecond),
			Debounce:      Duration(150 * time.Millisecond),
			SideThreshold: 1.0 / 6,
			SourceWidth:   1280,
			StaleAfter:    Duration(250 * time.Millisecond),
		},
	}
}

const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// Load reads the file at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func invalid(field string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, field, fmt.Sprintf(format, args...))
}

// Board limits. A horizontal I spawned at column Cols/2-1 needs five
// columns to fit; a vertical I needs four rows to rotate.
const (
	MinRows = 4
	MinCols = 5
)

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	switch {
	case c.Board.Rows < MinRows:
		return invalid("board.rows", "must be at least %d, got %d", MinRows, c.Board.Rows)
	case c.Board.Cols < MinCols:
		return invalid("board.cols", "must be at least %d, got %d", MinCols, c.Board.Cols)
	case c.Speed.InitialInterval <= 0:
		return invalid("speed.initial_interval", "must be positive")
	case c.Speed.MinInterval <= 0:
		return invalid("speed.min_interval", "must be positive")
	case c.Speed.MinInterval > c.Speed.InitialInterval:
		return invalid("speed.min_interval", "exceeds initial_interval")
	case c.Speed.IntervalDecrement < 0:
		return invalid("speed.interval_decrement", "must not be negative")
	case c.Speed.LinesPerLevel <= 0:
		return invalid("speed.lines_per_level", "must be positive, got %d", c.Speed.LinesPerLevel)
	case c.Scoring.Single < 0 || c.Scoring.Double < 0 || c.Scoring.Triple < 0 || c.Scoring.Tetris < 0:
		return invalid("scoring", "points must not be negative")
	case c.Randomizer != RandomizerUniform && c.Randomizer != RandomizerBag:
		return invalid("randomizer", "unknown randomizer %q", c.Randomizer)
	case c.Gesture.SamplePeriod <= 0:
		return invalid("gesture.sample_period", "must be positive")
	case c.Gesture.Debounce < 0:
		return invalid("gesture.debounce", "must not be negative")
	case c.Gesture.SideThreshold < 0 || c.Gesture.SideThreshold >= 0.5:
		return invalid("gesture.side_threshold", "must be in [0, 0.5), got %g", c.Gesture.SideThreshold)
	case c.Gesture.SourceWidth <= 0:
		return invalid("gesture.source_width", "must be positive")
	case c.Gesture.StaleAfter < 0:
		return invalid("gesture.stale_after", "must not be negative")
	}
	return nil
}

// Rules converts the configuration into engine rules.
func (c Config) Rules() tetris.Rules {
	return tetris.Rules{
		Rows:              c.Board.Rows,
		Cols:              c.Board.Cols,
		InitialInterval:   c.Speed.InitialInterval.Std(),
		MinInterval:       c.Speed.MinInterval.Std(),
		IntervalDecrement: c.Speed.IntervalDecrement.Std(),
		LinesPerLevel:     c.Speed.LinesPerLevel,
		LineScores:        [5]int{0, c.Scoring.Single, c.Scoring.Double, c.Scoring.Triple, c.Scoring.Tetris},
	}
}
