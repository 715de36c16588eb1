package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/plus3/handtris/config"
	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/gesture"
	"github.com/plus3/handtris/tetris"
)

// Options controls a soak run.
type Options struct {
	Config           config.Config
	Duration         time.Duration
	Frames           int
	FrameTime        time.Duration
	Seed             uint64
	CommandsPerFrame int
	Gesture          bool
	GCPauseMetrics   bool
}

const maxRecordedViolations = 5

var commandWeights = []struct {
	cmd    tetris.Command
	weight int
}{
	{tetris.MoveLeft, 3},
	{tetris.MoveRight, 3},
	{tetris.Rotate, 2},
	{tetris.SoftDrop, 2},
	{tetris.HardDrop, 1},
}

func randomCommand(rng *rand.Rand) tetris.Command {
	total := 0
	for _, w := range commandWeights {
		total += w.weight
	}
	n := rng.IntN(total)
	for _, w := range commandWeights {
		if n < w.weight {
			return w.cmd
		}
		n -= w.weight
	}
	return tetris.SoftDrop
}

// wanderingHand is a gesture source whose position drifts randomly across
// the board and sometimes drops out.
type wanderingHand struct {
	rng   *rand.Rand
	width float64
	x     float64
}

func (h *wanderingHand) Sample() gesture.Signal {
	if h.rng.IntN(5) == 0 {
		return gesture.Signal{}
	}
	h.x += (h.rng.Float64() - 0.5) * h.width / 4
	h.x = min(max(h.x, 0), h.width)
	return gesture.Signal{X: h.x, Detected: true}
}

// Soak plays random games until ctx is done, the duration elapses or the
// frame budget is spent, checking engine invariants after every frame.
func Soak(ctx context.Context, opts Options) (*Report, error) {
	if opts.CommandsPerFrame < 0 {
		return nil, fmt.Errorf("commands per frame must not be negative, got %d", opts.CommandsPerFrame)
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))

	sessionOpts := []game.Option{game.WithSeed(opts.Seed)}
	if opts.Gesture {
		width := float64(opts.Config.Board.Cols)
		sessionOpts = append(sessionOpts, game.WithSource(&wanderingHand{rng: rng, width: width, x: width / 2}))
	}
	session, err := game.NewSession(opts.Config, sessionOpts...)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Duration:         opts.Duration,
		FrameTime:        opts.FrameTime,
		Seed:             opts.Seed,
		CommandsPerFrame: opts.CommandsPerFrame,
		Gesture:          opts.Gesture,
		Rows:             opts.Config.Board.Rows,
		Cols:             opts.Config.Board.Cols,
		GCPauseMetrics:   opts.GCPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	startTime := time.Now()
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

Loop:
	for opts.Frames == 0 || report.TotalFrames < int64(opts.Frames) {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		for range rng.IntN(opts.CommandsPerFrame + 1) {
			session.Input.Push(randomCommand(rng))
		}

		updateStart := time.Now()
		session.Update(opts.FrameTime)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalFrames++

		snap := session.Snapshot()
		if err := snap.Validate(); err != nil {
			report.Violations++
			if len(report.ViolationLog) < maxRecordedViolations {
				report.ViolationLog = append(report.ViolationLog,
					fmt.Sprintf("frame %d, game %d: %v", report.TotalFrames, session.Tally().Games, err))
			}
		}
		if snap.State == tetris.Over {
			report.BestLevel = max(report.BestLevel, snap.Level)
			session.Restart()
		}
	}

	report.TotalTime = time.Since(startTime)
	report.GameTime = session.Scheduler.Elapsed()
	report.Tally = session.Tally()
	report.Systems = session.Scheduler.Stats().Systems
	report.BestLevel = max(report.BestLevel, session.Engine().Level())
	report.UpdateTime.summarize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	return report, nil
}
