// Command handtris-term plays in the terminal with the keyboard plus a
// gesture source: the mouse pointer, or a websocket hand tracker.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/handtris/config"
	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/ui/termui"
)

type gestureMode string

const (
	gestureMouse gestureMode = "mouse"
	gestureWS    gestureMode = "ws"
	gestureNone  gestureMode = "none"
)

func parseGestureMode(s string) (gestureMode, error) {
	switch mode := gestureMode(s); mode {
	case gestureMouse, gestureWS, gestureNone:
		return mode, nil
	}
	return "", fmt.Errorf("unknown gesture source %q (want mouse, ws or none)", s)
}

type options struct {
	configPath string
	seed       uint64
	gesture    gestureMode
	listen     string
	logPath    string
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file.")
	seed := flag.Uint64("seed", 0, "Random seed for piece selection (0 for a random game).")
	gesture := flag.String("gesture", "mouse", "Gesture source: mouse, ws or none.")
	listen := flag.String("listen", ":8765", "Listen address of the websocket gesture feed.")
	logPath := flag.String("log", "", "Write logs to this file instead of discarding them.")
	flag.Parse()

	mode, err := parseGestureMode(*gesture)
	if err != nil {
		log.Fatalf("Invalid -gesture: %v", err)
	}

	err = run(options{
		configPath: *configPath,
		seed:       *seed,
		gesture:    mode,
		listen:     *listen,
		logPath:    *logPath,
	}, tcell.NewScreen)
	if err != nil {
		log.Fatal(err)
	}
}

// run owns the terminal until the game quits. The screen is finalized and
// the log file closed on every return path.
func run(opts options, newScreen func() (tcell.Screen, error)) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// The terminal is owned by the game; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	sessionOpts := []game.Option{game.WithLogger(log.New(logOut, "[game] ", log.LstdFlags))}
	if opts.seed != 0 {
		sessionOpts = append(sessionOpts, game.WithSeed(opts.seed))
	}
	session, err := game.NewSession(cfg, sessionOpts...)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := termui.NewApp(screen, session)
	switch opts.gesture {
	case gestureMouse:
		app.UseMouse()
	case gestureWS:
		feed := game.NewFeed(cfg, log.New(logOut, "[feed] ", log.LstdFlags))
		go func() {
			if err := feed.Serve(ctx, opts.listen); err != nil {
				log.New(logOut, "", log.LstdFlags).Printf("Gesture feed stopped: %v", err)
			}
		}()
		session.SetSource(feed)
	}

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("game exited with error: %w", err)
	}
	return nil
}
