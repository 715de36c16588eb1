// Command handtris opens a window and plays with the keyboard plus a gesture
// source: the mouse cursor, or a websocket hand tracker.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/plus3/handtris/config"
	debugui_ebiten "github.com/plus3/handtris/debugui/ebiten"
	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/ui/ebitenui"
)

type gestureMode string

const (
	gestureCursor gestureMode = "cursor"
	gestureWS     gestureMode = "ws"
	gestureNone   gestureMode = "none"
)

func parseGestureMode(s string) (gestureMode, error) {
	switch mode := gestureMode(s); mode {
	case gestureCursor, gestureWS, gestureNone:
		return mode, nil
	}
	return "", fmt.Errorf("unknown gesture source %q (want cursor, ws or none)", s)
}

type options struct {
	configPath string
	seed       uint64
	gesture    gestureMode
	listen     string
	debugUI    bool
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file.")
	seed := flag.Uint64("seed", 0, "Random seed for piece selection (0 for a random game).")
	gesture := flag.String("gesture", "cursor", "Gesture source: cursor, ws or none.")
	listen := flag.String("listen", ":8765", "Listen address of the websocket gesture feed.")
	debugUI := flag.Bool("debug-ui", false, "Show the Dear ImGui debug overlay.")
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
		debugUI:    *debugUI,
	})
	if err != nil {
		log.Fatal(err)
	}
}

// run plays until the window closes. Deferred cleanup always runs because
// failures are returned rather than exiting.
func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.debugUI {
		cfg.Debug.Overlay = true
	}

	sessionOpts := []game.Option{game.WithLogger(log.New(os.Stderr, "[game] ", log.LstdFlags))}
	if opts.seed != 0 {
		sessionOpts = append(sessionOpts, game.WithSeed(opts.seed))
	}
	session, err := game.NewSession(cfg, sessionOpts...)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	var backend *debugui_ebiten.ImguiBackend
	if opts.debugUI {
		backend = debugui_ebiten.NewImguiBackend("Handtris", 1280, 720)
	}
	g := ebitenui.NewGame(session, backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch opts.gesture {
	case gestureCursor:
		session.SetSource(g.CursorSource())
	case gestureWS:
		feed := game.NewFeed(cfg, log.New(os.Stderr, "[feed] ", log.LstdFlags))
		go func() {
			if err := feed.Serve(ctx, opts.listen); err != nil {
				log.Printf("Gesture feed stopped: %v", err)
			}
		}()
		session.SetSource(feed)
	}

	if err := g.Run("Handtris"); err != nil {
		return fmt.Errorf("game exited with error: %w", err)
	}
	return nil
}
