// Command handtris-soak plays random games headless and reports invariant
// violations and frame timings as markdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/plus3/handtris/config"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file.")
	duration := flag.Duration("duration", 10*time.Second, "The total wall-clock duration of the run.")
	frames := flag.Int("frames", 0, "Stop after this many frames (0 for no limit).")
	frameTime := flag.Duration("frame-time", 16*time.Millisecond, "Game time advanced per frame.")
	seed := flag.Uint64("seed", 0, "Random seed (0 picks one from the clock).")
	commandsPerFrame := flag.Int("commands-per-frame", 2, "Maximum random commands issued per frame.")
	useGesture := flag.Bool("gesture", true, "Feed a wandering synthetic hand into the gesture controller.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	log.Printf("Running soak for %s (seed %d)...\n", *duration, *seed)
	report, err := Soak(context.Background(), Options{
		Config:           cfg,
		Duration:         *duration,
		Frames:           *frames,
		FrameTime:        *frameTime,
		Seed:             *seed,
		CommandsPerFrame: *commandsPerFrame,
		Gesture:          *useGesture,
		GCPauseMetrics:   *gcPauseMetrics,
	})
	if err != nil {
		log.Fatalf("Soak failed: %v", err)
	}
	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if report.Violations > 0 {
		os.Exit(1)
	}
}
