package gesture

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// message is the wire form sent by the browser-side hand tracker. X is in
// camera pixels.
type message struct {
	X          *float64 `json:"x"`
	IsDetected bool     `json:"isDetected"`
}

// FeedStats reports activity of a Feed.
type FeedStats struct {
	Clients  int
	Received uint64
	Dropped  uint64
	Last     Signal
	Age      time.Duration
}

// Feed is a websocket endpoint receiving finger positions from an external
// tracker. It keeps only the latest reading; Sample reports it normalized to
// the game's coordinate space, or an undetected signal once it is older than
// StaleAfter.
type Feed struct {
	SourceWidth float64
	TargetWidth float64
	StaleAfter  time.Duration

	// Logger receives connection events. Nil disables logging.
	Logger *log.Logger
	// Now is the wall clock used for staleness. Defaults to time.Now.
	Now func() time.Time

	upgrader websocket.Upgrader

	mu       sync.Mutex
	latest   Signal
	at       time.Time
	clients  int
	received uint64
	dropped  uint64
}

// NewFeed creates a feed translating x from [0, sourceWidth] camera pixels
// into [0, targetWidth] game units.
func NewFeed(sourceWidth, targetWidth float64, staleAfter time.Duration) *Feed {
	return &Feed{
		SourceWidth: sourceWidth,
		TargetWidth: targetWidth,
		StaleAfter:  staleAfter,
		Now:         time.Now,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (f *Feed) logf(format string, args ...any) {
	if f.Logger != nil {
		f.Logger.Printf(format, args...)
	}
}

func (f *Feed) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// ServeHTTP upgrades the request and reads messages until the peer closes.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logf("gesture feed: upgrade: %v", err)
		return
	}
	defer conn.Close()

	f.mu.Lock()
	f.clients++
	f.mu.Unlock()
	f.logf("gesture feed: client connected from %s", r.RemoteAddr)

	defer func() {
		f.mu.Lock()
		f.clients--
		if f.clients == 0 {
			f.latest = Signal{}
		}
		f.mu.Unlock()
		f.logf("gesture feed: client %s disconnected", r.RemoteAddr)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				f.logf("gesture feed: read: %v", err)
			}
			return
		}
		f.receive(data)
	}
}

func (f *Feed) receive(data []byte) {
	var msg message
	sig := Signal{}
	ok := json.Unmarshal(data, &msg) == nil && (!msg.IsDetected || msg.X != nil)
	if ok && msg.IsDetected {
		sig = Signal{
			X:        Normalize(*msg.X, 0, f.SourceWidth, f.TargetWidth),
			Detected: true,
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if ok {
		f.received++
	} else {
		f.dropped++
	}
	f.latest = sig
	f.at = f.now()
}

// Sample returns the latest signal, or an undetected one when it is stale.
func (f *Feed) Sample() Signal {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.at.IsZero() {
		return Signal{}
	}
	if f.StaleAfter > 0 && f.now().Sub(f.at) > f.StaleAfter {
		return Signal{}
	}
	return f.latest
}

// Stats returns feed counters.
func (f *Feed) Stats() FeedStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := FeedStats{
		Clients:  f.clients,
		Received: f.received,
		Dropped:  f.dropped,
		Last:     f.latest,
	}
	if !f.at.IsZero() {
		stats.Age = f.now().Sub(f.at)
	}
	return stats
}

// Serve listens on addr and serves the feed on every path until ctx is
// cancelled.
func (f *Feed) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           f,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()
	f.logf("gesture feed: listening on %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
