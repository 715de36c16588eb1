package game

import (
	"log"

	"github.com/plus3/handtris/config"
	"github.com/plus3/handtris/gesture"
)

// NewFeed creates a websocket gesture feed sized for cfg's board. logger may
// be nil.
func NewFeed(cfg config.Config, logger *log.Logger) *gesture.Feed {
	feed := gesture.NewFeed(cfg.Gesture.SourceWidth, float64(cfg.Board.Cols), cfg.Gesture.StaleAfter.Std())
	feed.Logger = logger
	return feed
}
