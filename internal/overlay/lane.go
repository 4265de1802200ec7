package overlay

import (
	"math"
	"strings"

	"github.com/kirinuki-dev/kirinuki/internal/chat"
)

// laneAllocator tracks, per horizontal lane, the earliest time a new
// message may enter it. State lives for exactly one generation run.
type laneAllocator struct {
	availableFrom []float64
}

func newLaneAllocator(laneCount int) *laneAllocator {
	return &laneAllocator{availableFrom: make([]float64, laneCount)}
}

// place picks the lane that lets a message wanting to enter at t start
// soonest. Ties go to the lowest lane index because iteration is in
// index order with a strict comparison.
func (a *laneAllocator) place(t float64) (lane int, start float64) {
	bestLane := 0
	bestStart := -1.0
	for i, avail := range a.availableFrom {
		candidate := t
		if avail > candidate {
			candidate = avail
		}
		if bestStart < 0 || candidate < bestStart {
			bestStart = candidate
			bestLane = i
		}
	}
	return bestLane, bestStart
}

// release marks when the chosen lane frees up: once the message has
// travelled its own width plus the configured gap. That is earlier than
// its exit time — the next occupant may enter while this one's tail is
// still on screen, trading some readability for comment density.
func (a *laneAllocator) release(lane int, start, textWidth, speed, gap float64) {
	a.availableFrom[lane] = start + textWidth/speed + gap
}

// scrollEvents lays messages out as right-to-left scrolling comments.
// Messages are assumed clip-time ordered.
func scrollEvents(msgs []chat.Message, cfg *Config) []Event {
	startX := cfg.VideoWidth + cfg.HorizontalMargin
	alloc := newLaneAllocator(cfg.LaneCount)
	m := cfg.measurer()

	var events []Event
	for _, msg := range msgs {
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			continue
		}
		if msg.Time < cfg.VisibleStartOffset {
			continue
		}

		textWidth := EstimateWidth(text, cfg.FontSize, cfg.MinCommentWidth, m)
		// Round up so the integer exit coordinate never lands inside
		// the text's own width.
		endX := -int(math.Ceil(textWidth))
		travel := float64(startX) - float64(endX)
		duration := travel / cfg.CommentSpeed

		lane, start := alloc.place(msg.Time)
		alloc.release(lane, start, textWidth, cfg.CommentSpeed, cfg.LaneGap)

		y := cfg.LaneTop + cfg.LaneSpacing*lane
		events = append(events, Event{
			Layer: 0,
			Start: start,
			End:   start + duration,
			Style: styleChatMessage,
			Tag:   moveTag(startX, y, endX, y),
			Text:  EscapeText(text),
		})
	}
	return events
}
