package overlay

import (
	"strings"

	"github.com/kirinuki-dev/kirinuki/internal/chat"
)

// stackEntry is one message prepared for stack layout: wrapped text,
// escaped text, and the pixel height it occupies in the column.
type stackEntry struct {
	arrival float64
	text    string // wrapped, unescaped
	escaped string
	height  int // lines * StackLineHeight
}

// slotSegment is one leg of a message's migration through the column:
// it sits at slot (0 = bottom/newest) over [start, end].
type slotSegment struct {
	slot  int
	start float64
	end   float64
	y     int
}

// stackEvents lays messages out as a capacity-bounded vertical history.
// A new arrival enters the bottom slot and pushes everything above it
// up one slot; whatever was in the top slot leaves the screen.
//
// Messages are assumed clip-time ordered; each message only ever looks
// ahead at most StackCapacity arrivals.
func stackEvents(msgs []chat.Message, cfg *Config) []Event {
	entries := prepareStackEntries(msgs, cfg)

	var events []Event
	for i := range entries {
		segs := slotSegments(entries, i, cfg)
		events = append(events, segmentEvents(entries, i, segs, cfg)...)
	}
	return events
}

func prepareStackEntries(msgs []chat.Message, cfg *Config) []stackEntry {
	var entries []stackEntry
	for _, msg := range msgs {
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			continue
		}
		if cfg.StackShowAuthor && msg.Author != "" {
			text = msg.Author + ": " + text
		}
		text = Wrap(text, StackWrapOptions(cfg.WrapThreshold))
		entries = append(entries, stackEntry{
			arrival: msg.Time,
			text:    text,
			escaped: EscapeText(text),
			height:  lineCount(text) * cfg.StackLineHeight,
		})
	}
	return entries
}

// slotSegments computes message i's migration through the column. The
// message occupies slot j-i while message j is the newest arrival, so
// its segment ends when message j+1 arrives, bounded by the overall
// visibility horizon. The top slot is harder: once a message reaches
// it, the very next arrival evicts it even if the horizon would have
// let it linger.
func slotSegments(entries []stackEntry, i int, cfg *Config) []slotSegment {
	n := len(entries)
	capacity := cfg.StackCapacity

	horizon := entries[i].arrival + cfg.StackTail
	if i+capacity < n {
		horizon = entries[i+capacity].arrival
	}

	var segs []slotSegment
	for j := i; j < n && j < i+capacity; j++ {
		slot := j - i
		start := entries[j].arrival

		var end float64
		switch {
		case slot == capacity-1 && j+1 < n:
			end = entries[j+1].arrival
		case j+1 < n:
			end = entries[j+1].arrival
			if end > horizon {
				end = horizon
			}
		default:
			end = horizon
		}

		if end <= start {
			// Messages in extremely tight succession can produce an
			// empty leg; nothing to render for it.
			continue
		}

		segs = append(segs, slotSegment{
			slot:  slot,
			start: start,
			end:   end,
			y:     slotY(entries, i, j, cfg),
		})
	}
	return segs
}

// slotY is the column Y of message i while message j is newest. Slot
// positions are not a fixed grid: every newer message below pushes this
// one up by that message's own (possibly two-line) height.
func slotY(entries []stackEntry, i, j int, cfg *Config) int {
	y := cfg.StackBottom
	for k := i + 1; k <= j; k++ {
		y -= entries[k].height
	}
	return y
}

// segmentEvents renders one message's segments as static position
// events joined by slide transitions. Each slide ends exactly at the
// segment boundary so the message lands in its new slot the instant the
// pushing arrival appears at the bottom. Leaving the top slot gets a
// fade attached to its final slide off the column.
func segmentEvents(entries []stackEntry, i int, segs []slotSegment, cfg *Config) []Event {
	x := cfg.StackLeft
	capacity := cfg.StackCapacity
	n := len(entries)

	var events []Event
	for s, seg := range segs {
		staticEnd := seg.end

		hasNext := s+1 < len(segs)
		if hasNext {
			trans := cfg.StackTransition
			if trans > seg.end-seg.start {
				trans = seg.end - seg.start
			}
			staticEnd = seg.end - trans
			if staticEnd > seg.start {
				events = append(events, Event{
					Layer: 1,
					Start: seg.start,
					End:   staticEnd,
					Style: styleChatStack,
					Tag:   posTag(x, seg.y),
					Text:  entries[i].escaped,
				})
			}
			events = append(events, Event{
				Layer: 1,
				Start: staticEnd,
				End:   seg.end,
				Style: styleChatStack,
				Tag:   moveTag(x, seg.y, x, segs[s+1].y),
				Text:  entries[i].escaped,
			})
			continue
		}

		events = append(events, Event{
			Layer: 1,
			Start: seg.start,
			End:   seg.end,
			Style: styleChatStack,
			Tag:   posTag(x, seg.y),
			Text:  entries[i].escaped,
		})

		// Eviction off the top slot: slide up one more step and fade.
		if seg.slot == capacity-1 && i+capacity < n {
			fadeMs := int(cfg.StackTransition * 1000)
			events = append(events, Event{
				Layer: 1,
				Start: seg.end,
				End:   seg.end + cfg.StackTransition,
				Style: styleChatStack,
				Tag:   moveFadeTag(x, seg.y, x, seg.y-cfg.StackLineHeight, fadeMs),
				Text:  entries[i].escaped,
			})
		}
	}
	return events
}
