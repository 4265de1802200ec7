package overlay

import (
	"math"
	"strings"
	"testing"

	"github.com/kirinuki-dev/kirinuki/internal/chat"
)

func stackTestConfig() Config {
	cfg := DefaultConfig()
	cfg.Mode = ModeStack
	return cfg
}

func TestStackSingleMessage(t *testing.T) {
	cfg := stackTestConfig()
	events := stackEvents([]chat.Message{{Time: 3, Text: "hello"}}, &cfg)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	ev := events[0]
	if ev.Start != 3 {
		t.Errorf("start = %v, want arrival time 3", ev.Start)
	}
	if want := 3 + cfg.StackTail; math.Abs(ev.End-want) > 1e-9 {
		t.Errorf("end = %v, want arrival+tail %v", ev.End, want)
	}
	if want := posTag(cfg.StackLeft, cfg.StackBottom); ev.Tag != want {
		t.Errorf("tag = %s, want bottom slot %s", ev.Tag, want)
	}
}

func TestStackPushMovesOlderMessageUp(t *testing.T) {
	cfg := stackTestConfig()
	msgs := []chat.Message{
		{Time: 0, Text: "older"},
		{Time: 2, Text: "newer"},
	}
	events := stackEvents(msgs, &cfg)

	// Older message: static at the bottom, slide up, static one slot
	// higher. Newer message: single static event.
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}

	upperY := cfg.StackBottom - cfg.StackLineHeight

	static0, slide, static1, newer := events[0], events[1], events[2], events[3]

	if static0.Tag != posTag(cfg.StackLeft, cfg.StackBottom) {
		t.Errorf("older message should start at the bottom slot, tag %s", static0.Tag)
	}
	if want := 2 - cfg.StackTransition; math.Abs(static0.End-want) > 1e-9 {
		t.Errorf("static leg ends at %v, want %v", static0.End, want)
	}

	if slide.Start != static0.End {
		t.Errorf("slide starts at %v, want %v", slide.Start, static0.End)
	}
	if slide.End != 2 {
		t.Errorf("slide should land exactly when the pusher arrives, ends at %v", slide.End)
	}
	if want := moveTag(cfg.StackLeft, cfg.StackBottom, cfg.StackLeft, upperY); slide.Tag != want {
		t.Errorf("slide tag = %s, want %s", slide.Tag, want)
	}

	if static1.Start != 2 || static1.Tag != posTag(cfg.StackLeft, upperY) {
		t.Errorf("upper leg = [%v] %s, want start 2 at y=%d", static1.Start, static1.Tag, upperY)
	}
	if want := 0 + cfg.StackTail; math.Abs(static1.End-want) > 1e-9 {
		t.Errorf("upper leg ends at %v, want horizon %v", static1.End, want)
	}

	if newer.Start != 2 || newer.Tag != posTag(cfg.StackLeft, cfg.StackBottom) {
		t.Errorf("newer message = [%v] %s, want start 2 at the bottom slot", newer.Start, newer.Tag)
	}
}

func TestStackTopSlotEviction(t *testing.T) {
	cfg := stackTestConfig()
	cfg.StackCapacity = 2
	msgs := []chat.Message{
		{Time: 0, Text: "first"},
		{Time: 1, Text: "second"},
		{Time: 2, Text: "third"},
	}
	events := stackEvents(msgs, &cfg)

	// The first message reaches the top slot at t=1 and the third
	// arrival forces it off at t=2 with a fading slide.
	var evictions []Event
	for _, ev := range events {
		if strings.Contains(ev.Tag, "\\fad(") {
			evictions = append(evictions, ev)
		}
	}
	if len(evictions) != 1 {
		t.Fatalf("got %d eviction events, want 1", len(evictions))
	}

	ev := evictions[0]
	if ev.Start != 2 {
		t.Errorf("eviction starts at %v, want the evicting arrival 2", ev.Start)
	}
	if want := 2 + cfg.StackTransition; math.Abs(ev.End-want) > 1e-9 {
		t.Errorf("eviction ends at %v, want %v", ev.End, want)
	}
	if !strings.Contains(ev.Text, "first") {
		t.Errorf("eviction should carry the oldest message, got %q", ev.Text)
	}
}

func TestStackCapacityBoundsVisibleMessages(t *testing.T) {
	cfg := stackTestConfig()
	cfg.StackCapacity = 3
	var msgs []chat.Message
	for i := 0; i < 10; i++ {
		msgs = append(msgs, chat.Message{Time: float64(i), Text: "m"})
	}
	events := stackEvents(msgs, &cfg)

	// Sample static occupancy between arrivals: never more than
	// capacity distinct messages positioned on the column at once.
	for _, sample := range []float64{2.5, 5.5, 8.5} {
		active := map[string]bool{}
		for _, ev := range events {
			if strings.Contains(ev.Tag, "\\fad(") {
				continue
			}
			if ev.Start <= sample && sample < ev.End {
				active[ev.Tag] = true
			}
		}
		if len(active) > cfg.StackCapacity {
			t.Errorf("at t=%v: %d active slots, capacity %d", sample, len(active), cfg.StackCapacity)
		}
	}
}

func TestStackSkipsZeroLengthSegments(t *testing.T) {
	cfg := stackTestConfig()
	msgs := []chat.Message{
		{Time: 5, Text: "burst one"},
		{Time: 5, Text: "burst two"},
	}
	events := stackEvents(msgs, &cfg)
	for _, ev := range events {
		if ev.End <= ev.Start {
			t.Errorf("zero-length event emitted: [%v, %v] %s", ev.Start, ev.End, ev.Text)
		}
	}
}

func TestStackTwoLineMessagePushesHigher(t *testing.T) {
	cfg := stackTestConfig()
	msgs := []chat.Message{
		{Time: 0, Text: "short"},
		{Time: 2, Text: strings.Repeat("あ", 30)}, // wraps to two lines
	}
	events := stackEvents(msgs, &cfg)

	// The wrapped pusher is two lines tall, so the older message ends
	// up two line heights above the bottom, not one.
	wantY := cfg.StackBottom - 2*cfg.StackLineHeight
	found := false
	for _, ev := range events {
		if strings.Contains(ev.Text, "short") && ev.Tag == posTag(cfg.StackLeft, wantY) {
			found = true
		}
	}
	if !found {
		t.Errorf("older message never parked at y=%d above the two-line pusher", wantY)
	}
}

func TestStackAuthorPrefix(t *testing.T) {
	cfg := stackTestConfig()
	cfg.StackShowAuthor = true
	events := stackEvents([]chat.Message{{Time: 1, Author: "alice", Text: "hi"}}, &cfg)
	if len(events) == 0 {
		t.Fatal("no events emitted")
	}
	if !strings.HasPrefix(events[0].Text, "alice: ") {
		t.Errorf("text = %q, want author prefix", events[0].Text)
	}
}
