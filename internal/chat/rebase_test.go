package chat

import "testing"

func msg(t float64, author, text string) Message {
	return Message{Time: t, Author: author, Text: text}
}

func TestRebaseDropsBeforeWindow(t *testing.T) {
	in := []Message{
		msg(10, "a", "early"),
		msg(35, "b", "kept"),
	}

	got := Rebase(in, RebaseOptions{StartOffset: 30})
	if len(got) != 1 || got[0].Text != "kept" {
		t.Fatalf("got %+v; want only the in-window message", got)
	}
	if got[0].Time != 5 {
		t.Errorf("rebased time = %v; want 5", got[0].Time)
	}
}

func TestRebaseStopsAtWindowEnd(t *testing.T) {
	in := []Message{
		msg(35, "a", "in"),
		msg(90, "b", "at end"),
		msg(91, "c", "past end"),
	}

	got := Rebase(in, RebaseOptions{StartOffset: 30, Window: 60})
	if len(got) != 1 {
		t.Fatalf("got %d messages; want 1 (early exit at window end)", len(got))
	}
}

func TestRebaseAppliesDelay(t *testing.T) {
	in := []Message{msg(40, "a", "hi")}

	got := Rebase(in, RebaseOptions{StartOffset: 30, Delay: 3})
	if len(got) != 1 || got[0].Time != 7 {
		t.Fatalf("got %+v; want time 7 after 3s delay", got)
	}
}

func TestRebasePreservesOrder(t *testing.T) {
	in := []Message{
		msg(31, "a", "1"), msg(31.5, "b", "2"), msg(40, "c", "3"), msg(55, "d", "4"),
	}

	got := Rebase(in, RebaseOptions{StartOffset: 30, Window: 60})
	for i := 1; i < len(got); i++ {
		if got[i].Time < got[i-1].Time {
			t.Fatalf("output not sorted at %d", i)
		}
	}
}

func TestDedupSuppressesCloseRepeats(t *testing.T) {
	in := []Message{
		msg(0, "a", "hi"),
		msg(0.5, "b", "hi"),
		msg(5, "c", "hi"),
	}

	got := Dedup(in, 1, false)
	if len(got) != 2 {
		t.Fatalf("got %d messages; want 2", len(got))
	}
	if got[0].Time != 0 || got[1].Time != 5 {
		t.Errorf("got times %v, %v; want 0, 5", got[0].Time, got[1].Time)
	}
}

func TestDedupUpdatesLastSeenOnSuppressed(t *testing.T) {
	in := []Message{
		msg(0, "a", "spam"),
		msg(0.8, "b", "spam"),
		msg(1.5, "c", "spam"),
	}

	// 1.5 is within a window of the suppressed 0.8 occurrence, so the
	// spam stream stays suppressed.
	got := Dedup(in, 1, false)
	if len(got) != 1 {
		t.Fatalf("got %d messages; want 1", len(got))
	}
}

func TestDedupByAuthor(t *testing.T) {
	in := []Message{
		msg(0, "alice", "hi"),
		msg(0.5, "bob", "hi"),
	}

	if got := Dedup(in, 1, true); len(got) != 2 {
		t.Errorf("author-keyed dedup suppressed distinct authors: %+v", got)
	}
	if got := Dedup(in, 1, false); len(got) != 1 {
		t.Errorf("text-keyed dedup kept duplicate text: %+v", got)
	}
}

func TestFilter(t *testing.T) {
	in := []Message{
		msg(0, "bot", "announcement"),
		msg(1, "a", ""),
		msg(2, "b", "ok"),
		msg(3, "c", "a very long message indeed"),
	}

	got := Filter(in, 1, 10, []string{"bot"})
	if len(got) != 1 || got[0].Author != "b" {
		t.Fatalf("got %+v; want only the short message from b", got)
	}
}
