package subtitle

import "testing"

func TestRebaseClipsAtFront(t *testing.T) {
	cues := []Cue{{Index: 1, Start: 25, End: 35, Text: "a"}}

	got := Rebase(cues, 30, 60)
	if len(got) != 1 {
		t.Fatalf("got %d cues; want 1", len(got))
	}
	if got[0].Start != 0 || got[0].End != 5 {
		t.Errorf("cue = [%v, %v]; want [0, 5]", got[0].Start, got[0].End)
	}
}

func TestRebaseDropsBeforeWindow(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 10, End: 20, Text: "gone"},
		{Index: 2, Start: 40, End: 45, Text: "kept"},
	}

	got := Rebase(cues, 30, 0)
	if len(got) != 1 || got[0].Text != "kept" {
		t.Fatalf("got %+v; want only the second cue", got)
	}
	if got[0].Index != 1 {
		t.Errorf("surviving cue index = %d; want reindexed to 1", got[0].Index)
	}
}

func TestRebaseStopsAtWindowEnd(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 35, End: 40, Text: "in"},
		{Index: 2, Start: 95, End: 100, Text: "out"},
		{Index: 3, Start: 96, End: 101, Text: "also out"},
	}

	got := Rebase(cues, 30, 60)
	if len(got) != 1 {
		t.Fatalf("got %d cues; want 1 (early exit at window end)", len(got))
	}
}

func TestRebaseTruncatesAtWindowEnd(t *testing.T) {
	cues := []Cue{{Index: 1, Start: 80, End: 100, Text: "tail"}}

	got := Rebase(cues, 30, 60)
	if len(got) != 1 {
		t.Fatalf("got %d cues; want 1", len(got))
	}
	if got[0].Start != 50 || got[0].End != 60 {
		t.Errorf("cue = [%v, %v]; want [50, 60]", got[0].Start, got[0].End)
	}
}

func TestRebasePreservesOrder(t *testing.T) {
	cues := []Cue{
		{Start: 31, End: 33},
		{Start: 32, End: 36},
		{Start: 40, End: 41},
		{Start: 55, End: 70},
	}

	got := Rebase(cues, 30, 60)
	for i := 1; i < len(got); i++ {
		if got[i].Start < got[i-1].Start {
			t.Fatalf("output not sorted at %d: %v after %v", i, got[i].Start, got[i-1].Start)
		}
		if got[i].Index != got[i-1].Index+1 {
			t.Fatalf("indices not contiguous: %d after %d", got[i].Index, got[i-1].Index)
		}
	}
}

func TestRebaseNegativeWindowIsOpenEnded(t *testing.T) {
	cues := []Cue{{Start: 1000, End: 1010, Text: "late"}}

	got := Rebase(cues, 30, -5)
	if len(got) != 1 {
		t.Fatalf("negative window must behave as no end boundary; got %d cues", len(got))
	}
}
