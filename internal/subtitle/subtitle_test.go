package subtitle

import (
	"strings"
	"testing"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
こんにちは

2
00:00:04,000 --> 00:00:06,000
two lines
second line

3
bogus timing line
skipped text

4
00:00:07,250 --> 00:00:08,000
last
`

func TestParseSRT(t *testing.T) {
	cues, err := ParseSRT(strings.NewReader(sampleSRT))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}

	// Block 3 is malformed and must be skipped, not abort the batch.
	if len(cues) != 3 {
		t.Fatalf("got %d cues; want 3: %+v", len(cues), cues)
	}

	if cues[0].Start != 1.0 || cues[0].End != 3.5 {
		t.Errorf("cue 1 timing = [%v, %v]; want [1, 3.5]", cues[0].Start, cues[0].End)
	}
	if cues[0].Text != "こんにちは" {
		t.Errorf("cue 1 text = %q", cues[0].Text)
	}
	if cues[1].Text != "two lines\nsecond line" {
		t.Errorf("cue 2 text = %q; want embedded newline preserved", cues[1].Text)
	}
	if cues[2].Index != 4 {
		t.Errorf("cue 3 index = %d; want source index 4", cues[2].Index)
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	in := []Cue{
		{Index: 1, Start: 0, End: 5.5, Text: "まず"},
		{Index: 2, Start: 6, End: 9.123, Text: "次に\n二行目"},
	}

	var sb strings.Builder
	if err := WriteSRT(&sb, in); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}

	out, err := ParseSRT(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("round trip lost cues: got %d want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Text != in[i].Text {
			t.Errorf("cue %d text = %q; want %q", i, out[i].Text, in[i].Text)
		}
		if out[i].Start != in[i].Start {
			t.Errorf("cue %d start = %v; want %v", i, out[i].Start, in[i].Start)
		}
	}
}

func TestCueSRTFormat(t *testing.T) {
	c := Cue{Index: 7, Start: 5025.5, End: 5026, Text: "line"}
	want := "7\n01:23:45,500 --> 01:23:46,000\nline\n"
	if got := c.SRT(); got != want {
		t.Errorf("SRT() = %q; want %q", got, want)
	}
}
