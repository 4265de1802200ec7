package overlay

import (
	"strings"
	"testing"

	"github.com/kirinuki-dev/kirinuki/internal/subtitle"
)

func TestGenerateSubtitleASS(t *testing.T) {
	cues := []subtitle.Cue{
		{Index: 1, Start: 0.5, End: 2.5, Text: "こんにちは"},
		{Index: 2, Start: 3, End: 3, Text: "zero length"},
		{Index: 3, Start: 4, End: 6, Text: "   "},
	}
	doc := GenerateSubtitleASS(cues, DefaultSubtitleConfig())

	if !strings.Contains(doc, "[Script Info]") || !strings.Contains(doc, "[Events]") {
		t.Fatal("document missing header sections")
	}
	if !strings.Contains(doc, "Style: Default,Hiragino Sans,110,&H00FFFFFF,") {
		t.Error("missing subtitle style line")
	}
	want := "Dialogue: 0,0:00:00.50,0:00:02.50,Default,,0,0,0,,こんにちは"
	if !strings.Contains(doc, want) {
		t.Errorf("missing dialogue line %q", want)
	}
	if got := strings.Count(doc, "Dialogue:"); got != 1 {
		t.Errorf("got %d dialogue lines, want 1 (empty and zero-length cues dropped)", got)
	}
}

func TestGenerateSubtitleASSWrapsLongLines(t *testing.T) {
	long := strings.Repeat("あ", 14) + "、" + strings.Repeat("い", 15)
	cues := []subtitle.Cue{{Index: 1, Start: 0, End: 2, Text: long}}

	doc := GenerateSubtitleASS(cues, DefaultSubtitleConfig())
	if !strings.Contains(doc, `、\N`) {
		t.Error("expected a hard break after the boundary rune")
	}
}

func TestGenerateSubtitleASSKeepsExistingBreaks(t *testing.T) {
	text := strings.Repeat("あ", 15) + "\n" + strings.Repeat("い", 15)
	cues := []subtitle.Cue{{Index: 1, Start: 0, End: 2, Text: text}}

	doc := GenerateSubtitleASS(cues, DefaultSubtitleConfig())
	if got := strings.Count(doc, `\N`); got != 1 {
		t.Errorf("got %d hard breaks, want the original one only", got)
	}
}

func TestGenerateSubtitleASSEmptyInput(t *testing.T) {
	doc := GenerateSubtitleASS(nil, DefaultSubtitleConfig())
	if !strings.Contains(doc, "[Events]") {
		t.Error("empty input should still yield a complete document")
	}
	if strings.Contains(doc, "Dialogue:") {
		t.Error("no dialogue lines expected")
	}
}
