package overlay

import (
	"strings"
	"testing"
)

func countDialogues(doc string) int {
	return strings.Count(doc, "Dialogue: ")
}

func TestGenerateTitleBar(t *testing.T) {
	doc, err := GenerateTitleBar("クリップのタイトル", "チャンネル名", DefaultTitleBarConfig())
	if err != nil {
		t.Fatalf("GenerateTitleBar: %v", err)
	}

	// Bar, title, ribbon and channel name each get a reveal event and a
	// static event.
	if got := countDialogues(doc); got != 8 {
		t.Errorf("got %d dialogue lines, want 8", got)
	}

	for _, part := range []string{
		"Style: TitleBar,",
		"Style: TitleText,",
		"Style: ChannelBg,",
		"Style: ChannelName,",
		`\p1`,
		`\t(0,1200,\clip(`,
		"クリップのタイトル",
		"チャンネル名",
	} {
		if !strings.Contains(doc, part) {
			t.Errorf("document missing %q", part)
		}
	}

	// Open-ended display holds until the ASS clock ceiling.
	if !strings.Contains(doc, "9:59:59.9") {
		t.Error("open-ended title bar should persist to the end of the clip")
	}
}

func TestGenerateTitleBarWithoutChannel(t *testing.T) {
	doc, err := GenerateTitleBar("タイトル", "", DefaultTitleBarConfig())
	if err != nil {
		t.Fatalf("GenerateTitleBar: %v", err)
	}
	if got := countDialogues(doc); got != 4 {
		t.Errorf("got %d dialogue lines, want 4 without the channel ribbon", got)
	}
	if strings.Contains(doc, "Dialogue: 2,") || strings.Contains(doc, "Dialogue: 3,") {
		t.Error("channel ribbon layers should be absent")
	}
}

func TestGenerateTitleBarEmptyTitle(t *testing.T) {
	if _, err := GenerateTitleBar("   ", "ch", DefaultTitleBarConfig()); err == nil {
		t.Error("expected error for blank title")
	}
}

func TestGenerateTitleBarBoundedDisplay(t *testing.T) {
	cfg := DefaultTitleBarConfig()
	cfg.SlideDuration = 0.5
	cfg.DisplayDuration = 10

	doc, err := GenerateTitleBar("タイトル", "", cfg)
	if err != nil {
		t.Fatalf("GenerateTitleBar: %v", err)
	}
	if strings.Contains(doc, "9:59:59") {
		t.Error("bounded display should not reach the clock ceiling")
	}
	// DisplayDuration plus the slide puts the teardown at 10.5s.
	if !strings.Contains(doc, "0:00:10.50") {
		t.Error("static events should end at display end")
	}
}
