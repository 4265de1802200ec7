package fetch

import (
	"strings"
	"testing"
)

const sampleReplayLine = `{"replayChatItemAction":{"actions":[{"addChatItemAction":{"item":{"liveChatTextMessageRenderer":{"message":{"runs":[{"text":"こんにちは"},{"text":"！"}]},"authorName":{"simpleText":"alice"},"timestampUsec":"1700000000123456"}}}}],"videoOffsetTimeMsec":"83500"}}`

func TestNormalizeLiveChat(t *testing.T) {
	input := strings.Join([]string{
		sampleReplayLine,
		`not json at all`,
		`{"replayChatItemAction":{"actions":[{"addChatItemAction":{"item":{}}}],"videoOffsetTimeMsec":"90000"}}`,
		`{"somethingElse":true}`,
		``,
	}, "\n")

	msgs, err := NormalizeLiveChat(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NormalizeLiveChat: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}

	msg := msgs[0]
	if msg.Text != "こんにちは！" {
		t.Errorf("text = %q, want joined runs", msg.Text)
	}
	if msg.Author != "alice" {
		t.Errorf("author = %q", msg.Author)
	}
	if msg.Time != 83.5 {
		t.Errorf("time = %v, want 83.5", msg.Time)
	}
	if msg.Timestamp != 1700000000123 {
		t.Errorf("timestamp = %d, want microseconds truncated to ms", msg.Timestamp)
	}
}

func TestNormalizeLiveChatEmptyMessage(t *testing.T) {
	line := `{"replayChatItemAction":{"actions":[{"addChatItemAction":{"item":{"liveChatTextMessageRenderer":{"message":{"runs":[]},"authorName":{"simpleText":"bob"},"timestampUsec":"1"}}}}],"videoOffsetTimeMsec":"0"}}`
	msgs, err := NormalizeLiveChat(strings.NewReader(line))
	if err != nil {
		t.Fatalf("NormalizeLiveChat: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("messages with no text should be dropped, got %d", len(msgs))
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("ERROR: nope\nmore detail"); got != "ERROR: nope" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("  single  "); got != "single" {
		t.Errorf("firstLine trims whitespace, got %q", got)
	}
}
