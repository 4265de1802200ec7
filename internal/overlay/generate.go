package overlay

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/kirinuki-dev/kirinuki/internal/chat"
)

const (
	styleChatMessage = "ChatMessage"
	styleChatStack   = "ChatStack"
)

func chatStyles(cfg *Config) map[string]Style {
	return map[string]Style{
		styleChatMessage: {
			FontName:     cfg.FontName,
			FontSize:     cfg.FontSize,
			PrimaryColor: cfg.TextColor,
			OutlineColor: cfg.OutlineColor,
			BackColor:    cfg.BackgroundColor,
			OutlineWidth: cfg.OutlineWidth,
			ShadowDepth:  cfg.ShadowDepth,
			Alignment:    7, // top-left, positions are the text origin
			MarginL:      10,
			MarginR:      cfg.MarginR,
			MarginV:      cfg.MarginV,
		},
		styleChatStack: {
			FontName:     cfg.FontName,
			FontSize:     cfg.StackFontSize,
			PrimaryColor: cfg.TextColor,
			OutlineColor: cfg.OutlineColor,
			BackColor:    cfg.BackgroundColor,
			OutlineWidth: cfg.OutlineWidth,
			ShadowDepth:  cfg.ShadowDepth,
			Alignment:    1, // bottom-left, so multi-line text grows upward
			MarginL:      10,
			MarginR:      cfg.MarginR,
			MarginV:      cfg.MarginV,
		},
	}
}

// GenerateChatOverlay renders messages into a complete ASS document in
// the configured mode. It returns the markup and the number of emitted
// Dialogue events; zero events with a nil error means chat is simply
// absent for this clip and the caller should skip the overlay.
func GenerateChatOverlay(msgs []chat.Message, cfg Config) (string, int, error) {
	var events []Event
	switch cfg.Mode {
	case ModeStack:
		if cfg.StackCapacity <= 0 {
			return "", 0, errors.New("stack capacity must be positive")
		}
		events = stackEvents(msgs, &cfg)
	default:
		if cfg.LaneCount <= 0 {
			return "", 0, errors.New("lane count must be positive")
		}
		events = scrollEvents(msgs, &cfg)
	}

	var b strings.Builder
	b.WriteString(header("Chat Overlay", cfg.VideoWidth, cfg.VideoHeight, chatStyles(&cfg)))
	for _, ev := range events {
		b.WriteString(ev.Dialogue())
		b.WriteByte('\n')
	}
	return b.String(), len(events), nil
}
