package overlay

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/kirinuki-dev/kirinuki/internal/timecode"
)

// Event is one emitted overlay element: a styled piece of text visible
// over [Start, End] with its animation baked into the override tag.
// Events are immutable once built and written in emission order, which
// preserves per-message ordering but is not globally time-sorted (the
// renderer does not require it).
type Event struct {
	Layer int
	Start float64
	End   float64
	Style string
	Tag   string // override block like {\move(...)}, may be empty
	Text  string // already escaped
}

// Dialogue renders the event as one ASS Dialogue line.
func (e Event) Dialogue() string {
	return fmt.Sprintf("Dialogue: %d,%s,%s,%s,,0,0,0,,%s%s",
		e.Layer, timecode.FormatASS(e.Start), timecode.FormatASS(e.End), e.Style, e.Tag, e.Text)
}

// Style is one [V4+ Styles] entry.
type Style struct {
	FontName     string
	FontSize     int
	PrimaryColor string
	OutlineColor string
	BackColor    string
	Bold         bool
	OutlineWidth int
	ShadowDepth  int
	Alignment    int
	MarginL      int
	MarginR      int
	MarginV      int
}

func (s Style) line(name string) string {
	bold := 0
	if s.Bold {
		bold = -1
	}
	return fmt.Sprintf("Style: %s,%s,%d,%s,&H000000FF,%s,%s,%d,0,0,0,100,100,0,0,1,%d,%d,%d,%d,%d,%d,1",
		name, s.FontName, s.FontSize, s.PrimaryColor, s.OutlineColor, s.BackColor,
		bold, s.OutlineWidth, s.ShadowDepth, s.Alignment, s.MarginL, s.MarginR, s.MarginV)
}

// header builds the [Script Info] and [V4+ Styles] blocks. Styles are
// emitted in name order so output is deterministic.
func header(title string, width, height int, styles map[string]Style) string {
	var b strings.Builder
	fmt.Fprintf(&b, `[Script Info]
Title: %s
ScriptType: v4.00+
WrapStyle: 0
PlayResX: %d
PlayResY: %d
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
`, title, width, height)

	names := maps.Keys(styles)
	slices.Sort(names)
	for _, name := range names {
		b.WriteString(styles[name].line(name))
		b.WriteByte('\n')
	}

	b.WriteString(`
[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`)
	return b.String()
}

// EscapeText makes raw message text safe to embed in a Dialogue line.
// Backslashes and braces would otherwise open override blocks; embedded
// newlines become the ASS hard break.
func EscapeText(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "{", `\{`)
	text = strings.ReplaceAll(text, "}", `\}`)
	text = strings.ReplaceAll(text, "\n", `\N`)
	return text
}

// Override tag builders. Coordinates are emitted without decimals; ASS
// positions are effectively integer pixels at PlayRes scale.

func posTag(x, y int) string {
	return fmt.Sprintf(`{\pos(%d,%d)}`, x, y)
}

func moveTag(x1, y1, x2, y2 int) string {
	return fmt.Sprintf(`{\move(%d,%d,%d,%d)}`, x1, y1, x2, y2)
}

func moveFadeTag(x1, y1, x2, y2, fadeOutMs int) string {
	return fmt.Sprintf(`{\move(%d,%d,%d,%d)\fad(0,%d)}`, x1, y1, x2, y2, fadeOutMs)
}

// clipRevealTag animates a clip rectangle from a 1px sliver at the
// anchor to full width over durMs, the left-to-right reveal used by the
// title bar. extra is appended inside the same override block.
func clipRevealTag(posX, posY, anchorX, top, fullRight, bottom, durMs int, extra string) string {
	return fmt.Sprintf(`{\pos(%d,%d)\clip(%d,%d,%d,%d)\t(0,%d,\clip(%d,%d,%d,%d))%s}`,
		posX, posY,
		anchorX, top, anchorX+1, bottom,
		durMs,
		anchorX, top, fullRight, bottom,
		extra)
}
