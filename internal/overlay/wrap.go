package overlay

import "strings"

// defaultBreakRunes are the break candidates, in priority order:
// punctuation first, then the particles that commonly end a Japanese
// phrase. Breaking just after one of these reads far better than a
// mid-word split.
var defaultBreakRunes = []rune{'、', '。', 'が', 'て', 'で', 'し', 'を', 'は', 'の', 'と'}

// WrapOptions controls the single-break line wrapper.
type WrapOptions struct {
	Threshold int // rune count at or under which text is left alone

	// Search window around the midpoint, in runes. WindowBefore reaches
	// left, WindowAfter reaches right.
	WindowBefore int
	WindowAfter  int

	// BreakRunes overrides defaultBreakRunes when non-empty.
	BreakRunes []rune
}

// SubtitleWrapOptions is the symmetric window used for subtitle lines
// and scroll-mode measurement.
func SubtitleWrapOptions(threshold int) WrapOptions {
	return WrapOptions{Threshold: threshold, WindowBefore: 10, WindowAfter: 10}
}

// StackWrapOptions uses a narrower, right-leaning window: the stack
// column is tighter than a full subtitle row, and a late break keeps
// the short remainder on the second line where the column has room.
func StackWrapOptions(threshold int) WrapOptions {
	return WrapOptions{Threshold: threshold, WindowBefore: 5, WindowAfter: 8}
}

// Wrap inserts at most one "\n" into text. Text at or under the
// threshold is returned unchanged. The break lands after the boundary
// rune nearest the midpoint within the window; with no boundary rune in
// reach it is forced at the midpoint.
//
// Exactly one break is ever inserted no matter how long the text runs.
// The downstream line-height math assumes messages are one or two lines
// tall, so do not "fix" this into a multi-break wrapper.
func Wrap(text string, opts WrapOptions) string {
	runes := []rune(text)
	if len(runes) <= opts.Threshold {
		return text
	}

	breakRunes := opts.BreakRunes
	if len(breakRunes) == 0 {
		breakRunes = defaultBreakRunes
	}

	mid := len(runes) / 2
	lo := mid - opts.WindowBefore
	if lo < 0 {
		lo = 0
	}
	hi := mid + opts.WindowAfter
	if hi > len(runes) {
		hi = len(runes)
	}

	breakAt := mid
	minDist := len(runes)
	for _, br := range breakRunes {
		pos := indexRune(runes, br, lo, hi)
		if pos < 0 {
			continue
		}
		dist := pos - mid
		if dist < 0 {
			dist = -dist
		}
		if dist < minDist {
			minDist = dist
			breakAt = pos + 1 // break after the boundary rune
		}
	}

	if breakAt <= 0 || breakAt >= len(runes) {
		return text
	}
	return string(runes[:breakAt]) + "\n" + string(runes[breakAt:])
}

// indexRune finds the first occurrence of r in runes[lo:hi).
func indexRune(runes []rune, r rune, lo, hi int) int {
	for i := lo; i < hi; i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// lineCount reports how many rendered lines a wrapped text occupies.
func lineCount(text string) int {
	return 1 + strings.Count(text, "\n")
}
