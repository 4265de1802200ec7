package subtitle

// Rebase re-anchors cues from absolute video time to clip time, where
// startOffset becomes zero. window is the clip length in seconds; a
// window <= 0 means the clip is open-ended.
//
// Cues ending before the clip are dropped. A cue straddling the clip
// start is clipped to zero rather than dropped so a sentence in flight
// at the cut point stays on screen (chat messages get the opposite
// treatment, see the chat package). Cues are re-indexed 1..N.
//
// The input must be sorted by start time: once a cue starts at or past
// the window end, all later cues do too, so processing stops there.
func Rebase(cues []Cue, startOffset, window float64) []Cue {
	var out []Cue
	index := 1

	for _, cue := range cues {
		start := cue.Start - startOffset
		end := cue.End - startOffset

		if end < 0 {
			continue
		}
		if window > 0 && start >= window {
			break
		}
		if start < 0 {
			start = 0
		}
		if window > 0 && end > window {
			end = window
		}

		out = append(out, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  cue.Text,
		})
		index++
	}

	return out
}
