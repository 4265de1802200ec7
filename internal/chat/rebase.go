package chat

// RebaseOptions controls the clip-window transform for chat streams.
type RebaseOptions struct {
	StartOffset float64 // absolute seconds that become clip zero
	Window      float64 // clip length in seconds; <= 0 means open-ended
	Delay       float64 // extra seconds subtracted, shifting chat later relative to video

	DedupWindow   float64 // suppress repeats closer than this many seconds; 0 disables
	DedupByAuthor bool    // key dedup on (author, text) instead of text alone
}

// Rebase re-anchors messages to clip time and applies the optional
// dedup filter. Unlike subtitle cues, a message before the clip start
// is dropped outright; there is no partial visibility to preserve for a
// point event.
//
// The input must be time-ordered: the first message at or past the
// window end terminates the pass.
func Rebase(msgs []Message, opts RebaseOptions) []Message {
	var out []Message

	for _, msg := range msgs {
		adjusted := msg.Time - opts.StartOffset - opts.Delay
		if adjusted < 0 {
			continue
		}
		if opts.Window > 0 && adjusted >= opts.Window {
			break
		}

		out = append(out, Message{
			Time:      adjusted,
			Author:    msg.Author,
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
		})
	}

	if opts.DedupWindow > 0 {
		out = Dedup(out, opts.DedupWindow, opts.DedupByAuthor)
	}
	return out
}

// Dedup suppresses a message when one with the same key appeared
// strictly less than window seconds earlier. Single streaming pass:
// per key only the most recent occurrence's time is kept, and it is
// updated even when the occurrence itself is suppressed, so a steady
// spam stream stays suppressed rather than resurfacing every window.
func Dedup(msgs []Message, window float64, byAuthor bool) []Message {
	lastSeen := make(map[string]float64, len(msgs))
	var out []Message

	for _, msg := range msgs {
		key := msg.Text
		if byAuthor {
			key = msg.Author + "\x00" + msg.Text
		}

		prev, seen := lastSeen[key]
		lastSeen[key] = msg.Time
		if seen && msg.Time-prev < window {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// Filter drops messages outside the given length bounds or from
// excluded authors. maxLen <= 0 disables the upper bound.
func Filter(msgs []Message, minLen, maxLen int, excludeAuthors []string) []Message {
	excluded := make(map[string]struct{}, len(excludeAuthors))
	for _, a := range excludeAuthors {
		excluded[a] = struct{}{}
	}

	var out []Message
	for _, msg := range msgs {
		n := len([]rune(msg.Text))
		if n < minLen {
			continue
		}
		if maxLen > 0 && n > maxLen {
			continue
		}
		if _, skip := excluded[msg.Author]; skip {
			continue
		}
		out = append(out, msg)
	}
	return out
}
