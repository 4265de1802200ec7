// Package subtitle models timestamped subtitle cues and the SRT text
// format used to exchange them with yt-dlp and whisper.
package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kirinuki-dev/kirinuki/internal/timecode"
)

// ErrNoCues signals that a source contained no usable subtitle entries.
// Callers should treat it as "subtitles absent for this clip" and skip
// subtitle overlay generation, not as a pipeline failure.
var ErrNoCues = errors.New("no subtitle cues found")

// Cue is a single subtitle entry. Start and End are seconds relative to
// whatever time base the containing stream uses (absolute video time
// before Rebase, clip time after).
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string // may contain embedded newlines
}

// SRT renders the cue as one SRT block (index, timing line, text).
func (c Cue) SRT() string {
	return fmt.Sprintf("%d\n%s --> %s\n%s\n",
		c.Index, timecode.FormatSRT(c.Start), timecode.FormatSRT(c.End), c.Text)
}

// ParseSRT reads SRT cue blocks from r. Malformed blocks are skipped
// with a warning; only an unreadable stream is an error.
func ParseSRT(r io.Reader) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cues []Cue
	for {
		cue, ok, err := scanOneCue(scanner)
		if err != nil {
			log.Printf("Warning: skipping malformed subtitle block: %v", err)
			continue
		}
		if !ok {
			break
		}
		cues = append(cues, cue)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading srt stream")
	}
	return cues, nil
}

// scanOneCue consumes one cue block. ok is false at end of input.
func scanOneCue(scanner *bufio.Scanner) (cue Cue, ok bool, err error) {
	// Skip blank separator lines between blocks.
	line := ""
	for scanner.Scan() {
		line = strings.TrimSpace(scanner.Text())
		if line != "" {
			break
		}
	}
	if line == "" {
		return Cue{}, false, nil
	}

	idx, err := strconv.Atoi(line)
	if err != nil {
		return Cue{}, true, fmt.Errorf("invalid cue index %q", line)
	}

	if !scanner.Scan() {
		return Cue{}, true, fmt.Errorf("cue %d: missing timing line", idx)
	}
	timing := strings.TrimSpace(scanner.Text())
	start, end, err := parseTimingLine(timing)
	if err != nil {
		return Cue{}, true, fmt.Errorf("cue %d: %v", idx, err)
	}

	var textLines []string
	for scanner.Scan() {
		t := scanner.Text()
		if strings.TrimSpace(t) == "" {
			break
		}
		textLines = append(textLines, strings.TrimRight(t, "\r"))
	}
	if len(textLines) == 0 {
		return Cue{}, true, fmt.Errorf("cue %d: missing text", idx)
	}

	return Cue{
		Index: idx,
		Start: start,
		End:   end,
		Text:  strings.Join(textLines, "\n"),
	}, true, nil
}

func parseTimingLine(line string) (start, end float64, err error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}

	// SRT uses a comma before the milliseconds; ParseClock wants a dot.
	startStr := strings.ReplaceAll(strings.TrimSpace(parts[0]), ",", ".")
	endStr := strings.ReplaceAll(strings.TrimSpace(parts[1]), ",", ".")

	if start, err = timecode.ParseClock(startStr); err != nil {
		return 0, 0, err
	}
	if end, err = timecode.ParseClock(endStr); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// WriteSRT writes cues to w in SRT form, one blank line between blocks.
func WriteSRT(w io.Writer, cues []Cue) error {
	for _, cue := range cues {
		if _, err := fmt.Fprintf(w, "%s\n", cue.SRT()); err != nil {
			return errors.Wrap(err, "writing srt cue")
		}
	}
	return nil
}

// ParseSRTFile loads cues from an SRT file. Returns ErrNoCues when the
// file parses but contains nothing usable.
func ParseSRTFile(path string) ([]Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening subtitle file %s", path)
	}
	defer f.Close()

	cues, err := ParseSRT(f)
	if err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, ErrNoCues
	}
	return cues, nil
}

// WriteSRTFile saves cues to path, creating parent-relative files only.
func WriteSRTFile(path string, cues []Cue) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating subtitle file %s", path)
	}
	defer f.Close()
	return WriteSRT(f, cues)
}
