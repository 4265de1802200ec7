// Package chat models timestamped live-chat messages and the JSONL
// files they travel in between pipeline steps.
package chat

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/kirinuki-dev/kirinuki/internal/timecode"
)

// ErrNoMessages signals that a source contained no usable chat
// messages. Callers should skip chat overlay generation for the clip
// rather than fail.
var ErrNoMessages = errors.New("no chat messages found")

// Message is one chat message. Time is seconds relative to the stream's
// current time base (video time before Rebase, clip time after).
// Timestamp is the source system's epoch milliseconds, carried through
// untouched.
type Message struct {
	Time      float64 `json:"time_in_seconds"`
	Author    string  `json:"author"`
	Text      string  `json:"message"`
	Timestamp int64   `json:"timestamp,omitempty"`
}

// rawMessage mirrors the loosely-typed records a fetcher hands us.
// Fields default to sentinel values instead of failing the record.
type rawMessage struct {
	TimeInSeconds *float64        `json:"time_in_seconds"`
	TimeText      string          `json:"time_text"`
	Author        json.RawMessage `json:"author"`
	Message       string          `json:"message"`
	Timestamp     int64           `json:"timestamp"`
}

// ReadJSONL reads one message per line from r. Individually malformed
// or partial records are skipped with a warning; the stream as a whole
// only fails if it cannot be read.
func ReadJSONL(r io.Reader) ([]Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var msgs []Message
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawMessage
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			log.Printf("Warning: skipping malformed chat record at line %d: %v", lineNum, err)
			continue
		}

		msg, ok := normalizeRecord(raw)
		if !ok {
			continue
		}
		msgs = append(msgs, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading chat stream")
	}
	return msgs, nil
}

// normalizeRecord maps a raw record onto a Message. Records without a
// usable time or text are dropped one at a time.
func normalizeRecord(raw rawMessage) (Message, bool) {
	var t float64
	switch {
	case raw.TimeInSeconds != nil:
		t = *raw.TimeInSeconds
	case raw.TimeText != "":
		parsed, err := timecode.ParseClock(raw.TimeText)
		if err != nil {
			return Message{}, false
		}
		t = parsed
	default:
		return Message{}, false
	}

	if raw.Message == "" {
		return Message{}, false
	}

	return Message{
		Time:      t,
		Author:    authorName(raw.Author),
		Text:      raw.Message,
		Timestamp: raw.Timestamp,
	}, true
}

// authorName accepts both the flat string form and the fetcher's
// nested {"name": ...} object.
func authorName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "Unknown"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return obj.Name
	}
	return "Unknown"
}

// ReadJSONLFile loads messages from path. Returns ErrNoMessages when
// nothing usable survives parsing.
func ReadJSONLFile(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening chat file %s", path)
	}
	defer f.Close()

	msgs, err := ReadJSONL(f)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, ErrNoMessages
	}
	return msgs, nil
}

// WriteJSONL streams messages one JSON object per line, the format the
// chat fetcher produces.
func WriteJSONL(w io.Writer, msgs []Message) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, msg := range msgs {
		if err := enc.Encode(msg); err != nil {
			return errors.Wrap(err, "encoding chat message")
		}
	}
	return nil
}

// WriteJSONLFile saves messages to path in JSONL form.
func WriteJSONLFile(path string, msgs []Message) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating chat file %s", path)
	}
	defer f.Close()
	return WriteJSONL(f, msgs)
}

// WriteJSON saves messages as an indented JSON array, the format the
// overlay step reads back.
func WriteJSON(w io.Writer, msgs []Message) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(msgs), "encoding chat messages")
}

// WriteJSONFile saves messages to path.
func WriteJSONFile(path string, msgs []Message) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating chat file %s", path)
	}
	defer f.Close()
	return WriteJSON(f, msgs)
}

// ReadJSONFile loads a message array written by WriteJSON.
func ReadJSONFile(path string) ([]Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening chat file %s", path)
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, errors.Wrapf(err, "decoding chat file %s", path)
	}
	if len(msgs) == 0 {
		return nil, ErrNoMessages
	}
	return msgs, nil
}
