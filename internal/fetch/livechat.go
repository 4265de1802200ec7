package fetch

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kirinuki-dev/kirinuki/internal/chat"
)

// FetchChat downloads the live chat replay and normalizes it to flat
// JSONL records at outputPath. Returns the message count; zero with a
// nil error means the video has no chat replay.
func (f *Fetcher) FetchChat(ctx context.Context, url, outputPath string) (int, error) {
	if err := ensureDir(outputPath); err != nil {
		return 0, err
	}
	basePath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))

	out, err := f.run(ctx,
		"--skip-download",
		"--write-subs",
		"--sub-langs", "live_chat",
		"-o", basePath+".%(ext)s",
		url,
	)
	if err != nil {
		lower := strings.ToLower(out)
		if strings.Contains(lower, "no chat") || strings.Contains(lower, "disabled") {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "fetching chat: %s", firstLine(out))
	}

	found := firstExisting(basePath+".live_chat.json", basePath+".json", outputPath)
	if found == "" {
		return 0, nil
	}

	raw, err := os.Open(found)
	if err != nil {
		return 0, errors.Wrap(err, "opening chat replay")
	}
	msgs, err := NormalizeLiveChat(raw)
	raw.Close()
	if err != nil {
		return 0, err
	}

	if err := chat.WriteJSONLFile(outputPath, msgs); err != nil {
		return 0, err
	}
	if found != outputPath {
		os.Remove(found)
	}
	return len(msgs), nil
}

// The nested renderer tree yt-dlp stores for each replayed chat
// action. Only the text message path is modelled; membership events,
// stickers and superchats have different renderers and fall through.
type liveChatRecord struct {
	ReplayChatItemAction *struct {
		Actions []struct {
			AddChatItemAction *struct {
				Item struct {
					LiveChatTextMessageRenderer *struct {
						Message struct {
							Runs []struct {
								Text string `json:"text"`
							} `json:"runs"`
						} `json:"message"`
						AuthorName struct {
							SimpleText string `json:"simpleText"`
						} `json:"authorName"`
						TimestampUsec string `json:"timestampUsec"`
					} `json:"liveChatTextMessageRenderer"`
				} `json:"item"`
			} `json:"addChatItemAction"`
		} `json:"actions"`
		VideoOffsetTimeMsec string `json:"videoOffsetTimeMsec"`
	} `json:"replayChatItemAction"`
}

// NormalizeLiveChat flattens a live chat replay (one renderer tree per
// line) into chat messages. Lines that fail to parse or carry no text
// message are skipped.
func NormalizeLiveChat(r io.Reader) ([]chat.Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var msgs []chat.Message
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record liveChatRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			log.Printf("Warning: skipping malformed chat replay line %d: %v", lineNum, err)
			continue
		}
		if record.ReplayChatItemAction == nil {
			continue
		}

		var offsetSeconds float64
		if ms, err := strconv.ParseInt(record.ReplayChatItemAction.VideoOffsetTimeMsec, 10, 64); err == nil {
			offsetSeconds = float64(ms) / 1000
		}

		for _, action := range record.ReplayChatItemAction.Actions {
			if action.AddChatItemAction == nil {
				continue
			}
			renderer := action.AddChatItemAction.Item.LiveChatTextMessageRenderer
			if renderer == nil {
				continue
			}

			var text strings.Builder
			for _, run := range renderer.Message.Runs {
				text.WriteString(run.Text)
			}
			if text.Len() == 0 {
				continue
			}

			var timestampMs int64
			if usec, err := strconv.ParseInt(renderer.TimestampUsec, 10, 64); err == nil {
				timestampMs = usec / 1000
			}

			msgs = append(msgs, chat.Message{
				Time:      offsetSeconds,
				Author:    renderer.AuthorName.SimpleText,
				Text:      text.String(),
				Timestamp: timestampMs,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading chat replay")
	}
	return msgs, nil
}
