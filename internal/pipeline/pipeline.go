// Package pipeline runs the full clip production flow: download the
// source window, gather subtitles and live chat, rebase both onto clip
// time, render the overlay tracks and compose the final video.
//
// Steps are numbered 0 through 6 and individually skippable. The
// decoration steps degrade instead of failing: a clip without
// subtitles or chat still produces a final video.
package pipeline

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kirinuki-dev/kirinuki/internal/chat"
	"github.com/kirinuki-dev/kirinuki/internal/config"
	"github.com/kirinuki-dev/kirinuki/internal/fetch"
	"github.com/kirinuki-dev/kirinuki/internal/ffmpeg"
	"github.com/kirinuki-dev/kirinuki/internal/overlay"
	"github.com/kirinuki-dev/kirinuki/internal/subtitle"
	"github.com/kirinuki-dev/kirinuki/internal/timecode"
	"github.com/kirinuki-dev/kirinuki/internal/transcribe"
)

// Step numbers accepted by Options.Skip.
const (
	StepDownload  = 0
	StepSubtitles = 1
	StepRebase    = 2
	StepChat      = 3
	StepExtract   = 4
	StepOverlay   = 5
	StepCompose   = 6
)

// Options controls one pipeline run.
type Options struct {
	Config *config.ClipConfig
	Skip   []int // step numbers to skip

	// Transcribe falls back to speech recognition when the source has
	// no YouTube subtitles.
	Transcribe bool

	Verbose bool
}

func (o *Options) skipped(step int) bool {
	for _, s := range o.Skip {
		if s == step {
			return true
		}
	}
	return false
}

// paths groups the intermediate files under the temp directory. Every
// artifact is kept on disk so individual steps can be re-run.
type paths struct {
	clip        string
	subsFull    string
	subsClip    string
	chatFull    string
	chatClip    string
	chatOverlay string
	titleBar    string
	final       string
}

func newPaths(cfg *config.ClipConfig) paths {
	return paths{
		clip:        filepath.Join(cfg.TempDir, "clip.webm"),
		subsFull:    filepath.Join(cfg.TempDir, "subs_full.srt"),
		subsClip:    filepath.Join(cfg.TempDir, "subs_clip.srt"),
		chatFull:    filepath.Join(cfg.TempDir, "chat_full.json"),
		chatClip:    filepath.Join(cfg.TempDir, "chat_clip.json"),
		chatOverlay: filepath.Join(cfg.TempDir, "chat_overlay.ass"),
		titleBar:    filepath.Join(cfg.TempDir, "title_bar.ass"),
		final:       filepath.Join(cfg.OutputDir, "final.mp4"),
	}
}

// clipWindow resolves the configured start/end clocks into a start
// offset and window length in seconds. A missing end time yields a
// zero window, which downstream code treats as open-ended.
func clipWindow(cfg *config.ClipConfig) (startOffset, window float64, err error) {
	startOffset, err = timecode.ParseClock(cfg.StartTime)
	if err != nil {
		return 0, 0, errors.Wrap(err, "start_time")
	}
	if cfg.EndTime == "" {
		return startOffset, 0, nil
	}
	end, err := timecode.ParseClock(cfg.EndTime)
	if err != nil {
		return 0, 0, errors.Wrap(err, "end_time")
	}
	if end <= startOffset {
		return 0, 0, errors.New("end_time must be after start_time")
	}
	return startOffset, end - startOffset, nil
}

// Run executes the pipeline and returns the final output path.
func Run(ctx context.Context, opts Options) (string, error) {
	cfg := opts.Config
	if cfg == nil {
		return "", errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	startOffset, window, err := clipWindow(cfg)
	if err != nil {
		return "", err
	}

	for _, dir := range []string{cfg.OutputDir, cfg.TempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrapf(err, "creating directory %s", dir)
		}
	}
	p := newPaths(cfg)
	fetcher := fetch.NewFetcher(opts.Verbose)

	// Step 0: source video.
	sourcePath := p.clip
	if !cfg.AutoDownload {
		log.Printf("[Step 0] Using existing video file %s", cfg.WebmPath)
		sourcePath = cfg.WebmPath
	} else if opts.skipped(StepDownload) {
		log.Printf("[Step 0] Skipped, expecting %s to exist", p.clip)
	} else {
		log.Printf("[Step 0] Downloading clip from %s", cfg.VideoURL)
		err := fetcher.DownloadClip(ctx, fetch.DownloadOptions{
			URL:        cfg.VideoURL,
			StartTime:  cfg.StartTime,
			EndTime:    cfg.EndTime,
			OutputPath: p.clip,
		})
		if err != nil {
			return "", errors.Wrap(err, "step 0")
		}
	}

	// Steps 1-2: subtitles, rebased onto clip time. Absence is normal.
	subtitlePath := ""
	if opts.skipped(StepSubtitles) {
		log.Println("[Step 1] Skipped")
	} else {
		log.Println("[Step 1] Fetching subtitles")
		ok, err := fetcher.FetchSubtitles(ctx, cfg.VideoURL, p.subsFull, "ja")
		if err != nil {
			log.Printf("[Step 1] Subtitle fetch failed, continuing without: %v", err)
		} else if !ok {
			log.Println("[Step 1] No subtitles available")
		} else if opts.skipped(StepRebase) {
			log.Println("[Step 2] Skipped")
		} else {
			log.Println("[Step 2] Rebasing subtitles onto clip time")
			n, err := rebaseSubtitles(p.subsFull, p.subsClip, startOffset, window)
			if err != nil {
				log.Printf("[Step 2] Rebase failed, continuing without subtitles: %v", err)
			} else if n > 0 {
				subtitlePath = p.subsClip
			}
		}
	}
	if subtitlePath == "" && opts.Transcribe && !opts.skipped(StepSubtitles) {
		log.Println("[Step 1] Falling back to speech recognition")
		cues, err := transcribe.Run(ctx, transcribe.Options{
			VideoPath: sourcePath,
			OutputSRT: p.subsClip,
			Verbose:   opts.Verbose,
		})
		if err != nil {
			log.Printf("[Step 1] Transcription failed, continuing without subtitles: %v", err)
		} else if len(cues) > 0 {
			// Prefer the styled track whisper output comes with.
			subtitlePath = transcribe.ASSPath(p.subsClip)
		}
	}

	// Steps 3-4: live chat, rebased onto clip time. Absence is normal.
	var clipMsgs []chat.Message
	if opts.skipped(StepChat) {
		log.Println("[Step 3] Skipped")
	} else {
		log.Println("[Step 3] Fetching live chat replay")
		count, err := fetcher.FetchChat(ctx, cfg.VideoURL, p.chatFull)
		if err != nil {
			log.Printf("[Step 3] Chat fetch failed, continuing without chat: %v", err)
		} else if count == 0 {
			log.Println("[Step 3] No chat replay available")
		} else if opts.skipped(StepExtract) {
			log.Println("[Step 4] Skipped")
		} else {
			log.Println("[Step 4] Extracting chat messages for the clip window")
			clipMsgs, err = extractChat(p.chatFull, p.chatClip, startOffset, window)
			if err != nil {
				log.Printf("[Step 4] Chat extraction failed, continuing without chat: %v", err)
			}
		}
	}

	// Step 5: overlay tracks.
	overlayPath := ""
	if opts.skipped(StepOverlay) {
		log.Println("[Step 5] Skipped")
	} else if len(clipMsgs) == 0 {
		log.Println("[Step 5] Skipped, no chat messages in the clip window")
	} else {
		log.Printf("[Step 5] Generating chat overlay (%s mode)", cfg.OverlayMode)
		ovCfg := overlay.DefaultConfig()
		ovCfg.Mode = overlay.Mode(cfg.OverlayMode)
		doc, n, err := overlay.GenerateChatOverlay(clipMsgs, ovCfg)
		if err != nil {
			return "", errors.Wrap(err, "step 5")
		}
		if n > 0 {
			if err := os.WriteFile(p.chatOverlay, []byte(doc), 0o644); err != nil {
				return "", errors.Wrap(err, "step 5")
			}
			overlayPath = p.chatOverlay
		}
	}

	titlePath := ""
	if cfg.Title != "" && !opts.skipped(StepOverlay) {
		log.Println("[Step 5] Generating title bar")
		doc, err := overlay.GenerateTitleBar(cfg.Title, cfg.Channel, overlay.DefaultTitleBarConfig())
		if err != nil {
			return "", errors.Wrap(err, "step 5")
		}
		if err := os.WriteFile(p.titleBar, []byte(doc), 0o644); err != nil {
			return "", errors.Wrap(err, "step 5")
		}
		titlePath = p.titleBar
	}

	// Step 6: compose.
	if opts.skipped(StepCompose) {
		log.Println("[Step 6] Skipped")
		return p.final, nil
	}
	log.Println("[Step 6] Composing final video")
	composeOpts := ffmpeg.DefaultComposeOptions()
	composeOpts.SubtitlePath = subtitlePath
	composeOpts.OverlayPath = overlayPath
	composeOpts.TitlePath = titlePath
	composeOpts.LogoPath = cfg.Logo
	proc := ffmpeg.NewProcessor(opts.Verbose)
	if err := proc.Compose(sourcePath, p.final, composeOpts); err != nil {
		return "", errors.Wrap(err, "step 6")
	}

	log.Printf("Pipeline completed: %s", p.final)
	return p.final, nil
}

// rebaseSubtitles shifts the full-video cues onto clip time and writes
// the surviving cues. Returns how many survived.
func rebaseSubtitles(inPath, outPath string, startOffset, window float64) (int, error) {
	cues, err := subtitle.ParseSRTFile(inPath)
	if err != nil {
		return 0, err
	}
	rebased := subtitle.Rebase(cues, startOffset, window)
	if len(rebased) == 0 {
		return 0, nil
	}
	if err := subtitle.WriteSRTFile(outPath, rebased); err != nil {
		return 0, err
	}
	return len(rebased), nil
}

// extractChat rebases the normalized chat stream onto clip time and
// writes the clip messages as a JSON array.
func extractChat(inPath, outPath string, startOffset, window float64) ([]chat.Message, error) {
	msgs, err := chat.ReadJSONLFile(inPath)
	if err != nil {
		return nil, err
	}
	clipMsgs := chat.Rebase(msgs, chat.RebaseOptions{
		StartOffset: startOffset,
		Window:      window,
	})
	if len(clipMsgs) == 0 {
		return nil, nil
	}
	if err := chat.WriteJSONFile(outPath, clipMsgs); err != nil {
		return nil, err
	}
	return clipMsgs, nil
}
