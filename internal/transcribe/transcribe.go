// Package transcribe generates speech subtitles for a clip by running
// the whisper CLI over its extracted audio track. It emits both a
// plain SRT file and a styled ASS track beside it.
package transcribe

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/kirinuki-dev/kirinuki/internal/ffmpeg"
	"github.com/kirinuki-dev/kirinuki/internal/overlay"
	"github.com/kirinuki-dev/kirinuki/internal/subtitle"
)

// Options configures a transcription run. Zero-value fields fall back
// to the defaults used throughout the pipeline.
type Options struct {
	VideoPath string
	OutputSRT string

	Model    string // whisper model size, defaults to "large"
	Language string // defaults to "ja"

	WhisperPath string // whisper binary, defaults to "whisper" on PATH
	Verbose     bool
}

func (o *Options) model() string {
	if o.Model != "" {
		return o.Model
	}
	return "large"
}

func (o *Options) language() string {
	if o.Language != "" {
		return o.Language
	}
	return "ja"
}

func (o *Options) binary() string {
	if o.WhisperPath != "" {
		return o.WhisperPath
	}
	return "whisper"
}

// Run extracts the clip's audio, transcribes it, and writes the cues
// to OutputSRT plus a styled ASS file with the same base name.
// Returns the parsed cues so callers can reuse them without re-reading
// the file.
func Run(ctx context.Context, opts Options) ([]subtitle.Cue, error) {
	if opts.VideoPath == "" || opts.OutputSRT == "" {
		return nil, errors.New("video path and output path are required")
	}
	if _, err := os.Stat(opts.VideoPath); err != nil {
		return nil, errors.Wrap(err, "video file not found")
	}
	if dir := filepath.Dir(opts.OutputSRT); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating output directory")
		}
	}

	workDir, err := os.MkdirTemp("", "transcribe_")
	if err != nil {
		return nil, errors.Wrap(err, "creating work directory")
	}
	defer os.RemoveAll(workDir)

	// Whisper resamples internally, but feeding it 16kHz mono PCM
	// directly skips that work and keeps the temp file small.
	audioPath := filepath.Join(workDir, "audio.wav")
	if opts.Verbose {
		log.Printf("Extracting audio from %s", opts.VideoPath)
	}
	proc := ffmpeg.NewProcessor(opts.Verbose)
	if err := proc.ExtractAudio(opts.VideoPath, audioPath); err != nil {
		return nil, err
	}

	if opts.Verbose {
		log.Printf("Transcribing with whisper model %s", opts.model())
	}
	args := []string{
		audioPath,
		"--model", opts.model(),
		"--language", opts.language(),
		"--output_format", "srt",
		"--output_dir", workDir,
		"--fp16", "False",
	}
	cmd := exec.CommandContext(ctx, opts.binary(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, errors.Wrapf(err, "running whisper: %s", tail(string(out)))
	}

	// Whisper names its output after the input stem.
	rawSRT := filepath.Join(workDir, "audio.srt")
	cues, err := subtitle.ParseSRTFile(rawSRT)
	if err != nil {
		return nil, errors.Wrap(err, "reading whisper output")
	}

	if err := subtitle.WriteSRTFile(opts.OutputSRT, cues); err != nil {
		return nil, err
	}
	assPath := ASSPath(opts.OutputSRT)
	doc := overlay.GenerateSubtitleASS(cues, overlay.DefaultSubtitleConfig())
	if err := os.WriteFile(assPath, []byte(doc), 0o644); err != nil {
		return nil, errors.Wrap(err, "writing styled subtitles")
	}

	if opts.Verbose {
		log.Printf("Generated %d subtitle segments: %s, %s", len(cues), opts.OutputSRT, assPath)
	}
	return cues, nil
}

// ASSPath returns the styled sibling of an SRT path.
func ASSPath(srtPath string) string {
	return strings.TrimSuffix(srtPath, filepath.Ext(srtPath)) + ".ass"
}

// tail returns the last few lines of command output, the part that
// actually carries whisper's error message.
func tail(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.Join(lines, " / ")
}
