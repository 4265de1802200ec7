// Package fetch shells out to yt-dlp to pull clip sources, subtitle
// tracks and live chat replays.
package fetch

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/kirinuki-dev/kirinuki/internal/ffmpeg"
)

// DefaultVideoFormat prefers webm streams so the copy cut stays in one
// container.
const DefaultVideoFormat = "bestvideo[ext=webm]+bestaudio[ext=webm]/best[ext=webm]/best"

// Fetcher runs yt-dlp. The zero value uses "yt-dlp" from PATH.
type Fetcher struct {
	YtDlpPath string
	Verbose   bool
}

// NewFetcher creates a Fetcher with the default binary path.
func NewFetcher(verbose bool) *Fetcher {
	return &Fetcher{Verbose: verbose}
}

func (f *Fetcher) binary() string {
	if f.YtDlpPath != "" {
		return f.YtDlpPath
	}
	return "yt-dlp"
}

// run executes yt-dlp and returns its combined output for error
// classification.
func (f *Fetcher) run(ctx context.Context, args ...string) (string, error) {
	if f.Verbose {
		log.Printf("Running %s %s", f.binary(), strings.Join(args, " "))
	}
	cmd := exec.CommandContext(ctx, f.binary(), args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// DownloadOptions describes a sectioned clip download.
type DownloadOptions struct {
	URL        string
	StartTime  string // clock string
	EndTime    string // clock string, empty runs to the end
	OutputPath string
	Format     string // yt-dlp format selector, empty means DefaultVideoFormat

	// FullDownload fetches the whole video and cuts it locally instead
	// of using sectioned download. Slower but exact on sources where
	// sectioned download misbehaves.
	FullDownload bool
}

// DownloadClip downloads the configured section of a video. Sectioned
// download is tried first; sources that reject it fall back to a full
// download followed by a local copy cut.
func (f *Fetcher) DownloadClip(ctx context.Context, opts DownloadOptions) error {
	if opts.URL == "" {
		return errors.New("url is required")
	}
	if opts.StartTime == "" {
		return errors.New("start time is required")
	}
	if err := ensureDir(opts.OutputPath); err != nil {
		return err
	}
	if opts.Format == "" {
		opts.Format = DefaultVideoFormat
	}

	if opts.FullDownload {
		return f.downloadFullThenCut(ctx, opts)
	}
	return f.downloadSection(ctx, opts)
}

func (f *Fetcher) downloadSection(ctx context.Context, opts DownloadOptions) error {
	section := "*" + opts.StartTime + "-inf"
	if opts.EndTime != "" {
		section = "*" + opts.StartTime + "-" + opts.EndTime
	}
	basePath := strings.TrimSuffix(opts.OutputPath, filepath.Ext(opts.OutputPath))

	out, err := f.run(ctx,
		"-f", opts.Format,
		"--download-sections", section,
		"-o", basePath,
		"--force-keyframes-at-cuts",
		opts.URL,
	)
	if err != nil {
		// Older yt-dlp builds reject --download-sections; the full
		// download path still works there.
		lower := strings.ToLower(out)
		if strings.Contains(lower, "unrecognized") || strings.Contains(lower, "invalid") {
			log.Printf("Note: sectioned download not supported, falling back to full download")
			return f.downloadFullThenCut(ctx, opts)
		}
		return errors.Wrapf(err, "downloading section: %s", firstLine(out))
	}

	// yt-dlp appends its own extension.
	found := firstExisting(opts.OutputPath, basePath+".webm", basePath+".mp4")
	if found == "" {
		return errors.New("download produced no output file")
	}
	if found != opts.OutputPath {
		if err := os.Rename(found, opts.OutputPath); err != nil {
			return errors.Wrap(err, "renaming downloaded clip")
		}
	}
	return nil
}

func (f *Fetcher) downloadFullThenCut(ctx context.Context, opts DownloadOptions) error {
	tempDir, err := os.MkdirTemp("", "clip_download_")
	if err != nil {
		return errors.Wrap(err, "creating temp directory")
	}
	defer os.RemoveAll(tempDir)

	tempVideo := filepath.Join(tempDir, "full_video.webm")
	out, err := f.run(ctx, "-f", opts.Format, "-o", tempVideo, opts.URL)
	if err != nil {
		return errors.Wrapf(err, "downloading video: %s", firstLine(out))
	}
	if _, err := os.Stat(tempVideo); err != nil {
		return errors.New("download produced no output file")
	}

	proc := ffmpeg.NewProcessor(f.Verbose)
	return proc.CutCopy(tempVideo, opts.OutputPath, opts.StartTime, opts.EndTime)
}

// FetchSubtitles downloads the subtitle track for lang (manual or
// auto-generated) as SRT. Returns false with a nil error when the video
// simply has no subtitles.
func (f *Fetcher) FetchSubtitles(ctx context.Context, url, outputPath, lang string) (bool, error) {
	if lang == "" {
		lang = "ja"
	}
	if err := ensureDir(outputPath); err != nil {
		return false, err
	}
	basePath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))

	out, err := f.run(ctx,
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-lang", lang,
		"--sub-format", "srt",
		"--convert-subs", "srt",
		"-o", basePath,
		url,
	)
	if err != nil {
		return false, errors.Wrapf(err, "fetching subtitles: %s", firstLine(out))
	}

	// yt-dlp inserts the language code into the file name.
	found := firstExisting(
		basePath+"."+lang+".srt",
		basePath+".ja.srt",
		basePath+".srt",
	)
	if found == "" {
		return false, nil
	}
	if found != outputPath {
		if err := os.Rename(found, outputPath); err != nil {
			return false, errors.Wrap(err, "renaming subtitle file")
		}
	}
	return true, nil
}

func ensureDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	return errors.Wrap(os.MkdirAll(dir, 0o755), "creating output directory")
}

func firstExisting(paths ...string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
