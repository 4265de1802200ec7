// Package ffmpeg wraps the ffmpeg and ffprobe binaries for the
// composition steps: probing clips, burning subtitle and overlay tracks
// into the final render, audio extraction and the vertical short
// reframe.
package ffmpeg

import (
	"math"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// CodecSettings bundles the encoder configuration for one container
// format.
type CodecSettings struct {
	VideoCodec      string
	AudioCodec      string
	DefaultCRF      int
	ContainerFormat string
	FileExtension   string
	EncoderPresets  map[string]ffmpeg.KwArgs
}

var codecPresets = map[string]CodecSettings{
	"mp4": {
		VideoCodec:      "libx264",
		AudioCodec:      "aac",
		DefaultCRF:      23,
		ContainerFormat: "mp4",
		FileExtension:   ".mp4",
		EncoderPresets: map[string]ffmpeg.KwArgs{
			"default": {
				"preset": "medium",
			},
			"high_quality": {
				"preset":    "slower",
				"profile:v": "high",
				"movflags":  "+faststart",
			},
		},
	},
	"webm": {
		VideoCodec:      "libvpx-vp9",
		AudioCodec:      "libopus",
		DefaultCRF:      31,
		ContainerFormat: "webm",
		FileExtension:   ".webm",
		EncoderPresets: map[string]ffmpeg.KwArgs{
			"default": {
				"deadline": "good",
				"cpu-used": 2,
			},
			"high_quality": {
				"deadline":     "best",
				"cpu-used":     1,
				"row-mt":       1,
				"tile-columns": 2,
			},
		},
	},
}

// GetCodecSettings resolves an output format name, defaulting to mp4
// for anything unknown.
func GetCodecSettings(outputFormat string) CodecSettings {
	if settings, ok := codecPresets[outputFormat]; ok {
		return settings
	}
	return codecPresets["mp4"]
}

// Processor wraps ffmpeg invocations. The zero value is usable; verbose
// turns on command logging.
type Processor struct {
	verbose bool
}

// NewProcessor creates a new ffmpeg processor.
func NewProcessor(verbose bool) *Processor {
	return &Processor{verbose: verbose}
}

// GetOptimalThreadCount returns the encoder thread budget, leaving a
// quarter of the cores for the rest of the system.
func GetOptimalThreadCount() int {
	cpuCount := runtime.NumCPU()
	return int(math.Max(1, float64(cpuCount)*0.75))
}

// EnsureExtension swaps any known video extension on filename for the
// given one.
func EnsureExtension(filename, extension string) string {
	extensions := []string{".mp4", ".webm", ".mkv", ".avi", ".mov"}
	for _, ext := range extensions {
		filename = strings.TrimSuffix(filename, ext)
	}
	return filename + extension
}

// escapeFilterPath makes a path safe inside a filter argument. Colons
// separate filter options, so drive letters and the like must be
// escaped.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.ReplaceAll(path, ":", "\\:")
}
