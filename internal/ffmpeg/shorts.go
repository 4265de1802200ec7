package ffmpeg

import (
	"fmt"
	"log"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/kirinuki-dev/kirinuki/internal/platform"
)

// CutCopy extracts [startTime, endTime] from inputPath without
// re-encoding. Times are clock strings; an empty endTime runs to the
// end of the source. Cuts land on the nearest keyframe, which is
// accurate enough for a clip that gets re-encoded downstream anyway.
func (p *Processor) CutCopy(inputPath, outputPath, startTime, endTime string) error {
	inputKwargs := ffmpeg.KwArgs{"ss": startTime}
	if endTime != "" {
		inputKwargs["to"] = endTime
	}

	if p.verbose {
		log.Printf("Cutting %s [%s - %s] -> %s", inputPath, startTime, endTime, outputPath)
	}

	err := ffmpeg.Input(inputPath, inputKwargs).
		Output(outputPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().
		ErrorToStdOut().
		Run()
	if err != nil {
		return errors.Wrap(err, "cutting video")
	}
	return nil
}

// ShortOptions selects the segment of a finished clip to reframe as a
// vertical short. Times are seconds from the start of the clip. Target
// supplies platform encoder settings; nil falls back to the
// youtube-shorts canvas with the mp4 defaults.
type ShortOptions struct {
	StartTime float64
	EndTime   float64
	Target    platform.Target
}

const (
	shortWidth  = 1080
	shortHeight = 1920
)

// GenerateShort cuts the segment out of a finished render and centers
// it on a vertical canvas. The source keeps its aspect ratio; the
// letterbox bands above and below stay black.
func (p *Processor) GenerateShort(inputPath, outputPath string, opts ShortOptions) error {
	if opts.EndTime <= opts.StartTime {
		return errors.New("end time must be after start time")
	}

	width, height := shortWidth, shortHeight
	videoCodec, audioCodec := "libx264", "aac"
	videoBitrate, audioBitrate := "", "128k"
	if opts.Target != nil {
		width, height = opts.Target.Dimensions()
		if limit := float64(opts.Target.MaxDuration()); opts.EndTime-opts.StartTime > limit {
			return errors.Errorf("%s allows at most %d seconds", opts.Target.Name(), opts.Target.MaxDuration())
		}
		videoCodec = opts.Target.VideoCodec()
		audioCodec = opts.Target.AudioCodec()
		videoBitrate = opts.Target.VideoBitrate()
		audioBitrate = opts.Target.AudioBitrate()
	}

	metadata, err := p.GetVideoMetadata(inputPath)
	if err != nil {
		return errors.Wrap(err, "probing short source")
	}
	if metadata.Width == 0 || metadata.Height == 0 {
		return errors.New("could not determine source dimensions")
	}

	scaledHeight := width * metadata.Height / metadata.Width
	padTop := (height - scaledHeight) / 2

	if p.verbose {
		log.Printf("Short reframe %dx%d -> %dx%d, pad top %dpx",
			metadata.Width, metadata.Height, width, scaledHeight, padTop)
	}

	outputKwargs := ffmpeg.KwArgs{
		"vf": fmt.Sprintf("scale=%d:%d,pad=%d:%d:0:%d:black",
			width, scaledHeight, width, height, padTop),
		"c:v":    videoCodec,
		"preset": "medium",
		"c:a":    audioCodec,
		"b:a":    audioBitrate,
	}
	if videoBitrate != "" {
		outputKwargs["b:v"] = videoBitrate
	} else {
		outputKwargs["crf"] = 23
	}

	err = ffmpeg.Input(inputPath, ffmpeg.KwArgs{
		"ss": opts.StartTime,
		"to": opts.EndTime,
	}).
		Output(outputPath, outputKwargs).
		OverWriteOutput().
		ErrorToStdOut().
		Run()
	if err != nil {
		return errors.Wrap(err, "generating short video")
	}
	return nil
}
