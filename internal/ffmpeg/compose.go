package ffmpeg

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrEmptyCrop reports crop percentages that leave no frame behind.
var ErrEmptyCrop = errors.New("crop percentages remove the entire frame")

// Crop trims the named fraction off each edge, in percent of the
// original dimension.
type Crop struct {
	TopPercent    float64
	BottomPercent float64
	LeftPercent   float64
	RightPercent  float64
}

func (c Crop) active() bool {
	return c.TopPercent > 0 || c.BottomPercent > 0 || c.LeftPercent > 0 || c.RightPercent > 0
}

// ComposeOptions selects which tracks get burned into the final render.
// Empty paths are skipped; paths that are set but missing on disk are
// skipped with a warning so a clip without chat still composes.
type ComposeOptions struct {
	SubtitlePath string // SRT or ASS
	OverlayPath  string // chat overlay ASS
	TitlePath    string // title bar ASS
	LogoPath     string // channel logo image, masked to a circle

	Crop Crop

	OutputFormat string // "mp4" or "webm", empty means mp4
	Preset       string // encoder preset name, empty means "default"
	CRF          int    // 0 means the format default

	LogoX      int
	LogoY      int
	LogoHeight int
}

// DefaultComposeOptions positions the logo inside the title bar block.
func DefaultComposeOptions() ComposeOptions {
	return ComposeOptions{
		LogoX:      15,
		LogoY:      10,
		LogoHeight: 180,
	}
}

// cropFilter resolves crop percentages against the input dimensions
// into a crop filter expression. The cropped region is then tightened
// to 16:9, trimming the longer axis instead of padding, so downstream
// overlays always address a 16:9 canvas.
func cropFilter(c Crop, width, height int) (string, error) {
	leftFrac := math.Max(0, c.LeftPercent/100)
	rightFrac := math.Max(0, c.RightPercent/100)
	topFrac := math.Max(0, c.TopPercent/100)
	bottomFrac := math.Max(0, c.BottomPercent/100)

	widthFactor := 1 - leftFrac - rightFrac
	heightFactor := 1 - topFrac - bottomFrac
	if widthFactor <= 0 || heightFactor <= 0 {
		return "", ErrEmptyCrop
	}

	inputAspect := float64(width) / float64(height)
	targetRatio := (16.0 / 9.0) / inputAspect

	desiredWidthFactor := heightFactor * targetRatio
	if desiredWidthFactor <= widthFactor && desiredWidthFactor > 0 {
		reduce := widthFactor - desiredWidthFactor
		leftFrac += reduce / 2
		rightFrac += reduce / 2
		widthFactor = desiredWidthFactor
	} else {
		desiredHeightFactor := widthFactor / targetRatio
		reduce := heightFactor - desiredHeightFactor
		topFrac += reduce / 2
		bottomFrac += reduce / 2
		heightFactor = desiredHeightFactor
	}

	if widthFactor <= 0 || heightFactor <= 0 {
		return "", ErrEmptyCrop
	}

	return fmt.Sprintf("crop=iw*%.6f:ih*%.6f:iw*%.6f:ih*%.6f",
		widthFactor, heightFactor, leftFrac, topFrac), nil
}

// videoFilters builds the per-frame filter chain: optional crop, SAR
// pin, then the burned-in tracks in draw order.
func (p *Processor) videoFilters(opts ComposeOptions, width, height int) ([]string, error) {
	var filters []string

	if opts.Crop.active() {
		expr, err := cropFilter(opts.Crop, width, height)
		if err != nil {
			return nil, err
		}
		filters = append(filters, expr)
	}

	// Pin the pixel aspect ratio so players do not rescale the burned
	// overlays.
	filters = append(filters, "setsar=1")

	for _, track := range []struct {
		path string
		kind string
	}{
		{opts.SubtitlePath, "subtitle"},
		{opts.OverlayPath, "chat overlay"},
		{opts.TitlePath, "title bar"},
	} {
		if track.path == "" {
			continue
		}
		if _, err := os.Stat(track.path); err != nil {
			log.Printf("Warning: %s track %s not found, skipping", track.kind, track.path)
			continue
		}
		filterName := "ass"
		if track.kind == "subtitle" && !strings.HasSuffix(track.path, ".ass") {
			filterName = "subtitles"
		}
		filters = append(filters, fmt.Sprintf("%s=%s", filterName, escapeFilterPath(track.path)))
	}

	return filters, nil
}

// logoFilterComplex wires the base chain and the circular logo mask
// into one filter graph. The logo is scaled square, masked to a circle
// with a white border ring and overlaid inside the title bar.
func logoFilterComplex(baseChain string, opts ComposeOptions) string {
	const borderWidth = 12

	inside := fmt.Sprintf("lte(hypot(X-W/2,Y-H/2),W/2-%d)", borderWidth)
	logoChain := fmt.Sprintf(
		"scale=%d:%d,format=rgba,"+
			"geq=r='if(%s,r(X,Y),255)':g='if(%s,g(X,Y),255)':b='if(%s,b(X,Y),255)':"+
			"a='if(lte(hypot(X-W/2,Y-H/2),W/2),255,0)'",
		opts.LogoHeight, opts.LogoHeight, inside, inside, inside)

	return fmt.Sprintf("[0:v]%s[v_base];[1:v]%s[logo];[v_base][logo]overlay=%d:%d",
		baseChain, logoChain, opts.LogoX, opts.LogoY)
}

// Compose burns the subtitle, chat overlay and title bar tracks into
// the clip and re-encodes it.
func (p *Processor) Compose(videoPath, outputPath string, opts ComposeOptions) error {
	width, height := 1920, 1080
	if metadata, err := p.GetVideoMetadata(videoPath); err == nil && metadata.Width > 0 && metadata.Height > 0 {
		width, height = metadata.Width, metadata.Height
	} else if err != nil && p.verbose {
		log.Printf("Warning: could not probe %s, assuming %dx%d: %v", videoPath, width, height, err)
	}

	filters, err := p.videoFilters(opts, width, height)
	if err != nil {
		return err
	}
	chain := strings.Join(filters, ",")

	settings := GetCodecSettings(opts.OutputFormat)
	crf := opts.CRF
	if crf <= 0 {
		crf = settings.DefaultCRF
	}
	presetName := opts.Preset
	if presetName == "" {
		presetName = "default"
	}

	outputKwargs := ffmpeg.KwArgs{
		"c:v":     settings.VideoCodec,
		"c:a":     settings.AudioCodec,
		"crf":     crf,
		"threads": GetOptimalThreadCount(),
	}
	for k, v := range settings.EncoderPresets[presetName] {
		outputKwargs[k] = v
	}

	hasLogo := opts.LogoPath != ""
	if hasLogo {
		if _, err := os.Stat(opts.LogoPath); err != nil {
			log.Printf("Warning: logo %s not found, skipping", opts.LogoPath)
			hasLogo = false
		}
	}

	var stream *ffmpeg.Stream
	if hasLogo {
		outputKwargs["filter_complex"] = logoFilterComplex(chain, opts)
		stream = ffmpeg.Output(
			[]*ffmpeg.Stream{ffmpeg.Input(videoPath), ffmpeg.Input(opts.LogoPath)},
			outputPath, outputKwargs)
	} else {
		outputKwargs["vf"] = chain
		stream = ffmpeg.Input(videoPath).Output(outputPath, outputKwargs)
	}

	if p.verbose {
		log.Printf("Composing %s -> %s (%s, crf %d)", videoPath, outputPath, settings.ContainerFormat, crf)
	}

	if err := stream.OverWriteOutput().ErrorToStdOut().Run(); err != nil {
		return errors.Wrap(err, "composing video")
	}
	return nil
}
