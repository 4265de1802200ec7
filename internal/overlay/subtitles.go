package overlay

import (
	"strings"

	"github.com/kirinuki-dev/kirinuki/internal/subtitle"
)

const styleSubtitle = "Default"

// SubtitleConfig styles the burned-in transcription track.
type SubtitleConfig struct {
	VideoWidth  int
	VideoHeight int

	FontName string
	FontSize int

	// Colors in ASS &HAABBGGRR form.
	TextColor    string
	OutlineColor string
	BackColor    string

	OutlineWidth int
	ShadowDepth  int
	MarginL      int
	MarginR      int
	MarginV      int

	WrapThreshold int
}

// DefaultSubtitleConfig returns the bottom-centered 1920x1080 style
// used for transcribed speech.
func DefaultSubtitleConfig() SubtitleConfig {
	return SubtitleConfig{
		VideoWidth:  1920,
		VideoHeight: 1080,

		FontName: DefaultFontName,
		FontSize: 110,

		TextColor:    "&H00FFFFFF",
		OutlineColor: "&H00000000",
		BackColor:    "&H80000000",

		OutlineWidth: 7,
		ShadowDepth:  4,
		MarginL:      50,
		MarginR:      50,
		MarginV:      40,

		WrapThreshold: DefaultWrapThreshold,
	}
}

// GenerateSubtitleASS renders transcription cues as a styled dialogue
// track. Long single-line cues get one break near the midpoint; the
// break is inserted before escaping so it survives as an ASS hard
// break rather than a literal backslash sequence.
func GenerateSubtitleASS(cues []subtitle.Cue, cfg SubtitleConfig) string {
	styles := map[string]Style{
		styleSubtitle: {
			FontName:     cfg.FontName,
			FontSize:     cfg.FontSize,
			PrimaryColor: cfg.TextColor,
			OutlineColor: cfg.OutlineColor,
			BackColor:    cfg.BackColor,
			Bold:         true,
			OutlineWidth: cfg.OutlineWidth,
			ShadowDepth:  cfg.ShadowDepth,
			Alignment:    2,
			MarginL:      cfg.MarginL,
			MarginR:      cfg.MarginR,
			MarginV:      cfg.MarginV,
		},
	}

	var b strings.Builder
	b.WriteString(header("Clip Subtitles", cfg.VideoWidth, cfg.VideoHeight, styles))

	wrapOpts := SubtitleWrapOptions(cfg.WrapThreshold)
	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" || cue.End <= cue.Start {
			continue
		}
		// Cues that already span lines keep their own breaks.
		if !strings.Contains(text, "\n") {
			text = Wrap(text, wrapOpts)
		}
		event := Event{
			Start: cue.Start,
			End:   cue.End,
			Style: styleSubtitle,
			Text:  EscapeText(text),
		}
		b.WriteString(event.Dialogue())
		b.WriteByte('\n')
	}
	return b.String()
}
