package overlay

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// TitleBarConfig describes the animated bar across the top of the
// frame: a colored bar and title text sliding out from behind the
// channel logo, with the channel name on a second ribbon underneath.
type TitleBarConfig struct {
	VideoWidth  int
	VideoHeight int

	BarHeight   int
	BarY        int
	BarColor    string // &HAABBGGRR
	RibbonColor string

	FontName        string
	ChannelFontName string
	FontSize        int
	ChannelFontSize int

	TextColor           string
	OutlineColor        string
	ChannelOutlineColor string

	LogoX      int
	LogoHeight int

	SlideDuration   float64
	DisplayDuration float64 // <= 0 keeps the bar up for the whole clip
}

// DefaultTitleBarConfig returns the tuned 1920x1080 title bar.
func DefaultTitleBarConfig() TitleBarConfig {
	return TitleBarConfig{
		VideoWidth:  1920,
		VideoHeight: 1080,

		BarHeight: DefaultTitleBarHeight,
		BarY:      DefaultTitleBarMarginTop,
		// Yellow RGB(255,229,0) stored as BGR.
		BarColor: "&H0000E5FF",
		// Blue RGB(0,120,215) stored as BGR.
		RibbonColor: "&H00D77800",

		FontName:        DefaultFontName,
		ChannelFontName: "Hiragino Sans W9",
		FontSize:        DefaultTitleBarFontSize,
		ChannelFontSize: 45,

		TextColor:           "&H00000000",
		OutlineColor:        "&H00FFFFFF",
		ChannelOutlineColor: "&H00404040",

		LogoX:      DefaultLogoXOffset,
		LogoHeight: DefaultLogoHeight,

		SlideDuration: DefaultSlideDuration,
	}
}

const (
	styleTitleText  = "TitleText"
	styleTitleBar   = "TitleBar"
	styleChannel    = "ChannelName"
	styleChannelBg  = "ChannelBg"
	openEndedFinish = 9*3600 + 59*60 + 59.99
)

// GenerateTitleBar renders the title bar ASS document. channelName may
// be empty, which drops the lower ribbon entirely.
func GenerateTitleBar(title, channelName string, cfg TitleBarConfig) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", errors.New("title must not be empty")
	}

	styles := map[string]Style{
		styleTitleText: {
			FontName:     cfg.FontName,
			FontSize:     cfg.FontSize,
			PrimaryColor: cfg.TextColor,
			OutlineColor: cfg.OutlineColor,
			BackColor:    "&H00000000",
			Bold:         true,
			OutlineWidth: 5,
			ShadowDepth:  3,
			Alignment:    7,
			MarginL:      30,
			MarginR:      30,
		},
		styleTitleBar: {
			FontName:     "Arial",
			FontSize:     20,
			PrimaryColor: cfg.BarColor,
			OutlineColor: "&H00000000",
			BackColor:    "&H00000000",
			Alignment:    7,
		},
		styleChannel: {
			FontName:     cfg.ChannelFontName,
			FontSize:     48,
			PrimaryColor: "&H00FFFFFF",
			OutlineColor: cfg.ChannelOutlineColor,
			BackColor:    "&H00000000",
			Bold:         true,
			OutlineWidth: 4,
			ShadowDepth:  2,
			Alignment:    7,
			MarginL:      30,
			MarginR:      30,
		},
		styleChannelBg: {
			FontName:     "Arial",
			FontSize:     20,
			PrimaryColor: cfg.RibbonColor,
			OutlineColor: "&H00000000",
			BackColor:    "&H00000000",
			Alignment:    7,
		},
	}

	slideEnd := cfg.SlideDuration
	totalEnd := openEndedFinish
	if cfg.DisplayDuration > 0 {
		totalEnd = cfg.DisplayDuration + cfg.SlideDuration
	}
	slideMs := int(cfg.SlideDuration * 1000)

	logoCenterX := cfg.LogoX + cfg.LogoHeight/2
	barTop := cfg.BarY
	barBottom := cfg.BarY + cfg.BarHeight
	textX := cfg.LogoX + cfg.LogoHeight + 15 // clear of the logo circle
	textY := cfg.BarY + cfg.BarHeight/2

	titleEscaped := EscapeText(title)
	titleWidth := len([]rune(title)) * cfg.FontSize

	var events []Event

	// Bar background: a vector rectangle from the logo center to the
	// right edge, revealed left to right, then held static.
	barWidth := cfg.VideoWidth - logoCenterX
	barDrawing := fmt.Sprintf("m 0 0 l %d 0 l %d %d l 0 %d", barWidth, barWidth, cfg.BarHeight, cfg.BarHeight)
	events = append(events,
		Event{
			Layer: 0, Start: 0, End: slideEnd, Style: styleTitleBar,
			Tag:  clipRevealTag(logoCenterX, barTop, logoCenterX, barTop, cfg.VideoWidth, barBottom, slideMs, `\p1`),
			Text: barDrawing + `\N`,
		},
		Event{
			Layer: 0, Start: slideEnd, End: totalEnd, Style: styleTitleBar,
			Tag:  fmt.Sprintf(`{\pos(%d,%d)\p1}`, logoCenterX, barTop),
			Text: barDrawing + `\N`,
		},
	)

	// Title text, revealed with the same clip animation.
	events = append(events,
		Event{
			Layer: 1, Start: 0, End: slideEnd, Style: styleTitleText,
			Tag: fmt.Sprintf(`{\an4\pos(%d,%d)\clip(%d,%d,%d,%d)\t(0,%d,\clip(%d,%d,%d,%d))}`,
				textX, textY,
				logoCenterX, barTop, logoCenterX+1, barBottom,
				slideMs,
				logoCenterX, barTop, textX+titleWidth, barBottom),
			Text: titleEscaped + `\N`,
		},
		Event{
			Layer: 1, Start: slideEnd, End: totalEnd, Style: styleTitleText,
			Tag:  fmt.Sprintf(`{\an4\pos(%d,%d)}`, textX, textY),
			Text: titleEscaped + `\N`,
		},
	)

	if strings.TrimSpace(channelName) != "" {
		events = append(events, channelRibbonEvents(channelName, cfg, logoCenterX, textX, slideEnd, totalEnd, slideMs)...)
	}

	var b strings.Builder
	b.WriteString(header("Title Bar", cfg.VideoWidth, cfg.VideoHeight, styles))
	for _, ev := range events {
		b.WriteString(ev.Dialogue())
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// channelRibbonEvents renders the channel-name ribbon in the strip
// between the bar's lower edge and the logo's lower edge.
func channelRibbonEvents(channelName string, cfg TitleBarConfig, logoCenterX, textX int, slideEnd, totalEnd float64, slideMs int) []Event {
	areaHeight := cfg.LogoHeight - cfg.BarHeight
	areaTop := cfg.BarY + cfg.BarHeight
	areaBottom := areaTop + areaHeight
	nameY := areaTop + areaHeight/2

	nameWidth := len([]rune(channelName)) * cfg.ChannelFontSize
	bgRight := textX + nameWidth + 30
	bgWidth := bgRight - logoCenterX
	bgDrawing := fmt.Sprintf("m 0 0 l %d 0 l %d %d l 0 %d", bgWidth, bgWidth, areaHeight, areaHeight)

	nameEscaped := EscapeText(channelName)

	return []Event{
		{
			Layer: 2, Start: 0, End: slideEnd, Style: styleChannelBg,
			Tag:  clipRevealTag(logoCenterX, areaTop, logoCenterX, areaTop, bgRight, areaBottom, slideMs, `\p1`),
			Text: bgDrawing + `\N`,
		},
		{
			Layer: 2, Start: slideEnd, End: totalEnd, Style: styleChannelBg,
			Tag:  fmt.Sprintf(`{\pos(%d,%d)\p1}`, logoCenterX, areaTop),
			Text: bgDrawing + `\N`,
		},
		{
			Layer: 3, Start: 0, End: slideEnd, Style: styleChannel,
			Tag: fmt.Sprintf(`{\an4\pos(%d,%d)\clip(%d,%d,%d,%d)\t(0,%d,\clip(%d,%d,%d,%d))}`,
				textX, nameY,
				logoCenterX, areaTop, logoCenterX+1, areaBottom,
				slideMs,
				logoCenterX, areaTop, textX+nameWidth, areaBottom),
			Text: nameEscaped + `\N`,
		},
		{
			Layer: 3, Start: slideEnd, End: totalEnd, Style: styleChannel,
			Tag:  fmt.Sprintf(`{\an4\pos(%d,%d)}`, textX, nameY),
			Text: nameEscaped + `\N`,
		},
	}
}
