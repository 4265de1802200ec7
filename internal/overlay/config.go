package overlay

// Default layout constants. Vertical positions are derived from the
// title bar block so the chat area never overlaps it.
const (
	DefaultTitleBarHeight    = 120
	DefaultTitleBarMarginTop = 10
	DefaultTitleBarFontSize  = 90
	DefaultSlideDuration     = 1.2
	DefaultLogoHeight        = 180
	DefaultLogoXOffset       = 15

	DefaultLaneCount   = 10
	DefaultLaneTop     = DefaultTitleBarMarginTop + DefaultTitleBarHeight + 130
	DefaultLaneSpacing = 60
	DefaultLaneGap     = 1.0

	DefaultCommentSpeed     = 380.0
	DefaultHorizontalMargin = 80
	DefaultMinCommentWidth  = 320

	DefaultFontName     = "Hiragino Sans"
	DefaultFontSize     = 60
	DefaultOutlineWidth = 3

	DefaultStackCapacity   = 7
	DefaultStackLineHeight = 70
	DefaultStackTail       = 5.0
	DefaultStackTransition = 0.3

	DefaultWrapThreshold = 20

	// Approximate glyph advance as a fraction of em size. Hiragino Sans
	// runs close to 0.55-0.6em per glyph, so 0.6 overestimates slightly,
	// which is the safe direction for collision avoidance.
	DefaultWidthCoefficient = 0.6
)

// Mode selects how chat messages are placed on the canvas.
type Mode string

const (
	// ModeScroll runs messages right-to-left across horizontal lanes.
	ModeScroll Mode = "scroll"
	// ModeStack keeps a capacity-bounded vertical history column.
	ModeStack Mode = "stack"
)

// Config holds every knob for chat overlay generation. The zero value
// is not usable; start from DefaultConfig.
type Config struct {
	VideoWidth  int
	VideoHeight int

	Mode Mode

	// Scroll mode.
	LaneCount   int
	LaneTop     int
	LaneSpacing int
	LaneGap     float64 // seconds of clearance before a lane is reused

	// Messages earlier than this many seconds into the clip are not shown.
	VisibleStartOffset float64

	CommentSpeed     float64 // pixels per second
	HorizontalMargin int     // entry offset past the right edge
	MinCommentWidth  int

	FontName string
	FontSize int

	// Colors in ASS &HAABBGGRR form.
	TextColor       string
	OutlineColor    string
	BackgroundColor string

	OutlineWidth int
	ShadowDepth  int
	MarginV      int
	MarginR      int

	// Stack mode.
	StackCapacity   int
	StackLeft       int     // X of the message column
	StackBottom     int     // Y of the newest (bottom) slot, bottom-left anchored
	StackLineHeight int     // vertical pixels per rendered text line
	StackFontSize   int     // stack text is denser than scroll text
	StackTail       float64 // visibility after the last arrival, seconds
	StackTransition float64 // slide/fade duration, seconds
	StackShowAuthor bool    // prefix messages with the author name

	WrapThreshold int // rune count above which a line break is inserted

	// WidthCoefficient feeds the default heuristic measurer. Setting
	// Measurer overrides the heuristic entirely.
	WidthCoefficient float64
	Measurer         Measurer
}

// DefaultConfig returns the tuned 1920x1080 configuration.
func DefaultConfig() Config {
	return Config{
		VideoWidth:  1920,
		VideoHeight: 1080,

		Mode: ModeScroll,

		LaneCount:   DefaultLaneCount,
		LaneTop:     DefaultLaneTop,
		LaneSpacing: DefaultLaneSpacing,
		LaneGap:     DefaultLaneGap,

		VisibleStartOffset: 5.0,

		CommentSpeed:     DefaultCommentSpeed,
		HorizontalMargin: DefaultHorizontalMargin,
		MinCommentWidth:  DefaultMinCommentWidth,

		FontName: DefaultFontName,
		FontSize: DefaultFontSize,

		TextColor:       "&H00FFFFFF",
		OutlineColor:    "&H00000000",
		BackgroundColor: "&H80000000",

		OutlineWidth: DefaultOutlineWidth,
		ShadowDepth:  2,
		MarginV:      10,
		MarginR:      20,

		StackCapacity:   DefaultStackCapacity,
		StackLeft:       40,
		StackBottom:     1000,
		StackLineHeight: DefaultStackLineHeight,
		StackFontSize:   48,
		StackTail:       DefaultStackTail,
		StackTransition: DefaultStackTransition,

		WrapThreshold: DefaultWrapThreshold,

		WidthCoefficient: DefaultWidthCoefficient,
	}
}

// measurer resolves the configured Measurer, falling back to the
// character-count heuristic.
func (c *Config) measurer() Measurer {
	if c.Measurer != nil {
		return c.Measurer
	}
	coeff := c.WidthCoefficient
	if coeff <= 0 {
		coeff = DefaultWidthCoefficient
	}
	return HeuristicMeasurer{Coefficient: coeff}
}
