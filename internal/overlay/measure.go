package overlay

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Measurer estimates the rendered pixel width of a text run at a given
// font size. The default implementation is a character-count heuristic;
// FaceMeasurer swaps in real font metrics when a font file is at hand.
type Measurer interface {
	Width(text string, fontSize int) float64
}

// HeuristicMeasurer approximates width as runes * size * coefficient.
// It knows nothing about kerning or proportional glyphs; it exists
// because the target fonts are near-mono CJK faces where a fixed em
// fraction is accurate enough for lane collision math.
type HeuristicMeasurer struct {
	Coefficient float64
}

func (m HeuristicMeasurer) Width(text string, fontSize int) float64 {
	coeff := m.Coefficient
	if coeff <= 0 {
		coeff = DefaultWidthCoefficient
	}
	return float64(len([]rune(text))) * float64(fontSize) * coeff
}

// EstimateWidth applies the measurer with a floor. The floor keeps very
// short messages from producing degenerate lane occupancy windows.
func EstimateWidth(text string, fontSize, minWidth int, m Measurer) float64 {
	w := m.Width(text, fontSize)
	if w < float64(minWidth) {
		return float64(minWidth)
	}
	return w
}

// FaceMeasurer measures text with real font metrics from an OpenType
// file.
type FaceMeasurer struct {
	font     *opentype.Font
	fallback HeuristicMeasurer
}

// NewFaceMeasurer loads and parses the font at path.
func NewFaceMeasurer(path string) (*FaceMeasurer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading font file %s", path)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing font file %s", path)
	}
	return &FaceMeasurer{
		font:     f,
		fallback: HeuristicMeasurer{Coefficient: DefaultWidthCoefficient},
	}, nil
}

func (m *FaceMeasurer) Width(text string, fontSize int) float64 {
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return m.fallback.Width(text, fontSize)
	}
	defer face.Close()

	adv := font.MeasureString(face, text)
	return float64(adv) / 64 // fixed.Int26_6 to pixels
}
