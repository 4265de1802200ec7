package overlay

import (
	"math"
	"testing"
)

func TestHeuristicMeasurerWidth(t *testing.T) {
	m := HeuristicMeasurer{Coefficient: 0.6}

	tests := []struct {
		name     string
		text     string
		fontSize int
		want     float64
	}{
		{"ascii", "hello", 60, 5 * 60 * 0.6},
		{"multibyte counts runes not bytes", "こんにちは", 60, 5 * 60 * 0.6},
		{"empty", "", 60, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Width(tt.text, tt.fontSize)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Width(%q, %d) = %v, want %v", tt.text, tt.fontSize, got, tt.want)
			}
		})
	}
}

func TestHeuristicMeasurerDefaultCoefficient(t *testing.T) {
	m := HeuristicMeasurer{}
	want := 2 * 60 * DefaultWidthCoefficient
	if got := m.Width("ab", 60); math.Abs(got-want) > 1e-9 {
		t.Errorf("zero-value coefficient should fall back to default: got %v, want %v", got, want)
	}
}

func TestEstimateWidthFloor(t *testing.T) {
	m := HeuristicMeasurer{Coefficient: 0.6}

	if got := EstimateWidth("a", 60, 320, m); got != 320 {
		t.Errorf("short text should hit the floor: got %v, want 320", got)
	}

	long := EstimateWidth("aaaaaaaaaaaaaaaaaaaa", 60, 320, m) // 20*60*0.6 = 720
	if long != 720 {
		t.Errorf("long text should clear the floor: got %v, want 720", long)
	}
}

func TestConfigMeasurerFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WidthCoefficient = 0
	m := cfg.measurer()
	want := 60.0 * DefaultWidthCoefficient
	if got := m.Width("x", 60); math.Abs(got-want) > 1e-9 {
		t.Errorf("fallback measurer Width = %v, want %v", got, want)
	}
}
