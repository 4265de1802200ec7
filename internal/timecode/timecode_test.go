package timecode

import (
	"math"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"01:23:45", 5025},
		{"23:45", 1425},
		{"00:00", 0},
		{"0:05", 5},
		{"1:02:03.5", 3723.5},
		{" 01:23:45 ", 5025},
	}

	for _, tc := range tests {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Errorf("ParseClock(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, in := range []string{"", "12", "1:2:3:4", "aa:bb", "12:xx:00"} {
		if _, err := ParseClock(in); err == nil {
			t.Errorf("ParseClock(%q) should fail", in)
		} else if _, ok := err.(*FormatError); !ok {
			t.Errorf("ParseClock(%q) error type = %T; want *FormatError", in, err)
		}
	}
}

func TestFormatSRT(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5025.5, "01:23:45,500"},
		{0, "00:00:00,000"},
		{59.999, "00:00:59,999"},
		{3600, "01:00:00,000"},
	}

	for _, tc := range tests {
		if got := FormatSRT(tc.in); got != tc.want {
			t.Errorf("FormatSRT(%v) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatASS(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5025.5, "1:23:45.50"},
		{0, "0:00:00.00"},
		{35999.75, "9:59:59.75"},
		// 35999.99 carries a stored fraction just under .99, and the
		// centiseconds truncate rather than round.
		{35999.99, "9:59:59.98"},
		{36000, "10:00:00.00"},
	}

	for _, tc := range tests {
		if got := FormatASS(tc.in); got != tc.want {
			t.Errorf("FormatASS(%v) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

// Parsing back an SRT timestamp (comma swapped for a dot) must recover
// the original value to millisecond precision.
func TestSRTRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 0.001, 1.25, 59.999, 5025.5, 99999.123} {
		s := FormatSRT(x)
		parsed, err := ParseClock(replaceComma(s))
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
		if math.Abs(parsed-x) >= 0.001 {
			t.Errorf("round trip %v -> %q -> %v drifted by more than 1ms", x, s, parsed)
		}
	}
}

func replaceComma(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] == ',' {
			out[i] = '.'
		}
	}
	return string(out)
}
