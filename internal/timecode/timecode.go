// Package timecode converts between the three time representations the
// pipeline uses: colon-delimited clock strings from config files, SRT
// timestamps (millisecond precision, comma separator) and ASS timestamps
// (centisecond precision, no leading zero on hours).
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatError reports a clock string that could not be parsed.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time format %q: %s", e.Input, e.Reason)
}

// ParseClock converts "hh:mm:ss" or "mm:ss" to seconds. Fractional
// seconds are accepted in any field.
//
//	ParseClock("01:23:45") == 5025
//	ParseClock("23:45") == 1425
func ParseClock(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")

	var fields []float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, &FormatError{Input: s, Reason: fmt.Sprintf("field %q is not numeric", p)}
		}
		fields = append(fields, v)
	}

	switch len(fields) {
	case 3:
		return fields[0]*3600 + fields[1]*60 + fields[2], nil
	case 2:
		return fields[0]*60 + fields[1], nil
	default:
		return 0, &FormatError{Input: s, Reason: "expected 2 or 3 colon-separated fields"}
	}
}

// FormatSRT renders seconds as "hh:mm:ss,mmm". Milliseconds come from
// the fractional remainder and are truncated, not rounded, matching the
// files the rest of the toolchain already produces.
//
//	FormatSRT(5025.5) == "01:23:45,500"
func FormatSRT(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int((seconds - float64(total)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// FormatASS renders seconds as "h:mm:ss.cc" (centiseconds, no leading
// zero on the hour field; hours past 9 keep all their digits).
//
//	FormatASS(5025.5) == "1:23:45.50"
func FormatASS(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	centis := int((seconds - float64(total)) * 100)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}
