// Package platform describes the publishing targets a generated short
// can be encoded for. Each target declares its canvas, duration limit
// and encoder settings; targets register themselves at init time.
package platform

import (
	"sort"

	"github.com/pkg/errors"
)

// Target defines platform-specific constraints for vertical clips.
type Target interface {
	// Name returns the registry key, e.g. "youtube-shorts".
	Name() string

	// Dimensions returns the output canvas.
	Dimensions() (width, height int)

	// MaxDuration returns the longest allowed clip in seconds.
	MaxDuration() int

	VideoCodec() string
	AudioCodec() string
	VideoBitrate() string
	AudioBitrate() string
}

var targets = make(map[string]Target)

// Register adds a target to the registry.
func Register(t Target) {
	targets[t.Name()] = t
}

// Get returns a target by name.
func Get(name string) (Target, error) {
	t, ok := targets[name]
	if !ok {
		return nil, errors.Errorf("unsupported platform: %s", name)
	}
	return t, nil
}

// Supported returns the registered target names, sorted.
func Supported() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
