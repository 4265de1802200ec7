// Package config loads clip processing configuration from simple
// key=value text files or YAML.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/kirinuki-dev/kirinuki/internal/timecode"
)

// ClipConfig describes one clip extraction job: where the source video
// lives, which window of it to cut, and how to decorate the result.
type ClipConfig struct {
	VideoURL  string `yaml:"video_url"`
	StartTime string `yaml:"start_time"` // hh:mm:ss or mm:ss
	EndTime   string `yaml:"end_time"`   // optional

	Title   string `yaml:"title"`   // title bar text, empty disables the bar
	Channel string `yaml:"channel"` // channel name on the title bar ribbon
	Logo    string `yaml:"logo"`    // channel logo image path

	// WebmPath points at an already-clipped source file. It is only
	// consulted when AutoDownload is false.
	WebmPath     string `yaml:"webm_path"`
	AutoDownload bool   `yaml:"auto_download"`

	OutputDir string `yaml:"output_dir"`
	TempDir   string `yaml:"temp_dir"`

	// OverlayMode is "scroll" or "stack".
	OverlayMode string `yaml:"overlay_mode"`
}

// DefaultClipConfig returns the defaults a config file overrides.
func DefaultClipConfig() ClipConfig {
	return ClipConfig{
		AutoDownload: true,
		OutputDir:    "data/output",
		TempDir:      "data/temp",
		OverlayMode:  "scroll",
	}
}

// Validate checks required fields and clock string formats.
func (c *ClipConfig) Validate() error {
	if c.VideoURL == "" {
		return errors.New("video_url is required")
	}
	if c.StartTime == "" {
		return errors.New("start_time is required")
	}
	if _, err := timecode.ParseClock(c.StartTime); err != nil {
		return errors.Wrap(err, "start_time")
	}
	if c.EndTime != "" {
		if _, err := timecode.ParseClock(c.EndTime); err != nil {
			return errors.Wrap(err, "end_time")
		}
	}
	if !c.AutoDownload {
		if c.WebmPath == "" {
			return errors.New("webm_path is required when auto_download is false")
		}
		if _, err := os.Stat(c.WebmPath); err != nil {
			return errors.Wrapf(err, "webm file %s", c.WebmPath)
		}
	}
	switch c.OverlayMode {
	case "", "scroll", "stack":
	default:
		return errors.Errorf("overlay_mode must be scroll or stack, got %q", c.OverlayMode)
	}
	return nil
}

// Load reads a clip config from path, dispatching on the extension:
// .yaml/.yml files are YAML, anything else is the key=value format.
func Load(path string) (*ClipConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	cfg := DefaultClipConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
	default:
		if err := parseKeyValue(string(data), &cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// parseKeyValue fills cfg from KEY=VALUE lines. Blank lines and #
// comments are skipped; unknown keys are an error so typos surface
// immediately.
func parseKeyValue(data string, cfg *ClipConfig) error {
	scanner := bufio.NewScanner(strings.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return errors.Errorf("line %d: expected KEY=VALUE, got %q", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			return errors.Errorf("line %d: empty key or value in %q", lineNum, line)
		}

		switch key {
		case "VIDEO_URL":
			cfg.VideoURL = value
		case "START_TIME":
			cfg.StartTime = value
		case "END_TIME":
			cfg.EndTime = value
		case "TITLE":
			cfg.Title = value
		case "CHANNEL":
			cfg.Channel = value
		case "LOGO":
			cfg.Logo = value
		case "WEBM_PATH":
			cfg.WebmPath = value
		case "AUTO_DOWNLOAD":
			cfg.AutoDownload = parseBool(value)
		case "OUTPUT_DIR":
			cfg.OutputDir = value
		case "TEMP_DIR":
			cfg.TempDir = value
		case "OVERLAY_MODE":
			cfg.OverlayMode = value
		default:
			return errors.Errorf("line %d: unknown config key %q", lineNum, key)
		}
	}
	return scanner.Err()
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return true
	}
	return false
}

const sampleConfig = `# Clip processor configuration
# KEY=VALUE format, one per line

# Source video URL (required)
VIDEO_URL=https://www.youtube.com/watch?v=xxxxxxxxxxxxx

# Clip start time (required, hh:mm:ss or mm:ss)
START_TIME=00:05:30

# Clip end time (optional)
END_TIME=00:10:45

# Title shown on the bar across the top of the frame (optional)
# TITLE=My clip title

# Channel name and logo shown next to the title (optional)
# CHANNEL=Channel Name
# LOGO=data/input/logo.png

# Download and cut the source automatically (default: true).
# When false, WEBM_PATH must point at an existing clipped file.
AUTO_DOWNLOAD=true
# WEBM_PATH=data/input/clip.webm

# Chat overlay layout: scroll or stack (default: scroll)
OVERLAY_MODE=scroll

# Working directories
OUTPUT_DIR=data/output
TEMP_DIR=data/temp
`

// WriteSample creates a commented sample config at path.
func WriteSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return errors.Wrapf(err, "writing sample config %s", path)
	}
	fmt.Printf("Sample config file created: %s\n", path)
	return nil
}
