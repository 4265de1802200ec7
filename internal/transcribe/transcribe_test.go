package transcribe

import "testing"

func TestASSPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"subs.srt", "subs.ass"},
		{"data/temp/subs_clip.srt", "data/temp/subs_clip.ass"},
		{"noext", "noext.ass"},
	}
	for _, c := range cases {
		if got := ASSPath(c.in); got != c.want {
			t.Errorf("ASSPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if opts.model() != "large" {
		t.Errorf("model default = %q", opts.model())
	}
	if opts.language() != "ja" {
		t.Errorf("language default = %q", opts.language())
	}
	if opts.binary() != "whisper" {
		t.Errorf("binary default = %q", opts.binary())
	}

	opts = Options{Model: "base", Language: "en", WhisperPath: "/opt/whisper"}
	if opts.model() != "base" || opts.language() != "en" || opts.binary() != "/opt/whisper" {
		t.Error("explicit options not honored")
	}
}

func TestTail(t *testing.T) {
	if got := tail("a\nb\nc\nd\ne"); got != "c / d / e" {
		t.Errorf("tail = %q", got)
	}
	if got := tail("only"); got != "only" {
		t.Errorf("tail single line = %q", got)
	}
}
