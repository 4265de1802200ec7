package platform

import "testing"

func TestRegistry(t *testing.T) {
	for _, name := range []string{"youtube-shorts", "tiktok", "instagram-reel"} {
		target, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if target.Name() != name {
			t.Errorf("Name() = %q, want %q", target.Name(), name)
		}
		w, h := target.Dimensions()
		if w != 1080 || h != 1920 {
			t.Errorf("%s dimensions = %dx%d, want vertical 1080x1920", name, w, h)
		}
		if target.MaxDuration() <= 0 {
			t.Errorf("%s has no duration limit", name)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("myspace"); err == nil {
		t.Error("expected error for unknown platform")
	}
}

func TestSupportedSorted(t *testing.T) {
	names := Supported()
	if len(names) < 3 {
		t.Fatalf("got %d targets", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
