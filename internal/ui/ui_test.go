package ui

import (
	"bytes"
	"testing"
)

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always":  ColorAlways,
		" Never ": ColorNever,
		"auto":    ColorAuto,
		"rainbow": ColorAuto,
		"":        ColorAuto,
	}
	for input, want := range cases {
		if got := NormalizeColorMode(input); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMessagesGoToTheirStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorAlways, true)
	if u.ColorEnabled {
		t.Fatalf("ColorEnabled = true, want false when color is disabled")
	}

	u.Infof("loaded %d jobs\n", 3)
	u.Successf("done")
	u.Warnf("careful")
	u.Errorf("failed to load jobs")

	if got, want := out.String(), "loaded 3 jobs\ndone\n"; got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
	if got, want := errOut.String(), "careful\nfailed to load jobs\n"; got != want {
		t.Fatalf("stderr = %q, want %q", got, want)
	}
}

func TestColorizeLinkDisabled(t *testing.T) {
	if got := ColorizeLink(nil, true, "x"); got != "x" {
		t.Fatalf("ColorizeLink(nil) = %q, want x", got)
	}
}
