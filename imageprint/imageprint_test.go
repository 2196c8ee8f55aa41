package imageprint

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"badc0de.net/pkg/go-tmx/ttesting"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	img.Set(0, 1, color.RGBA{R: 60, G: 0, B: 0, A: 255})
	return img
}

func TestPrintNoColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, testImage(), ModeNoColor, false); err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualString(t, "shades", buf.String(), "##..\n..  \n")
}

func TestPrint24Bit(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, testImage(), Mode24Bit, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[48;2;255;255;255m  ") {
		t.Errorf("missing white background escape in %q", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("got %d lines; want 2", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Mode24Bit, "256": Mode256, "none": ModeNoColor, "iterm": ModeITerm, "rasterm": ModeRasTerm} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("sixel"); err == nil {
		t.Errorf("ParseMode(sixel) should fail")
	}
}
