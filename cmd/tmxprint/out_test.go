package main

import (
	"image"
	"testing"

	"badc0de.net/pkg/go-tmx/imageprint"
	"badc0de.net/pkg/go-tmx/ttesting"
)

func TestFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))

	ttesting.AssertSize(t, "text mode", fit(img, TermSize{WSRow: 51, WSCol: 80}, imageprint.Mode24Bit), 40, 20)
	ttesting.AssertSize(t, "graphics mode", fit(img, TermSize{WSRow: 51, WSCol: 80, WSXPixel: 200, WSYPixel: 800}, imageprint.ModeRasTerm), 200, 100)
	ttesting.AssertSize(t, "graphics without pixel size", fit(img, TermSize{WSRow: 51, WSCol: 80}, imageprint.ModeITerm), 40, 20)
	ttesting.AssertSize(t, "no terminal", fit(img, TermSize{}, imageprint.Mode24Bit), 400, 200)
}
