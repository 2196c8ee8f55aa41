// Package ttesting contains assertion helpers shared by the tests of this
// module.
package ttesting

import (
	"image"
	"image/color"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualUint32(t *testing.T, name string, got, want uint32) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

// AssertSize checks the dimensions of img.
func AssertSize(t *testing.T, name string, img image.Image, wantW, wantH int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if sz := img.Bounds().Size(); sz.X != wantW || sz.Y != wantH {
			t.Errorf("got %dx%d; want %dx%d", sz.X, sz.Y, wantW, wantH)
		}
	})
}

// AssertRegionColor checks that every pixel of img within r has color want,
// compared in non-premultiplied RGBA.
func AssertRegionColor(t *testing.T, name string, img image.Image, r image.Rectangle, want color.Color) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		wantN := color.NRGBAModel.Convert(want).(color.NRGBA)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				if got != wantN {
					t.Fatalf("pixel (%d,%d): got %v; want %v", x, y, got, wantN)
				}
			}
		}
	})
}
