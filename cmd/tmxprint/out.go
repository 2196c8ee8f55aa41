package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-tmx/imageprint"
)

func out(w io.Writer, img image.Image) error {
	if *dataURL {
		buf := &bytes.Buffer{}
		if err := png.Encode(buf, img); err != nil {
			return errors.Wrap(err, "encoding png")
		}
		_, err := fmt.Fprintln(w, dataurl.New(buf.Bytes(), "image/png").String())
		return err
	}

	m, err := imageprint.ParseMode(*mode)
	if err != nil {
		return err
	}

	if *downsize {
		if termSize, err := GetTermSize(); err == nil {
			img = fit(img, termSize, m)
		}
	}
	return imageprint.Print(w, img, m, *blanks)
}

// fit shrinks img to the terminal. Graphics modes get the pixel size if the
// terminal reports one; text modes spend two columns per pixel.
func fit(img image.Image, ts TermSize, m imageprint.Mode) image.Image {
	graphics := m == imageprint.ModeITerm || m == imageprint.ModeRasTerm
	if graphics && ts.WSXPixel != 0 && ts.WSYPixel != 0 {
		return resize.Thumbnail(ts.WSXPixel, ts.WSYPixel, img, resize.Lanczos3)
	}
	if ts.WSCol < 2 || ts.WSRow < 2 {
		return img
	}
	return resize.Thumbnail(ts.WSCol/2, ts.WSRow-1, img, resize.Lanczos3)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
