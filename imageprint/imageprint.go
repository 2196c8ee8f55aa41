// Package imageprint previews rendered maps on a terminal.
//
// Text modes paint two characters per pixel using background colors, so
// images should be downsized to the terminal before printing. Graphics
// modes hand the image to the terminal's own image protocol.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

// Mode selects how an image is drawn.
type Mode int

const (
	// Mode24Bit uses 24-bit background color escapes.
	Mode24Bit Mode = iota
	// Mode256 leaves color rendering to gookit/color, which falls back to the
	// 256-color palette on terminals without true color.
	Mode256
	// ModeNoColor prints shade characters only.
	ModeNoColor
	// ModeITerm uses iTerm2's inline image escape.
	ModeITerm
	// ModeRasTerm picks kitty, iTerm or sixel output depending on the terminal.
	ModeRasTerm
)

// ParseMode maps a flag value onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "24bit":
		return Mode24Bit, nil
	case "256":
		return Mode256, nil
	case "none":
		return ModeNoColor, nil
	case "iterm":
		return ModeITerm, nil
	case "rasterm":
		return ModeRasTerm, nil
	}
	return Mode24Bit, errors.Errorf("unknown print mode %q (want 24bit, 256, none, iterm or rasterm)", s)
}

// Print draws img on w. With blanks set, text modes paint colored spaces
// instead of shade characters.
func Print(w io.Writer, img image.Image, mode Mode, blanks bool) error {
	switch mode {
	case ModeITerm:
		return printITerm(w, img, "map.png")
	case ModeRasTerm:
		return printRasTerm(w, img)
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			shade(w, img.At(x, y), mode, blanks)
		}
		if mode != ModeNoColor {
			io.WriteString(w, "\x1b[0m")
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func shadeChars(r, g, b uint32) string {
	switch a := ((r + g + b) / 3) >> 8; {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func shade(w io.Writer, col ic.Color, mode Mode, blanks bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if mode == ModeNoColor {
			io.WriteString(w, "  ")
		} else {
			io.WriteString(w, "\x1b[0m  ")
		}
		return
	}
	s := "  "
	if !blanks {
		s = shadeChars(cR, cG, cB)
	}
	r8, g8, b8 := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)
	switch mode {
	case ModeNoColor:
		io.WriteString(w, s)
	case Mode256:
		io.WriteString(w, color.RGB(r8, g8, b8, true).Sprint(s))
	default:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", r8, g8, b8, s)
	}
}

// printITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func printITerm(w io.Writer, img image.Image, fn string) error {
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	enc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(enc, img); err != nil {
		return errors.Wrap(err, "encoding png for iterm")
	}
	enc.Close()
	_, err := fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), img.Bounds().Dx(), img.Bounds().Dy(), b.String())
	return err
}
