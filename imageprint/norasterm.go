//go:build !go1.13 || windows
// +build !go1.13 windows

package imageprint

import (
	"image"
	"io"

	"github.com/pkg/errors"
)

func printRasTerm(w io.Writer, img image.Image) error {
	return errors.New("rasterm not supported below Go 1.13 or on windows")
}
