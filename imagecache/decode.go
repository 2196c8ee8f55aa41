package imagecache

import (
	"bytes"
	"image"
	"os"

	// Formats accepted for tileset image sheets.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DecodeFile reads the file at path and decodes it with any registered image
// format. A missing file is reported as ErrSourceNotFound.
func DecodeFile(path string) (image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrSourceNotFound, "%q", path)
		}
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %q", path)
	}
	glog.Infof("imagecache: decoded %s %q (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}
