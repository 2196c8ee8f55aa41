package compositor

import (
	"image"
	"image/draw"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmx/tileset"
	"badc0de.net/pkg/go-tmx/tmx"
)

// cellImage returns the tile image for cell (x, y) of l, or nil for an empty
// cell. Raw layers are resolved cell by cell; resolved layers already carry
// their owners.
func cellImage(m *tmx.Map, l *tmx.Layer, x, y int) (image.Image, error) {
	var id tileset.SourceID
	var local uint32
	if l.Resolved() {
		var ok bool
		if id, local, ok = l.Cell(x, y); !ok {
			return nil, nil
		}
	} else {
		gid := l.At(x, y)
		if gid == 0 {
			return nil, nil
		}
		var err error
		if id, local, err = m.Tilesets.Resolve(gid); err != nil {
			return nil, err
		}
	}

	tile, err := m.LocalSubimage(id, local)
	if errors.Is(err, tmx.ErrSubimageOutOfBounds) {
		glog.Warningf("cell (%d,%d) of layer %q: %v; painting placeholder", x, y, l.Name, err)
		return placeholder(m.Tilesets.Get(id)), nil
	}
	return tile, err
}

// placeholder is a fully transparent tile of the tileset's tile size.
func placeholder(ts *tileset.Tileset) image.Image {
	return image.NewRGBA(image.Rect(0, 0, ts.TileWidth, ts.TileHeight))
}

// compositeTile paints tile over the cell at (x, y), keeping the tile's
// bottom edge on the bottom edge of the cell.
func compositeTile(img *image.RGBA, tile image.Image, x, y int, tileW, tileH int) {
	size := tile.Bounds().Size()
	topLeft := image.Pt(x*tileW, y*tileH-(size.Y-tileH))
	dst := image.Rectangle{Min: topLeft, Max: topLeft.Add(size)}
	draw.Draw(img, dst, tile, tile.Bounds().Min, draw.Over)
}
