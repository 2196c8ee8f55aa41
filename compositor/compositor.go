// Package compositor paints the tile layers of a map into an image.Image.
//
// Layers are painted in document order onto a transparent canvas. Each
// non-empty cell is replaced by its tile's image, anchored at the bottom of
// the cell so that tiles taller than the map's tile height overhang the row
// above.
package compositor

import (
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmx/tmx"
)

// CollisionLayer is left out of unfiltered renders.
const CollisionLayer = "Collision"

// CompositeMap renders the whole map at its natural pixel size.
func CompositeMap(m *tmx.Map, layerFilter string) (*image.RGBA, error) {
	sz := m.PixelSize()
	return Render(m, sz.X, sz.Y, layerFilter)
}

// Render paints the layers of m onto a width*height canvas.
//
// With an empty layerFilter every layer except CollisionLayer is painted;
// otherwise only layers whose name equals layerFilter are.
//
// Tiles lying outside their tileset image are painted as transparent
// placeholders. Unowned global IDs and tileset images that cannot be loaded
// abort the render.
func Render(m *tmx.Map, width, height int, layerFilter string) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for _, l := range m.Layers {
		if !included(l.Name, layerFilter) {
			continue
		}
		glog.V(1).Infof("compositing layer %q (%dx%d)", l.Name, l.Width, l.Height)
		if err := compositeLayer(m, l, img); err != nil {
			return nil, errors.Wrapf(err, "compositing layer %q", l.Name)
		}
	}

	return img, nil
}

func included(name, filter string) bool {
	if filter == "" {
		return name != CollisionLayer
	}
	return name == filter
}

func compositeLayer(m *tmx.Map, l *tmx.Layer, img *image.RGBA) error {
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			tile, err := cellImage(m, l, x, y)
			if err != nil {
				return err
			}
			if tile == nil {
				continue
			}
			compositeTile(img, tile, x, y, m.TileWidth, m.TileHeight)
		}
	}
	return nil
}
