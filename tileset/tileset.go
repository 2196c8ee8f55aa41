// Package tileset models tile sources of a map and maps global tile IDs
// onto them.
//
// Each tileset owns a contiguous range of global IDs starting at its
// FirstGID; the range ends where the next tileset (by FirstGID) begins.
package tileset

import (
	"image"

	"badc0de.net/pkg/go-tmx/props"
)

// Tile carries the per-tile metadata of a tileset.
type Tile struct {
	ID         int
	Properties props.Properties
}

// Tileset is a single image sheet subdivided into equally sized tiles.
type Tileset struct {
	Name       string
	FirstGID   uint32
	TileWidth  int
	TileHeight int

	// ImageSource is the image path as written in the document.
	ImageSource string
	// ImagePath is ImageSource resolved against the document's directory.
	ImagePath string

	Tiles []Tile

	img image.Image
}

// Image returns the decoded image sheet, or nil if it was not loaded yet.
func (ts *Tileset) Image() image.Image {
	return ts.img
}

// SetImage attaches a decoded image sheet.
func (ts *Tileset) SetImage(img image.Image) {
	ts.img = img
}

// TilesPerRow returns how many tiles fit horizontally in the image sheet.
// It is 0 if no image is loaded.
func (ts *Tileset) TilesPerRow() int {
	if ts.img == nil || ts.TileWidth <= 0 {
		return 0
	}
	return ts.img.Bounds().Dx() / ts.TileWidth
}

// TileRect returns the rectangle occupied by the tile with the passed local
// index within the image sheet. The rectangle is not checked against the
// image bounds.
func (ts *Tileset) TileRect(local uint32) (image.Rectangle, bool) {
	perRow := ts.TilesPerRow()
	if perRow <= 0 {
		return image.Rectangle{}, false
	}
	col := int(local % uint32(perRow))
	row := int(local / uint32(perRow))
	min := ts.img.Bounds().Min.Add(image.Pt(col*ts.TileWidth, row*ts.TileHeight))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(ts.TileWidth, ts.TileHeight))}, true
}

// Tile returns the metadata for the tile with the passed local ID, if any.
func (ts *Tileset) Tile(id int) (*Tile, bool) {
	for i := range ts.Tiles {
		if ts.Tiles[i].ID == id {
			return &ts.Tiles[i], true
		}
	}
	return nil, false
}
