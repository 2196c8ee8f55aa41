// Package tmx reads, writes and queries tile map documents.
//
// A map document has a header (version, orientation, size in tiles, tile
// size in pixels), properties, tilesets, tile layers whose payload is
// handled by package layerdata, and object groups.
//
// Tileset images are decoded through an imagecache.Cache. Pass the same cache
// to every Open to share decoded images between maps.
package tmx

import (
	"fmt"
	"image"
	"image/draw"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmx/imagecache"
	"badc0de.net/pkg/go-tmx/props"
	"badc0de.net/pkg/go-tmx/tileset"
)

var ErrSubimageOutOfBounds = errors.New("tile outside tileset image")

// TilesetNotExistsError is returned when a tileset image cannot be found.
type TilesetNotExistsError struct {
	Path string
	Err  error
}

func (e *TilesetNotExistsError) Error() string {
	return fmt.Sprintf("tileset image %q does not exist", e.Path)
}

func (e *TilesetNotExistsError) Unwrap() error {
	return e.Err
}

// Object is a free-form shape placed on an object group.
type Object struct {
	Name       string
	Type       string
	X, Y       int
	Width      int
	Height     int
	Properties props.Properties
}

// ObjectGroup is a named collection of objects.
type ObjectGroup struct {
	Name    string
	Width   int
	Height  int
	X, Y    int
	Objects []Object
}

// Map is an in-memory tile map document.
type Map struct {
	Version     string
	Orientation string
	Width       int
	Height      int
	TileWidth   int
	TileHeight  int

	Tilesets     *tileset.Registry
	Layers       []*Layer
	ObjectGroups []*ObjectGroup
	Properties   props.Properties

	// Dir is the directory tileset image sources are relative to.
	Dir string
	// Cache is used to share decoded tileset images. If nil, images are
	// decoded without caching.
	Cache *imagecache.Cache
	// Decoder loads tileset images. Defaults to imagecache.DecodeFile.
	Decoder imagecache.DecodeFunc
}

// New returns an empty map with the passed dimensions.
func New(width, height, tileWidth, tileHeight int) *Map {
	return &Map{
		Version:     "1.0",
		Orientation: "orthogonal",
		Width:       width,
		Height:      height,
		TileWidth:   tileWidth,
		TileHeight:  tileHeight,
		Tilesets:    tileset.NewRegistry(),
	}
}

// PixelSize returns the size of the full map in pixels.
func (m *Map) PixelSize() image.Point {
	return image.Pt(m.Width*m.TileWidth, m.Height*m.TileHeight)
}

// AddTileset registers ts, resolving its image path against m.Dir.
func (m *Map) AddTileset(ts *tileset.Tileset) (tileset.SourceID, error) {
	if ts.ImagePath == "" && ts.ImageSource != "" {
		ts.ImagePath = m.imagePath(ts.ImageSource)
	}
	return m.Tilesets.Add(ts)
}

// Layer returns the first layer called name.
func (m *Map) Layer(name string) (*Layer, bool) {
	for _, l := range m.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Property returns the map property called name.
func (m *Map) Property(name string) (props.Property, bool) {
	return m.Properties.Get(name)
}

// Tileset returns the tileset owning gid.
func (m *Map) Tileset(gid uint32) (*tileset.Tileset, error) {
	return m.Tilesets.Tileset(gid)
}

func (m *Map) imagePath(source string) string {
	if filepath.IsAbs(source) || m.Dir == "" {
		return source
	}
	return filepath.Join(m.Dir, source)
}

func (m *Map) decoder() imagecache.DecodeFunc {
	if m.Decoder != nil {
		return m.Decoder
	}
	return imagecache.DecodeFile
}

// LoadImage makes sure the image of ts is decoded.
func (m *Map) LoadImage(ts *tileset.Tileset) error {
	if ts.Image() != nil {
		return nil
	}
	path := ts.ImagePath
	if path == "" {
		path = m.imagePath(ts.ImageSource)
	}
	var img image.Image
	var err error
	if m.Cache != nil {
		img, err = m.Cache.Get(path, m.decoder())
	} else {
		img, err = m.decoder()(path)
	}
	if err != nil {
		if errors.Is(err, imagecache.ErrSourceNotFound) {
			return &TilesetNotExistsError{Path: path, Err: err}
		}
		return errors.Wrapf(err, "loading image of tileset %q", ts.Name)
	}
	ts.SetImage(img)
	return nil
}

// LoadImages decodes the images of every tileset.
func (m *Map) LoadImages() error {
	for _, ts := range m.Tilesets.Tilesets() {
		if err := m.LoadImage(ts); err != nil {
			return err
		}
	}
	return nil
}

// TileSubimage returns the image of the tile with global ID gid. The
// tileset image is loaded if needed.
//
// A tile lying outside its tileset image yields ErrSubimageOutOfBounds.
func (m *Map) TileSubimage(gid uint32) (image.Image, error) {
	id, local, err := m.Tilesets.Resolve(gid)
	if err != nil {
		return nil, err
	}
	return m.LocalSubimage(id, local)
}

// LocalSubimage is TileSubimage for an already resolved tile.
func (m *Map) LocalSubimage(id tileset.SourceID, local uint32) (image.Image, error) {
	ts := m.Tilesets.Get(id)
	if ts == nil {
		return nil, errors.Wrapf(tileset.ErrUnknownSource, "source %d", id)
	}
	if err := m.LoadImage(ts); err != nil {
		return nil, err
	}
	img := ts.Image()
	r, ok := ts.TileRect(local)
	if !ok || !r.In(img.Bounds()) {
		return nil, errors.Wrapf(ErrSubimageOutOfBounds, "tileset %q local %d (rect %v, image %v)", ts.Name, local, r, img.Bounds())
	}
	if si, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return si.SubImage(r), nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst, nil
}

// ResolveLayers resolves every layer against m.Tilesets.
func (m *Map) ResolveLayers() error {
	for _, l := range m.Layers {
		if err := l.Resolve(m.Tilesets); err != nil {
			return err
		}
	}
	return nil
}

// UnresolveLayers turns every resolved layer back into global IDs.
func (m *Map) UnresolveLayers() error {
	for _, l := range m.Layers {
		if err := l.Unresolve(m.Tilesets); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceTileset points every cell resolved against from at to instead.
func (m *Map) ReplaceTileset(from, to tileset.SourceID) {
	glog.V(1).Infof("retargeting layers from tileset %d to %d", from, to)
	for _, l := range m.Layers {
		l.Retarget(from, to)
	}
}
