package tmx

import (
	"bufio"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmx/imagecache"
	"badc0de.net/pkg/go-tmx/layerdata"
	"badc0de.net/pkg/go-tmx/tileset"
)

// Open loads the map document at path. Tileset images are resolved relative
// to the directory of path and decoded through cache, which may be nil.
//
// If loadImages is false, tileset images are decoded on first use instead.
func Open(path string, loadImages bool, cache *imagecache.Cache) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening map file")
	}
	defer f.Close()

	m, err := Decode(bufio.NewReader(f), filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "reading map %q", path)
	}
	m.Cache = cache

	if loadImages {
		if err := m.LoadImages(); err != nil {
			return nil, err
		}
	}
	glog.Infof("tmx.Open(%q): %dx%d tiles, %d tilesets, %d layers, %d object groups",
		path, m.Width, m.Height, m.Tilesets.Len(), len(m.Layers), len(m.ObjectGroups))
	return m, nil
}

// Decode parses a map document from r. Layer payloads are decoded eagerly;
// tileset images are not touched. dir is the directory tileset image
// sources are relative to.
func Decode(r io.Reader, dir string) (*Map, error) {
	var x xmlMap
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, errors.Wrap(err, "parsing map xml")
	}

	m := New(x.Width, x.Height, x.TileWidth, x.TileHeight)
	m.Version = x.Version
	m.Orientation = x.Orientation
	m.Dir = dir
	m.Properties = fromXMLProperties(x.Properties)

	for _, xt := range x.Tilesets {
		ts := &tileset.Tileset{
			Name:       xt.Name,
			FirstGID:   xt.FirstGID,
			TileWidth:  xt.TileWidth,
			TileHeight: xt.TileHeight,
		}
		if xt.Image != nil {
			ts.ImageSource = xt.Image.Source
		}
		for _, xtile := range xt.Tiles {
			ts.Tiles = append(ts.Tiles, tileset.Tile{ID: xtile.ID, Properties: fromXMLProperties(xtile.Properties)})
		}
		if _, err := m.AddTileset(ts); err != nil {
			return nil, err
		}
	}

	for _, xl := range x.Layers {
		l := &Layer{Name: xl.Name, Width: xl.Width, Height: xl.Height}
		if xl.Data == nil {
			return nil, errors.Errorf("layer %q has no data", xl.Name)
		}
		cells, err := layerdata.DecodeData(xl.Data.Encoding, xl.Data.Compression, xl.Data.Text, xl.Width, xl.Height)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %q", xl.Name)
		}
		l.Data = cells
		m.Layers = append(m.Layers, l)
	}

	for _, xg := range x.ObjectGroup {
		g := &ObjectGroup{Name: xg.Name, Width: xg.Width, Height: xg.Height, X: xg.X, Y: xg.Y}
		for _, xo := range xg.Objects {
			g.Objects = append(g.Objects, Object{
				Name:       xo.Name,
				Type:       xo.Type,
				X:          xo.X,
				Y:          xo.Y,
				Width:      xo.Width,
				Height:     xo.Height,
				Properties: fromXMLProperties(xo.Properties),
			})
		}
		m.ObjectGroups = append(m.ObjectGroups, g)
	}

	return m, nil
}

// Save writes the map document to path.
func (m *Map) Save(path string, compressed bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating map file")
	}
	if err := m.Encode(f, compressed); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing map %q", path)
	}
	return f.Close()
}

// Encode serializes the map document, gzip-compressing layer payloads if
// compressed is set. Resolved layers are written as global IDs without
// modifying them.
func (m *Map) Encode(w io.Writer, compressed bool) error {
	x := xmlMap{
		Version:     m.Version,
		Orientation: m.Orientation,
		Width:       m.Width,
		Height:      m.Height,
		TileWidth:   m.TileWidth,
		TileHeight:  m.TileHeight,
		Properties:  toXMLProperties(m.Properties),
	}

	for _, ts := range m.Tilesets.Tilesets() {
		xt := xmlTileset{
			FirstGID:   ts.FirstGID,
			Name:       ts.Name,
			TileWidth:  ts.TileWidth,
			TileHeight: ts.TileHeight,
		}
		if ts.ImageSource != "" {
			xt.Image = &xmlImage{Source: ts.ImageSource}
		}
		for _, tile := range ts.Tiles {
			xt.Tiles = append(xt.Tiles, xmlTile{ID: tile.ID, Properties: toXMLProperties(tile.Properties)})
		}
		x.Tilesets = append(x.Tilesets, xt)
	}

	for _, l := range m.Layers {
		cells := l.Data
		if l.Resolved() {
			raw := &Layer{Name: l.Name, Width: l.Width, Height: l.Height, Data: l.Data, Owners: l.Owners}
			if err := raw.Unresolve(m.Tilesets); err != nil {
				return err
			}
			cells = raw.Data
		}
		text, err := layerdata.Encode(cells, compressed)
		if err != nil {
			return errors.Wrapf(err, "layer %q", l.Name)
		}
		data := &xmlData{Encoding: layerdata.EncodingBase64, Text: text}
		if compressed {
			data.Compression = layerdata.CompressionGzip
		}
		x.Layers = append(x.Layers, xmlLayer{Name: l.Name, Width: l.Width, Height: l.Height, Data: data})
	}

	for _, g := range m.ObjectGroups {
		xg := xmlObjectGroup{Name: g.Name, Width: g.Width, Height: g.Height, X: g.X, Y: g.Y}
		for _, o := range g.Objects {
			xg.Objects = append(xg.Objects, xmlObject{
				Name:       o.Name,
				Type:       o.Type,
				X:          o.X,
				Y:          o.Y,
				Width:      o.Width,
				Height:     o.Height,
				Properties: toXMLProperties(o.Properties),
			})
		}
		x.ObjectGroup = append(x.ObjectGroup, xg)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(&x); err != nil {
		return errors.Wrap(err, "encoding map xml")
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
