package web

import (
	"badc0de.net/pkg/go-tmx/tmx"
)

// Info summarizes a map document.
type Info struct {
	Version      string            `json:"version"`
	Orientation  string            `json:"orientation"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	TileWidth    int               `json:"tile_width"`
	TileHeight   int               `json:"tile_height"`
	Tilesets     []TilesetInfo     `json:"tilesets"`
	Layers       []string          `json:"layers"`
	ObjectGroups []ObjectGroupInfo `json:"object_groups,omitempty"`
	Properties   map[string]string `json:"properties,omitempty"`
}

type TilesetInfo struct {
	Name       string `json:"name"`
	FirstGID   uint32 `json:"first_gid"`
	TileWidth  int    `json:"tile_width"`
	TileHeight int    `json:"tile_height"`
	Image      string `json:"image"`
}

type ObjectGroupInfo struct {
	Name    string `json:"name"`
	Objects int    `json:"objects"`
}

// NewInfo collects the summary of m. Tilesets are listed by first global ID.
func NewInfo(m *tmx.Map) *Info {
	info := &Info{
		Version:     m.Version,
		Orientation: m.Orientation,
		Width:       m.Width,
		Height:      m.Height,
		TileWidth:   m.TileWidth,
		TileHeight:  m.TileHeight,
		Layers:      []string{},
	}
	for _, ts := range m.Tilesets.Tilesets() {
		info.Tilesets = append(info.Tilesets, TilesetInfo{
			Name:       ts.Name,
			FirstGID:   ts.FirstGID,
			TileWidth:  ts.TileWidth,
			TileHeight: ts.TileHeight,
			Image:      ts.ImageSource,
		})
	}
	for _, l := range m.Layers {
		info.Layers = append(info.Layers, l.Name)
	}
	for _, g := range m.ObjectGroups {
		info.ObjectGroups = append(info.ObjectGroups, ObjectGroupInfo{Name: g.Name, Objects: len(g.Objects)})
	}
	if len(m.Properties) > 0 {
		info.Properties = map[string]string{}
		for _, p := range m.Properties {
			info.Properties[p.Name] = p.Value
		}
	}
	return info
}
