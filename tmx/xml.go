package tmx

import (
	"encoding/xml"

	"badc0de.net/pkg/go-tmx/props"
)

// XML shapes of the document. They are only used while decoding and
// encoding; the rest of the package works on Map.

type xmlMap struct {
	XMLName     xml.Name         `xml:"map"`
	Version     string           `xml:"version,attr"`
	Orientation string           `xml:"orientation,attr"`
	Width       int              `xml:"width,attr"`
	Height      int              `xml:"height,attr"`
	TileWidth   int              `xml:"tilewidth,attr"`
	TileHeight  int              `xml:"tileheight,attr"`
	Properties  *xmlProperties   `xml:"properties,omitempty"`
	Tilesets    []xmlTileset     `xml:"tileset"`
	Layers      []xmlLayer       `xml:"layer"`
	ObjectGroup []xmlObjectGroup `xml:"objectgroup"`
}

type xmlProperties struct {
	Property []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlTileset struct {
	FirstGID   uint32    `xml:"firstgid,attr"`
	Name       string    `xml:"name,attr"`
	TileWidth  int       `xml:"tilewidth,attr"`
	TileHeight int       `xml:"tileheight,attr"`
	Image      *xmlImage `xml:"image"`
	Tiles      []xmlTile `xml:"tile"`
}

type xmlImage struct {
	Source string `xml:"source,attr"`
}

type xmlTile struct {
	ID         int            `xml:"id,attr"`
	Properties *xmlProperties `xml:"properties,omitempty"`
}

type xmlLayer struct {
	Name   string   `xml:"name,attr"`
	Width  int      `xml:"width,attr"`
	Height int      `xml:"height,attr"`
	Data   *xmlData `xml:"data"`
}

type xmlData struct {
	Encoding    string `xml:"encoding,attr"`
	Compression string `xml:"compression,attr,omitempty"`
	Text        string `xml:",chardata"`
}

type xmlObjectGroup struct {
	Name    string      `xml:"name,attr"`
	Width   int         `xml:"width,attr"`
	Height  int         `xml:"height,attr"`
	X       int         `xml:"x,attr"`
	Y       int         `xml:"y,attr"`
	Objects []xmlObject `xml:"object"`
}

type xmlObject struct {
	Name       string         `xml:"name,attr"`
	Type       string         `xml:"type,attr"`
	X          int            `xml:"x,attr"`
	Y          int            `xml:"y,attr"`
	Width      int            `xml:"width,attr"`
	Height     int            `xml:"height,attr"`
	Properties *xmlProperties `xml:"properties,omitempty"`
}

func fromXMLProperties(x *xmlProperties) props.Properties {
	if x == nil {
		return nil
	}
	p := make(props.Properties, 0, len(x.Property))
	for _, xp := range x.Property {
		p = append(p, props.Property{Name: xp.Name, Value: xp.Value})
	}
	return p
}

func toXMLProperties(p props.Properties) *xmlProperties {
	if len(p) == 0 {
		return nil
	}
	x := &xmlProperties{}
	for _, prop := range p {
		x.Property = append(x.Property, xmlProperty{Name: prop.Name, Value: prop.Value})
	}
	return x
}
