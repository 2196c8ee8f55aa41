package tmx

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmx/tileset"
)

// Layer is a grid of tiles.
//
// A layer is either raw, where Data holds global tile IDs and 0 is an empty
// cell, or resolved, where Data holds indices local to the owning tileset
// and Owners records that tileset per cell (tileset.NoSource if empty).
type Layer struct {
	Name   string
	Width  int
	Height int
	Data   []uint32

	// Owners is nil while the layer is raw.
	Owners []tileset.SourceID
}

// NewLayer returns an empty raw layer.
func NewLayer(name string, width, height int) *Layer {
	return &Layer{
		Name:   name,
		Width:  width,
		Height: height,
		Data:   make([]uint32, width*height),
	}
}

// Resolved reports whether Data holds local indices.
func (l *Layer) Resolved() bool {
	return l.Owners != nil
}

func (l *Layer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 0, false
	}
	return y*l.Width + x, true
}

// At returns the cell value at (x, y), or 0 outside the layer.
func (l *Layer) At(x, y int) uint32 {
	i, ok := l.index(x, y)
	if !ok {
		return 0
	}
	return l.Data[i]
}

// Set stores a global tile ID at (x, y) of a raw layer.
func (l *Layer) Set(x, y int, gid uint32) error {
	if l.Resolved() {
		return errors.Errorf("layer %q: Set on a resolved layer", l.Name)
	}
	i, ok := l.index(x, y)
	if !ok {
		return errors.Errorf("layer %q: (%d,%d) outside %dx%d", l.Name, x, y, l.Width, l.Height)
	}
	l.Data[i] = gid
	return nil
}

// Cell returns the owning tileset and local index at (x, y) of a resolved
// layer. ok is false for empty cells and raw layers.
func (l *Layer) Cell(x, y int) (owner tileset.SourceID, local uint32, ok bool) {
	i, inside := l.index(x, y)
	if !inside || !l.Resolved() || l.Owners[i] == tileset.NoSource {
		return tileset.NoSource, 0, false
	}
	return l.Owners[i], l.Data[i], true
}

// Resolve converts the layer from global IDs to local indices. Either every
// cell is converted or, on error, the layer is left untouched.
func (l *Layer) Resolve(reg *tileset.Registry) error {
	if l.Resolved() {
		return nil
	}
	data := make([]uint32, len(l.Data))
	owners := make([]tileset.SourceID, len(l.Data))
	for i, gid := range l.Data {
		if gid == 0 {
			owners[i] = tileset.NoSource
			continue
		}
		id, local, err := reg.Resolve(gid)
		if err != nil {
			return errors.Wrapf(err, "layer %q cell (%d,%d)", l.Name, i%l.Width, i/l.Width)
		}
		owners[i] = id
		data[i] = local
	}
	l.Data = data
	l.Owners = owners
	return nil
}

// Unresolve converts a resolved layer back to global IDs and forgets the
// owners.
func (l *Layer) Unresolve(reg *tileset.Registry) error {
	if !l.Resolved() {
		return nil
	}
	data := make([]uint32, len(l.Data))
	for i, owner := range l.Owners {
		if owner == tileset.NoSource {
			continue
		}
		gid, err := reg.Unresolve(owner, l.Data[i])
		if err != nil {
			return errors.Wrapf(err, "layer %q cell (%d,%d)", l.Name, i%l.Width, i/l.Width)
		}
		data[i] = gid
	}
	l.Data = data
	l.Owners = nil
	return nil
}

// Retarget makes every cell resolved against from refer to to instead,
// keeping local indices. It is a no-op on raw layers.
func (l *Layer) Retarget(from, to tileset.SourceID) {
	for i, owner := range l.Owners {
		if owner == from {
			l.Owners[i] = to
		}
	}
}

// WriteText writes the cell values as tab separated text, one row per line.
func (l *Layer) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var num []byte
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			num = strconv.AppendUint(num[:0], uint64(l.Data[y*l.Width+x]), 10)
			bw.Write(num)
			bw.WriteByte('\t')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
