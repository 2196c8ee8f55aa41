package tileset

import (
	"sort"

	"github.com/pkg/errors"
)

var (
	ErrDuplicateFirstGID = errors.New("duplicate tileset firstgid")
	ErrNoOwningSource    = errors.New("no tileset owns gid")
	ErrUnknownSource     = errors.New("unknown tileset source id")
)

// SourceID identifies a tileset within a Registry. IDs are stable for the
// lifetime of the registry: adding or replacing tilesets never renumbers
// existing entries.
type SourceID int

// NoSource marks an empty cell in a resolved layer.
const NoSource SourceID = -1

// Registry holds the tilesets of a map, ordered by FirstGID.
//
// Tilesets live in an append-only arena and are referred to by SourceID;
// order lists the arena slots sorted ascending by FirstGID.
type Registry struct {
	slots []*Tileset
	order []SourceID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of tilesets.
func (r *Registry) Len() int {
	return len(r.order)
}

// Add inserts ts keeping the registry sorted by FirstGID.
func (r *Registry) Add(ts *Tileset) (SourceID, error) {
	if ts == nil {
		return NoSource, errors.New("nil tileset")
	}
	if pos, found := r.search(ts.FirstGID); found {
		return NoSource, errors.Wrapf(ErrDuplicateFirstGID, "adding %q: firstgid %d already used by %q", ts.Name, ts.FirstGID, r.slots[r.order[pos]].Name)
	}
	id := SourceID(len(r.slots))
	r.slots = append(r.slots, ts)
	r.insertOrdered(id)
	return id, nil
}

// Replace puts ts in the slot of id. Layers resolved against id now refer to
// ts. The registry is re-sorted if FirstGID changed.
func (r *Registry) Replace(id SourceID, ts *Tileset) error {
	if !r.valid(id) {
		return errors.Wrapf(ErrUnknownSource, "replacing source %d", id)
	}
	if ts == nil {
		return errors.New("nil tileset")
	}
	if pos, found := r.search(ts.FirstGID); found && r.order[pos] != id {
		return errors.Wrapf(ErrDuplicateFirstGID, "replacing source %d with %q: firstgid %d already used", id, ts.Name, ts.FirstGID)
	}
	r.removeOrdered(id)
	r.slots[id] = ts
	r.insertOrdered(id)
	return nil
}

// Get returns the tileset in slot id, or nil.
func (r *Registry) Get(id SourceID) *Tileset {
	if !r.valid(id) {
		return nil
	}
	return r.slots[id]
}

// ID returns the slot of ts, if it is part of the registry.
func (r *Registry) ID(ts *Tileset) (SourceID, bool) {
	for _, id := range r.order {
		if r.slots[id] == ts {
			return id, true
		}
	}
	return NoSource, false
}

// Tilesets returns the tilesets ordered by FirstGID.
func (r *Registry) Tilesets() []*Tileset {
	out := make([]*Tileset, len(r.order))
	for i, id := range r.order {
		out[i] = r.slots[id]
	}
	return out
}

// Resolve finds the tileset owning gid: the one with the greatest FirstGID
// not exceeding gid. It returns the tileset's slot and gid's index within it.
func (r *Registry) Resolve(gid uint32) (SourceID, uint32, error) {
	// First position whose FirstGID is strictly greater than gid; the owner
	// precedes it. A tileset whose FirstGID equals gid is therefore chosen.
	pos := sort.Search(len(r.order), func(i int) bool {
		return r.slots[r.order[i]].FirstGID > gid
	})
	if pos == 0 {
		return NoSource, 0, errors.Wrapf(ErrNoOwningSource, "gid %d", gid)
	}
	id := r.order[pos-1]
	return id, gid - r.slots[id].FirstGID, nil
}

// Unresolve is the inverse of Resolve.
func (r *Registry) Unresolve(id SourceID, local uint32) (uint32, error) {
	if !r.valid(id) {
		return 0, errors.Wrapf(ErrUnknownSource, "unresolving local index %d", local)
	}
	return r.slots[id].FirstGID + local, nil
}

// Tileset returns the tileset owning gid.
func (r *Registry) Tileset(gid uint32) (*Tileset, error) {
	id, _, err := r.Resolve(gid)
	if err != nil {
		return nil, err
	}
	return r.slots[id], nil
}

func (r *Registry) valid(id SourceID) bool {
	return id >= 0 && int(id) < len(r.slots)
}

// search returns the position in order at which firstGID is or would be.
func (r *Registry) search(firstGID uint32) (int, bool) {
	pos := sort.Search(len(r.order), func(i int) bool {
		return r.slots[r.order[i]].FirstGID >= firstGID
	})
	return pos, pos < len(r.order) && r.slots[r.order[pos]].FirstGID == firstGID
}

func (r *Registry) insertOrdered(id SourceID) {
	pos, _ := r.search(r.slots[id].FirstGID)
	r.order = append(r.order, NoSource)
	copy(r.order[pos+1:], r.order[pos:])
	r.order[pos] = id
}

func (r *Registry) removeOrdered(id SourceID) {
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
