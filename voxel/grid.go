package voxel

import (
	"encoding/binary"
	"fmt"
	"sort"

	xxhash "github.com/cespare/xxhash/v2"
)

// Voxel is one occupied cell.
type Voxel struct {
	Coord Coord
	Color Color
}

// Grid is the canonical voxel set. It always contains the base voxel at Origin.
// Not safe for concurrent use; the editor drives it from a single goroutine.
type Grid struct {
	cells map[Coord]Color
}

// NewGrid returns a grid holding only the base voxel.
func NewGrid(base Color) *Grid {
	return &Grid{cells: map[Coord]Color{Origin: base}}
}

func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) Has(c Coord) bool {
	_, ok := g.cells[c]
	return ok
}

func (g *Grid) Get(c Coord) (Color, bool) {
	col, ok := g.cells[c]
	return col, ok
}

// Place inserts a voxel iff c is free. Existing voxels are never overwritten.
func (g *Grid) Place(c Coord, col Color) bool {
	if _, ok := g.cells[c]; ok {
		return false
	}
	g.cells[c] = col
	return true
}

// Remove deletes the voxel at c. The base voxel cannot be removed.
func (g *Grid) Remove(c Coord) error {
	if c == Origin {
		return ErrProtectedVoxel
	}
	if _, ok := g.cells[c]; !ok {
		return fmt.Errorf("remove %s: %w", c, ErrNotFound)
	}
	delete(g.cells, c)
	return nil
}

// SetColor recolours an existing voxel, the base voxel included.
func (g *Grid) SetColor(c Coord, col Color) error {
	if _, ok := g.cells[c]; !ok {
		return fmt.Errorf("recolor %s: %w", c, ErrNotFound)
	}
	g.cells[c] = col
	return nil
}

// Clear drops every voxel except the base voxel and returns what was removed,
// sorted like Export.
func (g *Grid) Clear() []Coord {
	removed := make([]Coord, 0, len(g.cells))
	for c := range g.cells {
		if c != Origin {
			removed = append(removed, c)
		}
	}
	for _, c := range removed {
		delete(g.cells, c)
	}
	sort.Slice(removed, func(i, j int) bool { return less(removed[i], removed[j]) })
	return removed
}

// Each calls fn for every voxel in Export order until fn returns false.
func (g *Grid) Each(fn func(Voxel) bool) {
	for _, v := range g.Export() {
		if !fn(v) {
			return
		}
	}
}

// Export returns a snapshot sorted by (X, Y, Z).
func (g *Grid) Export() []Voxel {
	out := make([]Voxel, 0, len(g.cells))
	for c, col := range g.cells {
		out = append(out, Voxel{Coord: c, Color: col})
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i].Coord, out[j].Coord) })
	return out
}

// Import replaces every non-base voxel with entries. An entry at Origin
// recolours the base voxel. Duplicate coordinates are rejected one by one;
// the remaining entries still apply.
func (g *Grid) Import(entries []Voxel) ImportReport {
	g.Clear()
	var rep ImportReport
	seen := make(map[Coord]struct{}, len(entries))
	for i, e := range entries {
		if _, dup := seen[e.Coord]; dup {
			rep.reject(fmt.Errorf("entry %d at %s: %w: %w", i, e.Coord, ErrMalformedRecord, ErrDuplicateCoord))
			continue
		}
		seen[e.Coord] = struct{}{}
		g.cells[e.Coord] = e.Color
		rep.Applied++
	}
	return rep
}

// Bounds returns the inclusive bounding box of all voxels.
func (g *Grid) Bounds() (lo, hi Coord) {
	first := true
	for c := range g.cells {
		if first {
			lo, hi = c, c
			first = false
			continue
		}
		lo.X, hi.X = min(lo.X, c.X), max(hi.X, c.X)
		lo.Y, hi.Y = min(lo.Y, c.Y), max(hi.Y, c.Y)
		lo.Z, hi.Z = min(lo.Z, c.Z), max(hi.Z, c.Z)
	}
	return lo, hi
}

// Digest hashes the coordinate->color mapping. Grids with equal mappings
// have equal digests regardless of insertion order.
func (g *Grid) Digest() uint64 {
	h := xxhash.New()
	var b [15]byte
	for _, v := range g.Export() {
		binary.LittleEndian.PutUint32(b[0:], uint32(int32(v.Coord.X)))
		binary.LittleEndian.PutUint32(b[4:], uint32(int32(v.Coord.Y)))
		binary.LittleEndian.PutUint32(b[8:], uint32(int32(v.Coord.Z)))
		b[12], b[13], b[14] = v.Color.R, v.Color.G, v.Color.B
		_, _ = h.Write(b[:])
	}
	return h.Sum64()
}

// ImportReport counts what an import applied and what it dropped.
type ImportReport struct {
	Applied  int
	Rejected int
	Errors   []error
}

func (r *ImportReport) reject(err error) {
	r.Rejected++
	r.Errors = append(r.Errors, err)
}

// Merge folds o into r.
func (r *ImportReport) Merge(o ImportReport) {
	r.Applied += o.Applied
	r.Rejected += o.Rejected
	r.Errors = append(r.Errors, o.Errors...)
}

func (r ImportReport) String() string {
	return fmt.Sprintf("%d applied, %d rejected", r.Applied, r.Rejected)
}
