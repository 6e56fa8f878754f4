package voxel

// Op names a grid mutation.
type Op string

const (
	OpPlace   Op = "place"
	OpRemove  Op = "remove"
	OpRecolor Op = "recolor"
	OpClear   Op = "clear"
	OpImport  Op = "import"
)

// Change describes one applied mutation. Coord and Color are zero for
// whole-grid operations (clear, import).
type Change struct {
	Op    Op
	Coord Coord
	Color Color
	Count int
}
