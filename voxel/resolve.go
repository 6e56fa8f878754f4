package voxel

import "github.com/go-gl/mathgl/mgl32"

// PickResult is what the renderer reports for a ray cast from a screen point.
// OnVoxel is false when the ray hit geometry that is not a grid voxel, in
// which case Coord is meaningless.
type PickResult struct {
	Hit     bool
	OnVoxel bool
	Coord   Coord
	Point   mgl32.Vec3
}

// Resolve maps a pick on a voxel face to the adjacent cell on that face.
func Resolve(p PickResult) (Coord, bool) {
	if !p.Hit || !p.OnVoxel {
		return Coord{}, false
	}
	return ResolveFace(p.Coord, p.Point), true
}

// ResolveFace returns the neighbour of hit across the face containing point.
// The face is the axis with the largest offset from the cube centre. Ties go
// to Y, then X, then Z.
func ResolveFace(hit Coord, point mgl32.Vec3) Coord {
	rel := point.Sub(hit.Center())
	ax, ay, az := mgl32.Abs(rel[0]), mgl32.Abs(rel[1]), mgl32.Abs(rel[2])
	m := max(ax, ay, az)

	out := hit
	switch m {
	case ay:
		out.Y += step(rel[1])
	case ax:
		out.X += step(rel[0])
	default:
		out.Z += step(rel[2])
	}
	return out
}

func step(v float32) int {
	if v > 0 {
		return 1
	}
	return -1
}
