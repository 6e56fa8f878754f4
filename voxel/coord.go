package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshPrefix is the namespace every voxel mesh name starts with.
const MeshPrefix = "voxel_"

// Coord is an integer grid cell. A voxel occupies the unit cube centred on it.
type Coord struct {
	X, Y, Z int
}

// Origin is the cell of the base voxel.
var Origin = Coord{}

func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// MeshName returns the renderer-side name of the voxel at c.
// The base voxel keeps the historical name "voxel_0".
func (c Coord) MeshName() string {
	if c == Origin {
		return MeshPrefix + "0"
	}
	return fmt.Sprintf("%s%d_%d_%d", MeshPrefix, c.X, c.Y, c.Z)
}

// Center returns the world-space centre of the cell.
func (c Coord) Center() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}

// Quantize snaps a world position to the nearest grid cell.
func Quantize(p mgl32.Vec3) Coord {
	return Coord{
		X: int(math.Round(float64(p[0]))),
		Y: int(math.Round(float64(p[1]))),
		Z: int(math.Round(float64(p[2]))),
	}
}

func less(a, b Coord) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
