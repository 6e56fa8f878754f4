// Package pick is a headless stand-in for the 3D engine: a perspective
// camera, a ray picker over the voxel grid and a renderer that only tracks
// scene membership.
package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxedit/voxel"
)

// Camera is a perspective camera looking at Target. Screen coordinates have
// their origin at the top-left corner, like pointer events.
type Camera struct {
	Eye, Target, Up mgl32.Vec3
	FovY            float32 // degrees
	Near, Far       float32
	Width, Height   int
}

// DefaultCamera mirrors the editor's start-up view.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{-10, 4, 0},
		Target: mgl32.Vec3{0, 1, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   45,
		Near:   0.1,
		Far:    1000,
		Width:  1200,
		Height: 900,
	}
}

// Ray returns the origin and unit direction of the ray through screen
// point (x, y).
func (c Camera) Ray(x, y float64) (origin, dir mgl32.Vec3, ok bool) {
	proj := mgl32.Perspective(mgl32.DegToRad(c.FovY), float32(c.Width)/float32(c.Height), c.Near, c.Far)
	view := mgl32.LookAtV(c.Eye, c.Target, c.Up)
	wy := float32(c.Height) - float32(y)
	near, err := mgl32.UnProject(mgl32.Vec3{float32(x), wy, 0}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{float32(x), wy, 1}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	d := far.Sub(near)
	if d.Len() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	return near, d.Normalize(), true
}

// Picker ray-casts against the unit cubes of a grid.
type Picker struct {
	Camera Camera
	Grid   *voxel.Grid
}

func (p *Picker) Pick(x, y float64) voxel.PickResult {
	origin, dir, ok := p.Camera.Ray(x, y)
	if !ok {
		return voxel.PickResult{}
	}
	return Cast(p.Grid, origin, dir)
}

// Cast returns the nearest voxel hit along the ray.
func Cast(g *voxel.Grid, origin, dir mgl32.Vec3) voxel.PickResult {
	best := float32(math.Inf(1))
	var res voxel.PickResult
	g.Each(func(v voxel.Voxel) bool {
		t, hit := intersectCube(origin, dir, v.Coord.Center())
		if hit && t < best {
			best = t
			res = voxel.PickResult{Hit: true, OnVoxel: true, Coord: v.Coord, Point: origin.Add(dir.Mul(t))}
		}
		return true
	})
	return res
}

// intersectCube is a slab test against the unit cube centred on c. It
// reports the entry distance, or the exit distance when origin is inside.
func intersectCube(origin, dir, c mgl32.Vec3) (float32, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		lo, hi := c[i]-0.5, c[i]+0.5
		if dir[i] == 0 {
			if origin[i] < lo || origin[i] > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - origin[i]) / dir[i]
		t2 := (hi - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
