package voxel_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxedit/voxel"
)

func TestResolveFace(t *testing.T) {
	hit := voxel.Coord{X: 2, Y: -1, Z: 3}
	c := hit.Center()
	cases := []struct {
		name  string
		point mgl32.Vec3
		want  voxel.Coord
	}{
		{"top", c.Add(mgl32.Vec3{0.1, 0.5, -0.2}), voxel.Coord{X: 2, Y: 0, Z: 3}},
		{"bottom", c.Add(mgl32.Vec3{0.3, -0.5, 0.1}), voxel.Coord{X: 2, Y: -2, Z: 3}},
		{"east", c.Add(mgl32.Vec3{0.5, 0.2, 0.4}), voxel.Coord{X: 3, Y: -1, Z: 3}},
		{"west", c.Add(mgl32.Vec3{-0.5, -0.1, 0.2}), voxel.Coord{X: 1, Y: -1, Z: 3}},
		{"north", c.Add(mgl32.Vec3{0.2, 0.3, 0.5}), voxel.Coord{X: 2, Y: -1, Z: 4}},
		{"south", c.Add(mgl32.Vec3{-0.4, 0.1, -0.5}), voxel.Coord{X: 2, Y: -1, Z: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := voxel.ResolveFace(hit, tc.point); got != tc.want {
				t.Fatalf("ResolveFace(%v, %v) = %v, want %v", hit, tc.point, got, tc.want)
			}
		})
	}
}

// Corner and edge hits are ambiguous; the order Y, X, Z decides them.
func TestResolveFaceTieBreak(t *testing.T) {
	cases := []struct {
		name  string
		point mgl32.Vec3
		want  voxel.Coord
	}{
		{"xyz corner", mgl32.Vec3{0.5, 0.5, 0.5}, voxel.Coord{Y: 1}},
		{"xy edge", mgl32.Vec3{-0.5, -0.5, 0}, voxel.Coord{Y: -1}},
		{"yz edge", mgl32.Vec3{0, 0.5, -0.5}, voxel.Coord{Y: 1}},
		{"xz edge", mgl32.Vec3{0.5, 0, 0.5}, voxel.Coord{X: 1}},
		{"xz edge negative", mgl32.Vec3{-0.5, 0.1, -0.5}, voxel.Coord{X: -1}},
	}
	for _, tc := range cases {
		if got := voxel.ResolveFace(voxel.Origin, tc.point); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolveIsOneStepAlongOneAxis(t *testing.T) {
	hit := voxel.Coord{X: -4, Y: 7, Z: 1}
	c := hit.Center()
	for _, off := range []float32{-0.5, -0.3, 0, 0.25, 0.5} {
		for _, a := range []float32{-0.49, 0.1, 0.49} {
			for axis := 0; axis < 3; axis++ {
				p := mgl32.Vec3{a, -a, a * 0.5}
				p[axis] = 0.5
				if off < 0 {
					p[axis] = -0.5
				}
				got := voxel.ResolveFace(hit, c.Add(p))
				d := [3]int{got.X - hit.X, got.Y - hit.Y, got.Z - hit.Z}
				moved := 0
				for i, v := range d {
					if v == 0 {
						continue
					}
					moved++
					if v != 1 && v != -1 {
						t.Fatalf("step %d on axis %d", v, i)
					}
					if i != axis {
						t.Fatalf("face on axis %d resolved along axis %d (point %v)", axis, i, p)
					}
				}
				if moved != 1 {
					t.Fatalf("expected exactly one axis to change, got %v", d)
				}
			}
		}
	}
}

func TestResolveRejectsMisses(t *testing.T) {
	if _, ok := voxel.Resolve(voxel.PickResult{}); ok {
		t.Fatalf("miss must not resolve")
	}
	if _, ok := voxel.Resolve(voxel.PickResult{Hit: true, Point: mgl32.Vec3{0, 1, 0}}); ok {
		t.Fatalf("non-voxel hit must not resolve")
	}
	got, ok := voxel.Resolve(voxel.PickResult{Hit: true, OnVoxel: true, Point: mgl32.Vec3{0, 0.9, 0}})
	if !ok || got != (voxel.Coord{Y: 1}) {
		t.Fatalf("Resolve = %v, %v; want (0,1,0), true", got, ok)
	}
}
