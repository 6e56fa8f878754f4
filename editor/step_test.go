package editor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxedit/voxel"
)

func TestStepIsPure(t *testing.T) {
	s := State{Mode: ModePlace, Color: voxel.DefaultColor}
	pick := voxel.PickResult{Hit: true, OnVoxel: true, Point: mgl32.Vec3{0, 0.5, 0}}
	occupied := func(c voxel.Coord) bool { return c == voxel.Origin }

	next, out := step(s, PointerEvent{Kind: PointerDown}, pick, occupied)
	if next != s {
		t.Fatalf("place changed state: %+v", next)
	}
	want := []effect{
		{kind: effectDetachCamera},
		{kind: effectPlace, coord: voxel.Coord{Y: 1}, color: voxel.DefaultColor},
	}
	if len(out) != len(want) {
		t.Fatalf("effects = %+v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("effect %d = %+v, want %+v", i, out[i], want[i])
		}
	}

	_, out = step(s, PointerEvent{Kind: PointerDown}, pick, func(voxel.Coord) bool { return true })
	if len(out) != 1 {
		t.Fatalf("occupied target should only detach the camera, got %+v", out)
	}
}

func TestStepDeleteClearsSelectionOfRemovedVoxel(t *testing.T) {
	c := voxel.Coord{X: 2}
	s := State{Mode: ModeDelete, Selected: true, Selection: c}
	pick := voxel.PickResult{Hit: true, OnVoxel: true, Coord: c, Point: c.Center()}
	next, out := step(s, PointerEvent{Kind: PointerDown}, pick, func(voxel.Coord) bool { return true })
	if next.Selected {
		t.Fatalf("selection of deleted voxel kept")
	}
	if out[len(out)-1].kind != effectDeselect {
		t.Fatalf("effects = %+v", out)
	}
}

func TestSwitchModeWithoutSelection(t *testing.T) {
	_, out := switchMode(State{}, ModeDelete)
	if len(out) != 1 || out[0].kind != effectHideHighlight {
		t.Fatalf("effects = %+v", out)
	}
}
