// Package editor turns pointer events and pick results into voxel grid
// mutations, selection changes and highlight updates.
package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/voxelsplace/voxedit/voxel"
)

// ToolMode is the active editing tool. Only the UI changes it.
type ToolMode int

const (
	ModeSelect ToolMode = iota
	ModePlace
	ModeDelete
)

func (m ToolMode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModePlace:
		return "place"
	case ModeDelete:
		return "delete"
	}
	return fmt.Sprintf("ToolMode(%d)", int(m))
}

func ParseToolMode(s string) (ToolMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select":
		return ModeSelect, nil
	case "place":
		return ModePlace, nil
	case "delete":
		return ModeDelete, nil
	}
	return 0, fmt.Errorf("unknown tool mode %q", s)
}

type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
)

// PrimaryButton is the only button that edits the scene.
const PrimaryButton = 0

// PointerEvent is a screen-space pointer event. A zero At is stamped with
// the controller clock.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   float64
	Button int
	At     time.Time
}

// Picker casts a ray from a screen point into the current mesh set.
type Picker interface {
	Pick(x, y float64) voxel.PickResult
}

// Renderer is the slice of the 3D engine the editor drives.
type Renderer interface {
	AddMesh(c voxel.Coord, col voxel.Color)
	RemoveMesh(c voxel.Coord)
	AddShadowCaster(c voxel.Coord)
	RemoveShadowCaster(c voxel.Coord)
	ShowHighlight(c voxel.Coord, col voxel.Color)
	HideHighlight()
	DetachCamera()
	AttachCamera()
}

// ChangeSink receives every applied grid mutation.
type ChangeSink interface {
	Record(ch voxel.Change) error
}

// VoxelInfo is what the property panel shows for the selected voxel.
type VoxelInfo struct {
	ID       string
	Position voxel.Coord
	Color    voxel.Color
	Scale    [3]float32
}

// SelectionObserver is told about every selection change; nil means cleared.
type SelectionObserver func(info *VoxelInfo)
