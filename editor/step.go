package editor

import "github.com/voxelsplace/voxedit/voxel"

type effectKind int

const (
	effectPlace effectKind = iota
	effectRemove
	effectHighlight
	effectHideHighlight
	effectSelect
	effectDeselect
	effectDetachCamera
	effectAttachCamera
)

type effect struct {
	kind  effectKind
	coord voxel.Coord
	color voxel.Color
}

// State is everything a pointer handler may read or change.
type State struct {
	Mode  ToolMode
	Color voxel.Color

	Selected  bool
	Selection voxel.Coord

	SelectHighlight voxel.Color
	DeleteHighlight voxel.Color
}

func (s State) clearSelection(out []effect) (State, []effect) {
	if !s.Selected {
		return s, out
	}
	s.Selected = false
	s.Selection = voxel.Coord{}
	return s, append(out, effect{kind: effectDeselect})
}

// step is the pure pointer dispatcher. occupied reports grid occupancy and
// must not mutate anything.
func step(s State, ev PointerEvent, pick voxel.PickResult, occupied func(voxel.Coord) bool) (State, []effect) {
	switch ev.Kind {
	case PointerUp:
		return s, []effect{{kind: effectAttachCamera}}
	case PointerMove:
		return s, hover(s, pick)
	case PointerDown:
		if ev.Button != PrimaryButton {
			return s, nil
		}
		return press(s, pick, occupied)
	}
	return s, nil
}

func hover(s State, pick voxel.PickResult) []effect {
	hide := []effect{{kind: effectHideHighlight}}
	if !pick.Hit || !pick.OnVoxel {
		return hide
	}
	switch s.Mode {
	case ModePlace:
		target, _ := voxel.Resolve(pick)
		return []effect{{kind: effectHighlight, coord: target, color: s.Color}}
	case ModeSelect:
		return []effect{{kind: effectHighlight, coord: pick.Coord, color: s.SelectHighlight}}
	case ModeDelete:
		if pick.Coord == voxel.Origin {
			return hide
		}
		return []effect{{kind: effectHighlight, coord: pick.Coord, color: s.DeleteHighlight}}
	}
	return nil
}

func press(s State, pick voxel.PickResult, occupied func(voxel.Coord) bool) (State, []effect) {
	out := []effect{{kind: effectDetachCamera}}
	onVoxel := pick.Hit && pick.OnVoxel

	switch s.Mode {
	case ModePlace:
		if !onVoxel {
			return s, append(out, effect{kind: effectHideHighlight})
		}
		target, _ := voxel.Resolve(pick)
		if !occupied(target) {
			out = append(out, effect{kind: effectPlace, coord: target, color: s.Color})
		}
	case ModeDelete:
		if !onVoxel {
			return s, append(out, effect{kind: effectHideHighlight})
		}
		if pick.Coord == voxel.Origin {
			return s, out
		}
		out = append(out, effect{kind: effectRemove, coord: pick.Coord}, effect{kind: effectHideHighlight})
		if s.Selected && s.Selection == pick.Coord {
			s, out = s.clearSelection(out)
		}
	case ModeSelect:
		if !onVoxel {
			s.Selected = false
			s.Selection = voxel.Coord{}
			return s, append(out, effect{kind: effectHideHighlight}, effect{kind: effectDeselect})
		}
		s.Selected = true
		s.Selection = pick.Coord
		out = append(out, effect{kind: effectSelect, coord: pick.Coord})
	}
	return s, out
}

// switchMode clears selection and highlight; the controller never calls it
// on its own.
func switchMode(s State, m ToolMode) (State, []effect) {
	s.Mode = m
	s, out := s.clearSelection(nil)
	return s, append(out, effect{kind: effectHideHighlight})
}
