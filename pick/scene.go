package pick

import (
	"io"
	"log"

	"github.com/voxelsplace/voxedit/voxel"
)

// Scene records what a real renderer would be showing.
type Scene struct {
	Meshes         map[voxel.Coord]voxel.Color
	Casters        map[voxel.Coord]bool
	Highlight      voxel.Voxel
	HighlightOn    bool
	CameraAttached bool

	logger *log.Logger
}

func NewScene(logger *log.Logger) *Scene {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Scene{
		Meshes:         map[voxel.Coord]voxel.Color{},
		Casters:        map[voxel.Coord]bool{},
		CameraAttached: true,
		logger:         logger,
	}
}

func (s *Scene) AddMesh(c voxel.Coord, col voxel.Color) {
	s.Meshes[c] = col
	s.logger.Printf("add mesh %s %s", c.MeshName(), col)
}

func (s *Scene) RemoveMesh(c voxel.Coord) {
	delete(s.Meshes, c)
	s.logger.Printf("remove mesh %s", c.MeshName())
}

func (s *Scene) AddShadowCaster(c voxel.Coord)    { s.Casters[c] = true }
func (s *Scene) RemoveShadowCaster(c voxel.Coord) { delete(s.Casters, c) }

func (s *Scene) ShowHighlight(c voxel.Coord, col voxel.Color) {
	s.Highlight = voxel.Voxel{Coord: c, Color: col}
	s.HighlightOn = true
}

func (s *Scene) HideHighlight() { s.HighlightOn = false }
func (s *Scene) DetachCamera()  { s.CameraAttached = false }
func (s *Scene) AttachCamera()  { s.CameraAttached = true }
