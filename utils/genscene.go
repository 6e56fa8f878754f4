package utils

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxedit/voxel"
)

var faces = [6]mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// GenerateScene grows a connected scene of count voxels from the base voxel
// by clicking random faces of random existing voxels, the way a user would.
// Colours are drawn from a small random palette.
func GenerateScene(count int, r *rand.Rand) *voxel.Grid {
	g := voxel.NewGrid(voxel.BaseColor)
	palette := make([]voxel.Color, 1+r.Intn(8))
	for i := range palette {
		palette[i] = voxel.Color{R: uint8(r.Intn(256)), G: uint8(r.Intn(256)), B: uint8(r.Intn(256))}
	}

	cells := []voxel.Coord{voxel.Origin}
	// a full neighbourhood rejects every click; give up after a while
	for misses := 0; g.Len() < count && misses < 64*count; {
		hit := cells[r.Intn(len(cells))]
		n := faces[r.Intn(len(faces))]
		pick := voxel.PickResult{Hit: true, OnVoxel: true, Coord: hit, Point: hit.Center().Add(n.Mul(0.5))}
		target, _ := voxel.Resolve(pick)
		if !g.Place(target, palette[r.Intn(len(palette))]) {
			misses++
			continue
		}
		cells = append(cells, target)
	}
	return g
}

// RunGenerateScene writes a generated scene as clipboard JSON.
func RunGenerateScene(count int, seed int64, outPath string) error {
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}
	g := GenerateScene(count, rand.New(rand.NewSource(seed)))
	data, err := voxel.MarshalRecords(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf("scene with %d voxels saved to %s (digest %016x)\n", g.Len(), outPath, g.Digest())
	return nil
}
