package api

import (
	"bytes"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/voxedit/voxel"
)

const generator = "voxedit -> GLB"

// GridToGLB meshes every voxel in g and returns a binary glTF. The grid is
// only read.
func GridToGLB(g *voxel.Grid) ([]byte, error) {
	mesh := voxel.GenerateMesh(g)
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("%w: empty mesh", voxel.ErrExportFailure)
	}

	positions := make([][3]float32, len(mesh.Vertices))
	colors := make([][4]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		colors[i] = mesh.Palette[v.Color].RGBA()
	}
	indices := make([]uint32, len(mesh.Indices))
	copy(indices, mesh.Indices)
	normals := flatNormals(positions, indices)

	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	colorAccessor := modeler.WriteColor(doc, colors)
	indicesAccessor := modeler.WriteIndices(doc, indices)
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}
	pbr := &gltf.PBRMetallicRoughness{MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	doc.Materials = []*gltf.Material{{Name: "VoxelMaterial", PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}
	doc.Meshes = []*gltf.Mesh{{Name: "VoxelMesh", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: voxel.MeshPrefix + "scene", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", voxel.ErrExportFailure, err)
	}
	return out.Bytes(), nil
}

// RecordsToGLB converts clipboard JSON to a binary glTF.
func RecordsToGLB(data []byte) ([]byte, voxel.ImportReport, error) {
	g := voxel.NewGrid(voxel.BaseColor)
	rep, err := voxel.ImportJSON(g, data)
	if err != nil {
		return nil, rep, err
	}
	glb, err := GridToGLB(g)
	return glb, rep, err
}

// RecordsDigest returns the grid digest of clipboard JSON.
func RecordsDigest(data []byte) (uint64, voxel.ImportReport, error) {
	g := voxel.NewGrid(voxel.BaseColor)
	rep, err := voxel.ImportJSON(g, data)
	if err != nil {
		return 0, rep, err
	}
	return g.Digest(), rep, nil
}

// flatNormals assigns each triangle's face normal to its corners. Quads never
// share vertices, so this is exact.
func flatNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	normals := make([][3]float32, len(positions))
	for i := 0; i < len(indices); i += 3 {
		v0, v1, v2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[v0], positions[v1], positions[v2]
		vec1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		vec2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		cross := [3]float32{
			vec1[1]*vec2[2] - vec1[2]*vec2[1],
			vec1[2]*vec2[0] - vec1[0]*vec2[2],
			vec1[0]*vec2[1] - vec1[1]*vec2[0],
		}
		length := float32(math.Sqrt(float64(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])))
		if length > 0 {
			cross[0] /= length
			cross[1] /= length
			cross[2] /= length
		}
		normals[v0] = cross
		normals[v1] = cross
		normals[v2] = cross
	}
	return normals
}
