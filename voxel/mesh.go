package voxel

import "sort"

// Vertex is a mesh corner in world space. Color indexes Mesh.Palette.
type Vertex struct {
	Position [3]float32
	Color    uint32
}

// Mesh is a triangle list with one palette entry per distinct voxel colour.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Palette  []Color
}

type dirSpec struct {
	normal [3]float32
	u, v   int
}

var directions = []dirSpec{
	{[3]float32{1, 0, 0}, 1, 2},
	{[3]float32{-1, 0, 0}, 1, 2},
	{[3]float32{0, 1, 0}, 0, 2},
	{[3]float32{0, -1, 0}, 0, 2},
	{[3]float32{0, 0, 1}, 0, 1},
	{[3]float32{0, 0, -1}, 0, 1},
}

// chunkSize is the edge of the blocks the mesher works on. Only occupied
// blocks are allocated, so distant voxels cost nothing between them.
const chunkSize = 16

// chunk is one occupied block. Cell values are palette index + 1; 0 is
// empty.
type chunk struct {
	origin Coord
	cells  [chunkSize * chunkSize * chunkSize]uint32
}

func cellIndex(p [3]int) int {
	return p[0] + chunkSize*(p[1]+chunkSize*p[2])
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func chunkOrigin(c Coord) Coord {
	return Coord{
		X: floorDiv(c.X, chunkSize) * chunkSize,
		Y: floorDiv(c.Y, chunkSize) * chunkSize,
		Z: floorDiv(c.Z, chunkSize) * chunkSize,
	}
}

func (ch *chunk) local(c Coord) [3]int {
	return [3]int{c.X - ch.origin.X, c.Y - ch.origin.Y, c.Z - ch.origin.Z}
}

type chunks map[Coord]*chunk

func (cs chunks) at(c Coord) uint32 {
	ch := cs[chunkOrigin(c)]
	if ch == nil {
		return 0
	}
	return ch.cells[cellIndex(ch.local(c))]
}

// neighbour reads a cell given in ch's local coordinates, which may lie in
// an adjacent chunk.
func (cs chunks) neighbour(ch *chunk, p [3]int) uint32 {
	for _, v := range p {
		if v < 0 || v >= chunkSize {
			return cs.at(Coord{X: ch.origin.X + p[0], Y: ch.origin.Y + p[1], Z: ch.origin.Z + p[2]})
		}
	}
	return ch.cells[cellIndex(p)]
}

// partition buckets the grid into chunks and returns their origins in
// (X, Y, Z) order.
func partition(g *Grid) (chunks, []Coord, []Color) {
	cs := chunks{}
	var order []Coord
	index := map[Color]uint32{}
	var palette []Color
	for _, v := range g.Export() {
		idx, ok := index[v.Color]
		if !ok {
			palette = append(palette, v.Color)
			idx = uint32(len(palette))
			index[v.Color] = idx
		}
		o := chunkOrigin(v.Coord)
		ch := cs[o]
		if ch == nil {
			ch = &chunk{origin: o}
			cs[o] = ch
			order = append(order, o)
		}
		ch.cells[cellIndex(ch.local(v.Coord))] = idx
	}
	sort.Slice(order, func(i, j int) bool { return less(order[i], order[j]) })
	return cs, order, palette
}

func addQuad(mesh *Mesh, origin Coord, dir dirSpec, start [3]int, w, h int, color uint32, perp int) {
	var du, dv [3]float32
	du[dir.u] = 1
	dv[dir.v] = 1

	// cells are centred on integer coordinates, so faces sit on half steps
	base := [3]float32{
		float32(origin.X) - 0.5,
		float32(origin.Y) - 0.5,
		float32(origin.Z) - 0.5,
	}
	base[perp] += float32(start[0])
	if dir.normal[perp] > 0 {
		base[perp] += 1
	}
	base[dir.u] += float32(start[1])
	base[dir.v] += float32(start[2])

	fh, fw := float32(h), float32(w)
	c := color - 1
	verts := [4]Vertex{
		{Position: base, Color: c},
		{Position: [3]float32{base[0] + du[0]*fh, base[1] + du[1]*fh, base[2] + du[2]*fh}, Color: c},
		{Position: [3]float32{base[0] + du[0]*fh + dv[0]*fw, base[1] + du[1]*fh + dv[1]*fw, base[2] + du[2]*fh + dv[2]*fw}, Color: c},
		{Position: [3]float32{base[0] + dv[0]*fw, base[1] + dv[1]*fw, base[2] + dv[2]*fw}, Color: c},
	}

	swap := (dir.normal[perp] < 0) != (perp == 1)
	if swap {
		verts[1], verts[3] = verts[3], verts[1]
	}

	baseIdx := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, verts[:]...)
	mesh.Indices = append(mesh.Indices, baseIdx, baseIdx+1, baseIdx+2, baseIdx, baseIdx+2, baseIdx+3)
}

// GenerateMesh builds a greedy-merged surface mesh of every voxel in g.
// Faces between two voxels are culled; coplanar same-colour faces within a
// chunk are merged.
func GenerateMesh(g *Grid) *Mesh {
	cs, order, palette := partition(g)
	mesh := &Mesh{Palette: palette}
	for _, o := range order {
		meshChunk(mesh, cs, cs[o])
	}
	return mesh
}

func meshChunk(mesh *Mesh, cs chunks, ch *chunk) {
	for _, dir := range directions {
		perp := 3 - dir.u - dir.v
		step := 1
		if dir.normal[perp] < 0 {
			step = -1
		}

		for p := 0; p < chunkSize; p++ {
			var mask [chunkSize][chunkSize]uint32
			var visited [chunkSize][chunkSize]bool
			faces := false

			for u := 0; u < chunkSize; u++ {
				for v := 0; v < chunkSize; v++ {
					pos := [3]int{}
					pos[dir.u] = u
					pos[dir.v] = v
					pos[perp] = p

					cell := ch.cells[cellIndex(pos)]
					if cell == 0 {
						continue
					}
					adj := pos
					adj[perp] += step
					if cs.neighbour(ch, adj) == 0 {
						mask[u][v] = cell
						faces = true
					}
				}
			}
			if !faces {
				continue
			}

			for u := 0; u < chunkSize; u++ {
				for v := 0; v < chunkSize; {
					if mask[u][v] == 0 || visited[u][v] {
						v++
						continue
					}
					color := mask[u][v]
					width := 1
					for w := v + 1; w < chunkSize && mask[u][w] == color && !visited[u][w]; w++ {
						width++
					}
					height := 1
					stop := false
					for h := u + 1; h < chunkSize && !stop; h++ {
						for w := v; w < v+width; w++ {
							if mask[h][w] != color || visited[h][w] {
								stop = true
								break
							}
						}
						if !stop {
							height++
						}
					}
					for hu := u; hu < u+height; hu++ {
						for hv := v; hv < v+width; hv++ {
							visited[hu][hv] = true
						}
					}
					addQuad(mesh, ch.origin, dir, [3]int{p, u, v}, width, height, color, perp)
					v += width
				}
			}
		}
	}
}
