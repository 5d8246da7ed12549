// Package relief turns a sampled height field into a solid triangle mesh,
// suitable for 3D printing a frozen frame of an animation. The field is
// wrapped as a signed distance function and tessellated with marching
// cubes via the github.com/deadsy/sdfx library.
package relief

import (
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/pinfield/pkg/field"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 100

// Options control the shape of the generated solid. The zero value picks
// sensible defaults.
type Options struct {
	// Cells is the marching cubes resolution along the longest axis.
	Cells int
	// Depth is the vertical extent a full-height pin adds above the base.
	Depth float64
	// Base is the thickness of the backing slab under the field.
	Base float64
	// GridSize is the pin count passed through to the field when sampling.
	GridSize int
}

func (o Options) withDefaults() Options {
	if o.Cells <= 0 {
		o.Cells = defaultMeshCells
	}
	if o.Depth <= 0 {
		o.Depth = 0.5
	}
	if o.Base <= 0 {
		o.Base = 0.1
	}
	if o.GridSize <= 0 {
		o.GridSize = 32
	}
	return o
}

// Mesh is a flat triangle mesh suitable for rendering or export.
// vertices has 3 floats per vertex (x,y,z), normals has 3 floats per
// vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// heightSDF is the signed distance approximation of a base slab carrying
// the height field on top. X and Y span the unit square; the solid sits
// on Z=0 and reaches base+depth at full pin height. Field Z maps to mesh Y
// sampling so the mesh's vertical axis is geometric Z.
type heightSDF struct {
	fn   field.Field
	t    float64
	opts Options
}

var _ sdf.SDF3 = (*heightSDF)(nil)

func (h *heightSDF) Evaluate(p v3.Vec) float64 {
	raw := h.fn(p.X, p.Y, h.t, h.opts.GridSize)
	top := h.opts.Base + field.Clamp01(raw)*h.opts.Depth

	// Distance to the top surface, then clip against the slab bounds.
	d := p.Z - top
	d = math.Max(d, -p.Z)
	d = math.Max(d, math.Abs(p.X-0.5)-0.5)
	d = math.Max(d, math.Abs(p.Y-0.5)-0.5)
	return d
}

func (h *heightSDF) BoundingBox() sdf.Box3 {
	m := 0.05
	return sdf.Box3{
		Min: v3.Vec{X: -m, Y: -m, Z: -m},
		Max: v3.Vec{X: 1 + m, Y: 1 + m, Z: h.opts.Base + h.opts.Depth + m},
	}
}

// Generate samples the field at time t and tessellates it into a mesh
// using marching cubes.
func Generate(fn field.Field, t float64, opts Options) *Mesh {
	opts = opts.withDefaults()

	s := &heightSDF{fn: fn, t: t, opts: opts}

	renderer := render.NewMarchingCubesUniform(opts.Cells)
	triangles := render.ToTriangles(s, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}
}
