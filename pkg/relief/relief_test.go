package relief

import (
	"testing"

	"github.com/chazu/pinfield/pkg/field"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestHeightSDFSigns(t *testing.T) {
	s := &heightSDF{
		fn:   field.Constant(0.5),
		opts: Options{}.withDefaults(),
	}
	// base 0.1 + 0.5*depth 0.5 = 0.35 surface height.

	tests := []struct {
		name   string
		p      v3.Vec
		inside bool
	}{
		{"center of slab", v3.Vec{X: 0.5, Y: 0.5, Z: 0.05}, true},
		{"just under surface", v3.Vec{X: 0.5, Y: 0.5, Z: 0.3}, true},
		{"above surface", v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, false},
		{"below slab", v3.Vec{X: 0.5, Y: 0.5, Z: -0.1}, false},
		{"outside x wall", v3.Vec{X: 1.2, Y: 0.5, Z: 0.05}, false},
		{"outside y wall", v3.Vec{X: 0.5, Y: -0.2, Z: 0.05}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.Evaluate(tt.p)
			if tt.inside && d >= 0 {
				t.Errorf("Evaluate(%v) = %v, want negative (inside)", tt.p, d)
			}
			if !tt.inside && d <= 0 {
				t.Errorf("Evaluate(%v) = %v, want positive (outside)", tt.p, d)
			}
		})
	}
}

func TestHeightSDFClampsField(t *testing.T) {
	s := &heightSDF{
		fn:   field.Constant(7),
		opts: Options{}.withDefaults(),
	}
	// Even an out-of-range field stays within base+depth.
	top := s.opts.Base + s.opts.Depth
	if d := s.Evaluate(v3.Vec{X: 0.5, Y: 0.5, Z: top + 0.01}); d <= 0 {
		t.Errorf("point above max height should be outside, got %v", d)
	}
}

func TestHeightSDFBoundingBoxContainsSolid(t *testing.T) {
	s := &heightSDF{
		fn:   field.Constant(1),
		opts: Options{}.withDefaults(),
	}
	bb := s.BoundingBox()
	if bb.Min.Z >= 0 || bb.Max.Z <= s.opts.Base+s.opts.Depth {
		t.Errorf("bounding box %v does not enclose the solid with margin", bb)
	}
}

func TestGenerateFlatField(t *testing.T) {
	m := Generate(field.Constant(0.5), 0, Options{Cells: 16})
	if m.IsEmpty() {
		t.Fatal("flat field produced an empty mesh")
	}
	if m.VertexCount()*3 != len(m.Vertices) {
		t.Errorf("vertex count %d inconsistent with %d floats", m.VertexCount(), len(m.Vertices))
	}
	if m.TriangleCount() == 0 {
		t.Error("no triangles")
	}
	// Every vertex must stay inside the bounding box.
	maxZ := float32(0.1 + 0.5 + 0.05)
	for i := 2; i < len(m.Vertices); i += 3 {
		if m.Vertices[i] > maxZ {
			t.Fatalf("vertex z=%v above solid maximum", m.Vertices[i])
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Cells != defaultMeshCells || o.Depth != 0.5 || o.Base != 0.1 || o.GridSize != 32 {
		t.Errorf("defaults = %+v", o)
	}
	// Explicit values survive.
	o = Options{Cells: 64, Depth: 1, Base: 0.2, GridSize: 16}.withDefaults()
	if o.Cells != 64 || o.Depth != 1 || o.Base != 0.2 || o.GridSize != 16 {
		t.Errorf("explicit options clobbered: %+v", o)
	}
}
