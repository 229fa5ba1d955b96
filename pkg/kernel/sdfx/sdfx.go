// Package sdfx implements kernel.Kernel over the github.com/deadsy/sdfx
// signed distance field CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/steelcab/tubeframe/pkg/geom"
	"github.com/steelcab/tubeframe/pkg/kernel"
)

var _ kernel.Kernel = (*Kernel)(nil)

// meshCells controls marching cubes tessellation resolution.
const meshCells = 200

// Kernel implements kernel.Kernel using sdfx.
type Kernel struct{}

// New returns an sdfx-backed kernel.
func New() *Kernel {
	return &Kernel{}
}

type solid struct {
	s sdf.SDF3
}

func (s *solid) BoundingBox() (min, max geom.Vec3) {
	bb := s.s.BoundingBox()
	min = geom.Vec3{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z}
	max = geom.Vec3{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z}
	return min, max
}

func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*solid).s
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &solid{s: s}
}

// Box creates a box centered at the origin.
func (k *Kernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a cylinder on the Z axis centered at the origin.
func (k *Kernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Cone creates a truncated cone on the Z axis, bottomRadius at the -Z face.
func (k *Kernel) Cone(height, bottomRadius, topRadius float64) kernel.Solid {
	s, err := sdf.Cone3D(height, bottomRadius, topRadius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cone3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns a minus b.
func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by the given offset.
func (k *Kernel) Translate(s kernel.Solid, offset geom.Vec3) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: offset.X, Y: offset.Y, Z: offset.Z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate turns a solid about an axis through the origin.
func (k *Kernel) Rotate(s kernel.Solid, axis geom.Vec3, angleDeg float64) kernel.Solid {
	m := sdf.Rotate3d(v3.Vec{X: axis.X, Y: axis.Y, Z: axis.Z}, angleDeg*math.Pi/180)
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh tessellates a solid with marching cubes.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	renderer := render.NewMarchingCubesUniform(meshCells)
	triangles := render.ToTriangles(unwrap(s), renderer)

	vertices := make([]float32, 0, len(triangles)*9)
	normals := make([]float32, 0, len(triangles)*9)
	indices := make([]uint32, 0, len(triangles)*3)

	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
