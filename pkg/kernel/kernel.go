// Package kernel defines the solid modeling interface the frame pipeline
// hands its recipes to, plus the builder that realizes a member recipe as a
// solid. Implementations (sdfx today) live in subpackages behind this
// interface; nothing upstream of the builder imports a backend.
package kernel

import "github.com/steelcab/tubeframe/pkg/geom"

// Solid is an opaque handle to a backend solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max geom.Vec3)
}

// Kernel is the solid modeling interface. Primitives are centered at the
// origin; cylinders and cones stand on the Z axis.
type Kernel interface {
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid
	// Cone's first radius is at the bottom (-Z) face.
	Cone(height, bottomRadius, topRadius float64) Solid

	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	Translate(s Solid, offset geom.Vec3) Solid
	// Rotate turns the solid about an axis through the origin.
	Rotate(s Solid, axis geom.Vec3, angleDeg float64) Solid

	ToMesh(s Solid) (*Mesh, error)
}

// Place orients a solid's local axes onto the right-handed world frame
// (x, y, z) and moves its origin to at.
func Place(k Kernel, s Solid, x, y, z, at geom.Vec3) Solid {
	axis, angle := geom.AxisAngleFromBasis(x, y, z)
	if angle != 0 {
		s = k.Rotate(s, axis, angle)
	}
	return k.Translate(s, at)
}
