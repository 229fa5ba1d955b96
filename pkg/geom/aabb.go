package geom

import "math"

// AABB is an axis-aligned bounding box used for conservative
// feature-interference tests.
type AABB struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// NewAABB returns the box spanned by two opposite corners, in any order.
func NewAABB(a, b Vec3) AABB {
	return AABB{
		Min: Vec3{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max: Vec3{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// Expand grows the box by dx, dy, dz on both sides of each axis.
func (b AABB) Expand(dx, dy, dz float64) AABB {
	return AABB{
		Min: Vec3{X: b.Min.X - dx, Y: b.Min.Y - dy, Z: b.Min.Z - dz},
		Max: Vec3{X: b.Max.X + dx, Y: b.Max.Y + dy, Z: b.Max.Z + dz},
	}
}

// Intersects reports whether two boxes overlap when each face is pushed
// outward by tolerance. A positive tolerance also catches boxes that come
// within that distance; a negative tolerance ignores shallow overlap.
func (b AABB) Intersects(other AABB, tolerance float64) bool {
	return !(b.Max.X < other.Min.X-tolerance ||
		b.Min.X > other.Max.X+tolerance ||
		b.Max.Y < other.Min.Y-tolerance ||
		b.Min.Y > other.Max.Y+tolerance ||
		b.Max.Z < other.Min.Z-tolerance ||
		b.Min.Z > other.Max.Z+tolerance)
}

// Center returns the box center point.
func (b AABB) Center() Vec3 {
	return b.Min.Mid(b.Max)
}
