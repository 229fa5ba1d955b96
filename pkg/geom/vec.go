// Package geom provides the small amount of 3D vector and bounding-box
// math the joinery pipeline needs. All dimensions are millimetres.
package geom

import "math"

// Vec3 represents a 3D point or direction in mm.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec2 represents a 2D point in a feature-local plane (mm).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of v and w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns v scaled to unit length. A near-zero vector
// normalizes to the zero vector rather than NaN.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// DistanceTo returns the distance between two points.
func (v Vec3) DistanceTo(w Vec3) float64 {
	return v.Sub(w).Norm()
}

// Lerp returns the point at parameter t on the segment v..w.
func (v Vec3) Lerp(w Vec3, t float64) Vec3 {
	return v.Add(w.Sub(v).Scale(t))
}

// Mid returns the midpoint of v and w.
func (v Vec3) Mid(w Vec3) Vec3 {
	return v.Lerp(w, 0.5)
}

// Clamp01 clamps t into [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ClosestParamsOnLines finds the closest approach between two infinite
// lines p1 + t1*d1 and p2 + t2*d2 (d1, d2 unit vectors). It returns the
// line parameters and the minimum distance between the two closest points.
// For parallel lines the 2x2 Gram determinant vanishes; t1 is pinned to 0
// and t2 is the projection of p1 onto the second line.
func ClosestParamsOnLines(p1, d1, p2, d2 Vec3) (t1, t2, dist float64) {
	w0 := p1.Sub(p2)
	a := d1.Dot(d1)
	b := d1.Dot(d2)
	c := d2.Dot(d2)
	d := d1.Dot(w0)
	e := d2.Dot(w0)

	denom := a*c - b*b
	if math.Abs(denom) < 1e-10 {
		t1 = 0
		if math.Abs(b) > 1e-10 {
			t2 = d / b
		}
	} else {
		t1 = (b*e - c*d) / denom
		t2 = (a*e - b*d) / denom
	}

	pt1 := p1.Add(d1.Scale(t1))
	pt2 := p2.Add(d2.Scale(t2))
	return t1, t2, pt1.DistanceTo(pt2)
}
