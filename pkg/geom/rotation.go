package geom

import "math"

// AxisAngleFromBasis expresses the rotation taking the standard basis onto
// the orthonormal frame (x, y, z) as a single axis and angle in degrees.
// The frame must be right-handed; the axis is unit length. An identity
// frame returns a zero angle with the +Z axis.
func AxisAngleFromBasis(x, y, z Vec3) (axis Vec3, angleDeg float64) {
	// Rotation matrix columns are the frame vectors.
	trace := x.X + y.Y + z.Z
	cos := (trace - 1) / 2
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	angle := math.Acos(cos)

	const eps = 1e-9
	switch {
	case angle < eps:
		return Vec3{Z: 1}, 0
	case math.Pi-angle < 1e-6:
		// Half-turn: the off-diagonal differences vanish, so recover the
		// axis from the diagonal and fix signs from the symmetric part.
		ax := math.Sqrt(math.Max(0, (x.X+1)/2))
		ay := math.Sqrt(math.Max(0, (y.Y+1)/2))
		az := math.Sqrt(math.Max(0, (z.Z+1)/2))
		switch {
		case ax >= ay && ax >= az:
			if ax > eps {
				ay = (y.X + x.Y) / (4 * ax)
				az = (z.X + x.Z) / (4 * ax)
			}
		case ay >= ax && ay >= az:
			if ay > eps {
				ax = (y.X + x.Y) / (4 * ay)
				az = (z.Y + y.Z) / (4 * ay)
			}
		default:
			if az > eps {
				ax = (z.X + x.Z) / (4 * az)
				ay = (z.Y + y.Z) / (4 * az)
			}
		}
		return Vec3{X: ax, Y: ay, Z: az}.Normalized(), 180
	default:
		s := 2 * math.Sin(angle)
		axis = Vec3{
			X: (y.Z - z.Y) / s,
			Y: (z.X - x.Z) / s,
			Z: (x.Y - y.X) / s,
		}
		return axis.Normalized(), angle * 180 / math.Pi
	}
}
