// Package joinery computes tab-and-slot joints for tube frame structures:
// it detects where members meet, classifies each joint, decides which
// member carries the tab and which receives the slot, generates the exact
// feature geometry, and checks the generated features for interference.
//
// The whole package is a deterministic, side-effect-free pipeline: the same
// member axes and configuration always produce the same joints and features.
package joinery

import (
	"math"

	"github.com/steelcab/tubeframe/pkg/geom"
)

// MinMemberLength is the shortest centerline (mm) that still counts as a
// real member. Anything shorter is degenerate and excluded from detection.
const MinMemberLength = 1e-6

// axisTol is the direction-cosine tolerance used by the axis-alignment
// helpers.
const axisTol = 0.01

// MemberAxis reduces a tube member to its centerline segment plus outer
// cross-section size. It is the only member representation the joinery
// core reasons about; treat it as a value.
type MemberAxis struct {
	ID     string    `json:"id"`
	Start  geom.Vec3 `json:"start"`
	End    geom.Vec3 `json:"end"`
	Width  float64   `json:"width"`  // outer cross-section width (mm)
	Height float64   `json:"height"` // outer cross-section height (mm)
}

// Length returns the centerline length in mm.
func (m MemberAxis) Length() float64 {
	return m.End.Sub(m.Start).Norm()
}

// Direction returns the unit vector from Start to End. Degenerate members
// default to +Z.
func (m MemberAxis) Direction() geom.Vec3 {
	d := m.End.Sub(m.Start)
	if d.Norm() < MinMemberLength {
		return geom.Vec3{Z: 1}
	}
	return d.Normalized()
}

// Midpoint returns the centerline midpoint.
func (m MemberAxis) Midpoint() geom.Vec3 {
	return m.Start.Mid(m.End)
}

// PointAt returns the point at normalized parameter t (0=start, 1=end).
func (m MemberAxis) PointAt(t float64) geom.Vec3 {
	return m.Start.Lerp(m.End, t)
}

// IsDegenerate reports whether the member is too short to participate in
// joint detection.
func (m MemberAxis) IsDegenerate() bool {
	return m.Length() < MinMemberLength
}

// IsVertical reports whether the member runs along the Z axis.
func (m MemberAxis) IsVertical() bool {
	return math.Abs(m.Direction().Z) > 1-axisTol
}

// IsAlongX reports whether the member runs along the X axis.
func (m MemberAxis) IsAlongX() bool {
	return math.Abs(m.Direction().X) > 1-axisTol
}

// IsAlongY reports whether the member runs along the Y axis.
func (m MemberAxis) IsAlongY() bool {
	return math.Abs(m.Direction().Y) > 1-axisTol
}
