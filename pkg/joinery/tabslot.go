package joinery

import (
	"github.com/steelcab/tubeframe/pkg/geom"
	"github.com/steelcab/tubeframe/pkg/profile"
)

const (
	// DefaultTabDepth is how far a tab protrudes when no policy is set.
	DefaultTabDepth = 10.0

	// DefaultSlotDepthFactor multiplies the wall thickness to get the slot
	// cut depth. Anything from 1.5 up guarantees a through-cut with margin.
	DefaultSlotDepthFactor = 2.0
	minSlotDepthFactor     = 1.5
)

// TabDepthPolicy decides the tab protrusion depth. Ratio, when set, scales
// the mating member's cross-section width (0.5 to 0.75 works well);
// otherwise Fixed is used, falling back to DefaultTabDepth.
type TabDepthPolicy struct {
	Fixed float64 `json:"fixed_mm,omitempty"`
	Ratio float64 `json:"ratio,omitempty"`
}

// Depth resolves the policy against the mating member's width.
func (p TabDepthPolicy) Depth(matingWidth float64) float64 {
	if p.Ratio > 0 {
		return matingWidth * p.Ratio
	}
	if p.Fixed > 0 {
		return p.Fixed
	}
	return DefaultTabDepth
}

// TabGeometry is one tab, fully placed in world coordinates. The tab is a
// wall-thickness tongue extruded from Position along Direction by Depth,
// with Normal giving the thickness axis.
type TabGeometry struct {
	Joint  string `json:"joint"`
	Member string `json:"member"`

	Width     float64 `json:"width_mm"`
	Depth     float64 `json:"depth_mm"`
	Thickness float64 `json:"thickness_mm"`

	Position  geom.Vec3 `json:"position"`
	Direction geom.Vec3 `json:"direction"`
	Normal    geom.Vec3 `json:"normal"`

	CornerRadius float64 `json:"corner_radius_mm,omitempty"`
}

// SlotGeometry is one slot cut, fully placed in world coordinates. The cut
// enters the wall at Position along Direction by Depth; Along is the length
// axis of the opening, perpendicular to Direction.
type SlotGeometry struct {
	Joint  string `json:"joint"`
	Member string `json:"member"`

	Width  float64 `json:"width_mm"`
	Depth  float64 `json:"depth_mm"`
	Length float64 `json:"length_mm"`

	Position  geom.Vec3 `json:"position"`
	Direction geom.Vec3 `json:"direction"`
	Along     geom.Vec3 `json:"along"`

	Relief ReliefProfile `json:"relief"`
}

// Generator computes tab and slot geometry for classified joints using a
// profile's tolerance stack.
type Generator struct {
	Profile         *profile.TubeProfile
	Depth           TabDepthPolicy
	Relief          ReliefType
	ReliefRadius    float64
	SlotDepthFactor float64
}

// NewGenerator returns a generator with radius relief and the profile's
// configured relief radius.
func NewGenerator(p *profile.TubeProfile) *Generator {
	return &Generator{
		Profile:         p,
		Depth:           TabDepthPolicy{Fixed: DefaultTabDepth},
		Relief:          ReliefRadius,
		ReliefRadius:    p.Tolerances.CornerReliefRadius,
		SlotDepthFactor: DefaultSlotDepthFactor,
	}
}

// Features returns the tab/slot pair for a joint. Inline joints produce no
// features; they butt end to end and are welded or sleeved instead.
func (g *Generator) Features(j Joint) (*TabGeometry, *SlotGeometry) {
	if !j.GeneratesFeatures() {
		return nil, nil
	}
	tabDepth := g.Depth.Depth(j.SlotMember.Width)
	tab := g.tabGeometry(j, tabDepth)
	slot := g.slotGeometry(j, tabDepth)
	return &tab, &slot
}

func (g *Generator) tabGeometry(j Joint, tabDepth float64) TabGeometry {
	base := j.TabMember.Start
	if j.TabParam > 0.5 {
		base = j.TabMember.End
	}

	// The tab extends from its base toward the receiving member's
	// centerline. At a shared corner point the two coincide, so fall back
	// to the receiving member's axis.
	extendDir := j.Point.Sub(base)
	if extendDir.Norm() > 1e-6 {
		extendDir = extendDir.Normalized()
	} else {
		extendDir = j.SlotMember.Direction()
	}

	tabDir := j.TabMember.Direction()

	// Thickness axis: perpendicular to both the member axis and the
	// extrusion, so the tab lies flat on a tube face.
	normal := tabDir.Cross(extendDir)
	if normal.Norm() < 1e-6 {
		normal = tabDir.Cross(j.SlotMember.Direction())
	}
	normal = orientForFace(normal.Normalized(), j.TabFace)

	// Move the base from the centerline out to the mid-wall of the chosen
	// face.
	faceOffset := g.Profile.Geometry.OuterHeight/2 - g.Profile.Geometry.Wall/2
	position := base.Add(normal.Scale(faceOffset))

	cornerRadius := 0.0
	if g.Relief == ReliefRadius {
		cornerRadius = g.ReliefRadius
	}

	return TabGeometry{
		Joint:        j.ID(),
		Member:       j.TabMember.ID,
		Width:        g.Profile.TabWidth(),
		Depth:        tabDepth,
		Thickness:    g.Profile.Geometry.Wall,
		Position:     position,
		Direction:    extendDir,
		Normal:       normal,
		CornerRadius: cornerRadius,
	}
}

func (g *Generator) slotGeometry(j Joint, tabDepth float64) SlotGeometry {
	center := j.Point
	slotDir := j.SlotMember.Direction()

	// The cut enters the face nearest the approaching tab member. Using
	// the tab member's midpoint keeps the choice stable when the tab base
	// sits exactly on the joint point.
	into := perpComponent(j.TabMember.Midpoint().Sub(center), slotDir)
	if into.Norm() < 1e-6 {
		tabBase := j.TabMember.Start
		if j.TabParam > 0.5 {
			tabBase = j.TabMember.End
		}
		into = perpComponent(tabBase.Sub(center), slotDir)
	}
	if into.Norm() < 1e-6 {
		into = perpComponent(geom.Vec3{Z: 1}, slotDir)
	}
	into = into.Normalized()

	// The opening's length axis follows the tab member's axis projected
	// onto the face. A tab arriving square to the face leaves no
	// projection, so complete the face basis from the cut direction.
	along := perpComponent(j.TabMember.Direction(), into)
	if along.Norm() < 1e-6 {
		along = into.Cross(slotDir)
	}
	along = along.Normalized()

	width := g.Profile.SlotWidth()
	length := tabDepth + 2*g.ReliefRadius
	depth := g.Profile.Geometry.Wall * g.slotDepthFactor()

	return SlotGeometry{
		Joint:     j.ID(),
		Member:    j.SlotMember.ID,
		Width:     width,
		Depth:     depth,
		Length:    length,
		Position:  center.Add(into.Scale(g.Profile.Geometry.OuterHeight / 2)),
		Direction: into,
		Along:     along,
		Relief:    BuildReliefProfile(g.Relief, width, length, g.ReliefRadius),
	}
}

func (g *Generator) slotDepthFactor() float64 {
	if g.SlotDepthFactor < minSlotDepthFactor {
		return DefaultSlotDepthFactor
	}
	return g.SlotDepthFactor
}

// perpComponent removes from v its component along axis (unit vector).
func perpComponent(v, axis geom.Vec3) geom.Vec3 {
	return v.Sub(axis.Scale(v.Dot(axis)))
}

// orientForFace flips a face normal so its dominant axis points positive
// for top/left faces and negative for bottom/right faces.
func orientForFace(n geom.Vec3, face Face) geom.Vec3 {
	dominant := n.Z
	if abs(n.X) > abs(dominant) {
		dominant = n.X
	}
	if abs(n.Y) > abs(dominant) {
		dominant = n.Y
	}

	positive := face == FaceTop || face == FaceLeft
	if (dominant < 0) == positive {
		return n.Scale(-1)
	}
	return n
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
