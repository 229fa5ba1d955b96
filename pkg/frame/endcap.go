package frame

import (
	"fmt"

	"github.com/steelcab/tubeframe/pkg/geom"
	"github.com/steelcab/tubeframe/pkg/joinery"
	"github.com/steelcab/tubeframe/pkg/profile"
)

// CapTabPlacement selects which cap edges carry retention tabs.
type CapTabPlacement string

const (
	CapTabsAllSides  CapTabPlacement = "all_sides"
	CapTabsTopBottom CapTabPlacement = "top_bottom"
	CapTabsLeftRight CapTabPlacement = "left_right"
	CapTabsNone      CapTabPlacement = "none"
)

// CapSpec parameterizes one end cap: a plate sized to the tube interior
// with edge tabs that slot into the walls, notched wherever a member tab
// already occupies the wall.
type CapSpec struct {
	TubeWidth    float64 `json:"tube_width_mm"`
	TubeHeight   float64 `json:"tube_height_mm"`
	Wall         float64 `json:"wall_mm"`
	CornerRadius float64 `json:"corner_radius_mm"`

	CapThickness float64         `json:"cap_thickness_mm"`
	TabDepth     float64         `json:"tab_depth_mm"`
	TabWidth     float64         `json:"tab_width_mm"`
	TabsPerSide  int             `json:"tabs_per_side"`
	Placement    CapTabPlacement `json:"placement"`

	FitClearance float64 `json:"fit_clearance_mm"`

	Notches []joinery.Notch `json:"notches,omitempty"`
}

// PlateWidth is the cap plate's extent across the tube width, inside the
// walls with clearance.
func (s CapSpec) PlateWidth() float64 {
	return s.TubeWidth - 2*s.Wall - 2*s.FitClearance
}

// PlateHeight is the cap plate's extent across the tube height.
func (s CapSpec) PlateHeight() float64 {
	return s.TubeHeight - 2*s.Wall - 2*s.FitClearance
}

// TabThickness is sized so the tab seats in a wall slot.
func (s CapSpec) TabThickness() float64 {
	return s.Wall - s.FitClearance
}

// TabOffsets spreads the per-side tabs along an edge of the given length,
// returning center offsets from the edge midpoint.
func (s CapSpec) TabOffsets(edgeLength float64) []float64 {
	if s.TabsPerSide <= 1 {
		return []float64{0}
	}
	spacing := edgeLength / float64(s.TabsPerSide+1)
	offsets := make([]float64, s.TabsPerSide)
	for i := range offsets {
		offsets[i] = -edgeLength/2 + spacing*float64(i+1)
	}
	return offsets
}

// EndCap is a cap assigned to one member end.
type EndCap struct {
	Spec     CapSpec   `json:"spec"`
	MemberID string    `json:"member_id"`
	End      string    `json:"end"` // "start" or "end"
	Position geom.Vec3 `json:"position"`
	Normal   geom.Vec3 `json:"normal"` // outward, along the member axis
}

// Name is the cap's stable identifier.
func (c EndCap) Name() string {
	return fmt.Sprintf("cap_%s_%s", c.MemberID, c.End)
}

// CapGenerator builds end caps for open tube ends.
type CapGenerator struct {
	Profile       *profile.TubeProfile
	CapThickness  float64
	TabDepthRatio float64
	NotchClear    float64
}

// NewCapGenerator uses a 3mm plate and half-width tabs.
func NewCapGenerator(p *profile.TubeProfile) *CapGenerator {
	return &CapGenerator{
		Profile:       p,
		CapThickness:  3.0,
		TabDepthRatio: 0.5,
		NotchClear:    1.0,
	}
}

// CapSpecFor builds the cap spec for a tube end, notched around the member
// tabs that enter it. origin is the tube end center; u and v span the cap
// plane.
func (g *CapGenerator) CapSpecFor(memberTabs []joinery.TabGeometry, origin, u, v geom.Vec3, placement CapTabPlacement) CapSpec {
	geo := g.Profile.Geometry
	spec := CapSpec{
		TubeWidth:    geo.OuterWidth,
		TubeHeight:   geo.OuterHeight,
		Wall:         geo.Wall,
		CornerRadius: geo.EffectiveInnerCornerRadius(),
		CapThickness: g.CapThickness,
		TabDepth:     geo.Wall * g.TabDepthRatio * 10,
		TabWidth:     minf(geo.OuterWidth, geo.OuterHeight) * 0.4,
		TabsPerSide:  1,
		Placement:    placement,
		FitClearance: g.Profile.Tolerances.SlotClearance,
	}
	if len(memberTabs) > 0 {
		spec.Notches = joinery.NotchPositions(memberTabs, origin, u, v, g.NotchClear)
	}
	return spec
}

// MemberEnd identifies one end of one member.
type MemberEnd struct {
	ID  string `json:"id"`
	End string `json:"end"` // "start" or "end"
}

func endLabel(param float64) string {
	if param > 0.5 {
		return "end"
	}
	return "start"
}

// OpenEnds returns the member ends not consumed by any joint. A tab-bearing
// end is closed by the mating member; a slot at a receiver's end closes
// that end too.
func OpenEnds(members []FrameMember, joints []joinery.Joint) []MemberEnd {
	closed := map[MemberEnd]bool{}
	for _, j := range joints {
		if j.AtTabEnd() {
			closed[MemberEnd{j.TabMember.ID, endLabel(j.TabParam)}] = true
		}
		if j.AtSlotEnd() {
			closed[MemberEnd{j.SlotMember.ID, endLabel(j.SlotParam)}] = true
		}
	}

	var open []MemberEnd
	for _, m := range members {
		for _, end := range []string{"start", "end"} {
			me := MemberEnd{m.Name(), end}
			if !closed[me] {
				open = append(open, me)
			}
		}
	}
	return open
}

// GenerateCaps makes one cap per open member end. tabsByEnd maps a member
// end to the tabs entering that tube end, for notching.
func (g *CapGenerator) GenerateCaps(members []FrameMember, joints []joinery.Joint,
	tabsByEnd func(memberID, end string) []joinery.TabGeometry) []EndCap {

	byName := make(map[string]FrameMember, len(members))
	for _, m := range members {
		byName[m.Name()] = m
	}

	var caps []EndCap
	for _, me := range OpenEnds(members, joints) {
		m := byName[me.ID]

		pos := m.Position
		normal := m.Dir.Scale(-1)
		if me.End == "end" {
			pos = m.End()
			normal = m.Dir
		}

		u, v := capPlaneBasis(m.Dir)
		var tabs []joinery.TabGeometry
		if tabsByEnd != nil {
			tabs = tabsByEnd(me.ID, me.End)
		}

		caps = append(caps, EndCap{
			Spec:     g.CapSpecFor(tabs, pos, u, v, CapTabsTopBottom),
			MemberID: me.ID,
			End:      me.End,
			Position: pos,
			Normal:   normal,
		})
	}
	return caps
}

// capPlaneBasis returns two unit vectors spanning the plane perpendicular
// to the member axis.
func capPlaneBasis(dir geom.Vec3) (u, v geom.Vec3) {
	ref := geom.Vec3{Z: 1}
	if abs(dir.Z) > 0.9 {
		ref = geom.Vec3{X: 1}
	}
	u = dir.Cross(ref).Normalized()
	v = dir.Cross(u).Normalized()
	return u, v
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
