package frame

import (
	"fmt"

	"github.com/steelcab/tubeframe/pkg/geom"
	"github.com/steelcab/tubeframe/pkg/joinery"
	"github.com/steelcab/tubeframe/pkg/profile"
)

// MemberKind identifies a frame member's structural role.
type MemberKind string

const (
	CornerVertical       MemberKind = "corner_vertical"
	VerticalSupport      MemberKind = "vertical_support"
	HorizontalRailTop    MemberKind = "horizontal_rail_top"
	HorizontalRailBottom MemberKind = "horizontal_rail_bottom"
	DepthRail            MemberKind = "depth_rail"
	CrossMemberTop       MemberKind = "cross_member_top"
	CrossMemberBottom    MemberKind = "cross_member_bottom"
	Foot                 MemberKind = "foot"
)

// BoxFace locates a member on the cabinet.
type BoxFace string

const (
	FaceFront  BoxFace = "front"
	FaceBack   BoxFace = "back"
	FaceLeft   BoxFace = "left"
	FaceRight  BoxFace = "right"
	FaceTop    BoxFace = "top"
	FaceBottom BoxFace = "bottom"
)

// FrameMember is one tube in the frame: a start position, a run direction,
// and a cut length. The frame uses only the three principal directions.
type FrameMember struct {
	Kind     MemberKind `json:"kind"`
	Face     BoxFace    `json:"face,omitempty"`
	Position geom.Vec3  `json:"position"`
	Dir      geom.Vec3  `json:"direction"`
	Length   float64    `json:"length_mm"`
	Index    int        `json:"index,omitempty"`
}

// Name is the member's stable identifier within its frame.
func (m FrameMember) Name() string {
	name := string(m.Kind)
	if m.Face != "" {
		name += "_" + string(m.Face)
	}
	if m.Index > 0 {
		name = fmt.Sprintf("%s_%d", name, m.Index)
	}
	return name
}

// End is the far endpoint of the member's centerline.
func (m FrameMember) End() geom.Vec3 {
	return m.Position.Add(m.Dir.Scale(m.Length))
}

// Axis converts the member for joint detection.
func (m FrameMember) Axis(p *profile.TubeProfile) joinery.MemberAxis {
	return joinery.MemberAxis{
		ID:     m.Name(),
		Start:  m.Position,
		End:    m.End(),
		Width:  p.Geometry.OuterWidth,
		Height: p.Geometry.OuterHeight,
	}
}

var (
	alongX = geom.Vec3{X: 1}
	alongY = geom.Vec3{Y: 1}
	alongZ = geom.Vec3{Z: 1}
)

// Layout generates every member of the frame described by spec, positioned
// by centerline. The bottom rails sit on Z=0; feet hang below it.
func Layout(spec *BoxSpec, p *profile.TubeProfile) []FrameMember {
	tw := p.Geometry.OuterWidth
	half := tw / 2
	l, h, d := spec.EffectiveDims(tw)

	var members []FrameMember

	// Corner verticals run between the bottom and top rails.
	vertLen := h - 2*tw
	corners := []struct {
		face BoxFace
		x, y float64
	}{
		{FaceFront, half, half},
		{FaceFront, l - half, half},
		{FaceBack, half, d - half},
		{FaceBack, l - half, d - half},
	}
	for i, c := range corners {
		members = append(members, FrameMember{
			Kind:     CornerVertical,
			Face:     c.face,
			Position: geom.Vec3{X: c.x, Y: c.y, Z: tw},
			Dir:      alongZ,
			Length:   vertLen,
			Index:    i + 1,
		})
	}

	// Full-length rails along the front and back, top and bottom.
	rails := []struct {
		face BoxFace
		y, z float64
	}{
		{FaceFront, half, half},
		{FaceFront, half, h - half},
		{FaceBack, d - half, half},
		{FaceBack, d - half, h - half},
	}
	for i, r := range rails {
		kind := HorizontalRailBottom
		if r.z > half {
			kind = HorizontalRailTop
		}
		members = append(members, FrameMember{
			Kind:     kind,
			Face:     r.face,
			Position: geom.Vec3{Y: r.y, Z: r.z},
			Dir:      alongX,
			Length:   l,
			Index:    i + 1,
		})
	}

	// Depth rails tie front to back between the corner posts.
	depthLen := d - 2*tw
	depthRails := []struct {
		face BoxFace
		x, z float64
	}{
		{FaceLeft, half, half},
		{FaceLeft, half, h - half},
		{FaceRight, l - half, half},
		{FaceRight, l - half, h - half},
	}
	for i, r := range depthRails {
		members = append(members, FrameMember{
			Kind:     DepthRail,
			Face:     r.face,
			Position: geom.Vec3{X: r.x, Y: tw, Z: r.z},
			Dir:      alongY,
			Length:   depthLen,
			Index:    i + 1,
		})
	}

	// Intermediate vertical supports at the configured on-center spacing.
	addSupports := func(face BoxFace, y float64, count int) {
		if count <= 0 {
			return
		}
		spacing := (l - tw) / float64(count+1)
		for i := 0; i < count; i++ {
			members = append(members, FrameMember{
				Kind:     VerticalSupport,
				Face:     face,
				Position: geom.Vec3{X: spacing * float64(i+1), Y: y, Z: tw},
				Dir:      alongZ,
				Length:   vertLen,
				Index:    i + 1,
			})
		}
	}
	addSupports(FaceFront, half, spec.VerticalCountFront(tw))
	addSupports(FaceBack, d-half, spec.VerticalCountBack(tw))

	// Cross members span the depth on the top and bottom planes.
	addCross := func(kind MemberKind, face BoxFace, z float64, count int) {
		if count <= 0 {
			return
		}
		spacing := (l - tw) / float64(count+1)
		for i := 0; i < count; i++ {
			members = append(members, FrameMember{
				Kind:     kind,
				Face:     face,
				Position: geom.Vec3{X: spacing * float64(i+1), Y: tw, Z: z},
				Dir:      alongY,
				Length:   depthLen,
				Index:    i + 1,
			})
		}
	}
	addCross(CrossMemberTop, FaceTop, h-half, spec.HorizontalCountTop(tw))
	addCross(CrossMemberBottom, FaceBottom, half, spec.HorizontalCountBottom(tw))

	// Feet extend below the bottom rails at each corner.
	if spec.FootHeight > 0 {
		for i, c := range corners {
			members = append(members, FrameMember{
				Kind:     Foot,
				Face:     FaceBottom,
				Position: geom.Vec3{X: c.x, Y: c.y, Z: -spec.FootHeight},
				Dir:      alongZ,
				Length:   spec.FootHeight,
				Index:    i + 1,
			})
		}
	}

	return members
}
