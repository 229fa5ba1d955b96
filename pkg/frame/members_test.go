package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelcab/tubeframe/pkg/geom"
	"github.com/steelcab/tubeframe/pkg/profile"
)

func testTube(t *testing.T) *profile.TubeProfile {
	t.Helper()
	p := profile.SquareTube(2.0, 0.125)
	require.NoError(t, p.Validate())
	return p
}

func TestLayoutDefaultSpec(t *testing.T) {
	p := testTube(t)
	members := Layout(DefaultBoxSpec(), p)

	// 4 corners + 4 front/back rails + 4 depth rails + 2 back supports
	// + 4 feet.
	require.Len(t, members, 18)

	byKind := map[MemberKind]int{}
	names := map[string]bool{}
	for _, m := range members {
		byKind[m.Kind]++
		assert.False(t, names[m.Name()], "duplicate member name %s", m.Name())
		names[m.Name()] = true
		assert.Greater(t, m.Length, 0.0)
		assert.InDelta(t, 1.0, m.Dir.Norm(), 1e-9)
	}

	assert.Equal(t, 4, byKind[CornerVertical])
	assert.Equal(t, 2, byKind[HorizontalRailTop])
	assert.Equal(t, 2, byKind[HorizontalRailBottom])
	assert.Equal(t, 4, byKind[DepthRail])
	assert.Equal(t, 2, byKind[VerticalSupport])
	assert.Equal(t, 4, byKind[Foot])
}

func TestLayoutDimensions(t *testing.T) {
	p := testTube(t)
	spec := DefaultBoxSpec()
	members := Layout(spec, p)

	const tw = 50.8
	for _, m := range members {
		switch m.Kind {
		case CornerVertical, VerticalSupport:
			assert.InDelta(t, spec.Height-2*tw, m.Length, 1e-9, m.Name())
			assert.Equal(t, geom.Vec3{Z: 1}, m.Dir, m.Name())
			assert.InDelta(t, tw, m.Position.Z, 1e-9, "verticals start above the bottom rail")
		case HorizontalRailTop, HorizontalRailBottom:
			assert.InDelta(t, spec.Length, m.Length, 1e-9, m.Name())
			assert.Equal(t, geom.Vec3{X: 1}, m.Dir, m.Name())
		case DepthRail, CrossMemberTop, CrossMemberBottom:
			assert.InDelta(t, spec.Depth-2*tw, m.Length, 1e-9, m.Name())
			assert.Equal(t, geom.Vec3{Y: 1}, m.Dir, m.Name())
		case Foot:
			assert.InDelta(t, spec.FootHeight, m.Length, 1e-9, m.Name())
			assert.InDelta(t, -spec.FootHeight, m.Position.Z, 1e-9, "feet hang below the frame")
			assert.InDelta(t, 0, m.End().Z, 1e-9)
		}
	}
}

func TestLayoutNoFeet(t *testing.T) {
	p := testTube(t)
	spec := DefaultBoxSpec()
	spec.FootHeight = 0

	for _, m := range Layout(spec, p) {
		assert.NotEqual(t, Foot, m.Kind)
	}
}

func TestLayoutInteriorReference(t *testing.T) {
	p := testTube(t)
	spec := DefaultBoxSpec()
	spec.Reference = Interior

	var railLen float64
	for _, m := range Layout(spec, p) {
		if m.Kind == HorizontalRailBottom {
			railLen = m.Length
			break
		}
	}
	assert.InDelta(t, spec.Length+2*50.8, railLen, 1e-9,
		"interior dimensions grow by a tube width per side")
}

func TestFrameMemberAxis(t *testing.T) {
	p := testTube(t)
	m := FrameMember{
		Kind:     DepthRail,
		Face:     FaceLeft,
		Position: geom.Vec3{X: 25.4, Y: 50.8, Z: 25.4},
		Dir:      geom.Vec3{Y: 1},
		Length:   508,
		Index:    1,
	}

	axis := m.Axis(p)
	assert.Equal(t, "depth_rail_left_1", axis.ID)
	assert.Equal(t, m.Position, axis.Start)
	assert.InDelta(t, 558.8, axis.End.Y, 1e-9)
	assert.InDelta(t, 50.8, axis.Width, 1e-9)
	assert.False(t, axis.IsDegenerate())
	assert.True(t, axis.IsAlongY())
}

func TestMemberName(t *testing.T) {
	tests := []struct {
		member FrameMember
		want   string
	}{
		{FrameMember{Kind: CornerVertical, Face: FaceFront, Index: 2}, "corner_vertical_front_2"},
		{FrameMember{Kind: Foot, Face: FaceBottom, Index: 4}, "foot_bottom_4"},
		{FrameMember{Kind: DepthRail}, "depth_rail"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.member.Name())
	}
}
