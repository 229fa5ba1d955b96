package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelcab/tubeframe/pkg/frame"
	"github.com/steelcab/tubeframe/pkg/geom"
	"github.com/steelcab/tubeframe/pkg/joinery"
	"github.com/steelcab/tubeframe/pkg/profile"
)

// fakeKernel records operation counts and tracks bounding boxes through
// transforms, so placement can be asserted without a real backend. Every
// solid subtracted in a Difference is kept so tests can check where cuts
// actually landed.
type fakeKernel struct {
	boxes, cylinders, cones      int
	unions, diffs, intersections int
	meshed                       int
	cuts                         []*fakeSolid
}

var _ Kernel = (*fakeKernel)(nil)

type fakeSolid struct {
	min, max geom.Vec3
}

func (s *fakeSolid) BoundingBox() (min, max geom.Vec3) {
	return s.min, s.max
}

func (k *fakeKernel) Box(x, y, z float64) Solid {
	k.boxes++
	return &fakeSolid{
		min: geom.Vec3{X: -x / 2, Y: -y / 2, Z: -z / 2},
		max: geom.Vec3{X: x / 2, Y: y / 2, Z: z / 2},
	}
}

func (k *fakeKernel) Cylinder(height, radius float64) Solid {
	k.cylinders++
	return &fakeSolid{
		min: geom.Vec3{X: -radius, Y: -radius, Z: -height / 2},
		max: geom.Vec3{X: radius, Y: radius, Z: height / 2},
	}
}

func (k *fakeKernel) Cone(height, bottomRadius, topRadius float64) Solid {
	k.cones++
	r := math.Max(bottomRadius, topRadius)
	return &fakeSolid{
		min: geom.Vec3{X: -r, Y: -r, Z: -height / 2},
		max: geom.Vec3{X: r, Y: r, Z: height / 2},
	}
}

func (k *fakeKernel) Union(a, b Solid) Solid {
	k.unions++
	fa, fb := a.(*fakeSolid), b.(*fakeSolid)
	return &fakeSolid{
		min: geom.Vec3{
			X: math.Min(fa.min.X, fb.min.X),
			Y: math.Min(fa.min.Y, fb.min.Y),
			Z: math.Min(fa.min.Z, fb.min.Z),
		},
		max: geom.Vec3{
			X: math.Max(fa.max.X, fb.max.X),
			Y: math.Max(fa.max.Y, fb.max.Y),
			Z: math.Max(fa.max.Z, fb.max.Z),
		},
	}
}

func (k *fakeKernel) Difference(a, b Solid) Solid {
	k.diffs++
	fa := a.(*fakeSolid)
	k.cuts = append(k.cuts, b.(*fakeSolid))
	return &fakeSolid{min: fa.min, max: fa.max}
}

func (k *fakeKernel) Intersection(a, b Solid) Solid {
	k.intersections++
	fa := a.(*fakeSolid)
	return &fakeSolid{min: fa.min, max: fa.max}
}

func (k *fakeKernel) Translate(s Solid, offset geom.Vec3) Solid {
	f := s.(*fakeSolid)
	return &fakeSolid{min: f.min.Add(offset), max: f.max.Add(offset)}
}

func (k *fakeKernel) Rotate(s Solid, axis geom.Vec3, angleDeg float64) Solid {
	f := s.(*fakeSolid)
	a := angleDeg * math.Pi / 180
	sin, cos := math.Sin(a), math.Cos(a)
	spin := func(v geom.Vec3) geom.Vec3 {
		return v.Scale(cos).
			Add(axis.Cross(v).Scale(sin)).
			Add(axis.Scale(axis.Dot(v) * (1 - cos)))
	}

	lo := geom.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := lo.Scale(-1)
	for _, x := range []float64{f.min.X, f.max.X} {
		for _, y := range []float64{f.min.Y, f.max.Y} {
			for _, z := range []float64{f.min.Z, f.max.Z} {
				c := spin(geom.Vec3{X: x, Y: y, Z: z})
				lo = geom.Vec3{X: math.Min(lo.X, c.X), Y: math.Min(lo.Y, c.Y), Z: math.Min(lo.Z, c.Z)}
				hi = geom.Vec3{X: math.Max(hi.X, c.X), Y: math.Max(hi.Y, c.Y), Z: math.Max(hi.Z, c.Z)}
			}
		}
	}
	return &fakeSolid{min: lo, max: hi}
}

func (k *fakeKernel) ToMesh(s Solid) (*Mesh, error) {
	k.meshed++
	return &Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}, nil
}

func builderTube(t *testing.T) *profile.TubeProfile {
	t.Helper()
	p := profile.SquareTube(2.0, 0.125)
	return p
}

func bareMember(length float64) frame.FrameMember {
	return frame.FrameMember{
		Kind:   frame.HorizontalRailBottom,
		Face:   frame.FaceFront,
		Dir:    geom.Vec3{X: 1},
		Length: length,
	}
}

func TestBuildMemberBaseTube(t *testing.T) {
	k := &fakeKernel{}
	b := NewBuilder(k, builderTube(t))

	m := bareMember(500)
	solid, err := b.BuildMember(&frame.Recipe{Member: m, Axis: m.Axis(b.Profile)})
	require.NoError(t, err)

	min, max := solid.BoundingBox()
	assert.InDelta(t, 0, min.X, 1e-9)
	assert.InDelta(t, 500, max.X, 1e-9)
	assert.InDelta(t, -25.4, min.Y, 1e-9)
	assert.InDelta(t, 25.4, max.Y, 1e-9)
	assert.InDelta(t, -25.4, min.Z, 1e-9)
	assert.InDelta(t, 25.4, max.Z, 1e-9)

	// Outer box minus the bore, nothing else.
	assert.Equal(t, 2, k.boxes)
	assert.Equal(t, 1, k.diffs)
	assert.Zero(t, k.unions)
}

func TestBuildMemberFeatures(t *testing.T) {
	k := &fakeKernel{}
	b := NewBuilder(k, builderTube(t))
	m := bareMember(500)

	slotWidth := b.Profile.SlotWidth()
	recipe := &frame.Recipe{
		Member: m,
		Axis:   m.Axis(b.Profile),
		Slots: []joinery.SlotGeometry{{
			Joint:     "J1",
			Member:    m.Name(),
			Width:     slotWidth,
			Depth:     6.35,
			Length:    13,
			Position:  geom.Vec3{X: 250, Z: 25.4},
			Direction: geom.Vec3{Z: 1}, // out of the top face, toward the tab
			Along:     geom.Vec3{X: 1},
			Relief:    joinery.BuildReliefProfile(joinery.ReliefDogbone, slotWidth, 13, 1.5),
		}},
		Tabs: []joinery.TabGeometry{{
			Joint:     "J2",
			Member:    m.Name(),
			Width:     b.Profile.TabWidth(),
			Depth:     10,
			Thickness: 3.175,
			Position:  geom.Vec3{X: 500, Z: 23.8125},
			Direction: geom.Vec3{X: 1},
			Normal:    geom.Vec3{Z: 1},
		}},
		Holes: []frame.HolePosition{{
			Point:  geom.Vec3{X: 250},
			Normal: geom.Vec3{Y: -1},
			Spec:   frame.RivetHole(4.0),
		}},
	}

	solid, err := b.BuildMember(recipe)
	require.NoError(t, err)

	// Tube bore + slot + four dogbone drills + rivet hole.
	assert.Equal(t, 7, k.diffs)
	assert.Equal(t, 5, k.cylinders)
	assert.Equal(t, 1, k.unions)

	// The tab tongue reaches past the tube end.
	_, max := solid.BoundingBox()
	assert.InDelta(t, 510, max.X, 1e-9)
}

func TestBuildMemberDetectedSlotCutsWall(t *testing.T) {
	k := &fakeKernel{}
	p := builderTube(t)
	b := NewBuilder(k, p)

	// A post landing mid-span on the top face of a rail. The slot comes
	// straight from the detector and generator, not a hand-written fixture.
	rail := joinery.MemberAxis{
		ID: "rail", End: geom.Vec3{X: 1000},
		Width: p.Geometry.OuterWidth, Height: p.Geometry.OuterHeight,
	}
	post := joinery.MemberAxis{
		ID:    "post",
		Start: geom.Vec3{X: 500, Z: p.Geometry.OuterHeight / 2},
		End:   geom.Vec3{X: 500, Z: p.Geometry.OuterHeight/2 + 500},
		Width: p.Geometry.OuterWidth, Height: p.Geometry.OuterHeight,
	}

	joint, ok := joinery.NewDetector().FindIntersection(rail, post)
	require.True(t, ok)
	require.Equal(t, joinery.TJoint, joint.Type)

	_, slot := joinery.NewGenerator(p).Features(joint)
	require.NotNil(t, slot)
	assert.InDelta(t, 1, slot.Direction.Z, 1e-9, "cut direction points out of the top face")

	m := bareMember(1000)
	_, err := b.BuildMember(&frame.Recipe{
		Member: m,
		Axis:   rail,
		Slots:  []joinery.SlotGeometry{*slot},
	})
	require.NoError(t, err)

	// The top wall spans this z range; the slot cut (the first difference
	// after the bore) must pass all the way through it.
	wallTop := p.Geometry.OuterHeight / 2
	wallBottom := wallTop - p.Geometry.Wall
	require.Greater(t, len(k.cuts), 1)
	cut := k.cuts[1]
	assert.Less(t, cut.min.Z, wallBottom, "cut reaches below the wall")
	assert.Greater(t, cut.max.Z, wallTop, "cut clears the outer surface")
	assert.Less(t, cut.min.X, 500.0)
	assert.Greater(t, cut.max.X, 500.0)

	// Any relief drills cut the same wall.
	for _, c := range k.cuts[2:] {
		assert.Less(t, c.min.Z, wallBottom)
		assert.Greater(t, c.max.Z, wallTop)
	}
}

func TestBuildMemberTabCornerRadius(t *testing.T) {
	k := &fakeKernel{}
	b := NewBuilder(k, builderTube(t))
	m := bareMember(500)

	recipe := &frame.Recipe{
		Member: m,
		Axis:   m.Axis(b.Profile),
		Tabs: []joinery.TabGeometry{{
			Joint:        "J1",
			Member:       m.Name(),
			Width:        b.Profile.TabWidth(),
			Depth:        10,
			Thickness:    3.175,
			Position:     geom.Vec3{X: 500, Z: 23.8125},
			Direction:    geom.Vec3{X: 1},
			Normal:       geom.Vec3{Z: 1},
			CornerRadius: 0.5,
		}},
	}

	_, err := b.BuildMember(recipe)
	require.NoError(t, err)

	// Rounded tip: two boxes and two corner cylinders unioned, then the
	// tongue fused onto the tube.
	assert.Equal(t, 2, k.cylinders)
	assert.Equal(t, 4, k.unions)
}

func TestBuildMemberErrors(t *testing.T) {
	b := NewBuilder(&fakeKernel{}, builderTube(t))

	_, err := b.BuildMember(nil)
	assert.ErrorIs(t, err, ErrNilRecipe)

	m := bareMember(0)
	_, err = b.BuildMember(&frame.Recipe{Member: m})
	assert.Error(t, err)
}

func TestBuildCap(t *testing.T) {
	k := &fakeKernel{}
	p := builderTube(t)
	b := NewBuilder(k, p)

	gen := frame.NewCapGenerator(p)
	spec := gen.CapSpecFor(nil, geom.Vec3{}, geom.Vec3{Y: 1}, geom.Vec3{Z: 1}, frame.CapTabsTopBottom)
	spec.Notches = []joinery.Notch{{Center: geom.Vec2{X: 5}, Width: 4, Depth: 11}}

	ec := frame.EndCap{
		Spec:     spec,
		MemberID: "rail",
		End:      "end",
		Position: geom.Vec3{X: 1000},
		Normal:   geom.Vec3{X: 1},
	}

	solid, err := b.BuildCap(ec)
	require.NoError(t, err)

	// Plate, two edge tabs, one notch cut.
	assert.Equal(t, 4, k.boxes)
	assert.Equal(t, 2, k.unions)
	assert.Equal(t, 1, k.diffs)

	// Tabs overhang the plate across its height axis.
	min, max := solid.BoundingBox()
	overhang := spec.PlateHeight()/2 + spec.TabDepth
	span := math.Max(max.Y-min.Y, max.Z-min.Z)
	assert.InDelta(t, 2*overhang, span, 1e-9)
}

func TestBuildCapTooThickWalls(t *testing.T) {
	p := profile.SquareTube(1.0, 0.5) // walls meet in the middle
	b := NewBuilder(&fakeKernel{}, p)

	gen := frame.NewCapGenerator(p)
	ec := frame.EndCap{
		Spec:     gen.CapSpecFor(nil, geom.Vec3{}, geom.Vec3{Y: 1}, geom.Vec3{Z: 1}, frame.CapTabsNone),
		MemberID: "post",
		End:      "start",
		Normal:   geom.Vec3{Z: -1},
	}
	_, err := b.BuildCap(ec)
	assert.Error(t, err)
}

func TestMeshRecipe(t *testing.T) {
	k := &fakeKernel{}
	b := NewBuilder(k, builderTube(t))

	m := bareMember(300)
	mesh, err := b.MeshRecipe(&frame.Recipe{Member: m, Axis: m.Axis(b.Profile)})
	require.NoError(t, err)

	assert.Equal(t, m.Name(), mesh.PartName)
	assert.Equal(t, 1, mesh.TriangleCount())
	assert.Equal(t, 1, k.meshed)
}
