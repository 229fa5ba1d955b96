package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/steelcab/tubeframe/pkg/frame"
	"github.com/steelcab/tubeframe/pkg/geom"
	"github.com/steelcab/tubeframe/pkg/joinery"
	"github.com/steelcab/tubeframe/pkg/profile"
)

// ErrNilRecipe is returned when a member recipe is missing.
var ErrNilRecipe = errors.New("kernel: nil recipe")

// cutOvershoot extends every boolean cut slightly past the surfaces it
// crosses so coplanar faces never leave a zero-thickness skin.
const cutOvershoot = 0.5

// Builder realizes frame recipes as solids through a kernel backend.
type Builder struct {
	Kernel  Kernel
	Profile *profile.TubeProfile
}

// NewBuilder returns a builder over the given backend and tube profile.
func NewBuilder(k Kernel, p *profile.TubeProfile) *Builder {
	return &Builder{Kernel: k, Profile: p}
}

// BuildMember realizes one member: the hollow tube extrusion, slot cuts
// with their corner relief, tab fuses, and hole drills, all in world
// coordinates.
func (b *Builder) BuildMember(r *frame.Recipe) (Solid, error) {
	if r == nil {
		return nil, ErrNilRecipe
	}
	if r.Member.Length <= 0 {
		return nil, fmt.Errorf("kernel: member %s has no length", r.Member.Name())
	}

	k := b.Kernel
	g := b.Profile.Geometry
	dir := r.Member.Dir
	u, v := planeBasis(dir)
	center := r.Member.Position.Add(dir.Scale(r.Member.Length / 2))

	outer := k.Box(g.OuterWidth, g.OuterHeight, r.Member.Length)
	inner := k.Box(g.InnerWidth(), g.InnerHeight(), r.Member.Length+2*cutOvershoot)
	solid := k.Difference(outer, inner)
	solid = Place(k, solid, u, v, dir, center)

	for _, s := range r.Slots {
		solid = b.cutSlot(solid, s)
	}
	for _, t := range r.Tabs {
		solid = b.fuseTab(solid, t)
	}
	for _, h := range r.Holes {
		solid = b.drillHole(solid, h, u, v)
	}
	return solid, nil
}

// cutSlot removes the slot opening through the wall, then the relief
// geometry that clears its corners.
func (b *Builder) cutSlot(solid Solid, s joinery.SlotGeometry) Solid {
	k := b.Kernel
	across := s.Along.Cross(s.Direction)
	depth := s.Depth + cutOvershoot
	// Direction points out of the face toward the mating tab, so the cut
	// runs from just past the surface back through the wall.
	at := s.Position.Sub(s.Direction.Scale((s.Depth - cutOvershoot) / 2))

	if r := s.Relief.CornerRound; s.Relief.Type == joinery.ReliefRadius &&
		r > 0 && 2*r < s.Width && 2*r < s.Length {
		return k.Difference(solid, b.roundedPocket(s.Width, s.Length, depth,
			s.Relief.CornerRound, across, s.Along, s.Direction, at))
	}

	cut := k.Box(s.Width, s.Length, depth)
	solid = k.Difference(solid, Place(k, cut, across, s.Along, s.Direction, at))

	switch s.Relief.Type {
	case joinery.ReliefDogbone:
		for _, c := range s.Relief.Circles {
			drill := k.Cylinder(depth, c.Radius)
			pos := s.Position.
				Add(across.Scale(c.Center.X)).
				Add(s.Along.Scale(c.Center.Y)).
				Sub(s.Direction.Scale((s.Depth - cutOvershoot) / 2))
			solid = k.Difference(solid, Place(k, drill, across, s.Along, s.Direction, pos))
		}
	case joinery.ReliefTbone:
		for _, n := range s.Relief.Notches {
			notch := k.Box(n.Width, n.Length, depth)
			pos := s.Position.
				Add(across.Scale(n.Center.X)).
				Add(s.Along.Scale(n.Center.Y)).
				Sub(s.Direction.Scale((s.Depth - cutOvershoot) / 2))
			solid = k.Difference(solid, Place(k, notch, across, s.Along, s.Direction, pos))
		}
	}
	return solid
}

// roundedPocket builds a width x length x depth pocket with its four
// corners rounded to radius r: two overlapping boxes plus corner
// cylinders, placed on the (x, y, z) frame at center.
func (b *Builder) roundedPocket(width, length, depth, r float64, x, y, z, at geom.Vec3) Solid {
	k := b.Kernel
	pocket := k.Union(
		k.Box(width, length-2*r, depth),
		k.Box(width-2*r, length, depth),
	)
	cx := width/2 - r
	cy := length/2 - r
	for _, corner := range []geom.Vec2{
		{X: cx, Y: cy}, {X: cx, Y: -cy}, {X: -cx, Y: cy}, {X: -cx, Y: -cy},
	} {
		cyl := k.Translate(k.Cylinder(depth, r), geom.Vec3{X: corner.X, Y: corner.Y})
		pocket = k.Union(pocket, cyl)
	}
	return Place(k, pocket, x, y, z, at)
}

// fuseTab adds the tab tongue, rooted slightly inside the wall so the
// union is watertight. A corner radius rounds the two tip corners.
func (b *Builder) fuseTab(solid Solid, t joinery.TabGeometry) Solid {
	k := b.Kernel
	across := t.Direction.Cross(t.Normal)
	depth := t.Depth + cutOvershoot
	at := t.Position.Add(t.Direction.Scale((t.Depth - cutOvershoot) / 2))

	var tongue Solid
	if r := t.CornerRadius; r > 0 && 2*r < t.Width && r < depth {
		// Shorten only the tip so the root stays square against the wall.
		tongue = k.Union(
			k.Translate(k.Box(t.Width, depth-r, t.Thickness), geom.Vec3{Y: -r / 2}),
			k.Box(t.Width-2*r, depth, t.Thickness),
		)
		cx := t.Width/2 - r
		cy := depth/2 - r
		for _, sign := range []float64{1, -1} {
			cyl := k.Translate(k.Cylinder(t.Thickness, r), geom.Vec3{X: sign * cx, Y: cy})
			tongue = k.Union(tongue, cyl)
		}
	} else {
		tongue = k.Box(t.Width, depth, t.Thickness)
	}
	return k.Union(solid, Place(k, tongue, across, t.Direction, t.Normal, at))
}

// drillHole cuts one hole through the near wall, with countersink or
// counterbore relief at the surface when the spec calls for it.
func (b *Builder) drillHole(solid Solid, h frame.HolePosition, u, v geom.Vec3) Solid {
	k := b.Kernel
	g := b.Profile.Geometry
	n := h.Normal

	// Half-extent of the tube along the drill axis.
	half := math.Abs(n.Dot(u))*g.OuterWidth/2 + math.Abs(n.Dot(v))*g.OuterHeight/2
	surface := h.Point.Add(n.Scale(half))

	hu, hv := planeBasis(n)
	drill := k.Cylinder(g.Wall+2*cutOvershoot, h.Spec.Diameter/2)
	solid = k.Difference(solid, Place(k, drill, hu, hv, n, surface.Sub(n.Scale(g.Wall/2))))

	spec := h.Spec
	if spec.Countersink && spec.CountersinkDiameter > spec.Diameter {
		angle := spec.CountersinkAngle
		if angle <= 0 {
			angle = 82
		}
		height := (spec.CountersinkDiameter - spec.Diameter) / 2 /
			math.Tan(angle*math.Pi/360)
		sink := k.Cone(height, spec.CountersinkDiameter/2, spec.Diameter/2)
		// Large face at the surface, tapering into the wall.
		solid = k.Difference(solid, Place(k, sink, hv, hu, n.Scale(-1),
			surface.Sub(n.Scale(height/2-cutOvershoot))))
	}
	if spec.Counterbore && spec.CounterboreDepth > 0 {
		bore := k.Cylinder(spec.CounterboreDepth+cutOvershoot, spec.CounterboreDiameter/2)
		solid = k.Difference(solid, Place(k, bore, hu, hv, n,
			surface.Sub(n.Scale((spec.CounterboreDepth-cutOvershoot)/2))))
	}
	return solid
}

// BuildCap realizes an end cap: the plate sized to the tube interior,
// retention tabs on the selected edges, notched wherever a member tab
// already occupies the wall.
func (b *Builder) BuildCap(c frame.EndCap) (Solid, error) {
	s := c.Spec
	if s.PlateWidth() <= 0 || s.PlateHeight() <= 0 {
		return nil, fmt.Errorf("kernel: cap %s plate does not fit the tube bore", c.Name())
	}

	k := b.Kernel
	// Notch centers were projected in the member-axis basis, which for a
	// start cap is the reverse of the outward normal.
	axis := c.Normal
	if c.End == "start" {
		axis = c.Normal.Scale(-1)
	}
	u, v := planeBasis(axis)
	plate := k.Box(s.PlateWidth(), s.PlateHeight(), s.CapThickness)

	plate = b.capTabs(plate, s)

	for _, n := range s.Notches {
		notch := k.Box(n.Width+2*cutOvershoot, n.Depth+2*cutOvershoot, s.CapThickness+2*cutOvershoot)
		plate = k.Difference(plate, k.Translate(notch, geom.Vec3{X: n.Center.X, Y: n.Center.Y}))
	}

	// Seat the plate just inside the tube end.
	at := c.Position.Sub(c.Normal.Scale(s.CapThickness / 2))
	return Place(k, plate, u, v, axis, at), nil
}

// capTabs fuses retention tabs onto the plate edges selected by the
// placement, in the plate's local frame (x across width, y across height).
func (b *Builder) capTabs(plate Solid, spec frame.CapSpec) Solid {
	k := b.Kernel

	addEdge := func(axis geom.Vec3, halfExtent, edgeLength float64) {
		for _, off := range spec.TabOffsets(edgeLength) {
			tab := k.Box(spec.TabWidth, spec.TabDepth+cutOvershoot, spec.CapThickness)
			along := geom.Vec3{X: axis.Y, Y: -axis.X}
			pos := axis.Scale(halfExtent + (spec.TabDepth-cutOvershoot)/2).
				Add(along.Scale(off))
			tab = Place(k, tab, along, axis, geom.Vec3{Z: 1}, pos)
			plate = k.Union(plate, tab)
		}
	}

	w := spec.PlateWidth()
	h := spec.PlateHeight()
	switch spec.Placement {
	case frame.CapTabsAllSides:
		addEdge(geom.Vec3{X: 1}, w/2, h)
		addEdge(geom.Vec3{X: -1}, w/2, h)
		addEdge(geom.Vec3{Y: 1}, h/2, w)
		addEdge(geom.Vec3{Y: -1}, h/2, w)
	case frame.CapTabsTopBottom:
		addEdge(geom.Vec3{Y: 1}, h/2, w)
		addEdge(geom.Vec3{Y: -1}, h/2, w)
	case frame.CapTabsLeftRight:
		addEdge(geom.Vec3{X: 1}, w/2, h)
		addEdge(geom.Vec3{X: -1}, w/2, h)
	}
	return plate
}

// MeshRecipe builds a member and tessellates it, tagging the mesh with the
// member name.
func (b *Builder) MeshRecipe(r *frame.Recipe) (*Mesh, error) {
	solid, err := b.BuildMember(r)
	if err != nil {
		return nil, err
	}
	mesh, err := b.Kernel.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("kernel: meshing %s: %w", r.Member.Name(), err)
	}
	mesh.PartName = r.Member.Name()
	return mesh, nil
}

// planeBasis returns unit vectors u, v such that (u, v, dir) is a
// right-handed frame.
func planeBasis(dir geom.Vec3) (u, v geom.Vec3) {
	ref := geom.Vec3{Z: 1}
	if math.Abs(dir.Z) > 0.9 {
		ref = geom.Vec3{X: 1}
	}
	u = dir.Cross(ref).Normalized()
	v = dir.Cross(u).Normalized()
	return u, v
}
