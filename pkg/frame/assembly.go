package frame

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/steelcab/tubeframe/pkg/geom"
	"github.com/steelcab/tubeframe/pkg/joinery"
	"github.com/steelcab/tubeframe/pkg/profile"
)

// Recipe is the per-member manufacturing handoff: the base tube, the
// features to cut away, and the features to fuse on. Feature order within
// each list is stable across regenerations.
type Recipe struct {
	Member FrameMember            `json:"member"`
	Axis   joinery.MemberAxis     `json:"axis"`
	Slots  []joinery.SlotGeometry `json:"slots,omitempty"`
	Tabs   []joinery.TabGeometry  `json:"tabs,omitempty"`
	Holes  []HolePosition         `json:"holes,omitempty"`
}

// Assembly drives the whole pipeline: spec to members to joints to
// features to per-member recipes. Everything downstream of the spec is a
// pure function of the spec and profile, so Generate may be called any
// number of times and always lands on the same result.
type Assembly struct {
	Spec    *BoxSpec
	Profile *profile.TubeProfile

	Detector  *joinery.Detector
	Generator *joinery.Generator
	Checker   *joinery.Checker
	Caps      *CapGenerator
	Logger    *slog.Logger

	members []FrameMember
	joints  []joinery.Joint
	recipes map[string]*Recipe
	caps    []EndCap

	generated bool
}

// NewAssembly wires an assembly with default detection, generation, and
// checking settings; the spec's tab depth ratio carries into the generator.
func NewAssembly(spec *BoxSpec, p *profile.TubeProfile) *Assembly {
	gen := joinery.NewGenerator(p)
	if spec.TabDepthRatio > 0 {
		gen.Depth = joinery.TabDepthPolicy{Ratio: spec.TabDepthRatio}
	}
	return &Assembly{
		Spec:      spec,
		Profile:   p,
		Detector:  joinery.NewDetector(),
		Generator: gen,
		Checker:   joinery.NewChecker(),
		Caps:      NewCapGenerator(p),
		Logger:    slog.Default(),
	}
}

// Generate lays out the frame, detects joints, and builds every member's
// recipe. Regenerating from the same spec produces identical results.
func (a *Assembly) Generate() error {
	if err := a.Spec.Validate(a.Profile.Geometry.OuterWidth); err != nil {
		return fmt.Errorf("box spec: %w", err)
	}
	if a.Spec.TabsEnabled {
		if err := a.Profile.ValidateForJoinery(); err != nil {
			return fmt.Errorf("profile %s: %w", a.Profile.Name, err)
		}
	}

	a.members = Layout(a.Spec, a.Profile)

	axes := make([]joinery.MemberAxis, len(a.members))
	a.recipes = make(map[string]*Recipe, len(a.members))
	for i, m := range a.members {
		axes[i] = m.Axis(a.Profile)
		a.recipes[m.Name()] = &Recipe{Member: m, Axis: axes[i]}
	}

	a.joints = a.Detector.DetectAll(axes)

	if a.Spec.TabsEnabled {
		for _, j := range a.joints {
			tab, slot := a.Generator.Features(j)
			if tab == nil {
				continue
			}
			if r, ok := a.recipes[tab.Member]; ok {
				r.Tabs = append(r.Tabs, *tab)
			}
			if r, ok := a.recipes[slot.Member]; ok {
				r.Slots = append(r.Slots, *slot)
			}
		}
	}

	a.generateRivetHoles()

	if a.Spec.CapsEnabled {
		a.caps = a.Caps.GenerateCaps(a.members, a.joints, a.IncomingTabs)
	} else {
		a.caps = nil
	}

	a.generated = true
	a.Logger.Info("frame generated",
		"members", len(a.members),
		"joints", len(a.joints),
		"caps", len(a.caps))
	return nil
}

// generateRivetHoles lays a rivet row along each front/back rail for panel
// attachment.
func (a *Assembly) generateRivetHoles() {
	if a.Spec.RivetSpacing <= 0 || a.Spec.RivetHoleDiameter <= 0 {
		return
	}
	spec := HoleSpec{
		Kind:     HoleRivet,
		Diameter: a.Spec.RivetHoleDiameter,
		Name:     fmt.Sprintf("rivet_%.1fmm", a.Spec.RivetHoleDiameter),
	}
	tw := a.Profile.Geometry.OuterWidth

	for _, m := range a.members {
		if m.Kind != HorizontalRailTop && m.Kind != HorizontalRailBottom {
			continue
		}
		normal := geom.Vec3{Y: -1}
		if m.Face == FaceBack {
			normal = geom.Vec3{Y: 1}
		}
		holes := SpacedPattern(spec, m.Position, m.End(), normal, a.Spec.RivetSpacing, tw)
		if r, ok := a.recipes[m.Name()]; ok {
			r.Holes = holes
		}
	}
}

// Members returns the generated frame members, generating if needed.
func (a *Assembly) Members() []FrameMember {
	a.ensure()
	return a.members
}

// Joints returns every detected joint.
func (a *Assembly) Joints() []joinery.Joint {
	a.ensure()
	return a.joints
}

// EndCaps returns the generated caps for open tube ends.
func (a *Assembly) EndCaps() []EndCap {
	a.ensure()
	return a.caps
}

// Recipe returns the manufacturing recipe for one member.
func (a *Assembly) Recipe(memberID string) (*Recipe, error) {
	a.ensure()
	r, ok := a.recipes[memberID]
	if !ok {
		return nil, fmt.Errorf("unknown member %q", memberID)
	}
	return r, nil
}

// Recipes returns all recipes in member-name order.
func (a *Assembly) Recipes() []*Recipe {
	a.ensure()
	names := make([]string, 0, len(a.recipes))
	for name := range a.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Recipe, len(names))
	for i, name := range names {
		out[i] = a.recipes[name]
	}
	return out
}

// IncomingTabs returns the tabs from other members that occupy the given
// member's walls near one of its ends. End caps must notch around them.
func (a *Assembly) IncomingTabs(memberID, end string) []joinery.TabGeometry {
	a.ensure()
	var tabs []joinery.TabGeometry
	for _, j := range a.joints {
		if j.SlotMember.ID != memberID || !j.AtSlotEnd() || endLabel(j.SlotParam) != end {
			continue
		}
		tab, _ := a.Generator.Features(j)
		if tab != nil {
			tabs = append(tabs, *tab)
		}
	}
	return tabs
}

// CheckInterference scans every generated tab and slot pair across the
// frame, generating first if needed.
func (a *Assembly) CheckInterference() []joinery.Interference {
	a.ensure()
	var tabs []joinery.TabGeometry
	var slots []joinery.SlotGeometry
	for _, r := range a.Recipes() {
		tabs = append(tabs, r.Tabs...)
		slots = append(slots, r.Slots...)
	}
	found := a.Checker.CheckAll(tabs, slots)
	for _, f := range found {
		a.Logger.Warn("feature interference",
			"kind", string(f.Kind),
			"a", f.FeatureA,
			"b", f.FeatureB)
	}
	return found
}

func (a *Assembly) ensure() {
	if !a.generated {
		if err := a.Generate(); err != nil {
			a.Logger.Error("frame generation failed", "err", err)
		}
	}
}
