package joinery

import (
	"fmt"

	"github.com/steelcab/tubeframe/pkg/geom"
)

// InterferenceKind labels what collided.
type InterferenceKind string

const (
	TabTab   InterferenceKind = "tab_tab"
	TabSlot  InterferenceKind = "tab_slot"
	SlotSlot InterferenceKind = "slot_slot"
	CapTab   InterferenceKind = "cap_tab"
)

// Interference is a diagnostic record of two conflicting features. It never
// changes any geometry; callers decide whether a finding blocks the build.
type Interference struct {
	Kind       InterferenceKind `json:"kind"`
	FeatureA   string           `json:"feature_a"`
	FeatureB   string           `json:"feature_b"`
	Location   geom.Vec3        `json:"location"`
	Resolution string           `json:"resolution,omitempty"`
}

// Checker runs bounding-box conflict scans over generated features. The
// boxes are conservative: a reported conflict may be a false positive but a
// real overlap is always reported.
type Checker struct {
	// TabTolerance is the minimum clearance between tabs (mm).
	TabTolerance float64
	// MinSlotWeb is the minimum material left between two slots (mm).
	MinSlotWeb float64
}

// NewChecker returns a checker with 0.5mm tab clearance and a 3mm web.
func NewChecker() *Checker {
	return &Checker{TabTolerance: 0.5, MinSlotWeb: 3.0}
}

// CheckAll runs every pairwise scan and concatenates the findings.
func (c *Checker) CheckAll(tabs []TabGeometry, slots []SlotGeometry) []Interference {
	found := c.CheckTabs(tabs)
	found = append(found, c.CheckSlots(slots)...)
	return found
}

// CheckTabs flags tab pairs whose boxes come within TabTolerance.
func (c *Checker) CheckTabs(tabs []TabGeometry) []Interference {
	var found []Interference
	for i := range tabs {
		boxA := boxFromTab(tabs[i])
		for j := i + 1; j < len(tabs); j++ {
			if !boxA.Intersects(boxFromTab(tabs[j]), c.TabTolerance) {
				continue
			}
			found = append(found, Interference{
				Kind:       TabTab,
				FeatureA:   tabFeatureID(tabs[i]),
				FeatureB:   tabFeatureID(tabs[j]),
				Location:   tabs[i].Position.Mid(tabs[j].Position),
				Resolution: "offset the tabs or reduce tab width",
			})
		}
	}
	return found
}

// CheckSlots flags slot pairs separated by less than MinSlotWeb. The web is
// the strip of wall between two cuts; too thin and the wall tears out, so
// slots that merely come close are flagged too.
func (c *Checker) CheckSlots(slots []SlotGeometry) []Interference {
	var found []Interference
	for i := range slots {
		boxA := boxFromSlot(slots[i])
		for j := i + 1; j < len(slots); j++ {
			if !boxA.Intersects(boxFromSlot(slots[j]), c.MinSlotWeb) {
				continue
			}
			found = append(found, Interference{
				Kind:       SlotSlot,
				FeatureA:   slotFeatureID(slots[i]),
				FeatureB:   slotFeatureID(slots[j]),
				Location:   slots[i].Position.Mid(slots[j].Position),
				Resolution: fmt.Sprintf("slots too close, keep at least %.1fmm web", c.MinSlotWeb),
			})
		}
	}
	return found
}

// CheckCapTabs flags proposed end-cap tab positions that land on a member
// tab entering the same tube end. Positions are 2D in the cap plane spanned
// by u and v about origin.
func (c *Checker) CheckCapTabs(capTabs []geom.Vec2, memberTabs []TabGeometry, origin, u, v geom.Vec3) []Interference {
	var found []Interference
	for i, pos := range capTabs {
		for _, tab := range memberTabs {
			rel := tab.Position.Sub(origin)
			tx := rel.Dot(u)
			ty := rel.Dot(v)
			reach := tab.Width/2 + c.TabTolerance
			if abs(pos.X-tx) < reach && abs(pos.Y-ty) < reach {
				found = append(found, Interference{
					Kind:       CapTab,
					FeatureA:   fmt.Sprintf("cap-tab:%d", i),
					FeatureB:   tabFeatureID(tab),
					Location:   origin.Add(u.Scale(pos.X)).Add(v.Scale(pos.Y)),
					Resolution: "notch the cap or move the cap tab",
				})
				break
			}
		}
	}
	return found
}

// Notch is a rectangular cutout in an end cap, in cap-plane coordinates.
type Notch struct {
	Center geom.Vec2 `json:"center"`
	Width  float64   `json:"width_mm"`
	Depth  float64   `json:"depth_mm"`
}

// NotchPositions computes the cap notches needed to clear the tabs entering
// a tube end. Positions are projected onto the cap plane spanned by u and v
// about origin; clearance is added all around each tab.
func NotchPositions(memberTabs []TabGeometry, origin, u, v geom.Vec3, clearance float64) []Notch {
	notches := make([]Notch, 0, len(memberTabs))
	for _, tab := range memberTabs {
		rel := tab.Position.Sub(origin)
		notches = append(notches, Notch{
			Center: geom.Vec2{X: rel.Dot(u), Y: rel.Dot(v)},
			Width:  tab.Width + 2*clearance,
			Depth:  tab.Depth + clearance,
		})
	}
	return notches
}

// Feature boxes are axis-aligned and padded to the largest cross dimension,
// so a miss in the scan guarantees a miss in the real geometry.

func boxFromTab(tab TabGeometry) geom.AABB {
	end := tab.Position.Add(tab.Direction.Scale(tab.Depth))
	pad := tab.Width / 2
	if tab.Thickness/2 > pad {
		pad = tab.Thickness / 2
	}
	return geom.NewAABB(tab.Position, end).Expand(pad, pad, pad)
}

func boxFromSlot(slot SlotGeometry) geom.AABB {
	end := slot.Position.Add(slot.Direction.Scale(slot.Depth))
	pad := slot.Width / 2
	if slot.Length/2 > pad {
		pad = slot.Length / 2
	}
	return geom.NewAABB(slot.Position, end).Expand(pad, pad, pad)
}

func tabFeatureID(tab TabGeometry) string {
	return "tab:" + tab.Joint + "@" + tab.Member
}

func slotFeatureID(slot SlotGeometry) string {
	return "slot:" + slot.Joint + "@" + slot.Member
}
