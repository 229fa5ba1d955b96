package frame

import (
	"fmt"

	"github.com/steelcab/tubeframe/pkg/geom"
)

// HoleKind classifies fastener holes.
type HoleKind string

const (
	HoleRivet       HoleKind = "rivet"
	HoleRivNut      HoleKind = "riv_nut"
	HoleBolt        HoleKind = "bolt"
	HoleCustom      HoleKind = "custom"
	HolePilot       HoleKind = "pilot"
	HoleCountersink HoleKind = "countersink"
)

// HoleSpec is one hole definition, diameter plus optional head relief.
type HoleSpec struct {
	Kind     HoleKind `json:"kind"`
	Diameter float64  `json:"diameter_mm"`
	Name     string   `json:"name"`

	Countersink         bool    `json:"countersink,omitempty"`
	CountersinkDiameter float64 `json:"countersink_diameter_mm,omitempty"`
	CountersinkAngle    float64 `json:"countersink_angle_deg,omitempty"`

	Counterbore         bool    `json:"counterbore,omitempty"`
	CounterboreDiameter float64 `json:"counterbore_diameter_mm,omitempty"`
	CounterboreDepth    float64 `json:"counterbore_depth_mm,omitempty"`
}

// RivetHole returns a clearance hole for the given rivet body diameter.
func RivetHole(rivetDiameter float64) HoleSpec {
	const clearance = 0.2
	return HoleSpec{
		Kind:     HoleRivet,
		Diameter: rivetDiameter + clearance,
		Name:     fmt.Sprintf("rivet_%.1fmm", rivetDiameter),
	}
}

// rivNutHoles maps thread size to install hole diameter.
var rivNutHoles = map[string]float64{
	"M3": 5.0, "M4": 6.0, "M5": 7.0, "M6": 9.0, "M8": 11.0, "M10": 13.0,
	"#6-32": 6.5, "#8-32": 7.5, "#10-24": 8.5, "#10-32": 8.5,
	"1/4-20": 9.5, "5/16-18": 11.0, "3/8-16": 13.0,
}

// RivNutHole returns the install hole for a threaded insert. Unknown thread
// sizes default to the M5 hole.
func RivNutHole(threadSize string) HoleSpec {
	d, ok := rivNutHoles[threadSize]
	if !ok {
		d = rivNutHoles["M5"]
		threadSize = "M5"
	}
	return HoleSpec{
		Kind:     HoleRivNut,
		Diameter: d,
		Name:     "rivnut_" + threadSize,
	}
}

var boltClearanceClose = map[string]float64{
	"M3": 3.2, "M4": 4.3, "M5": 5.3, "M6": 6.4, "M8": 8.4, "M10": 10.5, "M12": 13.0,
	"#6": 3.6, "#8": 4.4, "#10": 5.0, "1/4": 6.6, "5/16": 8.3, "3/8": 9.9,
}

var boltClearanceNormal = map[string]float64{
	"M3": 3.4, "M4": 4.5, "M5": 5.5, "M6": 6.6, "M8": 9.0, "M10": 11.0, "M12": 13.5,
	"#6": 3.8, "#8": 4.6, "#10": 5.3, "1/4": 7.0, "5/16": 8.7, "3/8": 10.3,
}

// BoltHole returns a clearance hole for a bolt. fit is "close" or "normal";
// countersunk adds flat-head relief sized off the hole diameter.
func BoltHole(boltSize, fit string, countersunk bool) HoleSpec {
	table := boltClearanceNormal
	if fit == "close" {
		table = boltClearanceClose
	}
	d, ok := table[boltSize]
	if !ok {
		d = table["M5"]
		boltSize = "M5"
	}
	spec := HoleSpec{
		Kind:     HoleBolt,
		Diameter: d,
		Name:     fmt.Sprintf("bolt_%s_%s", boltSize, fit),
	}
	if countersunk {
		spec.Countersink = true
		spec.CountersinkDiameter = d * 2
		spec.CountersinkAngle = 82
	}
	return spec
}

// HolePosition places one hole in 3D with its drill direction.
type HolePosition struct {
	Point  geom.Vec3 `json:"point"`
	Normal geom.Vec3 `json:"normal"`
	Spec   HoleSpec  `json:"spec"`
}

// LinearPattern spaces count holes evenly between start and end, honoring a
// margin at each end. A single hole is centered in the usable span.
func LinearPattern(spec HoleSpec, start, end, normal geom.Vec3, count int, margin float64) []HolePosition {
	dir := end.Sub(start)
	length := dir.Norm()
	if count < 1 || length < 1e-3 {
		return nil
	}
	dir = dir.Scale(1 / length)

	usable := length - 2*margin
	if usable <= 0 {
		return nil
	}

	var spacing, offset float64
	if count == 1 {
		offset = margin + usable/2
	} else {
		spacing = usable / float64(count-1)
		offset = margin
	}

	holes := make([]HolePosition, 0, count)
	for i := 0; i < count; i++ {
		holes = append(holes, HolePosition{
			Point:  start.Add(dir.Scale(offset + float64(i)*spacing)),
			Normal: normal,
			Spec:   spec,
		})
	}
	return holes
}

// SpacedPattern places a hole every spacing mm between start and end, with
// the row centered in the usable span.
func SpacedPattern(spec HoleSpec, start, end, normal geom.Vec3, spacing, margin float64) []HolePosition {
	dir := end.Sub(start)
	length := dir.Norm()
	if spacing <= 0 || length < 1e-3 {
		return nil
	}
	dir = dir.Scale(1 / length)

	usable := length - 2*margin
	if usable <= 0 {
		return nil
	}

	count := int(usable/spacing) + 1
	rowLength := float64(count-1) * spacing
	offset := margin + (usable-rowLength)/2

	holes := make([]HolePosition, 0, count)
	for i := 0; i < count; i++ {
		holes = append(holes, HolePosition{
			Point:  start.Add(dir.Scale(offset + float64(i)*spacing)),
			Normal: normal,
			Spec:   spec,
		})
	}
	return holes
}

// GridPattern replicates a linear pattern along a second axis, centered
// about the primary row.
func GridPattern(spec HoleSpec, start, end, normal geom.Vec3, count int, margin float64,
	dir2 geom.Vec3, count2 int, spacing2 float64) []HolePosition {

	primary := LinearPattern(spec, start, end, normal, count, margin)
	if len(primary) == 0 || count2 < 1 {
		return nil
	}

	offset0 := -float64(count2-1) * spacing2 / 2
	holes := make([]HolePosition, 0, len(primary)*count2)
	for _, h := range primary {
		for j := 0; j < count2; j++ {
			holes = append(holes, HolePosition{
				Point:  h.Point.Add(dir2.Scale(offset0 + float64(j)*spacing2)),
				Normal: normal,
				Spec:   spec,
			})
		}
	}
	return holes
}
