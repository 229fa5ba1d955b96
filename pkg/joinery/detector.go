package joinery

import (
	"log/slog"
	"math"

	"github.com/steelcab/tubeframe/pkg/geom"
)

// Classification thresholds on |dot| of the two member directions.
const (
	parallelDot      = 0.99 // above: axes are parallel (inline)
	perpendicularDot = 0.01 // below: axes are perpendicular
)

// DefaultTolerance is the centerline proximity (mm) within which two
// members count as meeting.
const DefaultTolerance = 1.0

// Detector finds and classifies joints between member axes.
//
// The zero value is not ready to use; call NewDetector. Tolerance widens
// both the along-axis margin and the centerline distance test, on top of
// the allowance already made for each tube's cross-section width.
type Detector struct {
	Tolerance float64
	Logger    *slog.Logger
}

// NewDetector returns a detector with the default 1mm tolerance.
func NewDetector() *Detector {
	return &Detector{Tolerance: DefaultTolerance, Logger: slog.Default()}
}

// DetectAll runs the pairwise O(N²) scan over all members and returns every
// joint found. Degenerate members cannot participate in any joint; they are
// skipped with a diagnostic and the rest of the frame is still processed.
// The returned set is independent of input ordering up to slice order.
func (d *Detector) DetectAll(members []MemberAxis) []Joint {
	usable := make([]MemberAxis, 0, len(members))
	for _, m := range members {
		if m.IsDegenerate() {
			d.logger().Warn("skipping degenerate member",
				"member", m.ID, "length_mm", m.Length())
			continue
		}
		usable = append(usable, m)
	}

	var joints []Joint
	for i := 0; i < len(usable); i++ {
		for j := i + 1; j < len(usable); j++ {
			if joint, ok := d.FindIntersection(usable[i], usable[j]); ok {
				joints = append(joints, joint)
			}
		}
	}
	return joints
}

// FindIntersection tests a single pair of members for a joint. The result
// describes the same physical joint regardless of argument order: the
// tab/slot role assignment follows the end rule, with lexicographic member
// ID as the documented tie-break (greater ID carries the tab) whenever the
// end rule does not single out one member.
func (d *Detector) FindIntersection(a, b MemberAxis) (Joint, bool) {
	if a.IsDegenerate() || b.IsDegenerate() {
		return Joint{}, false
	}

	lenA := a.Length()
	lenB := b.Length()
	dirA := a.Direction()
	dirB := b.Direction()

	tA, tB, dist := geom.ClosestParamsOnLines(a.Start, dirA, b.Start, dirB)

	paramA := tA / lenA
	paramB := tB / lenB

	// Allow the closest approach to fall slightly off-segment: a member's
	// cross-section still reaches the joint when its centerline stops half
	// a tube width short.
	marginA := (a.Width/2 + d.Tolerance) / lenA
	marginB := (b.Width/2 + d.Tolerance) / lenB
	if paramA < -marginA || paramA > 1+marginA {
		return Joint{}, false
	}
	if paramB < -marginB || paramB > 1+marginB {
		return Joint{}, false
	}

	// The centerlines need not touch: the tubes overlap when the gap is
	// within the two half-widths plus tolerance.
	if dist > d.Tolerance+(a.Width+b.Width)/2 {
		return Joint{}, false
	}

	paramA = geom.Clamp01(paramA)
	paramB = geom.Clamp01(paramB)

	aEnds := paramA < endParamTol || paramA > 1-endParamTol
	bEnds := paramB < endParamTol || paramB > 1-endParamTol

	jointType := classify(math.Abs(dirA.Dot(dirB)), aEnds, bEnds)

	// Tab/slot role assignment: the member that terminates at the joint
	// carries the tab. When both or neither terminate, the member with the
	// lexicographically greater ID carries the tab so that the choice does
	// not depend on scan order.
	var slotM, tabM MemberAxis
	var slotParam, tabParam float64
	switch {
	case bEnds && !aEnds:
		slotM, tabM = a, b
		slotParam, tabParam = paramA, paramB
	case aEnds && !bEnds:
		slotM, tabM = b, a
		slotParam, tabParam = paramB, paramA
	case b.ID > a.ID:
		slotM, tabM = a, b
		slotParam, tabParam = paramA, paramB
	default:
		slotM, tabM = b, a
		slotParam, tabParam = paramB, paramA
	}

	joint := Joint{
		Type:       jointType,
		SlotMember: slotM,
		TabMember:  tabM,
		Point:      slotM.PointAt(slotParam),
		SlotParam:  slotParam,
		TabParam:   tabParam,
		TabFace:    FaceTop,
		SlotFace:   FaceTop,
	}

	if jointType == Skew {
		joint.Warning = "skew joint: tab/slot faces may not sit flush; review before cutting"
		d.logger().Warn("skew joint needs review",
			"tab", tabM.ID, "slot", slotM.ID)
	}

	return joint, true
}

// classify maps the direction alignment and end conditions onto a joint
// type. absDot is |dirA · dirB|.
func classify(absDot float64, aEnds, bEnds bool) JointType {
	switch {
	case absDot > parallelDot:
		return Inline
	case absDot < perpendicularDot:
		switch {
		case aEnds && bEnds:
			return Corner
		case aEnds || bEnds:
			return TJoint
		default:
			return Cross
		}
	default:
		return Skew
	}
}

func (d *Detector) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
