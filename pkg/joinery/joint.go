package joinery

import (
	"fmt"

	"github.com/steelcab/tubeframe/pkg/geom"
)

// JointType classifies how two members meet.
type JointType string

const (
	TJoint JointType = "t_joint" // perpendicular, one member ends at the other
	Corner JointType = "corner"  // perpendicular, both members end at the joint
	Cross  JointType = "cross"   // perpendicular, members pass through each other
	Inline JointType = "inline"  // parallel axes, butt joint or continuation
	Skew   JointType = "skew"    // non-orthogonal intersection
)

// Face names a flat face of a rectangular tube.
type Face string

const (
	FaceTop    Face = "top"
	FaceBottom Face = "bottom"
	FaceLeft   Face = "left"
	FaceRight  Face = "right"
)

// endParamTol marks a normalized parameter as "at an end" of a member.
const endParamTol = 0.01

// Joint is the result of pairwise analysis between two member axes.
// SlotMember receives the slot; TabMember carries the tab. Which of the
// two original members ends up in which role is decided by classification,
// not by argument order.
type Joint struct {
	Type JointType `json:"joint_type"`

	SlotMember MemberAxis `json:"member_a"` // receives the slot
	TabMember  MemberAxis `json:"member_b"` // carries the tab

	Point     geom.Vec3 `json:"intersection_point"`
	SlotParam float64   `json:"param_a"` // along SlotMember, clamped to [0,1]
	TabParam  float64   `json:"param_b"` // along TabMember, clamped to [0,1]

	TabFace  Face `json:"tab_face"`
	SlotFace Face `json:"slot_face"`

	// Warning carries a review-level diagnostic, e.g. for skew joints whose
	// generated features are not guaranteed to sit flush on a flat face.
	Warning string `json:"warning,omitempty"`
}

// ID returns a deterministic identifier for the joint, stable across
// detection passes over the same member set.
func (j Joint) ID() string {
	return fmt.Sprintf("%s>%s", j.TabMember.ID, j.SlotMember.ID)
}

// AtSlotEnd reports whether the joint sits at an end of the slot member.
func (j Joint) AtSlotEnd() bool {
	return j.SlotParam < endParamTol || j.SlotParam > 1-endParamTol
}

// AtTabEnd reports whether the joint sits at an end of the tab member.
func (j Joint) AtTabEnd() bool {
	return j.TabParam < endParamTol || j.TabParam > 1-endParamTol
}

// GeneratesFeatures reports whether the joint type produces a tab/slot
// pair. Inline joints never do.
func (j Joint) GeneratesFeatures() bool {
	return j.Type != Inline
}
