// Package frame turns a declarative box-cabinet specification into frame
// members, runs joint detection over them, and hands per-member cut lists
// to a solid-modeling kernel.
package frame

import (
	"fmt"

	"github.com/google/uuid"
)

const mmPerInch = 25.4

// DimensionReference says how the overall box dimensions are measured.
type DimensionReference string

const (
	// Exterior measures outside edge to outside edge.
	Exterior DimensionReference = "exterior"
	// Interior measures inside edge to inside edge.
	Interior DimensionReference = "interior"
	// Centerline measures tube center to tube center.
	Centerline DimensionReference = "centerline"
)

// BoxSpec is the single source of truth for one cabinet frame. All
// dimensions in mm; use FromImperial for inch input.
type BoxSpec struct {
	ID string `json:"id"`

	Length float64 `json:"length_mm"`
	Height float64 `json:"height_mm"`
	Depth  float64 `json:"depth_mm"`

	FootHeight          float64 `json:"foot_height_mm"`
	CasterReinforcement bool    `json:"caster_reinforcement"`

	// On-center spacing for intermediate members. Zero disables them.
	VerticalOCFront    float64 `json:"vertical_oc_front_mm"`
	VerticalOCBack     float64 `json:"vertical_oc_back_mm"`
	HorizontalOCTop    float64 `json:"horizontal_oc_top_mm"`
	HorizontalOCBottom float64 `json:"horizontal_oc_bottom_mm"`

	Reference DimensionReference `json:"dimension_reference"`

	TabsEnabled   bool    `json:"tabs_enabled"`
	CapsEnabled   bool    `json:"caps_enabled"`
	TabDepthRatio float64 `json:"tab_depth_ratio"`

	PanelThicknessSides float64 `json:"panel_thickness_sides_mm"`
	PanelThicknessTop   float64 `json:"panel_thickness_top_mm"`
	PanelOffset         float64 `json:"panel_offset_mm"`

	RivetHoleDiameter float64 `json:"rivet_hole_diameter_mm"`
	RivetSpacing      float64 `json:"rivet_spacing_mm"`

	TubeProfileName string `json:"tube_profile_name"`
}

// DefaultBoxSpec returns the stock 96x32x24 inch cabinet.
func DefaultBoxSpec() *BoxSpec {
	return &BoxSpec{
		ID:                  uuid.New().String()[:8],
		Length:              96 * mmPerInch,
		Height:              32 * mmPerInch,
		Depth:               24 * mmPerInch,
		FootHeight:          1 * mmPerInch,
		VerticalOCFront:     48 * mmPerInch,
		VerticalOCBack:      24 * mmPerInch,
		HorizontalOCTop:     24 * mmPerInch,
		HorizontalOCBottom:  24 * mmPerInch,
		Reference:           Exterior,
		TabsEnabled:         true,
		CapsEnabled:         true,
		TabDepthRatio:       0.6,
		PanelThicknessSides: 1.5,
		PanelThicknessTop:   2.0,
		RivetHoleDiameter:   4.0,
		RivetSpacing:        150.0,
		TubeProfileName:     "2x2x0.125_A36",
	}
}

// FromImperial builds a spec from inch dimensions, keeping all other
// settings at their defaults.
func FromImperial(lengthIn, heightIn, depthIn float64) *BoxSpec {
	s := DefaultBoxSpec()
	s.Length = lengthIn * mmPerInch
	s.Height = heightIn * mmPerInch
	s.Depth = depthIn * mmPerInch
	return s
}

// Validate rejects specs that cannot produce a frame.
func (s *BoxSpec) Validate(tubeWidth float64) error {
	if s.Length <= 0 || s.Height <= 0 || s.Depth <= 0 {
		return fmt.Errorf("box dimensions must be positive, got %.1fx%.1fx%.1f",
			s.Length, s.Height, s.Depth)
	}
	min := 2 * tubeWidth
	if s.Length <= min || s.Height <= min || s.Depth <= min {
		return fmt.Errorf("box too small for %.1fmm tube: need more than %.1fmm per side", tubeWidth, min)
	}
	switch s.Reference {
	case Exterior, Interior, Centerline, "":
	default:
		return fmt.Errorf("unknown dimension reference %q", s.Reference)
	}
	if s.FootHeight < 0 {
		return fmt.Errorf("foot height must be non-negative, got %.1f", s.FootHeight)
	}
	return nil
}

// EffectiveDims resolves the reference mode into exterior dimensions.
func (s *BoxSpec) EffectiveDims(tubeWidth float64) (length, height, depth float64) {
	switch s.Reference {
	case Interior:
		return s.Length + 2*tubeWidth, s.Height + 2*tubeWidth, s.Depth + 2*tubeWidth
	case Centerline:
		return s.Length + tubeWidth, s.Height + tubeWidth, s.Depth + tubeWidth
	default:
		return s.Length, s.Height, s.Depth
	}
}

// VerticalCountFront is the number of intermediate vertical supports on the
// front face for the configured on-center spacing.
func (s *BoxSpec) VerticalCountFront(tubeWidth float64) int {
	return supportCount(s.Length, tubeWidth, s.VerticalOCFront)
}

// VerticalCountBack mirrors VerticalCountFront for the back face.
func (s *BoxSpec) VerticalCountBack(tubeWidth float64) int {
	return supportCount(s.Length, tubeWidth, s.VerticalOCBack)
}

// HorizontalCountTop is the number of top cross members.
func (s *BoxSpec) HorizontalCountTop(tubeWidth float64) int {
	return supportCount(s.Depth, tubeWidth, s.HorizontalOCTop)
}

// HorizontalCountBottom is the number of bottom cross members.
func (s *BoxSpec) HorizontalCountBottom(tubeWidth float64) int {
	return supportCount(s.Depth, tubeWidth, s.HorizontalOCBottom)
}

// supportCount fits intermediate members into the span at the given
// on-center spacing; the two corners already bound the span.
func supportCount(span, tubeWidth, onCenter float64) int {
	if onCenter <= 0 {
		return 0
	}
	usable := span - tubeWidth
	count := int(usable/onCenter) - 1
	if count < 0 {
		return 0
	}
	return count
}
