package joinery

import (
	"strings"

	"github.com/steelcab/tubeframe/pkg/geom"
)

// ReliefType selects the corner treatment for slots. Square corners cannot
// be cut by a round tool, so every process except wire EDM needs one of the
// relief strategies for the tab to seat fully.
type ReliefType string

const (
	ReliefNone    ReliefType = "none"
	ReliefDogbone ReliefType = "dogbone"
	ReliefRadius  ReliefType = "radius"
	ReliefTbone   ReliefType = "tbone"
)

// DefaultReliefRadius in mm, matched to a typical fiber laser kerf.
const DefaultReliefRadius = 1.5

// ReliefProfile is the cut-ready outline for one slot in its local frame:
// width along local X, length along local Y, opening centered at the origin.
// Circles and Notches are extra material to remove beyond the rectangle.
type ReliefProfile struct {
	Type        ReliefType     `json:"type"`
	Width       float64        `json:"width_mm"`
	Length      float64        `json:"length_mm"`
	Radius      float64        `json:"radius_mm"`
	Circles     []ReliefCircle `json:"circles,omitempty"`
	Notches     []ReliefNotch  `json:"notches,omitempty"`
	CornerRound float64        `json:"corner_round_mm,omitempty"`
}

// ReliefCircle is a circular cutout in the slot's local XY frame.
type ReliefCircle struct {
	Center geom.Vec2 `json:"center"`
	Radius float64   `json:"radius_mm"`
}

// ReliefNotch is a rectangular cutout in the slot's local XY frame.
type ReliefNotch struct {
	Center geom.Vec2 `json:"center"`
	Width  float64   `json:"width_mm"`
	Length float64   `json:"length_mm"`
}

// ClampReliefRadius keeps the relief radius inside the slot outline.
func ClampReliefRadius(radius, slotWidth, slotLength float64) float64 {
	if radius < 0 {
		return 0
	}
	if h := slotWidth / 2; radius > h {
		radius = h
	}
	if h := slotLength / 2; radius > h {
		radius = h
	}
	return radius
}

// BuildReliefProfile turns a nominal rectangular slot outline into a
// cuttable profile using the given strategy. Pure geometry, no kernel.
func BuildReliefProfile(reliefType ReliefType, slotWidth, slotLength, radius float64) ReliefProfile {
	r := ClampReliefRadius(radius, slotWidth, slotLength)

	p := ReliefProfile{
		Type:   reliefType,
		Width:  slotWidth,
		Length: slotLength,
		Radius: r,
	}
	if r <= 0 {
		p.Type = ReliefNone
		return p
	}

	halfW := slotWidth / 2
	halfL := slotLength / 2

	switch reliefType {
	case ReliefDogbone:
		// Circle centers sit inward of each corner by the radius so the
		// circle grazes the corner and clears it for a square tab.
		p.Circles = []ReliefCircle{
			{Center: geom.Vec2{X: halfW - r, Y: halfL - r}, Radius: r},
			{Center: geom.Vec2{X: halfW - r, Y: -halfL + r}, Radius: r},
			{Center: geom.Vec2{X: -halfW + r, Y: halfL - r}, Radius: r},
			{Center: geom.Vec2{X: -halfW + r, Y: -halfL + r}, Radius: r},
		}
	case ReliefTbone:
		// One bar past each short end, overhanging the slot sides by the
		// radius.
		p.Notches = []ReliefNotch{
			{Center: geom.Vec2{X: 0, Y: halfL}, Width: slotWidth + 2*r, Length: 2 * r},
			{Center: geom.Vec2{X: 0, Y: -halfL}, Width: slotWidth + 2*r, Length: 2 * r},
		}
	case ReliefRadius:
		// Rounded slot corners; the mating tab carries the same radius.
		p.CornerRound = r
	default:
		p.Type = ReliefNone
	}

	return p
}

// RecommendReliefType picks a relief strategy for a cutting process.
// Radius relief suits processes with a small, controllable kerf; dogbone
// suits processes that cannot turn a sharp inside corner.
func RecommendReliefType(process string, tabCornerRadius float64) ReliefType {
	if tabCornerRadius > 0.1 {
		return ReliefRadius
	}
	switch strings.ToLower(process) {
	case "laser", "fiber laser", "co2 laser", "waterjet":
		return ReliefRadius
	case "plasma", "cnc", "mill", "router":
		return ReliefDogbone
	}
	return ReliefRadius
}
