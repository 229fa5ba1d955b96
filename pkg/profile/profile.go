// Package profile models rectangular tube cross-sections together with the
// fabricator-specific tolerances that drive tab/slot dimensioning. Profiles
// are immutable value objects: build one, validate it, then share it freely.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Validation errors. ErrNotJoinable marks a profile that is fine as a plain
// tube but whose tolerances leave no positive tab/slot fit clearance.
var (
	ErrInvalidGeometry  = errors.New("profile: invalid geometry")
	ErrInvalidTolerance = errors.New("profile: invalid tolerance")
	ErrNotJoinable      = errors.New("profile: not usable for tab/slot joinery")
)

// Geometry holds the cross-section dimensions of a rectangular tube.
// All values in mm.
type Geometry struct {
	OuterWidth  float64 `json:"outer_width_mm"`
	OuterHeight float64 `json:"outer_height_mm"`
	Wall        float64 `json:"wall_thickness_mm"`

	// CornerRadius is the outer corner radius. InnerCornerRadius defaults
	// to max(0, CornerRadius - Wall) when left at zero with a rounded outer
	// corner; set InnerCornerRadiusSet to override it explicitly.
	CornerRadius         float64 `json:"corner_radius_mm"`
	InnerCornerRadius    float64 `json:"inner_corner_radius_mm,omitempty"`
	InnerCornerRadiusSet bool    `json:"inner_corner_radius_set,omitempty"`
}

// InnerWidth returns the interior width of the tube.
func (g Geometry) InnerWidth() float64 { return g.OuterWidth - 2*g.Wall }

// InnerHeight returns the interior height of the tube.
func (g Geometry) InnerHeight() float64 { return g.OuterHeight - 2*g.Wall }

// EffectiveInnerCornerRadius returns the explicit inner radius when set,
// otherwise the derived outer radius minus wall, clamped to zero.
func (g Geometry) EffectiveInnerCornerRadius() float64 {
	if g.InnerCornerRadiusSet {
		return g.InnerCornerRadius
	}
	r := g.CornerRadius - g.Wall
	if r < 0 {
		return 0
	}
	return r
}

// CrossSectionArea returns the solid material area of the cross-section
// in mm², ignoring corner radii.
func (g Geometry) CrossSectionArea() float64 {
	return g.OuterWidth*g.OuterHeight - g.InnerWidth()*g.InnerHeight()
}

// Tolerances are the fabricator-supplied adjustments for a given
// material/process combination. All values in mm and non-negative.
type Tolerances struct {
	SlotClearance      float64 `json:"slot_clearance_mm"`       // added to slot width
	TabUndersize       float64 `json:"tab_undersize_mm"`        // removed from tab width
	KerfCompensation   float64 `json:"kerf_compensation_mm"`    // half kerf width
	CornerReliefRadius float64 `json:"corner_relief_radius_mm"` // slot corner relief
	FinishAllowance    float64 `json:"finish_allowance_mm"`     // per side, e.g. powder coat
}

// TotalClearance returns the designed gap between a tab and its slot.
func (t Tolerances) TotalClearance() float64 {
	return t.SlotClearance + t.TabUndersize + 2*t.KerfCompensation
}

// DefaultTolerances returns values typical for fiber-laser cut mild steel.
func DefaultTolerances() Tolerances {
	return Tolerances{
		SlotClearance:      0.10,
		TabUndersize:       0.05,
		KerfCompensation:   0.15,
		CornerReliefRadius: 1.5,
	}
}

// Material carries the data needed for weight estimates and the BOM.
type Material struct {
	Grade   string  `json:"grade"`
	Density float64 `json:"density_kg_m3"`
}

// DefaultMaterial returns A36 mild steel.
func DefaultMaterial() Material {
	return Material{Grade: "A36", Density: 7850.0}
}

// Metadata tracks where the profile numbers came from.
type Metadata struct {
	Manufacturer   string `json:"manufacturer,omitempty"`
	CuttingProcess string `json:"cutting_process,omitempty"`
	VerifiedDate   string `json:"verified_date,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// TubeProfile is the complete tube definition: geometry plus the tolerances
// that travel with it. Construct once and treat as read-only.
type TubeProfile struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Geometry    Geometry   `json:"geometry"`
	Tolerances  Tolerances `json:"tolerances"`
	Material    Material   `json:"material"`
	Metadata    Metadata   `json:"metadata"`
}

// New creates a profile with default tolerances and material.
func New(name string, g Geometry) *TubeProfile {
	return &TubeProfile{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Geometry:   g,
		Tolerances: DefaultTolerances(),
		Material:   DefaultMaterial(),
	}
}

// SlotWidth returns the width to cut for a slot receiving this profile's
// wall: wall + slot clearance + kerf compensation.
func (p *TubeProfile) SlotWidth() float64 {
	return p.Geometry.Wall + p.Tolerances.SlotClearance + p.Tolerances.KerfCompensation
}

// TabWidth returns the width of a tab protruding from this profile's wall:
// wall - tab undersize - kerf compensation.
func (p *TubeProfile) TabWidth() float64 {
	return p.Geometry.Wall - p.Tolerances.TabUndersize - p.Tolerances.KerfCompensation
}

// FitClearance returns SlotWidth - TabWidth. Joinery requires it positive.
func (p *TubeProfile) FitClearance() float64 {
	return p.SlotWidth() - p.TabWidth()
}

// TabDepth returns the depth a tab should extend into a mating member of
// the given cross-section width. Ratio is conventionally 0.5-0.75.
func (p *TubeProfile) TabDepth(matingWidth, ratio float64) float64 {
	return matingWidth * ratio
}

// WeightPerMeter returns the member weight in kg per metre of length.
func (p *TubeProfile) WeightPerMeter() float64 {
	areaM2 := p.Geometry.CrossSectionArea() * 1e-6
	return areaM2 * p.Material.Density
}

// Validate checks the profile for plain-tube use: positive outer dimensions,
// a wall that leaves an interior, and non-negative tolerances.
func (p *TubeProfile) Validate() error {
	g := p.Geometry
	if g.OuterWidth <= 0 || g.OuterHeight <= 0 {
		return fmt.Errorf("%w: outer dimensions %.3fx%.3f must be positive",
			ErrInvalidGeometry, g.OuterWidth, g.OuterHeight)
	}
	if g.Wall <= 0 {
		return fmt.Errorf("%w: wall thickness %.3f must be positive", ErrInvalidGeometry, g.Wall)
	}
	minOuter := g.OuterWidth
	if g.OuterHeight < minOuter {
		minOuter = g.OuterHeight
	}
	if g.Wall >= minOuter/2 {
		return fmt.Errorf("%w: wall %.3f leaves no interior in %.3fx%.3f tube",
			ErrInvalidGeometry, g.Wall, g.OuterWidth, g.OuterHeight)
	}
	if g.CornerRadius < 0 {
		return fmt.Errorf("%w: corner radius %.3f is negative", ErrInvalidGeometry, g.CornerRadius)
	}

	tol := p.Tolerances
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"slot clearance", tol.SlotClearance},
		{"tab undersize", tol.TabUndersize},
		{"kerf compensation", tol.KerfCompensation},
		{"corner relief radius", tol.CornerReliefRadius},
		{"finish allowance", tol.FinishAllowance},
	} {
		if v.val < 0 {
			return fmt.Errorf("%w: %s %.3f is negative", ErrInvalidTolerance, v.name, v.val)
		}
	}
	return nil
}

// ValidateForJoinery runs Validate and additionally enforces the fit
// invariant SlotWidth > TabWidth. A profile failing only the fit invariant
// is still usable as a plain tube.
func (p *TubeProfile) ValidateForJoinery() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.TabWidth() <= 0 {
		return fmt.Errorf("%w: tab width %.3f is not positive", ErrNotJoinable, p.TabWidth())
	}
	if p.SlotWidth() <= p.TabWidth() {
		return fmt.Errorf("%w: slot width %.3f <= tab width %.3f",
			ErrNotJoinable, p.SlotWidth(), p.TabWidth())
	}
	return nil
}

// MarshalIndentJSON serializes the profile to pretty-printed JSON.
func (p *TubeProfile) MarshalIndentJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// FromJSON parses a profile from JSON bytes and validates it.
func FromJSON(data []byte) (*TubeProfile, error) {
	var p TubeProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: decode: %w", err)
	}
	if p.Name == "" {
		return nil, errors.New("profile: missing name")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *TubeProfile) String() string {
	g := p.Geometry
	return fmt.Sprintf("TubeProfile(%q, %gx%gx%gmm)", p.Name, g.OuterWidth, g.OuterHeight, g.Wall)
}
