package joinery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelcab/tubeframe/pkg/geom"
)

func makeTab(joint, member string, pos geom.Vec3) TabGeometry {
	return TabGeometry{
		Joint:     joint,
		Member:    member,
		Width:     2.975,
		Depth:     10,
		Thickness: 3.175,
		Position:  pos,
		Direction: geom.Vec3{Z: -1},
		Normal:    geom.Vec3{Y: 1},
	}
}

func makeSlot(joint, member string, pos geom.Vec3) SlotGeometry {
	return SlotGeometry{
		Joint:     joint,
		Member:    member,
		Width:     3.425,
		Depth:     6.35,
		Length:    13,
		Position:  pos,
		Direction: geom.Vec3{Z: 1},
		Along:     geom.Vec3{Y: 1},
	}
}

func TestCheckTabsDuplicate(t *testing.T) {
	c := NewChecker()

	// Two identical tabs occupy exactly the same space.
	tabs := []TabGeometry{
		makeTab("B>A", "B", geom.Vec3{X: 500, Y: 23.8, Z: 0}),
		makeTab("C>A", "C", geom.Vec3{X: 500, Y: 23.8, Z: 0}),
	}

	found := c.CheckTabs(tabs)
	require.Len(t, found, 1)
	assert.Equal(t, TabTab, found[0].Kind)
	assert.Equal(t, "tab:B>A@B", found[0].FeatureA)
	assert.Equal(t, "tab:C>A@C", found[0].FeatureB)
	assert.Equal(t, geom.Vec3{X: 500, Y: 23.8, Z: 0}, found[0].Location)
	assert.NotEmpty(t, found[0].Resolution)
}

func TestCheckTabsClearance(t *testing.T) {
	c := NewChecker()

	tests := []struct {
		name   string
		offset float64
		want   int
	}{
		// Boxes are padded by half the 3.175mm wall thickness each side.
		{"well separated", 100, 0},
		{"just outside tolerance", 4.0, 0},
		{"inside tolerance band", 3.5, 1},
		{"touching", 3.175, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs := []TabGeometry{
				makeTab("B>A", "B", geom.Vec3{}),
				makeTab("C>A", "C", geom.Vec3{X: tt.offset}),
			}
			assert.Len(t, c.CheckTabs(tabs), tt.want)
		})
	}
}

func TestCheckSlotsWeb(t *testing.T) {
	c := NewChecker()

	// Slot boxes span length/2 = 6.5 each side. Centers 20mm apart leave a
	// 7mm web; 15mm apart leave 2mm, under the 3mm minimum.
	tests := []struct {
		name   string
		offset float64
		want   int
	}{
		{"generous web", 20, 0},
		{"thin web", 15, 1},
		{"overlapping", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := []SlotGeometry{
				makeSlot("B>A", "A", geom.Vec3{}),
				makeSlot("C>A", "A", geom.Vec3{X: tt.offset}),
			}
			found := c.CheckSlots(slots)
			require.Len(t, found, tt.want)
			if tt.want > 0 {
				assert.Equal(t, SlotSlot, found[0].Kind)
			}
		})
	}
}

func TestCheckAllAggregates(t *testing.T) {
	c := NewChecker()

	tabs := []TabGeometry{
		makeTab("B>A", "B", geom.Vec3{}),
		makeTab("C>A", "C", geom.Vec3{}),
	}
	slots := []SlotGeometry{
		makeSlot("B>A", "A", geom.Vec3{}),
		makeSlot("C>A", "A", geom.Vec3{X: 15}),
	}

	found := c.CheckAll(tabs, slots)
	require.Len(t, found, 2)
	assert.Equal(t, TabTab, found[0].Kind)
	assert.Equal(t, SlotSlot, found[1].Kind)
}

func TestCheckAllCleanFrame(t *testing.T) {
	// Features from a real detection run on a simple frame must come back
	// clean: real overlaps are the exception, not the rule.
	p := twoInchTube(t)
	g := NewGenerator(p)
	d := NewDetector()
	c := NewChecker()

	members := []MemberAxis{
		horizontalRail("rail", 2000),
		verticalPost("post-a", 0, 800),
		verticalPost("post-b", 2000, 800),
	}

	var tabs []TabGeometry
	var slots []SlotGeometry
	for _, j := range d.DetectAll(members) {
		tab, slot := g.Features(j)
		if tab != nil {
			tabs = append(tabs, *tab)
			slots = append(slots, *slot)
		}
	}
	require.NotEmpty(t, tabs)

	assert.Empty(t, c.CheckAll(tabs, slots))
}

func TestCheckCapTabs(t *testing.T) {
	c := NewChecker()

	origin := geom.Vec3{X: 0, Y: 0, Z: 800}
	u := geom.Vec3{X: 1}
	v := geom.Vec3{Y: 1}

	memberTabs := []TabGeometry{
		makeTab("B>A", "B", geom.Vec3{X: 10, Y: 0, Z: 800}),
	}

	found := c.CheckCapTabs([]geom.Vec2{{X: 10, Y: 0}, {X: -20, Y: 0}}, memberTabs, origin, u, v)
	require.Len(t, found, 1)
	assert.Equal(t, CapTab, found[0].Kind)
	assert.Equal(t, "cap-tab:0", found[0].FeatureA)
}

func TestNotchPositions(t *testing.T) {
	origin := geom.Vec3{X: 0, Y: 0, Z: 800}
	u := geom.Vec3{X: 1}
	v := geom.Vec3{Y: 1}

	tabs := []TabGeometry{
		makeTab("B>A", "B", geom.Vec3{X: 10, Y: -5, Z: 800}),
	}

	notches := NotchPositions(tabs, origin, u, v, 1.0)
	require.Len(t, notches, 1)
	assert.InDelta(t, 10, notches[0].Center.X, 1e-9)
	assert.InDelta(t, -5, notches[0].Center.Y, 1e-9)
	assert.InDelta(t, 2.975+2, notches[0].Width, 1e-9)
	assert.InDelta(t, 10+1, notches[0].Depth, 1e-9)
}
