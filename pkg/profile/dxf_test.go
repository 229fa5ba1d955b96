package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelcab/tubeframe/pkg/geom"
)

// rectSegments returns the four edges of an axis-aligned rectangle.
func rectSegments(x0, y0, x1, y1 float64) []dxfSegment {
	return []dxfSegment{
		{start: geom.Vec2{X: x0, Y: y0}, end: geom.Vec2{X: x1, Y: y0}},
		{start: geom.Vec2{X: x1, Y: y0}, end: geom.Vec2{X: x1, Y: y1}},
		{start: geom.Vec2{X: x1, Y: y1}, end: geom.Vec2{X: x0, Y: y1}},
		{start: geom.Vec2{X: x0, Y: y1}, end: geom.Vec2{X: x0, Y: y0}},
	}
}

func TestChainSegmentsClosesRectangle(t *testing.T) {
	outlines := chainSegments(rectSegments(0, 0, 50, 50), 0.01)
	require.Len(t, outlines, 1)
	assert.Len(t, outlines[0], 4)
}

func TestChainSegmentsReversedEdges(t *testing.T) {
	segs := rectSegments(0, 0, 50, 50)
	// Flip two edges; chaining must still close the loop.
	segs[1].start, segs[1].end = segs[1].end, segs[1].start
	segs[3].start, segs[3].end = segs[3].end, segs[3].start

	outlines := chainSegments(segs, 0.01)
	require.Len(t, outlines, 1)
}

func TestChainSegmentsDropsOpenChain(t *testing.T) {
	segs := rectSegments(0, 0, 50, 50)[:3] // one edge missing
	outlines := chainSegments(segs, 0.01)
	assert.Empty(t, outlines)
}

func TestChainSegmentsTwoLoops(t *testing.T) {
	segs := append(rectSegments(0, 0, 50, 50), rectSegments(3, 3, 47, 47)...)
	outlines := chainSegments(segs, 0.01)
	assert.Len(t, outlines, 2)
}

func TestMeasureLoop(t *testing.T) {
	pts := []geom.Vec2{{X: -25, Y: -25}, {X: 25, Y: -25}, {X: 25, Y: 25}, {X: -25, Y: 25}}
	l := measureLoop(pts, 4.5)
	assert.InDelta(t, 50.0, l.width, 1e-9)
	assert.InDelta(t, 50.0, l.height, 1e-9)
	assert.Equal(t, 4.5, l.arcRadius)
}

func TestBulgeArcPointsSemicircle(t *testing.T) {
	// Bulge of 1.0 is a semicircle: chord 10 wide, apex 5 off the chord.
	pts := bulgeArcPoints(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0}, 1.0, 16)
	require.NotEmpty(t, pts)

	var maxY float64
	for _, p := range pts {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	assert.InDelta(t, 5.0, maxY, 0.05)
	assert.InDelta(t, 0.0, pts[0].X, 1e-9)
	assert.InDelta(t, 10.0, pts[len(pts)-1].X, 1e-6)
}

func TestImportDXFMissingFile(t *testing.T) {
	result := ImportDXF("/nonexistent/tube.dxf", "imported")
	assert.Nil(t, result.Profile)
	require.NotEmpty(t, result.Errors)
}
