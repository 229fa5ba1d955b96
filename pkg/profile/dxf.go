package profile

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/steelcab/tubeframe/pkg/geom"
)

// ImportResult holds a profile measured from a DXF cross-section drawing
// plus any non-fatal issues encountered along the way.
type ImportResult struct {
	Profile  *TubeProfile
	Warnings []string
	Errors   []string
}

// dxfSegment is a line segment used to chain loose LINE/ARC entities into
// closed loops.
type dxfSegment struct {
	start geom.Vec2
	end   geom.Vec2
}

// loop is a closed outline with its measured extents.
type loop struct {
	points    []geom.Vec2
	width     float64
	height    float64
	arcRadius float64 // largest arc radius that contributed to this loop
}

// ImportDXF reads a tube cross-section drawing and measures a TubeProfile
// from it. The drawing must contain two concentric closed boundaries; the
// larger is taken as the outer wall, the smaller as the bore. Wall thickness
// comes from the width difference, corner radius from the largest arc on the
// outer boundary.
func ImportDXF(path, name string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var loops []loop
	var segments []dxfSegment
	var segArcRadius float64

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			pts := lwPolylinePoints(e)
			if len(pts) >= 3 {
				loops = append(loops, measureLoop(pts, 0))
			} else {
				result.Warnings = append(result.Warnings,
					"skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, dxfSegment{
				start: geom.Vec2{X: e.Start[0], Y: e.Start[1]},
				end:   geom.Vec2{X: e.End[0], Y: e.End[1]},
			})

		case *entity.Arc:
			pts := arcPoints(e, 16)
			for i := 0; i < len(pts)-1; i++ {
				segments = append(segments, dxfSegment{start: pts[i], end: pts[i+1]})
			}
			if e.Circle.Radius > segArcRadius {
				segArcRadius = e.Circle.Radius
			}

		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipped unsupported entity %T", ent))
		}
	}

	for _, pts := range chainSegments(segments, 0.01) {
		loops = append(loops, measureLoop(pts, segArcRadius))
	}

	if len(loops) < 2 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("expected outer and inner boundaries, found %d closed loop(s)", len(loops)))
		return result
	}

	// Largest loop is the outer wall, second largest the bore.
	sort.Slice(loops, func(i, j int) bool {
		return loops[i].width*loops[i].height > loops[j].width*loops[j].height
	})
	outer, inner := loops[0], loops[1]
	if len(loops) > 2 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("drawing has %d closed loops; using the two largest", len(loops)))
	}

	wall := (outer.width - inner.width) / 2
	wallH := (outer.height - inner.height) / 2
	if math.Abs(wall-wallH) > 0.05 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("wall thickness differs between axes (%.3f vs %.3f)", wall, wallH))
	}

	p := New(name, Geometry{
		OuterWidth:   outer.width,
		OuterHeight:  outer.height,
		Wall:         wall,
		CornerRadius: outer.arcRadius,
	})
	if err := p.Validate(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("measured geometry invalid: %v", err))
		return result
	}

	result.Profile = p
	return result
}

// lwPolylinePoints flattens an LWPOLYLINE to points, interpolating bulge arcs.
func lwPolylinePoints(lw *entity.LwPolyline) []geom.Vec2 {
	var pts []geom.Vec2
	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := geom.Vec2{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			next := lw.Vertices[(i+1)%len(lw.Vertices)]
			arc := bulgeArcPoints(current, geom.Vec2{X: next[0], Y: next[1]}, bulge, 16)
			pts = append(pts, arc[:len(arc)-1]...)
		} else {
			pts = append(pts, current)
		}
	}
	return pts
}

// bulgeArcPoints interpolates the arc between p1 and p2 described by a DXF
// bulge factor (tangent of a quarter of the included angle).
func bulgeArcPoints(p1, p2 geom.Vec2, bulge float64, numSegments int) []geom.Vec2 {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return []geom.Vec2{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	pts := make([]geom.Vec2, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, geom.Vec2{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}

// arcPoints converts a DXF ARC entity to a polyline.
func arcPoints(a *entity.Arc, numSegments int) []geom.Vec2 {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]geom.Vec2, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = geom.Vec2{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return pts
}

// chainSegments connects loose segments into closed outlines. tolerance is
// the maximum endpoint gap that still counts as connected.
func chainSegments(segs []dxfSegment, tolerance float64) [][]geom.Vec2 {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]geom.Vec2

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []geom.Vec2{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		closed := len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1], tolerance)
		if closed {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

func pointsClose(a, b geom.Vec2, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}

// measureLoop computes the bounding extents of a closed outline.
func measureLoop(pts []geom.Vec2, arcRadius float64) loop {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return loop{
		points:    pts,
		width:     maxX - minX,
		height:    maxY - minY,
		arcRadius: arcRadius,
	}
}
