package export

import (
	"testing"

	"github.com/steelcab/tubeframe/pkg/frame"
	"github.com/steelcab/tubeframe/pkg/geom"
	"github.com/steelcab/tubeframe/pkg/joinery"
	"github.com/steelcab/tubeframe/pkg/profile"
)

// buildTestRecipes returns a handful of recipes with a deliberate rollup
// shape: two identical rails, one post, and one rail with extra features
// that must not merge with the plain pair.
func buildTestRecipes() ([]*frame.Recipe, *profile.TubeProfile) {
	p := profile.SquareTube(2.0, 0.125)

	rail := func(index int) *frame.Recipe {
		m := frame.FrameMember{
			Kind:   frame.HorizontalRailBottom,
			Face:   frame.FaceFront,
			Dir:    geom.Vec3{X: 1},
			Length: 2438.4,
			Index:  index,
		}
		return &frame.Recipe{Member: m, Axis: m.Axis(p)}
	}

	r1 := rail(1)
	r2 := rail(2)

	slotted := rail(3)
	slotted.Slots = []joinery.SlotGeometry{{Joint: "A>B", Member: slotted.Member.Name()}}
	slotted.Holes = []frame.HolePosition{{Spec: frame.RivetHole(4.0)}}

	post := frame.FrameMember{
		Kind:   frame.CornerVertical,
		Face:   frame.FaceFront,
		Dir:    geom.Vec3{Z: 1},
		Length: 711.2,
		Index:  1,
	}
	tabbed := &frame.Recipe{Member: post, Axis: post.Axis(p)}
	tabbed.Tabs = []joinery.TabGeometry{{Joint: "B>C", Member: post.Name()}}

	return []*frame.Recipe{r1, slotted, tabbed, r2}, p
}

func TestBuildCutListRollup(t *testing.T) {
	recipes, p := buildTestRecipes()
	list := BuildCutList(recipes, p)

	if got := list.PieceCount(); got != 4 {
		t.Fatalf("PieceCount() = %d, want 4", got)
	}
	if len(list.Items) != 3 {
		t.Fatalf("got %d items, want 3 (plain rails merged, slotted rail and post separate)", len(list.Items))
	}

	// Sorted by kind: corner_vertical first, then the two rail rows with
	// the featureless pair ahead of the slotted one.
	if list.Items[0].Kind != string(frame.CornerVertical) {
		t.Errorf("first item kind = %s, want %s", list.Items[0].Kind, frame.CornerVertical)
	}
	pair := list.Items[1]
	if pair.Quantity != 2 {
		t.Errorf("plain rail quantity = %d, want 2", pair.Quantity)
	}
	if len(pair.Members) != 2 || pair.Members[0] >= pair.Members[1] {
		t.Errorf("rolled-up members not sorted: %v", pair.Members)
	}
	if slotted := list.Items[2]; slotted.SlotCount != 1 || slotted.HoleCount != 1 {
		t.Errorf("slotted rail counts = %d slots %d holes, want 1/1", slotted.SlotCount, slotted.HoleCount)
	}
}

func TestBuildCutListTotals(t *testing.T) {
	recipes, p := buildTestRecipes()
	list := BuildCutList(recipes, p)

	wantLength := 3*2438.4 + 711.2
	if got := list.TotalLength(); got < wantLength-0.01 || got > wantLength+0.01 {
		t.Errorf("TotalLength() = %.2f, want %.2f", got, wantLength)
	}

	wantWeight := p.WeightPerMeter() * wantLength / 1000
	if got := list.TotalWeight(); got < wantWeight-0.01 || got > wantWeight+0.01 {
		t.Errorf("TotalWeight() = %.3f, want %.3f", got, wantWeight)
	}
}

func TestBuildCutListFromAssembly(t *testing.T) {
	spec := frame.DefaultBoxSpec()
	p := profile.SquareTube(2.0, 0.125)
	a := frame.NewAssembly(spec, p)
	if err := a.Generate(); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	list := BuildCutList(a.Recipes(), p)
	if got := list.PieceCount(); got != len(a.Members()) {
		t.Fatalf("PieceCount() = %d, want %d", got, len(a.Members()))
	}
	if len(list.Items) >= list.PieceCount() {
		t.Errorf("no rollup happened: %d items for %d pieces", len(list.Items), list.PieceCount())
	}
	for _, item := range list.Items {
		if item.WeightKg <= 0 {
			t.Errorf("item %s has non-positive weight", item.Kind)
		}
	}
}

func TestCollectLabelInfosOnePerPiece(t *testing.T) {
	recipes, p := buildTestRecipes()
	list := BuildCutList(recipes, p)

	labels := CollectLabelInfos(list)
	if len(labels) != 4 {
		t.Fatalf("got %d labels, want 4", len(labels))
	}
	seen := map[string]bool{}
	for _, l := range labels {
		if seen[l.Member] {
			t.Errorf("duplicate label for member %s", l.Member)
		}
		seen[l.Member] = true
		if l.Profile != p.Name {
			t.Errorf("label profile = %s, want %s", l.Profile, p.Name)
		}
	}
}
