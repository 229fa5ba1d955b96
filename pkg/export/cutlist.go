// Package export turns generated frames into shop paperwork: a cut list
// as PDF or XLSX, and QR-coded part labels for tracking cut stock.
package export

import (
	"fmt"
	"sort"

	"github.com/steelcab/tubeframe/pkg/frame"
	"github.com/steelcab/tubeframe/pkg/profile"
)

// CutItem is one line of the cut list: every piece sharing a member kind,
// stock length, and feature counts rolls up into a single row.
type CutItem struct {
	Kind      string   `json:"kind"`
	Length    float64  `json:"length_mm"`
	Quantity  int      `json:"quantity"`
	Members   []string `json:"members"`
	TabCount  int      `json:"tabs"`
	SlotCount int      `json:"slots"`
	HoleCount int      `json:"holes"`
	WeightKg  float64  `json:"weight_kg"` // per piece
}

// CutList is the complete stock order for one frame.
type CutList struct {
	ProfileName string    `json:"profile"`
	Items       []CutItem `json:"items"`
}

// PieceCount is the total number of pieces to cut.
func (l CutList) PieceCount() int {
	n := 0
	for _, it := range l.Items {
		n += it.Quantity
	}
	return n
}

// TotalLength is the summed stock length in mm, without kerf allowance.
func (l CutList) TotalLength() float64 {
	total := 0.0
	for _, it := range l.Items {
		total += it.Length * float64(it.Quantity)
	}
	return total
}

// TotalWeight is the summed piece weight in kg.
func (l CutList) TotalWeight() float64 {
	total := 0.0
	for _, it := range l.Items {
		total += it.WeightKg * float64(it.Quantity)
	}
	return total
}

// BuildCutList rolls the per-member recipes up into an ordered cut list.
// Rows sort by kind, then descending length, so long stock cuts first.
func BuildCutList(recipes []*frame.Recipe, p *profile.TubeProfile) CutList {
	type key struct {
		kind   string
		length string
		tabs   int
		slots  int
		holes  int
	}

	rows := make(map[key]*CutItem)
	for _, r := range recipes {
		if r == nil {
			continue
		}
		k := key{
			kind:   string(r.Member.Kind),
			length: fmt.Sprintf("%.2f", r.Member.Length),
			tabs:   len(r.Tabs),
			slots:  len(r.Slots),
			holes:  len(r.Holes),
		}
		item, ok := rows[k]
		if !ok {
			item = &CutItem{
				Kind:      k.kind,
				Length:    r.Member.Length,
				TabCount:  k.tabs,
				SlotCount: k.slots,
				HoleCount: k.holes,
				WeightKg:  p.WeightPerMeter() * r.Member.Length / 1000,
			}
			rows[k] = item
		}
		item.Quantity++
		item.Members = append(item.Members, r.Member.Name())
	}

	list := CutList{ProfileName: p.Name}
	for _, item := range rows {
		sort.Strings(item.Members)
		list.Items = append(list.Items, *item)
	}
	sort.Slice(list.Items, func(i, j int) bool {
		a, b := list.Items[i], list.Items[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		if a.SlotCount != b.SlotCount {
			return a.SlotCount < b.SlotCount
		}
		if a.TabCount != b.TabCount {
			return a.TabCount < b.TabCount
		}
		return a.HoleCount < b.HoleCount
	})
	return list
}
