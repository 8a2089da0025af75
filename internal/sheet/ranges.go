package sheet

import (
	"math"

	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

// FrameRange is a clip's [First, Last] span on the timeline. The zero value
// means "no range".
type FrameRange struct {
	First float64 `json:"first"`
	Last  float64 `json:"last"`
}

// IsZero reports the "no range" sentinel.
func (r FrameRange) IsZero() bool { return r.First == 0 && r.Last == 0 }

// rangePolicy computes the clip range for one node kind. Node kinds without
// a policy have no clip presentation.
type rangePolicy func(v *View, id curve.NodeID) (FrameRange, bool)

var rangePolicies = map[curve.NodeType]rangePolicy{
	curve.NodeReader: (*View).readerRange,
	curve.NodeGroup:  (*View).groupRange,
}

// computeNodeRange refreshes the cached range of one node according to its
// kind's policy.
func (v *View) computeNodeRange(id curve.NodeID) {
	n, ok := v.model.Node(id)
	if !ok {
		delete(v.nodeRanges, id)
		return
	}
	policy, ok := rangePolicies[n.Type]
	if !ok {
		return
	}
	if r, ok := policy(v, id); ok {
		v.nodeRanges[id] = r
	}
}

// readerRange derives the trim window from the reader's three placement
// scalars: [startingTime, startingTime + (lastFrame - firstFrame)].
func (v *View) readerRange(id curve.NodeID) (FrameRange, bool) {
	startingTime, ok1 := v.model.ScalarByName(id, curve.ParamStartingTime)
	firstFrame, ok2 := v.model.ScalarByName(id, curve.ParamFirstFrame)
	lastFrame, ok3 := v.model.ScalarByName(id, curve.ParamLastFrame)
	if !ok1 || !ok2 || !ok3 {
		return FrameRange{}, false
	}
	return FrameRange{
		First: float64(startingTime),
		Last:  float64(startingTime + (lastFrame - firstFrame)),
	}, true
}

// groupRange aggregates the first/last key time over every animated
// parameter of the group's panel-visible descendants. Hidden branches do
// not contribute; a group with no visible animation gets the zero range.
func (v *View) groupRange(id curve.NodeID) (FrameRange, bool) {
	group, ok := v.model.Node(id)
	if !ok {
		return FrameRange{}, false
	}

	first := math.Inf(1)
	last := math.Inf(-1)
	found := false

	var walk func(curve.NodeID)
	walk = func(nid curve.NodeID) {
		n, ok := v.model.Node(nid)
		if !ok {
			return
		}
		if n.PanelOpen {
			for _, pid := range n.Params {
				p, ok := v.model.Param(pid)
				if !ok || !p.CanAnimate {
					continue
				}
				for _, c := range p.Curves {
					if !c.HasKeys() {
						continue
					}
					found = true
					first = math.Min(first, c.Keys[0].Time)
					last = math.Max(last, c.Keys[len(c.Keys)-1].Time)
				}
			}
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, child := range group.Children {
		walk(child)
	}

	if !found {
		return FrameRange{}, true
	}
	return FrameRange{First: first, Last: last}, true
}

// computeRangesBelow refreshes the clip ranges of every node whose row sits
// at or below the given node's row. Rows above keep their geometry when a
// branch expands or collapses.
func (v *View) computeRangesBelow(id curve.NodeID) {
	top, ok := v.layout.NodeRect(id)
	if !ok {
		return
	}
	for _, row := range v.layout.VisibleRows() {
		if !row.IsNodeRow() {
			continue
		}
		if r, ok := v.layout.NodeRect(row.Node); ok && r.Y >= top.Y {
			v.computeNodeRange(row.Node)
		}
	}
}

// recomputeAncestorRanges walks the parent-group chain upward, refreshing
// each group's aggregate range. The visited set bounds the walk even if the
// hierarchy is malformed into a cycle.
func (v *View) recomputeAncestorRanges(id curve.NodeID) {
	visited := map[curve.NodeID]bool{id: true}
	cur := id
	for {
		parent, ok := v.model.Parent(cur)
		if !ok || visited[parent] {
			return
		}
		visited[parent] = true
		v.computeNodeRange(parent)
		cur = parent
	}
}

// clipRect returns the widget-space span of a node's clip: the cached range
// across the node's row. ok is false for rows or nodes without a clip.
func (v *View) clipRect(id curve.NodeID) (Rect, FrameRange, bool) {
	r, ok := v.nodeRanges[id]
	if !ok || r.IsZero() {
		return Rect{}, FrameRange{}, false
	}
	row, ok := v.layout.NodeRect(id)
	if !ok {
		return Rect{}, FrameRange{}, false
	}
	left := v.zoom.TimeToX(r.First)
	right := v.zoom.TimeToX(r.Last)
	return Rect{X: left, Y: row.Y, Width: right - left, Height: row.Height}, r, true
}
