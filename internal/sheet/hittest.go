package sheet

import (
	"math"

	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

// HitKind classifies what lies under the pointer, in decreasing pick
// priority.
type HitKind int

const (
	HitNone HitKind = iota
	HitSelectionBox
	HitFrameIndicator
	HitClipLeft
	HitClipRight
	HitClipBody
	HitKeyframe
)

func (k HitKind) String() string {
	switch k {
	case HitSelectionBox:
		return "selectionBox"
	case HitFrameIndicator:
		return "frameIndicator"
	case HitClipLeft:
		return "clipLeft"
	case HitClipRight:
		return "clipRight"
	case HitClipBody:
		return "clipBody"
	case HitKeyframe:
		return "keyframe"
	default:
		return "none"
	}
}

// CursorShape is the pointer feedback the host should show for a hover
// position.
type CursorShape string

const (
	CursorDefault      CursorShape = "default"
	CursorMove         CursorShape = "move"
	CursorResizeH      CursorShape = "resizeHorizontal"
	CursorCross        CursorShape = "cross"
	CursorPointingHand CursorShape = "pointingHand"
)

// Hit is the outcome of classifying a widget-space point.
type Hit struct {
	Kind HitKind
	Node curve.NodeID  // clip hits
	Keys []SelectedKey // keyframe hits, every key within tolerance
}

// hitTest classifies the widget-space point against the picture, front to
// back: selection bounds, then the current-frame indicator, then clip edges
// and bodies, then keyframe glyphs.
func (v *View) hitTest(pt Point) Hit {
	if v.selBounds.Valid && v.selBounds.Contains(v.zoom.XToTime(pt.X), pt.Y) {
		return Hit{Kind: HitSelectionBox}
	}
	if v.indicatorTop.Contains(pt.X, pt.Y) || v.indicatorBottom.Contains(pt.X, pt.Y) {
		return Hit{Kind: HitFrameIndicator}
	}

	row, onRow := v.layout.RowAt(pt.Y)
	if !onRow {
		return Hit{Kind: HitNone}
	}

	if row.IsNodeRow() {
		if hit, ok := v.hitTestClip(row.Node, pt); ok {
			return hit
		}
		n, ok := v.model.Node(row.Node)
		if ok && (n.Type == curve.NodeCommon || n.Type == curve.NodeGroup) {
			if keys := v.keysOnNodeRow(row.Node, pt.X); len(keys) > 0 {
				return Hit{Kind: HitKeyframe, Node: row.Node, Keys: keys}
			}
		}
		return Hit{Kind: HitNone}
	}

	if keys := v.keysOnParamRow(row, pt.X); len(keys) > 0 {
		return Hit{Kind: HitKeyframe, Keys: keys}
	}
	return Hit{Kind: HitNone}
}

// hitTestClip checks the node's clip rectangle, distinguishing the resize
// bands at either edge from the draggable body. Groups have no resize
// bands.
func (v *View) hitTestClip(id curve.NodeID, pt Point) (Hit, bool) {
	rect, _, ok := v.clipRect(id)
	if !ok {
		return Hit{}, false
	}
	n, ok := v.model.Node(id)
	if !ok {
		return Hit{}, false
	}
	if pt.Y < rect.Y || pt.Y > rect.Y+rect.Height {
		return Hit{}, false
	}
	tol := v.clickTolerance
	if n.Type == curve.NodeReader {
		if math.Abs(pt.X-rect.X) <= tol {
			return Hit{Kind: HitClipLeft, Node: id}, true
		}
		if math.Abs(pt.X-(rect.X+rect.Width)) <= tol {
			return Hit{Kind: HitClipRight, Node: id}, true
		}
	}
	if pt.X >= rect.X && pt.X <= rect.X+rect.Width {
		return Hit{Kind: HitClipBody, Node: id}, true
	}
	return Hit{}, false
}

// keysOnParamRow collects every key of the row's curve(s) whose glyph
// overlaps the pointer x. A param row aggregates all of its dimensions; a
// dim row covers just the one curve.
func (v *View) keysOnParamRow(row RowRef, x float64) []SelectedKey {
	p, ok := v.model.Param(row.Param)
	if !ok {
		return nil
	}
	var out []SelectedKey
	for dim, c := range p.Curves {
		if row.Dim >= 0 && dim != row.Dim {
			continue
		}
		for _, k := range c.Keys {
			if math.Abs(v.zoom.TimeToX(k.Time)-x) <= v.clickTolerance {
				out = append(out, SelectedKey{Param: row.Param, Dim: dim, Key: k})
			}
		}
	}
	return out
}

// keysOnNodeRow collects keys across every animated param of the node whose
// glyph overlaps the pointer x. Node rows render a flattened summary of
// their params' animation.
func (v *View) keysOnNodeRow(id curve.NodeID, x float64) []SelectedKey {
	n, ok := v.model.Node(id)
	if !ok {
		return nil
	}
	var out []SelectedKey
	for _, pid := range n.Params {
		p, ok := v.model.Param(pid)
		if !ok || !p.CanAnimate {
			continue
		}
		for dim, c := range p.Curves {
			for _, k := range c.Keys {
				if math.Abs(v.zoom.TimeToX(k.Time)-x) <= v.clickTolerance {
					out = append(out, SelectedKey{Param: pid, Dim: dim, Key: k})
				}
			}
		}
	}
	return out
}

// keysInRect collects every key whose glyph center falls inside the
// sheet-space rectangle (x in data time, y in widget pixels). Row
// membership goes by the row's vertical center.
func (v *View) keysInRect(rect Rect) []SelectedKey {
	var out []SelectedKey
	for _, row := range v.layout.VisibleRows() {
		if row.IsNodeRow() {
			continue
		}
		// An expanded param's keys are owned by its dim rows.
		if row.Dim < 0 && v.layout.ParamExpanded(row.Param) {
			continue
		}
		rowRect, ok := v.rowRect(row)
		if !ok {
			continue
		}
		center := rowRect.Y + rowRect.Height/2
		if center < rect.Y || center > rect.Y+rect.Height {
			continue
		}
		p, ok := v.model.Param(row.Param)
		if !ok {
			continue
		}
		for dim, c := range p.Curves {
			if row.Dim >= 0 && dim != row.Dim {
				continue
			}
			for _, k := range c.Keys {
				if k.Time >= rect.X && k.Time <= rect.X+rect.Width {
					out = append(out, SelectedKey{Param: row.Param, Dim: dim, Key: k})
				}
			}
		}
	}
	return out
}

func (v *View) rowRect(row RowRef) (Rect, bool) {
	if row.Dim >= 0 {
		return v.layout.DimRect(row.Param, row.Dim)
	}
	if row.Param != "" {
		return v.layout.ParamRect(row.Param)
	}
	return v.layout.NodeRect(row.Node)
}

// cursorFor maps a hover classification to the pointer shape the host
// should present.
func cursorFor(kind HitKind) CursorShape {
	switch kind {
	case HitSelectionBox, HitClipBody, HitKeyframe:
		return CursorMove
	case HitClipLeft, HitClipRight:
		return CursorResizeH
	case HitFrameIndicator:
		return CursorPointingHand
	default:
		return CursorDefault
	}
}
