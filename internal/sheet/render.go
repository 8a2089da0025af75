package sheet

import (
	"fmt"

	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

// RenderState is the full drawable picture of the sheet, serialized to the
// host after every event. The host paints it verbatim; no view logic lives
// on the other side of the wire.
type RenderState struct {
	Window    RenderWindow  `json:"window"`
	Rows      []RenderRow   `json:"rows"`
	Clips     []RenderClip  `json:"clips"`
	Selection RenderSel     `json:"selection"`
	Frame     float64       `json:"frame"`
	Indicator RenderMarker  `json:"indicator"`
	Cursor    CursorShape   `json:"cursor"`
	State     string        `json:"state"`
}

// RenderWindow is the visible data window of the time axis plus the pixel
// viewport.
type RenderWindow struct {
	TimeLeft  float64 `json:"timeLeft"`
	TimeRight float64 `json:"timeRight"`
	ScreenW   int     `json:"screenW"`
	ScreenH   int     `json:"screenH"`
}

// RenderRow is one visible row of the hierarchy with its keys projected to
// widget x.
type RenderRow struct {
	Kind  string        `json:"kind"` // node, param or dim
	Node  curve.NodeID  `json:"node"`
	Param curve.ParamID `json:"param,omitempty"`
	Dim   int           `json:"dim"`
	Label string        `json:"label"`
	Rect  Rect          `json:"rect"`
	Keys  []RenderKey   `json:"keys,omitempty"`
}

// RenderKey is one keyframe glyph.
type RenderKey struct {
	Time     float64 `json:"time"`
	X        float64 `json:"x"`
	Interp   string  `json:"interp"`
	Selected bool    `json:"selected"`
}

// RenderClip is one reader or group span.
type RenderClip struct {
	Node  curve.NodeID `json:"node"`
	Range FrameRange   `json:"range"`
	Rect  Rect         `json:"rect"`
}

// RenderSel carries the rubber band and the selected-keys box, when active.
type RenderSel struct {
	Count  int              `json:"count"`
	Rect   *Rect            `json:"rect,omitempty"`
	Bounds *SelectionBounds `json:"bounds,omitempty"`
}

// RenderMarker is the current-frame indicator's widget position and pick
// triangles.
type RenderMarker struct {
	X      float64  `json:"x"`
	Top    Triangle `json:"top"`
	Bottom Triangle `json:"bottom"`
}

var dimSuffix = [...]string{"x", "y", "z", "w"}

func dimLabel(label string, dim int) string {
	if dim < len(dimSuffix) {
		return label + "." + dimSuffix[dim]
	}
	return fmt.Sprintf("%s.%d", label, dim)
}

// RenderState snapshots everything the host needs to paint one frame of
// the sheet.
func (v *View) RenderState() RenderState {
	st := RenderState{
		Window: RenderWindow{
			TimeLeft:  v.zoom.Left(),
			TimeRight: v.zoom.Right(),
			ScreenW:   v.zoom.ScreenWidth(),
			ScreenH:   v.zoom.ScreenHeight(),
		},
		Frame: v.currentFrame,
		Indicator: RenderMarker{
			X:      v.zoom.TimeToX(v.currentFrame),
			Top:    v.indicatorTop,
			Bottom: v.indicatorBottom,
		},
		Cursor: v.hoverCursor,
		State:  v.state.String(),
	}

	for _, row := range v.layout.VisibleRows() {
		rect, ok := v.rowRect(row)
		if !ok {
			continue
		}
		if row.IsNodeRow() {
			n, ok := v.model.Node(row.Node)
			if !ok {
				continue
			}
			st.Rows = append(st.Rows, RenderRow{
				Kind:  "node",
				Node:  row.Node,
				Dim:   -1,
				Label: n.Name,
				Rect:  rect,
				Keys:  v.renderRowKeys(row),
			})
			if clipRect, r, ok := v.clipRect(row.Node); ok {
				st.Clips = append(st.Clips, RenderClip{Node: row.Node, Range: r, Rect: clipRect})
			}
			continue
		}
		p, ok := v.model.Param(row.Param)
		if !ok {
			continue
		}
		rr := RenderRow{
			Node:  p.Node,
			Param: row.Param,
			Dim:   row.Dim,
			Rect:  rect,
			Keys:  v.renderRowKeys(row),
		}
		if row.Dim < 0 {
			rr.Kind = "param"
			rr.Label = p.Label
		} else {
			rr.Kind = "dim"
			rr.Label = dimLabel(p.Label, row.Dim)
		}
		st.Rows = append(st.Rows, rr)
	}

	st.Selection.Count = v.selection.len()
	if v.hasSelectionRect {
		r := v.selectionRect
		st.Selection.Rect = &r
	}
	if v.selBounds.Valid {
		b := v.selBounds
		st.Selection.Bounds = &b
	}
	return st
}

// renderRowKeys projects a row's keys to glyphs. Node rows summarize every
// animated param of the node; param rows aggregate their dims.
func (v *View) renderRowKeys(row RowRef) []RenderKey {
	var out []RenderKey
	add := func(pid curve.ParamID, dim int, k curve.Keyframe) {
		out = append(out, RenderKey{
			Time:     k.Time,
			X:        v.zoom.TimeToX(k.Time),
			Interp:   string(k.Interp),
			Selected: v.selection.indexOf(SelectedKey{Param: pid, Dim: dim, Key: k}) >= 0,
		})
	}
	if row.IsNodeRow() {
		n, ok := v.model.Node(row.Node)
		if !ok {
			return nil
		}
		for _, pid := range n.Params {
			p, ok := v.model.Param(pid)
			if !ok || !p.CanAnimate {
				continue
			}
			for dim, c := range p.Curves {
				for _, k := range c.Keys {
					add(pid, dim, k)
				}
			}
		}
		return out
	}
	p, ok := v.model.Param(row.Param)
	if !ok {
		return nil
	}
	for dim, c := range p.Curves {
		if row.Dim >= 0 && dim != row.Dim {
			continue
		}
		for _, k := range c.Keys {
			add(row.Param, dim, k)
		}
	}
	return out
}
