package sheet

import (
	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

// RowRef identifies one visible row of the hierarchy: a node name row
// (Param empty), a parameter row (Dim == -1) or a per-dimension row.
type RowRef struct {
	Node  curve.NodeID  `json:"node"`
	Param curve.ParamID `json:"param,omitempty"`
	Dim   int           `json:"dim"`
}

// IsNodeRow reports whether the row is a node name row.
func (r RowRef) IsNodeRow() bool { return r.Param == "" }

// RowLayout is the tree/hierarchy view collaborator: it owns which rows are
// visible, their vertical pixel geometry and their expand state. Lookups
// against entities that no longer have a row report ok=false.
type RowLayout interface {
	RowAt(y float64) (RowRef, bool)
	NodeRect(curve.NodeID) (Rect, bool)
	ParamRect(curve.ParamID) (Rect, bool)
	DimRect(curve.ParamID, int) (Rect, bool)
	NodeExpanded(curve.NodeID) bool
	ParamExpanded(curve.ParamID) bool
	VisibleRows() []RowRef
}

// TableLayout is a plain fixed-row-height RowLayout over the curve model:
// panel-open nodes in presentation order, parameter rows under expanded
// nodes, per-dimension rows under expanded multi-dimension parameters.
type TableLayout struct {
	model     *curve.Model
	rowHeight float64
	width     float64

	collapsedNodes  map[curve.NodeID]bool
	collapsedParams map[curve.ParamID]bool
}

func NewTableLayout(model *curve.Model, rowHeight float64) *TableLayout {
	if rowHeight <= 0 {
		rowHeight = 20
	}
	return &TableLayout{
		model:           model,
		rowHeight:       rowHeight,
		collapsedNodes:  make(map[curve.NodeID]bool),
		collapsedParams: make(map[curve.ParamID]bool),
	}
}

// SetWidth sets the pixel width reported for row rects.
func (t *TableLayout) SetWidth(w float64) { t.width = w }

// SetNodeExpanded toggles a node row open or closed.
func (t *TableLayout) SetNodeExpanded(id curve.NodeID, expanded bool) {
	t.collapsedNodes[id] = !expanded
}

// SetParamExpanded toggles a multi-dimension parameter row open or closed.
func (t *TableLayout) SetParamExpanded(id curve.ParamID, expanded bool) {
	t.collapsedParams[id] = !expanded
}

func (t *TableLayout) NodeExpanded(id curve.NodeID) bool {
	return !t.collapsedNodes[id]
}

// ParamExpanded reports whether the param's keys live on per-dimension
// rows. A single-dimension param never expands: its one row owns the keys.
func (t *TableLayout) ParamExpanded(id curve.ParamID) bool {
	p, ok := t.model.Param(id)
	if !ok || p.Dims <= 1 {
		return false
	}
	return !t.collapsedParams[id]
}

// VisibleRows flattens the hierarchy into its current visible row order.
func (t *TableLayout) VisibleRows() []RowRef {
	var rows []RowRef
	for _, nid := range t.model.Nodes() {
		n, ok := t.model.Node(nid)
		if !ok || !n.PanelOpen {
			continue
		}
		rows = append(rows, RowRef{Node: nid, Dim: -1})
		if !t.NodeExpanded(nid) {
			continue
		}
		for _, pid := range n.Params {
			p, ok := t.model.Param(pid)
			if !ok || !p.CanAnimate {
				continue
			}
			rows = append(rows, RowRef{Node: nid, Param: pid, Dim: -1})
			if t.ParamExpanded(pid) {
				for d := 0; d < p.Dims; d++ {
					rows = append(rows, RowRef{Node: nid, Param: pid, Dim: d})
				}
			}
		}
	}
	return rows
}

func (t *TableLayout) RowAt(y float64) (RowRef, bool) {
	if y < 0 {
		return RowRef{}, false
	}
	rows := t.VisibleRows()
	i := int(y / t.rowHeight)
	if i >= len(rows) {
		return RowRef{}, false
	}
	return rows[i], true
}

func (t *TableLayout) NodeRect(id curve.NodeID) (Rect, bool) {
	return t.rowRect(func(r RowRef) bool {
		return r.Node == id && r.IsNodeRow()
	})
}

func (t *TableLayout) ParamRect(id curve.ParamID) (Rect, bool) {
	return t.rowRect(func(r RowRef) bool {
		return r.Param == id && r.Dim == -1
	})
}

func (t *TableLayout) DimRect(id curve.ParamID, dim int) (Rect, bool) {
	return t.rowRect(func(r RowRef) bool {
		return r.Param == id && r.Dim == dim
	})
}

func (t *TableLayout) rowRect(match func(RowRef) bool) (Rect, bool) {
	for i, row := range t.VisibleRows() {
		if match(row) {
			return Rect{
				X:      0,
				Y:      float64(i) * t.rowHeight,
				Width:  t.width,
				Height: t.rowHeight,
			}, true
		}
	}
	return Rect{}, false
}
