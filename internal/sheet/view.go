package sheet

import (
	"log/slog"
	"math"

	"github.com/keygrid/keygrid/sheet-go/internal/config"
	"github.com/keygrid/keygrid/sheet-go/internal/curve"
	"github.com/keygrid/keygrid/sheet-go/internal/typeid"
)

// indicatorHalfWidth and indicatorHeight size the current-frame triangles.
const (
	indicatorHalfWidth = 7.5
	indicatorHeight    = 7.5
)

// selectionBoundsPad is the vertical padding around the selected-keys box,
// in widget pixels.
const selectionBoundsPad = 4.0

// Viewport size before the host reports a real one.
const (
	defaultScreenW = 800
	defaultScreenH = 600
)

// Timeline receives seek requests when the user drags the current-frame
// indicator. The host owns playback; the view only reports intent.
type Timeline interface {
	Seek(frame float64)
}

// View is the sheet controller. It owns the zoom window, the selection,
// the cached clip ranges and the pointer state machine, and turns pointer
// events into document commands. It is not safe for concurrent use; the
// session layer serializes access.
type View struct {
	model    *curve.Model
	layout   RowLayout
	timeline Timeline
	commands CommandSink
	logger   *slog.Logger

	clickTolerance float64
	glyphHalf      float64

	zoom   ZoomContext
	hasFit bool

	selection      selectionTracker
	selBounds      SelectionBounds
	pressSelection []SelectedKey

	nodeRanges map[curve.NodeID]FrameRange

	currentFrame    float64
	indicatorTop    Triangle
	indicatorBottom Triangle

	state               EventState
	hoverCursor         CursorShape
	selectionRect       Rect
	hasSelectionRect    bool
	currentEditedReader curve.NodeID
	currentEditedGroup  curve.NodeID
	pressPt             Point
	pressTime           float64
	lastMovePt          Point
	keyDragLastMovement float64
	timeOffsetOnPress   int
	gesture             string
}

// NewView builds a controller over the document. The view registers itself
// as a model listener so cached ranges and selection bounds track edits
// made through any path, including undo.
func NewView(model *curve.Model, layout RowLayout, timeline Timeline, commands CommandSink, cfg config.Config, logger *slog.Logger) *View {
	v := &View{
		model:          model,
		layout:         layout,
		timeline:       timeline,
		commands:       commands,
		logger:         logger,
		clickTolerance: float64(cfg.ClickTolerancePx),
		glyphHalf:      float64(cfg.KeyframeGlyphPx) / 2,
		zoom:           NewZoomContext(defaultScreenW, defaultScreenH),
		nodeRanges:     make(map[curve.NodeID]FrameRange),
		currentFrame:   1,
		hoverCursor:    CursorDefault,
	}
	model.AddListener(v)
	v.recomputeAllRanges()
	v.updateFrameIndicator()
	return v
}

func (v *View) newGestureID() string { return typeid.NewCommandID() }

// Zoom exposes the current view window.
func (v *View) Zoom() ZoomContext { return v.zoom }

// State exposes the pointer machine's current state.
func (v *View) State() EventState { return v.state }

// Selection returns a copy of the selected keys.
func (v *View) Selection() []SelectedKey { return v.selection.all() }

// SelectionBoundsRect returns the padded box around the selection. Valid is
// false when fewer than two keys are selected.
func (v *View) SelectionBoundsRect() SelectionBounds { return v.selBounds }

// NodeRange returns the cached clip range for a node.
func (v *View) NodeRange(id curve.NodeID) (FrameRange, bool) {
	r, ok := v.nodeRanges[id]
	return r, ok
}

// SetScreenSize resizes the viewport. Once a fit has happened the visible
// data window is preserved; before that the view stays at its unit scale.
func (v *View) SetScreenSize(w, h int) {
	v.zoom.SetScreenSize(w, h, v.hasFit)
	if tl, ok := v.layout.(*TableLayout); ok {
		tl.SetWidth(float64(w))
	}
	v.updateFrameIndicator()
	v.recomputeSelectionBounds()
}

// SeekFrame moves the current-frame indicator and reports the seek to the
// timeline host.
func (v *View) SeekFrame(frame float64) {
	v.seek(frame)
}

func (v *View) seek(frame float64) {
	v.currentFrame = frame
	if v.timeline != nil {
		v.timeline.Seek(frame)
	}
	v.updateFrameIndicator()
}

// CurrentFrame returns the frame the indicator sits on.
func (v *View) CurrentFrame() float64 { return v.currentFrame }

// updateFrameIndicator rebuilds the two pick triangles flanking the
// current-frame line, one hanging from the top edge and one standing on
// the bottom edge.
func (v *View) updateFrameIndicator() {
	x := v.zoom.TimeToX(v.currentFrame)
	h := float64(v.zoom.ScreenHeight())
	v.indicatorTop = Triangle{
		{X: x - indicatorHalfWidth, Y: 0},
		{X: x + indicatorHalfWidth, Y: 0},
		{X: x, Y: indicatorHeight},
	}
	v.indicatorBottom = Triangle{
		{X: x - indicatorHalfWidth, Y: h},
		{X: x + indicatorHalfWidth, Y: h},
		{X: x, Y: h - indicatorHeight},
	}
}

// recomputeSelectionBounds rebuilds the padded box around the selected
// keys. Keys whose rows are no longer visible are skipped rather than
// invalidating the whole box.
func (v *View) recomputeSelectionBounds() {
	if v.selection.len() < 2 {
		v.selBounds = SelectionBounds{}
		return
	}
	timeMin := math.Inf(1)
	timeMax := math.Inf(-1)
	yMin := math.Inf(1)
	yMax := math.Inf(-1)
	found := 0
	for _, sk := range v.selection.all() {
		rect, ok := v.keyRowRect(sk.Param, sk.Dim)
		if !ok {
			continue
		}
		found++
		timeMin = math.Min(timeMin, sk.Key.Time)
		timeMax = math.Max(timeMax, sk.Key.Time)
		center := rect.Y + rect.Height/2
		yMin = math.Min(yMin, center)
		yMax = math.Max(yMax, center)
	}
	if found < 2 {
		v.selBounds = SelectionBounds{}
		return
	}
	timePad := v.glyphHalf / v.zoom.scaleX()
	v.selBounds = SelectionBounds{
		TimeMin: timeMin - timePad,
		TimeMax: timeMax + timePad,
		YTop:    yMin - selectionBoundsPad,
		YBottom: yMax + selectionBoundsPad,
		Valid:   true,
	}
}

// keyRowRect finds the row a key renders on: the dim row when its param is
// expanded, the param row otherwise.
func (v *View) keyRowRect(param curve.ParamID, dim int) (Rect, bool) {
	if v.layout.ParamExpanded(param) {
		return v.layout.DimRect(param, dim)
	}
	return v.layout.ParamRect(param)
}

// recomputeAllRanges refreshes every cached clip range from scratch.
func (v *View) recomputeAllRanges() {
	v.nodeRanges = make(map[curve.NodeID]FrameRange)
	for _, id := range v.model.Nodes() {
		v.computeNodeRange(id)
	}
}

// pruneSelection drops selected keys whose param or key no longer exists.
func (v *View) pruneSelection() {
	kept := v.selection.keys[:0]
	for _, sk := range v.selection.keys {
		p, ok := v.model.Param(sk.Param)
		if !ok || sk.Dim >= len(p.Curves) {
			continue
		}
		if _, ok := p.Curves[sk.Dim].At(sk.Key.Time); !ok {
			continue
		}
		kept = append(kept, sk)
	}
	v.selection.keys = kept
}

// SyncAfterHistory refreshes derived state after an undo or redo, when the
// document may have changed out from under the cached picture.
func (v *View) SyncAfterHistory() {
	v.pruneSelection()
	v.recomputeAllRanges()
	v.recomputeSelectionBounds()
}

// SelectAll selects every key on every visible row.
func (v *View) SelectAll() {
	v.selection.clear()
	for _, row := range v.layout.VisibleRows() {
		if row.IsNodeRow() {
			continue
		}
		if row.Dim < 0 && v.layout.ParamExpanded(row.Param) {
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
				sk := SelectedKey{Param: row.Param, Dim: dim, Key: k}
				if v.selection.indexOf(sk) < 0 {
					v.selection.keys = append(v.selection.keys, sk)
				}
			}
		}
	}
	v.recomputeSelectionBounds()
}

// ClearSelection empties the selection.
func (v *View) ClearSelection() {
	v.selection.clear()
	v.selBounds = SelectionBounds{}
}

// DeleteSelectedKeyframes removes every selected key as one undoable
// command.
func (v *View) DeleteSelectedKeyframes() {
	if v.selection.len() == 0 {
		return
	}
	cmd := newCommand(CmdRemoveKeys, v.newGestureID())
	cmd.Keys = v.selection.all()
	if err := v.commands.Push(cmd); err != nil {
		v.logger.Warn("delete keys rejected", "err", err)
		return
	}
	v.selection.clear()
	v.selBounds = SelectionBounds{}
}

// SetSelectedKeysInterp rewrites the interpolation of every selected key,
// recording the previous modes so undo can restore a mixed selection.
func (v *View) SetSelectedKeysInterp(interp curve.InterpType) {
	if v.selection.len() == 0 {
		return
	}
	cmd := newCommand(CmdSetInterp, v.newGestureID())
	cmd.Keys = v.selection.all()
	cmd.Interp = interp
	cmd.OldInterps = make([]curve.InterpType, len(cmd.Keys))
	for i, sk := range cmd.Keys {
		cmd.OldInterps[i] = sk.Key.Interp
		if p, ok := v.model.Param(sk.Param); ok && sk.Dim < len(p.Curves) {
			if k, ok := p.Curves[sk.Dim].At(sk.Key.Time); ok {
				cmd.OldInterps[i] = k.Interp
			}
		}
	}
	if err := v.commands.Push(cmd); err != nil {
		v.logger.Warn("set interpolation rejected", "err", err)
		return
	}
	for i := range v.selection.keys {
		v.selection.keys[i].Key.Interp = interp
	}
}

// Frame zooms the time axis to fit every visible key and clip range.
func (v *View) Frame() {
	min, max, ok := v.contentTimeExtent()
	if !ok {
		return
	}
	v.fitTimeRange(min, max)
}

// FrameSelection zooms to fit the selected keys, or all content when
// nothing is selected.
func (v *View) FrameSelection() {
	if v.selection.len() == 0 {
		v.Frame()
		return
	}
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, sk := range v.selection.all() {
		min = math.Min(min, sk.Key.Time)
		max = math.Max(max, sk.Key.Time)
	}
	v.fitTimeRange(min, max)
}

func (v *View) fitTimeRange(min, max float64) {
	if max <= min {
		min, max = min-5, min+5
	}
	pad := (max - min) * 0.05
	v.zoom.Fill(min-pad, max+pad, v.zoom.Bottom(), v.zoom.Top())
	v.hasFit = true
	v.updateFrameIndicator()
	v.recomputeSelectionBounds()
}

// contentTimeExtent spans every visible key time and cached clip range.
func (v *View) contentTimeExtent() (min, max float64, ok bool) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, row := range v.layout.VisibleRows() {
		if row.IsNodeRow() {
			if r, found := v.nodeRanges[row.Node]; found && !r.IsZero() {
				min = math.Min(min, r.First)
				max = math.Max(max, r.Last)
				ok = true
			}
			continue
		}
		p, found := v.model.Param(row.Param)
		if !found {
			continue
		}
		for dim, c := range p.Curves {
			if row.Dim >= 0 && dim != row.Dim {
				continue
			}
			if !c.HasKeys() {
				continue
			}
			min = math.Min(min, c.Keys[0].Time)
			max = math.Max(max, c.Keys[len(c.Keys)-1].Time)
			ok = true
		}
	}
	return min, max, ok
}

// OnRowExpansionChanged refreshes geometry-dependent caches after a row
// was expanded or collapsed in the hierarchy tree.
func (v *View) OnRowExpansionChanged(id curve.NodeID) {
	v.computeRangesBelow(id)
	v.recomputeSelectionBounds()
}

// recomputeGroupRangesForSelection refreshes the group ranges enclosing
// every node the selection touches. Moving keys can stretch an ancestor
// group's clip.
func (v *View) recomputeGroupRangesForSelection() {
	seen := map[curve.NodeID]bool{}
	for _, sk := range v.selection.all() {
		p, ok := v.model.Param(sk.Param)
		if !ok || seen[p.Node] {
			continue
		}
		seen[p.Node] = true
		v.computeNodeRange(p.Node)
		v.recomputeAncestorRanges(p.Node)
	}
}

// curve.Listener implementation. The model calls these synchronously on
// every mutation, including ones replayed by undo.

func (v *View) NodeAdded(id curve.NodeID) {
	v.computeNodeRange(id)
	v.recomputeAncestorRanges(id)
}

func (v *View) NodeRemoved(id curve.NodeID) {
	// The parent link is already gone, so ancestor ranges cannot be
	// walked from here. Rebuilding all ranges keeps every group honest.
	v.pruneSelection()
	v.recomputeAllRanges()
	v.recomputeSelectionBounds()
}

func (v *View) KeyframeChanged(param curve.ParamID) {
	p, ok := v.model.Param(param)
	if !ok {
		return
	}
	v.computeNodeRange(p.Node)
	v.recomputeAncestorRanges(p.Node)
}

func (v *View) ScalarChanged(param curve.ParamID) {
	p, ok := v.model.Param(param)
	if !ok {
		return
	}
	v.computeNodeRange(p.Node)
	v.recomputeAncestorRanges(p.Node)
}

func (v *View) PanelVisibilityChanged(node curve.NodeID) {
	v.computeRangesBelow(node)
	v.recomputeAncestorRanges(node)
	v.recomputeSelectionBounds()
}
