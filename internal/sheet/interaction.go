package sheet

import (
	"math"

	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

// EventState names the gesture the pointer is currently driving. Exactly
// one is active at a time; everything but Idle owns the pointer until
// release.
type EventState int

const (
	StateIdle EventState = iota
	StatePanningView
	StateMovingKeys
	StateRepositioningClip
	StateTrimmingClipLeft
	StateTrimmingClipRight
	StateRepositioningGroup
	StateDraggingFrameIndicator
	StateRectangleSelecting
)

func (s EventState) String() string {
	switch s {
	case StatePanningView:
		return "panningView"
	case StateMovingKeys:
		return "movingKeys"
	case StateRepositioningClip:
		return "repositioningClip"
	case StateTrimmingClipLeft:
		return "trimmingClipLeft"
	case StateTrimmingClipRight:
		return "trimmingClipRight"
	case StateRepositioningGroup:
		return "repositioningGroup"
	case StateDraggingFrameIndicator:
		return "draggingFrameIndicator"
	case StateRectangleSelecting:
		return "rectangleSelecting"
	default:
		return "idle"
	}
}

// MouseButton identifies which button a press or release event carries.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
)

// Modifiers carries the keyboard state attached to a pointer event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// wheelZoomPerDelta is the zoom ratio applied per wheel unit.
const wheelZoomPerDelta = 1.00152

// MousePress starts a gesture from the widget-space point. A press while a
// gesture is already running is dropped, so overlapping gestures cannot
// interleave.
func (v *View) MousePress(pt Point, button MouseButton, mods Modifiers) {
	if v.state != StateIdle {
		return
	}
	switch button {
	case ButtonRight:
		return
	case ButtonMiddle:
		v.beginGesture(pt)
		v.state = StatePanningView
		return
	}

	v.beginGesture(pt)

	hit := v.hitTest(pt)
	switch hit.Kind {
	case HitSelectionBox:
		v.state = StateMovingKeys

	case HitFrameIndicator:
		v.state = StateDraggingFrameIndicator

	case HitClipBody:
		n, ok := v.model.Node(hit.Node)
		if !ok {
			return
		}
		if n.Type == curve.NodeGroup {
			v.currentEditedGroup = hit.Node
			v.state = StateRepositioningGroup
			return
		}
		v.currentEditedReader = hit.Node
		if off, ok := v.model.ScalarByName(hit.Node, curve.ParamTimeOffset); ok {
			v.timeOffsetOnPress = off
		}
		v.state = StateRepositioningClip

	case HitClipLeft:
		v.currentEditedReader = hit.Node
		v.state = StateTrimmingClipLeft

	case HitClipRight:
		v.currentEditedReader = hit.Node
		v.state = StateTrimmingClipRight

	case HitKeyframe:
		v.selection.toggleOrAdd(hit.Keys, mods.Shift)
		v.recomputeSelectionBounds()
		if v.selection.indexOf(hit.Keys[0]) >= 0 {
			v.state = StateMovingKeys
		}

	default:
		if !mods.Shift {
			v.selection.clear()
			v.recomputeSelectionBounds()
		}
		v.pressSelection = v.selection.all()
		v.hasSelectionRect = true
		v.selectionRect = Rect{X: v.pressTime, Y: pt.Y}
		v.state = StateRectangleSelecting
	}
}

func (v *View) beginGesture(pt Point) {
	v.pressPt = pt
	v.lastMovePt = pt
	v.pressTime = v.zoom.XToTime(pt.X)
	v.keyDragLastMovement = 0
	v.gesture = v.newGestureID()
}

// MouseMove advances the running gesture, or just refreshes the hover
// cursor when idle.
func (v *View) MouseMove(pt Point, mods Modifiers) {
	switch v.state {
	case StateIdle:
		v.hoverCursor = cursorFor(v.hitTest(pt).Kind)

	case StatePanningView:
		dx := (v.lastMovePt.X - pt.X) / v.zoom.scaleX()
		v.zoom.Translate(dx, 0)
		v.updateFrameIndicator()
		v.recomputeSelectionBounds()

	case StateDraggingFrameIndicator:
		v.seek(v.zoom.XToTime(pt.X))

	case StateMovingKeys:
		total := math.Floor(v.zoom.XToTime(pt.X) - v.pressTime + 0.5)
		if dt := total - v.keyDragLastMovement; dt != 0 {
			v.emitMoveKeys(dt)
			v.keyDragLastMovement = total
		}

	case StateRepositioningGroup:
		total := math.Floor(v.zoom.XToTime(pt.X) - v.pressTime + 0.5)
		if dt := total - v.keyDragLastMovement; dt != 0 {
			v.emitMoveGroup(dt)
			v.keyDragLastMovement = total
		}

	case StateRepositioningClip:
		grabOffset := v.pressTime - float64(v.timeOffsetOnPress)
		newOffset := int(math.Floor(v.zoom.XToTime(pt.X) - grabOffset + 0.5))
		v.emitClipMove(newOffset)

	case StateTrimmingClipLeft:
		v.emitTrim(curve.ParamFirstFrame, CmdTrimLeft, v.trimTarget(pt))

	case StateTrimmingClipRight:
		v.emitTrim(curve.ParamLastFrame, CmdTrimRight, v.trimTarget(pt))

	case StateRectangleSelecting:
		v.hoverCursor = CursorCross
		v.selectionRect = RectFromCorners(
			Point{X: v.pressTime, Y: v.pressPt.Y},
			Point{X: v.zoom.XToTime(pt.X), Y: pt.Y},
		)
		v.updateRectSelection(mods.Shift)
	}
	v.lastMovePt = pt
}

// trimTarget maps the pointer time back into the reader's source frame
// numbering by undoing the clip's time offset.
func (v *View) trimTarget(pt Point) int {
	off, _ := v.model.ScalarByName(v.currentEditedReader, curve.ParamTimeOffset)
	return int(math.Floor(v.zoom.XToTime(pt.X)-float64(off) + 0.5))
}

// MouseRelease ends the running gesture and returns the machine to Idle.
func (v *View) MouseRelease(pt Point, mods Modifiers) {
	if v.state == StateIdle {
		return
	}
	if v.state == StateRectangleSelecting {
		v.hasSelectionRect = false
		v.selectionRect = Rect{}
		if v.selection.len() > 1 {
			v.recomputeSelectionBounds()
		}
	}
	v.state = StateIdle
	v.currentEditedReader = ""
	v.currentEditedGroup = ""
	v.pressSelection = nil
	v.gesture = ""
	v.hoverCursor = cursorFor(v.hitTest(pt).Kind)
}

// Wheel zooms about the pointer. The ratio compounds per wheel unit, so
// fine-grained devices zoom smoothly and notched wheels step.
func (v *View) Wheel(pt Point, delta float64) {
	if delta == 0 {
		return
	}
	cx, cy := v.zoom.ToZoom(pt.X, pt.Y)
	v.zoom.ZoomAboutPoint(cx, cy, math.Pow(wheelZoomPerDelta, delta))
	v.updateFrameIndicator()
	v.recomputeSelectionBounds()
}

// updateRectSelection rebuilds the selection from the rubber band: the keys
// inside the band, plus the pre-press selection when additive.
func (v *View) updateRectSelection(additive bool) {
	keys := v.keysInRect(v.selectionRect)
	v.selection.clear()
	if additive {
		for _, k := range v.pressSelection {
			if v.selection.indexOf(k) < 0 {
				v.selection.keys = append(v.selection.keys, k)
			}
		}
	}
	for _, k := range keys {
		if v.selection.indexOf(k) < 0 {
			v.selection.keys = append(v.selection.keys, k)
		}
	}
	v.recomputeSelectionBounds()
}

func (v *View) emitMoveKeys(dt float64) {
	cmd := newCommand(CmdMoveKeys, v.gesture)
	cmd.Keys = v.selection.all()
	cmd.Dt = dt
	if err := v.commands.Push(cmd); err != nil {
		v.logger.Warn("move keys rejected", "err", err)
		return
	}
	v.selection.shiftTimes(dt)
	v.recomputeSelectionBounds()
	v.recomputeGroupRangesForSelection()
}

func (v *View) emitMoveGroup(dt float64) {
	cmd := newCommand(CmdMoveGroup, v.gesture)
	cmd.Node = v.currentEditedGroup
	cmd.Dt = dt
	if err := v.commands.Push(cmd); err != nil {
		v.logger.Warn("move group rejected", "err", err)
		return
	}
	v.computeNodeRange(v.currentEditedGroup)
	v.recomputeAncestorRanges(v.currentEditedGroup)
}

func (v *View) emitClipMove(newOffset int) {
	cur, ok := v.model.ScalarByName(v.currentEditedReader, curve.ParamTimeOffset)
	if !ok || newOffset == cur {
		return
	}
	cmd := newCommand(CmdMoveClip, v.gesture)
	cmd.Node = v.currentEditedReader
	cmd.OldValue = cur
	cmd.NewValue = newOffset
	if err := v.commands.Push(cmd); err != nil {
		v.logger.Warn("clip move rejected", "err", err)
		return
	}
	v.computeNodeRange(v.currentEditedReader)
	v.recomputeAncestorRanges(v.currentEditedReader)
}

func (v *View) emitTrim(param string, kind CommandKind, newVal int) {
	cur, ok := v.model.ScalarByName(v.currentEditedReader, param)
	if !ok || newVal == cur {
		return
	}
	cmd := newCommand(kind, v.gesture)
	cmd.Node = v.currentEditedReader
	cmd.OldValue = cur
	cmd.NewValue = newVal
	if err := v.commands.Push(cmd); err != nil {
		// Trims that would cross the opposite edge are refused by the
		// document; the clip just stops following the pointer.
		return
	}
	v.computeNodeRange(v.currentEditedReader)
	v.recomputeAncestorRanges(v.currentEditedReader)
}
