package sheet

import (
	"math"
	"testing"

	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

func TestSelectAllAndDelete(t *testing.T) {
	f := newFixture(t)

	f.view.SelectAll()
	// Sample animation: 2+2 translate, 2 gain, 2 size.
	if got := len(f.view.Selection()); got != 8 {
		t.Fatalf("selected = %d, want 8", got)
	}
	if !f.view.SelectionBoundsRect().Valid {
		t.Error("bounds should be valid for a full selection")
	}

	f.view.DeleteSelectedKeyframes()
	gain := f.param(t, "Grade1", "gain")
	if gain.Curves[0].HasKeys() {
		t.Error("gain keys survived delete")
	}
	if len(f.view.Selection()) != 0 {
		t.Error("selection should clear after delete")
	}

	if err := f.stack.Undo(); err != nil {
		t.Fatal(err)
	}
	if len(gain.Curves[0].Keys) != 2 {
		t.Errorf("undo restored %d gain keys, want 2", len(gain.Curves[0].Keys))
	}
}

func TestSetSelectedKeysInterp(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")

	f.view.SelectAll()
	f.view.SetSelectedKeysInterp(curve.InterpHorizontal)

	if got := gain.Curves[0].Keys[0].Interp; got != curve.InterpHorizontal {
		t.Fatalf("interp = %v, want horizontal", got)
	}

	if err := f.stack.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := gain.Curves[0].Keys[0].Interp; got != curve.InterpCatmullRom {
		t.Errorf("interp after undo = %v, want catmullRom", got)
	}
}

func TestSelectionBoundsPadding(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")

	f.view.selection.toggleOrAdd([]SelectedKey{
		{Param: gain.ID, Dim: 0, Key: gain.Curves[0].Keys[0]}, // t=10
		{Param: gain.ID, Dim: 0, Key: gain.Curves[0].Keys[1]}, // t=24
	}, false)
	f.view.recomputeSelectionBounds()

	b := f.view.SelectionBoundsRect()
	if !b.Valid {
		t.Fatal("bounds should be valid")
	}
	// Identity zoom: the half-glyph pad is 7 frames; the row center sits at
	// 150 with a fixed 4px vertical pad.
	if math.Abs(b.TimeMin-3) > 1e-9 || math.Abs(b.TimeMax-31) > 1e-9 {
		t.Errorf("time extent = [%v, %v], want [3, 31]", b.TimeMin, b.TimeMax)
	}
	if math.Abs(b.YTop-146) > 1e-9 || math.Abs(b.YBottom-154) > 1e-9 {
		t.Errorf("y extent = [%v, %v], want [146, 154]", b.YTop, b.YBottom)
	}
}

func TestBoundsInvalidForSingleKey(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")

	f.view.selection.toggleOrAdd([]SelectedKey{
		{Param: gain.ID, Dim: 0, Key: gain.Curves[0].Keys[0]},
	}, false)
	f.view.recomputeSelectionBounds()

	if f.view.SelectionBoundsRect().Valid {
		t.Error("a single selected key must not produce bounds")
	}
}

func TestSyncAfterHistoryPrunesStaleSelection(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")
	size := f.param(t, "Blur1", "size")

	f.view.selection.toggleOrAdd([]SelectedKey{
		{Param: gain.ID, Dim: 0, Key: gain.Curves[0].Keys[0]},
		{Param: size.ID, Dim: 0, Key: size.Curves[0].Keys[0]},
	}, false)

	f.model.RemoveKeyframe(gain.ID, 0, 10)
	f.view.SyncAfterHistory()

	sel := f.view.Selection()
	if len(sel) != 1 || sel[0].Param != size.ID {
		t.Errorf("selection after prune = %+v, want only the size key", sel)
	}
}

func TestFrameFitsContent(t *testing.T) {
	f := newFixture(t)

	f.view.Wheel(Point{X: 300, Y: 100}, 960)
	f.view.Frame()

	z := f.view.Zoom()
	// Content spans key times [3, 40] and the reader range [1, 48].
	if z.Left() > 1 || z.Right() < 48 {
		t.Errorf("window [%v, %v] does not cover [1, 48]", z.Left(), z.Right())
	}
}

func TestFrameSelectionFallsBackToAll(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")

	f.view.selection.toggleOrAdd([]SelectedKey{
		{Param: gain.ID, Dim: 0, Key: gain.Curves[0].Keys[0]},
		{Param: gain.ID, Dim: 0, Key: gain.Curves[0].Keys[1]},
	}, false)
	f.view.FrameSelection()
	z := f.view.Zoom()
	if z.Left() > 10 || z.Right() < 24 {
		t.Errorf("window [%v, %v] does not cover the selection", z.Left(), z.Right())
	}

	f.view.ClearSelection()
	f.view.FrameSelection()
	z = f.view.Zoom()
	if z.Left() > 1 || z.Right() < 48 {
		t.Errorf("fallback window [%v, %v] does not cover all content", z.Left(), z.Right())
	}
}

func TestRenderStateSnapshot(t *testing.T) {
	f := newFixture(t)
	f.view.SelectAll()

	st := f.view.RenderState()
	if len(st.Rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(st.Rows))
	}
	if len(st.Clips) != 2 {
		t.Errorf("clips = %d, want reader and group", len(st.Clips))
	}
	if st.Selection.Count != 8 || st.Selection.Bounds == nil {
		t.Errorf("selection count=%d bounds=%v", st.Selection.Count, st.Selection.Bounds)
	}
	if st.Selection.Rect != nil {
		t.Error("no rubber band should be active")
	}
	if st.State != "idle" {
		t.Errorf("state = %q", st.State)
	}

	var selected int
	for _, row := range st.Rows {
		for _, k := range row.Keys {
			if k.Selected {
				selected++
			}
		}
	}
	if selected == 0 {
		t.Error("no rendered key marked selected")
	}
}

func TestDeleteUndoSurvivesLaterSelection(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")
	y := rowCenterY(7)

	f.view.MousePress(Point{X: 10, Y: y}, ButtonLeft, Modifiers{})
	f.view.MouseRelease(Point{X: 10, Y: y}, Modifiers{})
	f.view.MousePress(Point{X: 24, Y: y}, ButtonLeft, Modifiers{Shift: true})
	f.view.MouseRelease(Point{X: 24, Y: y}, Modifiers{Shift: true})
	f.view.DeleteSelectedKeyframes()

	// Selecting other keys afterwards must not disturb the recorded
	// command's key snapshots.
	f.view.MousePress(Point{X: 3, Y: rowCenterY(9)}, ButtonLeft, Modifiers{})
	f.view.MouseRelease(Point{X: 3, Y: rowCenterY(9)}, Modifiers{})

	if err := f.stack.Undo(); err != nil {
		t.Fatal(err)
	}
	if len(gain.Curves[0].Keys) != 2 {
		t.Errorf("undo restored %d gain keys, want 2", len(gain.Curves[0].Keys))
	}
}

func TestResizeBeforeFirstFitKeepsUnitScale(t *testing.T) {
	f := newFixture(t)

	// No fit yet: widening the viewport reveals more frames at the same
	// one-pixel-per-frame mapping.
	f.view.SetScreenSize(1600, 900)
	if got := f.view.Zoom().XToTime(123); math.Abs(got-123) > 1e-9 {
		t.Fatalf("x 123 maps to time %v, want 123", got)
	}

	// After a fit, resizing preserves the data window instead.
	f.view.Frame()
	left, right := f.view.Zoom().Left(), f.view.Zoom().Right()
	f.view.SetScreenSize(400, 300)
	if got := f.view.Zoom().Left(); math.Abs(got-left) > 1e-9 {
		t.Errorf("left edge %v changed on resize, want %v", got, left)
	}
	if got := f.view.Zoom().Right(); math.Abs(got-right) > 1e-9 {
		t.Errorf("right edge %v changed on resize, want %v", got, right)
	}
}

func TestRowExpansionCollapsesRows(t *testing.T) {
	f := newFixture(t)
	transform := f.node(t, "Transform1")

	before := len(f.layout.VisibleRows())
	f.layout.SetNodeExpanded(transform.ID, false)
	f.view.OnRowExpansionChanged(transform.ID)
	after := len(f.layout.VisibleRows())

	// The translate param row and its two dim rows fold away.
	if before-after != 3 {
		t.Errorf("rows %d -> %d, want 3 fewer", before, after)
	}
}
