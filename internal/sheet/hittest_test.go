package sheet

import (
	"testing"
)

func TestHitKeyframeWithinTolerance(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")
	y := rowCenterY(7) // gain row; keys at times 10 and 24

	hit := f.view.hitTest(Point{X: 14.9, Y: y})
	if hit.Kind != HitKeyframe {
		t.Fatalf("hit at 4.9px = %v, want keyframe", hit.Kind)
	}
	if len(hit.Keys) != 1 || hit.Keys[0].Param != gain.ID || hit.Keys[0].Key.Time != 10 {
		t.Errorf("keys = %+v", hit.Keys)
	}

	hit = f.view.hitTest(Point{X: 15.1, Y: y})
	if hit.Kind != HitNone {
		t.Errorf("hit at 5.1px = %v, want none", hit.Kind)
	}
}

func TestHitReturnsAllKeysWithinTolerance(t *testing.T) {
	f := newFixture(t)
	// The translate param row aggregates both dims: keys at 5, 12 (x) and
	// 8, 30 (y). Pointer at 6.5 is within 5px of both 5 and 8.
	hit := f.view.hitTest(Point{X: 6.5, Y: rowCenterY(3)})
	if hit.Kind != HitKeyframe {
		t.Fatalf("hit = %v, want keyframe", hit.Kind)
	}
	if len(hit.Keys) != 2 {
		t.Errorf("keys = %+v, want both coincident keys", hit.Keys)
	}
}

func TestHitPriorityBoundsBeforeKeys(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")
	y := rowCenterY(7)

	f.view.selection.toggleOrAdd([]SelectedKey{
		{Param: gain.ID, Dim: 0, Key: gain.Curves[0].Keys[0]},
		{Param: gain.ID, Dim: 0, Key: gain.Curves[0].Keys[1]},
	}, false)
	f.view.recomputeSelectionBounds()

	hit := f.view.hitTest(Point{X: 24, Y: y})
	if hit.Kind != HitSelectionBox {
		t.Errorf("hit over selected key inside bounds = %v, want selectionBox", hit.Kind)
	}
}

func TestHitClipEdgesAndBody(t *testing.T) {
	f := newFixture(t)
	y := rowCenterY(0) // reader row, range [1, 48]

	cases := []struct {
		x    float64
		want HitKind
	}{
		{3, HitClipLeft},
		{46, HitClipRight},
		{25, HitClipBody},
		{55, HitNone},
	}
	for _, c := range cases {
		if hit := f.view.hitTest(Point{X: c.x, Y: y}); hit.Kind != c.want {
			t.Errorf("hit at x=%v = %v, want %v", c.x, hit.Kind, c.want)
		}
	}
}

func TestHitGroupClipBodyHasNoEdges(t *testing.T) {
	f := newFixture(t)
	group := f.node(t, "Group1")
	y := rowCenterY(1) // group row, range [5, 30]

	hit := f.view.hitTest(Point{X: 6, Y: y})
	if hit.Kind != HitClipBody || hit.Node != group.ID {
		t.Errorf("hit near group edge = %v node=%s, want clipBody on group", hit.Kind, hit.Node)
	}
}

func TestHitFrameIndicator(t *testing.T) {
	f := newFixture(t)
	// Current frame is 1; the top pick triangle hangs from y=0 at x=1.
	hit := f.view.hitTest(Point{X: 1, Y: 3})
	if hit.Kind != HitFrameIndicator {
		t.Errorf("hit = %v, want frameIndicator", hit.Kind)
	}
}

func TestKeysInRectUsesRowCenters(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")

	// Sheet-space rect: times 0..50, rows whose center falls in y 140..160.
	rect := Rect{X: 0, Y: 140, Width: 50, Height: 20}
	keys := f.view.keysInRect(rect)
	if len(keys) != 2 {
		t.Fatalf("keys = %+v, want the two gain keys", keys)
	}
	for _, k := range keys {
		if k.Param != gain.ID {
			t.Errorf("unexpected key %+v", k)
		}
	}

	// A band above the row's center picks up nothing.
	if keys := f.view.keysInRect(Rect{X: 0, Y: 155, Width: 50, Height: 30}); len(keys) != 0 {
		t.Errorf("keys for off-center band = %+v", keys)
	}
}

func TestCursorShapes(t *testing.T) {
	cases := map[HitKind]CursorShape{
		HitSelectionBox:   CursorMove,
		HitClipBody:       CursorMove,
		HitKeyframe:       CursorMove,
		HitClipLeft:       CursorResizeH,
		HitClipRight:      CursorResizeH,
		HitFrameIndicator: CursorPointingHand,
		HitNone:           CursorDefault,
	}
	for kind, want := range cases {
		if got := cursorFor(kind); got != want {
			t.Errorf("cursorFor(%v) = %v, want %v", kind, got, want)
		}
	}
}
