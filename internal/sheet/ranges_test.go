package sheet

import (
	"testing"

	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

func TestReaderRangeFromScalars(t *testing.T) {
	f := newFixture(t)
	reader := f.node(t, "Read1")

	// Sample defaults: firstFrame=1, lastFrame=48, startingTime=1.
	r, ok := f.view.NodeRange(reader.ID)
	if !ok || r.First != 1 || r.Last != 48 {
		t.Fatalf("initial reader range = %+v ok=%v, want [1, 48]", r, ok)
	}

	if err := f.model.SetScalarByName(reader.ID, curve.ParamFirstFrame, 10); err != nil {
		t.Fatal(err)
	}
	if err := f.model.SetScalarByName(reader.ID, curve.ParamLastFrame, 20); err != nil {
		t.Fatal(err)
	}
	if err := f.model.SetScalarByName(reader.ID, curve.ParamStartingTime, 100); err != nil {
		t.Fatal(err)
	}

	r, ok = f.view.NodeRange(reader.ID)
	if !ok || r.First != 100 || r.Last != 110 {
		t.Errorf("reader range = %+v ok=%v, want [100, 110]", r, ok)
	}
}

func TestGroupRangeAggregatesVisibleChildren(t *testing.T) {
	f := newFixture(t)
	group := f.node(t, "Group1")
	transform := f.node(t, "Transform1")
	grade := f.node(t, "Grade1")

	r, ok := f.view.NodeRange(group.ID)
	if !ok || r.First != 5 || r.Last != 30 {
		t.Fatalf("group range = %+v ok=%v, want [5, 30]", r, ok)
	}

	// Closed panels stop contributing.
	f.model.SetPanelOpen(transform.ID, false)
	r, _ = f.view.NodeRange(group.ID)
	if r.First != 10 || r.Last != 24 {
		t.Errorf("range without transform = %+v, want [10, 24]", r)
	}

	f.model.SetPanelOpen(grade.ID, false)
	r, _ = f.view.NodeRange(group.ID)
	if !r.IsZero() {
		t.Errorf("range with no visible animation = %+v, want zero", r)
	}
}

func TestGroupRangeFollowsKeyEdits(t *testing.T) {
	f := newFixture(t)
	group := f.node(t, "Group1")
	translate := f.param(t, "Transform1", "translate")

	if err := f.model.SetKeyframe(translate.ID, 0, curve.Keyframe{Time: 100}); err != nil {
		t.Fatal(err)
	}
	r, _ := f.view.NodeRange(group.ID)
	if r.First != 5 || r.Last != 100 {
		t.Errorf("range after new key = %+v, want [5, 100]", r)
	}

	if err := f.model.RemoveKeyframe(translate.ID, 0, 100); err != nil {
		t.Fatal(err)
	}
	r, _ = f.view.NodeRange(group.ID)
	if r.First != 5 || r.Last != 30 {
		t.Errorf("range after key removal = %+v, want [5, 30]", r)
	}
}

func TestRangesRebuiltOnNodeRemoval(t *testing.T) {
	f := newFixture(t)
	group := f.node(t, "Group1")
	transform := f.node(t, "Transform1")

	f.model.RemoveNode(transform.ID)

	r, _ := f.view.NodeRange(group.ID)
	if r.First != 10 || r.Last != 24 {
		t.Errorf("group range after child removal = %+v, want [10, 24]", r)
	}
	if _, ok := f.view.NodeRange(transform.ID); ok {
		t.Error("removed node still has a cached range")
	}
}
