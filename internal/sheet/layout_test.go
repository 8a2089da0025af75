package sheet

import "testing"

func TestSingleDimParamNeverExpands(t *testing.T) {
	f := newFixture(t)
	gain := f.param(t, "Grade1", "gain")
	translate := f.param(t, "Transform1", "translate")

	if f.layout.ParamExpanded(gain.ID) {
		t.Error("single-dim param reports expanded, its one row owns the keys")
	}
	if !f.layout.ParamExpanded(translate.ID) {
		t.Error("multi-dim param should default to expanded")
	}
	for _, row := range f.layout.VisibleRows() {
		if row.Param == gain.ID && row.Dim >= 0 {
			t.Errorf("dim row emitted for single-dim param: %+v", row)
		}
	}

	// Single-dim keys stay reachable by select-all through the param row.
	f.view.SelectAll()
	found := 0
	for _, k := range f.view.Selection() {
		if k.Param == gain.ID {
			found++
		}
	}
	if found != 2 {
		t.Errorf("select-all picked %d gain keys, want 2", found)
	}
}
