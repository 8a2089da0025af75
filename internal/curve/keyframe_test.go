package curve

import "testing"

func TestCurveSetKeepsOrderAndReplaces(t *testing.T) {
	var c Curve
	c.Set(Keyframe{Time: 10, Value: 1})
	c.Set(Keyframe{Time: 2, Value: 2})
	c.Set(Keyframe{Time: 5, Value: 3})
	c.Set(Keyframe{Time: 5, Value: 4, Interp: InterpLinear})

	if len(c.Keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(c.Keys))
	}
	for i := 1; i < len(c.Keys); i++ {
		if c.Keys[i-1].Time >= c.Keys[i].Time {
			t.Fatalf("keys out of order: %v", c.Keys)
		}
	}
	k, ok := c.At(5)
	if !ok || k.Value != 4 || k.Interp != InterpLinear {
		t.Errorf("Set at occupied time should replace, got %+v ok=%v", k, ok)
	}
}

func TestCurveMoveOntoOccupiedTimeReplaces(t *testing.T) {
	var c Curve
	c.Set(Keyframe{Time: 1, Value: 10})
	c.Set(Keyframe{Time: 4, Value: 40})

	moved, ok := c.Move(1, 3)
	if !ok {
		t.Fatal("move failed")
	}
	if moved.Time != 4 || moved.Value != 10 {
		t.Errorf("moved key = %+v", moved)
	}
	if len(c.Keys) != 1 {
		t.Errorf("expected the occupied key to be replaced, got %d keys", len(c.Keys))
	}
}

func TestCurveInRange(t *testing.T) {
	var c Curve
	for _, time := range []float64{1, 5, 9, 14} {
		c.Set(Keyframe{Time: time})
	}
	got := c.InRange(5, 9)
	if len(got) != 2 || got[0].Time != 5 || got[1].Time != 9 {
		t.Errorf("InRange(5,9) = %v", got)
	}
	if got := c.InRange(10, 12); len(got) != 0 {
		t.Errorf("InRange(10,12) = %v", got)
	}
}

func TestCurveRemove(t *testing.T) {
	var c Curve
	c.Set(Keyframe{Time: 3})
	if !c.Remove(3) {
		t.Error("Remove(3) = false")
	}
	if c.Remove(3) {
		t.Error("second Remove(3) = true")
	}
	if c.HasKeys() {
		t.Error("curve should be empty")
	}
}
