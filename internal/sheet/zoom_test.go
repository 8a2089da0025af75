package sheet

import (
	"math"
	"testing"
)

func TestZoomRoundTrip(t *testing.T) {
	z := NewZoomContext(640, 480)
	z.Fill(12, 100, -5, 5)

	pts := []struct{ x, y float64 }{
		{0, 0},
		{320, 240},
		{639, 479},
		{17.25, 301.5},
	}
	for _, pt := range pts {
		dx, dy := z.ToZoom(pt.x, pt.y)
		wx, wy := z.ToWidget(dx, dy)
		if math.Abs(wx-pt.x) > 1e-9 || math.Abs(wy-pt.y) > 1e-9 {
			t.Errorf("round trip (%v,%v) -> (%v,%v)", pt.x, pt.y, wx, wy)
		}
	}
}

func TestZoomAboutPointKeepsAnchorColumn(t *testing.T) {
	z := NewZoomContext(640, 480)
	z.Fill(0, 200, 0, 10)

	const anchor = 37.0
	before := z.TimeToX(anchor)
	z.ZoomAboutPoint(anchor, 0, 2.5)
	after := z.TimeToX(anchor)

	if math.Abs(before-after) > 1e-9 {
		t.Errorf("anchor column moved: %v -> %v", before, after)
	}
	if math.Abs(z.Aspect()/2.5-(640.0/200)/z.Factor()) > 1e-9 {
		t.Errorf("aspect did not scale by 2.5: %v", z.Aspect())
	}
}

func TestZoomAspectClamp(t *testing.T) {
	z := NewZoomContext(640, 480)

	z.ZoomAboutPoint(0, 0, 1e9)
	if z.Aspect() != maxZoomAspect {
		t.Errorf("aspect = %v, want clamp at %v", z.Aspect(), maxZoomAspect)
	}

	z = NewZoomContext(640, 480)
	z.ZoomAboutPoint(0, 0, 1e-9)
	if z.Aspect() != minZoomAspect {
		t.Errorf("aspect = %v, want clamp at %v", z.Aspect(), minZoomAspect)
	}
}

func TestDegenerateContextShortCircuits(t *testing.T) {
	z := NewZoomContext(0, 0)
	if !z.Degenerate() {
		t.Fatal("zero-size context should be degenerate")
	}
	if x, y := z.ToZoom(100, 100); x != 0 || y != 0 {
		t.Errorf("ToZoom on degenerate context = (%v,%v)", x, y)
	}
	if z.TimeToX(50) != 0 {
		t.Error("TimeToX on degenerate context should be 0")
	}
}

func TestSetScreenSizeKeepsDataWindow(t *testing.T) {
	z := NewZoomContext(640, 480)
	z.Fill(10, 110, -2, 8)

	left, right := z.Left(), z.Right()
	bottom, top := z.Bottom(), z.Top()

	z.SetScreenSize(1280, 240, true)

	if math.Abs(z.Left()-left) > 1e-9 || math.Abs(z.Right()-right) > 1e-9 ||
		math.Abs(z.Bottom()-bottom) > 1e-9 || math.Abs(z.Top()-top) > 1e-9 {
		t.Errorf("window changed: [%v,%v]x[%v,%v] -> [%v,%v]x[%v,%v]",
			left, right, bottom, top, z.Left(), z.Right(), z.Bottom(), z.Top())
	}
}
