package sheet

// Aspect-ratio bounds for horizontal zoom requests. Requests that would
// leave this range are clamped, not rejected.
const (
	minZoomAspect = 1e-4
	maxZoomAspect = 1e4
)

// ZoomContext is the affine mapping between sheet data coordinates
// (time on x, value on y, y up) and widget pixels (y down). Horizontal and
// vertical scale are independent: factor is the vertical pixels-per-unit,
// aspect the horizontal-over-vertical ratio.
type ZoomContext struct {
	left   float64 // data x at the left edge
	bottom float64 // data y at the bottom edge
	factor float64
	aspect float64

	screenW int
	screenH int
}

// NewZoomContext returns a context mapping one data unit to one pixel until
// the first Fill.
func NewZoomContext(w, h int) ZoomContext {
	return ZoomContext{factor: 1, aspect: 1, screenW: w, screenH: h}
}

func (z ZoomContext) ScreenWidth() int  { return z.screenW }
func (z ZoomContext) ScreenHeight() int { return z.screenH }
func (z ZoomContext) Left() float64     { return z.left }
func (z ZoomContext) Bottom() float64   { return z.bottom }
func (z ZoomContext) Aspect() float64   { return z.aspect }
func (z ZoomContext) Factor() float64   { return z.factor }

func (z ZoomContext) Right() float64 {
	return z.left + float64(z.screenW)/z.scaleX()
}

func (z ZoomContext) Top() float64 {
	return z.bottom + float64(z.screenH)/z.scaleY()
}

// Degenerate reports whether the context cannot meaningfully map
// coordinates; drawing and hit-testing short-circuit on it.
func (z ZoomContext) Degenerate() bool {
	return z.screenW <= 0 || z.screenH <= 0 || z.factor <= 0 || z.aspect <= 0
}

func (z ZoomContext) scaleX() float64 { return z.factor * z.aspect }
func (z ZoomContext) scaleY() float64 { return z.factor }

// ToZoom converts widget pixels to data coordinates.
func (z ZoomContext) ToZoom(wx, wy float64) (float64, float64) {
	if z.Degenerate() {
		return 0, 0
	}
	dx := z.left + wx/z.scaleX()
	dy := z.bottom + (float64(z.screenH)-wy)/z.scaleY()
	return dx, dy
}

// ToWidget converts data coordinates to widget pixels.
func (z ZoomContext) ToWidget(dx, dy float64) (float64, float64) {
	if z.Degenerate() {
		return 0, 0
	}
	wx := (dx - z.left) * z.scaleX()
	wy := float64(z.screenH) - (dy-z.bottom)*z.scaleY()
	return wx, wy
}

// TimeToX maps a data time to a widget x column.
func (z ZoomContext) TimeToX(t float64) float64 {
	if z.Degenerate() {
		return 0
	}
	return (t - z.left) * z.scaleX()
}

// XToTime maps a widget x column to a data time.
func (z ZoomContext) XToTime(wx float64) float64 {
	if z.Degenerate() {
		return 0
	}
	return z.left + wx/z.scaleX()
}

// Translate pans the view by a data-space delta.
func (z *ZoomContext) Translate(dx, dy float64) {
	z.left += dx
	z.bottom += dy
}

// ZoomAboutPoint rescales horizontally around a fixed data-space point so
// the point keeps its pixel column. Requested factors that would push the
// aspect ratio outside [1e-4, 1e4] are clamped.
func (z *ZoomContext) ZoomAboutPoint(cx, cy float64, scale float64) {
	if scale <= 0 {
		return
	}
	aspect := z.aspect * scale
	if aspect < minZoomAspect {
		aspect = minZoomAspect
		scale = aspect / z.aspect
	} else if aspect > maxZoomAspect {
		aspect = maxZoomAspect
		scale = aspect / z.aspect
	}

	// Keep cx at the same pixel: the left edge moves toward the center
	// proportionally to the scale change.
	z.left = cx - (cx-z.left)/scale
	z.aspect = aspect
	_ = cy // vertical scale is fixed in the dope sheet
}

// Fill resets the view window to the given data-space bounds.
func (z *ZoomContext) Fill(xMin, xMax, yMin, yMax float64) {
	if xMax <= xMin || yMax <= yMin || z.screenW <= 0 || z.screenH <= 0 {
		return
	}
	z.left = xMin
	z.bottom = yMin
	z.factor = float64(z.screenH) / (yMax - yMin)
	z.aspect = (float64(z.screenW) / (xMax - xMin)) / z.factor
}

// SetScreenSize resizes the viewport. When keepWindow is set the data-space
// window is preserved (the scale changes instead); a view that has never
// been fit keeps its scale.
func (z *ZoomContext) SetScreenSize(w, h int, keepWindow bool) {
	if keepWindow && !z.Degenerate() && w > 0 && h > 0 {
		left, right := z.left, z.Right()
		bottom, top := z.bottom, z.Top()
		z.screenW, z.screenH = w, h
		z.Fill(left, right, bottom, top)
		return
	}
	z.screenW, z.screenH = w, h
}
