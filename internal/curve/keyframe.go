package curve

import "sort"

// InterpType is the tangent/blend rule used between a keyframe and its
// successor.
type InterpType string

const (
	InterpConstant   InterpType = "constant"
	InterpLinear     InterpType = "linear"
	InterpSmooth     InterpType = "smooth"
	InterpCatmullRom InterpType = "catmullRom"
	InterpCubic      InterpType = "cubic"
	InterpHorizontal InterpType = "horizontal"
	InterpBroken     InterpType = "broken"
	InterpFree       InterpType = "free"
)

// Keyframe is a single (time, value, interpolation) sample on a curve.
type Keyframe struct {
	Time   float64    `json:"time"`
	Value  float64    `json:"value"`
	Interp InterpType `json:"interp"`
}

// Curve is the time-ordered keyframe set of one parameter dimension.
// Keys are unique per time; Set replaces an existing key at the same time.
type Curve struct {
	Keys []Keyframe `json:"keys"`
}

// Set inserts or replaces the key at kf.Time, keeping time order.
func (c *Curve) Set(kf Keyframe) {
	i := sort.Search(len(c.Keys), func(i int) bool {
		return c.Keys[i].Time >= kf.Time
	})
	if i < len(c.Keys) && c.Keys[i].Time == kf.Time {
		c.Keys[i] = kf
		return
	}
	c.Keys = append(c.Keys, Keyframe{})
	copy(c.Keys[i+1:], c.Keys[i:])
	c.Keys[i] = kf
}

// Remove deletes the key at the given time. Reports whether a key existed.
func (c *Curve) Remove(time float64) bool {
	i, ok := c.index(time)
	if !ok {
		return false
	}
	c.Keys = append(c.Keys[:i], c.Keys[i+1:]...)
	return true
}

// At returns the key at the exact given time.
func (c *Curve) At(time float64) (Keyframe, bool) {
	i, ok := c.index(time)
	if !ok {
		return Keyframe{}, false
	}
	return c.Keys[i], true
}

// Move shifts the key at time by dt. A key already sitting at the target
// time is replaced. Returns the moved key and whether the source existed.
func (c *Curve) Move(time, dt float64) (Keyframe, bool) {
	i, ok := c.index(time)
	if !ok {
		return Keyframe{}, false
	}
	kf := c.Keys[i]
	c.Keys = append(c.Keys[:i], c.Keys[i+1:]...)
	kf.Time += dt
	c.Set(kf)
	return kf, true
}

// InRange returns the keys with time in [first, last], in time order.
func (c *Curve) InRange(first, last float64) []Keyframe {
	var out []Keyframe
	for _, kf := range c.Keys {
		if kf.Time < first {
			continue
		}
		if kf.Time > last {
			break
		}
		out = append(out, kf)
	}
	return out
}

// HasKeys reports whether the curve carries any animation.
func (c *Curve) HasKeys() bool {
	return len(c.Keys) > 0
}

func (c *Curve) index(time float64) (int, bool) {
	i := sort.Search(len(c.Keys), func(i int) bool {
		return c.Keys[i].Time >= time
	})
	if i < len(c.Keys) && c.Keys[i].Time == time {
		return i, true
	}
	return 0, false
}
