package sheet

import (
	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

// SelectedKey is a reference to one selected keyframe: the owning parameter
// handle, the dimension and a snapshot of the key itself. Identity for set
// membership is (param, dim, time), never object identity, so a reference
// taken before a model change still compares correctly.
type SelectedKey struct {
	Param curve.ParamID  `json:"param"`
	Dim   int            `json:"dim"`
	Key   curve.Keyframe `json:"key"`
}

func (k SelectedKey) sameKey(other SelectedKey) bool {
	return k.Param == other.Param && k.Dim == other.Dim && k.Key.Time == other.Key.Time
}

// selectionTracker keeps the current keyframe selection in insertion order
// (order matters only for deterministic aggregate iteration).
type selectionTracker struct {
	keys []SelectedKey
}

// toggleOrAdd merges candidate keys into the selection. Without additive the
// selection is replaced; with additive an already-selected candidate is
// removed instead of re-added.
func (s *selectionTracker) toggleOrAdd(keys []SelectedKey, additive bool) {
	if !additive {
		s.keys = s.keys[:0]
	}
	for _, key := range keys {
		at := s.indexOf(key)
		if at < 0 {
			s.keys = append(s.keys, key)
			continue
		}
		if additive {
			s.keys = append(s.keys[:at], s.keys[at+1:]...)
		}
	}
}

func (s *selectionTracker) indexOf(key SelectedKey) int {
	for i, sel := range s.keys {
		if sel.sameKey(key) {
			return i
		}
	}
	return -1
}

func (s *selectionTracker) clear() { s.keys = s.keys[:0] }
func (s *selectionTracker) len() int { return len(s.keys) }

// all returns a copy: callers stash the result in commands and snapshots
// that must not follow later selection edits.
func (s *selectionTracker) all() []SelectedKey {
	out := make([]SelectedKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// shiftTimes moves every selected snapshot by dt, tracking an in-flight
// drag so the references keep matching the model.
func (s *selectionTracker) shiftTimes(dt float64) {
	for i := range s.keys {
		s.keys[i].Key.Time += dt
	}
}

// SelectionBounds is the derived bounding box of a multi-key selection:
// horizontal extent in data time, vertical extent in widget pixels (row
// geometry never zooms). Invalid whenever fewer than two keys are selected.
type SelectionBounds struct {
	TimeMin float64 `json:"timeMin"`
	TimeMax float64 `json:"timeMax"`
	YTop    float64 `json:"yTop"`
	YBottom float64 `json:"yBottom"`
	Valid   bool    `json:"valid"`
}

// Contains tests a (data time, widget y) point.
func (b SelectionBounds) Contains(time, y float64) bool {
	return b.Valid &&
		time >= b.TimeMin && time <= b.TimeMax &&
		y >= b.YTop && y <= b.YBottom
}
