package curve

import (
	"fmt"
	"math"
)

// NodeID and ParamID are stable opaque handles. Entities reference each
// other through these handles and side lookup tables, never through
// back-pointers, so a removed entity simply stops resolving.
type NodeID string

type ParamID string

// NodeType is the closed set of animated-unit kinds the dope sheet knows
// how to present.
type NodeType string

const (
	NodeCommon     NodeType = "common"
	NodeReader     NodeType = "reader"
	NodeGroup      NodeType = "group"
	NodeRetime     NodeType = "retime"
	NodeTimeOffset NodeType = "timeOffset"
	NodeFrameRange NodeType = "frameRange"
)

// Names of the scalar parameters that describe a reader's trim window and
// placement on the timeline.
const (
	ParamFirstFrame   = "firstFrame"
	ParamLastFrame    = "lastFrame"
	ParamStartingTime = "startingTime"
	ParamTimeOffset   = "timeOffset"
)

// Node is one animated unit: a row group in the sheet owning parameter rows.
type Node struct {
	ID        NodeID   `json:"id"`
	Name      string   `json:"name"`
	Type      NodeType `json:"type"`
	Params    []ParamID
	Children  []NodeID // group members, empty otherwise
	PanelOpen bool     // whether the node's settings panel is visible
}

// Param is one parameter row, owning one curve per dimension. Scalar params
// (firstFrame and friends) carry an integer value instead of animation.
type Param struct {
	ID         ParamID `json:"id"`
	Node       NodeID  `json:"node"`
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Dims       int     `json:"dims"`
	Curves     []*Curve
	Scalar     int
	CanAnimate bool
}

// Animated reports whether any dimension carries keys.
func (p *Param) Animated() bool {
	for _, c := range p.Curves {
		if c.HasKeys() {
			return true
		}
	}
	return false
}

// Listener receives model change notifications. All callbacks run
// synchronously on the mutating goroutine.
type Listener interface {
	NodeAdded(NodeID)
	NodeRemoved(NodeID)
	KeyframeChanged(ParamID)
	ScalarChanged(ParamID)
	PanelVisibilityChanged(NodeID)
}

// Model is the arena of nodes and parameters the viewport controller reads
// from and mutates through. It is single-goroutine like the controller.
type Model struct {
	nodes   map[NodeID]*Node
	params  map[ParamID]*Param
	parents map[NodeID]NodeID
	order   []NodeID // top-level presentation order

	listeners []Listener
}

func NewModel() *Model {
	return &Model{
		nodes:   make(map[NodeID]*Node),
		params:  make(map[ParamID]*Param),
		parents: make(map[NodeID]NodeID),
	}
}

func (m *Model) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// Node resolves a node handle. A stale handle resolves to (nil, false).
func (m *Model) Node(id NodeID) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Param resolves a parameter handle.
func (m *Model) Param(id ParamID) (*Param, bool) {
	p, ok := m.params[id]
	return p, ok
}

// Parent returns the group owning the node, if any.
func (m *Model) Parent(id NodeID) (NodeID, bool) {
	p, ok := m.parents[id]
	return p, ok
}

// Nodes returns all node handles in presentation order: top-level order,
// each group immediately followed by its members.
func (m *Model) Nodes() []NodeID {
	var out []NodeID
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n, ok := m.nodes[id]
		if !ok {
			return
		}
		out = append(out, id)
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, id := range m.order {
		walk(id)
	}
	return out
}

// AddNode registers a node. parent is the owning group handle or "".
func (m *Model) AddNode(n *Node, parent NodeID) error {
	if _, exists := m.nodes[n.ID]; exists {
		return fmt.Errorf("node %s already exists", n.ID)
	}
	if parent != "" {
		group, ok := m.nodes[parent]
		if !ok {
			return fmt.Errorf("parent group %s not found", parent)
		}
		if group.Type != NodeGroup {
			return fmt.Errorf("parent %s is not a group", parent)
		}
		group.Children = append(group.Children, n.ID)
		m.parents[n.ID] = parent
	} else {
		m.order = append(m.order, n.ID)
	}
	m.nodes[n.ID] = n
	for _, l := range m.listeners {
		l.NodeAdded(n.ID)
	}
	return nil
}

// AddParam attaches a parameter row to its node, allocating one curve per
// dimension.
func (m *Model) AddParam(p *Param) error {
	n, ok := m.nodes[p.Node]
	if !ok {
		return fmt.Errorf("node %s not found", p.Node)
	}
	if _, exists := m.params[p.ID]; exists {
		return fmt.Errorf("param %s already exists", p.ID)
	}
	if p.Dims < 1 {
		p.Dims = 1
	}
	for len(p.Curves) < p.Dims {
		p.Curves = append(p.Curves, &Curve{})
	}
	m.params[p.ID] = p
	n.Params = append(n.Params, p.ID)
	return nil
}

// RemoveNode removes a node, its parameters and (for groups) its whole
// subtree. Listeners see the removal bottom-up.
func (m *Model) RemoveNode(id NodeID) {
	n, ok := m.nodes[id]
	if !ok {
		return
	}
	for _, child := range n.Children {
		m.RemoveNode(child)
	}
	for _, pid := range n.Params {
		delete(m.params, pid)
	}
	if parent, ok := m.parents[id]; ok {
		if group, ok := m.nodes[parent]; ok {
			group.Children = removeID(group.Children, id)
		}
		delete(m.parents, id)
	} else {
		m.order = removeID(m.order, id)
	}
	delete(m.nodes, id)
	for _, l := range m.listeners {
		l.NodeRemoved(id)
	}
}

// SetPanelOpen toggles the node's settings-panel visibility.
func (m *Model) SetPanelOpen(id NodeID, open bool) {
	n, ok := m.nodes[id]
	if !ok || n.PanelOpen == open {
		return
	}
	n.PanelOpen = open
	for _, l := range m.listeners {
		l.PanelVisibilityChanged(id)
	}
}

// SetKeyframe inserts or replaces a key on a parameter dimension.
func (m *Model) SetKeyframe(pid ParamID, dim int, kf Keyframe) error {
	c, err := m.curve(pid, dim)
	if err != nil {
		return err
	}
	c.Set(kf)
	m.notifyKeyframeChanged(pid)
	return nil
}

// RemoveKeyframe deletes the key at the given time.
func (m *Model) RemoveKeyframe(pid ParamID, dim int, time float64) error {
	c, err := m.curve(pid, dim)
	if err != nil {
		return err
	}
	if !c.Remove(time) {
		return fmt.Errorf("no key at time %g on %s[%d]", time, pid, dim)
	}
	m.notifyKeyframeChanged(pid)
	return nil
}

// MoveKeyframe shifts the key at the given time by dt and returns its new
// time.
func (m *Model) MoveKeyframe(pid ParamID, dim int, time, dt float64) (float64, error) {
	c, err := m.curve(pid, dim)
	if err != nil {
		return 0, err
	}
	kf, ok := c.Move(time, dt)
	if !ok {
		return 0, fmt.Errorf("no key at time %g on %s[%d]", time, pid, dim)
	}
	m.notifyKeyframeChanged(pid)
	return kf.Time, nil
}

// SetInterp changes the interpolation kind of the key at the given time and
// returns the previous kind.
func (m *Model) SetInterp(pid ParamID, dim int, time float64, interp InterpType) (InterpType, error) {
	c, err := m.curve(pid, dim)
	if err != nil {
		return "", err
	}
	kf, ok := c.At(time)
	if !ok {
		return "", fmt.Errorf("no key at time %g on %s[%d]", time, pid, dim)
	}
	old := kf.Interp
	kf.Interp = interp
	c.Set(kf)
	m.notifyKeyframeChanged(pid)
	return old, nil
}

// ScalarByName finds the named scalar parameter on a node.
func (m *Model) ScalarByName(id NodeID, name string) (int, bool) {
	p, ok := m.paramByName(id, name)
	if !ok {
		return 0, false
	}
	return p.Scalar, true
}

// SetScalarByName updates a named scalar parameter. For the reader trim pair
// it rejects values that would cross the sibling boundary; trims past the
// sibling come from drags and must bounce off here, not in the controller.
func (m *Model) SetScalarByName(id NodeID, name string, v int) error {
	p, ok := m.paramByName(id, name)
	if !ok {
		return fmt.Errorf("node %s has no scalar %q", id, name)
	}
	switch name {
	case ParamFirstFrame:
		if last, ok := m.ScalarByName(id, ParamLastFrame); ok && v > last {
			return fmt.Errorf("firstFrame %d beyond lastFrame %d", v, last)
		}
	case ParamLastFrame:
		if first, ok := m.ScalarByName(id, ParamFirstFrame); ok && v < first {
			return fmt.Errorf("lastFrame %d before firstFrame %d", v, first)
		}
	}
	if p.Scalar == v {
		return nil
	}
	p.Scalar = v
	for _, l := range m.listeners {
		l.ScalarChanged(p.ID)
	}

	// A reader's placement follows its trim and offset: the clip starts on
	// the timeline at firstFrame + timeOffset. Explicit startingTime writes
	// override until the next trim or offset change.
	if name == ParamFirstFrame || name == ParamTimeOffset {
		if n, ok := m.nodes[id]; ok && n.Type == NodeReader {
			first, ok1 := m.ScalarByName(id, ParamFirstFrame)
			off, ok2 := m.ScalarByName(id, ParamTimeOffset)
			if ok1 && ok2 {
				if sp, ok := m.paramByName(id, ParamStartingTime); ok && sp.Scalar != first+off {
					sp.Scalar = first + off
					for _, l := range m.listeners {
						l.ScalarChanged(sp.ID)
					}
				}
			}
		}
	}
	return nil
}

// MoveNodeKeyframes shifts every key of every animated parameter of the node
// (and, for groups, its whole subtree) by dt as one logical offset.
func (m *Model) MoveNodeKeyframes(id NodeID, dt float64) {
	n, ok := m.nodes[id]
	if !ok || dt == 0 {
		return
	}
	for _, pid := range n.Params {
		p := m.params[pid]
		changed := false
		for _, c := range p.Curves {
			if !c.HasKeys() {
				continue
			}
			for i := range c.Keys {
				c.Keys[i].Time += dt
			}
			changed = true
		}
		if changed {
			m.notifyKeyframeChanged(pid)
		}
	}
	for _, child := range n.Children {
		m.MoveNodeKeyframes(child, dt)
	}
}

// KeyframeRange returns the min/max key time over every animated parameter
// of panel-open nodes, or ok=false when nothing is animated.
func (m *Model) KeyframeRange() (first, last float64, ok bool) {
	first = math.Inf(1)
	last = math.Inf(-1)
	for _, id := range m.Nodes() {
		n := m.nodes[id]
		if !n.PanelOpen {
			continue
		}
		for _, pid := range n.Params {
			p := m.params[pid]
			if !p.CanAnimate {
				continue
			}
			for _, c := range p.Curves {
				if !c.HasKeys() {
					continue
				}
				ok = true
				first = math.Min(first, c.Keys[0].Time)
				last = math.Max(last, c.Keys[len(c.Keys)-1].Time)
			}
		}
	}
	if !ok {
		return 0, 0, false
	}
	return first, last, true
}

func (m *Model) curve(pid ParamID, dim int) (*Curve, error) {
	p, ok := m.params[pid]
	if !ok {
		return nil, fmt.Errorf("param %s not found", pid)
	}
	if dim < 0 || dim >= len(p.Curves) {
		return nil, fmt.Errorf("param %s has no dimension %d", pid, dim)
	}
	return p.Curves[dim], nil
}

func (m *Model) paramByName(id NodeID, name string) (*Param, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return nil, false
	}
	for _, pid := range n.Params {
		if p, ok := m.params[pid]; ok && p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func (m *Model) notifyKeyframeChanged(pid ParamID) {
	for _, l := range m.listeners {
		l.KeyframeChanged(pid)
	}
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
