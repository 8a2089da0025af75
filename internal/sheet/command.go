package sheet

import (
	"fmt"

	"github.com/keygrid/keygrid/sheet-go/internal/curve"
	"github.com/keygrid/keygrid/sheet-go/internal/typeid"
)

// CommandKind enumerates the undoable mutations the viewport emits.
type CommandKind string

const (
	CmdMoveKeys   CommandKind = "keys.move"
	CmdMoveGroup  CommandKind = "group.move"
	CmdTrimLeft   CommandKind = "clip.trimLeft"
	CmdTrimRight  CommandKind = "clip.trimRight"
	CmdMoveClip   CommandKind = "clip.move"
	CmdSetInterp  CommandKind = "keys.setInterp"
	CmdRemoveKeys CommandKind = "keys.remove"
)

// Command describes one undoable mutation: its kind, the affected entities
// and the before/after values needed to reverse it. Commands emitted during
// one continuous drag share a Gesture ID so a merging stack can coalesce
// them into a single undo step.
type Command struct {
	ID      string      `json:"id"`
	Kind    CommandKind `json:"kind"`
	Gesture string      `json:"gesture,omitempty"`

	Node curve.NodeID  `json:"node,omitempty"`
	Keys []SelectedKey `json:"keys,omitempty"`

	// keys.move / group.move
	Dt float64 `json:"dt,omitempty"`

	// clip trims and moves (scalar before/after)
	OldValue int `json:"oldValue,omitempty"`
	NewValue int `json:"newValue,omitempty"`

	// keys.setInterp
	Interp     curve.InterpType   `json:"interp,omitempty"`
	OldInterps []curve.InterpType `json:"oldInterps,omitempty"`
}

func newCommand(kind CommandKind, gesture string) *Command {
	return &Command{
		ID:      typeid.NewCommandID(),
		Kind:    kind,
		Gesture: gesture,
	}
}

// CommandSink is the external undo-stack contract: every state-mutating
// user action lands here exactly once. Push both applies and records the
// command; a rejected mutation returns an error and records nothing.
type CommandSink interface {
	Push(cmd *Command) error
}

// Stack is a linear undo stack over the curve model with gesture merging:
// consecutive commands of the same kind and gesture collapse into one
// undoable step.
type Stack struct {
	model    *curve.Model
	commands []*Command
	cursor   int // number of applied commands
}

func NewStack(model *curve.Model) *Stack {
	return &Stack{model: model}
}

// Len returns the number of recorded undo steps.
func (s *Stack) Len() int { return len(s.commands) }

// CanUndo reports whether an applied step remains to reverse.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether an undone step remains to re-apply.
func (s *Stack) CanRedo() bool { return s.cursor < len(s.commands) }

// Push applies the command to the model and records it, merging into the
// previous step when it continues the same gesture.
func (s *Stack) Push(cmd *Command) error {
	if err := s.apply(cmd); err != nil {
		return err
	}
	// Pushing invalidates anything previously undone.
	s.commands = s.commands[:s.cursor]

	if top := s.top(); top != nil && mergeable(cmd.Kind) && top.Gesture != "" && top.Gesture == cmd.Gesture && top.Kind == cmd.Kind {
		merge(top, cmd)
		return nil
	}
	s.commands = append(s.commands, cmd)
	s.cursor++
	return nil
}

func mergeable(kind CommandKind) bool {
	switch kind {
	case CmdMoveKeys, CmdMoveGroup, CmdTrimLeft, CmdTrimRight, CmdMoveClip:
		return true
	}
	return false
}

// Undo reverses the latest applied step.
func (s *Stack) Undo() error {
	if s.cursor == 0 {
		return fmt.Errorf("nothing to undo")
	}
	cmd := s.commands[s.cursor-1]
	if err := s.revert(cmd); err != nil {
		return err
	}
	s.cursor--
	return nil
}

// Redo re-applies the latest undone step.
func (s *Stack) Redo() error {
	if s.cursor >= len(s.commands) {
		return fmt.Errorf("nothing to redo")
	}
	cmd := s.commands[s.cursor]
	if err := s.apply(cmd); err != nil {
		return err
	}
	s.cursor++
	return nil
}

func (s *Stack) top() *Command {
	if s.cursor == 0 {
		return nil
	}
	return s.commands[s.cursor-1]
}

func merge(top, cmd *Command) {
	switch cmd.Kind {
	case CmdMoveKeys, CmdMoveGroup:
		// Keep the pre-gesture key snapshots, accumulate the offset.
		top.Dt += cmd.Dt
	case CmdTrimLeft, CmdTrimRight, CmdMoveClip:
		top.NewValue = cmd.NewValue
	}
}

func (s *Stack) apply(cmd *Command) error {
	switch cmd.Kind {
	case CmdMoveKeys:
		// Stale references (key removed since selection) degrade to no-ops.
		for _, ref := range cmd.Keys {
			s.model.MoveKeyframe(ref.Param, ref.Dim, ref.Key.Time, cmd.Dt)
		}
	case CmdMoveGroup:
		s.model.MoveNodeKeyframes(cmd.Node, cmd.Dt)
	case CmdTrimLeft:
		return s.model.SetScalarByName(cmd.Node, curve.ParamFirstFrame, cmd.NewValue)
	case CmdTrimRight:
		return s.model.SetScalarByName(cmd.Node, curve.ParamLastFrame, cmd.NewValue)
	case CmdMoveClip:
		return s.model.SetScalarByName(cmd.Node, curve.ParamTimeOffset, cmd.NewValue)
	case CmdSetInterp:
		for _, ref := range cmd.Keys {
			s.model.SetInterp(ref.Param, ref.Dim, ref.Key.Time, cmd.Interp)
		}
	case CmdRemoveKeys:
		for _, ref := range cmd.Keys {
			s.model.RemoveKeyframe(ref.Param, ref.Dim, ref.Key.Time)
		}
	default:
		return fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
	return nil
}

func (s *Stack) revert(cmd *Command) error {
	switch cmd.Kind {
	case CmdMoveKeys:
		for _, ref := range cmd.Keys {
			s.model.MoveKeyframe(ref.Param, ref.Dim, ref.Key.Time+cmd.Dt, -cmd.Dt)
		}
	case CmdMoveGroup:
		s.model.MoveNodeKeyframes(cmd.Node, -cmd.Dt)
	case CmdTrimLeft:
		return s.model.SetScalarByName(cmd.Node, curve.ParamFirstFrame, cmd.OldValue)
	case CmdTrimRight:
		return s.model.SetScalarByName(cmd.Node, curve.ParamLastFrame, cmd.OldValue)
	case CmdMoveClip:
		return s.model.SetScalarByName(cmd.Node, curve.ParamTimeOffset, cmd.OldValue)
	case CmdSetInterp:
		for i, ref := range cmd.Keys {
			old := cmd.Interp
			if i < len(cmd.OldInterps) {
				old = cmd.OldInterps[i]
			}
			s.model.SetInterp(ref.Param, ref.Dim, ref.Key.Time, old)
		}
	case CmdRemoveKeys:
		for _, ref := range cmd.Keys {
			s.model.SetKeyframe(ref.Param, ref.Dim, ref.Key)
		}
	default:
		return fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
	return nil
}
