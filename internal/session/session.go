package session

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/keygrid/keygrid/sheet-go/internal/config"
	"github.com/keygrid/keygrid/sheet-go/internal/curve"
	"github.com/keygrid/keygrid/sheet-go/internal/sheet"
)

// event pairs an inbound message with its sender.
type event struct {
	client *Client
	msg    *Message
}

// Session owns one sheet: the document, the layout, the view controller
// and the undo stack. All of them are confined to the session's Run
// goroutine; clients only talk to it through channels, so the controller
// never sees concurrent access.
type Session struct {
	SheetID string

	model  *curve.Model
	layout *sheet.TableLayout
	stack  *sheet.Stack
	view   *sheet.View
	logger *slog.Logger

	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	events     chan event
	done       chan struct{}
}

func NewSession(sheetID string, model *curve.Model, cfg config.Config, logger *slog.Logger) *Session {
	s := &Session{
		SheetID:    sheetID,
		model:      model,
		logger:     logger.With("sheet", sheetID),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan event, 64),
		done:       make(chan struct{}),
	}
	s.layout = sheet.NewTableLayout(model, 0)
	s.stack = sheet.NewStack(model)
	s.view = sheet.NewView(model, s.layout, s, s.stack, cfg, s.logger)
	return s
}

// Seek receives indicator drags from the view. Playback lives on the host
// side; the frame travels back inside the state snapshot.
func (s *Session) Seek(frame float64) {
	s.logger.Debug("seek", "frame", frame)
}

// Run is the session's event loop. It owns every touch of the view and the
// document, one event at a time, in arrival order.
func (s *Session) Run() {
	for {
		select {
		case c := <-s.register:
			s.clients[c.ClientID] = c
			s.logger.Info("client joined", "client", c.ClientID)
			c.Send(s.welcome(c))
			c.Send(s.stateSync())
		case c := <-s.unregister:
			if _, ok := s.clients[c.ClientID]; ok {
				delete(s.clients, c.ClientID)
				close(c.send)
				s.logger.Info("client left", "client", c.ClientID)
			}
		case ev := <-s.events:
			if err := s.handle(ev.msg); err != nil {
				s.logger.Warn("event rejected", "type", ev.msg.Type, "error", err)
				s.sendError(ev.client, err)
			}
			s.broadcast(s.stateSync())
		case <-s.done:
			for _, c := range s.clients {
				close(c.send)
			}
			return
		}
	}
}

// Stop shuts the event loop down and disconnects every client.
func (s *Session) Stop() { close(s.done) }

// Register attaches a client to the session.
func (s *Session) Register(c *Client) { s.register <- c }

// Empty reports whether any client remains. Only meaningful from inside
// the hub's bookkeeping.
func (s *Session) Empty() bool { return len(s.clients) == 0 }

func (s *Session) handle(msg *Message) error {
	switch msg.Type {
	case TypePointerPress:
		p, err := decode[PointerPayload](msg)
		if err != nil {
			return err
		}
		s.view.MousePress(sheet.Point{X: p.X, Y: p.Y}, sheet.MouseButton(p.Button), sheet.Modifiers{Shift: p.Shift, Ctrl: p.Ctrl})

	case TypePointerMove:
		p, err := decode[PointerPayload](msg)
		if err != nil {
			return err
		}
		s.view.MouseMove(sheet.Point{X: p.X, Y: p.Y}, sheet.Modifiers{Shift: p.Shift, Ctrl: p.Ctrl})

	case TypePointerRelease:
		p, err := decode[PointerPayload](msg)
		if err != nil {
			return err
		}
		s.view.MouseRelease(sheet.Point{X: p.X, Y: p.Y}, sheet.Modifiers{Shift: p.Shift, Ctrl: p.Ctrl})

	case TypeWheel:
		p, err := decode[WheelPayload](msg)
		if err != nil {
			return err
		}
		s.view.Wheel(sheet.Point{X: p.X, Y: p.Y}, p.Delta)

	case TypeResize:
		p, err := decode[ResizePayload](msg)
		if err != nil {
			return err
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("invalid viewport %dx%d", p.Width, p.Height)
		}
		s.view.SetScreenSize(p.Width, p.Height)

	case TypeSeek:
		p, err := decode[SeekPayload](msg)
		if err != nil {
			return err
		}
		s.view.SeekFrame(p.Frame)

	case TypeFrameAll:
		s.view.Frame()

	case TypeFrameSelection:
		s.view.FrameSelection()

	case TypeSelectAll:
		s.view.SelectAll()

	case TypeClearSelection:
		s.view.ClearSelection()

	case TypeDeleteKeys:
		s.view.DeleteSelectedKeyframes()

	case TypeSetInterp:
		p, err := decode[InterpPayload](msg)
		if err != nil {
			return err
		}
		interp, err := parseInterp(p.Interp)
		if err != nil {
			return err
		}
		s.view.SetSelectedKeysInterp(interp)

	case TypeUndo:
		if err := s.stack.Undo(); err != nil {
			return err
		}
		s.view.SyncAfterHistory()

	case TypeRedo:
		if err := s.stack.Redo(); err != nil {
			return err
		}
		s.view.SyncAfterHistory()

	case TypeRowExpand:
		p, err := decode[RowExpandPayload](msg)
		if err != nil {
			return err
		}
		switch {
		case p.Node != "":
			s.layout.SetNodeExpanded(curve.NodeID(p.Node), p.Expanded)
			s.view.OnRowExpansionChanged(curve.NodeID(p.Node))
		case p.Param != "":
			param, ok := s.model.Param(curve.ParamID(p.Param))
			if !ok {
				return fmt.Errorf("unknown param %q", p.Param)
			}
			s.layout.SetParamExpanded(param.ID, p.Expanded)
			s.view.OnRowExpansionChanged(param.Node)
		default:
			return fmt.Errorf("row.expand needs a node or param")
		}

	case TypePanelVisible:
		p, err := decode[PanelVisiblePayload](msg)
		if err != nil {
			return err
		}
		s.model.SetPanelOpen(curve.NodeID(p.Node), p.Open)

	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

func decode[T any](msg *Message) (T, error) {
	var p T
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return p, fmt.Errorf("decode %s: %w", msg.Type, err)
	}
	return p, nil
}

func parseInterp(s string) (curve.InterpType, error) {
	switch t := curve.InterpType(s); t {
	case curve.InterpConstant, curve.InterpLinear, curve.InterpSmooth,
		curve.InterpCatmullRom, curve.InterpCubic, curve.InterpHorizontal,
		curve.InterpBroken, curve.InterpFree:
		return t, nil
	}
	return "", fmt.Errorf("unknown interpolation %q", s)
}

func (s *Session) stateSync() *Message {
	payload, _ := json.Marshal(StateSyncPayload{
		State:   s.view.RenderState(),
		CanUndo: s.stack.CanUndo(),
		CanRedo: s.stack.CanRedo(),
	})
	return &Message{Type: TypeStateSync, SheetID: s.SheetID, Payload: payload}
}

func (s *Session) welcome(c *Client) *Message {
	payload, _ := json.Marshal(WelcomePayload{ClientID: c.ClientID, SheetID: s.SheetID})
	return &Message{Type: TypeWelcome, SheetID: s.SheetID, Payload: payload}
}

func (s *Session) sendError(c *Client, err error) {
	payload, _ := json.Marshal(ErrorPayload{Message: err.Error()})
	c.Send(&Message{Type: TypeError, SheetID: s.SheetID, Payload: payload})
}

func (s *Session) broadcast(msg *Message) {
	for _, c := range s.clients {
		c.Send(msg)
	}
}
