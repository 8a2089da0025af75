package session

import (
	"encoding/json"

	"github.com/keygrid/keygrid/sheet-go/internal/sheet"
)

// Message is the websocket envelope. Inbound messages carry events from
// the host; outbound messages carry state snapshots back.
type Message struct {
	Type     string          `json:"type"`
	SheetID  string          `json:"sheetId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Inbound events.
	TypePointerPress   = "pointer.press"
	TypePointerMove    = "pointer.move"
	TypePointerRelease = "pointer.release"
	TypeWheel          = "pointer.wheel"
	TypeResize         = "view.resize"
	TypeSeek           = "timeline.seek"
	TypeFrameAll       = "view.frameAll"
	TypeFrameSelection = "view.frameSelection"
	TypeSelectAll      = "selection.all"
	TypeClearSelection = "selection.clear"
	TypeDeleteKeys     = "keys.delete"
	TypeSetInterp      = "keys.interp"
	TypeUndo           = "history.undo"
	TypeRedo           = "history.redo"
	TypeRowExpand      = "row.expand"
	TypePanelVisible   = "panel.visibility"

	// Outbound.
	TypeWelcome   = "welcome"
	TypeStateSync = "state.sync"
	TypeError     = "error"
)

// PointerPayload carries a press, move or release. Button follows the
// sheet.MouseButton numbering.
type PointerPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
	Shift  bool    `json:"shift"`
	Ctrl   bool    `json:"ctrl"`
}

// WheelPayload carries a scroll at a pointer position, in wheel units.
type WheelPayload struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Delta float64 `json:"delta"`
}

type ResizePayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type SeekPayload struct {
	Frame float64 `json:"frame"`
}

type InterpPayload struct {
	Interp string `json:"interp"`
}

// RowExpandPayload toggles a node or param row open in the hierarchy.
type RowExpandPayload struct {
	Node     string `json:"node,omitempty"`
	Param    string `json:"param,omitempty"`
	Expanded bool   `json:"expanded"`
}

type PanelVisiblePayload struct {
	Node string `json:"node"`
	Open bool   `json:"open"`
}

// StateSyncPayload is the full picture pushed to every client after each
// handled event.
type StateSyncPayload struct {
	State   sheet.RenderState `json:"state"`
	CanUndo bool              `json:"canUndo"`
	CanRedo bool              `json:"canRedo"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	SheetID  string `json:"sheetId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
