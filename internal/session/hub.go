package session

import (
	"log/slog"
	"sync"

	"github.com/keygrid/keygrid/sheet-go/internal/config"
	"github.com/keygrid/keygrid/sheet-go/internal/curve"
)

// ModelFactory builds the document a new session opens. The server wires
// this to the sample scene; a real host would load a project here.
type ModelFactory func(sheetID string) *curve.Model

// Hub tracks one Session per sheet and spins sessions up on demand. The
// hub only does map bookkeeping; everything stateful about a sheet lives
// inside its session's own goroutine.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  ModelFactory
	cfg      config.Config
	logger   *slog.Logger
}

func NewHub(factory ModelFactory, cfg config.Config, logger *slog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		factory:  factory,
		cfg:      cfg,
		logger:   logger,
	}
}

// Session returns the live session for a sheet, starting one if needed.
func (h *Hub) Session(sheetID string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[sheetID]; ok {
		return s
	}
	s := NewSession(sheetID, h.factory(sheetID), h.cfg, h.logger)
	h.sessions[sheetID] = s
	go s.Run()
	h.logger.Info("session started", "sheet", sheetID)
	return s
}

// Shutdown stops every session.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.sessions {
		s.Stop()
		delete(h.sessions, id)
	}
}
