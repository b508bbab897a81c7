// Package live runs one page instance per websocket connection. Each
// session owns a page.Controller and pushes re-rendered fragments to the
// browser after every state change.
package live

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/somtogreat69/portfolio/internal/catalog"
	"github.com/somtogreat69/portfolio/internal/page"
	"github.com/somtogreat69/portfolio/internal/view"
)

// maxFrameSize bounds a single client frame.
const maxFrameSize = 64 << 10

// Recorder receives session and overlay activity. *metrics.Metrics
// implements it.
type Recorder interface {
	SessionOpened()
	SessionClosed()
	DetailOpened(caseID string)
}

// Config wires a Hub.
type Config struct {
	Catalog   *catalog.Catalog
	Renderer  *view.Renderer
	Channel   page.Channel
	Observers []page.Observer
	Recorder  Recorder
	Logger    *zap.Logger
	// AllowAllOrigins accepts cross-origin upgrades. Same-origin only when
	// false.
	AllowAllOrigins bool
}

// Hub accepts websocket connections and tracks their sessions.
type Hub struct {
	cfg      Config
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
	wg       sync.WaitGroup
}

// NewHub creates a Hub.
func NewHub(cfg Config) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
	if cfg.AllowAllOrigins {
		h.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return h
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get("/ws/page", h.handleWebSocket)
}

// Count returns the number of open sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close disconnects every session and waits for their handlers and any
// in-flight submissions to finish. New connections are refused afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for _, s := range h.sessions {
		s.conn.Close()
	}
	h.mu.Unlock()
	h.wg.Wait()
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade", zap.Error(err))
		return
	}
	conn.SetReadLimit(maxFrameSize)

	s := h.newSession(conn)
	if !h.add(s) {
		conn.Close()
		return
	}
	defer h.remove(s)

	s.logger.Debug("page session opened", zap.String("remote", r.RemoteAddr))
	s.run(r.Context())
}

func (h *Hub) newSession(conn *websocket.Conn) *Session {
	id := uuid.New().String()
	s := &Session{
		id:     id,
		hub:    h,
		conn:   conn,
		logger: h.logger.With(zap.String("session", id)),
	}
	opts := []page.Option{
		page.WithSessionID(id),
		page.WithLogger(h.logger),
		page.WithOnChange(func(page.Snapshot) { s.push() }),
	}
	for _, o := range h.cfg.Observers {
		opts = append(opts, page.WithObserver(o))
	}
	s.ctrl = page.NewController(h.cfg.Channel, opts...)
	return s
}

func (h *Hub) add(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[s.id] = s
	h.wg.Add(1)
	if h.cfg.Recorder != nil {
		h.cfg.Recorder.SessionOpened()
	}
	return true
}

func (h *Hub) remove(s *Session) {
	s.markClosed()
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()
	if h.cfg.Recorder != nil {
		h.cfg.Recorder.SessionClosed()
	}
	s.logger.Debug("page session closed")
	h.wg.Done()
}

// track keeps Close waiting until done yields.
func (h *Hub) track(done <-chan page.SubmissionState) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		<-done
	}()
}

func (h *Hub) detailOpened(id string) {
	if h.cfg.Recorder != nil {
		h.cfg.Recorder.DetailOpened(id)
	}
}
