package live

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/somtogreat69/portfolio/internal/catalog"
	"github.com/somtogreat69/portfolio/internal/page"
	"github.com/somtogreat69/portfolio/internal/view"
)

// Frame types.
const (
	FrameOpen   = "open"
	FrameClose  = "close"
	FrameSubmit = "submit"
	FrameState  = "state"
	FrameError  = "error"
)

// ClientFrame is a message from the browser.
type ClientFrame struct {
	Type string            `json:"type"`
	Case string            `json:"case,omitempty"`
	Form *page.ContactForm `json:"form,omitempty"`
}

// ServerFrame is a message to the browser: either the page state or an
// error. Form is only set on frames where the submission state changed, so
// overlay activity never touches what the visitor is typing.
type ServerFrame struct {
	Type        string               `json:"type"`
	SessionID   string               `json:"session_id"`
	Selected    string               `json:"selected,omitempty"`
	OverlayOpen bool                 `json:"overlay_open"`
	Submission  page.SubmissionState `json:"submission"`
	OverlayHTML string               `json:"overlay_html"`
	SubmitHTML  string               `json:"submit_html"`
	Form        *page.ContactForm    `json:"form,omitempty"`
	Message     string               `json:"message,omitempty"`
}

// Session is one live page instance.
type Session struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	ctrl   *page.Controller
	logger *zap.Logger

	// writeMu serializes writes; gorilla connections allow one writer.
	writeMu sync.Mutex
	closed  bool
	// lastSubmission is the submission state of the last state frame sent.
	lastSubmission page.SubmissionState
}

func (s *Session) run(ctx context.Context) {
	s.push()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read", zap.Error(err))
			}
			return
		}

		var f ClientFrame
		if err := json.Unmarshal(msg, &f); err != nil {
			s.sendError("invalid message format")
			continue
		}

		switch f.Type {
		case FrameOpen:
			s.handleOpen(f.Case)
		case FrameClose:
			s.ctrl.CloseDetail()
		case FrameSubmit:
			s.handleSubmit(ctx, f.Form)
		default:
			s.sendError("unknown message type: " + f.Type)
		}
	}
}

func (s *Session) handleOpen(id string) {
	study, err := s.hub.cfg.Catalog.CaseStudy(id)
	if errors.Is(err, catalog.ErrNotFound) {
		s.sendError("unknown case study: " + id)
		return
	}
	if err != nil {
		s.sendError("lookup failed")
		return
	}
	s.hub.detailOpened(id)
	s.ctrl.OpenDetail(study)
}

func (s *Session) handleSubmit(ctx context.Context, raw *page.ContactForm) {
	if raw == nil {
		s.sendError("form is required")
		return
	}
	form := page.FormFromValues(raw.Values())
	if err := form.Validate(); err != nil {
		s.sendError("name and a valid email are required")
		return
	}

	done, err := s.ctrl.Submit(ctx, form)
	if errors.Is(err, page.ErrSubmitDisabled) {
		s.sendError("submit is disabled")
		return
	}
	if err != nil {
		s.sendError("submission failed to start")
		return
	}
	s.hub.track(done)
}

// push writes the current state. The snapshot is taken under the write
// lock so the last frame sent always carries the latest state.
func (s *Session) push() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return
	}

	snap := s.ctrl.Snapshot()
	frame, err := s.stateFrame(snap)
	if err != nil {
		s.logger.Error("rendering page state", zap.Error(err))
		frame = ServerFrame{Type: FrameError, SessionID: s.id, Message: "render failed"}
	} else {
		if snap.Submission != s.lastSubmission {
			form := snap.Form
			frame.Form = &form
		}
		s.lastSubmission = snap.Submission
	}
	if err := s.conn.WriteJSON(frame); err != nil {
		s.logger.Debug("websocket write", zap.Error(err))
	}
}

func (s *Session) sendError(message string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return
	}
	if err := s.conn.WriteJSON(ServerFrame{Type: FrameError, SessionID: s.id, Message: message}); err != nil {
		s.logger.Debug("websocket write", zap.Error(err))
	}
}

func (s *Session) markClosed() {
	s.writeMu.Lock()
	s.closed = true
	s.writeMu.Unlock()
	s.conn.Close()
}

func (s *Session) stateFrame(snap page.Snapshot) (ServerFrame, error) {
	r := s.hub.cfg.Renderer
	overlay, err := r.OverlayHTML(view.NewOverlay(view.OverlayProps{
		Selected: snap.Selection.Selected,
		IsOpen:   snap.Selection.OverlayOpen,
	}))
	if err != nil {
		return ServerFrame{}, err
	}
	submit, err := r.SubmitHTML(view.SubmitButtonFor(snap.Submission))
	if err != nil {
		return ServerFrame{}, err
	}
	return ServerFrame{
		Type:        FrameState,
		SessionID:   s.id,
		Selected:    snap.Selection.SelectedID(),
		OverlayOpen: snap.Selection.OverlayOpen,
		Submission:  snap.Submission,
		OverlayHTML: overlay,
		SubmitHTML:  submit,
	}, nil
}
