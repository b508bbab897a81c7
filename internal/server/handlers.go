package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/somtogreat69/portfolio/internal/catalog"
	"github.com/somtogreat69/portfolio/internal/page"
	"github.com/somtogreat69/portfolio/internal/view"
)

// maxFormBytes bounds the contact form body.
const maxFormBytes = 1 << 20

// newController returns a controller for one request-scoped page instance.
func (s *Server) newController(r *http.Request) *page.Controller {
	opts := []page.Option{
		page.WithSessionID("req-" + middleware.GetReqID(r.Context())),
		page.WithLogger(s.logger),
	}
	for _, o := range s.observers() {
		opts = append(opts, page.WithObserver(o))
	}
	return page.NewController(s.channel, opts...)
}

func (s *Server) buildPage(ctrl *page.Controller) view.PageData {
	d := view.BuildPage(s.catalog, ctrl.Snapshot(), view.Callbacks{
		OnViewLogic: ctrl.OpenDetail,
		OnClose:     ctrl.CloseDetail,
	})
	d.Live = true
	return d
}

// handlePage renders the page. ?case=<id> opens that case study's overlay
// as if its card had been activated.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctrl := s.newController(r)
	status := http.StatusOK

	if id := r.URL.Query().Get("case"); id != "" {
		card, ok := s.buildPage(ctrl).FindCard(id)
		if ok {
			card.Activate()
			s.detailOpened(id)
		} else {
			status = http.StatusNotFound
		}
	}

	s.writePage(w, status, s.buildPage(ctrl))
}

// handleCase returns the overlay fragment for one case study.
func (s *Server) handleCase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	study, err := s.catalog.CaseStudy(id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "case study not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}

	ctrl := s.newController(r)
	ctrl.OpenDetail(study)
	s.detailOpened(id)
	snap := ctrl.Snapshot()

	var buf bytes.Buffer
	overlay := view.NewOverlay(view.OverlayProps{
		Selected: snap.Selection.Selected,
		IsOpen:   snap.Selection.OverlayOpen,
		OnClose:  ctrl.CloseDetail,
	})
	if err := s.renderer.Overlay(&buf, overlay); err != nil {
		s.logger.Error("rendering overlay", zap.String("case", id), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleContact is the no-script submission path: it runs the form through
// a fresh controller, waits for the relay call to settle and renders the
// page in the final state.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := page.FormFromValues(r.PostForm)

	ctrl := s.newController(r)
	if err := form.Validate(); err != nil {
		d := s.buildPage(ctrl)
		d.Form = form
		s.writePage(w, http.StatusUnprocessableEntity, d)
		return
	}

	done, err := ctrl.Submit(r.Context(), form)
	if errors.Is(err, page.ErrSubmitDisabled) {
		http.Error(w, "submit is disabled", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "submission failed to start", http.StatusInternalServerError)
		return
	}
	<-done

	s.writePage(w, http.StatusOK, s.buildPage(ctrl))
}

type catalogResponse struct {
	Profile     catalog.Profile      `json:"profile"`
	CaseStudies []catalog.CaseStudy  `json:"case_studies"`
	Apps        []catalog.AppProfile `json:"apps"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	resp := catalogResponse{
		Profile:     s.catalog.Profile(),
		CaseStudies: s.catalog.CaseStudies(),
		Apps:        s.catalog.Apps(),
	}
	if resp.CaseStudies == nil {
		resp.CaseStudies = []catalog.CaseStudy{}
	}
	if resp.Apps == nil {
		resp.Apps = []catalog.AppProfile{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writePage(w http.ResponseWriter, status int, d view.PageData) {
	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, d); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	if s.metrics != nil {
		s.metrics.PageView()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) detailOpened(id string) {
	if s.metrics != nil {
		s.metrics.DetailOpened(id)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
