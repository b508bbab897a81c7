package server

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/somtogreat69/portfolio/internal/audit"
	"github.com/somtogreat69/portfolio/internal/catalog"
	"github.com/somtogreat69/portfolio/internal/live"
	"github.com/somtogreat69/portfolio/internal/metrics"
	"github.com/somtogreat69/portfolio/internal/page"
	"github.com/somtogreat69/portfolio/internal/view"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS and websocket origins (dev mode)

	// AuditToken is the bearer token guarding /api/submissions. The audit
	// routes are not mounted while it is empty.
	AuditToken string
}

// Option configures optional server dependencies.
type Option func(*Server)

// WithLogger sets the application logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics enables /metrics and counts page activity.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithAudit records submission attempts. /api/submissions is mounted only
// when Config.AuditToken is also set.
func WithAudit(store *audit.Store) Option {
	return func(s *Server) { s.audit = store }
}

// Server serves the portfolio page, its fragments and the live sessions.
type Server struct {
	cfg        Config
	catalog    *catalog.Catalog
	renderer   *view.Renderer
	channel    page.Channel
	logger     *zap.Logger
	metrics    *metrics.Metrics
	audit      *audit.Store
	hub        *live.Hub
	router     chi.Router
	httpServer *http.Server
}

// New creates a server rendering cat and relaying contact forms through
// channel.
func New(cfg Config, cat *catalog.Catalog, renderer *view.Renderer, channel page.Channel, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		catalog:  cat,
		renderer: renderer,
		channel:  channel,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	hubCfg := live.Config{
		Catalog:         cat,
		Renderer:        renderer,
		Channel:         channel,
		Observers:       s.observers(),
		Logger:          s.logger,
		AllowAllOrigins: cfg.AllowAll,
	}
	if s.metrics != nil {
		hubCfg.Recorder = s.metrics
	}
	s.hub = live.NewHub(hubCfg)

	s.router = s.buildRouter()
	return s
}

// observers are the diagnostic sinks every page controller reports to.
func (s *Server) observers() []page.Observer {
	var obs []page.Observer
	if s.metrics != nil {
		obs = append(obs, s.metrics)
	}
	if s.audit != nil {
		obs = append(obs, s.audit)
	}
	return obs
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Live sessions outlive the request timeout.
	s.hub.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Get("/", s.handlePage)
		r.Get("/cases/{id}", s.handleCase)
		r.Post("/contact", s.handleContact)
		r.Get("/api/catalog", s.handleCatalog)
		r.Handle("/assets/*", http.StripPrefix("/assets/", view.Assets()))

		if s.metrics != nil {
			r.Handle("/metrics", s.metrics.Handler())
		}
		if s.audit != nil && s.cfg.AuditToken != "" {
			r.Group(func(r chi.Router) {
				r.Use(requireBearer(s.cfg.AuditToken))
				audit.RegisterRoutes(r, s.audit)
			})
		}
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live session hub.
func (s *Server) Hub() *live.Hub { return s.hub }

// requireBearer rejects requests whose Authorization header does not carry
// token as a bearer credential.
func requireBearer(token string) func(http.Handler) http.Handler {
	want := []byte("Bearer " + token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(got, want) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="audit"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("portfolio server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, then closes the live sessions and
// waits for in-flight submissions.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	s.hub.Close()
	return err
}
