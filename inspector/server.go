// Package inspector exposes a host's plugin registry over HTTP, for
// debugging and scripted tool invocation.
package inspector

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/icon"
	"github.com/leeforge/modkit/metrics"
	"github.com/leeforge/modkit/plugin"
	"github.com/leeforge/modkit/registry"
	"go.uber.org/zap"
)

// Config holds configuration for creating a Server.
type Config struct {
	Registry *registry.Registry
	// Notifications, when set, lets invoke responses include the message
	// boxes a tool raised. It should be the host's notifier.
	Notifications *plugin.RecordingNotifier
	Icons         *icon.Loader
	Logger        *zap.Logger
}

// Server serves the inspection API.
type Server struct {
	registry *registry.Registry
	notes    *plugin.RecordingNotifier
	icons    *icon.Loader
	metrics  *metrics.Collector
	logger   *zap.Logger
	router   chi.Router

	invokeMu sync.Mutex
}

// InvokeResult is returned by POST /plugins/{name}/invoke.
type InvokeResult struct {
	Plugin        string                `json:"plugin"`
	Notifications []plugin.Notification `json:"notifications"`
}

// New creates a server and mounts its routes.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Server{
		registry: cfg.Registry,
		notes:    cfg.Notifications,
		icons:    cfg.Icons,
		metrics:  cfg.Registry.Metrics(),
		logger:   cfg.Logger.Named("inspector"),
	}

	r := chi.NewRouter()
	r.Use(traceID)
	r.Use(accessLog(s.logger, s.metrics))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/plugins", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Get("/icon", s.handleIcon)
			r.Post("/init", s.handleInit)
			r.Post("/invoke", s.handleInvoke)
		})
	})
	r.Get("/features", s.handleFeatures)
	r.Get("/metrics", s.handleMetrics)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, apperrors.NewNotFound("route", r.URL.Path))
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Routes exposes the mounted routes for listing.
func (s *Server) Routes() chi.Routes {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("inspector listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("inspector shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	states := map[string]int{}
	for _, st := range s.registry.States() {
		states[st.String()]++
	}
	writeData(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"plugins": s.registry.Len(),
		"states":  states,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, Views(s.registry))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	view, err := s.view(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, view)
}

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tool, err := s.registry.Tool(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if s.icons == nil {
		writeError(w, r, apperrors.NewNotFound("icon", name))
		return
	}
	data, err := s.icons.PNG(tool.Icon())
	if errors.Is(err, icon.ErrNoIcon) {
		writeError(w, r, apperrors.NewNotFound("icon", name))
		return
	}
	if err != nil {
		writeError(w, r, apperrors.NewInternal("load icon").WithInnerError(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.registry.Init(name); err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.view(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, view)
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.invokeMu.Lock()
	defer s.invokeMu.Unlock()

	before := 0
	if s.notes != nil {
		before = s.notes.Len()
	}
	if err := s.registry.Invoke(name); err != nil {
		writeError(w, r, err)
		return
	}

	result := InvokeResult{Plugin: name, Notifications: []plugin.Notification{}}
	if s.notes != nil {
		result.Notifications = append(result.Notifications, s.notes.Notifications()[before:]...)
	}
	writeData(w, r, http.StatusOK, result)
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	features := s.registry.Host().Features
	out := map[string]string{}
	for _, key := range features.Keys() {
		owner, _ := features.Owner(key)
		out[key] = owner
	}
	writeData(w, r, http.StatusOK, out)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, s.metrics.GetMetrics())
}

func (s *Server) view(name string) (PluginView, error) {
	e, ok := s.registry.Entry(name)
	if !ok {
		return PluginView{}, apperrors.NewNotFound("plugin", name)
	}
	p, _ := s.registry.Get(name)
	return NewPluginView(e, p), nil
}
