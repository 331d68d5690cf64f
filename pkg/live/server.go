package live

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vhook/internal/errors"
	"github.com/vango-dev/vhook/pkg/engine"
	"github.com/vango-dev/vhook/pkg/render"
	"github.com/vango-dev/vhook/pkg/surface"
	"github.com/vango-dev/vhook/pkg/surface/memdom"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// maxEventSize bounds the body of POST /event.
const maxEventSize = 64 << 10

// Server is a live preview server for one component tree.
type Server struct {
	// mu serializes access to the document and the engine.
	mu       sync.Mutex
	doc      *memdom.Document
	root     *memdom.Element
	engine   *engine.Engine
	renderer *render.Renderer
	dirty    bool

	hub      *Hub
	router   chi.Router
	title    string
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	engOpts  []engine.Option
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. It is also handed to the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// WithRendererConfig configures HTML serialization.
func WithRendererConfig(cfg render.RendererConfig) Option {
	return func(s *Server) {
		s.renderer = render.NewRenderer(cfg)
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithEngineOptions passes options to the engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Server) {
		s.engOpts = append(s.engOpts, opts...)
	}
}

// New mounts component and returns a server for it.
func New(component vdom.Component, opts ...Option) (*Server, error) {
	s := &Server{
		doc:   memdom.NewDocument(),
		title: "vhook",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "live")
	}
	if s.renderer == nil {
		s.renderer = render.NewRenderer(render.RendererConfig{})
	}
	s.root = s.doc.NewRoot("div")

	engOpts := append([]engine.Option{
		engine.WithLogger(s.logger),
		engine.OnRender(func(surface.Node) { s.dirty = true }),
	}, s.engOpts...)
	s.engine = engine.New(s.doc, engOpts...)

	if err := s.engine.Mount(component, s.root); err != nil {
		return nil, err
	}
	s.dirty = false

	s.hub = NewHub(s.logger, s.snapshot, s.handleWSEvent)
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Post("/event", s.handleEventHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Engine returns the engine rendering the tree.
func (s *Server) Engine() *engine.Engine {
	return s.engine
}

// Inspect calls fn with the mount point while holding the server lock.
func (s *Server) Inspect(fn func(root *memdom.Element)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.root)
}

// HTML returns the serialized content of the mount point.
func (s *Server) HTML() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.RenderChildrenToString(s.root)
}

func (s *Server) snapshot() Message {
	html, err := s.HTML()
	if err != nil {
		return errorMessage(errors.FromError(err, "E022"))
	}
	return Message{Type: MessageRender, HTML: html}
}

// HandleEvent dispatches ev to the element it targets. When listeners
// re-rendered the tree the new HTML is broadcast to every client and
// returned.
func (s *Server) HandleEvent(ev EventMessage) (html string, rendered bool, err error) {
	if ev.HID == "" || ev.Event == "" {
		return "", false, errors.New("E021")
	}
	id, ok := render.ParseHID(ev.HID)
	if !ok {
		return "", false, errors.New("E020").WithDetail(fmt.Sprintf("%q is not a hydration id.", ev.HID))
	}

	html, rendered, err = s.dispatch(id, ev)
	if err != nil {
		return "", false, err
	}
	if rendered {
		s.hub.Broadcast(Message{Type: MessageRender, HTML: html})
	}
	return html, rendered, nil
}

func (s *Server) dispatch(id uint64, ev EventMessage) (html string, rendered bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.root.Find(memdom.ByID(id))
	if target == nil {
		return "", false, errors.New("E020").WithDetail(fmt.Sprintf("No element %s in the current tree.", ev.HID))
	}

	s.dirty = false
	if err := s.safeDispatch(target, ev); err != nil {
		return "", false, err
	}
	if !s.dirty {
		return "", false, nil
	}
	s.dirty = false

	html, err = s.renderer.RenderChildrenToString(s.root)
	if err != nil {
		return "", false, err
	}
	return html, true, nil
}

func (s *Server) safeDispatch(target *memdom.Element, ev EventMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event handler panicked", "hid", ev.HID, "event", ev.Event, "panic", r)
			err = errors.New("E022").WithDetail(fmt.Sprint(r))
		}
	}()
	n := memdom.Dispatch(target, ev.Event, ev.Value)
	s.logger.Debug("event dispatched", "hid", ev.HID, "event", ev.Event, "handlers", n)
	return nil
}

func (s *Server) handleWSEvent(data []byte) *Message {
	var ev EventMessage
	if err := json.Unmarshal(data, &ev); err != nil {
		msg := errorMessage(errors.New("E021").Wrap(err))
		return &msg
	}
	if _, _, err := s.HandleEvent(ev); err != nil {
		msg := errorMessage(err)
		return &msg
	}
	return nil
}

func (s *Server) handleEventHTTP(w http.ResponseWriter, r *http.Request) {
	var ev EventMessage
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventSize))
	if err == nil {
		err = json.Unmarshal(body, &ev)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorMessage(errors.New("E021").Wrap(err)))
		return
	}

	html, rendered, err := s.HandleEvent(ev)
	if err != nil {
		status := http.StatusBadRequest
		var e *errors.Error
		if stderrors.As(err, &e) {
			switch e.Code {
			case "E020":
				status = http.StatusNotFound
			case "E022":
				status = http.StatusInternalServerError
			}
		}
		writeJSON(w, status, errorMessage(err))
		return
	}
	if !rendered {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, Message{Type: MessageRender, HTML: html})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.renderer.Stream(w).RenderPage(render.PageData{
		Body:    s.root,
		Title:   s.title,
		Scripts: []render.ScriptTag{{Inline: ClientScript}},
	})
	if err != nil {
		s.logger.Error("render page", "error", err)
	}
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("live server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		s.hub.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.Close()
	err := srv.Shutdown(shutdownCtx)
	<-errCh
	return err
}

// Close closes all websocket connections.
func (s *Server) Close() {
	s.hub.Close()
}

func errorMessage(err error) Message {
	msg := Message{Type: MessageError, Error: err.Error()}
	var e *errors.Error
	if stderrors.As(err, &e) {
		msg.Code = e.Code
	}
	return msg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
