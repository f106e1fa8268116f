// Package server exposes a board over HTTP.
//
// One Server owns one controller. Clients post input events and read back
// snapshots, rendered frames and exports:
//
//	GET  /healthz
//	GET  /api/board          snapshot JSON
//	GET  /api/document       persisted board record
//	POST /api/events         one event object or an array of them
//	POST /api/save
//	POST /api/load
//	GET  /api/frame.png      current viewport (?w=&h= override the size)
//	GET  /api/export.png     download, named like the browser export
//	GET  /api/export.pdf
//
// Controller access is serialized with a mutex; rendering works on a
// snapshot outside the lock.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sketchboard/pkg/controller"
	skerrors "github.com/matzehuels/sketchboard/pkg/errors"
	"github.com/matzehuels/sketchboard/pkg/persist"
	"github.com/matzehuels/sketchboard/pkg/render"
	"github.com/matzehuels/sketchboard/pkg/sink"
)

// Frame size used when neither the request nor the client reported one.
const (
	defaultFrameWidth  = 1280
	defaultFrameHeight = 720
	maxFrameSide       = 8192
)

// maxBodyBytes caps event payloads; image events carry whole files.
const maxBodyBytes = 16 << 20

// Options configures a Server.
type Options struct {
	Controller *controller.Controller
	Renderer   *render.Renderer
	Logger     *log.Logger
	Now        func() time.Time
}

// Server serves one board.
type Server struct {
	mu       sync.Mutex
	ctrl     *controller.Controller
	renderer *render.Renderer
	logger   *log.Logger
	now      func() time.Time
}

// New creates a server. A nil controller starts an empty in-memory board.
func New(opts Options) *Server {
	s := &Server{
		ctrl:     opts.Controller,
		renderer: opts.Renderer,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.ctrl == nil {
		s.ctrl = controller.New(controller.Options{Logger: s.logger})
	}
	if s.renderer == nil {
		s.renderer = render.New(render.WithLogger(s.logger))
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok\n")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/board", s.handleBoard)
		r.Get("/document", s.handleDocument)
		r.Post("/events", s.handleEvents)
		r.Post("/save", s.handleSave)
		r.Post("/load", s.handleLoad)
		r.Get("/frame.png", s.handleFrame)
		r.Get("/export.png", s.handleExport(sink.FormatPNG))
		r.Get("/export.pdf", s.handleExport(sink.FormatPDF))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving board", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) snapshot() controller.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Snapshot()
}

func (s *Server) handleBoard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	doc := s.ctrl.Document()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, skerrors.Wrap(skerrors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	events, err := controller.DecodeEvents(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	for _, ev := range events {
		s.ctrl.DispatchContext(r.Context(), ev)
	}
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.ctrl.DispatchContext(r.Context(), controller.Save{})
	saveErr := s.ctrl.LastSaveErr()
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()

	if saveErr != nil {
		s.writeError(w, saveErr)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.ctrl.DispatchContext(r.Context(), controller.Load{})
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	fw, fh, err := frameSize(r, snap.Viewport)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := sink.EncodePNG(s.renderer.Frame(snap.Scene(), fw, fh))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", sink.FormatPNG.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

func (s *Server) handleExport(format sink.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.snapshot()
		fw, fh, err := frameSize(r, snap.Viewport)
		if err != nil {
			s.writeError(w, err)
			return
		}
		img, err := persist.ExportRaster(r.Context(), s.renderer, snap.Scene(), fw, fh)
		if err != nil {
			s.writeError(w, err)
			return
		}
		data, err := sink.Encode(format, img)
		if err != nil {
			s.writeError(w, err)
			return
		}
		name := persist.ExportName(snap.Canvas, s.now(), string(format))
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.Write(data)
	}
}

// frameSize reads ?w= and ?h=, falling back to the client's last reported
// viewport and then to a default.
func frameSize(r *http.Request, vp controller.Resize) (int, int, error) {
	w, h := vp.Width, vp.Height
	if w <= 0 || h <= 0 {
		w, h = defaultFrameWidth, defaultFrameHeight
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"w", &w}, {"h", &h}} {
		v := r.URL.Query().Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxFrameSide {
			return 0, 0, skerrors.New(skerrors.ErrCodeInvalidInput, "%s must be 1..%d, got %q", p.name, maxFrameSide, v)
		}
		*p.dst = n
	}
	return w, h, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{
		Error: skerrors.UserMessage(err),
		Code:  string(skerrors.GetCode(err)),
	})
}

func statusFor(err error) int {
	switch code := skerrors.GetCode(err); {
	case skerrors.IsValidation(err), code == skerrors.ErrCodeDecode:
		return http.StatusBadRequest
	case code == skerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == skerrors.ErrCodeQuotaExceeded:
		return http.StatusRequestEntityTooLarge
	case code == skerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
