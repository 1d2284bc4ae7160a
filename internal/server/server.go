// Package server serves the status image over HTTP.
//
// GET /status always answers 200 with a PNG: the status image when the
// render succeeds, the error image otherwise. Image viewers and forum embeds
// that request it show the failure instead of a broken image.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	unrolled "github.com/unrolled/render"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/logger"
	"github.com/KunBuFenZi/PicNezha/internal/render"
	"github.com/KunBuFenZi/PicNezha/internal/source"
)

// StatusHeader reports whether a /status response is the real image ("ok")
// or the error image ("fallback").
const StatusHeader = "X-PicNezha-Status"

const shutdownGrace = 5 * time.Second

// Options wire a Server.
type Options struct {
	Source source.Source
	Render render.Options
	// Timeout bounds fetching records for one request.
	Timeout time.Duration
	Logger  logger.Logger
	// Access receives one line per request. Nil disables it.
	Access *zerolog.Logger
}

// Server is the HTTP front end. It is safe for concurrent requests; each
// request fetches and renders independently.
type Server struct {
	router  *mux.Router
	respond *unrolled.Render
	source  source.Source
	opts    render.Options
	timeout time.Duration
	log     logger.Logger
	access  zerolog.Logger
}

// New builds the router.
func New(o Options) *Server {
	if o.Logger == nil {
		o.Logger = logger.Noop()
	}
	access := zerolog.Nop()
	if o.Access != nil {
		access = *o.Access
	}
	s := &Server{
		router:  mux.NewRouter(),
		respond: unrolled.New(unrolled.Options{IndentJSON: true}),
		source:  o.Source,
		opts:    o.Render,
		timeout: o.Timeout,
		log:     o.Logger,
		access:  access,
	}

	s.router.Use(s.requestID, s.accessLog)
	s.router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet, http.MethodHead).Name("status")
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet).Name("healthz")
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var res render.Result
	recs, err := s.source.Servers(ctx)
	if err != nil {
		res = render.Failure(err, s.opts.Fonts)
	} else {
		res = render.RenderOrFallback(recs, s.opts)
	}

	id := RequestID(r.Context())
	if res.OK() {
		s.log.Debug("[%s] Rendered %d servers", id, len(recs))
	} else {
		s.log.Warn("[%s] Serving the error image: %s", id, res.Message)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(StatusHeader, res.Status.String())
	if err := s.respond.Data(w, http.StatusOK, res.PNG); err != nil {
		s.log.Error("[%s] Couldn't write the image: %v", id, err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		s.log.Error("[%s] Couldn't write health: %v", RequestID(r.Context()), err)
	}
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't listen on "+addr,
			"Pick another port with --addr or PORT")
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("Serving the status image at http://%s/status", ln.Addr())

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server stopped")
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "Couldn't shut down cleanly")
	}
	return nil
}
