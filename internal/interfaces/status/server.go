package status

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/openscout/frc-sync/internal/platform/logging"
)

type Options struct {
	ServiceName    string
	ServiceVersion string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Server exposes health and last-run information over HTTP.
type Server struct {
	opts    Options
	tracker *Tracker
	logger  *logging.Logger
	srv     *fasthttp.Server
	started time.Time
}

func NewServer(opts Options, tracker *Tracker, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	if tracker == nil {
		tracker = NewTracker()
	}

	s := &Server{
		opts:    opts,
		tracker: tracker,
		logger:  logger,
		started: time.Now().UTC(),
	}
	s.srv = &fasthttp.Server{
		Handler:      s.handle,
		Name:         opts.ServiceName,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}

	return s
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("status server starting", "addr", addr)
	return s.srv.ListenAndServe(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.ShutdownWithContext(ctx)
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		s.writeJSON(ctx, fasthttp.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	switch string(ctx.Path()) {
	case "/healthz":
		s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/status":
		s.writeJSON(ctx, fasthttp.StatusOK, s.statusPayload())
	default:
		s.writeJSON(ctx, fasthttp.StatusNotFound, map[string]string{"error": "not found"})
	}
}

type statusPayload struct {
	Service string      `json:"service"`
	Version string      `json:"version"`
	Uptime  string      `json:"uptime"`
	Runs    []RunRecord `json:"runs"`
}

func (s *Server) statusPayload() statusPayload {
	return statusPayload{
		Service: s.opts.ServiceName,
		Version: s.opts.ServiceVersion,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Runs:    s.tracker.Snapshot(),
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, code int, payload any) {
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		s.logger.Error("encode status payload", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(encoded)

	ctx.SetStatusCode(code)
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetBody(buf.B)
}
