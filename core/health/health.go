// Package health serves the /healthz liveness endpoint.
package health

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m3rciful/summerday/core/logger"
)

// Check reports an unhealthy dependency by returning an error.
type Check func(ctx context.Context) error

// Server answers GET /healthz with 200 once MarkReady was called and every
// check passes, and with 503 otherwise.
type Server struct {
	addr  string
	ready atomic.Bool

	mu     sync.RWMutex
	checks map[string]Check
}

// New returns a Server that will listen on addr.
func New(addr string) *Server {
	return &Server{addr: addr, checks: make(map[string]Check)}
}

// AddCheck registers a named dependency check.
func (s *Server) AddCheck(name string, check Check) {
	if check == nil {
		return
	}
	s.mu.Lock()
	s.checks[name] = check
	s.mu.Unlock()
}

// MarkReady flips the readiness flag.
func (s *Server) MarkReady(ready bool) { s.ready.Store(ready) }

// Handler returns the HTTP handler serving /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.serveHealth)
	return mux
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.ready.Load() {
		http.Error(w, "starting", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if name, err := s.firstFailure(ctx); err != nil {
		logger.Component("health").Warn("check failed",
			slog.String("event", "health.check"),
			slog.String("check", name),
			slog.String("err", err.Error()),
		)
		http.Error(w, name+": unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) firstFailure(ctx context.Context) (string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)

	for _, name := range names {
		s.mu.RLock()
		check := s.checks[name]
		s.mu.RUnlock()
		if err := check(ctx); err != nil {
			return name, err
		}
	}
	return "", nil
}

// Run serves until ctx is done, then shuts down within 5s.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	logger.Component("health").Info("health server listening",
		slog.String("event", "listen"),
		slog.String("addr", ln.Addr().String()),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
