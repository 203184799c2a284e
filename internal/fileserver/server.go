// Package fileserver serves a directory tree over HTTP using net/http's
// file server, one connection at a time.
package fileserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"syscall"

	"golang.org/x/net/netutil"

	"github.com/mybrain/journal/internal/domain"
	"github.com/mybrain/journal/internal/middleware"
)

// Handler serves files and directory listings under root.
// Only GET and HEAD reach the file server.
func Handler(root string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServer(http.Dir(root)))
	return middleware.AccessLog(mux)
}

// Server is a static file server bound to a single listener.
type Server struct {
	cfg Config
	srv *http.Server

	mu sync.Mutex
	ln net.Listener
}

// New validates cfg and prepares a server. Nothing is bound until Listen.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	cfg.Root = root

	srv := &http.Server{
		Handler:  Handler(root),
		ErrorLog: slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}
	// One request per connection, like a plain HTTP/1.0 server.
	srv.SetKeepAlivesEnabled(false)

	return &Server{cfg: cfg, srv: srv}, nil
}

// Root is the absolute directory being served.
func (s *Server) Root() string {
	return s.cfg.Root
}

// Listen binds the configured address. A port held by another socket
// returns an error matching both domain.ErrAddressInUse and syscall.EADDRINUSE.
func (s *Server) Listen(ctx context.Context) error {
	lc := net.ListenConfig{Control: reuseAddr}

	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("listen %s: %w: %w", s.cfg.Addr(), domain.ErrAddressInUse, err)
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr(), err)
	}

	s.mu.Lock()
	s.ln = netutil.LimitListener(ln, 1)
	s.mu.Unlock()

	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve runs the accept loop until Close. Each connection is fully handled
// before the next one is accepted.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return errors.New("serve: server is not listening")
	}

	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Close stops accepting and drops any in-flight connection without draining.
func (s *Server) Close() error {
	err := s.srv.Close()

	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln != nil {
		if cerr := ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = cerr
		}
	}

	if err != nil {
		return fmt.Errorf("close server: %w", err)
	}
	return nil
}

// Run binds cfg, serves until ctx is cancelled, then closes the listener.
func Run(ctx context.Context, cfg Config) error {
	s, err := New(cfg)
	if err != nil {
		return err
	}
	if err := s.Listen(ctx); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.Serve()
	}()

	port := cfg.Port
	if tcp, ok := s.Addr().(*net.TCPAddr); ok {
		port = fmt.Sprint(tcp.Port)
	}
	slog.Info("server running",
		"server_addr", "http://localhost:"+port,
		"root", s.Root(),
	)

	select {
	case err := <-serveErr:
		_ = s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutting down server")
	}

	if err := s.Close(); err != nil {
		return err
	}
	if err := <-serveErr; err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
