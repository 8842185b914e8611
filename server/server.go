// Server wires the listener, route table and engine together:
// register routes, Run the accept loop, Stop to drain and shut down.
package server

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wilson1070033/webserver/server/engine"
	"github.com/wilson1070033/webserver/server/protocol"
	"github.com/wilson1070033/webserver/server/router"
)

// Config tunes the server; zero values fall back to defaults
type Config struct {
	Addr           string
	ReadBufferSize int           // size of the single read per connection
	MaxConns       int           // in-flight connection cap
	ReadTimeout    time.Duration // per-connection deadlines
	WriteTimeout   time.Duration
}

const (
	defaultBufSize  = 8 << 10
	defaultMaxConns = 128
	defaultTimeout  = 10 * time.Second
)

type Server struct {
	cfg  Config
	r    *router.HTTPRouter
	pool *engine.Pool
	log  zerolog.Logger

	mu   sync.Mutex
	ln   net.Listener
	wg   sync.WaitGroup
	quit chan struct{}
	stop sync.Once
}

func New(cfg Config, log zerolog.Logger) *Server {
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = defaultBufSize
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultMaxConns
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultTimeout
	}

	return &Server{
		cfg:  cfg,
		r:    router.NewHTTPRouter(),
		pool: engine.NewPool(cfg.MaxConns, cfg.ReadBufferSize),
		log:  log,
		quit: make(chan struct{}),
	}
}

// Route registers a handler for an exact path. Call before Run; the
// table is read-only once the accept loop starts.
func (s *Server) Route(path string, h router.Handler) {
	s.r.Route(path, h)
}

// Run binds the listener and serves until Stop. A bind failure is
// returned to the caller; per-connection failures never are, they get
// logged and the loop keeps accepting.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("server started")

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.quit:
				s.wg.Wait()
				return nil
			default:
			}
			s.log.Warn().Err(err).Msg("accept failed")
			continue
		}

		// blocks when MaxConns sessions are in flight, so overload
		// queues in the kernel backlog
		s.pool.Acquire()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.pool.Release()
			engine.NewSession(conn, s.pool, s.dispatch, s.log, s.cfg.ReadTimeout, s.cfg.WriteTimeout).Run()
		}()
	}
}

// dispatch consults the route table; a miss is an ordinary 404, never
// an error
func (s *Server) dispatch(req *protocol.Request) *protocol.Response {
	h, ok := s.r.Serve(req.Path)
	if !ok {
		return protocol.NotFound()
	}

	res := protocol.NewResponse()
	h.Handle(req, res)
	return res
}

// Addr reports the bound address, empty until Run has bound the
// listener
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Stop stops accepting, lets in-flight sessions drain and returns
func (s *Server) Stop() {
	s.stop.Do(func() {
		close(s.quit)

		s.mu.Lock()
		ln := s.ln
		s.mu.Unlock()
		if ln != nil {
			ln.Close()
		}
	})
	s.wg.Wait()
}
