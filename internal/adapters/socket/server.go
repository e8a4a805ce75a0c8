package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/corey/carbot/internal/ports"
)

// Backend is what the daemon serves. It must be safe for concurrent use;
// the app's dispatcher is, since the table and catalog never change.
type Backend interface {
	ports.Answerer
	Patterns() []string
	Catalog() string
	RecordCount() int
}

// Server is the daemon that listens on a Unix socket and serves queries.
type Server struct {
	backend  Backend
	log      *zap.Logger
	listener net.Listener
	sockPath string
	started  time.Time

	done         chan struct{}
	shutdownCh   chan struct{} // closed when a remote shutdown request is received
	shutdownOnce sync.Once
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewServer creates a daemon server for backend. A nil logger disables logging.
func NewServer(backend Backend, sockPath string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		backend:    backend,
		log:        log,
		sockPath:   sockPath,
		done:       make(chan struct{}),
		shutdownCh: make(chan struct{}),
	}
}

// Start begins listening on the Unix socket. A socket file that refuses
// connections is treated as stale and removed before binding.
func (s *Server) Start() error {
	if _, err := os.Stat(s.sockPath); err == nil {
		conn, err := net.DialTimeout("unix", s.sockPath, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return fmt.Errorf("daemon already running at %s", s.sockPath)
		}
		os.Remove(s.sockPath)
	}

	ln, err := net.Listen("unix", s.sockPath)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.started = time.Now()

	s.wg.Add(1)
	go s.acceptLoop()

	s.log.Info("daemon listening", zap.String("socket", s.sockPath), zap.String("catalog", s.backend.Catalog()))
	return nil
}

// Stop closes the listener, waits for open connections and removes the
// socket file. Safe to call more than once.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.wg.Wait()
		os.Remove(s.sockPath)
		s.log.Info("daemon stopped", zap.String("socket", s.sockPath))
	})
	return nil
}

// ShutdownCh returns a channel that is closed when a remote shutdown request
// is received. The daemon's main goroutine selects on it alongside OS signals.
func (s *Server) ShutdownCh() <-chan struct{} {
	return s.shutdownCh
}

// Addr returns the socket path the server is listening on.
func (s *Server) Addr() string {
	return s.sockPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB max message

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(conn, Response{Error: "invalid request JSON"})
			continue
		}

		resp := s.handleRequest(req)
		s.writeResponse(conn, resp)

		if req.Method == MethodShutdown {
			s.shutdownOnce.Do(func() { close(s.shutdownCh) })
			return
		}
	}
}

func (s *Server) handleRequest(req Request) Response {
	switch req.Method {
	case MethodAsk:
		return s.handleAsk(req)
	case MethodPatterns:
		return Response{ID: req.ID, Result: PatternsResult{
			Catalog:  s.backend.Catalog(),
			Patterns: s.backend.Patterns(),
		}}
	case MethodHealth:
		return s.handleHealth(req)
	case MethodShutdown:
		return Response{ID: req.ID, Result: map[string]string{"status": "shutting down"}}
	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

// handleAsk never stops the daemon: a terminating reply is passed back to the
// client, whose own loop ends.
func (s *Server) handleAsk(req Request) Response {
	var params AskParams
	if req.Params != nil {
		raw, err := json.Marshal(req.Params)
		if err != nil {
			return Response{ID: req.ID, Error: "invalid params"}
		}
		if err := json.Unmarshal(raw, &params); err != nil {
			return Response{ID: req.ID, Error: "invalid params"}
		}
	}

	start := time.Now()
	reply, err := s.backend.Answer(params.Tokens)
	if err != nil {
		s.log.Warn("ask failed", zap.Strings("tokens", params.Tokens), zap.Error(err))
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: AskResult{
		Reply:   reply,
		Elapsed: time.Since(start).String(),
	}}
}

func (s *Server) handleHealth(req Request) Response {
	return Response{ID: req.ID, Result: HealthResult{
		Status:  "ok",
		Catalog: s.backend.Catalog(),
		Records: s.backend.RecordCount(),
		Rules:   len(s.backend.Patterns()),
		Uptime:  time.Since(s.started).Truncate(time.Second).String(),
	}}
}

func (s *Server) writeResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
