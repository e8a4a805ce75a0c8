package web

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/corey/carbot/internal/adapters/socket"
	"github.com/corey/carbot/internal/domain/query"
)

// maxBody caps POST /api/ask request bodies.
const maxBody = 64 << 10

// Server serves the chat page and JSON API over HTTP. Responses reuse the
// socket protocol's result types so both transports speak the same JSON.
type Server struct {
	backend  socket.Backend
	log      *zap.Logger
	listener net.Listener
	httpSrv  *http.Server
	port     int
	started  time.Time
	stopOnce sync.Once

	portFilePath string
}

// NewServer creates an HTTP server for backend. The bound port is written to
// portFilePath, when set, for discovery.
func NewServer(backend socket.Backend, portFilePath string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		backend:      backend,
		log:          log,
		portFilePath: portFilePath,
		started:      time.Now(),
	}
}

// DefaultPort computes a stable port per directory and catalog:
// 19000 + (hash % 1000).
func DefaultPort(root, catalog string) int {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	h := sha256.Sum256([]byte(abs + "\x00" + catalog))
	n := uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 | uint32(h[3])
	return 19000 + int(n%1000)
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/patterns", s.handlePatterns)
	mux.HandleFunc("GET /api/ask", s.handleAsk)
	mux.HandleFunc("POST /api/ask", s.handleAsk)
	return mux
}

// Start begins listening on 127.0.0.1:port. Port 0 picks a free port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.started = time.Now()
	s.httpSrv = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	if s.portFilePath != "" {
		if err := os.WriteFile(s.portFilePath, []byte(fmt.Sprintf("%d", s.port)), 0644); err != nil {
			s.log.Warn("write port file", zap.String("path", s.portFilePath), zap.Error(err))
		}
	}

	go s.httpSrv.Serve(ln)
	s.log.Info("http listening", zap.String("url", s.URL()))
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
		if s.portFilePath != "" {
			os.Remove(s.portFilePath)
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the chat page URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

type askRequest struct {
	Query string `json:"query"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, staticFS, "static/index.html")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, socket.HealthResult{
		Status:  "ok",
		Catalog: s.backend.Catalog(),
		Records: s.backend.RecordCount(),
		Rules:   len(s.backend.Patterns()),
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, socket.PatternsResult{
		Catalog:  s.backend.Catalog(),
		Patterns: s.backend.Patterns(),
	})
}

// handleAsk takes the raw question from ?q= or a JSON body and normalizes it
// the same way the query loop does.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("q")
	if r.Method == http.MethodPost {
		var req askRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request JSON"})
			return
		}
		raw = req.Query
	}

	start := time.Now()
	reply, err := s.backend.Answer(query.Tokenize(raw))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, socket.AskResult{
		Reply:   reply,
		Elapsed: time.Since(start).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
