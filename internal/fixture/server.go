// Package fixture serves a stand-in for the stocks API from a JSON file, for
// local development and tests.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"stockdash/pkg/stocksapi"
)

//go:embed sample.json
var sample []byte

// Sample returns the embedded sample fixture: AAPL, MSFT and TSLA with all
// four time frames.
func Sample() []byte {
	out := make([]byte, len(sample))
	copy(out, sample)
	return out
}

// Server answers the three stocks API endpoints. The fixture is a JSON object
// holding the same top-level fields the real endpoints return.
type Server struct {
	prefix string
	log    *slog.Logger

	mu     sync.Mutex
	bodies map[string][]byte // endpoint name -> response body
	status map[string]int    // endpoint name -> forced status
	delay  map[string]time.Duration
	hits   map[string]int
}

// NewServer creates a server for fixture data mounted under prefix
// (e.g. "/api/stocks/").
func NewServer(data []byte, prefix string, log *slog.Logger) (*Server, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	s := &Server{
		prefix: "/" + strings.Trim(prefix, "/") + "/",
		log:    log,
		bodies: make(map[string][]byte),
		status: make(map[string]int),
		delay:  make(map[string]time.Duration),
		hits:   make(map[string]int),
	}
	if s.prefix == "//" {
		s.prefix = "/"
	}
	for _, ep := range stocksapi.Endpoints() {
		raw, ok := env[ep.Field]
		if !ok {
			return nil, fmt.Errorf("fixture has no %q field", ep.Field)
		}
		body, err := json.Marshal(map[string]json.RawMessage{ep.Field: raw})
		if err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", ep.Name, err)
		}
		s.bodies[ep.Name] = body
	}
	return s, nil
}

// LoadFile creates a server from a fixture file.
func LoadFile(path, prefix string, log *slog.Logger) (*Server, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewServer(data, prefix, log)
}

// SetStatus forces endpoint name to answer with code. Zero restores normal
// responses.
func (s *Server) SetStatus(name string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code == 0 {
		delete(s.status, name)
		return
	}
	s.status[name] = code
}

// SetBody replaces the raw response body for endpoint name.
func (s *Server) SetBody(name string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[name] = body
}

// SetDelay holds responses for endpoint name for d before answering.
func (s *Server) SetDelay(name string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay[name] = d
}

// Hits returns how many requests endpoint name has received.
func (s *Server) Hits(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[name]
}

// RegisterRoutes registers the endpoint routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	for _, ep := range stocksapi.Endpoints() {
		mux.HandleFunc("GET "+s.prefix+ep.Path, s.handle(ep.Name))
	}
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func (s *Server) handle(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[name]++
		code := s.status[name]
		body := s.bodies[name]
		delay := s.delay[name]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if code != 0 {
			s.log.Debug("forced status", "endpoint", name, "status", code)
			writeError(w, code, http.StatusText(code))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(body); err != nil {
			s.log.Error("writing response", "endpoint", name, "error", err)
		}
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
