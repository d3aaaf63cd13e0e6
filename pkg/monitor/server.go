package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"digital.vasic.verify/pkg/logging"
	"digital.vasic.verify/pkg/verify"
)

// Server broadcasts verification results to WebSocket clients
// as they land in the queue. It subscribes to the queue on
// Start, so results recorded before Start are only visible
// through the snapshot endpoint.
type Server struct {
	mu       sync.RWMutex
	addr     string
	queue    *verify.Queue
	logger   logging.Logger
	upgrader websocket.Upgrader
	clients  map[chan []byte]struct{}
	server   *http.Server
	attach   sync.Once

	started time.Time
	total   int
	passed  int
}

// NewServer creates a monitor server for the given queue.
func NewServer(
	addr string,
	queue *verify.Queue,
	logger logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		addr:   addr,
		queue:  queue,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		clients: make(map[chan []byte]struct{}),
	}
}

// Handler returns the HTTP handler serving the /events
// WebSocket endpoint, the /snapshot aggregate endpoint, and
// /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/health", func(
		w http.ResponseWriter, _ *http.Request,
	) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Attach subscribes the server to the queue so subsequent
// appends are counted and broadcast. Start calls this; tests
// serving the handler through httptest call it directly. Only
// the first call subscribes, so Attach followed by Start does
// not double-count results.
func (s *Server) Attach() {
	s.attach.Do(func() {
		s.mu.Lock()
		s.started = time.Now()
		s.mu.Unlock()
		s.queue.Subscribe(s.onResult)
	})
}

// Start subscribes to the queue and serves until the context
// is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.Attach()

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		_ = s.server.Close()
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// onResult is the queue observer: update aggregates and fan
// the event out to connected clients.
func (s *Server) onResult(r verify.Result) {
	s.mu.Lock()
	s.total++
	if r.Passed() {
		s.passed++
	}
	s.mu.Unlock()

	data, err := json.Marshal(eventFrom(r))
	if err != nil {
		s.logger.Error("marshal event", "error", err.Error())
		return
	}
	s.broadcast(data)
}

func (s *Server) handleEvents(
	w http.ResponseWriter, r *http.Request,
) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed",
			"error", err.Error())
		return
	}

	ch := make(chan []byte, 32)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, ch)
		s.mu.Unlock()
		_ = conn.Close()
	}()

	// Drain reads so the connection notices client close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-done:
			return
		case data := <-ch:
			if err := conn.WriteMessage(
				websocket.TextMessage, data,
			); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleSnapshot(
	w http.ResponseWriter, _ *http.Request,
) {
	s.mu.RLock()
	snap := Snapshot{
		Total:   s.total,
		Passed:  s.passed,
		Failed:  s.total - s.passed,
		Started: s.started.Format(time.RFC3339),
	}
	s.mu.RUnlock()
	if snap.Total > 0 {
		snap.PassRate = float64(snap.Passed) /
			float64(snap.Total)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.clients {
		select {
		case ch <- data:
		default:
			// Client too slow, skip
		}
	}
}
