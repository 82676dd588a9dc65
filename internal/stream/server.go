package stream

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// EntityPose is one entity's transform on the wire.
type EntityPose struct {
	Name        string     `json:"name"`
	Position    [3]float32 `json:"pos"`
	Orientation [4]float32 `json:"quat"` // w, x, y, z
}

// StateMessage is a full table snapshot pushed to every client.
type StateMessage struct {
	Type     string       `json:"type"`
	Entities []EntityPose `json:"entities"`
}

// safeWriter serializes writes to one websocket connection.
type safeWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *safeWriter) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *safeWriter) Close() error {
	return w.conn.Close()
}

// Server pushes table state to websocket observers. Remote viewers only
// receive; they never mutate the table.
type Server struct {
	addr     string
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*safeWriter]bool

	httpServer *http.Server
}

func NewServer(addr string) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*safeWriter]bool),
	}
}

// Start listens in the background. The render loop keeps running whether or
// not anyone is watching.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		log.Printf("Stream: listening on %s", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Stream: server stopped: %v", err)
		}
	}()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Stream: upgrade failed: %v", err)
		return
	}

	client := &safeWriter{conn: conn}
	s.mu.Lock()
	s.clients[client] = true
	count := len(s.clients)
	s.mu.Unlock()
	log.Printf("Stream: client connected (%d total)", count)

	// Read loop only detects disconnect; inbound messages are discarded
	go func() {
		defer s.drop(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) drop(client *safeWriter) {
	s.mu.Lock()
	delete(s.clients, client)
	s.mu.Unlock()
	client.Close()
}

// ClientCount returns the number of connected observers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast pushes a snapshot to all clients, dropping any that fail.
func (s *Server) Broadcast(msg StateMessage) {
	s.mu.Lock()
	clients := make([]*safeWriter, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.WriteJSON(msg); err != nil {
			s.drop(c)
		}
	}
}

// Close stops the listener and disconnects all clients.
func (s *Server) Close() error {
	s.mu.Lock()
	for c := range s.clients {
		c.Close()
	}
	s.clients = make(map[*safeWriter]bool)
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}
