// Package telemetry exposes the frame driver's state over HTTP: a status
// endpoint and a websocket pose stream for external visualizers. It is
// strictly read-only and never blocks the frame loop.
package telemetry

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"roomtiny/internal/buildinfo"
	"roomtiny/internal/log"
)

// PoseSnapshot is one published frame state.
type PoseSnapshot struct {
	Frame    uint64     `json:"frame"`
	Position [3]float64 `json:"position"`
	Yaw      float64    `json:"yaw"`
	Pitch    float64    `json:"pitch"`
	Roll     float64    `json:"roll"`
	IPD      float64    `json:"ipd"`
	Stereo   string     `json:"stereo"`
	Tracker  string     `json:"tracker"`
}

// Server is the telemetry HTTP server.
type Server struct {
	app  *fiber.App
	addr string

	mu      sync.RWMutex
	last    PoseSnapshot
	clients map[string]chan []byte
}

// NewServer builds the server for the given listen address.
func NewServer(addr string) *Server {
	s := &Server{
		addr:    addr,
		clients: make(map[string]chan []byte),
	}

	app := fiber.New(fiber.Config{
		AppName:               "roomtiny telemetry",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Get("/api/status", s.handleStatus)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/pose", websocket.New(s.handlePoseWS))

	s.app = app
	return s
}

// Start listens in a goroutine. Listen errors are logged, not fatal; the
// demo keeps rendering without telemetry.
func (s *Server) Start() {
	go func() {
		if err := s.app.Listen(s.addr); err != nil {
			log.Warn("telemetry listen failed", "addr", s.addr, "err", err)
		}
	}()
	log.Info("telemetry listening", "addr", s.addr)
}

// Publish records the snapshot and fans it out to connected clients. Slow
// clients drop frames rather than stalling the caller.
func (s *Server) Publish(snap PoseSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.last = snap
	for _, ch := range s.clients {
		select {
		case ch <- data:
		default:
		}
	}
	s.mu.Unlock()
}

// Shutdown stops the listener and disconnects all clients.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.mu.Unlock()
	return s.app.Shutdown()
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.mu.RLock()
	last := s.last
	n := len(s.clients)
	s.mu.RUnlock()
	return c.JSON(fiber.Map{
		"version": buildinfo.Short(),
		"clients": n,
		"pose":    last,
	})
}

func (s *Server) handlePoseWS(c *websocket.Conn) {
	id := uuid.NewString()
	ch := make(chan []byte, 16)

	s.mu.Lock()
	s.clients[id] = ch
	n := len(s.clients)
	s.mu.Unlock()
	log.Info("pose client connected", "id", id, "total", n)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			// Clients only send pings; reads detect disconnect.
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case data, ok := <-ch:
			if !ok {
				c.WriteMessage(websocket.CloseMessage, []byte{})
				c.Close()
				<-done
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				s.dropClient(id)
				<-done
				return
			}
		case <-done:
			s.dropClient(id)
			return
		}
	}
}

func (s *Server) dropClient(id string) {
	s.mu.Lock()
	if ch, ok := s.clients[id]; ok {
		close(ch)
		delete(s.clients, id)
	}
	n := len(s.clients)
	s.mu.Unlock()
	log.Info("pose client disconnected", "id", id, "remaining", n)
}
