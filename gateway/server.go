// Package gateway exposes the session engine over websockets: it upgrades
// HTTP requests, assigns connection IDs, decodes inbound messages and
// feeds them to the quiz handlers.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/erwinbonsma/PartyQuiz/events"
	"github.com/erwinbonsma/PartyQuiz/quiz"
	"github.com/erwinbonsma/PartyQuiz/storage"
)

type Server struct {
	db          storage.Storage
	events      events.Publisher
	logger      *slog.Logger
	registry    *Registry
	disconnects *quiz.DisconnectionHandler
	upgrader    websocket.Upgrader
}

func NewServer(db storage.Storage, publisher events.Publisher, logger *slog.Logger) *Server {
	registry := NewRegistry()
	return &Server{
		db:          db,
		events:      publisher,
		logger:      logger,
		registry:    registry,
		disconnects: quiz.NewDisconnectionHandler(db, registry, publisher, logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients connect from arbitrary origins (phones on the
			// venue wifi); quiz access is gated by quiz IDs, not origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Registry exposes the connection registry, e.g. to report the number of
// open connections.
func (s *Server) Registry() *Registry {
	return s.registry
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWS)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", "error", err)
		http.Error(w, "storage unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", "error", err)
		return
	}

	connection := uuid.NewString()
	s.registry.Register(connection, conn)
	s.logger.Info("connection opened",
		"connection", connection, "remote_addr", r.RemoteAddr)

	go s.readLoop(connection, conn)
}

func (s *Server) readLoop(connection string, conn *websocket.Conn) {
	defer func() {
		s.registry.Unregister(connection)
		conn.Close()
		// The request context died with the connection; cleanup runs on
		// its own context.
		s.disconnects.HandleDisconnect(context.Background(), connection)
		s.logger.Info("connection closed", "connection", connection)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed",
					"connection", connection, "error", err)
			}
			return
		}

		var req quiz.Request
		if err := json.Unmarshal(raw, &req); err != nil {
			s.logger.Warn("invalid message",
				"connection", connection, "error", err)
			continue
		}

		handler := quiz.NewMessageHandler(s.db, s.registry, s.events, s.logger, connection)
		if err := handler.HandleMessage(context.Background(), req); err != nil {
			s.logger.Error("failed to handle message",
				"connection", connection, "action", req.Action, "error", err)
		}
	}
}
