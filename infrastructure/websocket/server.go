package websocket

import (
	"chat-courier/contract"
	"chat-courier/runtime"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	gws "github.com/gorilla/websocket"
)

// Dispatcher is implemented by router.Router.
type Dispatcher interface {
	Dispatch(ctx context.Context, session contract.Session, raw []byte) runtime.Decision
}

// SocketJanitor forgets the per-socket counters of a closed transport.
type SocketJanitor interface {
	CleanupSocket(t contract.Transport)
}

// BucketCleaner forgets the rate-limit buckets of a user.
type BucketCleaner interface {
	Cleanup(userID string)
}

type ServerConfig struct {
	Conn         ConnConfig
	UserIDHeader string
}

// Server upgrades HTTP requests and runs one session per connection.
// The user id is trusted as given: authentication happens in front of this server.
type Server struct {
	ctx        context.Context
	log        *slog.Logger
	config     ServerConfig
	upgrader   gws.Upgrader
	registry   contract.IRegistry
	dispatcher Dispatcher
	sockets    SocketJanitor
	buckets    BucketCleaner
	sessions   sync.WaitGroup
}

func NewServer(ctx context.Context, log *slog.Logger, config ServerConfig, registry contract.IRegistry,
	dispatcher Dispatcher, sockets SocketJanitor, buckets BucketCleaner) *Server {
	return &Server{
		ctx:    ctx,
		log:    log,
		config: config,
		upgrader: gws.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		registry:   registry,
		dispatcher: dispatcher,
		sockets:    sockets,
		buckets:    buckets,
	}
}

func (s *Server) userID(r *http.Request) string {
	if userID := strings.TrimSpace(r.Header.Get(s.config.UserIDHeader)); userID != "" {
		return userID
	}
	return strings.TrimSpace(r.URL.Query().Get("userId"))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	if userID == "" {
		http.Error(w, "missing user id", http.StatusUnauthorized)
		return
	}
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("Upgrade failed", "user_id", userID, "error", err)
		return
	}

	conn := NewConn(s.log, ws, s.config.Conn)
	session := contract.Session{UserID: userID, ConnectionID: uuid.NewString(), Transport: conn}
	s.registry.Register(session)
	s.log.Info("Connection opened", "user_id", userID, "connection_id", session.ConnectionID)

	s.sessions.Add(1)
	defer s.sessions.Done()

	go conn.WritePump()
	go func() {
		select {
		case <-s.ctx.Done():
			conn.Close()
		case <-conn.done:
		}
	}()
	conn.ReadPump(func(raw []byte) {
		s.dispatcher.Dispatch(s.ctx, session, raw)
	})
	s.release(session, conn)
}

// Wait blocks until every session started before the server context ended is released.
func (s *Server) Wait() {
	s.sessions.Wait()
}

// release closes the socket before its bookkeeping is dropped, so a fan-out
// still holding it sees a closed transport.
func (s *Server) release(session contract.Session, conn *Conn) {
	conn.Close()
	remaining := s.registry.Unregister(session.UserID, session.ConnectionID)
	s.sockets.CleanupSocket(conn)
	if remaining == 0 {
		s.buckets.Cleanup(session.UserID)
	}
	s.log.Info("Connection closed", "user_id", session.UserID, "connection_id", session.ConnectionID,
		"remaining", remaining)
}
