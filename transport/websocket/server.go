package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
)

const (
	handshakeTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

type uRoom interface {
	Join(ctx context.Context, connID, roomID, passphrase, name string) error
	SetReady(ctx context.Context, connID string)
	MakeMove(ctx context.Context, connID string, row, col int)
	Reset(ctx context.Context, connID string)
	Leave(ctx context.Context, connID string)
}

type handlerFunc func(ctx context.Context, conn *client, message *Message) error

// Server routes inbound socket events to the room use case. Events of one
// connection are handled one at a time, in arrival order.
type Server struct {
	logger *slog.Logger
	hub    *Hub
	uRoom  uRoom
	conf   config.WebSocket

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, hub *Hub, uRoom uRoom, conf config.WebSocket) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		hub:    hub,
		uRoom:  uRoom,
		conf:   conf,

		upgrader: websocket.Upgrader{
			HandshakeTimeout: handshakeTimeout,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			CheckOrigin:      func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[eventJoinRoom] = server.handleJoinRoom
	server.handlers[eventPlayerReady] = server.handlePlayerReady
	server.handlers[eventMakeMove] = server.handleMakeMove
	server.handlers[eventResetGame] = server.handleResetGame

	return server
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	}).Methods(http.MethodGet)

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}

		// hijacked connections are not tracked by srv
		that.hub.CloseAll()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newClient(uuid.NewString(), ws, that.conf.SendBuffer)
	log = log.With("connID", conn.id)

	that.hub.register(conn)
	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	go func() {
		if err := conn.writePump(that.conf.WriteWait, that.conf.PingPeriod()); err != nil {
			log.Debug("write pump stopped", "error", err)
		}
	}()

	that.readPump(ctx, conn)
}

// readPump handles inbound frames until the socket fails, then reports the disconnect.
func (that *Server) readPump(ctx context.Context, conn *client) {
	log := that.logger.With("method", "readPump", "connID", conn.id)

	defer func() {
		that.uRoom.Leave(ctx, conn.id)
		that.hub.unregister(conn)
		conn.close()

		log.Info("player disconnected")
	}()

	conn.conn.SetReadLimit(that.conf.MaxMessageSize)
	_ = conn.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	})

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Event]
		if !ok {
			log.Warn("unknown event", "event", message.Event)
			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "event", message.Event, "error", err)
		}
	}
}
