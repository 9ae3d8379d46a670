package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
)

type Server struct {
	logger  *slog.Logger
	session *session.Session

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, matchSession *session.Session) *Server {
	return &Server{
		logger:  logger,
		session: matchSession,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and binds it to the session.
func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConn(that.logger, ws)
	client := that.session.Connect(conn)

	go conn.writePump()

	log.Info("WebSocket connection established", "remoteAddr", ws.RemoteAddr().String())

	that.readLoop(conn, client)
}

// readLoop delivers inbound payloads to the client until the connection
// drops, then releases everything.
func (that *Server) readLoop(conn *conn, client *session.Client) {
	defer func() {
		client.HandleDisconnect()
		conn.close()
	}()

	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ws.ReadMessage()
		if err != nil {
			that.logger.Debug("connection closed", "error", err)
			return
		}

		client.HandleMessage(raw)
	}
}
