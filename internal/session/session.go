package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/metrics"
)

// Timeouts configure the per-move forfeit timers. The opening move gets a
// longer window than subsequent moves.
type Timeouts struct {
	FirstMove time.Duration
	Move      time.Duration
}

// Session owns every live game and connected client. All state transitions
// — inbound intents, disconnects and timer fires — run as short atomic
// steps under one lock, so no two mutations of the same game ever
// interleave and every broadcast observes the state it was triggered by.
type Session struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	timeouts Timeouts

	mu      sync.Mutex
	games   map[string]*Game
	clients map[*Client]struct{}

	// publicGame is the single public game accepting joiners. It is
	// replaced in the same step that fills the previous one.
	publicGame *Game
}

func New(logger *slog.Logger, timeouts Timeouts, m *metrics.Metrics) *Session {
	that := &Session{
		logger:   logger,
		metrics:  m,
		timeouts: timeouts,
		games:    make(map[string]*Game),
		clients:  make(map[*Client]struct{}),
	}

	that.publicGame = that.newGame(entity.PrivacyPublic)

	return that
}

// Connect binds a transport connection to the session and pushes the
// current public player count to the new client.
func (that *Session) Connect(conn Conn) *Client {
	that.mu.Lock()
	defer that.mu.Unlock()

	client := &Client{
		session: that,
		conn:    conn,
		logger:  that.logger.With("component", "client"),
	}

	that.clients[client] = struct{}{}
	that.metrics.ConnectedClients.Inc()

	that.broadcastPublicPlayerCount(client)

	return client
}

// disconnect forfeits the client's active game, if any, and deregisters it.
func (that *Session) disconnect(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if client.currentGame != nil {
		client.currentGame.leave(client)
	}

	delete(that.clients, client)
	that.metrics.ConnectedClients.Dec()

	that.broadcastPublicPlayerCount(nil)
}

// gameForJoin validates an explicit-id join target. This is the one path
// that reports failure to the caller. Caller holds the lock.
func (that *Session) gameForJoin(id string) (*Game, error) {
	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	if game.status != entity.StatusQueue {
		return nil, apperror.ErrGameAlreadyStarted
	}

	if len(game.players) >= maxPlayers {
		return nil, apperror.ErrGameFull
	}

	return game, nil
}

// removeGame drops a game from the live set. Caller holds the lock.
func (that *Session) removeGame(game *Game) {
	if _, ok := that.games[game.id]; !ok {
		return
	}

	delete(that.games, game.id)
	that.metrics.LiveGames.Dec()
}

// installPublicGame allocates a fresh public game, guaranteeing there is
// always exactly one open to joiners. Caller holds the lock.
func (that *Session) installPublicGame() {
	that.publicGame = that.newGame(entity.PrivacyPublic)
}

// publicPlayerCount sums the players of every live public game. Older
// playing public games keep counting until they finish. Caller holds the
// lock.
func (that *Session) publicPlayerCount() int {
	count := 0
	for _, game := range that.games {
		if game.privacy == entity.PrivacyPublic {
			count += len(game.players)
		}
	}

	return count
}

// broadcastPublicPlayerCount pushes the count to one client, or to every
// connected client when target is nil. Caller holds the lock.
func (that *Session) broadcastPublicPlayerCount(target *Client) {
	message := PlayerCountMessage{
		Type:  messageTypePlayerCount,
		Count: that.publicPlayerCount(),
	}

	if target != nil {
		target.conn.Send(message)
		return
	}

	for client := range that.clients {
		client.conn.Send(message)
	}
}

// Stats is the snapshot served on the REST /stats endpoint.
type Stats struct {
	ConnectedClients int `json:"connectedClients"`
	LiveGames        int `json:"liveGames"`
	PublicPlayers    int `json:"publicPlayers"`
}

func (that *Session) Stats() Stats {
	that.mu.Lock()
	defer that.mu.Unlock()

	return Stats{
		ConnectedClients: len(that.clients),
		LiveGames:        len(that.games),
		PublicPlayers:    that.publicPlayerCount(),
	}
}
