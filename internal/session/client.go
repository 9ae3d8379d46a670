package session

import (
	"encoding/json"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Conn is the transport side of one client connection. Send must not
// block: implementations enqueue and let their own writer drain, so a
// state-mutating step never waits on socket I/O.
type Conn interface {
	Send(message any)
}

// Client binds one transport connection to session state and decodes
// inbound intents. The transport calls HandleMessage and HandleDisconnect;
// everything else happens inside the session.
type Client struct {
	session *Session
	conn    Conn
	logger  *slog.Logger

	// currentGame is a fast lookup only; the game owns the membership list.
	currentGame *Game
}

// HandleMessage - processes one raw inbound payload. Malformed payloads
// and unknown actions are dropped without effect.
func (that *Client) HandleMessage(raw []byte) {
	log := that.logger.With("method", "HandleMessage")

	var message inboundMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		log.Debug("dropped malformed payload", "error", err)
		return
	}

	that.session.mu.Lock()
	defer that.session.mu.Unlock()

	switch message.Type {
	case actionJoinQueue:
		that.handleJoinQueue(&message)
	case actionLeaveQueue:
		if that.currentGame != nil {
			that.currentGame.leave(that)
		}
	case actionPlay:
		if that.currentGame != nil && message.Slot != nil {
			that.currentGame.play(that, *message.Slot)
		}
	case actionResync:
		if that.currentGame != nil {
			that.currentGame.sync()
		}
	default:
		log.Debug("dropped unknown action", "type", message.Type)
	}
}

// handleJoinQueue routes a queue request: the shared public game, a fresh
// private game, or an explicit game id. Ignored while already in a game.
// Caller holds the lock.
func (that *Client) handleJoinQueue(message *inboundMessage) {
	if that.currentGame != nil {
		return
	}

	if message.GameID != "" {
		game, err := that.session.gameForJoin(message.GameID)
		if err != nil {
			that.logger.Info("rejected join by id", "gameID", message.GameID, "error", err)
			that.conn.Send(QueueAckMessage{Type: messageTypeQueue, Success: false})
			return
		}

		that.sendQueueAck(game.id)
		game.join(that)

		return
	}

	switch message.Queue {
	case entity.PrivacyPublic:
		game := that.session.publicGame
		that.sendQueueAck(game.id)
		game.join(that)
	case entity.PrivacyPrivate:
		game := that.session.newGame(entity.PrivacyPrivate)
		that.sendQueueAck(game.id)
		game.join(that)
	}
}

// sendQueueAck confirms a join and hands back the game id, which is how a
// private creator learns the id to share.
func (that *Client) sendQueueAck(gameID string) {
	that.conn.Send(QueueAckMessage{Type: messageTypeQueue, Success: true, GameID: &gameID})
}

// HandleDisconnect - forfeits any active game and deregisters the client.
func (that *Client) HandleDisconnect() {
	that.session.disconnect(that)
}
