package session

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-arena/internal/tictactoe"
)

const maxPlayers = 2

// Game owns one match's full lifecycle: queue, play, terminal result and
// the move-forfeit timer. Status only ever moves forward, queue → playing
// → finished. Every method below requires the session lock to be held.
type Game struct {
	id      string
	session *Session
	logger  *slog.Logger

	privacy string
	status  string

	// players is the seat order; index 0/1 is a player's permanent seat
	// once the game starts.
	players       []*Client
	grid          entity.Grid
	currentPlayer entity.Seat
	result        entity.Result
	lastUpdate    time.Time

	timer    *time.Timer
	timerGen uint64
}

// newGame registers a fresh game in the live set. Caller holds the lock.
func (that *Session) newGame(privacy string) *Game {
	game := &Game{
		id:      pkg.GenerateGameID(),
		session: that,
		privacy: privacy,
		status:  entity.StatusQueue,
	}
	game.logger = that.logger.With("component", "game", "gameID", game.id)

	that.games[game.id] = game
	that.metrics.LiveGames.Inc()

	game.logger.Info("game created", "privacy", privacy)

	return game
}

// join appends a waiting client and starts the game at the second join.
// Joins on started or full games are dropped.
func (that *Game) join(client *Client) {
	if that.status != entity.StatusQueue || len(that.players) >= maxPlayers {
		return
	}

	client.currentGame = that
	that.players = append(that.players, client)

	if len(that.players) == maxPlayers {
		that.start()
	}

	if that.privacy == entity.PrivacyPublic {
		that.session.broadcastPublicPlayerCount(nil)
	}

	that.sync()
}

// start fires at the second join. Seat order must not be predictable from
// join order, so the two seats are swapped on a coin flip.
func (that *Game) start() {
	if rand.IntN(2) == 1 {
		that.players[0], that.players[1] = that.players[1], that.players[0]
	}

	that.status = entity.StatusPlaying
	that.lastUpdate = time.Now()

	if that.privacy == entity.PrivacyPublic {
		that.session.installPublicGame()
	}

	that.armTimer(that.session.timeouts.FirstMove)

	that.logger.Info("game started")
}

// leave is a forfeit mid-game; while queued it just vacates the slot. A
// private queued game dies with its last waiting player, the public one
// persists for the next joiner.
func (that *Game) leave(client *Client) {
	switch that.status {
	case entity.StatusPlaying:
		winner := that.seatOf(client).Other()
		that.end(entity.ReasonLeave, &winner)
	case entity.StatusQueue:
		that.removePlayer(client)
		client.currentGame = nil

		// explicit empty state so a stale client UI clears
		client.conn.Send(SyncMessage{Type: messageTypeSync, State: nil})

		if that.privacy == entity.PrivacyPublic {
			that.session.broadcastPublicPlayerCount(nil)
		} else if len(that.players) == 0 {
			that.session.removeGame(that)
		}
	}
}

// play validates and applies one move. Anything invalid — wrong status,
// wrong seat, bad slot, occupied cell — is dropped without a response so a
// stale or adversarial client cannot desync the game.
func (that *Game) play(client *Client, slot int) {
	if that.status != entity.StatusPlaying {
		return
	}

	if slot < 0 || slot >= len(that.grid) {
		return
	}

	if that.players[that.currentPlayer] != client {
		return
	}

	if that.grid[slot] != nil {
		return
	}

	seat := that.currentPlayer
	that.grid[slot] = &seat
	that.lastUpdate = time.Now()
	that.armTimer(that.session.timeouts.Move)

	outcome, winner := tictactoe.Evaluate(&that.grid, slot)
	switch outcome {
	case tictactoe.OutcomeWin:
		that.end(entity.ReasonWin, &winner)
	case tictactoe.OutcomeDraw:
		that.end(entity.ReasonDraw, nil)
	default:
		that.currentPlayer = that.currentPlayer.Other()
		that.sync()
	}
}

// end performs the single terminal transition. It is reached from the win,
// draw, forfeit and timeout paths; repeat calls are no-ops.
func (that *Game) end(reason string, winner *entity.Seat) {
	if that.status == entity.StatusFinished {
		return
	}

	that.status = entity.StatusFinished
	that.result = entity.Result{Winner: winner, Reason: reason}
	that.stopTimer()

	that.sync()

	for _, client := range that.players {
		client.currentGame = nil
	}

	that.session.removeGame(that)

	if that.privacy == entity.PrivacyPublic {
		that.session.broadcastPublicPlayerCount(nil)
	}

	that.session.metrics.GamesFinished.WithLabelValues(reason).Inc()

	that.logger.Info("game finished", "reason", reason)
}

// sync pushes the full game view to every member. Only the seat index
// differs per recipient; the server is the sole source of truth and pushes
// on every change.
func (that *Game) sync() {
	for i, client := range that.players {
		client.conn.Send(SyncMessage{Type: messageTypeSync, State: that.stateFor(entity.Seat(i))})
	}
}

func (that *Game) stateFor(seat entity.Seat) *entity.State {
	return &entity.State{
		ID:            that.id,
		Status:        that.status,
		Privacy:       that.privacy,
		Grid:          that.grid,
		CurrentPlayer: that.currentPlayer,
		Results:       that.result,
		LastUpdate:    that.lastUpdate.UnixMilli(),
		PlayerID:      seat,
	}
}

// armTimer schedules the move-forfeit timer, replacing any pending one.
// The generation guard discards fires that were already in flight when the
// state they were guarding changed.
func (that *Game) armTimer(d time.Duration) {
	that.timerGen++
	gen := that.timerGen

	if that.timer != nil {
		that.timer.Stop()
	}

	that.timer = time.AfterFunc(d, func() {
		that.session.mu.Lock()
		defer that.session.mu.Unlock()

		if that.timerGen != gen || that.status != entity.StatusPlaying {
			return
		}

		winner := that.currentPlayer.Other()
		that.end(entity.ReasonTime, &winner)
	})
}

func (that *Game) stopTimer() {
	that.timerGen++

	if that.timer != nil {
		that.timer.Stop()
		that.timer = nil
	}
}

func (that *Game) seatOf(client *Client) entity.Seat {
	for i, player := range that.players {
		if player == client {
			return entity.Seat(i)
		}
	}

	return entity.SeatOne
}

func (that *Game) removePlayer(client *Client) {
	for i, player := range that.players {
		if player == client {
			that.players = append(that.players[:i], that.players[i+1:]...)
			return
		}
	}
}
