package session

import (
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/metrics"
)

// recorderConn captures everything the session pushes to one client. Its
// own lock keeps inspection safe while timer callbacks are live.
type recorderConn struct {
	mu       sync.Mutex
	messages []any
}

func (that *recorderConn) Send(message any) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.messages = append(that.messages, message)
}

func (that *recorderConn) all() []any {
	that.mu.Lock()
	defer that.mu.Unlock()

	out := make([]any, len(that.messages))
	copy(out, that.messages)

	return out
}

// lastSync returns the most recent sync push, or nil if none arrived.
func (that *recorderConn) lastSync() *SyncMessage {
	all := that.all()
	for i := len(all) - 1; i >= 0; i-- {
		if sync, ok := all[i].(SyncMessage); ok {
			return &sync
		}
	}

	return nil
}

func (that *recorderConn) lastPlayerCount() *PlayerCountMessage {
	all := that.all()
	for i := len(all) - 1; i >= 0; i-- {
		if count, ok := all[i].(PlayerCountMessage); ok {
			return &count
		}
	}

	return nil
}

func (that *recorderConn) queueAcks() []QueueAckMessage {
	var acks []QueueAckMessage
	for _, message := range that.all() {
		if ack, ok := message.(QueueAckMessage); ok {
			acks = append(acks, ack)
		}
	}

	return acks
}

func newTestSession(timeouts Timeouts) *Session {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, timeouts, metrics.New(prometheus.NewRegistry()))
}

func defaultTimeouts() Timeouts {
	return Timeouts{FirstMove: time.Minute, Move: time.Minute}
}

func joinPublic(client *Client) {
	client.HandleMessage([]byte(`{"type":"join_queue","queue":"public"}`))
}

func joinPrivate(client *Client) {
	client.HandleMessage([]byte(`{"type":"join_queue","queue":"private"}`))
}

func play(client *Client, slot int) {
	client.HandleMessage([]byte(`{"type":"play","slot":` + strconv.Itoa(slot) + `}`))
}

// seatedClients matches two public-queue clients and returns them ordered
// by the seat they were assigned, along with their game.
func seatedClients(t *testing.T, sess *Session) (seat0, seat1 *Client, rec0, rec1 *recorderConn, game *Game) {
	t.Helper()

	recA := &recorderConn{}
	recB := &recorderConn{}
	clientA := sess.Connect(recA)
	clientB := sess.Connect(recB)

	joinPublic(clientA)
	joinPublic(clientB)

	stateA := recA.lastSync()
	require.NotNil(t, stateA)
	require.NotNil(t, stateA.State)
	require.Equal(t, entity.StatusPlaying, stateA.State.Status)

	sess.mu.Lock()
	game = clientA.currentGame
	sess.mu.Unlock()
	require.NotNil(t, game)

	if stateA.State.PlayerID == entity.SeatOne {
		return clientA, clientB, recA, recB, game
	}

	return clientB, clientA, recB, recA, game
}
